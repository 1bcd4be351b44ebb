package ui

import (
	"context"
	"errors"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"github.com/five82/crate/internal/catalog"
	"github.com/five82/crate/internal/prefs"
	"github.com/five82/crate/internal/state"
)

// Screen identifies the active screen.
type Screen int

const (
	ScreenHome Screen = iota
	ScreenDetail
)

// Options configures the UI.
type Options struct {
	Context   context.Context
	Catalog   CatalogSource
	Detail    DetailSource
	Logger    *zap.Logger
	ThemeName string
	PrefsPath string
}

// homeState holds the album list cursor and filter.
type homeState struct {
	selected  int
	offset    int
	filtering bool
	filter    textinput.Model
	// matches indexes the loaded albums in display order; nil shows all.
	matches []int
}

// Model is the root application state for Bubble Tea.
type Model struct {
	ctx       context.Context
	catalog   CatalogSource
	detail    DetailSource
	logger    *zap.Logger
	prefsPath string
	keys      keyMap

	theme    Theme
	screen   Screen
	width    int
	height   int
	ready    bool
	showHelp bool

	albums  tracked[[]catalog.Album]
	album   tracked[catalog.AlbumDetail]
	albumID string

	home       homeState
	detailView viewport.Model
	spinner    spinner.Model
}

// New creates the root model. The catalog load starts from Init.
func New(opts Options) Model {
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	themeName := opts.ThemeName
	if themeName == "" {
		themeName = prefs.Default().Theme
	}
	theme := GetTheme(themeName)

	filter := textinput.New()
	filter.Prompt = "/"
	filter.Placeholder = "title or artist"
	filter.CharLimit = 64

	spin := spinner.New(spinner.WithSpinner(spinner.Dot))
	spin.Style = lipgloss.NewStyle().Foreground(lipgloss.Color(theme.Accent))

	m := Model{
		ctx:       ctx,
		catalog:   opts.Catalog,
		detail:    opts.Detail,
		logger:    logger,
		prefsPath: opts.PrefsPath,
		keys:      DefaultKeyMap(),
		theme:     theme,
		screen:    ScreenHome,
		home:      homeState{filter: filter},
		spinner:   spin,
	}
	m.albums.expect()
	return m
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		m.spinner.Tick,
		startCatalogCmd(m.ctx, m.catalog),
	)
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		if !m.ready {
			m.detailView = viewport.New(0, 0)
		}
		m.ready = true
		m.detailView.Width = m.contentWidth()
		m.detailView.Height = bodyHeight(m.height)
		m.home.filter.Width = maxInt(10, m.width-4)
		m.refreshDetail()
		m.ensureVisible()
		return m, nil

	case CatalogStateMsg:
		if m.albums.accept(msg.State) {
			m.refilter()
		}
		return m, nil

	case DetailStateMsg:
		if msg.State.Key == m.albumID && m.album.accept(msg.State) {
			m.refreshDetail()
		}
		return m, nil

	case prefsSavedMsg:
		if msg.err != nil {
			m.logger.Warn("save prefs failed", zap.Error(msg.err))
		}
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	return m, nil
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}
	if m.showHelp {
		return m.renderHelp()
	}

	body := m.renderDetail()
	if m.screen == ScreenHome {
		body = m.renderHome()
	}
	body = lipgloss.NewStyle().Height(bodyHeight(m.height)).MaxHeight(bodyHeight(m.height)).Render(body)

	return strings.Join([]string{
		m.renderHeader(),
		body,
		m.renderPlayer(),
		m.renderFooter(),
	}, "\n")
}

// Screen reports the active screen.
func (m Model) Screen() Screen {
	return m.screen
}

// AlbumID reports the album open on the detail screen, or "".
func (m Model) AlbumID() string {
	return m.albumID
}

// ThemeName reports the active theme.
func (m Model) ThemeName() string {
	return m.theme.Name
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.showHelp {
		// Any key closes help
		m.showHelp = false
		return m, nil
	}

	if m.screen == ScreenHome && m.home.filtering {
		return m.handleFilterKey(msg)
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.showHelp = true
		return m, nil

	case key.Matches(msg, m.keys.CycleTheme):
		m.theme = GetTheme(NextTheme(m.theme.Name))
		m.spinner.Style = lipgloss.NewStyle().Foreground(lipgloss.Color(m.theme.Accent))
		m.refreshDetail()
		return m, savePrefsCmd(m.prefsPath, prefs.Prefs{Theme: m.theme.Name})
	}

	switch m.screen {
	case ScreenDetail:
		return m.handleDetailKey(msg)
	default:
		return m.handleHomeKey(msg)
	}
}

// openAlbum switches to the detail screen and starts loading id.
func (m Model) openAlbum(id string) (tea.Model, tea.Cmd) {
	m.screen = ScreenDetail
	m.albumID = id
	m.album.expect()
	m.detailView.GotoTop()
	m.refreshDetail()
	return m, loadAlbumCmd(m.ctx, m.detail, id)
}

// closeAlbum returns to the home screen and discards any in-flight load.
func (m Model) closeAlbum() (tea.Model, tea.Cmd) {
	m.detail.Stop()
	m.screen = ScreenHome
	m.albumID = ""
	return m, nil
}

func (m Model) contentWidth() int {
	return minInt(maxInt(m.width-2, 10), LayoutMaxCardWidth)
}

func savePrefsCmd(path string, p prefs.Prefs) tea.Cmd {
	if path == "" {
		return nil
	}
	return func() tea.Msg {
		return prefsSavedMsg{err: prefs.Save(path, p)}
	}
}

// Run starts the Bubble Tea program and blocks until it exits or the
// context is cancelled. Loader transitions are forwarded as messages.
func Run(opts Options) error {
	if opts.Catalog == nil || opts.Detail == nil {
		return errors.New("ui: catalog and detail loaders are required")
	}
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}

	p := tea.NewProgram(New(opts), tea.WithAltScreen(), tea.WithContext(ctx))

	// Send from a fresh goroutine: callbacks run under the loader's lock
	// and the event loop may be calling Stop on that loader.
	unsubCatalog := opts.Catalog.Subscribe(func(s state.LoadState[[]catalog.Album]) {
		go p.Send(CatalogStateMsg{State: s})
	})
	defer unsubCatalog()
	unsubDetail := opts.Detail.Subscribe(func(s state.LoadState[catalog.AlbumDetail]) {
		go p.Send(DetailStateMsg{State: s})
	})
	defer unsubDetail()

	defer func() {
		opts.Catalog.Stop()
		opts.Detail.Stop()
	}()

	_, err := p.Run()
	if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		return nil
	}
	return err
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
