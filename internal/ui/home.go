package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/sahilm/fuzzy"

	"github.com/five82/crate/internal/catalog"
	"github.com/five82/crate/internal/state"
)

// albumSource adapts the album list for fuzzy matching on title and artist.
type albumSource []catalog.Album

func (s albumSource) String(i int) string { return s[i].Title + " " + s[i].Artist }
func (s albumSource) Len() int            { return len(s) }

// handleHomeKey processes keyboard input for the album list.
func (m Model) handleHomeKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	st := m.albums.state

	switch {
	case key.Matches(msg, m.keys.Retry):
		if st.Phase == state.Failed && !m.albums.pending() {
			m.albums.expect()
			return m, startCatalogCmd(m.ctx, m.catalog)
		}
		return m, nil

	case key.Matches(msg, m.keys.Filter):
		if _, ok := st.Result(); ok {
			m.home.filtering = true
			return m, m.home.filter.Focus()
		}
		return m, nil

	case key.Matches(msg, m.keys.Back):
		if m.home.filter.Value() != "" {
			m.home.filter.SetValue("")
			m.refilter()
		}
		return m, nil
	}

	items := m.visible()
	if len(items) == 0 {
		return m, nil
	}

	page := m.listRows()
	switch {
	case key.Matches(msg, m.keys.Select):
		return m.openAlbum(items[m.home.selected].ID)
	case key.Matches(msg, m.keys.Down):
		m.home.selected++
	case key.Matches(msg, m.keys.Up):
		m.home.selected--
	case key.Matches(msg, m.keys.Top):
		m.home.selected = 0
	case key.Matches(msg, m.keys.Bottom):
		m.home.selected = len(items) - 1
	case key.Matches(msg, m.keys.PageDown):
		m.home.selected += page
	case key.Matches(msg, m.keys.PageUp):
		m.home.selected -= page
	}
	m.home.selected = clamp(m.home.selected, 0, len(items)-1)
	m.ensureVisible()
	return m, nil
}

// handleFilterKey routes input to the filter box while it has focus.
func (m Model) handleFilterKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit
	case "esc":
		m.home.filtering = false
		m.home.filter.Blur()
		m.home.filter.SetValue("")
		m.refilter()
		return m, nil
	case "enter":
		m.home.filtering = false
		m.home.filter.Blur()
		return m, nil
	}

	var cmd tea.Cmd
	m.home.filter, cmd = m.home.filter.Update(msg)
	m.refilter()
	return m, cmd
}

// refilter recomputes the visible albums after the list or the pattern
// changed. The loaded state itself is never modified.
func (m *Model) refilter() {
	albums, _ := m.albums.state.Result()
	pattern := strings.TrimSpace(m.home.filter.Value())
	if pattern == "" {
		m.home.matches = nil
	} else {
		found := fuzzy.FindFrom(pattern, albumSource(albums))
		m.home.matches = make([]int, len(found))
		for i, match := range found {
			m.home.matches[i] = match.Index
		}
	}
	m.home.selected = clamp(m.home.selected, 0, len(m.visible())-1)
	m.ensureVisible()
}

// visible returns the albums in display order.
func (m Model) visible() []catalog.Album {
	albums, ok := m.albums.state.Result()
	if !ok {
		return nil
	}
	if m.home.matches == nil {
		return albums
	}
	out := make([]catalog.Album, len(m.home.matches))
	for i, idx := range m.home.matches {
		out[i] = albums[idx]
	}
	return out
}

// selectedAlbum returns the album under the cursor.
func (m Model) selectedAlbum() (catalog.Album, bool) {
	items := m.visible()
	if m.home.selected < 0 || m.home.selected >= len(items) {
		return catalog.Album{}, false
	}
	return items[m.home.selected], true
}

func (m Model) showFilterLine() bool {
	return m.home.filtering || m.home.filter.Value() != ""
}

// listRows is how many album rows fit on screen.
func (m Model) listRows() int {
	rows := bodyHeight(m.height)
	if m.showFilterLine() {
		rows--
	}
	return maxInt(rows, 1)
}

// ensureVisible scrolls the list so the cursor stays on screen.
func (m *Model) ensureVisible() {
	rows := m.listRows()
	if m.home.selected < m.home.offset {
		m.home.offset = m.home.selected
	}
	if m.home.selected >= m.home.offset+rows {
		m.home.offset = m.home.selected - rows + 1
	}
	m.home.offset = clamp(m.home.offset, 0, maxInt(len(m.visible())-rows, 0))
}

// renderHome renders the album list screen for the current load state.
func (m Model) renderHome() string {
	styles := m.theme.Styles()
	st := m.albums.state

	if m.albums.loading() {
		return "\n  " + m.spinner.View() + styles.MutedText.Render(" Loading albums...")
	}
	if msg, failed := st.Failure(); failed {
		return "\n  " + styles.DangerText.Render("Error: "+msg) +
			"\n\n  " + styles.FaintText.Render("press r to retry")
	}

	var b strings.Builder
	if m.showFilterLine() {
		b.WriteString(m.home.filter.View())
		b.WriteString("\n")
	}

	items := m.visible()
	if len(items) == 0 {
		if pattern := strings.TrimSpace(m.home.filter.Value()); pattern != "" {
			b.WriteString("\n  " + styles.MutedText.Render(fmt.Sprintf("No albums match %q", pattern)))
		} else {
			b.WriteString("\n  " + styles.MutedText.Render("No albums yet."))
		}
		return b.String()
	}

	titleWidth := m.width - 4
	artistWidth := 0
	if m.width >= LayoutCompactWidth {
		titleWidth = (m.width - 6) * 3 / 5
		artistWidth = m.width - 6 - titleWidth
	}

	end := minInt(m.home.offset+m.listRows(), len(items))
	for i := m.home.offset; i < end; i++ {
		album := items[i]
		marker := "  "
		if i == m.home.selected {
			marker = "▸ "
		}
		row := marker + padRight(truncate(ListTitle(album), titleWidth), titleWidth)
		if artistWidth > 0 {
			row += "  " + padRight(truncate(ListArtist(album), artistWidth), artistWidth)
		}
		if i == m.home.selected {
			row = styles.Selected.Render(row)
		} else {
			row = styles.Text.Render(row)
		}
		b.WriteString(row)
		if i < end-1 {
			b.WriteString("\n")
		}
	}
	return b.String()
}
