package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"
)

const logoText = "crate"

// renderHeader renders the logo line and the rule under it.
func (m Model) renderHeader() string {
	styles := m.theme.Styles().WithBackground(m.theme.Surface)
	bg := NewBgStyle(m.theme.Surface)

	left := styles.Logo.Render(logoText) + bg.Render("  /  ", styles.FaintText) + bg.Render(m.crumb(), styles.Text)
	right := bg.Render(m.statusText(), styles.MutedText)

	gap := m.width - lipgloss.Width(left) - lipgloss.Width(right) - 2
	line := bg.Spaces(1) + left + bg.Spaces(maxInt(gap, 1)) + right + bg.Spaces(1)

	rule := m.theme.Styles().FaintText.Render(strings.Repeat("─", maxInt(m.width, 1)))
	return bg.FillLine(line, m.width) + "\n" + rule
}

func (m Model) crumb() string {
	if m.screen == ScreenDetail {
		if d, ok := m.album.state.Result(); ok && !m.album.pending() {
			return truncate(DisplayTitle(d.Title), maxInt(m.width/2, 8))
		}
		return "Album"
	}
	return "Albums"
}

// statusText summarises the load state of the active screen.
func (m Model) statusText() string {
	if m.screen == ScreenDetail {
		if m.album.loading() {
			return "loading"
		}
		if _, failed := m.album.state.Failure(); failed {
			return "error"
		}
		return "album " + m.albumID
	}

	switch {
	case m.albums.loading():
		return "loading"
	default:
		if _, failed := m.albums.state.Failure(); failed {
			return "error"
		}
		total := len(m.visible())
		albums, _ := m.albums.state.Result()
		if m.home.matches != nil {
			return fmt.Sprintf("%d of %d albums", total, len(albums))
		}
		return fmt.Sprintf("%d albums", total)
	}
}

// renderFooter renders the key hints for the active screen.
func (m Model) renderFooter() string {
	styles := m.theme.Styles()

	bindings := []key.Binding{m.keys.Select, m.keys.Filter}
	if m.screen == ScreenDetail {
		bindings = []key.Binding{m.keys.Back, m.keys.Retry}
	} else if _, failed := m.albums.state.Failure(); failed {
		bindings = []key.Binding{m.keys.Retry}
	}
	bindings = append(bindings, m.keys.CycleTheme, m.keys.Help, m.keys.Quit)

	hints := make([]string, 0, len(bindings))
	for _, b := range bindings {
		hints = append(hints, styles.WarningText.Render(b.Help().Key)+" "+styles.FaintText.Render(b.Help().Desc))
	}
	return " " + strings.Join(hints, "  ")
}
