package ui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/five82/crate/internal/catalog"
)

const playerControls = "⏮  ▶  ⏭"

// nowShowing returns the title and artist for the mini-player: the open
// album on the detail screen, otherwise the album under the cursor. Absent
// fields are left empty.
func (m Model) nowShowing() (title, artist string, ok bool) {
	if m.screen == ScreenDetail {
		d, loaded := m.album.state.Result()
		if !loaded || m.album.pending() {
			return "", "", false
		}
		title, _ = catalog.Value(d.Title)
		artist, _ = catalog.Value(d.Artist)
		return title, artist, true
	}
	album, selected := m.selectedAlbum()
	if !selected {
		return "", "", false
	}
	return album.Title, album.Artist, true
}

// renderPlayer renders the static now-playing strip. The controls are
// decorative; crate does not play audio.
func (m Model) renderPlayer() string {
	styles := m.theme.Styles().WithBackground(m.theme.SurfaceAlt)
	bg := NewBgStyle(m.theme.SurfaceAlt)

	title, artist, ok := m.nowShowing()
	info := bg.Render("Nothing selected", styles.FaintText)
	if ok {
		info = bg.Render("♪ ", styles.AccentText) + bg.Render(truncate(title, maxInt(m.width/3, 8)), styles.Text)
		if artist != "" {
			info += bg.Render("  ·  ", styles.FaintText) + bg.Render(truncate(artist, maxInt(m.width/4, 8)), styles.MutedText)
		}
	}
	controls := bg.Render(playerControls, styles.MutedText)

	gap := m.width - lipgloss.Width(info) - lipgloss.Width(controls) - 2
	line := bg.Spaces(1) + info + bg.Spaces(maxInt(gap, 1)) + controls + bg.Spaces(1)
	return bg.FillLine(line, m.width)
}
