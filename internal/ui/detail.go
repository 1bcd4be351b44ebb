package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/five82/crate/internal/catalog"
)

// handleDetailKey processes keyboard input for the album detail screen.
func (m Model) handleDetailKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Back):
		return m.closeAlbum()

	case key.Matches(msg, m.keys.Retry):
		if m.album.loading() {
			return m, nil
		}
		return m.openAlbum(m.albumID)

	case key.Matches(msg, m.keys.Top):
		m.detailView.GotoTop()
		return m, nil

	case key.Matches(msg, m.keys.Bottom):
		m.detailView.GotoBottom()
		return m, nil
	}

	var cmd tea.Cmd
	m.detailView, cmd = m.detailView.Update(msg)
	return m, cmd
}

// refreshDetail rebuilds the viewport content from the loaded album.
func (m *Model) refreshDetail() {
	if !m.ready {
		return
	}
	detail, ok := m.album.state.Result()
	if !ok || m.album.pending() {
		m.detailView.SetContent("")
		return
	}
	m.detailView.SetContent(m.detailContent(detail))
}

// renderDetail renders the detail screen for the current load state.
func (m Model) renderDetail() string {
	styles := m.theme.Styles()

	if m.album.loading() {
		return "\n  " + m.spinner.View() + styles.MutedText.Render(" Loading album...")
	}
	if msg, failed := m.album.state.Failure(); failed {
		return "\n  " + styles.DangerText.Render("Error: "+msg) +
			"\n\n  " + styles.FaintText.Render("press r to retry, esc to go back")
	}
	return m.detailView.View()
}

// detailContent lays out header, about card, artist line and tracks.
func (m Model) detailContent(d catalog.AlbumDetail) string {
	styles := m.theme.Styles()
	width := m.contentWidth()

	var b strings.Builder

	b.WriteString(styles.AccentText.Bold(true).Render(truncate(DisplayTitle(d.Title), width)))
	b.WriteString("\n")
	b.WriteString(styles.MutedText.Render(truncate(DisplayArtist(d.Artist), width)))
	b.WriteString("\n\n")

	about := styles.Text.Bold(true).Render("About this album") + "\n" +
		styles.Text.Render(DisplayDescription(d.Description))
	b.WriteString(styles.Card.Width(maxInt(width-2, 10)).Render(about))
	b.WriteString("\n\n")

	b.WriteString(styles.Text.Render(ArtistLine(d.Artist)))
	b.WriteString("\n\n")

	b.WriteString(styles.Text.Bold(true).Render("Tracks"))
	b.WriteString("\n")
	for _, track := range PlaceholderTracks(d.Title) {
		b.WriteString("  ")
		b.WriteString(styles.Text.Render(truncate(track, width-2)))
		b.WriteString("\n")
	}
	return strings.TrimRight(b.String(), "\n")
}
