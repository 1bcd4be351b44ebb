package app

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/five82/crate/internal/loader"
	"github.com/five82/crate/internal/ui"
)

// printCatalog lists every album as "id<TAB>title<TAB>artist".
func printCatalog(ctx context.Context, w io.Writer, l *loader.Catalog) error {
	l.Start(ctx)
	st := l.State()
	if msg, failed := st.Failure(); failed {
		return fmt.Errorf("list albums: %s", msg)
	}
	albums, _ := st.Result()
	if len(albums) == 0 {
		_, err := fmt.Fprintln(w, "No albums yet.")
		return err
	}

	var b strings.Builder
	for _, album := range albums {
		fmt.Fprintf(&b, "%s\t%s\t%s\n", album.ID, ui.ListTitle(album), ui.ListArtist(album))
	}
	_, err := io.WriteString(w, b.String())
	return err
}

// printAlbum renders one album with the same fallbacks as the detail screen.
func printAlbum(ctx context.Context, w io.Writer, l *loader.Detail, id string) error {
	l.Load(ctx, id)
	st := l.State()
	if msg, failed := st.Failure(); failed {
		return fmt.Errorf("get album %s: %s", id, msg)
	}
	d, _ := st.Result()

	var b strings.Builder
	b.WriteString(ui.DisplayTitle(d.Title) + "\n")
	b.WriteString(ui.DisplayArtist(d.Artist) + "\n\n")
	b.WriteString("About this album\n")
	b.WriteString(ui.DisplayDescription(d.Description) + "\n\n")
	b.WriteString(ui.ArtistLine(d.Artist) + "\n\n")
	b.WriteString("Tracks\n")
	for _, track := range ui.PlaceholderTracks(d.Title) {
		b.WriteString("  " + track + "\n")
	}
	_, err := io.WriteString(w, b.String())
	return err
}
