package ui

import (
	"fmt"
	"strings"

	"github.com/five82/crate/internal/catalog"
)

// Fallback text for fields the catalog did not send. Loaders expose raw
// optional values; every screen substitutes through the helpers below.
const (
	FallbackTitle       = "Untitled"
	FallbackArtist      = "Unknown Artist"
	FallbackDescription = "No description available."
	FallbackArtistLine  = "Artist: Unknown"
	FallbackTrackPrefix = "Track"

	placeholderTracks = 10
)

// DisplayTitle returns the album title or FallbackTitle.
func DisplayTitle(title *string) string {
	return orFallback(title, FallbackTitle)
}

// DisplayArtist returns the artist or FallbackArtist.
func DisplayArtist(artist *string) string {
	return orFallback(artist, FallbackArtist)
}

// DisplayDescription returns the description or FallbackDescription.
func DisplayDescription(description *string) string {
	return orFallback(description, FallbackDescription)
}

// ArtistLine renders "Artist: <artist>", or FallbackArtistLine when absent.
func ArtistLine(artist *string) string {
	v, ok := present(artist)
	if !ok {
		return FallbackArtistLine
	}
	return "Artist: " + v
}

// PlaceholderTracks returns the decorative track list shown on the detail
// screen. The album carries no track data.
func PlaceholderTracks(title *string) []string {
	prefix, ok := present(title)
	if !ok {
		prefix = FallbackTrackPrefix
	}
	tracks := make([]string, placeholderTracks)
	for i := range tracks {
		tracks[i] = fmt.Sprintf("%s • Track %d", prefix, i+1)
	}
	return tracks
}

// ListTitle and ListArtist apply the same fallbacks to list entries, whose
// fields are always present but may be blank.
func ListTitle(a catalog.Album) string {
	return DisplayTitle(&a.Title)
}

func ListArtist(a catalog.Album) string {
	return DisplayArtist(&a.Artist)
}

func present(p *string) (string, bool) {
	v, ok := catalog.Value(p)
	if !ok {
		return "", false
	}
	v = strings.TrimSpace(v)
	return v, v != ""
}

func orFallback(p *string, fallback string) string {
	if v, ok := present(p); ok {
		return v
	}
	return fallback
}
