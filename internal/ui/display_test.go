package ui

import (
	"testing"

	"github.com/five82/crate/internal/catalog"
)

func ptr(s string) *string { return &s }

func TestFallbacks(t *testing.T) {
	cases := []struct {
		name string
		got  string
		want string
	}{
		{"title absent", DisplayTitle(nil), FallbackTitle},
		{"title blank", DisplayTitle(ptr("  ")), FallbackTitle},
		{"title present", DisplayTitle(ptr("X")), "X"},
		{"artist absent", DisplayArtist(nil), FallbackArtist},
		{"artist present", DisplayArtist(ptr("Y")), "Y"},
		{"description absent", DisplayDescription(nil), FallbackDescription},
		{"description present", DisplayDescription(ptr("Z")), "Z"},
		{"artist line absent", ArtistLine(nil), FallbackArtistLine},
		{"artist line present", ArtistLine(ptr("Y")), "Artist: Y"},
		{"list title blank", ListTitle(catalog.Album{}), FallbackTitle},
		{"list artist", ListArtist(catalog.Album{Artist: "Miles"}), "Miles"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if tc.got != tc.want {
				t.Fatalf("got %q, want %q", tc.got, tc.want)
			}
		})
	}
}

func TestPlaceholderTracks(t *testing.T) {
	tracks := PlaceholderTracks(ptr("Blue Train"))
	if len(tracks) != 10 {
		t.Fatalf("len(tracks) = %d, want 10", len(tracks))
	}
	if tracks[0] != "Blue Train • Track 1" || tracks[9] != "Blue Train • Track 10" {
		t.Fatalf("tracks = %q", tracks)
	}

	untitled := PlaceholderTracks(nil)
	if untitled[2] != "Track • Track 3" {
		t.Fatalf("untitled[2] = %q, want %q", untitled[2], "Track • Track 3")
	}
}
