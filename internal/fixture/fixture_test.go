package fixture

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/five82/crate/internal/catalog"
	"github.com/five82/crate/internal/loader"
	"github.com/five82/crate/internal/state"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func serve(t *testing.T, c *Catalog, opts ...Option) *catalog.Client {
	t.Helper()
	srv := httptest.NewServer(NewRouter(c, opts...))
	t.Cleanup(srv.Close)
	client, err := catalog.NewClient(srv.URL + "/api/")
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}
	return client
}

func mustParse(t *testing.T, body string) *Catalog {
	t.Helper()
	c, err := Parse([]byte(body))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	return c
}

func TestSample_ListedInOrderThroughClient(t *testing.T) {
	client := serve(t, Sample())

	albums, err := client.ListAlbums(context.Background())
	if err != nil {
		t.Fatalf("ListAlbums returned error: %v", err)
	}
	if len(albums) != Sample().Len() {
		t.Fatalf("len(albums) = %d, want %d", len(albums), Sample().Len())
	}
	for i, want := range []string{"1", "2", "3"} {
		if albums[i].ID != want {
			t.Fatalf("albums[%d].ID = %q, want %q", i, albums[i].ID, want)
		}
	}
	if albums[1].Title != "Kind of Blue" {
		t.Fatalf("albums[1].Title = %q, want Kind of Blue", albums[1].Title)
	}
}

func TestGetAlbum_ServesEntryByID(t *testing.T) {
	client := serve(t, Sample())

	detail, err := client.GetAlbum(context.Background(), "2")
	if err != nil {
		t.Fatalf("GetAlbum returned error: %v", err)
	}
	if artist, _ := catalog.Value(detail.Artist); artist != "Miles Davis" {
		t.Fatalf("Artist = %q, want Miles Davis", artist)
	}
}

func TestGetAlbum_UnknownIDIsNotFound(t *testing.T) {
	client := serve(t, Sample())

	_, err := client.GetAlbum(context.Background(), "missing")
	if !errors.Is(err, catalog.ErrNotFound) {
		t.Fatalf("GetAlbum error = %v, want ErrNotFound", err)
	}
}

func TestGetAlbum_EscapedID(t *testing.T) {
	client := serve(t, mustParse(t, `[{"id":"a/b","title":"slashed"}]`))

	detail, err := client.GetAlbum(context.Background(), "a/b")
	if err != nil {
		t.Fatalf("GetAlbum returned error: %v", err)
	}
	if title, _ := catalog.Value(detail.Title); title != "slashed" {
		t.Fatalf("Title = %q, want slashed", title)
	}
}

func TestRouter_NoPrefix(t *testing.T) {
	srv := httptest.NewServer(NewRouter(Sample(), WithPrefix("")))
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/albums")
	if err != nil {
		t.Fatalf("GET /albums: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
	if ct := resp.Header.Get("Content-Type"); ct != "application/json; charset=utf-8" {
		t.Fatalf("Content-Type = %q, want application/json; charset=utf-8", ct)
	}
}

func TestRouter_DelayTripsClientTimeout(t *testing.T) {
	srv := httptest.NewServer(NewRouter(Sample(), WithDelay(500*time.Millisecond)))
	defer srv.Close()
	client, err := catalog.NewClient(srv.URL+"/api/", catalog.WithTimeout(50*time.Millisecond))
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}

	_, err = client.ListAlbums(context.Background())
	if !catalog.IsNetwork(err) {
		t.Fatalf("ListAlbums error = %v, want network error", err)
	}
}

func TestParse(t *testing.T) {
	if _, err := Parse([]byte(`{}`)); err == nil {
		t.Fatalf("Parse(object) returned nil error, want error")
	}
	if _, err := Parse([]byte(`[1]`)); err == nil {
		t.Fatalf("Parse([1]) returned nil error, want error")
	}

	c := mustParse(t, `null`)
	if c.Len() != 0 {
		t.Fatalf("Len = %d, want 0", c.Len())
	}
	srv := httptest.NewServer(NewRouter(c))
	defer srv.Close()
	resp, err := http.Get(srv.URL + "/api/albums")
	if err != nil {
		t.Fatalf("GET: %v", err)
	}
	defer resp.Body.Close()
	body, _ := io.ReadAll(resp.Body)
	if string(body) != "[]" {
		t.Fatalf("body = %q, want []", body)
	}
}

func TestLoaders_AgainstFixture(t *testing.T) {
	client := serve(t, mustParse(t, `[
		{"id":"1","title":"T","artist":"A","description":"D","image":"I"},
		{"id":"42","title":"X"}
	]`))

	home := loader.NewCatalog(client)
	home.Start(context.Background())
	albums, ok := home.State().Result()
	if !ok {
		t.Fatalf("catalog Phase = %v (%q), want loaded", home.State().Phase, home.State().Message)
	}
	want := catalog.Album{ID: "1", Title: "T", Artist: "A", Description: "D", Image: "I"}
	if len(albums) < 1 || albums[0] != want {
		t.Fatalf("albums[0] = %#v, want %#v", albums, want)
	}

	detail := loader.NewDetail(client)
	detail.Load(context.Background(), "42")
	st := detail.State()
	got, ok := st.Result()
	if !ok || st.Key != "42" {
		t.Fatalf("detail state = %v key=%q, want loaded key=42", st.Phase, st.Key)
	}
	if title, _ := catalog.Value(got.Title); title != "X" {
		t.Fatalf("Title = %q, want X", title)
	}
	if got.Artist != nil || got.Description != nil || got.Image != nil {
		t.Fatalf("unexpected fields present: %#v", got)
	}

	detail.Load(context.Background(), "nope")
	if st := detail.State(); st.Phase != state.Failed || st.Message == "" {
		t.Fatalf("unknown id state = %v %q, want failed with message", st.Phase, st.Message)
	}
}
