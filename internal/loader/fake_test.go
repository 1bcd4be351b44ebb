package loader

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/five82/crate/internal/catalog"
)

// reply is what a gated fake call returns once released.
type reply struct {
	albums []catalog.Album
	detail catalog.AlbumDetail
	err    error
}

// fakeFetcher records calls; each call blocks on its own gate until the test
// releases it, so settlement order is under test control.
type fakeFetcher struct {
	mu     sync.Mutex
	calls  []string
	gates  map[string][]chan reply
	called chan string

	// immediate, when set, answers without gating.
	immediate func(key string) reply
	// ignoreCancel keeps gated calls blocked even after their context is
	// cancelled, like a transport that does not honour cancellation.
	ignoreCancel bool
}

func newFakeFetcher() *fakeFetcher {
	return &fakeFetcher{
		gates:  make(map[string][]chan reply),
		called: make(chan string, 16),
	}
}

func (f *fakeFetcher) wait(ctx context.Context, key string) reply {
	f.mu.Lock()
	f.calls = append(f.calls, key)
	immediate := f.immediate
	ignoreCancel := f.ignoreCancel
	var gate chan reply
	if immediate == nil {
		gate = make(chan reply, 1)
		f.gates[key] = append(f.gates[key], gate)
	}
	f.mu.Unlock()

	if immediate != nil {
		return immediate(key)
	}
	f.called <- key
	if ignoreCancel {
		return <-gate
	}
	select {
	case r := <-gate:
		return r
	case <-ctx.Done():
		return reply{err: ctx.Err()}
	}
}

func (f *fakeFetcher) ListAlbums(ctx context.Context) ([]catalog.Album, error) {
	r := f.wait(ctx, "")
	return r.albums, r.err
}

func (f *fakeFetcher) GetAlbum(ctx context.Context, id string) (catalog.AlbumDetail, error) {
	r := f.wait(ctx, id)
	return r.detail, r.err
}

// release answers the oldest pending call for key.
func (f *fakeFetcher) release(t *testing.T, key string, r reply) {
	t.Helper()
	f.mu.Lock()
	defer f.mu.Unlock()
	pending := f.gates[key]
	if len(pending) == 0 {
		t.Fatalf("no pending call for %q", key)
	}
	pending[0] <- r
	f.gates[key] = pending[1:]
}

func (f *fakeFetcher) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}

// awaitCall blocks until the fetcher has been called for key.
func (f *fakeFetcher) awaitCall(t *testing.T, key string) {
	t.Helper()
	select {
	case got := <-f.called:
		if got != key {
			t.Fatalf("fetch called for %q, want %q", got, key)
		}
	case <-time.After(2 * time.Second):
		t.Fatalf("timed out waiting for fetch of %q", key)
	}
}

// goRun runs fn in a goroutine and returns a channel closed when it returns.
func goRun(fn func()) <-chan struct{} {
	done := make(chan struct{})
	go func() {
		defer close(done)
		fn()
	}()
	return done
}

func awaitDone(t *testing.T, done <-chan struct{}) {
	t.Helper()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatalf("timed out waiting for load to return")
	}
}

func strPtr(s string) *string { return &s }
