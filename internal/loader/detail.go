package loader

import (
	"context"

	"github.com/five82/crate/internal/catalog"
	"github.com/five82/crate/internal/state"
)

// Detail loads a single album keyed by id for the detail screen.
//
// Every Load opens a new lifecycle: the state resets to Loading(id)
// immediately and a fetch started by an earlier Load can no longer settle.
// Loading the same id again refetches, even when it is already Loaded.
type Detail struct {
	fetcher catalog.Fetcher
	store   *state.Store[catalog.AlbumDetail]
	runner  *runner[catalog.AlbumDetail]
}

// NewDetail returns a Detail loader in the Idle state.
func NewDetail(fetcher catalog.Fetcher, opts ...Option) *Detail {
	store := &state.Store[catalog.AlbumDetail]{}
	return &Detail{
		fetcher: fetcher,
		store:   store,
		runner:  newRunner("detail", store, buildOptions(opts)),
	}
}

// Load fetches album id and blocks until that fetch settles.
func (l *Detail) Load(ctx context.Context, id string) {
	l.runner.run(ctx, id, func(ctx context.Context) (catalog.AlbumDetail, error) {
		return l.fetcher.GetAlbum(ctx, id)
	})
}

// Stop discards the result of any in-flight fetch without changing state.
func (l *Detail) Stop() {
	l.runner.stop()
}

// State returns the current load state. Key holds the requested id.
func (l *Detail) State() state.LoadState[catalog.AlbumDetail] {
	return l.store.Snapshot()
}

// Subscribe registers fn for every state transition.
func (l *Detail) Subscribe(fn func(state.LoadState[catalog.AlbumDetail])) (unsubscribe func()) {
	return l.store.Subscribe(fn)
}
