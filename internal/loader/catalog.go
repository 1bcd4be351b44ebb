package loader

import (
	"context"
	"slices"

	"github.com/five82/crate/internal/catalog"
	"github.com/five82/crate/internal/state"
)

// Catalog loads the full album collection for the home screen.
type Catalog struct {
	fetcher catalog.Fetcher
	store   *state.Store[[]catalog.Album]
	runner  *runner[[]catalog.Album]
}

// NewCatalog returns a Catalog loader in the Idle state.
func NewCatalog(fetcher catalog.Fetcher, opts ...Option) *Catalog {
	store := state.NewStore(slices.Clone[[]catalog.Album])
	return &Catalog{
		fetcher: fetcher,
		store:   store,
		runner:  newRunner("catalog", store, buildOptions(opts)),
	}
}

// Start sets Loading, lists albums once and settles to Loaded or Failed.
// It blocks until the fetch settles. Calling it again after it returns
// re-runs the fetch with a fresh lifecycle; that is how a retry works.
func (l *Catalog) Start(ctx context.Context) {
	l.runner.run(ctx, "", func(ctx context.Context) ([]catalog.Album, error) {
		albums, err := l.fetcher.ListAlbums(ctx)
		if err != nil {
			return nil, err
		}
		if albums == nil {
			albums = []catalog.Album{}
		}
		return albums, nil
	})
}

// Stop discards the result of any in-flight fetch without changing state.
func (l *Catalog) Stop() {
	l.runner.stop()
}

// State returns the current load state.
func (l *Catalog) State() state.LoadState[[]catalog.Album] {
	return l.store.Snapshot()
}

// Subscribe registers fn for every state transition.
func (l *Catalog) Subscribe(fn func(state.LoadState[[]catalog.Album])) (unsubscribe func()) {
	return l.store.Subscribe(fn)
}
