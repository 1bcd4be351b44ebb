package ui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/five82/crate/internal/catalog"
	"github.com/five82/crate/internal/state"
)

// CatalogSource is the loader behind the home screen.
type CatalogSource interface {
	Start(ctx context.Context)
	Stop()
	State() state.LoadState[[]catalog.Album]
	Subscribe(fn func(state.LoadState[[]catalog.Album])) (unsubscribe func())
}

// DetailSource is the loader behind the detail screen.
type DetailSource interface {
	Load(ctx context.Context, id string)
	Stop()
	State() state.LoadState[catalog.AlbumDetail]
	Subscribe(fn func(state.LoadState[catalog.AlbumDetail])) (unsubscribe func())
}

// Messages

// CatalogStateMsg carries a catalog loader snapshot into the program.
type CatalogStateMsg struct {
	State state.LoadState[[]catalog.Album]
}

// DetailStateMsg carries a detail loader snapshot into the program.
type DetailStateMsg struct {
	State state.LoadState[catalog.AlbumDetail]
}

type prefsSavedMsg struct {
	err error
}

// Commands

func startCatalogCmd(ctx context.Context, src CatalogSource) tea.Cmd {
	return func() tea.Msg {
		src.Start(ctx)
		return CatalogStateMsg{State: src.State()}
	}
}

func loadAlbumCmd(ctx context.Context, src DetailSource, id string) tea.Cmd {
	return func() tea.Msg {
		src.Load(ctx, id)
		return DetailStateMsg{State: src.State()}
	}
}

// tracked is the model's view of one loader. Messages can arrive out of
// order from the subscription bridge and from finished commands, so a state
// only replaces the current one when it is at least as new.
type tracked[T any] struct {
	state state.LoadState[T]
	// floor is the lowest generation belonging to the latest request.
	floor uint64
}

// expect records that a new lifecycle was requested; anything older is
// ignored from now on.
func (t *tracked[T]) expect() {
	if next := t.state.Generation + 1; next > t.floor {
		t.floor = next
	}
}

func (t *tracked[T]) accept(next state.LoadState[T]) bool {
	if next.Generation < t.floor || next.Generation < t.state.Generation {
		return false
	}
	if next.Generation == t.state.Generation && t.state.IsSettled() && !next.IsSettled() {
		return false
	}
	t.state = next
	return true
}

// pending reports whether the latest request has not been observed yet.
func (t tracked[T]) pending() bool {
	return t.state.Generation < t.floor
}

// loading reports whether the screen should show its loading indicator.
func (t tracked[T]) loading() bool {
	return t.pending() || !t.state.IsSettled()
}
