package loader

import (
	"context"
	"errors"
	"slices"
	"testing"
	"time"

	"github.com/five82/crate/internal/catalog"
	"github.com/five82/crate/internal/state"
)

func TestCatalog_StartsIdle(t *testing.T) {
	l := NewCatalog(newFakeFetcher())
	if got := l.State().Phase; got != state.Idle {
		t.Fatalf("Phase = %v, want idle", got)
	}
}

func TestCatalog_LoadedPreservesOrder(t *testing.T) {
	f := newFakeFetcher()
	l := NewCatalog(f)
	albums := []catalog.Album{
		{ID: "1", Title: "X", Artist: "Y", Description: "Z", Image: "http://i/1.png"},
		{ID: "3"},
		{ID: "2"},
	}

	done := goRun(func() { l.Start(context.Background()) })
	f.awaitCall(t, "")
	if !l.State().IsLoading() {
		t.Fatalf("Phase = %v before settle, want loading", l.State().Phase)
	}
	f.release(t, "", reply{albums: albums})
	awaitDone(t, done)

	got, ok := l.State().Result()
	if !ok {
		t.Fatalf("Phase = %v, want loaded", l.State().Phase)
	}
	if !slices.Equal(got, albums) {
		t.Fatalf("albums = %#v, want %#v", got, albums)
	}
}

func TestCatalog_EmptyListIsLoaded(t *testing.T) {
	f := newFakeFetcher()
	f.immediate = func(string) reply { return reply{} }
	l := NewCatalog(f)
	l.Start(context.Background())

	got, ok := l.State().Result()
	if !ok || got == nil || len(got) != 0 {
		t.Fatalf("Result = %#v, %v; want empty non-nil slice", got, ok)
	}
}

func TestCatalog_FailureMessage(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want string
	}{
		{"timeout", errors.New("timeout"), "timeout"},
		{"wrapped", &catalog.NetworkError{Op: "execute request", Err: errors.New("connection refused")}, "execute request: connection refused"},
		{"empty", errors.New(""), UnknownError},
		{"blank", errors.New("   "), UnknownError},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			f := newFakeFetcher()
			f.immediate = func(string) reply { return reply{err: tc.err} }
			l := NewCatalog(f)
			l.Start(context.Background())

			msg, ok := l.State().Failure()
			if !ok {
				t.Fatalf("Phase = %v, want failed", l.State().Phase)
			}
			if msg != tc.want {
				t.Fatalf("message = %q, want %q", msg, tc.want)
			}
		})
	}
}

func TestCatalog_StartTwiceRefetches(t *testing.T) {
	f := newFakeFetcher()
	calls := 0
	f.immediate = func(string) reply {
		calls++
		if calls == 1 {
			return reply{err: errors.New("offline")}
		}
		return reply{albums: []catalog.Album{{ID: "1"}}}
	}
	l := NewCatalog(f)

	l.Start(context.Background())
	first := l.State()
	if first.Phase != state.Failed {
		t.Fatalf("first Phase = %v, want failed", first.Phase)
	}

	l.Start(context.Background())
	second := l.State()
	if second.Phase != state.Loaded {
		t.Fatalf("second Phase = %v, want loaded", second.Phase)
	}
	if second.Generation <= first.Generation {
		t.Fatalf("generation %d should exceed %d", second.Generation, first.Generation)
	}
	if f.callCount() != 2 {
		t.Fatalf("fetch calls = %d, want 2", f.callCount())
	}
}

func TestCatalog_NeverSettlesBeforeFetch(t *testing.T) {
	f := newFakeFetcher()
	l := NewCatalog(f)

	var phases []state.Phase
	l.Subscribe(func(s state.LoadState[[]catalog.Album]) {
		phases = append(phases, s.Phase)
	})

	done := goRun(func() { l.Start(context.Background()) })
	f.awaitCall(t, "")
	time.Sleep(20 * time.Millisecond)
	if l.State().IsSettled() {
		t.Fatalf("state settled before fetch returned")
	}
	f.release(t, "", reply{albums: []catalog.Album{{ID: "1"}}})
	awaitDone(t, done)

	want := []state.Phase{state.Loading, state.Loaded}
	if !slices.Equal(phases, want) {
		t.Fatalf("phases = %v, want %v", phases, want)
	}
}

func TestCatalog_StopDiscardsInFlight(t *testing.T) {
	f := newFakeFetcher()
	l := NewCatalog(f)
	var transitions int
	l.Subscribe(func(state.LoadState[[]catalog.Album]) { transitions++ })

	done := goRun(func() { l.Start(context.Background()) })
	f.awaitCall(t, "")
	l.Stop()
	awaitDone(t, done)

	if !l.State().IsLoading() {
		t.Fatalf("Phase = %v after Stop, want loading (unchanged)", l.State().Phase)
	}
	if transitions != 1 {
		t.Fatalf("transitions = %d, want 1 (Loading only)", transitions)
	}
}

func TestCatalog_ResultIsIsolated(t *testing.T) {
	f := newFakeFetcher()
	albums := []catalog.Album{{ID: "1", Title: "X"}}
	f.immediate = func(string) reply { return reply{albums: albums} }
	l := NewCatalog(f)
	l.Start(context.Background())

	got, _ := l.State().Result()
	got[0].Title = "mutated"
	again, _ := l.State().Result()
	if again[0].Title != "X" {
		t.Fatalf("loaded value mutated through snapshot: %q", again[0].Title)
	}
}
