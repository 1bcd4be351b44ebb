package state

import (
	"slices"
	"sync"
)

// Store holds the current LoadState of one loader and notifies subscribers
// of every transition. The zero value is ready to use.
//
// Transitions are guarded by a generation counter: Begin opens a new
// lifecycle and returns its generation, and Resolve/Fail only apply a result
// whose generation is still current. A settling fetch from an older
// lifecycle is reported as stale and dropped.
type Store[T any] struct {
	// notify serialises transitions together with their delivery so
	// subscribers observe them in order. It is never held by Snapshot.
	notify sync.Mutex

	mu          sync.RWMutex
	state       LoadState[T]
	generation  uint64
	clone       func(T) T
	subscribers map[int]func(LoadState[T])
	nextSubID   int
}

// NewStore returns a Store that copies loaded values with clone on the way
// in and out, so callers never share a mutable value with the store.
func NewStore[T any](clone func(T) T) *Store[T] {
	return &Store[T]{clone: clone}
}

// Snapshot returns a copy of the current state.
func (s *Store[T]) Snapshot() LoadState[T] {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.copyState(s.state)
}

// Generation returns the generation of the current lifecycle.
func (s *Store[T]) Generation() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.generation
}

// Begin discards the previous lifecycle, sets Loading for key and returns
// the new generation.
func (s *Store[T]) Begin(key string) uint64 {
	s.notify.Lock()
	defer s.notify.Unlock()

	s.mu.Lock()
	s.generation++
	s.state = LoadState[T]{Phase: Loading, Key: key, Generation: s.generation}
	gen := s.generation
	snap, subs := s.copyState(s.state), s.subscriberList()
	s.mu.Unlock()

	deliver(subs, snap)
	return gen
}

// Resolve moves the lifecycle identified by gen to Loaded(value). It returns
// false, changing nothing, when gen is no longer current or the lifecycle
// already settled.
func (s *Store[T]) Resolve(gen uint64, value T) bool {
	return s.settle(gen, func(next *LoadState[T]) {
		next.Phase = Loaded
		next.Value = s.cloneValue(value)
	})
}

// Fail moves the lifecycle identified by gen to Failed(message), with the
// same staleness rule as Resolve.
func (s *Store[T]) Fail(gen uint64, message string) bool {
	return s.settle(gen, func(next *LoadState[T]) {
		next.Phase = Failed
		next.Message = message
	})
}

func (s *Store[T]) settle(gen uint64, apply func(*LoadState[T])) bool {
	s.notify.Lock()
	defer s.notify.Unlock()

	s.mu.Lock()
	if gen != s.generation || s.state.Phase != Loading {
		s.mu.Unlock()
		return false
	}
	next := LoadState[T]{Key: s.state.Key, Generation: gen}
	apply(&next)
	s.state = next
	snap, subs := s.copyState(s.state), s.subscriberList()
	s.mu.Unlock()

	deliver(subs, snap)
	return true
}

// Invalidate advances the generation without touching the visible state, so
// any in-flight fetch settles as stale. Used when the consumer goes away.
func (s *Store[T]) Invalidate() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.generation++
}

// Subscribe registers fn for every future transition and returns a function
// that removes it. fn runs synchronously on the transitioning goroutine and
// must not call Begin, Resolve or Fail on the same store.
func (s *Store[T]) Subscribe(fn func(LoadState[T])) (unsubscribe func()) {
	if fn == nil {
		return func() {}
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.subscribers == nil {
		s.subscribers = make(map[int]func(LoadState[T]))
	}
	id := s.nextSubID
	s.nextSubID++
	s.subscribers[id] = fn

	var once sync.Once
	return func() {
		once.Do(func() {
			s.mu.Lock()
			defer s.mu.Unlock()
			delete(s.subscribers, id)
		})
	}
}

func (s *Store[T]) subscriberList() []func(LoadState[T]) {
	if len(s.subscribers) == 0 {
		return nil
	}
	ids := make([]int, 0, len(s.subscribers))
	for id := range s.subscribers {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	out := make([]func(LoadState[T]), 0, len(ids))
	for _, id := range ids {
		out = append(out, s.subscribers[id])
	}
	return out
}

func (s *Store[T]) copyState(in LoadState[T]) LoadState[T] {
	out := in
	if in.Phase == Loaded {
		out.Value = s.cloneValue(in.Value)
	}
	return out
}

func (s *Store[T]) cloneValue(v T) T {
	if s.clone == nil {
		return v
	}
	return s.clone(v)
}

func deliver[T any](subs []func(LoadState[T]), snap LoadState[T]) {
	for _, fn := range subs {
		fn(snap)
	}
}
