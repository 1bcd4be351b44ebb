// Package state provides the load-state model shared by crate's loaders and
// screens.
//
// # Overview
//
// LoadState is a tagged union with one active variant:
//
//	Idle ──Begin──> Loading ──Resolve──> Loaded(value)
//	                   │
//	                   └──────Fail─────> Failed(message)
//
// Loading is re-entered only through a new Begin. Loaded and Failed are
// terminal for their lifecycle.
//
// # Store
//
// Store is the explicit state holder a loader writes and a screen reads.
// It replaces framework-observed variables with three things:
//
//   - Snapshot(): the current LoadState, copied
//   - Subscribe(fn): a callback for every transition, in order
//   - a generation counter compared at settlement time
//
// The generation counter is what makes out-of-order settlement safe. Every
// Begin returns a new generation; Resolve and Fail carry the generation the
// fetch started with and are dropped when a newer lifecycle exists:
//
//	genA := store.Begin("A")
//	genB := store.Begin("B")   // state: Loading(B)
//	store.Resolve(genA, a)     // false, dropped
//	store.Resolve(genB, b)     // true, state: Loaded(b)
//
// Invalidate advances the generation without changing what observers see, so
// a screen that goes away can discard any in-flight result.
//
// # Concurrency Model
//
// Reads take a read lock and never block on subscriber delivery. Transitions
// are serialised with their delivery, so subscribers see them in the order
// they happened. Subscribers run on the goroutine that caused the
// transition and may call Snapshot, but must not start another transition
// on the same store.
//
// # Defensive Copying
//
// A Store built with NewStore(clone) copies the loaded value on Resolve and
// on every Snapshot, so a slice handed to the UI can never alias the stored
// one. The zero Store performs no copying and is suitable for value types.
package state
