package state

// Phase identifies the active variant of a LoadState.
type Phase int

const (
	// Idle is the zero phase: no load has been started.
	Idle Phase = iota
	// Loading means a fetch is in flight; there is no value and no error.
	Loading
	// Loaded is terminal success for the current lifecycle.
	Loaded
	// Failed is terminal failure for the current lifecycle.
	Failed
)

func (p Phase) String() string {
	switch p {
	case Idle:
		return "idle"
	case Loading:
		return "loading"
	case Loaded:
		return "loaded"
	case Failed:
		return "failed"
	default:
		return "unknown"
	}
}

// LoadState is a tagged union with exactly one active variant. Value is only
// meaningful when Phase is Loaded, Message only when Phase is Failed.
type LoadState[T any] struct {
	Phase   Phase
	Value   T
	Message string

	// Key is the request key of the lifecycle (album id for detail loads;
	// empty for the catalog).
	Key string
	// Generation increases with every new lifecycle on the same store.
	Generation uint64
}

// IsLoading reports whether a fetch is in flight.
func (s LoadState[T]) IsLoading() bool {
	return s.Phase == Loading
}

// IsSettled reports whether the lifecycle reached Loaded or Failed.
func (s LoadState[T]) IsSettled() bool {
	return s.Phase == Loaded || s.Phase == Failed
}

// Result returns the loaded value and true when Phase is Loaded.
func (s LoadState[T]) Result() (T, bool) {
	if s.Phase != Loaded {
		var zero T
		return zero, false
	}
	return s.Value, true
}

// Failure returns the failure message and true when Phase is Failed.
func (s LoadState[T]) Failure() (string, bool) {
	if s.Phase != Failed {
		return "", false
	}
	return s.Message, true
}
