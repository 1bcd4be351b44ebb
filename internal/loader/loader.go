package loader

import (
	"context"
	"errors"
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/five82/crate/internal/state"
)

// UnknownError is the failure message used when an error carries no text.
const UnknownError = "Unknown error"

// Option configures a loader.
type Option func(*options)

type options struct {
	logger *zap.Logger
}

// WithLogger attaches a logger. Loaders log at debug level except failures.
func WithLogger(l *zap.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

func buildOptions(opts []Option) options {
	o := options{logger: zap.NewNop()}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// FailureMessage converts err into the human-readable text of a Failed
// state. It never returns an empty string for a non-nil error.
func FailureMessage(err error) string {
	if err == nil {
		return ""
	}
	if msg := strings.TrimSpace(err.Error()); msg != "" {
		return msg
	}
	return UnknownError
}

// runner owns one Store and the cancel func of its in-flight fetch.
type runner[T any] struct {
	store  *state.Store[T]
	logger *zap.Logger

	mu     sync.Mutex
	gen    uint64
	cancel context.CancelFunc
}

func newRunner[T any](name string, store *state.Store[T], o options) *runner[T] {
	return &runner[T]{
		store:  store,
		logger: o.logger.With(zap.String("loader", name)),
	}
}

// run opens a new lifecycle for key, performs exactly one fetch and settles
// the lifecycle if it is still current. It blocks until fetch returns.
func (r *runner[T]) run(ctx context.Context, key string, fetch func(context.Context) (T, error)) {
	if ctx == nil {
		ctx = context.Background()
	}
	fetchCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	r.mu.Lock()
	if r.cancel != nil {
		r.cancel()
	}
	gen := r.store.Begin(key)
	r.gen = gen
	r.cancel = cancel
	r.mu.Unlock()

	r.logger.Debug("fetch started", zap.String("key", key), zap.Uint64("generation", gen))
	value, err := fetch(fetchCtx)

	r.mu.Lock()
	if r.gen == gen {
		r.cancel = nil
	}
	r.mu.Unlock()

	var applied bool
	if err != nil {
		applied = r.store.Fail(gen, FailureMessage(err))
		if applied {
			r.logger.Warn("fetch failed", zap.String("key", key), zap.Error(err))
		}
	} else {
		applied = r.store.Resolve(gen, value)
	}
	if !applied {
		fields := []zap.Field{zap.String("key", key), zap.Uint64("generation", gen)}
		if errors.Is(err, context.Canceled) {
			fields = append(fields, zap.Bool("cancelled", true))
		}
		r.logger.Debug("stale result discarded", fields...)
		return
	}
	r.logger.Debug("fetch settled", zap.String("key", key), zap.Bool("failed", err != nil))
}

// stop discards any in-flight result and cancels its request. The visible
// state is left as it was.
func (r *runner[T]) stop() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.store.Invalidate()
	r.gen = 0
	if r.cancel != nil {
		r.cancel()
		r.cancel = nil
	}
}
