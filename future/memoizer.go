package future

import (
	"context"
	"fmt"

	"github.com/on-the-ground/memoize_ive_go/memoize"
	"go.uber.org/zap"
)

// Func is an asynchronous computation keyed by its arguments.
type Func[T any] func(ctx context.Context, args ...any) (T, error)

// Memoizer memoizes futures. It is safe for concurrent use.
type Memoizer[T any] struct {
	ctx        context.Context
	fn         Func[T]
	cache      *memoize.Locked[*Future[T]]
	keepFailed bool
	logger     *zap.Logger
}

type options[T any] struct {
	cacheOpts  []memoize.Option[*Future[T]]
	keepFailed bool
	logger     *zap.Logger
}

type Option[T any] func(*options[T])

// WithCacheOptions configures the underlying memoize.Cache.
func WithCacheOptions[T any](opts ...memoize.Option[*Future[T]]) Option[T] {
	return func(o *options[T]) {
		o.cacheOpts = append(o.cacheOpts, opts...)
	}
}

// WithKeepFailed keeps futures that resolved with an error in the cache.
// By default they are purged as soon as they fail, so the next call retries.
func WithKeepFailed[T any]() Option[T] {
	return func(o *options[T]) {
		o.keepFailed = true
	}
}

func WithLogger[T any](logger *zap.Logger) Option[T] {
	return func(o *options[T]) {
		o.logger = logger
	}
}

// Memoize builds a Memoizer. Computations run with ctx's values; see Go.
func Memoize[T any](ctx context.Context, fn Func[T], opts ...Option[T]) (*Memoizer[T], error) {
	o := options[T]{logger: zap.NewNop()}
	for _, opt := range opts {
		opt(&o)
	}
	if fn == nil {
		return nil, fmt.Errorf("%w: %w", memoize.ErrConfiguration, memoize.ErrNilFunc)
	}

	m := &Memoizer[T]{
		ctx:        ctx,
		fn:         fn,
		keepFailed: o.keepFailed,
		logger:     o.logger,
	}
	cache, err := memoize.New(m.launch, o.cacheOpts...)
	if err != nil {
		return nil, err
	}
	m.cache = memoize.NewLocked(cache)
	return m, nil
}

// Call returns the future for args, starting the computation on a miss.
func (m *Memoizer[T]) Call(args ...any) *Future[T] {
	f, err := m.cache.Invoke(args...)
	if err != nil {
		// launch never fails; keep the contract total anyway
		return Resolved(*new(T), err)
	}
	return f
}

// Await is shorthand for Call(args...).Await(ctx).
func (m *Memoizer[T]) Await(ctx context.Context, args ...any) (T, error) {
	return m.Call(args...).Await(ctx)
}

func (m *Memoizer[T]) Len() int {
	return m.cache.Len()
}

func (m *Memoizer[T]) Stats() memoize.Stats {
	return m.cache.Stats()
}

// Forget drops the cached future for args, pending or not.
func (m *Memoizer[T]) Forget(args ...any) bool {
	return m.cache.Delete(args...)
}

// launch runs under the cache lock. It only starts the computation.
func (m *Memoizer[T]) launch(args ...any) (*Future[T], error) {
	key := memoize.EncodeKey(args...)
	var settle func(*Future[T])
	if !m.keepFailed {
		settle = func(f *Future[T]) {
			if f.err == nil {
				return
			}
			purged := m.cache.CompareAndDelete(key, func(cached *Future[T]) bool {
				return cached == f
			})
			m.logger.Debug("failed future settled",
				zap.Uint64("key_digest", key.Digest()),
				zap.Bool("purged", purged),
				zap.Error(f.err),
			)
		}
	}
	return start(m.ctx, func(ctx context.Context) (T, error) {
		return m.fn(ctx, args...)
	}, settle), nil
}
