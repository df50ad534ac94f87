// Package decorator wraps memoize.Func values with cross-cutting behaviour.
//
// Decorators compose: Chain(fn, Logged(...), Recovered()) logs every call
// that reaches the wrapped function and turns its panics into errors. Put them
// under a memoize.Cache to observe only cache misses, or wrap the cache's
// Invoke to observe every call.
package decorator

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/on-the-ground/memoize_ive_go/memoize"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Decorator wraps a Func with extra behaviour.
type Decorator[V any] func(memoize.Func[V]) memoize.Func[V]

// Chain applies decorators to fn. The first decorator is the outermost.
func Chain[V any](fn memoize.Func[V], decorators ...Decorator[V]) memoize.Func[V] {
	for i := len(decorators) - 1; i >= 0; i-- {
		fn = decorators[i](fn)
	}
	return fn
}

// Logged logs each call with its arguments, then its result or error.
// Successful calls are logged at level, failures always at error level.
func Logged[V any](logger *zap.Logger, level zapcore.Level, name string) Decorator[V] {
	if name == "" {
		name = "anonymous"
	}
	return func(next memoize.Func[V]) memoize.Func[V] {
		return func(args ...any) (V, error) {
			fields := []zap.Field{
				zap.String("function", name),
				zap.String("call_id", uuid.NewString()),
				zap.Uint64("key_digest", memoize.EncodeKey(args...).Digest()),
			}
			logger.Log(level, "function called", append(fields, zap.Any("args", args))...)

			v, err := next(args...)
			if err != nil {
				logger.Error("function failed", append(fields, zap.Error(err))...)
				return v, err
			}
			logger.Log(level, "function completed", append(fields, zap.Any("result", v))...)
			return v, nil
		}
	}
}

// ErrPanicked wraps a panic recovered by Recovered.
var ErrPanicked = errors.New("memoized function panicked")

// Recovered turns a panic in the wrapped function into an error,
// so the failing call leaves no cache entry and reaches the caller as an error.
func Recovered[V any]() Decorator[V] {
	return func(next memoize.Func[V]) memoize.Func[V] {
		return func(args ...any) (v V, err error) {
			defer func() {
				if r := recover(); r != nil {
					if rErr, ok := r.(error); ok {
						err = fmt.Errorf("%w: %w", ErrPanicked, rErr)
					} else {
						err = fmt.Errorf("%w: %v", ErrPanicked, r)
					}
				}
			}()
			return next(args...)
		}
	}
}
