package memoize

import (
	"fmt"
	"time"

	"go.uber.org/multierr"
)

// Unbounded disables capacity-based eviction.
const Unbounded = 0

// Func is the computation wrapped by a Cache.
type Func[V any] func(args ...any) (V, error)

// EvictionHook picks the victim for the Custom strategy.
// It receives every entry in ordering order (front first) and returns the key
// to remove, or false to skip eviction for this call.
type EvictionHook[V any] func(entries []EntryView[V]) (Key, bool)

// Config is fixed when the cache is built.
type Config[V any] struct {
	MaxSize  int           // Unbounded (0) by default
	Strategy Strategy      // Recency by default
	TTL      time.Duration // 0 disables staleness
	Hook     EvictionHook[V]
	Clock    Clock
}

// Option mutates a Config before validation.
type Option[V any] func(*Config[V])

// WithMaxSize bounds the table. Unbounded disables eviction.
func WithMaxSize[V any](maxSize int) Option[V] {
	return func(c *Config[V]) {
		c.MaxSize = maxSize
	}
}

// WithStrategy picks the eviction strategy. Custom also needs WithEvictionHook.
func WithStrategy[V any](strategy Strategy) Option[V] {
	return func(c *Config[V]) {
		c.Strategy = strategy
	}
}

// WithTTL sets the age after which an entry is stale on read.
func WithTTL[V any](ttl time.Duration) Option[V] {
	return func(c *Config[V]) {
		c.TTL = ttl
	}
}

// WithEvictionHook selects the Custom strategy with the given hook.
func WithEvictionHook[V any](hook EvictionHook[V]) Option[V] {
	return func(c *Config[V]) {
		c.Strategy = Custom
		c.Hook = hook
	}
}

// WithClock replaces the time source, typically with a ManualClock in tests.
func WithClock[V any](clock Clock) Option[V] {
	return func(c *Config[V]) {
		c.Clock = clock
	}
}

// NewConfig applies opts over the defaults.
func NewConfig[V any](opts ...Option[V]) Config[V] {
	cfg := Config[V]{
		MaxSize:  Unbounded,
		Strategy: Recency,
		Clock:    SystemClock{},
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	return cfg
}

// Validate reports every problem in the configuration at once.
// The returned error wraps ErrConfiguration.
func (c Config[V]) Validate() error {
	var errs error
	if c.MaxSize < 0 {
		errs = multierr.Append(errs, fmt.Errorf("%w: %d", ErrNegativeMaxSize, c.MaxSize))
	}
	if c.TTL < 0 {
		errs = multierr.Append(errs, fmt.Errorf("%w: %s", ErrNegativeTTL, c.TTL))
	}
	if !c.Strategy.valid() {
		errs = multierr.Append(errs, fmt.Errorf("%w: %s", ErrUnknownStrategy, c.Strategy))
	}
	if c.Strategy == Custom && c.Hook == nil {
		errs = multierr.Append(errs, ErrMissingEvictionHook)
	}
	if c.Clock == nil {
		errs = multierr.Append(errs, ErrNilClock)
	}
	if errs != nil {
		return fmt.Errorf("%w: %w", ErrConfiguration, errs)
	}
	return nil
}

func (c Config[V]) bounded() bool {
	return c.MaxSize != Unbounded
}
