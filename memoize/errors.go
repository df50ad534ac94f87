package memoize

import "errors"

// ErrConfiguration wraps every error returned by New and Config.Validate.
var ErrConfiguration = errors.New("invalid memoize configuration")

var (
	ErrUnknownStrategy     = errors.New("unknown eviction strategy")
	ErrMissingEvictionHook = errors.New("custom eviction strategy requires an eviction hook")
	ErrNegativeMaxSize     = errors.New("max size must not be negative")
	ErrNegativeTTL         = errors.New("ttl must not be negative")
	ErrNilFunc             = errors.New("memoized function must not be nil")
	ErrNilClock            = errors.New("clock must not be nil")
)
