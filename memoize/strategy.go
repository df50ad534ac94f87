package memoize

import (
	"fmt"
	"strings"
)

// Strategy selects the victim when the cache grows past its max size.
type Strategy int

const (
	// Recency evicts the least recently touched entry.
	Recency Strategy = iota

	// Age evicts the first entry whose age exceeds the TTL.
	// When none is stale it falls back to the front of the ordering.
	Age

	// Frequency evicts the entry with the smallest use count.
	// Ties go to the entry encountered first in insertion order.
	Frequency

	// Custom delegates victim selection to an EvictionHook.
	Custom
)

func (s Strategy) String() string {
	switch s {
	case Recency:
		return "recency"
	case Age:
		return "age"
	case Frequency:
		return "frequency"
	case Custom:
		return "custom"
	default:
		return fmt.Sprintf("strategy(%d)", int(s))
	}
}

func (s Strategy) valid() bool {
	return s >= Recency && s <= Custom
}

// ParseStrategy maps a strategy name to its Strategy.
// The classic cache acronyms (lru, ttl, lfu) are accepted as aliases.
func ParseStrategy(name string) (Strategy, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "recency", "lru":
		return Recency, nil
	case "age", "ttl":
		return Age, nil
	case "frequency", "lfu":
		return Frequency, nil
	case "custom":
		return Custom, nil
	default:
		return 0, fmt.Errorf("%w: %w %q", ErrConfiguration, ErrUnknownStrategy, name)
	}
}

// MarshalText implements encoding.TextMarshaler.
func (s Strategy) MarshalText() ([]byte, error) {
	if !s.valid() {
		return nil, fmt.Errorf("%w: %d", ErrUnknownStrategy, int(s))
	}
	return []byte(s.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (s *Strategy) UnmarshalText(text []byte) error {
	parsed, err := ParseStrategy(string(text))
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}
