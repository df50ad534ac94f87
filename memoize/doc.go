// Package memoize caches the results of pure functions in a bounded table.
//
// A Cache wraps a Func and keys every call by the canonical encoding of its
// argument sequence (see EncodeKey). Structurally equal arguments share an
// entry, so callers may pass freshly built slices, maps or structs.
//
// When the table grows past its maximum size, one entry is evicted per call:
//   - Recency: the entry touched least recently.
//   - Age: the first entry older than the TTL, else the oldest inserted one.
//   - Frequency: the entry used the fewest times. Ties go to the older entry.
//   - Custom: whatever the EvictionHook names, or nothing.
//
// A TTL is checked on read. A stale entry is dropped and recomputed.
// Errors returned by the wrapped function reach the caller and are not stored.
//
// The cache never calls a function twice to check its result, so wrapping a
// function that reads the clock or does I/O silently serves old answers.
//
// MemoizeI1 to MemoizeI4 give typed wrappers for common arities. Cache is not
// safe for concurrent use; share it through NewLocked.
package memoize
