package memoize

import "sync"

// Locked serializes every operation on a Cache behind one mutex.
// Invoke holds the lock for the whole read-compute-store-evict sequence, so
// the wrapped function must not call back into the same Locked cache.
type Locked[V any] struct {
	mu    sync.Mutex
	cache *Cache[V]
}

func NewLocked[V any](cache *Cache[V]) *Locked[V] {
	return &Locked[V]{cache: cache}
}

func (l *Locked[V]) Invoke(args ...any) (V, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.cache.Invoke(args...)
}

func (l *Locked[V]) Peek(args ...any) (V, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.cache.Peek(args...)
}

func (l *Locked[V]) Delete(args ...any) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.cache.Delete(args...)
}

func (l *Locked[V]) CompareAndDelete(key Key, match func(V) bool) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.cache.CompareAndDelete(key, match)
}

func (l *Locked[V]) Evict() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.cache.Evict()
}

func (l *Locked[V]) Clear() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.cache.Clear()
}

func (l *Locked[V]) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.cache.Len()
}

func (l *Locked[V]) Keys() []Key {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.cache.Keys()
}

func (l *Locked[V]) Stats() Stats {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.cache.Stats()
}
