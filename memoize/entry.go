package memoize

import (
	"time"

	list "github.com/bahlo/generic-list-go"
)

// entry is the single record kept per key. Value, timestamp and use count
// live together so they can never drift apart.
type entry[V any] struct {
	key       Key
	value     V
	touchedAt time.Time
	useCount  int
	elem      *list.Element[*entry[V]]
}

func (e *entry[V]) touch(now time.Time) {
	e.touchedAt = now
	e.useCount++
}

// EntryView is a read-only snapshot of one cache entry.
type EntryView[V any] struct {
	Key       Key
	Value     V
	TouchedAt time.Time
	UseCount  int
	Age       time.Duration
}

func (e *entry[V]) view(now time.Time) EntryView[V] {
	return EntryView[V]{
		Key:       e.key,
		Value:     e.value,
		TouchedAt: e.touchedAt,
		UseCount:  e.useCount,
		Age:       ageOf(e.touchedAt, now),
	}
}
