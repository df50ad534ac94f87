package memoize_test

import (
	"fmt"
	"testing"
	"time"

	"github.com/on-the-ground/memoize_ive_go/memoize"

	"github.com/stretchr/testify/assert"
)

type NonComparable struct {
	Field []int // slices are not comparable
}

func (n NonComparable) String() string {
	return fmt.Sprintf("NonComparable%v", n.Field)
}

type point struct {
	X, Y int
}

type node struct {
	Name string
	Next *node
}

func TestEncodeKey_StructurallyEqualArgsShareKey(t *testing.T) {
	assert.Equal(t, memoize.EncodeKey(1, "a", 2.5), memoize.EncodeKey(1, "a", 2.5))
	assert.Equal(t, memoize.EncodeKey([]int{1, 2}), memoize.EncodeKey([]int{1, 2}))
	assert.Equal(t,
		memoize.EncodeKey(map[string]int{"a": 1, "b": 2}),
		memoize.EncodeKey(map[string]int{"b": 2, "a": 1}),
	)
	assert.Equal(t, memoize.EncodeKey(point{1, 2}), memoize.EncodeKey(point{1, 2}))
	assert.Equal(t, memoize.EncodeKey(&point{1, 2}), memoize.EncodeKey(&point{1, 2}))
}

func TestEncodeKey_OrderMatters(t *testing.T) {
	assert.NotEqual(t, memoize.EncodeKey(1, 2), memoize.EncodeKey(2, 1))
	assert.NotEqual(t, memoize.EncodeKey([]int{1, 2}), memoize.EncodeKey([]int{2, 1}))
}

func TestEncodeKey_Canonicalization(t *testing.T) {
	// numbers and their text never collide
	assert.NotEqual(t, memoize.EncodeKey(1), memoize.EncodeKey("1"))
	// integers collapse across widths and signedness
	assert.Equal(t, memoize.EncodeKey(1), memoize.EncodeKey(int64(1)))
	assert.Equal(t, memoize.EncodeKey(1), memoize.EncodeKey(uint8(1)))
	// floats stay apart from integers
	assert.NotEqual(t, memoize.EncodeKey(1), memoize.EncodeKey(1.0))
	assert.Equal(t, memoize.EncodeKey(float32(0.5)), memoize.EncodeKey(0.5))
	// quoting keeps separators unambiguous
	assert.NotEqual(t, memoize.EncodeKey("a,s:b"), memoize.EncodeKey("a", "b"))
	// argument count matters
	assert.NotEqual(t, memoize.EncodeKey(), memoize.EncodeKey(nil))
	assert.NotEqual(t, memoize.EncodeKey(nil), memoize.EncodeKey(nil, nil))
}

func TestEncodeKey_NilsAndEmpties(t *testing.T) {
	var nilPtr *point
	var nilSlice []int
	assert.Equal(t, memoize.EncodeKey(nil), memoize.EncodeKey(nilPtr))
	assert.Equal(t, memoize.EncodeKey(nilSlice), memoize.EncodeKey([]int{}))
	assert.Equal(t, memoize.Key("(n)"), memoize.EncodeKey(nil))
}

func TestEncodeKey_StringerFallback(t *testing.T) {
	a := memoize.EncodeKey(NonComparable{Field: []int{1, 2, 3}})
	b := memoize.EncodeKey(NonComparable{Field: []int{1, 2, 3}})
	assert.Equal(t, a, b)
	assert.Contains(t, a.String(), "NonComparable[1 2 3]")
}

func TestEncodeKey_TimeUsesInstant(t *testing.T) {
	utc := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	local := utc.In(time.FixedZone("KST", 9*60*60))
	assert.Equal(t, memoize.EncodeKey(utc), memoize.EncodeKey(local))
}

func TestEncodeKey_CyclesEncodeByIdentity(t *testing.T) {
	n := &node{Name: "loop"}
	n.Next = n
	assert.NotPanics(t, func() {
		k1 := memoize.EncodeKey(n)
		k2 := memoize.EncodeKey(n)
		assert.Equal(t, k1, k2)
	})
}

func TestEncodeKey_CyclicMapAndSlice(t *testing.T) {
	m := map[string]any{"n": 1}
	m["self"] = m
	s := make([]any, 2)
	s[0] = "head"
	s[1] = s

	assert.NotPanics(t, func() {
		assert.Equal(t, memoize.EncodeKey(m), memoize.EncodeKey(m))
		assert.Equal(t, memoize.EncodeKey(s), memoize.EncodeKey(s))
	})

	other := map[string]any{"n": 1}
	other["self"] = other
	assert.NotEqual(t, memoize.EncodeKey(m), memoize.EncodeKey(other))
}

func TestEncodeKey_SharedSlicesStillEncodeByValue(t *testing.T) {
	backing := []int{1, 2, 3}
	assert.Equal(t, memoize.EncodeKey(backing[:2]), memoize.EncodeKey([]int{1, 2}))

	inner := []int{7}
	assert.Equal(t,
		memoize.EncodeKey([]any{inner, inner}),
		memoize.EncodeKey([]any{[]int{7}, []int{7}}),
	)

	shared := map[string]int{"a": 1}
	assert.Equal(t,
		memoize.EncodeKey([]any{shared, shared}),
		memoize.EncodeKey([]any{map[string]int{"a": 1}, map[string]int{"a": 1}}),
	)
}

func TestEncodeKey_FuncsAndChannelsByIdentity(t *testing.T) {
	ch1 := make(chan int)
	ch2 := make(chan int)
	assert.Equal(t, memoize.EncodeKey(ch1), memoize.EncodeKey(ch1))
	assert.NotEqual(t, memoize.EncodeKey(ch1), memoize.EncodeKey(ch2))
}

func TestKey_Digest(t *testing.T) {
	k := memoize.EncodeKey(1, 2)
	assert.Equal(t, k.Digest(), memoize.EncodeKey(1, 2).Digest())
	assert.NotEqual(t, k.Digest(), memoize.EncodeKey(2, 1).Digest())
}
