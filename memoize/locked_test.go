package memoize_test

import (
	"sync"
	"sync/atomic"
	"testing"

	"github.com/on-the-ground/memoize_ive_go/memoize"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocked_ConcurrentCallersComputeOnce(t *testing.T) {
	var calls atomic.Int32
	cache, err := memoize.New(func(args ...any) (int, error) {
		calls.Add(1)
		return args[0].(int) * 2, nil
	}, memoize.WithMaxSize[int](16))
	require.NoError(t, err)
	locked := memoize.NewLocked(cache)

	var wg sync.WaitGroup
	numRequests := 1000
	wg.Add(numRequests)
	for i := 0; i < numRequests; i++ {
		go func(i int) {
			defer wg.Done()
			v, err := locked.Invoke(i % 10)
			assert.NoError(t, err)
			assert.Equal(t, (i%10)*2, v)
		}(i)
	}
	wg.Wait()

	assert.Equal(t, int32(10), calls.Load())
	assert.Equal(t, 10, locked.Len())

	stats := locked.Stats()
	assert.Equal(t, uint64(10), stats.Misses)
	assert.Equal(t, uint64(numRequests-10), stats.Hits)
}

func TestLocked_CapacityHoldsUnderContention(t *testing.T) {
	cache, err := memoize.New(func(args ...any) (int, error) {
		return args[0].(int), nil
	}, memoize.WithMaxSize[int](4), memoize.WithStrategy[int](memoize.Frequency))
	require.NoError(t, err)
	locked := memoize.NewLocked(cache)

	var wg sync.WaitGroup
	for g := 0; g < 8; g++ {
		wg.Add(1)
		go func(g int) {
			defer wg.Done()
			for i := 0; i < 100; i++ {
				_, _ = locked.Invoke(g*100 + i)
				assert.LessOrEqual(t, locked.Len(), 4)
			}
		}(g)
	}
	wg.Wait()

	assert.Equal(t, 4, locked.Len())
	assert.Len(t, locked.Keys(), 4)
	assert.False(t, locked.Evict())

	locked.Clear()
	assert.Equal(t, 0, locked.Len())
}

func TestLocked_PeekDelete(t *testing.T) {
	cache, err := memoize.New(func(args ...any) (string, error) {
		return args[0].(string) + "!", nil
	})
	require.NoError(t, err)
	locked := memoize.NewLocked(cache)

	_, _ = locked.Invoke("hi")
	v, ok := locked.Peek("hi")
	assert.True(t, ok)
	assert.Equal(t, "hi!", v)

	assert.False(t, locked.CompareAndDelete(memoize.EncodeKey("hi"), func(v string) bool { return v == "" }))
	assert.True(t, locked.Delete("hi"))
	_, ok = locked.Peek("hi")
	assert.False(t, ok)
}
