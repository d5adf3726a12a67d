package cache

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFIFOBound(t *testing.T) {
	t.Parallel()

	const capacity, extra = 10, 4
	c := NewFIFO[int](capacity)
	for i := 0; i < capacity+extra; i++ {
		c.Put(fmt.Sprintf("k%d", i), i)
	}

	assert.Equal(t, capacity, c.Len())
	for i := 0; i < extra; i++ {
		_, ok := c.Get(fmt.Sprintf("k%d", i))
		assert.False(t, ok, "k%d should have been evicted", i)
	}
	for i := extra; i < capacity+extra; i++ {
		v, ok := c.Get(fmt.Sprintf("k%d", i))
		require.True(t, ok)
		assert.Equal(t, i, v)
	}
}

func TestFIFOIgnoresAccessOrder(t *testing.T) {
	t.Parallel()

	c := NewFIFO[string](2)
	c.Put("a", "1")
	c.Put("b", "2")
	_, _ = c.Get("a")
	c.Put("c", "3")

	_, ok := c.Get("a")
	assert.False(t, ok, "reads must not protect the oldest entry")
	for _, key := range []string{"b", "c"} {
		_, ok := c.Get(key)
		assert.True(t, ok, key)
	}
}

func TestFIFOReplaceKeepsPosition(t *testing.T) {
	t.Parallel()

	c := NewFIFO[string](2)
	c.Put("a", "1")
	c.Put("b", "2")
	c.Put("a", "updated")

	assert.Equal(t, 2, c.Len())
	v, _ := c.Get("a")
	assert.Equal(t, "updated", v)

	c.Put("c", "3")
	_, ok := c.Get("a")
	assert.False(t, ok)
}

func TestFIFOEvictCallbackAndClear(t *testing.T) {
	t.Parallel()

	c := NewFIFO[int](1)
	var evicted []string
	c.OnEvict(func(key string) { evicted = append(evicted, key) })

	c.Put("a", 1)
	c.Put("b", 2)
	assert.Equal(t, []string{"a"}, evicted)

	c.Clear()
	assert.Equal(t, 0, c.Len())
	assert.Equal(t, 1, c.Capacity())
}

func TestFIFODefaultCapacity(t *testing.T) {
	t.Parallel()
	assert.Equal(t, DefaultCapacity, NewFIFO[int](0).Capacity())
}

func TestFIFOConcurrentPutNeverExceedsCapacity(t *testing.T) {
	t.Parallel()

	c := NewFIFO[int](50)
	var wg sync.WaitGroup
	for g := 0; g < 8; g++ {
		wg.Add(1)
		go func(g int) {
			defer wg.Done()
			for i := 0; i < 200; i++ {
				c.Put(fmt.Sprintf("%d-%d", g, i%75), i)
				assert.LessOrEqual(t, c.Len(), 50)
			}
		}(g)
	}
	wg.Wait()
	assert.Equal(t, 50, c.Len())
}
