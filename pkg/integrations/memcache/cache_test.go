package memcache

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCache_SetAndGet(t *testing.T) {
	c := New[string, int](0)

	c.Set("a", 1)
	c.Set("b", 2)

	val, ok := c.Get("a")
	assert.True(t, ok)
	assert.Equal(t, 1, val)

	val, ok = c.Get("b")
	assert.True(t, ok)
	assert.Equal(t, 2, val)

	_, ok = c.Get("c")
	assert.False(t, ok)
}

func TestCache_TTLExpiry(t *testing.T) {
	c := New[string, int](30 * time.Second)

	base := time.Now()
	c.now = func() time.Time { return base }
	c.Set("tokens", 42)

	val, ok := c.Get("tokens")
	assert.True(t, ok)
	assert.Equal(t, 42, val)

	c.now = func() time.Time { return base.Add(29 * time.Second) }
	_, ok = c.Get("tokens")
	assert.True(t, ok)

	c.now = func() time.Time { return base.Add(30 * time.Second) }
	_, ok = c.Get("tokens")
	assert.False(t, ok)
}

func TestCache_GetStaleSurvivesExpiry(t *testing.T) {
	c := New[string, int](time.Second)

	base := time.Now()
	c.now = func() time.Time { return base }
	c.Set("tokens", 7)

	c.now = func() time.Time { return base.Add(time.Minute) }
	_, ok := c.Get("tokens")
	assert.False(t, ok)

	val, age, ok := c.GetStale("tokens")
	assert.True(t, ok)
	assert.Equal(t, 7, val)
	assert.Equal(t, time.Minute, age)
}

func TestCache_SetRefreshesAge(t *testing.T) {
	c := New[string, int](time.Second)

	base := time.Now()
	c.now = func() time.Time { return base }
	c.Set("tokens", 1)

	c.now = func() time.Time { return base.Add(2 * time.Second) }
	c.Set("tokens", 2)

	val, ok := c.Get("tokens")
	assert.True(t, ok)
	assert.Equal(t, 2, val)
}

func TestCache_Delete(t *testing.T) {
	c := New[string, int](0)

	c.Set("a", 1)
	c.Delete("a")

	_, ok := c.Get("a")
	assert.False(t, ok)
}

func TestCache_Keys(t *testing.T) {
	c := New[string, int](0)

	c.Set("a", 1)
	c.Set("b", 2)

	keys := c.Keys()
	assert.Len(t, keys, 2)
	assert.Contains(t, keys, "a")
	assert.Contains(t, keys, "b")
}

func TestCache_Clear(t *testing.T) {
	c := New[string, int](0)

	c.Set("a", 1)
	c.Set("b", 2)
	c.Clear()

	assert.Equal(t, 0, c.Len())
}

func TestCache_ConcurrentAccess(t *testing.T) {
	c := New[int, int](0)

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			c.Set(n, n)
			c.Get(n)
		}(i)
	}
	wg.Wait()

	assert.Equal(t, 50, c.Len())
}
