package cache

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLRU_EvictsLeastRecentlyUsed(t *testing.T) {
	c := New[string, int](2)
	c.Add("a", 1)
	c.Add("b", 2)

	_, _ = c.Get("a") // a is now MRU
	c.Add("c", 3)

	_, ok := c.Get("b")
	assert.False(t, ok, "b should have been evicted")

	v, ok := c.Get("a")
	assert.True(t, ok)
	assert.Equal(t, 1, v)
	assert.Equal(t, 2, c.Len())
}

func TestLRU_UpdateAndRemove(t *testing.T) {
	c := New[string, string](4)
	c.Add("k", "v1")
	c.Add("k", "v2")

	v, _ := c.Get("k")
	assert.Equal(t, "v2", v)
	assert.Equal(t, 1, c.Len())

	c.Remove("k")
	c.Remove("missing")
	assert.Equal(t, 0, c.Len())
}

func TestLRU_PanicsOnZeroCapacity(t *testing.T) {
	assert.Panics(t, func() { New[string, int](0) })
}
