package cache

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCache_SetAndGet(t *testing.T) {
	c := New(time.Minute)

	c.Set("account:1", "alice")

	value, ok := c.Get("account:1")
	require.True(t, ok)
	assert.Equal(t, "alice", value)

	_, ok = c.Get("account:2")
	assert.False(t, ok)
}

func TestCache_SetReplacesExisting(t *testing.T) {
	c := New(time.Minute)

	c.Set("account:1", "alice")
	c.Set("account:1", "bob")

	value, ok := c.Get("account:1")
	require.True(t, ok)
	assert.Equal(t, "bob", value)
	assert.Equal(t, 1, c.Len())
}

func TestCache_Expiry(t *testing.T) {
	c := New(time.Minute)

	current := time.Now()
	c.now = func() time.Time { return current }

	c.Set("instrument:1", 42)

	_, ok := c.Get("instrument:1")
	require.True(t, ok)

	current = current.Add(2 * time.Minute)

	_, ok = c.Get("instrument:1")
	assert.False(t, ok)
	assert.Equal(t, 0, c.Len(), "expired entry should be removed on read")
}

func TestCache_Delete(t *testing.T) {
	c := New(time.Minute)

	c.Set("account:1", "alice")
	c.Set("instrument:1", "card")
	c.Set("instruments:owner:1", "list")

	c.Delete("account:1", "instruments:owner:1", "missing-key")

	_, ok := c.Get("account:1")
	assert.False(t, ok)
	_, ok = c.Get("instruments:owner:1")
	assert.False(t, ok)
	_, ok = c.Get("instrument:1")
	assert.True(t, ok)
}

func TestCache_NilIsNoOp(t *testing.T) {
	var c *Cache

	c.Set("account:1", "alice")
	c.Delete("account:1")
	c.OnLookup(func(bool) {})

	_, ok := c.Get("account:1")
	assert.False(t, ok)
	assert.Equal(t, 0, c.Len())
}

func TestCache_OnLookup(t *testing.T) {
	c := New(time.Minute)

	var hits, misses int
	c.OnLookup(func(hit bool) {
		if hit {
			hits++
		} else {
			misses++
		}
	})

	c.Get("account:1")
	c.Set("account:1", "alice")
	c.Get("account:1")
	c.Get("account:1")

	assert.Equal(t, 2, hits)
	assert.Equal(t, 1, misses)
}
