package cache

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"retiresaveup/internal/core"
)

func TestLRUCache_EvictsLeastRecentlyUsed(t *testing.T) {
	c := NewLRUCache[int](2, time.Minute)
	c.Set("a", 1)
	c.Set("b", 2)

	_, ok := c.Get("a") // a becomes most recent
	require.True(t, ok)

	c.Set("c", 3)

	_, ok = c.Get("b")
	assert.False(t, ok, "b should have been evicted")
	v, ok := c.Get("a")
	assert.True(t, ok)
	assert.Equal(t, 1, v)
	assert.Equal(t, 2, c.Size())
}

func TestLRUCache_TTL(t *testing.T) {
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	c := NewLRUCache[string](10, time.Minute)
	c.now = func() time.Time { return now }

	c.Set("k", "v")
	c.Set("other", "w")

	now = now.Add(30 * time.Second)
	_, ok := c.Get("k")
	assert.True(t, ok)

	now = now.Add(31 * time.Second)
	_, ok = c.Get("k")
	assert.False(t, ok)

	assert.Equal(t, 1, c.CleanExpired())
	assert.Equal(t, 0, c.Size())
}

func TestLRUCache_Stats(t *testing.T) {
	c := NewLRUCache[int](4, time.Minute)
	c.Set("x", 1)
	c.Get("x")
	c.Get("x")
	c.Get("y")

	assert.Equal(t, Stats{Size: 1, Hits: 2, Misses: 1}, c.Stats())
}

func TestLRUCache_ZeroSizeDisables(t *testing.T) {
	c := NewLRUCache[int](0, time.Minute)
	c.Set("x", 1)

	_, ok := c.Get("x")
	assert.False(t, ok)
	assert.Equal(t, 0, c.Size())
}

func TestLRUCache_OverwriteAndDelete(t *testing.T) {
	c := NewLRUCache[int](2, time.Minute)
	c.Set("x", 1)
	c.Set("x", 2)
	v, _ := c.Get("x")
	assert.Equal(t, 2, v)

	c.Delete("x")
	_, ok := c.Get("x")
	assert.False(t, ok)
}

func TestReturnsKey(t *testing.T) {
	in := core.ReturnsInput{
		Age:          29,
		Wage:         50000,
		Inflation:    5.5,
		Transactions: []core.TransactionInput{{Date: "2023-10-12 20:15:30", Amount: 250}},
	}

	k1, err := ReturnsKey(core.VehicleNPS, in)
	require.NoError(t, err)
	k2, err := ReturnsKey(core.VehicleNPS, in)
	require.NoError(t, err)
	assert.Equal(t, k1, k2)
	assert.True(t, strings.HasPrefix(k1, "nps:"))

	idx, err := ReturnsKey(core.VehicleIndex, in)
	require.NoError(t, err)
	assert.NotEqual(t, k1, idx)

	in.Age = 30
	changed, err := ReturnsKey(core.VehicleNPS, in)
	require.NoError(t, err)
	assert.NotEqual(t, k1, changed)
}

func TestManager_CleansRegisteredCaches(t *testing.T) {
	c := NewLRUCache[int](4, time.Millisecond)
	c.Set("x", 1)

	m := NewManager(nil)
	m.Register(c)
	m.StartCleanup(5 * time.Millisecond)
	defer m.Stop()

	assert.Eventually(t, func() bool { return c.Size() == 0 }, time.Second, 5*time.Millisecond)
}
