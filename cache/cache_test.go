package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cinelist/cinelist/config"
)

func TestManager_TTL(t *testing.T) {
	m := New(&config.CacheConfig{Type: config.CacheTypeMemory, TTL: 15})
	assert.Equal(t, 15*time.Minute, m.TTL())
}

func TestPrefixedCache_RoundTrip(t *testing.T) {
	ctx := context.Background()
	m := New(&config.CacheConfig{Type: config.CacheTypeMemory, TTL: 5})

	type item struct {
		Name  string `json:"name"`
		Count int    `json:"count"`
	}

	c := For[item](m, "test:")

	_, err := c.Get(ctx, "missing")
	assert.Error(t, err)

	want := item{Name: "popcorn", Count: 3}
	require.NoError(t, c.Set(ctx, "snack", want))

	got, err := c.Get(ctx, "snack")
	require.NoError(t, err)
	assert.Equal(t, want, got)

	require.NoError(t, c.Delete(ctx, "snack"))
	_, err = c.Get(ctx, "snack")
	assert.Error(t, err)
}

func TestPrefixedCache_PrefixesIsolateTypes(t *testing.T) {
	ctx := context.Background()
	m := New(&config.CacheConfig{Type: config.CacheTypeMemory, TTL: 5})

	strings := For[[]string](m, "a:")
	ints := For[[]int](m, "b:")

	require.NoError(t, strings.Set(ctx, "key", []string{"x"}))
	require.NoError(t, ints.Set(ctx, "key", []int{1, 2}))

	s, err := strings.Get(ctx, "key")
	require.NoError(t, err)
	assert.Equal(t, []string{"x"}, s)

	i, err := ints.Get(ctx, "key")
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2}, i)
}
