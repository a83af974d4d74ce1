package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJSONRoundTripAndDelete(t *testing.T) {
	ctx := context.Background()
	store := NewStore(Options{Prefix: "trailerboard"})

	type summary struct{ Total int }
	require.NoError(t, store.SetJSON(ctx, "board:summary", summary{Total: 7}, time.Minute))

	var got summary
	ok, err := store.GetJSON(ctx, "board:summary", &got)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, 7, got.Total)

	ttl, ok := store.TTL(ctx, "board:summary")
	assert.True(t, ok)
	assert.LessOrEqual(t, ttl, time.Minute)

	store.Delete(ctx, "board:summary")
	ok, err = store.GetJSON(ctx, "board:summary", &got)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestNamespacesShareBackend(t *testing.T) {
	ctx := context.Background()
	root := NewStore(Options{Prefix: ":app:"})
	board := root.Namespace("board")

	board.Set(ctx, "k", "v", 0)
	raw, ok := root.Get(ctx, "board:k")
	require.True(t, ok)
	assert.Equal(t, "v", raw)

	_, ok = root.Get(ctx, "k")
	assert.False(t, ok)
}

func TestGetJSONIgnoresForeignValues(t *testing.T) {
	ctx := context.Background()
	store := NewStore(Options{})
	store.Set(ctx, "plain", 12, 0)

	var dest map[string]any
	ok, err := store.GetJSON(ctx, "plain", &dest)
	assert.NoError(t, err)
	assert.False(t, ok)
}

func TestIncrementCreatesThenAdds(t *testing.T) {
	ctx := context.Background()
	store := NewStore(Options{DefaultTTL: time.Minute, Prefix: "rate"})

	n, err := store.Increment(ctx, "10.0.0.1", 1, time.Second)
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)

	n, err = store.Increment(ctx, "10.0.0.1", 2, time.Second)
	require.NoError(t, err)
	assert.EqualValues(t, 3, n)

	ttl, ok := store.TTL(ctx, "10.0.0.1")
	require.True(t, ok)
	assert.LessOrEqual(t, ttl, time.Second)

	store.Set(ctx, "text", "nope", 0)
	_, err = store.Increment(ctx, "text", 1, 0)
	assert.Error(t, err)
}
