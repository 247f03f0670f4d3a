package storage

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryTokenStoreRedeemsOnce(t *testing.T) {
	store := NewMemoryTokenStore()
	ctx := context.Background()

	require.NoError(t, store.Put(ctx, "abc", time.Minute))

	ok, err := store.Take(ctx, "abc")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = store.Take(ctx, "abc")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestMemoryTokenStoreExpires(t *testing.T) {
	store := NewMemoryTokenStore()
	ctx := context.Background()

	require.NoError(t, store.Put(ctx, "old", -time.Second))
	ok, err := store.Take(ctx, "old")
	require.NoError(t, err)
	assert.False(t, ok)
}
