package core

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryCredentialStore(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryCredentialStore()

	_, err := store.Token(ctx)
	assert.ErrorIs(t, err, ErrNoCredential)

	require.NoError(t, store.SetToken(ctx, "jwt-123"))
	token, err := store.Token(ctx)
	require.NoError(t, err)
	assert.Equal(t, "jwt-123", token)

	require.NoError(t, store.ClearToken(ctx))
	_, err = store.Token(ctx)
	assert.ErrorIs(t, err, ErrNoCredential)
}

func TestRedisCredentialStore(t *testing.T) {
	mr := miniredis.RunT(t)
	ctx := context.Background()

	store, err := NewRedisCredentialStore(RedisConfig{
		URL:       "redis://" + mr.Addr(),
		KeyPrefix: "testshop",
		TokenTTL:  time.Hour,
	})
	require.NoError(t, err)
	defer func() {
		_ = store.Close()
	}()

	_, err = store.Token(ctx)
	assert.ErrorIs(t, err, ErrNoCredential)

	require.NoError(t, store.SetToken(ctx, "persisted-jwt"))
	token, err := store.Token(ctx)
	require.NoError(t, err)
	assert.Equal(t, "persisted-jwt", token)

	// The token lives under the configured prefix with a bounded TTL
	assert.True(t, mr.Exists("testshop:auth:token"))
	ttl := mr.TTL("testshop:auth:token")
	assert.True(t, ttl > 0 && ttl <= time.Hour, "ttl = %v", ttl)

	require.NoError(t, store.ClearToken(ctx))
	_, err = store.Token(ctx)
	assert.ErrorIs(t, err, ErrNoCredential)
	assert.False(t, mr.Exists("testshop:auth:token"))
}

func TestRedisCredentialStoreSurvivesReconnect(t *testing.T) {
	mr := miniredis.RunT(t)
	ctx := context.Background()
	url := "redis://" + mr.Addr()

	first, err := NewRedisCredentialStore(RedisConfig{URL: url})
	require.NoError(t, err)
	require.NoError(t, first.SetToken(ctx, "jwt-across-restarts"))
	require.NoError(t, first.Close())

	// A second store (a restarted process) sees the same credential
	second, err := NewRedisCredentialStore(RedisConfig{URL: url})
	require.NoError(t, err)
	defer func() {
		_ = second.Close()
	}()

	token, err := second.Token(ctx)
	require.NoError(t, err)
	assert.Equal(t, "jwt-across-restarts", token)
}

func TestRedisCredentialStoreDefaults(t *testing.T) {
	mr := miniredis.RunT(t)
	store, err := NewRedisCredentialStore(RedisConfig{URL: "redis://" + mr.Addr()})
	require.NoError(t, err)
	defer func() {
		_ = store.Close()
	}()

	require.NoError(t, store.SetToken(context.Background(), "t"))
	assert.True(t, mr.Exists("shopfront:auth:token"))
}

func TestRedisCredentialStoreBadURL(t *testing.T) {
	_, err := NewRedisCredentialStore(RedisConfig{URL: "not-a-url"})
	assert.Error(t, err)
}
