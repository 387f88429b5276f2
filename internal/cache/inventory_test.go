package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type cachedUser struct {
	ID       uint   `json:"id"`
	Username string `json:"username"`
}

func setupMiniredis(t *testing.T) *miniredis.Miniredis {
	t.Helper()
	mr := miniredis.RunT(t)
	SetClient(redis.NewClient(&redis.Options{Addr: mr.Addr()}))
	t.Cleanup(func() { SetClient(nil) })
	return mr
}

func TestAside(t *testing.T) {
	ctx := context.Background()

	t.Run("miss loads and caches", func(t *testing.T) {
		mr := setupMiniredis(t)

		loads := 0
		var got cachedUser
		err := Aside(ctx, UserKey(1), &got, UserTTL, func() error {
			loads++
			got = cachedUser{ID: 1, Username: "bird"}
			return nil
		})
		require.NoError(t, err)
		assert.Equal(t, 1, loads)
		assert.Equal(t, "bird", got.Username)
		assert.True(t, mr.Exists(UserKey(1)))
	})

	t.Run("hit skips the loader", func(t *testing.T) {
		setupMiniredis(t)

		var first cachedUser
		require.NoError(t, Aside(ctx, UserKey(2), &first, UserTTL, func() error {
			first = cachedUser{ID: 2, Username: "cached"}
			return nil
		}))

		loads := 0
		var second cachedUser
		err := Aside(ctx, UserKey(2), &second, UserTTL, func() error {
			loads++
			return nil
		})
		require.NoError(t, err)
		assert.Equal(t, 0, loads)
		assert.Equal(t, "cached", second.Username)
	})

	t.Run("loader error is not cached", func(t *testing.T) {
		mr := setupMiniredis(t)

		loadErr := errors.New("row not found")
		var got cachedUser
		err := Aside(ctx, UserKey(3), &got, UserTTL, func() error { return loadErr })
		assert.ErrorIs(t, err, loadErr)
		assert.False(t, mr.Exists(UserKey(3)))
	})

	t.Run("entries expire with their TTL", func(t *testing.T) {
		mr := setupMiniredis(t)

		var got cachedUser
		require.NoError(t, Aside(ctx, UserKey(4), &got, time.Minute, func() error {
			got = cachedUser{ID: 4}
			return nil
		}))
		require.True(t, mr.Exists(UserKey(4)))

		mr.FastForward(2 * time.Minute)
		assert.False(t, mr.Exists(UserKey(4)))
	})

	t.Run("nil client degrades to the loader", func(t *testing.T) {
		SetClient(nil)

		loads := 0
		var got cachedUser
		err := Aside(ctx, UserKey(5), &got, UserTTL, func() error {
			loads++
			got = cachedUser{ID: 5}
			return nil
		})
		require.NoError(t, err)
		assert.Equal(t, 1, loads)
	})
}

func TestInvalidate(t *testing.T) {
	ctx := context.Background()
	mr := setupMiniredis(t)

	var got cachedUser
	require.NoError(t, Aside(ctx, UserKey(1), &got, UserTTL, func() error {
		got = cachedUser{ID: 1}
		return nil
	}))
	require.True(t, mr.Exists(UserKey(1)))

	InvalidateUser(ctx, 1)
	assert.False(t, mr.Exists(UserKey(1)))

	// Invalidating an absent key is a no-op
	InvalidateMessage(ctx, 99)
}

func TestTokenRevocation(t *testing.T) {
	ctx := context.Background()

	t.Run("revoked jti is reported until expiry", func(t *testing.T) {
		mr := setupMiniredis(t)

		assert.False(t, IsTokenRevoked(ctx, "jti-1"))

		RevokeToken(ctx, "jti-1", time.Hour)
		assert.True(t, IsTokenRevoked(ctx, "jti-1"))

		mr.FastForward(2 * time.Hour)
		assert.False(t, IsTokenRevoked(ctx, "jti-1"))
	})

	t.Run("empty jti is ignored", func(t *testing.T) {
		setupMiniredis(t)
		RevokeToken(ctx, "", time.Hour)
		assert.False(t, IsTokenRevoked(ctx, ""))
	})

	t.Run("without redis nothing is revoked", func(t *testing.T) {
		SetClient(nil)
		RevokeToken(ctx, "jti-2", time.Hour)
		assert.False(t, IsTokenRevoked(ctx, "jti-2"))
	})
}
