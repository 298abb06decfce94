package utils

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionToken(t *testing.T) {
	token, err := GenerateSessionToken("sid-1", 7, "secret", time.Hour)
	require.NoError(t, err)

	claims, err := ParseSessionToken(token, "secret")
	require.NoError(t, err)
	assert.Equal(t, "sid-1", claims.SessionID)
	assert.Equal(t, uint(7), claims.UserID)

	_, err = ParseSessionToken(token, "other-secret")
	assert.ErrorIs(t, err, ErrInvalidToken)

	expired, err := GenerateSessionToken("sid-2", 7, "secret", -time.Minute)
	require.NoError(t, err)
	_, err = ParseSessionToken(expired, "secret")
	assert.ErrorIs(t, err, ErrInvalidToken)

	none := jwt.NewWithClaims(jwt.SigningMethodNone, Claims{SessionID: "sid-3"})
	unsigned, err := none.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)
	_, err = ParseSessionToken(unsigned, "secret")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestCache(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer rdb.Close()
	ctx := context.Background()

	type payload struct {
		Name string `json:"name"`
	}
	cache := NewCache[payload](rdb, "test:")
	assert.Equal(t, "test:k", cache.Key("k"))

	_, found, err := cache.Get(ctx, "k")
	require.NoError(t, err)
	assert.False(t, found)

	require.NoError(t, cache.Set(ctx, "k", &payload{Name: "amina"}, time.Minute))
	assert.True(t, mr.Exists("test:k"))
	out, found, err := cache.Get(ctx, "k")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "amina", out.Name)

	t.Run("replace keeps the ttl", func(t *testing.T) {
		mr.FastForward(20 * time.Second)
		replaced, err := cache.Replace(ctx, "k", &payload{Name: "bob"})
		require.NoError(t, err)
		assert.True(t, replaced)
		assert.Equal(t, 40*time.Second, mr.TTL("test:k"))

		out, _, err := cache.Get(ctx, "k")
		require.NoError(t, err)
		assert.Equal(t, "bob", out.Name)
	})

	t.Run("replace does not revive an expired entry", func(t *testing.T) {
		mr.FastForward(time.Minute)
		replaced, err := cache.Replace(ctx, "k", &payload{Name: "ghost"})
		require.NoError(t, err)
		assert.False(t, replaced)
		assert.False(t, mr.Exists("test:k"))
	})

	t.Run("delete", func(t *testing.T) {
		require.NoError(t, cache.Set(ctx, "d", &payload{Name: "x"}, time.Minute))
		require.NoError(t, cache.Delete(ctx, "d"))
		_, found, err := cache.Get(ctx, "d")
		require.NoError(t, err)
		assert.False(t, found)
	})

	t.Run("corrupt entry", func(t *testing.T) {
		require.NoError(t, mr.Set("test:bad", "{"))
		_, _, err := cache.Get(ctx, "bad")
		assert.Error(t, err)
	})
}
