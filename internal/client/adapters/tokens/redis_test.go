package tokens_test

import (
	"context"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"quizdeck/internal/client/adapters/tokens"
	"quizdeck/internal/client/config"
	"quizdeck/internal/client/domain/entities"
	tokensPorts "quizdeck/internal/client/ports/tokens"
)

func mockRedisServer(t *testing.T) (*miniredis.Miniredis, *config.RedisConfig) {
	t.Helper()

	s, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(s.Close)

	host, portStr, _ := strings.Cut(s.Addr(), ":")
	port, err := strconv.Atoi(portStr)
	require.NoError(t, err)

	return s, &config.RedisConfig{
		Host:           host,
		Port:           port,
		ConnectTimeout: 5 * time.Second,
		ReadTimeout:    3 * time.Second,
		WriteTimeout:   3 * time.Second,
		PoolSize:       10,
		MinIdle:        2,
		DefaultTTL:     time.Hour,
	}
}

func signedRefreshToken(t *testing.T, exp time.Time) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"exp": exp.Unix(),
	})
	signed, err := token.SignedString([]byte("test-secret"))
	require.NoError(t, err)
	return signed
}

func TestNewRedisStore_ConnectionFailure(t *testing.T) {
	ctx := context.Background()

	store, err := tokens.NewRedisStore(ctx, &config.RedisConfig{
		Host:           "nonexistent.host",
		Port:           12345,
		ConnectTimeout: 100 * time.Millisecond,
		ReadTimeout:    100 * time.Millisecond,
		WriteTimeout:   100 * time.Millisecond,
	})

	assert.Error(t, err)
	assert.Nil(t, store)
	assert.Contains(t, err.Error(), "failed to connect to redis")
}

func TestRedisStore_SaveLoadClear(t *testing.T) {
	ctx := context.Background()
	_, cfg := mockRedisServer(t)

	store, err := tokens.NewRedisStore(ctx, cfg)
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	var _ tokensPorts.Store = store

	_, ok, err := store.Load(ctx)
	require.NoError(t, err)
	assert.False(t, ok)

	pair := entities.TokenPair{AccessToken: "opaque-access", RefreshToken: "opaque-refresh"}
	require.NoError(t, store.Save(ctx, pair))

	got, ok, err := store.Load(ctx)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, pair, got)

	require.NoError(t, store.Clear(ctx))
	_, ok, err = store.Load(ctx)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestRedisStore_HalfPairHealed(t *testing.T) {
	ctx := context.Background()
	srv, cfg := mockRedisServer(t)

	store, err := tokens.NewRedisStore(ctx, cfg)
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	pair := entities.TokenPair{AccessToken: "a", RefreshToken: "r"}
	require.NoError(t, store.Save(ctx, pair))

	srv.Del(tokens.KeyRefreshToken)

	_, ok, err := store.Load(ctx)
	require.NoError(t, err)
	assert.False(t, ok)

	// The orphaned access token must be gone too.
	assert.False(t, srv.Exists(tokens.KeyAccessToken))
}

func TestRedisStore_TTLFromRefreshTokenExp(t *testing.T) {
	ctx := context.Background()
	srv, cfg := mockRedisServer(t)

	store, err := tokens.NewRedisStore(ctx, cfg)
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	refresh := signedRefreshToken(t, time.Now().Add(30*time.Minute))
	require.NoError(t, store.Save(ctx, entities.TokenPair{
		AccessToken:  "a",
		RefreshToken: refresh,
	}))

	ttl := srv.TTL(tokens.KeyRefreshToken)
	assert.Greater(t, ttl, 25*time.Minute)
	assert.LessOrEqual(t, ttl, 30*time.Minute)
}

func TestRedisStore_DefaultTTLForOpaqueTokens(t *testing.T) {
	ctx := context.Background()
	srv, cfg := mockRedisServer(t)

	store, err := tokens.NewRedisStore(ctx, cfg)
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	require.NoError(t, store.Save(ctx, entities.TokenPair{
		AccessToken:  "not-a-jwt",
		RefreshToken: "also-not-a-jwt",
	}))

	assert.Equal(t, cfg.DefaultTTL, srv.TTL(tokens.KeyAccessToken))
}
