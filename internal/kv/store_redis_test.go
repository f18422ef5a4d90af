package kv

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"curator/pkg/platform/sentinel"
)

func setupRedis(t *testing.T) *Redis {
	t.Helper()
	mini := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mini.Addr()})
	t.Cleanup(func() { client.Close() })
	return NewRedis(client)
}

func TestRedisBackend(t *testing.T) {
	ctx := context.Background()

	t.Run("get on missing key returns ErrNotFound", func(t *testing.T) {
		backend := setupRedis(t)
		_, err := backend.Get(ctx, "missing")
		assert.ErrorIs(t, err, sentinel.ErrNotFound)
	})

	t.Run("set then get round-trips", func(t *testing.T) {
		backend := setupRedis(t)
		require.NoError(t, backend.Set(ctx, "page:/index.html", []byte(`{"hero":"<p>hi</p>"}`)))

		raw, err := backend.Get(ctx, "page:/index.html")
		require.NoError(t, err)
		assert.JSONEq(t, `{"hero":"<p>hi</p>"}`, string(raw))
	})

	t.Run("delete removes the key", func(t *testing.T) {
		backend := setupRedis(t)
		require.NoError(t, backend.Set(ctx, "edit-state", []byte(`{}`)))
		require.NoError(t, backend.Delete(ctx, "edit-state"))

		_, err := backend.Get(ctx, "edit-state")
		assert.ErrorIs(t, err, sentinel.ErrNotFound)
	})

	t.Run("unreachable server surfaces a non-miss error", func(t *testing.T) {
		mini := miniredis.RunT(t)
		client := redis.NewClient(&redis.Options{Addr: mini.Addr()})
		t.Cleanup(func() { client.Close() })
		backend := NewRedis(client)
		mini.Close()

		_, err := backend.Get(ctx, "any")
		require.Error(t, err)
		assert.NotErrorIs(t, err, sentinel.ErrNotFound)
	})

	t.Run("keys are namespaced under the curator prefix", func(t *testing.T) {
		mini := miniredis.RunT(t)
		client := redis.NewClient(&redis.Options{Addr: mini.Addr()})
		t.Cleanup(func() { client.Close() })
		backend := NewRedis(client)

		require.NoError(t, backend.Set(ctx, "creds", []byte(`{}`)))
		assert.True(t, mini.Exists("curator:creds"))
	})
}
