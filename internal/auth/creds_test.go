package auth

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"curator/internal/kv"
)

func TestCredStoreEnsure(t *testing.T) {
	ctx := context.Background()

	t.Run("first access seeds the default pair", func(t *testing.T) {
		backend := kv.NewMemory()
		creds := NewCredStore(kv.New(backend), "admin", "admin")

		got := creds.Ensure(ctx)
		assert.Equal(t, "admin", got.Username)
		assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(got.Password), []byte("admin")))

		_, err := backend.Get(ctx, CredsKey)
		require.NoError(t, err, "seed should be persisted")
	})

	t.Run("second access returns the stored pair unchanged", func(t *testing.T) {
		creds := NewCredStore(kv.New(kv.NewMemory()), "admin", "admin")

		first := creds.Ensure(ctx)
		second := creds.Ensure(ctx)
		assert.Equal(t, first, second, "the pair is seeded once and never rotated")
	})

	t.Run("malformed stored pair is replaced by the defaults", func(t *testing.T) {
		backend := kv.NewMemory()
		require.NoError(t, backend.Set(ctx, CredsKey, []byte(`{"username":""}`)))

		creds := NewCredStore(kv.New(backend), "admin", "admin")
		got := creds.Ensure(ctx)
		assert.Equal(t, "admin", got.Username)
		assert.NotEmpty(t, got.Password)
	})
}

func TestCredStoreVerify(t *testing.T) {
	ctx := context.Background()
	creds := NewCredStore(kv.New(kv.NewMemory()), "admin", "admin")

	t.Run("matching pair verifies", func(t *testing.T) {
		assert.True(t, creds.Verify(ctx, "admin", "admin"))
	})

	t.Run("wrong password is rejected", func(t *testing.T) {
		assert.False(t, creds.Verify(ctx, "admin", "hunter2"))
	})

	t.Run("wrong username is rejected", func(t *testing.T) {
		assert.False(t, creds.Verify(ctx, "root", "admin"))
	})

	t.Run("rejection does not lock anything out", func(t *testing.T) {
		for i := 0; i < 5; i++ {
			assert.False(t, creds.Verify(ctx, "admin", "wrong"))
		}
		assert.True(t, creds.Verify(ctx, "admin", "admin"))
	})
}
