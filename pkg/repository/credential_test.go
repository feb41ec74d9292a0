package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/umputun/sitefeed/pkg/credentials"
	"github.com/umputun/sitefeed/pkg/domain"
)

func TestCredentialRepository(t *testing.T) {
	cipher, err := credentials.NewCipher(make([]byte, 32))
	require.NoError(t, err)
	repos := setupTestDB(t)
	repo := NewCredentialRepository(repos.DB, cipher)
	ctx := context.Background()

	k1, err := repo.AddKey(ctx, "OpenAI", " sk-first ")
	require.NoError(t, err)
	assert.Equal(t, "openai", k1.Provider)
	assert.Equal(t, 1, k1.Index)
	assert.NotContains(t, string(k1.Encrypted), "sk-first", "stored encrypted")

	k2, err := repo.AddKey(ctx, "openai", "sk-second")
	require.NoError(t, err)
	assert.Equal(t, 2, k2.Index)

	_, err = repo.AddKey(ctx, "openai", "sk-first")
	assert.True(t, errors.Is(err, domain.ErrDuplicateKey))
	assert.NotContains(t, err.Error(), "sk-first")

	g1, err := repo.AddKey(ctx, "gemini", "sk-first")
	require.NoError(t, err, "same key allowed for another provider")
	assert.Equal(t, 1, g1.Index)

	_, err = repo.AddKey(ctx, "openai", "  ")
	require.Error(t, err)

	keys, err := repo.Keys(ctx, "OPENAI")
	require.NoError(t, err)
	require.Len(t, keys, 2)
	plain, err := cipher.Decrypt(keys[0].Encrypted)
	require.NoError(t, err)
	assert.Equal(t, "sk-first", string(plain))

	counts, err := repo.KeyCounts(ctx)
	require.NoError(t, err)
	assert.Equal(t, map[string]int{"openai": 2, "gemini": 1}, counts)

	t.Run("health", func(t *testing.T) {
		until := time.Now().Add(15 * time.Minute).UTC()
		rec := keys[1]
		rec.FailureStreak, rec.DisabledUntil = 3, &until
		require.NoError(t, repo.SaveHealth(ctx, rec))

		keys, err := repo.Keys(ctx, "openai")
		require.NoError(t, err)
		assert.Equal(t, 3, keys[1].FailureStreak)
		require.NotNil(t, keys[1].DisabledUntil)
		assert.WithinDuration(t, until, *keys[1].DisabledUntil, time.Millisecond)
		assert.Nil(t, keys[0].DisabledUntil)
	})

	t.Run("delete", func(t *testing.T) {
		require.NoError(t, repo.DeleteKey(ctx, "openai", 1))
		assert.True(t, errors.Is(repo.DeleteKey(ctx, "openai", 1), domain.ErrNotFound))
		k3, err := repo.AddKey(ctx, "openai", "sk-third")
		require.NoError(t, err)
		assert.Equal(t, 3, k3.Index, "indexes never reused while higher ones exist")
	})
}

func TestCredentialRepository_WithPool(t *testing.T) {
	cipher, err := credentials.NewCipher(make([]byte, 32))
	require.NoError(t, err)
	repos := setupTestDB(t)
	repo := NewCredentialRepository(repos.DB, cipher)
	ctx := context.Background()

	_, err = repo.AddKey(ctx, "openai", "sk-1")
	require.NoError(t, err)
	_, err = repo.AddKey(ctx, "openai", "sk-2")
	require.NoError(t, err)

	pool := credentials.NewPool(repo, cipher, credentials.Params{FailureThreshold: 1, Cooldown: time.Hour})
	cred, err := pool.Acquire(ctx, "openai")
	require.NoError(t, err)
	secret, err := cred.Secret()
	require.NoError(t, err)
	assert.Equal(t, "sk-1", secret)
	pool.ReportOutcome(ctx, cred, false)

	keys, err := repo.Keys(ctx, "openai")
	require.NoError(t, err)
	assert.Equal(t, 1, keys[0].FailureStreak, "health persisted through the pool")
	require.NotNil(t, keys[0].DisabledUntil)

	// a fresh pool picks up stored disable window
	fresh := credentials.NewPool(repo, cipher, credentials.Params{FailureThreshold: 1, Cooldown: time.Hour})
	for i := 0; i < 3; i++ {
		c, err := fresh.Acquire(ctx, "openai")
		require.NoError(t, err)
		assert.Equal(t, 2, c.Index())
	}
}
