package repository

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestDB(t *testing.T) *Repositories {
	t.Helper()
	repos, err := NewRepositories(context.Background(), Config{DSN: ":memory:", MaxOpenConns: 1, MaxIdleConns: 1})
	require.NoError(t, err)
	t.Cleanup(func() { assert.NoError(t, repos.Close()) })
	return repos
}

func TestNewRepositories(t *testing.T) {
	repos := setupTestDB(t)
	require.NoError(t, repos.Ping(context.Background()))

	var tables []string
	err := repos.DB.Select(&tables, "SELECT name FROM sqlite_master WHERE type = 'table' AND name NOT LIKE 'sqlite_%' ORDER BY name")
	require.NoError(t, err)
	assert.Equal(t, []string{"api_keys", "content_cache", "feeds", "items", "patterns", "sessions"}, tables)

	t.Run("file database reopened", func(t *testing.T) {
		dsn := "file:" + filepath.Join(t.TempDir(), "test.db") + "?mode=rwc&_txlock=immediate"
		r1, err := NewRepositories(context.Background(), Config{DSN: dsn})
		require.NoError(t, err)
		require.NoError(t, r1.Close())
		r2, err := NewRepositories(context.Background(), Config{DSN: dsn})
		require.NoError(t, err, "schema creation is idempotent")
		require.NoError(t, r2.Close())
	})
}

func TestWithRetry(t *testing.T) {
	t.Run("lock errors retried", func(t *testing.T) {
		calls := 0
		err := withRetry(context.Background(), func() error {
			calls++
			if calls < 3 {
				return errors.New("database is locked (5) (SQLITE_BUSY)")
			}
			return nil
		})
		require.NoError(t, err)
		assert.Equal(t, 3, calls)
	})

	t.Run("other errors stop immediately", func(t *testing.T) {
		calls := 0
		orig := errors.New("no such table: foo")
		err := withRetry(context.Background(), func() error {
			calls++
			return orig
		})
		require.Error(t, err)
		assert.Equal(t, 1, calls)
		assert.True(t, errors.Is(err, orig))
		var ce *criticalError
		assert.False(t, errors.As(err, &ce), "critical wrapper removed")
	})
}

func TestIsLockError(t *testing.T) {
	assert.False(t, isLockError(nil))
	assert.True(t, isLockError(errors.New("database is locked")))
	assert.True(t, isLockError(errors.New("SQLITE_BUSY")))
	assert.True(t, isLockError(errors.New("database table is locked")))
	assert.False(t, isLockError(errors.New("syntax error")))
}
