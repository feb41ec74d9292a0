package credentials

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/umputun/sitefeed/pkg/credentials/mocks"
	"github.com/umputun/sitefeed/pkg/domain"
)

func newTestPool(t *testing.T, n int, params Params) (*Pool, *time.Time) {
	t.Helper()
	cipher, err := NewCipher(make([]byte, 32))
	require.NoError(t, err)
	recs := make([]domain.APIKeyRecord, n)
	for i := range recs {
		enc, err := cipher.Encrypt([]byte("secret-" + string(rune('a'+i))))
		require.NoError(t, err)
		recs[i] = domain.APIKeyRecord{ID: int64(i + 1), Provider: "openai", Index: i + 1, Encrypted: enc}
	}
	store := &mocks.KeyStoreMock{KeysFunc: func(ctx context.Context, provider string) ([]domain.APIKeyRecord, error) {
		if provider != "openai" {
			return nil, nil
		}
		res := make([]domain.APIKeyRecord, len(recs))
		copy(res, recs)
		return res, nil
	}}
	now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	p := NewPool(store, cipher, params)
	p.now = func() time.Time { return now }
	return p, &now
}

func acquireIndex(t *testing.T, p *Pool) int {
	t.Helper()
	cred, err := p.Acquire(context.Background(), "openai")
	require.NoError(t, err)
	return cred.Index()
}

func TestPool_RoundRobin(t *testing.T) {
	p, _ := newTestPool(t, 3, Params{})
	var got []int
	for i := 0; i < 6; i++ {
		got = append(got, acquireIndex(t, p))
	}
	assert.Equal(t, []int{1, 2, 3, 1, 2, 3}, got)
}

func TestPool_DisableWindow(t *testing.T) {
	p, now := newTestPool(t, 3, Params{FailureThreshold: 2, Cooldown: 10 * time.Minute})
	ctx := context.Background()

	for i := 0; i < 2; i++ { // key #1 fails twice, keys #2 and #3 succeed in between
		cred, err := p.Acquire(ctx, "openai")
		require.NoError(t, err)
		require.Equal(t, 1, cred.Index())
		p.ReportOutcome(ctx, cred, false)
		for j := 0; j < 2; j++ {
			cred, err = p.Acquire(ctx, "openai")
			require.NoError(t, err)
			p.ReportOutcome(ctx, cred, true)
		}
	}

	for i := 0; i < 4; i++ {
		assert.NotEqual(t, 1, acquireIndex(t, p), "key #1 must stay disabled")
	}

	*now = now.Add(10 * time.Minute)
	seen := map[int]bool{}
	for i := 0; i < 3; i++ {
		seen[acquireIndex(t, p)] = true
	}
	assert.True(t, seen[1], "key #1 back after cool-down")
}

func TestPool_Exhausted(t *testing.T) {
	p, _ := newTestPool(t, 3, Params{FailureThreshold: 1, Cooldown: time.Hour})
	ctx := context.Background()
	for i := 0; i < 3; i++ {
		cred, err := p.Acquire(ctx, "openai")
		require.NoError(t, err)
		p.ReportOutcome(ctx, cred, false)
	}
	_, err := p.Acquire(ctx, "openai")
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrExhaustedCredentials))

	t.Run("no keys for provider", func(t *testing.T) {
		_, err := p.Acquire(ctx, "gemini")
		assert.True(t, errors.Is(err, domain.ErrExhaustedCredentials))
	})
}

func TestPool_SuccessResetsStreak(t *testing.T) {
	p, _ := newTestPool(t, 1, Params{FailureThreshold: 2, Cooldown: time.Hour})
	ctx := context.Background()
	for i := 0; i < 5; i++ { // fail, success, fail, success ... never reaches 2 in a row
		cred, err := p.Acquire(ctx, "openai")
		require.NoError(t, err)
		p.ReportOutcome(ctx, cred, i%2 == 1)
	}
	_, err := p.Acquire(ctx, "openai")
	assert.NoError(t, err)
}

func TestPool_StoredDisabledState(t *testing.T) {
	now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	until := now.Add(time.Hour)
	store := &mocks.KeyStoreMock{KeysFunc: func(ctx context.Context, provider string) ([]domain.APIKeyRecord, error) {
		return []domain.APIKeyRecord{
			{ID: 1, Provider: "openai", Index: 1, Encrypted: []byte("k1"), DisabledUntil: &until, FailureStreak: 3},
			{ID: 2, Provider: "openai", Index: 2, Encrypted: []byte("k2")},
		}, nil
	}}
	p := NewPool(store, nil, Params{})
	p.now = func() time.Time { return now }
	for i := 0; i < 3; i++ {
		cred, err := p.Acquire(context.Background(), "openai")
		require.NoError(t, err)
		assert.Equal(t, 2, cred.Index())
	}
}

func TestPool_StoreError(t *testing.T) {
	store := &mocks.KeyStoreMock{KeysFunc: func(ctx context.Context, provider string) ([]domain.APIKeyRecord, error) {
		return nil, errors.New("db down")
	}}
	p := NewPool(store, nil, Params{})
	_, err := p.Acquire(context.Background(), "openai")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "db down")
	assert.False(t, errors.Is(err, domain.ErrExhaustedCredentials))
}

func TestPool_ConcurrentOutcomes(t *testing.T) {
	p, _ := newTestPool(t, 3, Params{FailureThreshold: 1000, Cooldown: time.Hour})
	ctx := context.Background()
	cred, err := p.Acquire(ctx, "openai")
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			p.ReportOutcome(ctx, cred, false)
		}()
	}
	wg.Wait()

	p.mu.Lock()
	defer p.mu.Unlock()
	assert.Equal(t, 100, p.health[cred.id].streak, "no lost updates")
}

func TestCredential(t *testing.T) {
	p, _ := newTestPool(t, 2, Params{})
	cred, err := p.Acquire(context.Background(), "openai")
	require.NoError(t, err)

	secret, err := cred.Secret()
	require.NoError(t, err)
	assert.Equal(t, "secret-a", secret)
	assert.Equal(t, "openai#1", cred.String())
	assert.Equal(t, "openai", cred.Provider())
}

func TestCipher(t *testing.T) {
	t.Run("round trip", func(t *testing.T) {
		c, err := LoadOrCreateCipher(t.TempDir() + "/keys/secret.key")
		require.NoError(t, err)
		enc, err := c.Encrypt([]byte("sk-123"))
		require.NoError(t, err)
		assert.NotContains(t, string(enc), "sk-123")
		dec, err := c.Decrypt(enc)
		require.NoError(t, err)
		assert.Equal(t, "sk-123", string(dec))
	})

	t.Run("key file reused", func(t *testing.T) {
		path := t.TempDir() + "/secret.key"
		c1, err := LoadOrCreateCipher(path)
		require.NoError(t, err)
		enc, err := c1.Encrypt([]byte("value"))
		require.NoError(t, err)
		c2, err := LoadOrCreateCipher(path)
		require.NoError(t, err)
		dec, err := c2.Decrypt(enc)
		require.NoError(t, err)
		assert.Equal(t, "value", string(dec))
	})

	t.Run("wrong key", func(t *testing.T) {
		c1, err := NewCipher(make([]byte, 32))
		require.NoError(t, err)
		k := make([]byte, 32)
		k[0] = 1
		c2, err := NewCipher(k)
		require.NoError(t, err)
		enc, err := c1.Encrypt([]byte("value"))
		require.NoError(t, err)
		_, err = c2.Decrypt(enc)
		assert.Error(t, err)
		_, err = c2.Decrypt([]byte("short"))
		assert.Error(t, err)
	})

	t.Run("bad key size", func(t *testing.T) {
		_, err := NewCipher([]byte("short"))
		assert.Error(t, err)
	})
}
