package repository

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/umputun/sitefeed/pkg/domain"
)

// CredentialRepository stores encrypted provider api keys and their health
type CredentialRepository struct {
	db     *sqlx.DB
	cipher Encrypter
}

type apiKeySQL struct {
	ID            int64      `db:"id"`
	Provider      string     `db:"provider"`
	Index         int        `db:"key_index"`
	Encrypted     []byte     `db:"encrypted"`
	Fingerprint   string     `db:"fingerprint"`
	FailureStreak int        `db:"failure_streak"`
	LastUsed      *time.Time `db:"last_used"`
	DisabledUntil *time.Time `db:"disabled_until"`
	CreatedAt     time.Time  `db:"created_at"`
}

// NewCredentialRepository creates a new credential repository. Keys are stored as is if cipher is nil.
func NewCredentialRepository(database *sqlx.DB, cipher Encrypter) *CredentialRepository {
	return &CredentialRepository{db: database, cipher: cipher}
}

// AddKey stores a new key for provider with the next rotation index.
// Returns domain.ErrDuplicateKey if the same key is already stored for the provider.
func (r *CredentialRepository) AddKey(ctx context.Context, provider, secret string) (*domain.APIKeyRecord, error) {
	provider = strings.ToLower(strings.TrimSpace(provider))
	secret = strings.TrimSpace(secret)
	if provider == "" || secret == "" {
		return nil, errors.New("provider and key are required")
	}

	enc := []byte(secret)
	if r.cipher != nil {
		var err error
		if enc, err = r.cipher.Encrypt([]byte(secret)); err != nil {
			return nil, fmt.Errorf("encrypt key: %w", err)
		}
	}
	sum := sha256.Sum256([]byte(secret))
	fingerprint := hex.EncodeToString(sum[:8])

	var rec apiKeySQL
	err := withRetry(ctx, func() error {
		tx, err := r.db.BeginTxx(ctx, nil)
		if err != nil {
			return err
		}
		defer tx.Rollback() //nolint:errcheck // rollback after commit is a no-op

		var index int
		if err = tx.GetContext(ctx, &index, "SELECT COALESCE(MAX(key_index), 0) + 1 FROM api_keys WHERE provider = ?", provider); err != nil {
			return err
		}
		rec = apiKeySQL{Provider: provider, Index: index, Encrypted: enc, Fingerprint: fingerprint, CreatedAt: time.Now().UTC()}
		result, err := tx.NamedExecContext(ctx, `
			INSERT INTO api_keys (provider, key_index, encrypted, fingerprint, created_at)
			VALUES (:provider, :key_index, :encrypted, :fingerprint, :created_at)`, &rec)
		if err != nil {
			return err
		}
		if rec.ID, err = result.LastInsertId(); err != nil {
			return err
		}
		return tx.Commit()
	})
	if err != nil {
		if isUniqueError(err) {
			return nil, fmt.Errorf("key for %s: %w", provider, domain.ErrDuplicateKey)
		}
		return nil, fmt.Errorf("add key: %w", err)
	}
	return rec.toDomain(), nil
}

// Keys returns stored keys of provider ordered by rotation index
func (r *CredentialRepository) Keys(ctx context.Context, provider string) ([]domain.APIKeyRecord, error) {
	var recs []apiKeySQL
	err := r.db.SelectContext(ctx, &recs, "SELECT * FROM api_keys WHERE provider = ? ORDER BY key_index",
		strings.ToLower(provider))
	if err != nil {
		return nil, fmt.Errorf("get keys: %w", err)
	}
	res := make([]domain.APIKeyRecord, len(recs))
	for i := range recs {
		res[i] = *recs[i].toDomain()
	}
	return res, nil
}

// SaveHealth persists failure streak, last use and disable window of a key
func (r *CredentialRepository) SaveHealth(ctx context.Context, rec domain.APIKeyRecord) error {
	err := withRetry(ctx, func() error {
		_, err := r.db.ExecContext(ctx,
			"UPDATE api_keys SET failure_streak = ?, last_used = ?, disabled_until = ? WHERE id = ?",
			rec.FailureStreak, rec.LastUsed, rec.DisabledUntil, rec.ID)
		return err
	})
	if err != nil {
		return fmt.Errorf("save key health: %w", err)
	}
	return nil
}

// KeyCounts returns number of stored keys per provider
func (r *CredentialRepository) KeyCounts(ctx context.Context) (map[string]int, error) {
	var rows []struct {
		Provider string `db:"provider"`
		Count    int    `db:"cnt"`
	}
	if err := r.db.SelectContext(ctx, &rows, "SELECT provider, COUNT(*) AS cnt FROM api_keys GROUP BY provider"); err != nil {
		return nil, fmt.Errorf("count keys: %w", err)
	}
	res := make(map[string]int, len(rows))
	for _, row := range rows {
		res[row.Provider] = row.Count
	}
	return res, nil
}

// DeleteKey removes key of provider by rotation index
func (r *CredentialRepository) DeleteKey(ctx context.Context, provider string, index int) error {
	var affected int64
	err := withRetry(ctx, func() error {
		result, err := r.db.ExecContext(ctx, "DELETE FROM api_keys WHERE provider = ? AND key_index = ?",
			strings.ToLower(provider), index)
		if err != nil {
			return err
		}
		affected, err = result.RowsAffected()
		return err
	})
	if err != nil {
		return fmt.Errorf("delete key: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("key %s#%d: %w", provider, index, domain.ErrNotFound)
	}
	return nil
}

func (k *apiKeySQL) toDomain() *domain.APIKeyRecord {
	return &domain.APIKeyRecord{ID: k.ID, Provider: k.Provider, Index: k.Index, Encrypted: k.Encrypted,
		FailureStreak: k.FailureStreak, LastUsed: k.LastUsed, DisabledUntil: k.DisabledUntil, CreatedAt: k.CreatedAt}
}
