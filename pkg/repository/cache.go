package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/umputun/sitefeed/pkg/domain"
)

// CacheRepository is a persistent page content cache with lazy expiration
type CacheRepository struct {
	db  *sqlx.DB
	now func() time.Time
}

type cacheSQL struct {
	Key        string    `db:"cache_key"`
	Content    []byte    `db:"content"`
	StatusCode int       `db:"status_code"`
	Strategy   string    `db:"strategy"`
	FetchedAt  time.Time `db:"fetched_at"`
	TTLms      int64     `db:"ttl_ms"`
	ExpiresAt  int64     `db:"expires_at"`
}

// NewCacheRepository creates a new cache repository
func NewCacheRepository(database *sqlx.DB) *CacheRepository {
	return &CacheRepository{db: database, now: time.Now}
}

// Get returns unexpired entry. Expired entries are deleted on read.
func (r *CacheRepository) Get(ctx context.Context, key string) (*domain.CacheEntry, bool) {
	var rec cacheSQL
	err := r.db.GetContext(ctx, &rec, "SELECT * FROM content_cache WHERE cache_key = ?", key)
	if err != nil {
		if !errors.Is(err, sql.ErrNoRows) {
			log.Printf("[WARN] can't read cache entry %s: %v", key, err)
		}
		return nil, false
	}

	entry := &domain.CacheEntry{Key: rec.Key, Content: rec.Content, StatusCode: rec.StatusCode, Strategy: rec.Strategy,
		FetchedAt: rec.FetchedAt, TTL: time.Duration(rec.TTLms) * time.Millisecond}
	if entry.Expired(r.now()) {
		if err := r.Invalidate(ctx, key); err != nil {
			log.Printf("[WARN] can't drop expired cache entry %s: %v", key, err)
		}
		return nil, false
	}
	return entry, true
}

// Put stores entry under key, replacing existing one. Zero ttl stores an already expired entry.
func (r *CacheRepository) Put(ctx context.Context, key string, entry domain.CacheEntry, ttl time.Duration) error {
	if entry.FetchedAt.IsZero() {
		entry.FetchedAt = r.now()
	}
	if ttl < 0 {
		ttl = 0
	}
	rec := cacheSQL{Key: key, Content: entry.Content, StatusCode: entry.StatusCode, Strategy: entry.Strategy,
		FetchedAt: entry.FetchedAt.UTC(), TTLms: ttl.Milliseconds(), ExpiresAt: entry.FetchedAt.Add(ttl).UnixMilli()}

	query := `
		INSERT OR REPLACE INTO content_cache (cache_key, content, status_code, strategy, fetched_at, ttl_ms, expires_at)
		VALUES (:cache_key, :content, :status_code, :strategy, :fetched_at, :ttl_ms, :expires_at)
	`
	err := withRetry(ctx, func() error {
		_, err := r.db.NamedExecContext(ctx, query, &rec)
		return err
	})
	if err != nil {
		return fmt.Errorf("put cache entry: %w", err)
	}
	return nil
}

// Invalidate removes entry
func (r *CacheRepository) Invalidate(ctx context.Context, key string) error {
	err := withRetry(ctx, func() error {
		_, err := r.db.ExecContext(ctx, "DELETE FROM content_cache WHERE cache_key = ?", key)
		return err
	})
	if err != nil {
		return fmt.Errorf("invalidate cache entry: %w", err)
	}
	return nil
}

// PurgeExpired removes all expired entries, returns number of removed ones
func (r *CacheRepository) PurgeExpired(ctx context.Context) (int64, error) {
	var removed int64
	err := withRetry(ctx, func() error {
		result, err := r.db.ExecContext(ctx, "DELETE FROM content_cache WHERE expires_at <= ?", r.now().UnixMilli())
		if err != nil {
			return err
		}
		removed, err = result.RowsAffected()
		return err
	})
	if err != nil {
		return 0, fmt.Errorf("purge cache: %w", err)
	}
	return removed, nil
}
