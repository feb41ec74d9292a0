package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/umputun/sitefeed/pkg/domain"
)

// FeedRepository handles feeds and their items
type FeedRepository struct {
	db *sqlx.DB
}

// feedSQL represents a feed for SQL operations
type feedSQL struct {
	ID          int64     `db:"id"`
	URL         string    `db:"url"`
	Title       string    `db:"title"`
	Description string    `db:"description"`
	Provider    string    `db:"provider"`
	ErrorCount  int       `db:"error_count"`
	LastError   string    `db:"last_error"`
	CreatedAt   time.Time `db:"created_at"`
	UpdatedAt   time.Time `db:"updated_at"`
}

// itemSQL represents an item for SQL operations
type itemSQL struct {
	ID          int64      `db:"id"`
	FeedID      int64      `db:"feed_id"`
	Title       string     `db:"title"`
	Link        string     `db:"link"`
	Description string     `db:"description"`
	Image       string     `db:"image"`
	Published   *time.Time `db:"published"`
	Hash        string     `db:"content_hash"`
	CreatedAt   time.Time  `db:"created_at"`
}

// NewFeedRepository creates a new feed repository
func NewFeedRepository(database *sqlx.DB) *FeedRepository {
	return &FeedRepository{db: database}
}

// CreateFeed inserts a new feed, setting its ID
func (r *FeedRepository) CreateFeed(ctx context.Context, feed *domain.Feed) error {
	now := time.Now().UTC()
	rec := &feedSQL{URL: feed.URL, Title: feed.Title, Description: feed.Description, Provider: feed.Provider,
		CreatedAt: now, UpdatedAt: now}

	query := `
		INSERT INTO feeds (url, title, description, provider, created_at, updated_at)
		VALUES (:url, :title, :description, :provider, :created_at, :updated_at)
	`
	var id int64
	err := withRetry(ctx, func() error {
		result, err := r.db.NamedExecContext(ctx, query, rec)
		if err != nil {
			return err
		}
		id, err = result.LastInsertId()
		return err
	})
	if err != nil {
		if isUniqueError(err) {
			return fmt.Errorf("create feed %s: %w", feed.URL, domain.ErrDuplicateKey)
		}
		return fmt.Errorf("create feed: %w", err)
	}

	feed.ID, feed.CreatedAt, feed.UpdatedAt = id, now, now
	return nil
}

// GetFeed retrieves a feed by ID
func (r *FeedRepository) GetFeed(ctx context.Context, id int64) (*domain.Feed, error) {
	var rec feedSQL
	err := r.db.GetContext(ctx, &rec, "SELECT * FROM feeds WHERE id = ?", id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("feed %d: %w", id, domain.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get feed: %w", err)
	}
	return rec.toDomain(), nil
}

// FeedByURL retrieves a feed by its normalized url
func (r *FeedRepository) FeedByURL(ctx context.Context, url string) (*domain.Feed, error) {
	var rec feedSQL
	err := r.db.GetContext(ctx, &rec, "SELECT * FROM feeds WHERE url = ?", url)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("feed %s: %w", url, domain.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get feed by url: %w", err)
	}
	return rec.toDomain(), nil
}

// ListFeeds returns all feeds ordered by id
func (r *FeedRepository) ListFeeds(ctx context.Context) ([]domain.Feed, error) {
	var recs []feedSQL
	if err := r.db.SelectContext(ctx, &recs, "SELECT * FROM feeds ORDER BY id"); err != nil {
		return nil, fmt.Errorf("list feeds: %w", err)
	}
	res := make([]domain.Feed, len(recs))
	for i := range recs {
		res[i] = *recs[i].toDomain()
	}
	return res, nil
}

// DeleteFeed removes feed with its items and patterns
func (r *FeedRepository) DeleteFeed(ctx context.Context, id int64) error {
	var affected int64
	err := withRetry(ctx, func() error {
		result, err := r.db.ExecContext(ctx, "DELETE FROM feeds WHERE id = ?", id)
		if err != nil {
			return err
		}
		affected, err = result.RowsAffected()
		return err
	})
	if err != nil {
		return fmt.Errorf("delete feed: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("feed %d: %w", id, domain.ErrNotFound)
	}
	return nil
}

// MergeItems adds articles not yet stored for the feed, keyed by content hash. Existing items
// are kept untouched. Refreshes updated_at and clears the feed error. Returns number of added items.
func (r *FeedRepository) MergeItems(ctx context.Context, feedID int64, articles []domain.Article) (int, error) {
	added := 0
	err := withRetry(ctx, func() error {
		added = 0
		tx, err := r.db.BeginTxx(ctx, nil)
		if err != nil {
			return err
		}
		defer tx.Rollback() //nolint:errcheck // rollback after commit is a no-op

		now := time.Now().UTC()
		query := `
			INSERT OR IGNORE INTO items (feed_id, title, link, description, image, published, content_hash, created_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		`
		for _, a := range articles {
			result, err := tx.ExecContext(ctx, query, feedID, a.Title, a.Link, a.Description, a.Image, a.Published, a.Hash, now)
			if err != nil {
				return err
			}
			n, err := result.RowsAffected()
			if err != nil {
				return err
			}
			added += int(n)
		}

		result, err := tx.ExecContext(ctx,
			"UPDATE feeds SET updated_at = ?, error_count = 0, last_error = '' WHERE id = ?", now, feedID)
		if err != nil {
			return err
		}
		if n, err := result.RowsAffected(); err == nil && n == 0 {
			return fmt.Errorf("feed %d: %w", feedID, domain.ErrNotFound)
		}
		return tx.Commit()
	})
	if err != nil {
		return 0, fmt.Errorf("merge items: %w", err)
	}
	return added, nil
}

// UpdateFeedInfo sets title and description of the feed
func (r *FeedRepository) UpdateFeedInfo(ctx context.Context, feedID int64, title, description string) error {
	err := withRetry(ctx, func() error {
		_, err := r.db.ExecContext(ctx, "UPDATE feeds SET title = ?, description = ? WHERE id = ?", title, description, feedID)
		return err
	})
	if err != nil {
		return fmt.Errorf("update feed info: %w", err)
	}
	return nil
}

// UpdateFeedError records failed update of the feed
func (r *FeedRepository) UpdateFeedError(ctx context.Context, feedID int64, errMsg string) error {
	err := withRetry(ctx, func() error {
		query := `
			UPDATE feeds
			SET error_count = error_count + 1,
			    last_error = ?
			WHERE id = ?
		`
		_, err := r.db.ExecContext(ctx, query, errMsg, feedID)
		return err
	})
	if err != nil {
		return fmt.Errorf("update feed error: %w", err)
	}
	return nil
}

// Items returns feed items, latest merged first and in page order within one merge. Zero limit means all.
func (r *FeedRepository) Items(ctx context.Context, feedID int64, limit int) ([]domain.Article, error) {
	query := "SELECT * FROM items WHERE feed_id = ? ORDER BY created_at DESC, id ASC"
	args := []any{feedID}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}
	var recs []itemSQL
	if err := r.db.SelectContext(ctx, &recs, query, args...); err != nil {
		return nil, fmt.Errorf("get items: %w", err)
	}
	res := make([]domain.Article, len(recs))
	for i, rec := range recs {
		res[i] = domain.Article{ID: rec.ID, FeedID: rec.FeedID, Title: rec.Title, Link: rec.Link,
			Description: rec.Description, Image: rec.Image, Published: rec.Published, Hash: rec.Hash, CreatedAt: rec.CreatedAt}
	}
	return res, nil
}

func (f *feedSQL) toDomain() *domain.Feed {
	return &domain.Feed{ID: f.ID, URL: f.URL, Title: f.Title, Description: f.Description, Provider: f.Provider,
		ErrorCount: f.ErrorCount, LastError: f.LastError, CreatedAt: f.CreatedAt, UpdatedAt: f.UpdatedAt}
}
