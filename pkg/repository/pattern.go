package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/umputun/sitefeed/pkg/domain"
)

// PatternRepository stores versioned extraction recipes
type PatternRepository struct {
	db *sqlx.DB
}

type patternSQL struct {
	ID            int64      `db:"id"`
	FeedID        int64      `db:"feed_id"`
	Version       int        `db:"version"`
	Recipe        string     `db:"recipe"`
	Active        bool       `db:"active"`
	SuccessCount  int        `db:"success_count"`
	FailureCount  int        `db:"failure_count"`
	LastValidated *time.Time `db:"last_validated"`
	CreatedAt     time.Time  `db:"created_at"`
}

// NewPatternRepository creates a new pattern repository
func NewPatternRepository(database *sqlx.DB) *PatternRepository {
	return &PatternRepository{db: database}
}

// ActivePattern returns the active pattern of feed or domain.ErrNotFound
func (r *PatternRepository) ActivePattern(ctx context.Context, feedID int64) (*domain.Pattern, error) {
	var rec patternSQL
	err := r.db.GetContext(ctx, &rec, "SELECT * FROM patterns WHERE feed_id = ? AND active = 1", feedID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("active pattern of feed %d: %w", feedID, domain.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get active pattern: %w", err)
	}
	return rec.toDomain()
}

// ActivatePattern stores recipe as the next version of feed pattern and deactivates the
// previous one in a single transaction
func (r *PatternRepository) ActivatePattern(ctx context.Context, feedID int64, recipe domain.Recipe) (*domain.Pattern, error) {
	data, err := json.Marshal(recipe)
	if err != nil {
		return nil, fmt.Errorf("marshal recipe: %w", err)
	}

	var res *domain.Pattern
	err = withRetry(ctx, func() error {
		tx, err := r.db.BeginTxx(ctx, nil)
		if err != nil {
			return err
		}
		defer tx.Rollback() //nolint:errcheck // rollback after commit is a no-op

		var version int
		if err = tx.GetContext(ctx, &version, "SELECT COALESCE(MAX(version), 0) FROM patterns WHERE feed_id = ?", feedID); err != nil {
			return err
		}
		if _, err = tx.ExecContext(ctx, "UPDATE patterns SET active = 0 WHERE feed_id = ? AND active = 1", feedID); err != nil {
			return err
		}
		now := time.Now().UTC()
		_, err = tx.ExecContext(ctx,
			"INSERT INTO patterns (feed_id, version, recipe, active, created_at) VALUES (?, ?, ?, 1, ?)",
			feedID, version+1, string(data), now)
		if err != nil {
			return err
		}
		if err = tx.Commit(); err != nil {
			return err
		}
		res = &domain.Pattern{FeedID: feedID, Version: version + 1, Recipe: recipe, Active: true, CreatedAt: now}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("activate pattern: %w", err)
	}
	return res, nil
}

// RecordPatternOutcome counts success or failure of a pattern version
func (r *PatternRepository) RecordPatternOutcome(ctx context.Context, feedID int64, version int, success bool) error {
	query := "UPDATE patterns SET failure_count = failure_count + 1 WHERE feed_id = ? AND version = ?"
	args := []any{feedID, version}
	if success {
		query = "UPDATE patterns SET success_count = success_count + 1, last_validated = ? WHERE feed_id = ? AND version = ?"
		args = []any{time.Now().UTC(), feedID, version}
	}
	err := withRetry(ctx, func() error {
		_, err := r.db.ExecContext(ctx, query, args...)
		return err
	})
	if err != nil {
		return fmt.Errorf("record pattern outcome: %w", err)
	}
	return nil
}

// Patterns returns all versions of feed pattern, newest first
func (r *PatternRepository) Patterns(ctx context.Context, feedID int64) ([]domain.Pattern, error) {
	var recs []patternSQL
	if err := r.db.SelectContext(ctx, &recs, "SELECT * FROM patterns WHERE feed_id = ? ORDER BY version DESC", feedID); err != nil {
		return nil, fmt.Errorf("get patterns: %w", err)
	}
	res := make([]domain.Pattern, 0, len(recs))
	for _, rec := range recs {
		p, err := rec.toDomain()
		if err != nil {
			return nil, err
		}
		res = append(res, *p)
	}
	return res, nil
}

func (p *patternSQL) toDomain() (*domain.Pattern, error) {
	var recipe domain.Recipe
	if err := json.Unmarshal([]byte(p.Recipe), &recipe); err != nil {
		return nil, fmt.Errorf("unmarshal recipe of feed %d v%d: %w", p.FeedID, p.Version, err)
	}
	return &domain.Pattern{FeedID: p.FeedID, Version: p.Version, Recipe: recipe, Active: p.Active,
		SuccessCount: p.SuccessCount, FailureCount: p.FailureCount, LastValidated: p.LastValidated, CreatedAt: p.CreatedAt}, nil
}
