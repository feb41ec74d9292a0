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

// SessionRepository stores saved site sessions by origin
type SessionRepository struct {
	db *sqlx.DB
}

type sessionSQL struct {
	Origin        string     `db:"origin"`
	Name          string     `db:"name"`
	Cookies       string     `db:"cookies"`
	Headers       string     `db:"headers"`
	LoggedIn      bool       `db:"logged_in"`
	LastValidated *time.Time `db:"last_validated"`
	UpdatedAt     time.Time  `db:"updated_at"`
}

// NewSessionRepository creates a new session repository
func NewSessionRepository(database *sqlx.DB) *SessionRepository {
	return &SessionRepository{db: database}
}

// Session returns saved session of origin or domain.ErrNotFound
func (r *SessionRepository) Session(ctx context.Context, origin string) (*domain.SessionCookieSet, error) {
	var rec sessionSQL
	err := r.db.GetContext(ctx, &rec, "SELECT * FROM sessions WHERE origin = ?", origin)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("session for %s: %w", origin, domain.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get session: %w", err)
	}

	return rec.toDomain()
}

// Sessions returns all saved sessions ordered by origin
func (r *SessionRepository) Sessions(ctx context.Context) ([]domain.SessionCookieSet, error) {
	var recs []sessionSQL
	if err := r.db.SelectContext(ctx, &recs, "SELECT * FROM sessions ORDER BY origin"); err != nil {
		return nil, fmt.Errorf("get sessions: %w", err)
	}
	res := make([]domain.SessionCookieSet, 0, len(recs))
	for _, rec := range recs {
		s, err := rec.toDomain()
		if err != nil {
			return nil, err
		}
		res = append(res, *s)
	}
	return res, nil
}

// SaveSession creates or replaces session of its origin
func (r *SessionRepository) SaveSession(ctx context.Context, s domain.SessionCookieSet) error {
	cookies, err := json.Marshal(nonNil(s.Cookies))
	if err != nil {
		return fmt.Errorf("marshal cookies: %w", err)
	}
	headers, err := json.Marshal(nonNil(s.Headers))
	if err != nil {
		return fmt.Errorf("marshal headers: %w", err)
	}
	rec := sessionSQL{Origin: s.Origin, Name: s.Name, Cookies: string(cookies), Headers: string(headers),
		LoggedIn: s.LoggedIn, LastValidated: s.LastValidated, UpdatedAt: time.Now().UTC()}

	query := `
		INSERT INTO sessions (origin, name, cookies, headers, logged_in, last_validated, updated_at)
		VALUES (:origin, :name, :cookies, :headers, :logged_in, :last_validated, :updated_at)
		ON CONFLICT(origin) DO UPDATE SET
			name = excluded.name, cookies = excluded.cookies, headers = excluded.headers,
			logged_in = excluded.logged_in, last_validated = excluded.last_validated, updated_at = excluded.updated_at
	`
	err = withRetry(ctx, func() error {
		_, err := r.db.NamedExecContext(ctx, query, &rec)
		return err
	})
	if err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	return nil
}

// DeleteSession removes session of origin
func (r *SessionRepository) DeleteSession(ctx context.Context, origin string) error {
	err := withRetry(ctx, func() error {
		_, err := r.db.ExecContext(ctx, "DELETE FROM sessions WHERE origin = ?", origin)
		return err
	})
	if err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}

// MarkLoggedOut flags session of origin as no longer authenticated
func (r *SessionRepository) MarkLoggedOut(ctx context.Context, origin string) error {
	err := withRetry(ctx, func() error {
		_, err := r.db.ExecContext(ctx, "UPDATE sessions SET logged_in = 0, last_validated = ? WHERE origin = ?",
			time.Now().UTC(), origin)
		return err
	})
	if err != nil {
		return fmt.Errorf("mark session logged out: %w", err)
	}
	return nil
}

func nonNil(m map[string]string) map[string]string {
	if m == nil {
		return map[string]string{}
	}
	return m
}

func (s *sessionSQL) toDomain() (*domain.SessionCookieSet, error) {
	res := &domain.SessionCookieSet{Origin: s.Origin, Name: s.Name, LoggedIn: s.LoggedIn, LastValidated: s.LastValidated}
	if err := json.Unmarshal([]byte(s.Cookies), &res.Cookies); err != nil {
		return nil, fmt.Errorf("unmarshal cookies of %s: %w", s.Origin, err)
	}
	if err := json.Unmarshal([]byte(s.Headers), &res.Headers); err != nil {
		return nil, fmt.Errorf("unmarshal headers of %s: %w", s.Origin, err)
	}
	return res, nil
}
