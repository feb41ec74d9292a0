package domain

import "time"

// CacheEntry is an immutable cached page body
type CacheEntry struct {
	Key        string
	Content    []byte
	StatusCode int
	Strategy   string
	FetchedAt  time.Time
	TTL        time.Duration
}

// Expired reports whether entry is stale at the given time. Zero TTL is always expired.
func (e CacheEntry) Expired(now time.Time) bool {
	if e.TTL <= 0 {
		return true
	}
	return !now.Before(e.FetchedAt.Add(e.TTL))
}

// SessionCookieSet holds saved authentication state for a site origin
type SessionCookieSet struct {
	Origin        string // scheme://host
	Name          string
	Cookies       map[string]string
	Headers       map[string]string
	LoggedIn      bool
	LastValidated *time.Time
}

// APIKeyRecord is a stored provider credential with its health state
type APIKeyRecord struct {
	ID            int64
	Provider      string
	Index         int // rotation index within provider
	Encrypted     []byte
	FailureStreak int
	LastUsed      *time.Time
	DisabledUntil *time.Time
	CreatedAt     time.Time
}
