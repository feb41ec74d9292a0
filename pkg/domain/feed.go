package domain

import "time"

// Feed represents a web page converted into an article feed
type Feed struct {
	ID          int64
	URL         string
	Title       string
	Description string
	Provider    string // AI provider used for analysis of this feed
	ErrorCount  int
	LastError   string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Article is a single extracted item of a feed
type Article struct {
	ID          int64
	FeedID      int64
	Title       string
	Link        string // canonical absolute URL
	Description string
	Image       string
	Published   *time.Time
	Hash        string // content hash, unique within a feed
	CreatedAt   time.Time
}

// Method tells how the items of an update were produced
type Method string

// enum of extraction methods
const (
	MethodNone       Method = "none"
	MethodNative     Method = "native"
	MethodSmart      Method = "smart"
	MethodAI         Method = "ai"
	MethodAIFallback Method = "ai_fallback"
)

// UpdateStatus of a finished update run
type UpdateStatus string

// enum of update statuses
const (
	StatusDone   UpdateStatus = "done"
	StatusFailed UpdateStatus = "failed"
)
