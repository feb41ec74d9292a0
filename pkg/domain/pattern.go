package domain

import "time"

// FieldRule selects one field inside an article container.
// Empty Attr means text content.
type FieldRule struct {
	Selector string `json:"selector,omitempty"`
	Attr     string `json:"attr,omitempty"`
}

// Recipe is a declarative set of selectors extracting articles from a page
type Recipe struct {
	Container   string    `json:"container"`
	Title       FieldRule `json:"title"`
	Link        FieldRule `json:"link"`
	Date        FieldRule `json:"date"`
	Description FieldRule `json:"description"`
	Image       FieldRule `json:"image"`
}

// Valid reports whether recipe can be applied at all
func (r Recipe) Valid() bool {
	return r.Container != ""
}

// Pattern is a versioned recipe learned for a feed. Patterns are immutable, a new
// version replaces the active one as a whole.
type Pattern struct {
	FeedID        int64
	Version       int
	Recipe        Recipe
	Active        bool
	SuccessCount  int
	FailureCount  int
	LastValidated *time.Time
	CreatedAt     time.Time
}
