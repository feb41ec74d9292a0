package domain

import "errors"

// errors returned by the extraction engine, callers classify them with errors.Is
var (
	ErrFetchFailed          = errors.New("fetch failed")
	ErrPatternMismatch      = errors.New("pattern mismatch")
	ErrAIAnalysisFailed     = errors.New("ai analysis failed")
	ErrExhaustedCredentials = errors.New("exhausted credentials")
	ErrInsufficientItems    = errors.New("insufficient items")
	ErrNotFound             = errors.New("not found")
	ErrDuplicateKey         = errors.New("duplicate key")
)
