// Package pattern keeps versioned extraction recipes per feed. The active pattern of a feed is
// replaced atomically, readers always see a complete recipe.
package pattern

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/umputun/sitefeed/pkg/domain"
)

//go:generate moq -out mocks/persister.go -pkg mocks -skip-ensure -fmt goimports . Persister

// Persister stores patterns durably
type Persister interface {
	ActivePattern(ctx context.Context, feedID int64) (*domain.Pattern, error)
	ActivatePattern(ctx context.Context, feedID int64, recipe domain.Recipe) (*domain.Pattern, error)
	RecordPatternOutcome(ctx context.Context, feedID int64, version int, success bool) error
}

// Store is a read-mostly cache of active patterns in front of an optional persister
type Store struct {
	persister Persister
	now       func() time.Time

	mu     sync.Mutex // serializes activation per store
	active sync.Map   // feedID -> *atomic.Pointer[domain.Pattern]
}

// NewStore makes store, nil persister keeps patterns in memory only
func NewStore(persister Persister) *Store {
	return &Store{persister: persister, now: time.Now}
}

// Active returns active pattern for feed, nil without error if feed has no pattern yet
func (s *Store) Active(ctx context.Context, feedID int64) (*domain.Pattern, error) {
	ptr := s.slot(feedID)
	if p := ptr.Load(); p != nil {
		return clone(p), nil
	}
	if s.persister == nil {
		return nil, nil
	}

	p, err := s.persister.ActivePattern(ctx, feedID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("load pattern for feed %d: %w", feedID, err)
	}
	ptr.CompareAndSwap(nil, p)
	return clone(ptr.Load()), nil
}

// Activate stores recipe as a new version and makes it the only active pattern of the feed
func (s *Store) Activate(ctx context.Context, feedID int64, recipe domain.Recipe) (*domain.Pattern, error) {
	if !recipe.Valid() {
		return nil, errors.New("recipe without container")
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	ptr := s.slot(feedID)
	var next *domain.Pattern
	if s.persister != nil {
		p, err := s.persister.ActivatePattern(ctx, feedID, recipe)
		if err != nil {
			return nil, fmt.Errorf("activate pattern for feed %d: %w", feedID, err)
		}
		next = p
	} else {
		version := 1
		if cur := ptr.Load(); cur != nil {
			version = cur.Version + 1
		}
		next = &domain.Pattern{FeedID: feedID, Version: version, Recipe: recipe, Active: true, CreatedAt: s.now()}
	}
	ptr.Store(next)
	return clone(next), nil
}

// RecordOutcome counts success or mismatch of the active pattern version
func (s *Store) RecordOutcome(ctx context.Context, feedID int64, version int, success bool) error {
	ptr := s.slot(feedID)
	for {
		cur := ptr.Load()
		if cur == nil || cur.Version != version {
			break // replaced meanwhile, the outcome belongs to an old version
		}
		upd := clone(cur)
		if success {
			upd.SuccessCount++
			now := s.now()
			upd.LastValidated = &now
		} else {
			upd.FailureCount++
		}
		if ptr.CompareAndSwap(cur, upd) {
			break
		}
	}
	if s.persister == nil {
		return nil
	}
	if err := s.persister.RecordPatternOutcome(ctx, feedID, version, success); err != nil {
		return fmt.Errorf("record outcome for feed %d: %w", feedID, err)
	}
	return nil
}

// Forget drops cached pattern of a deleted feed
func (s *Store) Forget(feedID int64) {
	s.active.Delete(feedID)
}

func (s *Store) slot(feedID int64) *atomic.Pointer[domain.Pattern] {
	if v, ok := s.active.Load(feedID); ok {
		return v.(*atomic.Pointer[domain.Pattern])
	}
	v, _ := s.active.LoadOrStore(feedID, &atomic.Pointer[domain.Pattern]{})
	return v.(*atomic.Pointer[domain.Pattern])
}

func clone(p *domain.Pattern) *domain.Pattern {
	if p == nil {
		return nil
	}
	res := *p
	if p.LastValidated != nil {
		lv := *p.LastValidated
		res.LastValidated = &lv
	}
	return &res
}
