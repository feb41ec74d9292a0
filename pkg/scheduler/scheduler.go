// Package scheduler runs periodic update cycles over all feeds
package scheduler

import (
	"context"
	"sync"
	"time"

	"github.com/go-pkgz/lgr"
	"golang.org/x/sync/errgroup"

	"github.com/umputun/sitefeed/pkg/domain"
	"github.com/umputun/sitefeed/pkg/orchestrator"
)

//go:generate moq -out mocks/feed_lister.go -pkg mocks -skip-ensure -fmt goimports . FeedLister
//go:generate moq -out mocks/updater.go -pkg mocks -skip-ensure -fmt goimports . Updater

// FeedLister returns all feeds to update
type FeedLister interface {
	ListFeeds(ctx context.Context) ([]domain.Feed, error)
}

// Updater updates a single feed
type Updater interface {
	Update(ctx context.Context, feedID int64, forceAI bool) (*orchestrator.UpdateOutcome, error)
}

// Params of the scheduler
type Params struct {
	UpdateInterval time.Duration
	MaxWorkers     int
}

// State of the scheduler, NextFireAt is zero when not running
type State struct {
	Running    bool      `json:"running"`
	NextFireAt time.Time `json:"next_fire_at,omitempty"`
	LastCycle  *Summary  `json:"last_cycle,omitempty"`
}

// Summary of a single update cycle
type Summary struct {
	StartedAt  time.Time     `json:"started_at"`
	Duration   time.Duration `json:"duration"`
	Feeds      int           `json:"feeds"`
	Succeeded  int           `json:"succeeded"`
	Failed     int           `json:"failed"`
	ItemsAdded int           `json:"items_added"`
}

// Scheduler triggers updates of all feeds every UpdateInterval
type Scheduler struct {
	feeds      FeedLister
	updater    Updater
	interval   time.Duration
	maxWorkers int

	mu        sync.Mutex
	running   bool
	nextFire  time.Time
	lastCycle *Summary
	cancel    context.CancelFunc
	done      chan struct{}
}

// NewScheduler makes scheduler, zero params replaced by defaults
func NewScheduler(feeds FeedLister, updater Updater, params Params) *Scheduler {
	if params.UpdateInterval <= 0 {
		params.UpdateInterval = time.Hour
	}
	if params.MaxWorkers <= 0 {
		params.MaxWorkers = 5
	}
	return &Scheduler{feeds: feeds, updater: updater, interval: params.UpdateInterval, maxWorkers: params.MaxWorkers}
}

// Start runs the first cycle immediately and then every interval until Stop or ctx is done.
// Starting a running scheduler does nothing.
func (s *Scheduler) Start(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.running {
		lgr.Printf("[DEBUG] scheduler already running")
		return
	}
	ctx, s.cancel = context.WithCancel(ctx)
	s.running = true
	s.nextFire = time.Now()
	s.done = make(chan struct{})
	go s.loop(ctx, s.done)
	lgr.Printf("[INFO] scheduler started with update interval %v, max workers %d", s.interval, s.maxWorkers)
}

// Stop cancels the running cycle and waits for the loop to finish
func (s *Scheduler) Stop() {
	s.mu.Lock()
	if !s.running {
		s.mu.Unlock()
		return
	}
	s.cancel()
	s.running = false
	s.nextFire = time.Time{}
	done := s.done
	s.mu.Unlock()

	<-done
	lgr.Printf("[INFO] scheduler stopped")
}

// State returns current state of the scheduler
func (s *Scheduler) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	res := State{Running: s.running, NextFireAt: s.nextFire}
	if s.lastCycle != nil {
		last := *s.lastCycle
		res.LastCycle = &last
	}
	return res
}

// RunOnce updates all feeds concurrently, at most MaxWorkers at a time.
// Failed updates are logged and don't affect other feeds.
func (s *Scheduler) RunOnce(ctx context.Context) Summary {
	summary := Summary{StartedAt: time.Now()}
	feeds, err := s.feeds.ListFeeds(ctx)
	if err != nil {
		lgr.Printf("[ERROR] failed to list feeds: %v", err)
		return summary
	}
	summary.Feeds = len(feeds)
	lgr.Printf("[INFO] updating %d feeds", len(feeds))

	var mu sync.Mutex
	var g errgroup.Group
	g.SetLimit(s.maxWorkers)
	for _, f := range feeds {
		if ctx.Err() != nil {
			break
		}
		g.Go(func() error {
			outcome, err := s.updater.Update(ctx, f.ID, false)
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				summary.Failed++
				lgr.Printf("[WARN] update of feed %d (%s) failed: %v", f.ID, f.URL, err)
				return nil
			}
			summary.Succeeded++
			summary.ItemsAdded += outcome.ItemsAdded
			return nil
		})
	}
	_ = g.Wait() // workers never return errors

	summary.Duration = time.Since(summary.StartedAt)
	s.mu.Lock()
	s.lastCycle = &summary
	s.mu.Unlock()
	lgr.Printf("[INFO] feed update completed in %v, %d succeeded, %d failed, %d new items",
		summary.Duration.Round(time.Millisecond), summary.Succeeded, summary.Failed, summary.ItemsAdded)
	return summary
}

func (s *Scheduler) loop(ctx context.Context, done chan struct{}) {
	defer func() {
		s.mu.Lock()
		if s.done == done { // loop also ends on parent ctx cancel
			s.running, s.nextFire = false, time.Time{}
		}
		s.mu.Unlock()
		close(done)
	}()

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	// run immediately on start
	s.setNextFire(time.Now().Add(s.interval))
	s.RunOnce(ctx)

	for {
		select {
		case <-ctx.Done():
			return
		case t := <-ticker.C:
			s.setNextFire(t.Add(s.interval))
			s.RunOnce(ctx)
		}
	}
}

func (s *Scheduler) setNextFire(t time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.running {
		s.nextFire = t
	}
}
