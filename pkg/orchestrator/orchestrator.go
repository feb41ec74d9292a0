// Package orchestrator runs feed updates as an explicit state machine: fetch through the cache,
// smart extraction with the active pattern and AI analysis as the self-healing fallback.
package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/umputun/sitefeed/pkg/cache"
	"github.com/umputun/sitefeed/pkg/domain"
	"github.com/umputun/sitefeed/pkg/fetch"
	"github.com/umputun/sitefeed/pkg/llm"
	"github.com/umputun/sitefeed/pkg/scrape"
)

//go:generate moq -out mocks/fetcher.go -pkg mocks -skip-ensure -fmt goimports . Fetcher
//go:generate moq -out mocks/analyzer.go -pkg mocks -skip-ensure -fmt goimports . Analyzer
//go:generate moq -out mocks/pattern_store.go -pkg mocks -skip-ensure -fmt goimports . PatternStore
//go:generate moq -out mocks/feed_store.go -pkg mocks -skip-ensure -fmt goimports . FeedStore
//go:generate moq -out mocks/session_store.go -pkg mocks -skip-ensure -fmt goimports . SessionStore
//go:generate moq -out mocks/recorder.go -pkg mocks -skip-ensure -fmt goimports . Recorder

// Fetcher gets page content, from cache when possible
type Fetcher interface {
	Fetch(ctx context.Context, rawURL string, session *domain.SessionCookieSet, opts fetch.Options) (*fetch.Result, error)
}

// Analyzer extracts articles and a recipe with AI
type Analyzer interface {
	Analyze(ctx context.Context, req llm.Request) (*llm.Analysis, error)
}

// PatternStore keeps active extraction patterns
type PatternStore interface {
	Active(ctx context.Context, feedID int64) (*domain.Pattern, error)
	Activate(ctx context.Context, feedID int64, recipe domain.Recipe) (*domain.Pattern, error)
	RecordOutcome(ctx context.Context, feedID int64, version int, success bool) error
	Forget(feedID int64)
}

// FeedStore keeps feeds and their items
type FeedStore interface {
	GetFeed(ctx context.Context, id int64) (*domain.Feed, error)
	FeedByURL(ctx context.Context, url string) (*domain.Feed, error)
	CreateFeed(ctx context.Context, feed *domain.Feed) error
	MergeItems(ctx context.Context, feedID int64, articles []domain.Article) (int, error)
	UpdateFeedError(ctx context.Context, feedID int64, errMsg string) error
	DeleteFeed(ctx context.Context, id int64) error
}

// SessionStore keeps saved site sessions
type SessionStore interface {
	Session(ctx context.Context, origin string) (*domain.SessionCookieSet, error)
	MarkLoggedOut(ctx context.Context, origin string) error
}

// Recorder gets notified about finished updates
type Recorder interface {
	UpdateFinished(method domain.Method, status domain.UpdateStatus, added int, duration time.Duration)
}

// State of an update run
type State string

// states of the update state machine
const (
	StateIdle           State = "idle"
	StateFetching       State = "fetching"
	StateCached         State = "cached"
	StateFetched        State = "fetched"
	StateExtracting     State = "extracting"
	StateSmartSucceeded State = "smart_succeeded"
	StateSmartFailed    State = "smart_failed"
	StateAIAnalyzing    State = "ai_analyzing"
	StateAISucceeded    State = "ai_succeeded"
	StateAIFailed       State = "ai_failed"
	StateReconciling    State = "reconciling"
	StateDone           State = "done"
	StateFailed         State = "failed"
)

// Params of the orchestrator
type Params struct {
	MinSmartItems   int // smart extraction with fewer items falls back to AI
	MinAIItems      int // AI analysis with fewer items fails and its recipe is not activated
	MaxItems        int
	DefaultProvider string
}

// Deps are collaborators of the orchestrator, Sessions and Metrics are optional
type Deps struct {
	Fetcher  Fetcher
	Scraper  *scrape.Scraper
	Patterns PatternStore
	Analyzer Analyzer
	Feeds    FeedStore
	Sessions SessionStore
	Metrics  Recorder
}

// UpdateOutcome is the result of a single update run
type UpdateOutcome struct {
	RunID      string              `json:"run_id"`
	FeedID     int64               `json:"feed_id"`
	Status     domain.UpdateStatus `json:"status"`
	ItemsAdded int                 `json:"items_added"`
	Method     domain.Method       `json:"method"`
	Strategy   string              `json:"strategy,omitempty"`
	FromCache  bool                `json:"from_cache"`
	Trace      []State             `json:"trace"`
	Duration   time.Duration       `json:"duration"`
	Err        error               `json:"-"`
}

// Orchestrator coordinates fetch, smart extraction and AI fallback for feeds
type Orchestrator struct {
	Deps
	params Params
	locks  *keyedLocks
	steps  map[State]func(ctx context.Context, r *run) State
}

type runMode int

const (
	modeUpdate runMode = iota
	modeGenerate
)

// run carries the data of one state machine execution
type run struct {
	id       string
	mode     runMode
	url      string
	provider string
	forceAI  bool
	feed     *domain.Feed // nil until created in generate mode
	session  *domain.SessionCookieSet

	page     *fetch.Result
	articles []domain.Article
	analysis *llm.Analysis
	method   domain.Method
	added    int
	err      error
	trace    []State
}

// New makes orchestrator, zero params replaced by defaults
func New(deps Deps, params Params) *Orchestrator {
	if params.MinSmartItems <= 0 {
		params.MinSmartItems = 1
	}
	if params.MinAIItems <= 0 {
		params.MinAIItems = 1
	}
	if params.MaxItems <= 0 {
		params.MaxItems = 20
	}
	if params.DefaultProvider == "" {
		params.DefaultProvider = "openai"
	}
	if deps.Scraper == nil {
		deps.Scraper = scrape.NewScraper(scrape.Params{MaxItems: params.MaxItems})
	}

	o := &Orchestrator{Deps: deps, params: params, locks: newKeyedLocks()}
	o.steps = map[State]func(ctx context.Context, r *run) State{
		StateIdle:           func(context.Context, *run) State { return StateFetching },
		StateFetching:       o.fetching,
		StateCached:         func(context.Context, *run) State { return StateExtracting },
		StateFetched:        func(context.Context, *run) State { return StateExtracting },
		StateExtracting:     o.extracting,
		StateSmartSucceeded: func(context.Context, *run) State { return StateReconciling },
		StateSmartFailed:    func(context.Context, *run) State { return StateAIAnalyzing },
		StateAIAnalyzing:    o.analyzing,
		StateAISucceeded:    o.aiSucceeded,
		StateAIFailed:       func(context.Context, *run) State { return StateFailed },
		StateReconciling:    o.reconciling,
	}
	return o
}

// Update refreshes items of the feed. forceAI skips cache reads and smart extraction.
// A failed update leaves stored items untouched, records the error on the feed and returns
// the outcome together with the error.
func (o *Orchestrator) Update(ctx context.Context, feedID int64, forceAI bool) (*UpdateOutcome, error) {
	feed, err := o.Feeds.GetFeed(ctx, feedID)
	if err != nil {
		return nil, fmt.Errorf("get feed %d: %w", feedID, err)
	}

	unlock, err := o.locks.lock(ctx, fmt.Sprintf("feed:%d", feedID))
	if err != nil {
		return nil, fmt.Errorf("wait for update of feed %d: %w", feedID, err)
	}
	defer unlock()

	provider := feed.Provider
	if provider == "" {
		provider = o.params.DefaultProvider
	}
	r := &run{id: uuid.NewString(), mode: modeUpdate, url: feed.URL, provider: provider, forceAI: forceAI, feed: feed}
	r.session = o.session(ctx, feed.URL)

	started := time.Now()
	o.execute(ctx, r)
	outcome := o.outcome(r, time.Since(started))

	if outcome.Status == domain.StatusFailed {
		if err := o.Feeds.UpdateFeedError(context.WithoutCancel(ctx), feed.ID, outcome.Err.Error()); err != nil {
			log.Printf("[WARN] can't record error of feed %d: %v", feed.ID, err)
		}
		log.Printf("[WARN] update %s of feed %d failed after %v: %v", r.id, feed.ID, outcome.Trace, outcome.Err)
		return outcome, outcome.Err
	}
	log.Printf("[INFO] update %s of feed %d done, method %s, %d new items, %v", r.id, feed.ID, outcome.Method,
		outcome.ItemsAdded, outcome.Duration.Round(time.Millisecond))
	return outcome, nil
}

// Generate makes a feed for url with AI analysis. Existing feed for the same url is returned as is.
// The feed is stored only if analysis succeeds.
func (o *Orchestrator) Generate(ctx context.Context, rawURL, provider string) (*domain.Feed, error) {
	u, err := url.Parse(strings.TrimSpace(rawURL))
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return nil, fmt.Errorf("invalid url %q", rawURL)
	}
	normalized := cache.NormalizeURL(u.String())

	unlock, err := o.locks.lock(ctx, "url:"+normalized)
	if err != nil {
		return nil, fmt.Errorf("wait for generation of %s: %w", normalized, err)
	}
	defer unlock()

	existing, err := o.Feeds.FeedByURL(ctx, normalized)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return nil, fmt.Errorf("find feed %s: %w", normalized, err)
	}

	if provider == "" {
		provider = o.params.DefaultProvider
	}
	r := &run{id: uuid.NewString(), mode: modeGenerate, url: normalized, provider: strings.ToLower(provider)}
	r.session = o.session(ctx, normalized)

	started := time.Now()
	o.execute(ctx, r)
	outcome := o.outcome(r, time.Since(started))
	if outcome.Status == domain.StatusFailed {
		log.Printf("[WARN] generation %s of feed for %s failed after %v: %v", r.id, normalized, outcome.Trace, outcome.Err)
		return nil, outcome.Err
	}
	log.Printf("[INFO] generation %s made feed %d for %s with %d items", r.id, r.feed.ID, normalized, r.added)
	return r.feed, nil
}

// execute runs state steps from idle to a terminal state, recording the trace
func (o *Orchestrator) execute(ctx context.Context, r *run) {
	state := StateIdle
	for state != StateDone && state != StateFailed {
		r.trace = append(r.trace, state)
		step, ok := o.steps[state]
		if !ok {
			r.err = fmt.Errorf("no step for state %s", state)
			state = StateFailed
			break
		}
		state = step(ctx, r)
	}
	r.trace = append(r.trace, state)
}

func (o *Orchestrator) fetching(ctx context.Context, r *run) State {
	page, err := o.Fetcher.Fetch(ctx, r.url, r.session, fetch.Options{SkipCache: r.forceAI})
	if err != nil {
		o.checkLoggedOut(ctx, r, err)
		r.err = err
		return StateFailed
	}
	r.page = page
	if page.FromCache {
		return StateCached
	}
	return StateFetched
}

func (o *Orchestrator) extracting(ctx context.Context, r *run) State {
	if r.mode == modeGenerate || r.forceAI {
		r.method = domain.MethodAI
		return StateSmartFailed
	}
	r.method = domain.MethodAIFallback

	if native, ok := scrape.ParseNative(r.page.Body, r.url, o.params.MaxItems); ok && len(native.Articles) >= o.params.MinSmartItems {
		r.articles, r.method = native.Articles, domain.MethodNative
		return StateSmartSucceeded
	}

	p, err := o.Patterns.Active(ctx, r.feed.ID)
	if err != nil {
		log.Printf("[WARN] can't load pattern of feed %d: %v", r.feed.ID, err)
		return StateSmartFailed
	}
	if p == nil {
		log.Printf("[DEBUG] feed %d has no pattern", r.feed.ID)
		return StateSmartFailed
	}

	articles, err := o.Scraper.Extract(r.page.Body, r.url, p.Recipe)
	if err == nil && len(articles) < o.params.MinSmartItems {
		err = fmt.Errorf("%d items, expected at least %d: %w", len(articles), o.params.MinSmartItems, domain.ErrInsufficientItems)
	}
	if rerr := o.Patterns.RecordOutcome(ctx, r.feed.ID, p.Version, err == nil); rerr != nil {
		log.Printf("[WARN] %v", rerr)
	}
	if err != nil {
		log.Printf("[INFO] pattern v%d of feed %d mismatch, falling back to ai: %v", p.Version, r.feed.ID, err)
		return StateSmartFailed
	}
	r.articles, r.method = articles, domain.MethodSmart
	return StateSmartSucceeded
}

func (o *Orchestrator) analyzing(ctx context.Context, r *run) State {
	analysis, err := o.Analyzer.Analyze(ctx, llm.Request{URL: r.url, Content: r.page.Body, Provider: r.provider})
	if err != nil {
		r.err = err
		return StateAIFailed
	}
	if len(analysis.Articles) < o.params.MinAIItems {
		r.err = fmt.Errorf("ai analysis of %s gave %d items, expected at least %d: %w",
			r.url, len(analysis.Articles), o.params.MinAIItems, domain.ErrInsufficientItems)
		return StateAIFailed
	}
	r.analysis, r.articles = analysis, analysis.Articles
	return StateAISucceeded
}

// aiSucceeded creates the feed in generate mode and activates the new recipe
func (o *Orchestrator) aiSucceeded(ctx context.Context, r *run) State {
	if r.mode == modeGenerate {
		title, desc := r.analysis.Title, r.analysis.Description
		if title == "" || desc == "" {
			siteTitle, siteDesc := scrape.SiteInfo(r.page.Body)
			title, desc = firstNonEmpty(title, siteTitle, r.url), firstNonEmpty(desc, siteDesc)
		}
		feed := &domain.Feed{URL: r.url, Title: title, Description: desc, Provider: r.provider}
		if err := o.Feeds.CreateFeed(ctx, feed); err != nil {
			r.err = fmt.Errorf("create feed for %s: %w", r.url, err)
			return StateFailed
		}
		r.feed = feed
	}

	p, err := o.Patterns.Activate(ctx, r.feed.ID, r.analysis.Recipe)
	if err != nil {
		log.Printf("[WARN] can't activate pattern of feed %d: %v", r.feed.ID, err)
		return StateReconciling
	}
	log.Printf("[INFO] pattern v%d activated for feed %d, container %q", p.Version, r.feed.ID, p.Recipe.Container)
	return StateReconciling
}

func (o *Orchestrator) reconciling(ctx context.Context, r *run) State {
	added, err := o.Feeds.MergeItems(ctx, r.feed.ID, r.articles)
	if err != nil {
		r.err = fmt.Errorf("merge items of feed %d: %w", r.feed.ID, err)
		if r.mode == modeGenerate {
			o.discardFeed(ctx, r)
		}
		return StateFailed
	}
	r.added = added
	return StateDone
}

// discardFeed removes the feed made by a failed generation together with its pattern
func (o *Orchestrator) discardFeed(ctx context.Context, r *run) {
	o.Patterns.Forget(r.feed.ID)
	if err := o.Feeds.DeleteFeed(context.WithoutCancel(ctx), r.feed.ID); err != nil {
		log.Printf("[WARN] can't remove feed %d of failed generation: %v", r.feed.ID, err)
	}
	r.feed = nil
}

// session returns saved session for the origin of the url, nil if none
func (o *Orchestrator) session(ctx context.Context, rawURL string) *domain.SessionCookieSet {
	if o.Sessions == nil {
		return nil
	}
	origin := Origin(rawURL)
	if origin == "" {
		return nil
	}
	s, err := o.Sessions.Session(ctx, origin)
	if err != nil {
		if !errors.Is(err, domain.ErrNotFound) {
			log.Printf("[WARN] can't load session for %s: %v", origin, err)
		}
		return nil
	}
	return s
}

// checkLoggedOut marks the session logged out if a site with logged-in session answered 403
func (o *Orchestrator) checkLoggedOut(ctx context.Context, r *run, err error) {
	if o.Sessions == nil || r.session == nil || !r.session.LoggedIn {
		return
	}
	var fe *fetch.FailureError
	if !errors.As(err, &fe) || fe.LastStatus != http.StatusForbidden {
		return
	}
	log.Printf("[WARN] session for %s looks expired, marking logged out", r.session.Origin)
	if merr := o.Sessions.MarkLoggedOut(context.WithoutCancel(ctx), r.session.Origin); merr != nil {
		log.Printf("[WARN] can't mark session %s logged out: %v", r.session.Origin, merr)
	}
}

func (o *Orchestrator) outcome(r *run, duration time.Duration) *UpdateOutcome {
	res := &UpdateOutcome{RunID: r.id, Status: domain.StatusDone, ItemsAdded: r.added, Method: r.method,
		Trace: r.trace, Duration: duration, Err: r.err}
	if r.feed != nil {
		res.FeedID = r.feed.ID
	}
	if r.page != nil {
		res.Strategy, res.FromCache = r.page.Strategy, r.page.FromCache
	}
	if len(r.trace) == 0 || r.trace[len(r.trace)-1] != StateDone {
		res.Status = domain.StatusFailed
		if res.Err == nil {
			res.Err = errors.New("update not finished")
		}
	}
	if res.Method == "" {
		res.Method = domain.MethodNone
	}
	if o.Metrics != nil {
		o.Metrics.UpdateFinished(res.Method, res.Status, res.ItemsAdded, duration)
	}
	return res
}

// Origin returns scheme://host of url, empty for invalid one
func Origin(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return ""
	}
	return strings.ToLower(u.Scheme) + "://" + strings.ToLower(u.Host)
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}
