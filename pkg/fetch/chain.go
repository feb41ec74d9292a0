// Package fetch retrieves pages through an ordered chain of anti-bot strategies with
// challenge detection, whole-call retries and content caching.
package fetch

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"time"

	"github.com/go-pkgz/repeater/v2"
	"golang.org/x/sync/singleflight"

	"github.com/umputun/sitefeed/pkg/cache"
	"github.com/umputun/sitefeed/pkg/domain"
)

//go:generate moq -out mocks/cache.go -pkg mocks -skip-ensure -fmt goimports . Cache

// Cache stores fetched pages
type Cache interface {
	Get(ctx context.Context, key string) (*domain.CacheEntry, bool)
	Put(ctx context.Context, key string, entry domain.CacheEntry, ttl time.Duration) error
}

// Params configures the chain
type Params struct {
	Timeout              time.Duration // per strategy attempt
	Attempts             int           // whole chain attempts
	RetryDelay           time.Duration // initial backoff between chain attempts
	MinBodyLength        int           // shorter bodies are treated as challenge stubs
	ChallengeMarkers     []string
	HostInterval         time.Duration // min interval between requests to the same host
	DelayedWait          time.Duration // wait before the delayed strategy
	BlockPrivateNetworks bool
	TTL                  func(url string) time.Duration // cache ttl selector, cache.TTLFor by default
}

// DefaultMinBodyLength is the body size below which a 200 response is treated as a stub page
const DefaultMinBodyLength = 500

// Options of a single fetch
type Options struct {
	SkipCache bool // don't read cache, fresh result is written with zero ttl
}

// Result of a fetch
type Result struct {
	URL        string
	StatusCode int
	Body       []byte
	Strategy   string
	FromCache  bool
	FetchedAt  time.Time
}

// FailureError is returned when every strategy failed on every attempt.
// It matches domain.ErrFetchFailed with errors.Is.
type FailureError struct {
	URL        string
	LastStatus int // last http status seen, 0 if no response got at all
	Err        error
}

func (e *FailureError) Error() string {
	return fmt.Sprintf("%s %s: %v", domain.ErrFetchFailed, e.URL, e.Err)
}

// Unwrap returns both the sentinel and the cause
func (e *FailureError) Unwrap() []error { return []error{domain.ErrFetchFailed, e.Err} }

// Chain fetches pages trying strategies in order until one passes validation
type Chain struct {
	strategies []Strategy
	cache      Cache
	params     Params
	limiter    *hostLimiter
	group      singleflight.Group
	now        func() time.Time
}

// Option customizes Chain
type Option func(c *Chain)

// WithStrategies replaces default strategies
func WithStrategies(strategies ...Strategy) Option {
	return func(c *Chain) { c.strategies = strategies }
}

// NewChain makes chain with default strategies, cache can be nil
func NewChain(ch Cache, params Params, opts ...Option) *Chain {
	if params.Timeout <= 0 {
		params.Timeout = 15 * time.Second
	}
	if params.Attempts <= 0 {
		params.Attempts = 3
	}
	if params.RetryDelay <= 0 {
		params.RetryDelay = time.Second
	}
	if params.MinBodyLength <= 0 {
		params.MinBodyLength = DefaultMinBodyLength
	}
	if params.ChallengeMarkers == nil {
		params.ChallengeMarkers = DefaultChallengeMarkers
	}
	if params.TTL == nil {
		params.TTL = cache.TTLFor
	}
	res := &Chain{cache: ch, params: params, limiter: newHostLimiter(params.HostInterval), now: time.Now}
	res.strategies = DefaultStrategies(params)
	for _, opt := range opts {
		opt(res)
	}
	return res
}

// DefaultStrategies returns minimal, browser, fingerprint and delayed strategies
func DefaultStrategies(params Params) []Strategy {
	plainClient := func() httpDoer {
		if params.BlockPrivateNetworks {
			return newSafeClient(params.Timeout)
		}
		return &http.Client{Timeout: params.Timeout}
	}
	return []Strategy{
		&httpStrategy{kind: KindMinimal, client: plainClient(), userAgent: firefoxUA},
		&httpStrategy{kind: KindBrowser, client: plainClient(), userAgent: chromeUA, browser: true, referer: "https://www.google.com/"},
		&httpStrategy{kind: KindFingerprint, userAgent: chromeUA, browser: true, referer: "https://www.google.com/",
			client: &http.Client{Timeout: params.Timeout, Transport: newFingerprintTransport(params.Timeout, params.BlockPrivateNetworks)}},
		&httpStrategy{kind: KindDelayed, client: plainClient(), userAgent: safariUA, browser: true, delay: params.DelayedWait},
	}
}

// Fetch returns page content for url, from cache if there is an unexpired entry
func (c *Chain) Fetch(ctx context.Context, rawURL string, session *domain.SessionCookieSet, opts Options) (*Result, error) {
	if err := validateURL(rawURL, c.params.BlockPrivateNetworks); err != nil {
		return nil, &FailureError{URL: rawURL, Err: err}
	}

	key := cache.Key(rawURL, cache.Fingerprint(session))
	ttl := c.params.TTL(rawURL)
	if opts.SkipCache {
		ttl = 0 // forced refresh leaves an already expired entry
	}
	if c.cache != nil && !opts.SkipCache {
		if entry, ok := c.cache.Get(ctx, key); ok {
			log.Printf("[DEBUG] cache hit for %s", rawURL)
			return &Result{URL: rawURL, StatusCode: entry.StatusCode, Body: entry.Content, Strategy: entry.Strategy,
				FromCache: true, FetchedAt: entry.FetchedAt}, nil
		}
	}

	v, err, shared := c.group.Do(key, func() (any, error) {
		res, err := c.fetchWithRetries(ctx, rawURL, session)
		if err != nil {
			return nil, err
		}
		if c.cache != nil {
			entry := domain.CacheEntry{Content: res.Body, StatusCode: res.StatusCode, Strategy: res.Strategy, FetchedAt: res.FetchedAt}
			if err := c.cache.Put(ctx, key, entry, ttl); err != nil {
				log.Printf("[WARN] can't cache %s: %v", rawURL, err)
			}
		}
		return res, nil
	})
	if err != nil {
		return nil, err
	}
	if shared {
		log.Printf("[DEBUG] shared fetch result for %s", rawURL)
	}
	res := *v.(*Result)
	return &res, nil
}

// fetchWithRetries runs the whole chain up to Attempts times with backoff
func (c *Chain) fetchWithRetries(ctx context.Context, rawURL string, session *domain.SessionCookieSet) (*Result, error) {
	var res *Result
	var lastStatus int
	retrier := repeater.NewBackoff(c.params.Attempts, c.params.RetryDelay, repeater.WithMaxDelay(10*time.Second))
	err := retrier.Do(ctx, func() error {
		r, status, err := c.runStrategies(ctx, Request{URL: rawURL, Session: session})
		if status != 0 {
			lastStatus = status
		}
		if err != nil {
			log.Printf("[DEBUG] fetch attempt for %s failed: %v", rawURL, err)
			return err
		}
		res = r
		return nil
	})
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil && !errors.Is(err, ctxErr) {
			err = fmt.Errorf("%w: %w", ctxErr, err)
		}
		return nil, &FailureError{URL: rawURL, LastStatus: lastStatus, Err: err}
	}
	return res, nil
}

// runStrategies tries strategies in order and returns the first passing result.
// Returns the last seen http status for failed runs.
func (c *Chain) runStrategies(ctx context.Context, req Request) (*Result, int, error) {
	host := ""
	if u, err := url.Parse(req.URL); err == nil {
		host = u.Host
	}

	var lastErr error
	var lastStatus int
	for _, s := range c.strategies {
		if err := ctx.Err(); err != nil {
			return nil, lastStatus, err
		}
		if err := c.limiter.Wait(ctx, host); err != nil {
			return nil, lastStatus, err
		}

		sctx, cancel := context.WithTimeout(ctx, c.params.Timeout)
		resp, err := s.Do(sctx, req)
		cancel()
		if err != nil {
			lastErr = fmt.Errorf("strategy %s: %w", s.Name(), err)
			log.Printf("[DEBUG] %v", lastErr)
			continue
		}
		lastStatus = resp.StatusCode
		if resp.StatusCode < 200 || resp.StatusCode > 299 {
			lastErr = fmt.Errorf("strategy %s: status %d", s.Name(), resp.StatusCode)
			log.Printf("[DEBUG] %v", lastErr)
			continue
		}
		if IsChallenge(resp.Body, c.params.MinBodyLength, c.params.ChallengeMarkers) {
			lastErr = fmt.Errorf("strategy %s: challenge page", s.Name())
			log.Printf("[DEBUG] %v", lastErr)
			continue
		}

		log.Printf("[DEBUG] fetched %s with %s strategy, %d bytes", req.URL, s.Name(), len(resp.Body))
		return &Result{URL: req.URL, StatusCode: resp.StatusCode, Body: resp.Body, Strategy: s.Name(), FetchedAt: c.now()}, lastStatus, nil
	}
	if lastErr == nil {
		lastErr = errors.New("no strategies")
	}
	return nil, lastStatus, fmt.Errorf("all strategies failed, last: %w", lastErr)
}
