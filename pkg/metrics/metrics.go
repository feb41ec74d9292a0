// Package metrics collects prometheus metrics of updates, fetches and the content cache
package metrics

import (
	"context"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/umputun/sitefeed/pkg/domain"
	"github.com/umputun/sitefeed/pkg/fetch"
)

// Collector keeps prometheus metrics, implements orchestrator.Recorder
type Collector struct {
	updates        *prometheus.CounterVec
	itemsAdded     *prometheus.CounterVec
	updateDuration prometheus.Histogram
	fetches        *prometheus.CounterVec
	fetchFailures  prometheus.Counter
	cacheLookups   *prometheus.CounterVec
}

// NewCollector makes collector and registers its metrics in reg
func NewCollector(reg prometheus.Registerer) *Collector {
	c := &Collector{
		updates: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "sitefeed_updates_total",
			Help: "finished feed updates by method and status",
		}, []string{"method", "status"}),
		itemsAdded: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "sitefeed_items_added_total",
			Help: "new items merged into feeds by method",
		}, []string{"method"}),
		updateDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "sitefeed_update_duration_seconds",
			Help:    "duration of feed updates",
			Buckets: []float64{0.1, 0.5, 1, 2.5, 5, 10, 30, 60, 120},
		}),
		fetches: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "sitefeed_fetch_total",
			Help: "successful page fetches by strategy, cache hits counted as strategy \"cache\"",
		}, []string{"strategy"}),
		fetchFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "sitefeed_fetch_fail_total",
			Help: "page fetches failed with every strategy",
		}),
		cacheLookups: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "sitefeed_cache_lookups_total",
			Help: "content cache lookups by result",
		}, []string{"result"}),
	}
	reg.MustRegister(c.updates, c.itemsAdded, c.updateDuration, c.fetches, c.fetchFailures, c.cacheLookups)
	return c
}

// UpdateFinished records outcome of an update run
func (c *Collector) UpdateFinished(method domain.Method, status domain.UpdateStatus, added int, duration time.Duration) {
	c.updates.WithLabelValues(string(method), string(status)).Inc()
	if added > 0 {
		c.itemsAdded.WithLabelValues(string(method)).Add(float64(added))
	}
	c.updateDuration.Observe(duration.Seconds())
}

// fetcher is the subset of fetch.Chain used by orchestrator
type fetcher interface {
	Fetch(ctx context.Context, rawURL string, session *domain.SessionCookieSet, opts fetch.Options) (*fetch.Result, error)
}

// Fetcher wraps f counting fetches by strategy and failures
func (c *Collector) Fetcher(f fetcher) *InstrumentedFetcher {
	return &InstrumentedFetcher{fetcher: f, c: c}
}

// InstrumentedFetcher is a fetcher reporting to collector
type InstrumentedFetcher struct {
	fetcher
	c *Collector
}

// Fetch delegates to wrapped fetcher
func (f *InstrumentedFetcher) Fetch(ctx context.Context, rawURL string, session *domain.SessionCookieSet,
	opts fetch.Options) (*fetch.Result, error) {
	res, err := f.fetcher.Fetch(ctx, rawURL, session, opts)
	if err != nil {
		f.c.fetchFailures.Inc()
		return nil, err
	}
	strategy := res.Strategy
	if res.FromCache {
		strategy = "cache"
	}
	f.c.fetches.WithLabelValues(strategy).Inc()
	return res, nil
}

// Cache wraps ch counting hits and misses
func (c *Collector) Cache(ch fetch.Cache) *InstrumentedCache {
	return &InstrumentedCache{Cache: ch, c: c}
}

// InstrumentedCache is a content cache reporting lookups to collector
type InstrumentedCache struct {
	fetch.Cache
	c *Collector
}

// Get delegates to wrapped cache
func (ic *InstrumentedCache) Get(ctx context.Context, key string) (*domain.CacheEntry, bool) {
	entry, ok := ic.Cache.Get(ctx, key)
	if ok {
		ic.c.cacheLookups.WithLabelValues("hit").Inc()
	} else {
		ic.c.cacheLookups.WithLabelValues("miss").Inc()
	}
	return entry, ok
}

// Handler returns http handler for prometheus scraping
func Handler(gatherer prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})
}
