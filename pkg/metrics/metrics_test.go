package metrics

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/umputun/sitefeed/pkg/cache"
	"github.com/umputun/sitefeed/pkg/domain"
	"github.com/umputun/sitefeed/pkg/fetch"
)

// counterValue returns value of the counter with matching labels, -1 if not found
func counterValue(t *testing.T, reg *prometheus.Registry, name string, labels map[string]string) float64 {
	t.Helper()
	families, err := reg.Gather()
	require.NoError(t, err)
	for _, mf := range families {
		if mf.GetName() != name {
			continue
		}
	metrics:
		for _, m := range mf.GetMetric() {
			for _, lp := range m.GetLabel() {
				if labels[lp.GetName()] != lp.GetValue() {
					continue metrics
				}
			}
			return m.GetCounter().GetValue()
		}
	}
	return -1
}

type fetcherFunc func(ctx context.Context, rawURL string, session *domain.SessionCookieSet, opts fetch.Options) (*fetch.Result, error)

func (f fetcherFunc) Fetch(ctx context.Context, rawURL string, session *domain.SessionCookieSet, opts fetch.Options) (*fetch.Result, error) {
	return f(ctx, rawURL, session, opts)
}

func TestCollector_UpdateFinished(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := NewCollector(reg)

	c.UpdateFinished(domain.MethodSmart, domain.StatusDone, 3, time.Second)
	c.UpdateFinished(domain.MethodSmart, domain.StatusDone, 0, time.Second)
	c.UpdateFinished(domain.MethodAIFallback, domain.StatusFailed, 0, 2*time.Second)

	assert.InDelta(t, 2, counterValue(t, reg, "sitefeed_updates_total", map[string]string{"method": "smart", "status": "done"}), 0.001)
	assert.InDelta(t, 1, counterValue(t, reg, "sitefeed_updates_total",
		map[string]string{"method": "ai_fallback", "status": "failed"}), 0.001)
	assert.InDelta(t, 3, counterValue(t, reg, "sitefeed_items_added_total", map[string]string{"method": "smart"}), 0.001)
	assert.InDelta(t, -1, counterValue(t, reg, "sitefeed_items_added_total", map[string]string{"method": "ai_fallback"}), 0.001)
}

func TestCollector_Fetcher(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := NewCollector(reg)

	calls := 0
	f := c.Fetcher(fetcherFunc(func(_ context.Context, rawURL string, _ *domain.SessionCookieSet, _ fetch.Options) (*fetch.Result, error) {
		calls++
		switch calls {
		case 1:
			return &fetch.Result{URL: rawURL, Strategy: "minimal"}, nil
		case 2:
			return &fetch.Result{URL: rawURL, Strategy: "minimal", FromCache: true}, nil
		default:
			return nil, &fetch.FailureError{URL: rawURL, Err: errors.New("blocked")}
		}
	}))

	for i := 0; i < 3; i++ {
		_, _ = f.Fetch(context.Background(), "https://example.com", nil, fetch.Options{})
	}
	assert.InDelta(t, 1, counterValue(t, reg, "sitefeed_fetch_total", map[string]string{"strategy": "minimal"}), 0.001)
	assert.InDelta(t, 1, counterValue(t, reg, "sitefeed_fetch_total", map[string]string{"strategy": "cache"}), 0.001)
	assert.InDelta(t, 1, counterValue(t, reg, "sitefeed_fetch_fail_total", nil), 0.001)
}

func TestCollector_Cache(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := NewCollector(reg)
	ch := c.Cache(cache.NewMemory())
	ctx := context.Background()

	_, ok := ch.Get(ctx, "k")
	assert.False(t, ok)
	require.NoError(t, ch.Put(ctx, "k", domain.CacheEntry{Content: []byte("body")}, time.Minute))
	entry, ok := ch.Get(ctx, "k")
	require.True(t, ok)
	assert.Equal(t, "body", string(entry.Content))

	assert.InDelta(t, 1, counterValue(t, reg, "sitefeed_cache_lookups_total", map[string]string{"result": "hit"}), 0.001)
	assert.InDelta(t, 1, counterValue(t, reg, "sitefeed_cache_lookups_total", map[string]string{"result": "miss"}), 0.001)
}

func TestHandler(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := NewCollector(reg)
	c.UpdateFinished(domain.MethodAI, domain.StatusDone, 5, time.Second)

	ts := httptest.NewServer(Handler(reg))
	defer ts.Close()

	resp, err := http.Get(ts.URL)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), `sitefeed_updates_total{method="ai",status="done"} 1`)
	assert.Contains(t, string(body), "sitefeed_update_duration_seconds")
}
