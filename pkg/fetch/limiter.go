package fetch

import (
	"context"
	"strings"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// hostLimiter keeps requests to the same host apart
type hostLimiter struct {
	interval time.Duration
	mu       sync.Mutex
	limiters map[string]*rate.Limiter
}

func newHostLimiter(interval time.Duration) *hostLimiter {
	return &hostLimiter{interval: interval, limiters: map[string]*rate.Limiter{}}
}

// Wait blocks until a request to host is allowed, no-op for zero interval
func (h *hostLimiter) Wait(ctx context.Context, host string) error {
	if h == nil || h.interval <= 0 || host == "" {
		return nil
	}
	host = strings.ToLower(host)
	h.mu.Lock()
	lim, ok := h.limiters[host]
	if !ok {
		lim = rate.NewLimiter(rate.Every(h.interval), 1)
		h.limiters[host] = lim
	}
	h.mu.Unlock()
	return lim.Wait(ctx)
}
