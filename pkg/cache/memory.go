// Package cache provides page content cache keyed by normalized url and session fingerprint.
// Expiration is lazy, stale entries are dropped on read.
package cache

import (
	"context"
	"sync"
	"time"

	"github.com/umputun/sitefeed/pkg/domain"
)

// Memory is an in-process cache, safe for concurrent use
type Memory struct {
	mu      sync.RWMutex
	entries map[string]domain.CacheEntry
	now     func() time.Time
}

// MemoryOption customizes Memory
type MemoryOption func(m *Memory)

// WithClock sets time source, used in tests
func WithClock(now func() time.Time) MemoryOption {
	return func(m *Memory) { m.now = now }
}

// NewMemory makes empty memory cache
func NewMemory(opts ...MemoryOption) *Memory {
	res := &Memory{entries: map[string]domain.CacheEntry{}, now: time.Now}
	for _, opt := range opts {
		opt(res)
	}
	return res
}

// Get returns unexpired entry for the key
func (m *Memory) Get(_ context.Context, key string) (*domain.CacheEntry, bool) {
	m.mu.RLock()
	entry, ok := m.entries[key]
	m.mu.RUnlock()
	if !ok {
		return nil, false
	}
	if entry.Expired(m.now()) {
		m.mu.Lock()
		// recheck, entry could be replaced by a fresh one while lock was released
		if cur, ok := m.entries[key]; ok && cur.Expired(m.now()) {
			delete(m.entries, key)
		}
		m.mu.Unlock()
		return nil, false
	}
	return &entry, true
}

// Put stores entry under the key with the given ttl. Zero ttl stores already expired entry,
// used for forced refresh.
func (m *Memory) Put(_ context.Context, key string, entry domain.CacheEntry, ttl time.Duration) error {
	entry.Key = key
	entry.TTL = ttl
	if entry.FetchedAt.IsZero() {
		entry.FetchedAt = m.now()
	}
	if len(entry.Content) > 0 {
		entry.Content = append([]byte(nil), entry.Content...)
	}
	m.mu.Lock()
	m.entries[key] = entry
	m.mu.Unlock()
	return nil
}

// Invalidate removes the key
func (m *Memory) Invalidate(_ context.Context, key string) error {
	m.mu.Lock()
	delete(m.entries, key)
	m.mu.Unlock()
	return nil
}

// Len returns number of stored entries, including stale ones not read yet
func (m *Memory) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.entries)
}
