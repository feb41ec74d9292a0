// Package credentials rotates provider api keys, taking failing keys out of rotation for a cool-down period.
package credentials

import (
	"context"
	"fmt"
	"log"
	"sort"
	"sync"
	"time"

	"github.com/umputun/sitefeed/pkg/domain"
)

//go:generate moq -out mocks/key_store.go -pkg mocks -skip-ensure -fmt goimports . KeyStore

// KeyStore provides stored api keys for a provider
type KeyStore interface {
	Keys(ctx context.Context, provider string) ([]domain.APIKeyRecord, error)
}

// HealthStore is optionally implemented by KeyStore to persist key health
type HealthStore interface {
	SaveHealth(ctx context.Context, rec domain.APIKeyRecord) error
}

// Decrypter opens encrypted secrets
type Decrypter interface {
	Decrypt(data []byte) ([]byte, error)
}

// Params for the pool
type Params struct {
	FailureThreshold int           // consecutive failures disabling a key
	Cooldown         time.Duration // how long a disabled key stays out of rotation
}

// Pool hands out api keys round-robin per provider, skipping disabled ones
type Pool struct {
	store     KeyStore
	decrypter Decrypter
	params    Params
	now       func() time.Time

	mu      sync.Mutex
	cursors map[string]int
	health  map[int64]*keyHealth
}

type keyHealth struct {
	streak        int
	lastUsed      time.Time
	disabledUntil time.Time
}

// NewPool makes a pool, zero params replaced by defaults (3 failures, 15 minutes)
func NewPool(store KeyStore, decrypter Decrypter, params Params) *Pool {
	if params.FailureThreshold <= 0 {
		params.FailureThreshold = 3
	}
	if params.Cooldown <= 0 {
		params.Cooldown = 15 * time.Minute
	}
	return &Pool{
		store:     store,
		decrypter: decrypter,
		params:    params,
		now:       time.Now,
		cursors:   map[string]int{},
		health:    map[int64]*keyHealth{},
	}
}

// Acquire returns the next healthy credential for provider.
// Returns domain.ErrExhaustedCredentials if there are no keys or all of them are disabled.
func (p *Pool) Acquire(ctx context.Context, provider string) (*Credential, error) {
	recs, err := p.store.Keys(ctx, provider)
	if err != nil {
		return nil, fmt.Errorf("load keys for %s: %w", provider, err)
	}
	if len(recs) == 0 {
		return nil, fmt.Errorf("no keys for %s: %w", provider, domain.ErrExhaustedCredentials)
	}
	sort.Slice(recs, func(i, j int) bool { return recs[i].Index < recs[j].Index })

	p.mu.Lock()
	defer p.mu.Unlock()
	now := p.now()
	start := p.cursors[provider] % len(recs)
	for i := 0; i < len(recs); i++ {
		pos := (start + i) % len(recs)
		rec := recs[pos]
		h := p.healthFor(rec)
		if now.Before(h.disabledUntil) {
			continue
		}
		p.cursors[provider] = pos + 1
		h.lastUsed = now
		return &Credential{id: rec.ID, provider: rec.Provider, index: rec.Index, encrypted: rec.Encrypted, decrypter: p.decrypter}, nil
	}
	return nil, fmt.Errorf("all %d keys for %s disabled: %w", len(recs), provider, domain.ErrExhaustedCredentials)
}

// ReportOutcome updates key health. A failure streak reaching the threshold disables the key
// for the cool-down period, success resets the streak.
func (p *Pool) ReportOutcome(ctx context.Context, cred *Credential, success bool) {
	if cred == nil {
		return
	}
	p.mu.Lock()
	h, ok := p.health[cred.id]
	if !ok {
		h = &keyHealth{}
		p.health[cred.id] = h
	}
	if success {
		h.streak = 0
		h.disabledUntil = time.Time{}
	} else {
		h.streak++
		if h.streak >= p.params.FailureThreshold {
			h.disabledUntil = p.now().Add(p.params.Cooldown)
			log.Printf("[WARN] key %s disabled until %s after %d failures", cred, h.disabledUntil.Format(time.RFC3339), h.streak)
		}
	}
	rec := domain.APIKeyRecord{ID: cred.id, Provider: cred.provider, Index: cred.index, FailureStreak: h.streak}
	if !h.lastUsed.IsZero() {
		lu := h.lastUsed
		rec.LastUsed = &lu
	}
	if !h.disabledUntil.IsZero() {
		du := h.disabledUntil
		rec.DisabledUntil = &du
	}
	p.mu.Unlock()

	if hs, ok := p.store.(HealthStore); ok {
		if err := hs.SaveHealth(ctx, rec); err != nil {
			log.Printf("[WARN] can't save health of key %s: %v", cred, err)
		}
	}
}

// healthFor returns health state for the record, initializing it from stored values. Must be called under lock.
func (p *Pool) healthFor(rec domain.APIKeyRecord) *keyHealth {
	if h, ok := p.health[rec.ID]; ok {
		return h
	}
	h := &keyHealth{streak: rec.FailureStreak}
	if rec.DisabledUntil != nil {
		h.disabledUntil = *rec.DisabledUntil
	}
	if rec.LastUsed != nil {
		h.lastUsed = *rec.LastUsed
	}
	p.health[rec.ID] = h
	return h
}

// Credential is a leased api key. It prints as provider#index and never exposes the secret in logs.
type Credential struct {
	id        int64
	provider  string
	index     int
	encrypted []byte
	decrypter Decrypter
}

// Provider of the key
func (c *Credential) Provider() string { return c.provider }

// Index is the rotation index of the key within its provider
func (c *Credential) Index() int { return c.index }

// Secret decrypts the key
func (c *Credential) Secret() (string, error) {
	if c.decrypter == nil {
		return string(c.encrypted), nil
	}
	plain, err := c.decrypter.Decrypt(c.encrypted)
	if err != nil {
		return "", fmt.Errorf("decrypt key %s: %w", c, err)
	}
	return string(plain), nil
}

// String returns redacted representation
func (c *Credential) String() string {
	return fmt.Sprintf("%s#%d", c.provider, c.index)
}
