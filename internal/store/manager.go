package store

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog/log"
)

// DefaultTTL is how long a cached analysis is served before it is recomputed
const DefaultTTL = 14 * 24 * time.Hour

// Manager applies freshness rules on top of a Backend. Cache failures are
// logged and never returned; a Manager without a backend always misses.
type Manager struct {
	backend Backend
	ttl     time.Duration
	now     func() time.Time
}

// ManagerOption configures the Manager
type ManagerOption func(*Manager)

// WithTTL sets the freshness window
func WithTTL(ttl time.Duration) ManagerOption {
	return func(m *Manager) {
		if ttl > 0 {
			m.ttl = ttl
		}
	}
}

// NewManager creates a cache manager over backend, which may be nil
func NewManager(backend Backend, opts ...ManagerOption) *Manager {
	m := &Manager{
		backend: backend,
		ttl:     DefaultTTL,
		now:     time.Now,
	}

	for _, opt := range opts {
		opt(m)
	}

	return m
}

// Enabled reports whether a backend is configured
func (m *Manager) Enabled() bool {
	return m != nil && m.backend != nil
}

// TTL returns the freshness window
func (m *Manager) TTL() time.Duration {
	return m.ttl
}

// IsFresh reports whether the entry was written less than ttl before now
func IsFresh(entry Entry, now time.Time, ttl time.Duration) bool {
	return now.Sub(entry.UpdatedAt) < ttl
}

// Lookup returns the entry for domain if one exists, fresh or not. Read
// failures are logged and reported as a miss.
func (m *Manager) Lookup(ctx context.Context, domain string) (Entry, bool) {
	if !m.Enabled() {
		return Entry{}, false
	}

	entry, err := m.backend.Get(ctx, domain)

	switch {
	case err == nil:
		return entry, true
	case errors.Is(err, ErrNotFound):
		return Entry{}, false
	default:
		log.Warn().Err(err).Str("domain", domain).Msg("cache read failed, treating as miss")
		return Entry{}, false
	}
}

// LookupFresh returns the entry for domain only when it is within the TTL
func (m *Manager) LookupFresh(ctx context.Context, domain string) (Entry, bool) {
	entry, ok := m.Lookup(ctx, domain)
	if !ok || !IsFresh(entry, m.now(), m.ttl) {
		return Entry{}, false
	}

	return entry, true
}

// Persist upserts the entry stamped with the current time. Failures are logged
// and counted; the last writer wins.
func (m *Manager) Persist(ctx context.Context, entry Entry) {
	if !m.Enabled() {
		return
	}

	entry.UpdatedAt = m.now().UTC()

	if err := m.backend.Upsert(ctx, entry); err != nil {
		writeFailures.Inc()
		log.Error().Err(err).Str("domain", entry.Domain).Msg("cache write failed")
	}
}

// Ping checks the backend; a disabled cache is always healthy
func (m *Manager) Ping(ctx context.Context) error {
	if !m.Enabled() {
		return nil
	}

	return m.backend.Ping(ctx)
}

// Close closes the backend
func (m *Manager) Close() error {
	if !m.Enabled() {
		return nil
	}

	return m.backend.Close()
}
