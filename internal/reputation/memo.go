package reputation

import (
	"sync"
	"time"
)

// DefaultMemoTTL is how long a reputation record is reused
const DefaultMemoTTL = time.Hour

// Memo is a concurrency-safe TTL cache of reputation records keyed by domain
type Memo struct {
	// mu guards concurrent access to the cache data
	mu sync.RWMutex
	// ttl is the time-to-live for cached records
	ttl time.Duration
	// now returns the current time
	now func() time.Time
	// data maps domains to their cached records
	data map[string]memoEntry
}

// memoEntry holds a cached record and its expiry
type memoEntry struct {
	product *Product
	expires time.Time
}

// NewMemo creates a memo cache with the given TTL, falling back to DefaultMemoTTL if non-positive
func NewMemo(ttl time.Duration) *Memo {
	if ttl <= 0 {
		ttl = DefaultMemoTTL
	}

	return &Memo{
		ttl:  ttl,
		now:  time.Now,
		data: make(map[string]memoEntry),
	}
}

// Get returns the cached record for domain when present and not expired
func (m *Memo) Get(domain string) (*Product, bool) {
	m.mu.RLock()
	entry, ok := m.data[domain]
	m.mu.RUnlock()

	if !ok || !entry.expires.After(m.now()) {
		return nil, false
	}

	return entry.product, true
}

// Set stores the record for domain; the last writer wins
func (m *Memo) Set(domain string, product *Product) {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()
	for key, entry := range m.data {
		if !entry.expires.After(now) {
			delete(m.data, key)
		}
	}

	m.data[domain] = memoEntry{
		product: product,
		expires: now.Add(m.ttl),
	}
}

// Len returns the number of entries held, including expired ones not yet evicted
func (m *Memo) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return len(m.data)
}
