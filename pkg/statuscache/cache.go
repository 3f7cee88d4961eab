package statuscache

import (
	"sort"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// ProviderStatus is the cached availability payload for one provider.
type ProviderStatus struct {
	Available  bool      `json:"available"`
	LatencyMS  int64     `json:"latencyMs"`
	LastTested time.Time `json:"lastTested"`
	Message    string    `json:"message,omitempty"`
}

type entry struct {
	status    ProviderStatus
	cachedAt  time.Time
	expiresAt time.Time
}

// Stats is a point-in-time snapshot of cache effectiveness.
type Stats struct {
	Hits    uint64  `json:"hits"`
	Misses  uint64  `json:"misses"`
	HitRate float64 `json:"hitRate"`
	Entries int     `json:"entries"`
}

// Option configures a Cache.
type Option func(*Cache)

// WithClock injects the time source. Tests drive the cache with a fake clock.
func WithClock(now func() time.Time) Option {
	return func(c *Cache) { c.now = now }
}

// WithActivityWindow overrides how long an activity ping stays valid.
func WithActivityWindow(d time.Duration) Option {
	return func(c *Cache) { c.activityWindow = d }
}

// WithHitMissHooks attaches counters fired on every hit and miss.
func WithHitMissHooks(onHit, onMiss func()) Option {
	return func(c *Cache) {
		c.onHit = onHit
		c.onMiss = onMiss
	}
}

// Cache is a TTL cache keyed by provider id. Mutations are single-key
// upserts under one mutex; there is no read-modify-write across keys.
type Cache struct {
	mu             sync.Mutex
	entries        map[string]entry
	ttl            time.Duration
	activityWindow time.Duration
	lastActivity   time.Time
	hits           uint64
	misses         uint64
	now            func() time.Time
	onHit          func()
	onMiss         func()
	logger         zerolog.Logger
}

// New creates a cache with the given entry TTL.
func New(ttl time.Duration, logger zerolog.Logger, opts ...Option) *Cache {
	c := &Cache{
		entries:        make(map[string]entry),
		ttl:            ttl,
		activityWindow: 30 * time.Minute,
		now:            time.Now,
		logger:         logger.With().Str("component", "statuscache").Logger(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Set upserts the status for a provider, refreshing its LastTested stamp
// and its expiry.
func (c *Cache) Set(providerID string, status ProviderStatus) {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	status.LastTested = now
	c.entries[providerID] = entry{
		status:    status,
		cachedAt:  now,
		expiresAt: now.Add(c.ttl),
	}
}

// Get returns the cached status when it is still fresh. A read past expiry
// is a miss and evicts the entry.
func (c *Cache) Get(providerID string) (ProviderStatus, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[providerID]
	if !ok {
		c.missLocked()
		return ProviderStatus{}, false
	}
	if c.now().After(e.expiresAt) {
		delete(c.entries, providerID)
		c.missLocked()
		return ProviderStatus{}, false
	}

	c.hits++
	if c.onHit != nil {
		c.onHit()
	}
	return e.status, true
}

// GetStale returns the cached status even after expiry, without touching
// counters or evicting. Used as a fallback while a refresh is pending.
func (c *Cache) GetStale(providerID string) (ProviderStatus, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[providerID]
	return e.status, ok
}

// ForceRefresh marks every entry as already expired (one second in the
// past). Entries stay in the map until a read evicts them.
func (c *Cache) ForceRefresh() {
	c.mu.Lock()
	defer c.mu.Unlock()

	expired := c.now().Add(-time.Second)
	for id, e := range c.entries {
		e.expiresAt = expired
		c.entries[id] = e
	}

	c.logger.Info().Int("entries", len(c.entries)).Msg("Forced status cache refresh")
}

// ExpiredKeys returns the provider ids whose entries are past expiry,
// sorted for determinism. Entries are not evicted.
func (c *Cache) ExpiredKeys() []string {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	keys := []string{}
	for id, e := range c.entries {
		if now.After(e.expiresAt) {
			keys = append(keys, id)
		}
	}
	sort.Strings(keys)
	return keys
}

// MarkActivity records an activity ping.
func (c *Cache) MarkActivity() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.lastActivity = c.now()
}

// RecentlyActive reports whether an activity ping happened within the
// activity window.
func (c *Cache) RecentlyActive() bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.lastActivity.IsZero() {
		return false
	}
	return c.now().Sub(c.lastActivity) <= c.activityWindow
}

// Len returns the number of entries, expired ones included.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	return len(c.entries)
}

// Stats returns hit/miss counters and the rolling hit rate.
func (c *Cache) Stats() Stats {
	c.mu.Lock()
	defer c.mu.Unlock()

	s := Stats{Hits: c.hits, Misses: c.misses, Entries: len(c.entries)}
	if total := c.hits + c.misses; total > 0 {
		s.HitRate = float64(c.hits) / float64(total)
	}
	return s
}

// HitRate returns the rolling hit rate in [0,1].
func (c *Cache) HitRate() float64 {
	return c.Stats().HitRate
}

func (c *Cache) missLocked() {
	c.misses++
	if c.onMiss != nil {
		c.onMiss()
	}
}
