// Package cache provides the in-memory TTL store for pipeline results.
// A miss obligates the caller to recompute synchronously and Put the
// fresh value; concurrent recomputes are tolerated, last write wins.
package cache

import (
	"sync"
	"time"

	"github.com/ternarybob/arbor"
)

// DefaultTTL is the entry time-to-live applied to every key.
const DefaultTTL = 5 * time.Minute

// Well-known cache keys for the pipeline payloads.
const (
	KeyNews            = "news"
	KeySentiment       = "sentiment"
	KeyRecommendations = "recommendations"
)

type entry struct {
	value   interface{}
	created time.Time
}

// Service is a mutex-guarded TTL cache. The clock is injected so tests
// control expiry.
type Service struct {
	mu      sync.Mutex
	entries map[string]entry
	ttl     time.Duration
	now     func() time.Time
	logger  arbor.ILogger
}

// Option configures the cache service.
type Option func(*Service)

// WithTTL overrides the entry time-to-live.
func WithTTL(ttl time.Duration) Option {
	return func(s *Service) {
		if ttl > 0 {
			s.ttl = ttl
		}
	}
}

// WithClock sets the time source.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

// WithLogger sets a logger.
func WithLogger(logger arbor.ILogger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

// NewService creates a cache with the default 5-minute TTL.
func NewService(opts ...Option) *Service {
	s := &Service{
		entries: make(map[string]entry),
		ttl:     DefaultTTL,
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Get returns the cached value for key. A key that is absent or whose
// entry has aged past the TTL misses; freshness is strict:
// now - created must be less than the TTL.
func (s *Service) Get(key string) (interface{}, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.entries[key]
	if !ok {
		return nil, false
	}
	if s.now().Sub(e.created) >= s.ttl {
		delete(s.entries, key)
		if s.logger != nil {
			s.logger.Debug().Str("key", key).Msg("Cache entry expired")
		}
		return nil, false
	}
	return e.value, true
}

// Put stores value under key with a fresh creation timestamp,
// replacing any existing entry.
func (s *Service) Put(key string, value interface{}) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.entries[key] = entry{value: value, created: s.now()}
}

// Invalidate drops a single key.
func (s *Service) Invalidate(key string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.entries, key)
}

// Clear drops every entry.
func (s *Service) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.entries = make(map[string]entry)
}

// Len returns the number of stored entries, expired or not.
func (s *Service) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return len(s.entries)
}
