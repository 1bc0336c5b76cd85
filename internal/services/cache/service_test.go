package cache

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2026, 8, 25, 9, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

func TestGetPut_Roundtrip(t *testing.T) {
	clock := newFakeClock()
	svc := NewService(WithClock(clock.Now))

	_, ok := svc.Get(KeyNews)
	assert.False(t, ok, "empty cache must miss")

	svc.Put(KeyNews, []string{"headline"})

	got, ok := svc.Get(KeyNews)
	require.True(t, ok)
	assert.Equal(t, []string{"headline"}, got)
}

func TestGet_TTLBoundary(t *testing.T) {
	clock := newFakeClock()
	svc := NewService(WithClock(clock.Now))

	svc.Put(KeyRecommendations, "payload")

	// Just inside the window
	clock.Advance(DefaultTTL - time.Second)
	_, ok := svc.Get(KeyRecommendations)
	assert.True(t, ok)

	// Exactly at the TTL the entry is stale (strict inequality)
	clock.Advance(time.Second)
	_, ok = svc.Get(KeyRecommendations)
	assert.False(t, ok)
}

func TestPut_RefreshesCreation(t *testing.T) {
	clock := newFakeClock()
	svc := NewService(WithClock(clock.Now))

	svc.Put(KeySentiment, "old")
	clock.Advance(4 * time.Minute)
	svc.Put(KeySentiment, "new")
	clock.Advance(4 * time.Minute)

	got, ok := svc.Get(KeySentiment)
	require.True(t, ok, "rewrite must reset the entry age")
	assert.Equal(t, "new", got)
}

func TestCustomTTL(t *testing.T) {
	clock := newFakeClock()
	svc := NewService(WithClock(clock.Now), WithTTL(time.Minute))

	svc.Put("k", 1)
	clock.Advance(59 * time.Second)
	_, ok := svc.Get("k")
	assert.True(t, ok)

	clock.Advance(time.Second)
	_, ok = svc.Get("k")
	assert.False(t, ok)
}

func TestInvalidateAndClear(t *testing.T) {
	svc := NewService()

	svc.Put("a", 1)
	svc.Put("b", 2)

	svc.Invalidate("a")
	_, ok := svc.Get("a")
	assert.False(t, ok)
	_, ok = svc.Get("b")
	assert.True(t, ok)

	svc.Clear()
	assert.Equal(t, 0, svc.Len())
}

func TestConcurrentAccess(t *testing.T) {
	svc := NewService()

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				svc.Put(KeyNews, n)
				svc.Get(KeyNews)
			}
		}(i)
	}
	wg.Wait()

	_, ok := svc.Get(KeyNews)
	assert.True(t, ok)
}
