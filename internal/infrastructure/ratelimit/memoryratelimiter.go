package ratelimit

import (
	"context"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// idleAfter drops buckets for clients not seen for this long.
const idleAfter = 30 * time.Minute

type bucket struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// MemoryRateLimiter keeps a token bucket per key in process. It is used when
// Redis is disabled; counts are not shared between instances.
type MemoryRateLimiter struct {
	config  Config
	mu      sync.Mutex
	buckets map[string]*bucket
	now     func() time.Time
}

func NewMemoryRateLimiter(config Config) *MemoryRateLimiter {
	return &MemoryRateLimiter{
		config:  config,
		buckets: make(map[string]*bucket),
		now:     time.Now,
	}
}

func (l *MemoryRateLimiter) Allow(ctx context.Context, key string) (bool, error) {
	if l.config.Limit <= 0 || l.config.Window <= 0 {
		return true, nil
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	l.evict(now)

	b, ok := l.buckets[key]
	if !ok {
		every := rate.Every(l.config.Window / time.Duration(l.config.Limit))
		b = &bucket{limiter: rate.NewLimiter(every, l.config.Limit)}
		l.buckets[key] = b
	}
	b.lastSeen = now

	return b.limiter.AllowN(now, 1), nil
}

func (l *MemoryRateLimiter) Reset(ctx context.Context, key string) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	delete(l.buckets, key)
	return nil
}

func (l *MemoryRateLimiter) evict(now time.Time) {
	for key, b := range l.buckets {
		if now.Sub(b.lastSeen) > idleAfter {
			delete(l.buckets, key)
		}
	}
}
