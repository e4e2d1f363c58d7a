// Package ratelimit throttles login attempts per client.
package ratelimit

import (
	"context"
	"time"
)

// Config allows Limit events per Window for one key.
type Config struct {
	Limit  int
	Window time.Duration
}

type RateLimiter interface {
	// Allow records one attempt for key and reports whether it is within the limit.
	Allow(ctx context.Context, key string) (bool, error)
	Reset(ctx context.Context, key string) error
}
