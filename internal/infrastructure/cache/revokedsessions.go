// Package cache holds short-lived session state shared by the HTTP layer.
package cache

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/sismaterial/helpdesk/internal/shared/biztime"
)

// RevokedSessions remembers logged-out session ids until their tokens expire.
type RevokedSessions interface {
	Revoke(ctx context.Context, sessionID string, expiresAt time.Time) error
	IsRevoked(ctx context.Context, sessionID string) (bool, error)
}

// RedisRevokedSessions shares revocations across server instances.
type RedisRevokedSessions struct {
	client *redis.Client
	prefix string
}

func NewRedisRevokedSessions(client *redis.Client, prefix string) *RedisRevokedSessions {
	return &RedisRevokedSessions{
		client: client,
		prefix: prefix,
	}
}

func (s *RedisRevokedSessions) Revoke(ctx context.Context, sessionID string, expiresAt time.Time) error {
	if sessionID == "" {
		return errors.New("session id cannot be empty")
	}
	ttl := time.Until(expiresAt)
	if ttl <= 0 {
		return nil
	}
	if err := s.client.Set(ctx, s.buildKey(sessionID), 1, ttl).Err(); err != nil {
		return fmt.Errorf("failed to revoke session in redis: %w", err)
	}
	return nil
}

func (s *RedisRevokedSessions) IsRevoked(ctx context.Context, sessionID string) (bool, error) {
	if sessionID == "" {
		return false, nil
	}
	n, err := s.client.Exists(ctx, s.buildKey(sessionID)).Result()
	if err != nil {
		return false, fmt.Errorf("failed to check session in redis: %w", err)
	}
	return n > 0, nil
}

func (s *RedisRevokedSessions) buildKey(sessionID string) string {
	return s.prefix + ":revoked:" + sessionID
}

// MemoryRevokedSessions is the single-process fallback when Redis is disabled.
type MemoryRevokedSessions struct {
	mu      sync.Mutex
	revoked map[string]time.Time
}

func NewMemoryRevokedSessions() *MemoryRevokedSessions {
	return &MemoryRevokedSessions{revoked: make(map[string]time.Time)}
}

func (s *MemoryRevokedSessions) Revoke(ctx context.Context, sessionID string, expiresAt time.Time) error {
	if sessionID == "" {
		return errors.New("session id cannot be empty")
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	now := biztime.NowUTC()
	for id, exp := range s.revoked {
		if !exp.After(now) {
			delete(s.revoked, id)
		}
	}
	if expiresAt.After(now) {
		s.revoked[sessionID] = expiresAt
	}
	return nil
}

func (s *MemoryRevokedSessions) IsRevoked(ctx context.Context, sessionID string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	exp, ok := s.revoked[sessionID]
	return ok && exp.After(biztime.NowUTC()), nil
}
