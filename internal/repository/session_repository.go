package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const (
	revokedTokenPrefix = "bcsi:auth:revoked:"
	failedLoginPrefix  = "bcsi:auth:failed:"
)

// SessionRepository keeps short-lived auth state in Redis: revoked token ids and
// failed login counters. With a nil client every call is a no-op.
type SessionRepository struct {
	client *redis.Client
	logger *zap.Logger
}

// NewSessionRepository constructs a session repository.
func NewSessionRepository(client *redis.Client, logger *zap.Logger) *SessionRepository {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SessionRepository{client: client, logger: logger}
}

// Enabled reports whether a Redis client backs the repository.
func (r *SessionRepository) Enabled() bool {
	return r.client != nil
}

// RevokeToken marks a token id as revoked until ttl elapses.
func (r *SessionRepository) RevokeToken(ctx context.Context, tokenID string, ttl time.Duration) error {
	if r.client == nil || tokenID == "" || ttl <= 0 {
		return nil
	}
	if err := r.client.Set(ctx, revokedTokenPrefix+tokenID, "1", ttl).Err(); err != nil {
		return fmt.Errorf("redis revoke token %s: %w", tokenID, err)
	}
	return nil
}

// IsRevoked reports whether the token id was revoked.
func (r *SessionRepository) IsRevoked(ctx context.Context, tokenID string) (bool, error) {
	if r.client == nil || tokenID == "" {
		return false, nil
	}
	n, err := r.client.Exists(ctx, revokedTokenPrefix+tokenID).Result()
	if err != nil {
		return false, fmt.Errorf("redis check revoked %s: %w", tokenID, err)
	}
	return n > 0, nil
}

// RecordFailedLogin increments the failure counter for key, starting the window on
// the first failure, and returns the new count.
func (r *SessionRepository) RecordFailedLogin(ctx context.Context, key string, window time.Duration) (int64, error) {
	if r.client == nil {
		return 0, nil
	}
	redisKey := failedLoginPrefix + key
	pipe := r.client.TxPipeline()
	incr := pipe.Incr(ctx, redisKey)
	pipe.ExpireNX(ctx, redisKey, window)
	if _, err := pipe.Exec(ctx); err != nil {
		return 0, fmt.Errorf("redis record failed login: %w", err)
	}
	return incr.Val(), nil
}

// FailedLogins returns the current failure count for key.
func (r *SessionRepository) FailedLogins(ctx context.Context, key string) (int64, error) {
	if r.client == nil {
		return 0, nil
	}
	n, err := r.client.Get(ctx, failedLoginPrefix+key).Int64()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return 0, nil
		}
		return 0, fmt.Errorf("redis get failed logins: %w", err)
	}
	return n, nil
}

// ResetFailedLogins clears the counter after a successful login.
func (r *SessionRepository) ResetFailedLogins(ctx context.Context, key string) error {
	if r.client == nil {
		return nil
	}
	if err := r.client.Del(ctx, failedLoginPrefix+key).Err(); err != nil {
		return fmt.Errorf("redis reset failed logins: %w", err)
	}
	return nil
}

// PingContext checks connectivity for readiness probes.
func (r *SessionRepository) PingContext(ctx context.Context) error {
	if r.client == nil {
		return nil
	}
	return r.client.Ping(ctx).Err()
}

// Close releases the underlying Redis connection if present.
func (r *SessionRepository) Close() error {
	if r.client == nil {
		return nil
	}
	return r.client.Close()
}
