package ratelimit

import (
	"context"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	appErrors "github.com/noah-isme/bcsi-site/pkg/errors"
	"github.com/noah-isme/bcsi-site/pkg/response"
)

// KeyFunc extracts the bucket key for a request.
type KeyFunc func(*gin.Context) string

// ClientIPKey buckets requests by client IP.
func ClientIPKey(c *gin.Context) string {
	return c.ClientIP()
}

type entry struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// Limiter keeps one token bucket per key.
type Limiter struct {
	mu      sync.Mutex
	entries map[string]*entry
	limit   rate.Limit
	burst   int
	keyFn   KeyFunc
	idleTTL time.Duration
	now     func() time.Time
	logger  *zap.Logger
}

// New builds a limiter allowing rps requests per second with the given burst.
func New(rps float64, burst int, keyFn KeyFunc, logger *zap.Logger) *Limiter {
	if keyFn == nil {
		keyFn = ClientIPKey
	}
	if burst <= 0 {
		burst = 1
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Limiter{
		entries: make(map[string]*entry),
		limit:   rate.Limit(rps),
		burst:   burst,
		keyFn:   keyFn,
		idleTTL: 10 * time.Minute,
		now:     time.Now,
		logger:  logger,
	}
}

// Allow reports whether a request for key may proceed.
func (l *Limiter) Allow(key string) bool {
	l.mu.Lock()
	e, ok := l.entries[key]
	if !ok {
		e = &entry{limiter: rate.NewLimiter(l.limit, l.burst)}
		l.entries[key] = e
	}
	e.lastSeen = l.now()
	l.mu.Unlock()
	return e.limiter.Allow()
}

// Middleware rejects requests over the limit with a 429 envelope.
func (l *Limiter) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		key := l.keyFn(c)
		if !l.Allow(key) {
			l.logger.Warn("rate limit exceeded",
				zap.String("key", key),
				zap.String("method", c.Request.Method),
				zap.String("path", c.FullPath()),
			)
			c.Header("Retry-After", "1")
			response.Error(c, appErrors.ErrTooManyRequests)
			return
		}
		c.Next()
	}
}

// Run evicts idle buckets every interval until ctx is done.
func (l *Limiter) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			l.evictIdle()
		}
	}
}

func (l *Limiter) evictIdle() {
	cutoff := l.now().Add(-l.idleTTL)
	l.mu.Lock()
	defer l.mu.Unlock()
	for key, e := range l.entries {
		if e.lastSeen.Before(cutoff) {
			delete(l.entries, key)
		}
	}
}

func (l *Limiter) size() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.entries)
}
