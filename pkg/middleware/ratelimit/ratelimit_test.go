package ratelimit

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMiddlewareRejectsAfterBurst(t *testing.T) {
	gin.SetMode(gin.TestMode)
	limiter := New(0.001, 2, func(*gin.Context) string { return "same" }, nil)

	r := gin.New()
	r.POST("/contact", limiter.Middleware(), func(c *gin.Context) { c.Status(http.StatusAccepted) })

	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/contact", nil))
		codes = append(codes, w.Code)
	}
	assert.Equal(t, []int{http.StatusAccepted, http.StatusAccepted, http.StatusTooManyRequests}, codes)
}

func TestKeysAreIndependent(t *testing.T) {
	limiter := New(0.001, 1, nil, nil)
	assert.True(t, limiter.Allow("a"))
	assert.False(t, limiter.Allow("a"))
	assert.True(t, limiter.Allow("b"))
}

func TestEvictIdle(t *testing.T) {
	limiter := New(1, 1, nil, nil)
	now := time.Date(2025, 1, 1, 8, 0, 0, 0, time.UTC)
	limiter.now = func() time.Time { return now }

	limiter.Allow("old")
	now = now.Add(11 * time.Minute)
	limiter.Allow("fresh")
	require.Equal(t, 2, limiter.size())

	limiter.evictIdle()
	assert.Equal(t, 1, limiter.size())
}
