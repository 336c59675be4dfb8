package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"golang.org/x/time/rate"
)

func TestIPLimitersBurstThenBlock(t *testing.T) {
	limiters := newIPLimiters(func() *rate.Limiter {
		return rate.NewLimiter(rate.Every(time.Hour), 2)
	})

	lim := limiters.get("10.0.0.1")
	assert.True(t, lim.Allow())
	assert.True(t, lim.Allow())
	assert.False(t, lim.Allow())

	// Other IPs carry independent buckets.
	assert.True(t, limiters.get("10.0.0.2").Allow())
}

func TestIPLimitersSameBucketPerIP(t *testing.T) {
	limiters := newIPLimiters(func() *rate.Limiter {
		return rate.NewLimiter(rate.Every(time.Hour), 1)
	})
	assert.Same(t, limiters.get("10.0.0.1"), limiters.get("10.0.0.1"))
}

func TestLoginRateLimitOnlyGuardsAuthPaths(t *testing.T) {
	handler := LoginRateLimit(okHandler())

	do := func(path string) int {
		req := httptest.NewRequest(http.MethodPost, path, nil)
		req.RemoteAddr = "192.0.2.10:51000"
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		return rec.Code
	}

	// Burst of 2 on login, then 429.
	assert.Equal(t, http.StatusOK, do("/api/auth/login"))
	assert.Equal(t, http.StatusOK, do("/api/auth/login"))
	assert.Equal(t, http.StatusTooManyRequests, do("/api/auth/login"))

	// Non-auth paths are untouched by this limiter.
	assert.Equal(t, http.StatusOK, do("/api/artisans"))
}
