package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"golang.org/x/time/rate"
)

func rateLimitedRouter(perSec float64, burst int) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/login", RateLimit(perSec, burst), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	return r
}

func TestRateLimit_AllowsWithinBurst(t *testing.T) {
	router := rateLimitedRouter(1, 3)

	for i := 0; i < 3; i++ {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/login", nil)
		router.ServeHTTP(w, req)
		assert.Equal(t, http.StatusOK, w.Code)
	}
}

func TestRateLimit_RejectsOverBurst(t *testing.T) {
	router := rateLimitedRouter(0.001, 1)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/login", nil)
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)

	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodPost, "/login", nil)
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Contains(t, w.Body.String(), "too many requests")
}

func TestRateLimit_BucketsPerIP(t *testing.T) {
	router := rateLimitedRouter(0.001, 1)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/login", nil)
	req.RemoteAddr = "10.0.0.1:1234"
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)

	// Same IP is throttled, a different IP still has its own budget.
	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodPost, "/login", nil)
	req.RemoteAddr = "10.0.0.1:1234"
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusTooManyRequests, w.Code)

	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodPost, "/login", nil)
	req.RemoteAddr = "10.0.0.2:1234"
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRateLimit_EvictsIdleEntries(t *testing.T) {
	l := &ipRateLimiter{
		limiters: make(map[string]*limiterEntry),
		limit:    rate.Limit(1),
		burst:    1,
	}

	now := time.Now()
	l.limiters["10.0.0.1"] = &limiterEntry{
		limiter:  rate.NewLimiter(l.limit, l.burst),
		lastSeen: now.Add(-2 * limiterIdleTTL),
	}
	l.limiters["10.0.0.2"] = &limiterEntry{
		limiter:  rate.NewLimiter(l.limit, l.burst),
		lastSeen: now,
	}

	l.get("10.0.0.3")

	assert.NotContains(t, l.limiters, "10.0.0.1", "idle entry survived the sweep")
	assert.Contains(t, l.limiters, "10.0.0.2")
	assert.Contains(t, l.limiters, "10.0.0.3")
}

func TestRateLimit_SweepKeepsActiveBucketState(t *testing.T) {
	l := &ipRateLimiter{
		limiters: make(map[string]*limiterEntry),
		limit:    rate.Limit(0.001),
		burst:    1,
	}

	assert.True(t, l.get("10.0.0.1").Allow())
	// the second lookup must return the same drained bucket
	assert.False(t, l.get("10.0.0.1").Allow())
}
