package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

const (
	// entries idle this long are dropped on the next sweep
	limiterIdleTTL = 10 * time.Minute
	// minimum spacing between sweeps
	limiterSweepEvery = time.Minute
)

type limiterEntry struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// ipRateLimiter keeps one token bucket per client IP. Idle entries are
// swept so the map stays bounded under address churn.
type ipRateLimiter struct {
	mu        sync.Mutex
	limiters  map[string]*limiterEntry
	limit     rate.Limit
	burst     int
	lastSweep time.Time
}

func (l *ipRateLimiter) get(ip string) *rate.Limiter {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := time.Now()
	l.sweep(now)

	entry, ok := l.limiters[ip]
	if !ok {
		entry = &limiterEntry{limiter: rate.NewLimiter(l.limit, l.burst)}
		l.limiters[ip] = entry
	}
	entry.lastSeen = now
	return entry.limiter
}

// sweep drops entries not seen within limiterIdleTTL. Caller holds l.mu.
func (l *ipRateLimiter) sweep(now time.Time) {
	if now.Sub(l.lastSweep) < limiterSweepEvery {
		return
	}
	l.lastSweep = now

	for ip, entry := range l.limiters {
		if now.Sub(entry.lastSeen) > limiterIdleTTL {
			delete(l.limiters, ip)
		}
	}
}

// RateLimit throttles requests per client IP. Applied to the credential
// endpoints to slow down brute-force attempts.
func RateLimit(perSec float64, burst int) gin.HandlerFunc {
	limiters := &ipRateLimiter{
		limiters: make(map[string]*limiterEntry),
		limit:    rate.Limit(perSec),
		burst:    burst,
	}

	return func(c *gin.Context) {
		if !limiters.get(c.ClientIP()).Allow() {
			c.JSON(http.StatusTooManyRequests, gin.H{"error": "too many requests"})
			c.Abort()
			return
		}
		c.Next()
	}
}
