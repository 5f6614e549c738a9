package middleware

import (
	"fmt"
	"math"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jroosing/nextdash/internal/api/models"
	"golang.org/x/time/rate"
)

// Rate limiting is applied at two levels:
//   - Global: overall request rate of the dashboard API
//   - IP: per client IP rate
//
// Both use token buckets, which allow short bursts while enforcing an average
// rate over time. A level with rate or burst <= 0 is disabled.

// RateLimitSettings contains rate limiting configuration values.
type RateLimitSettings struct {
	CleanupSeconds float64
	MaxIPEntries   int
	GlobalQPS      float64
	GlobalBurst    int
	IPQPS          float64
	IPBurst        int
}

// RateLimiter combines a global limiter with per-client limiters.
type RateLimiter struct {
	global *rate.Limiter

	ipRate          rate.Limit
	ipBurst         int
	cleanupInterval time.Duration
	maxEntries      int

	mu          sync.Mutex
	lastCleanup time.Time
	clients     map[string]*clientLimiter
}

type clientLimiter struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// NewRateLimiter creates a RateLimiter from the provided settings.
func NewRateLimiter(s RateLimitSettings) *RateLimiter {
	cleanupInterval := time.Duration(math.Max(0.0, s.CleanupSeconds) * float64(time.Second))
	if cleanupInterval <= 0 {
		cleanupInterval = 60 * time.Second
	}
	maxEntries := s.MaxIPEntries
	if maxEntries <= 0 {
		maxEntries = 1
	}

	l := &RateLimiter{
		cleanupInterval: cleanupInterval,
		maxEntries:      maxEntries,
		lastCleanup:     time.Now(),
		clients:         map[string]*clientLimiter{},
	}
	if s.GlobalQPS > 0 && s.GlobalBurst > 0 {
		l.global = rate.NewLimiter(rate.Limit(s.GlobalQPS), s.GlobalBurst)
	}
	if s.IPQPS > 0 && s.IPBurst > 0 {
		l.ipRate = rate.Limit(s.IPQPS)
		l.ipBurst = s.IPBurst
	}
	return l
}

// Allow reports whether a request from clientIP may proceed and consumes a
// token at every enabled level.
func (l *RateLimiter) Allow(clientIP string) bool {
	if l == nil {
		return true
	}
	if l.global != nil && !l.global.Allow() {
		return false
	}
	if l.ipRate <= 0 {
		return true
	}

	now := time.Now()

	l.mu.Lock()
	defer l.mu.Unlock()

	if now.Sub(l.lastCleanup) > l.cleanupInterval {
		l.cleanupLocked(now)
	}

	cl, exists := l.clients[clientIP]
	if !exists {
		if len(l.clients) >= l.maxEntries {
			l.cleanupLocked(now)
			if len(l.clients) >= l.maxEntries {
				// Still at capacity: deny unknown clients.
				return false
			}
		}
		cl = &clientLimiter{limiter: rate.NewLimiter(l.ipRate, l.ipBurst)}
		l.clients[clientIP] = cl
	}
	cl.lastSeen = now
	return cl.limiter.AllowN(now, 1)
}

// TrackedClients returns the number of client IPs currently held.
func (l *RateLimiter) TrackedClients() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.clients)
}

// cleanupLocked drops clients idle for a full cleanup interval.
// Must be called with l.mu held.
func (l *RateLimiter) cleanupLocked(now time.Time) {
	staleBefore := now.Add(-l.cleanupInterval)
	for k, cl := range l.clients {
		if !cl.lastSeen.After(staleBefore) {
			delete(l.clients, k)
		}
	}
	l.lastCleanup = now
}

// RateLimit rejects requests over the limit with 429.
func RateLimit(l *RateLimiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		if l.Allow(c.ClientIP()) {
			c.Next()
			return
		}
		c.Header("Retry-After", "1")
		c.AbortWithStatusJSON(http.StatusTooManyRequests, models.NewError("rate limit exceeded"))
	}
}

// FormatRateLimitsLog returns a human-readable summary of rate limit configuration.
func FormatRateLimitsLog(s RateLimitSettings) string {
	fmtLimiter := func(name string, qps float64, burst int) string {
		if qps <= 0.0 || burst <= 0 {
			return name + "=disabled"
		}
		return fmt.Sprintf("%s=%gqps/%d", name, qps, burst)
	}

	return fmt.Sprintf(
		"%s %s cleanup_s=%g max_ip=%d",
		fmtLimiter("global", s.GlobalQPS, s.GlobalBurst),
		fmtLimiter("ip", s.IPQPS, s.IPBurst),
		s.CleanupSeconds,
		s.MaxIPEntries,
	)
}
