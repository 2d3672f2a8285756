package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/tidyhome/homeservices-api/utils"
	"golang.org/x/time/rate"
)

// RateLimiter keeps one token bucket per caller. Authenticated callers are keyed by
// user id, anonymous ones by client IP.
type RateLimiter struct {
	limit   rate.Limit
	burst   int
	idleTTL time.Duration

	mu       sync.Mutex
	visitors map[string]*visitor
}

type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// NewRateLimiter allows burst requests at once, refilling one every interval
func NewRateLimiter(interval time.Duration, burst int) *RateLimiter {
	return &RateLimiter{
		limit:    rate.Every(interval),
		burst:    burst,
		idleTTL:  10 * time.Minute,
		visitors: make(map[string]*visitor),
	}
}

// Allow reports whether key may make a request now
func (rl *RateLimiter) Allow(key string) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := time.Now()
	v, ok := rl.visitors[key]
	if !ok {
		rl.evict(now)
		v = &visitor{limiter: rate.NewLimiter(rl.limit, rl.burst)}
		rl.visitors[key] = v
	}
	v.lastSeen = now
	return v.limiter.AllowN(now, 1)
}

// evict drops buckets idle longer than idleTTL; caller holds mu
func (rl *RateLimiter) evict(now time.Time) {
	for k, v := range rl.visitors {
		if now.Sub(v.lastSeen) > rl.idleTTL {
			delete(rl.visitors, k)
		}
	}
}

// RateLimit rejects callers that exceed their bucket with 429
func (rl *RateLimiter) RateLimit() gin.HandlerFunc {
	return func(c *gin.Context) {
		key := "ip:" + c.ClientIP()
		if userID, err := GetUserID(c); err == nil {
			key = "user:" + userID
		}

		if !rl.Allow(key) {
			utils.AbortWithError(c, http.StatusTooManyRequests, "RATE_LIMITED", "Too many requests, please wait a moment and try again")
			return
		}
		c.Next()
	}
}
