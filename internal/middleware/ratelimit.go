package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

// RateLimiter keeps one token bucket per client IP.
type RateLimiter struct {
	mu       sync.Mutex
	limiters map[string]*client
	rps      rate.Limit
	burst    int
	idle     time.Duration
	now      func() time.Time
}

type client struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

func NewRateLimiter(rps float64, burst int) *RateLimiter {
	return &RateLimiter{
		limiters: make(map[string]*client),
		rps:      rate.Limit(rps),
		burst:    burst,
		idle:     10 * time.Minute,
		now:      time.Now,
	}
}

func (r *RateLimiter) limiterFor(ip string) *rate.Limiter {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.now()
	cl, ok := r.limiters[ip]
	if !ok {
		r.sweep(now)
		cl = &client{limiter: rate.NewLimiter(r.rps, r.burst)}
		r.limiters[ip] = cl
	}
	cl.lastSeen = now
	return cl.limiter
}

// sweep drops buckets nobody has used for a while. Caller holds mu.
func (r *RateLimiter) sweep(now time.Time) {
	for ip, cl := range r.limiters {
		if now.Sub(cl.lastSeen) > r.idle {
			delete(r.limiters, ip)
		}
	}
}

func (r *RateLimiter) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if r.rps <= 0 {
			c.Next()
			return
		}
		if !r.limiterFor(c.ClientIP()).Allow() {
			c.Header("Retry-After", "1")
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"message": "Too many requests, please try again shortly."})
			return
		}
		c.Next()
	}
}
