package middleware

import (
	"sync"
	"time"

	"mdt/pkg/apperr"
	"mdt/pkg/response"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

// RateLimiter keeps one token bucket per client IP.
type RateLimiter struct {
	mu       sync.Mutex
	limiters map[string]*visitor
	requests int
	window   time.Duration
}

type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// NewRateLimiter allows requests per window for each IP, in bursts of up to
// requests.
func NewRateLimiter(requests int, window time.Duration) *RateLimiter {
	if requests <= 0 {
		requests = 1
	}
	return &RateLimiter{
		limiters: make(map[string]*visitor),
		requests: requests,
		window:   window,
	}
}

func (rl *RateLimiter) GetLimiter(ip string) *rate.Limiter {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	v, ok := rl.limiters[ip]
	if !ok {
		perSecond := float64(rl.requests) / rl.window.Seconds()
		v = &visitor{limiter: rate.NewLimiter(rate.Limit(perSecond), rl.requests)}
		rl.limiters[ip] = v
	}
	v.lastSeen = time.Now()
	return v.limiter
}

// Cleanup forgets IPs idle for longer than idle.
func (rl *RateLimiter) Cleanup(idle time.Duration) {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	cutoff := time.Now().Add(-idle)
	for ip, v := range rl.limiters {
		if v.lastSeen.Before(cutoff) {
			delete(rl.limiters, ip)
		}
	}
}

func (rl *RateLimiter) Middleware() gin.HandlerFunc {
	return func(context *gin.Context) {
		if !rl.GetLimiter(context.ClientIP()).Allow() {
			response.Fail(context, apperr.ErrRateLimited)
			context.Abort()
			return
		}
		context.Next()
	}
}
