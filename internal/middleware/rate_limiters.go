package middleware

import (
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

// limiterInfo is a struct that holds a rate limiter and the last time it was seen.
type limiterInfo struct {
	limiter  *rate.Limiter
	lastSeen atomic.Int64 // unix nanoseconds
}

func (l *limiterInfo) touch(now time.Time) {
	l.lastSeen.Store(now.UnixNano())
}

func (l *limiterInfo) idle(now time.Time) time.Duration {
	return now.Sub(time.Unix(0, l.lastSeen.Load()))
}

// RateLimitByIP applies rate limiting to requests per IP address. rps <= 0
// disables limiting. Idle limiters are dropped every cleanupInterval once
// unseen for expiration.
func RateLimitByIP(rps int, cleanupInterval time.Duration, expiration time.Duration) gin.HandlerFunc {
	if rps <= 0 {
		return func(c *gin.Context) { c.Next() }
	}

	var limiters sync.Map

	// Cleanup goroutine
	go func() {
		ticker := time.NewTicker(cleanupInterval)
		defer ticker.Stop()
		for now := range ticker.C {
			limiters.Range(func(key, value interface{}) bool {
				if value.(*limiterInfo).idle(now) > expiration {
					limiters.Delete(key)
				}
				return true
			})
		}
	}()

	return func(c *gin.Context) {
		ip := c.ClientIP()
		now := time.Now()

		// Use LoadOrStore to ensure thread safety
		fresh := &limiterInfo{limiter: rate.NewLimiter(rate.Limit(rps), rps)}
		fresh.touch(now)
		actual, _ := limiters.LoadOrStore(ip, fresh)

		info := actual.(*limiterInfo)
		info.touch(now)

		if !info.limiter.Allow() {
			// Too many requests
			c.JSON(http.StatusTooManyRequests, gin.H{"error": "Too many requests"})
			c.Abort()
			return
		}

		c.Next()
	}
}
