package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	resp "go-gin-jobboard/internal/transport/http/response"
)

const MsgTooManyRequests = "Too many requests, please try again later"

// RateLimit 全局令牌桶限速
func RateLimit(rps rate.Limit, burst int) gin.HandlerFunc {
	lim := rate.NewLimiter(rps, burst)
	return func(c *gin.Context) {
		if lim.Allow() {
			c.Next()
			return
		}
		resp.Fail(c, http.StatusTooManyRequests, MsgTooManyRequests)
	}
}

type ipBucket struct {
	lim  *rate.Limiter
	seen time.Time
}

// RateLimitPerIP 每 IP 限速（匿名接口用），空闲桶定期清理
func RateLimitPerIP(rps rate.Limit, burst int) gin.HandlerFunc {
	const (
		idle     = 10 * time.Minute
		sweepMin = 1024
	)
	var mu sync.Mutex
	buckets := make(map[string]*ipBucket)

	return func(c *gin.Context) {
		ip := c.ClientIP()
		now := time.Now()

		mu.Lock()
		b, ok := buckets[ip]
		if !ok {
			if len(buckets) >= sweepMin {
				for k, v := range buckets {
					if now.Sub(v.seen) > idle {
						delete(buckets, k)
					}
				}
			}
			b = &ipBucket{lim: rate.NewLimiter(rps, burst)}
			buckets[ip] = b
		}
		b.seen = now
		allowed := b.lim.Allow()
		mu.Unlock()

		if allowed {
			c.Next()
			return
		}
		resp.Fail(c, http.StatusTooManyRequests, MsgTooManyRequests)
	}
}
