package middleware

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	gocache "github.com/patrickmn/go-cache"
	"golang.org/x/time/rate"

	"github.com/charlesng35/assetdesk/pkg/errors"
	"github.com/charlesng35/assetdesk/pkg/response"
)

var errTooManyRequests = errors.New("RATE_LIMITED", "Too many requests", http.StatusTooManyRequests)

// RateLimit applies a token bucket per client IP. Idle buckets expire after idle.
func RateLimit(perSecond float64, burst int, idle time.Duration) gin.HandlerFunc {
	if perSecond <= 0 || burst <= 0 {
		return func(c *gin.Context) { c.Next() }
	}
	if idle <= 0 {
		idle = 5 * time.Minute
	}
	buckets := gocache.New(idle, idle)

	return func(c *gin.Context) {
		ip := c.ClientIP()
		if ip == "" {
			ip = "unknown"
		}

		var lim *rate.Limiter
		if v, ok := buckets.Get(ip); ok {
			lim = v.(*rate.Limiter)
		} else {
			lim = rate.NewLimiter(rate.Limit(perSecond), burst)
			if err := buckets.Add(ip, lim, gocache.DefaultExpiration); err != nil {
				if v, ok := buckets.Get(ip); ok {
					lim = v.(*rate.Limiter)
				}
			}
		}
		// Sliding expiry so active clients keep their bucket.
		buckets.SetDefault(ip, lim)

		if !lim.Allow() {
			c.Header("Retry-After", "1")
			response.Error(c, errTooManyRequests)
			c.Abort()
			return
		}
		c.Next()
	}
}
