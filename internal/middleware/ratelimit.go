package middleware

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	gocache "github.com/patrickmn/go-cache"
)

const (
	rateLimitMax    = 10
	rateLimitWindow = time.Minute
)

// RateLimit caps anonymous submissions per client IP inside a fixed window.
// Counters live in process memory; a restart resets them, which is fine for
// a single-instance deployment.
func RateLimit() gin.HandlerFunc {
	counters := gocache.New(rateLimitWindow, 2*rateLimitWindow)

	return func(c *gin.Context) {
		ip := c.ClientIP()
		if ip == "" {
			c.Next()
			return
		}

		key := fmt.Sprintf("rate:%s:%d", ip, time.Now().Unix()/int64(rateLimitWindow.Seconds()))
		count, err := counters.IncrementInt64(key, 1)
		if err != nil {
			counters.Set(key, int64(1), rateLimitWindow)
			count = 1
		}

		if count > rateLimitMax {
			c.Header("Retry-After", "60")
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"success": false,
				"message": "Too many submissions, please slow down.",
			})
			return
		}

		c.Next()
	}
}
