// app/throttlemw.go
package app

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

// Throttle allows limit requests per window per client (token, else IP).
// Redis errors let the request through.
func Throttle(rdb redis.Cmdable, limit int, window time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		if limit <= 0 {
			c.Next()
			return
		}
		who := c.ClientIP()
		if v, ok := c.Get("token"); ok {
			who, _ = v.(string)
		}
		secs := int64(window / time.Second)
		if secs <= 0 {
			secs = 1
		}
		bucket := time.Now().Unix() / secs
		key := fmt.Sprintf("throttle:%s:%d", who, bucket)

		pipe := rdb.TxPipeline()
		incr := pipe.Incr(c, key)
		pipe.Expire(c, key, window)
		if _, err := pipe.Exec(c); err != nil {
			log.Warn().Err(err).Msg("throttle: redis unavailable") // 不阻塞请求
			c.Next()
			return
		}

		n := incr.Val()
		c.Header("X-RateLimit-Limit", strconv.Itoa(limit))
		c.Header("X-RateLimit-Remaining", strconv.FormatInt(max(int64(limit)-n, 0), 10))
		if n > int64(limit) {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, H{"error": "too many requests"})
			return
		}
		c.Next()
	}
}
