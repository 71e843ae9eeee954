package middleware

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	rediskey "zap_store/pkg/redis"

	"github.com/gin-gonic/gin"
	rd "github.com/redis/go-redis/v9"
)

// luaRateLimit is a sliding-window limiter, atomic inside Redis.
// KEYS[1]=limit key, ARGV: now, window start, window seconds, member, limit.
// Returns the count inside the window, or -1 when over the limit.
const luaRateLimit = `
local key = KEYS[1]
local now = tonumber(ARGV[1])
local windowStart = tonumber(ARGV[2])
local windowSec = tonumber(ARGV[3])
local member = ARGV[4]

redis.call('ZREMRANGEBYSCORE', key, '0', windowStart)

local count = redis.call('ZCARD', key)

if count < tonumber(ARGV[5]) then
  redis.call('ZADD', key, now, member)
  redis.call('EXPIRE', key, windowSec)
  return count + 1
else
  return -1
end
`

// RedisRateLimit throttles order submissions per customer phone, falling back
// to the client IP when the body carries no phone. Fails open when Redis is
// unreachable: a throttling outage must not block order intake.
func RedisRateLimit(rdb *rd.Client, limit int, window time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		phone, err := extractPhone(c)
		if err != nil {
			phone = ""
		}

		var key string
		if phone != "" {
			key = rediskey.PhoneRateKey(phone)
		} else {
			key = rediskey.IPRateKey(c.ClientIP())
		}

		now := time.Now().Unix()
		windowSec := int64(window.Seconds())
		windowStart := now - windowSec
		member := fmt.Sprintf("%d-%d", now, time.Now().UnixNano())

		res, err := rdb.Eval(c.Request.Context(), luaRateLimit, []string{key},
			now, windowStart, windowSec, member, limit).Int()
		if err != nil {
			c.Next()
			return
		}

		if res < 0 {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"code": 429,
				"msg":  "too many orders, try again shortly",
			})
			return
		}
		c.Next()
	}
}

// extractPhone peeks customer_phone from the JSON body without consuming it.
func extractPhone(c *gin.Context) (string, error) {
	bodyBytes, err := io.ReadAll(c.Request.Body)
	if err != nil {
		return "", err
	}

	// Reset the body so the handler can bind it again.
	c.Request.Body = io.NopCloser(bytes.NewBuffer(bodyBytes))

	var req struct {
		CustomerPhone string `json:"customer_phone"`
	}
	if err := json.Unmarshal(bodyBytes, &req); err != nil {
		return "", err
	}
	return strings.TrimSpace(req.CustomerPhone), nil
}
