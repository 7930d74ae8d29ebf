package middleware

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/rentwheels/rental-admin/internal/common"
	"github.com/rentwheels/rental-admin/pkg/ginutil"
	"github.com/rentwheels/rental-admin/pkg/logger"
)

const rateLimitKeyPrefix = "ratelimit:entries:"

// rateLimitScript: sliding window over a sorted set, returns {allowed, remaining, reset_at_ms}
var rateLimitScript = redis.NewScript(`
local key = KEYS[1]
local limit = tonumber(ARGV[1])
local window = tonumber(ARGV[2])
local now = tonumber(ARGV[3])

redis.call('ZREMRANGEBYSCORE', key, '-inf', now - window)
local count = redis.call('ZCARD', key)

if count < limit then
    redis.call('ZADD', key, now, now .. ':' .. math.random(1000000))
    redis.call('EXPIRE', key, math.ceil(window / 1000) + 1)
    return {1, limit - count - 1, 0}
end

local oldest = redis.call('ZRANGE', key, 0, 0, 'WITHSCORES')
local reset_at = 0
if #oldest >= 2 then
    reset_at = tonumber(oldest[2]) + window
end
return {0, 0, reset_at}
`)

// WriteRateLimit throttles mutating requests per admin user (IP when anonymous).
// Reads pass through. A nil client or perMinute <= 0 disables it.
func WriteRateLimit(redisClient *redis.Client, perMinute int) gin.HandlerFunc {
	return func(c *gin.Context) {
		if redisClient == nil || perMinute <= 0 || c.Request.Method == http.MethodGet {
			c.Next()
			return
		}

		subject := GetUserID(c)
		if subject == "" {
			subject = "ip:" + c.ClientIP()
		}

		now := time.Now().UnixMilli()
		result, err := rateLimitScript.Run(c.Request.Context(), redisClient,
			[]string{rateLimitKeyPrefix + subject},
			perMinute, int64(60*1000), now,
		).Int64Slice()
		if err != nil {
			// Redis 장애 시 요청 허용
			logger.GetLogger().Warn().Err(err).Msg("rate limit check failed")
			c.Next()
			return
		}

		c.Header("X-RateLimit-Limit", strconv.Itoa(perMinute))
		c.Header("X-RateLimit-Remaining", strconv.FormatInt(result[1], 10))

		if result[0] != 1 {
			retryAfter := (result[2] - now) / 1000
			if retryAfter < 1 {
				retryAfter = 1
			}
			c.Header("Retry-After", strconv.FormatInt(retryAfter, 10))
			common.ErrorResponse(c, http.StatusTooManyRequests, ginutil.T(c, "error.too_many_requests", retryAfter), nil)
			c.Abort()
			return
		}

		c.Next()
	}
}
