package middleware

import (
	"context"
	"net/http"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const loginLimitKeyPrefix = "loginlimit:"

var loginLimitScript = redis.NewScript(`
local key = KEYS[1]
local now = tonumber(ARGV[1])
local window = tonumber(ARGV[2])
local limit = tonumber(ARGV[3])

local windowStart = now - window

redis.call('ZREMRANGEBYSCORE', key, '-inf', windowStart)

local count = redis.call('ZCARD', key)

if count >= limit then
    return 0
end

redis.call('ZADD', key, now, now .. '-' .. math.random())
redis.call('EXPIRE', key, window + 10)

return 1
`)

// RedisLoginRateLimiter is a distributed sliding-window limiter keyed by
// client IP. Used when the deployment runs more than one instance.
type RedisLoginRateLimiter struct {
	client *redis.Client
}

func NewRedisLoginRateLimiter(client *redis.Client) *RedisLoginRateLimiter {
	return &RedisLoginRateLimiter{client: client}
}

func (l *RedisLoginRateLimiter) isAllowed(ctx context.Context, ip string) bool {
	now := time.Now().Unix()
	key := loginLimitKeyPrefix + ip

	result, err := loginLimitScript.Run(ctx, l.client, []string{key},
		now, int64(loginWindowDuration.Seconds()), loginMaxAttempts).Int64()
	if err != nil {
		log.Warn().Err(err).Msg("redis login limit check failed, allowing request")
		return true
	}

	return result == 1
}

func (l *RedisLoginRateLimiter) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ip := clientIP(r)

		if !l.isAllowed(r.Context(), ip) {
			log.Warn().Str("ip", ip).Msg("login rate limit exceeded")
			w.Header().Set("Retry-After", "60")
			writeJSON(w, http.StatusTooManyRequests, map[string]string{
				"error": "Too many login attempts. Please try again later.",
			})
			return
		}

		next.ServeHTTP(w, r)
	})
}
