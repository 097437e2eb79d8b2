package middleware

import (
    "math"
    "net/http"
    "strconv"
    "strings"
    "time"

    "github.com/labstack/echo/v4"
    "github.com/redis/go-redis/v9"
    "github.com/sirupsen/logrus"

    "github.com/iliyamo/fest-booking/internal/config"
)

// bucketScript refills and takes one token atomically.
// Returns {allowed, tokens_left, retry_after_ms}.
var bucketScript = redis.NewScript(`
local key = KEYS[1]
local now_ms = tonumber(ARGV[1])
local capacity = tonumber(ARGV[2])
local refill = tonumber(ARGV[3])
local interval_ms = tonumber(ARGV[4])
local ttl = tonumber(ARGV[5])

local st = redis.call('HMGET', key, 'tokens', 'last_ms')
local tokens = tonumber(st[1])
local last = tonumber(st[2])
if tokens == nil or last == nil then
    tokens = capacity
    last = now_ms
end

if interval_ms > 0 and refill > 0 then
    local n = math.floor(math.max(0, now_ms - last) / interval_ms)
    if n > 0 then
        tokens = math.min(capacity, tokens + n * refill)
        last = last + n * interval_ms
    end
end

local allowed = 0
local retry = 0
if tokens > 0 then
    allowed = 1
    tokens = tokens - 1
else
    retry = math.max(0, interval_ms - (now_ms - last))
end

redis.call('HSET', key, 'tokens', tokens, 'last_ms', last)
redis.call('EXPIRE', key, ttl)
return { allowed, tokens, retry }
`)

// BookingRateLimit throttles booking submissions per visitor with a Redis
// token bucket.  Redis failures let the request through.
func BookingRateLimit(cfg config.RateLimitConfig, rdb *redis.Client, logger *logrus.Logger) echo.MiddlewareFunc {
    if !cfg.Enabled || rdb == nil {
        return func(next echo.HandlerFunc) echo.HandlerFunc { return next }
    }

    return func(next echo.HandlerFunc) echo.HandlerFunc {
        return func(c echo.Context) error {
            key := rateKey(cfg, c)
            ctx := c.Request().Context()
            log := logger.WithContext(ctx).WithField("key", key)

            res, err := bucketScript.Run(ctx, rdb, []string{key},
                time.Now().UnixMilli(),
                cfg.Capacity,
                cfg.RefillTokens,
                cfg.RefillInterval.Milliseconds(),
                int64(cfg.TTL/time.Second),
            ).Int64Slice()
            if err != nil || len(res) != 3 {
                log.WithError(err).Warn("rate limit check skipped")
                return next(c)
            }
            allowed, remaining, retryMs := res[0] == 1, res[1], res[2]

            h := c.Response().Header()
            h.Set("X-RateLimit-Limit", strconv.Itoa(cfg.Capacity))
            h.Set("X-RateLimit-Remaining", strconv.FormatInt(remaining, 10))
            if cfg.Debug {
                h.Set("X-RateLimit-Key", key)
            }

            if !allowed {
                secs := int(math.Ceil(float64(retryMs) / 1000))
                h.Set("Retry-After", strconv.Itoa(secs))
                if cfg.Debug {
                    log.WithField("retry_ms", retryMs).Info("booking throttled")
                }
                return c.JSON(http.StatusTooManyRequests, echo.Map{
                    "error":       "too many booking attempts, please wait",
                    "retry_after": secs,
                })
            }
            return next(c)
        }
    }
}

// rateKey builds the bucket key.  The default groups by client ip, visitor
// session and route.
func rateKey(cfg config.RateLimitConfig, c echo.Context) string {
    ip := c.RealIP()
    if ip == "" {
        ip = "unknown"
    }
    sid := SessionID(c)
    route := c.Request().Method + " " + c.Path()

    parts := []string{cfg.Prefix}
    switch strings.ToLower(cfg.KeyStrategy) {
    case "ip":
        parts = append(parts, "ip", ip)
    case "session":
        parts = append(parts, "sid", sid)
    case "ip_route":
        parts = append(parts, "ip", ip, "route", route)
    case "session_route":
        parts = append(parts, "sid", sid, "route", route)
    default: // "ip_session_route"
        parts = append(parts, "ip", ip, "sid", sid, "route", route)
    }
    return strings.Join(parts, ":")
}
