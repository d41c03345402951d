package middleware

import (
	"net/http"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
)

// TransferRateLimit bounds transfers per source account per minute using
// Redis. Without Redis, or on cache errors, it fails open.
func TransferRateLimit(cache *redis.Client, maxPerMin int) fiber.Handler {
	if maxPerMin <= 0 {
		maxPerMin = 10
	}
	return func(c *fiber.Ctx) error {
		if cache == nil {
			return c.Next()
		}

		var req struct {
			SourceAccountID string `json:"source_account_id"`
		}
		_ = c.BodyParser(&req)
		key := strings.TrimSpace(req.SourceAccountID)
		if key == "" {
			key = c.IP()
		}

		counterKey := "rl:transfer:" + key
		cnt, err := cache.Incr(c.UserContext(), counterKey).Result()
		if err != nil {
			return c.Next()
		}
		if cnt == 1 {
			cache.Expire(c.UserContext(), counterKey, time.Minute)
		}
		if cnt > int64(maxPerMin) {
			return fiber.NewError(http.StatusTooManyRequests, "too many transfers from this account, try again later")
		}
		return c.Next()
	}
}
