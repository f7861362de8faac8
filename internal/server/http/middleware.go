package http

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/eventkeeper/eventkeeper/internal/common"
	"github.com/eventkeeper/eventkeeper/internal/server/auth"
	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
)

const userIDKey = "user_id"

// RequireAuth validates the Bearer access token and stores the user id in
// the request locals. Expired tokens get their own code so the client knows
// to attempt a refresh instead of dropping the session.
func RequireAuth(secretKey string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authz := c.Get(fiber.HeaderAuthorization)
		if !strings.HasPrefix(strings.ToLower(authz), "bearer ") {
			return writeError(c, http.StatusUnauthorized, common.CodeInvalidCredential, "missing bearer token")
		}
		tokenStr := strings.TrimSpace(authz[len("Bearer "):])

		userID, err := auth.GetUserIDFromToken(tokenStr, secretKey)
		if err != nil {
			if errors.Is(err, common.ErrTokenExpired) {
				return writeError(c, http.StatusUnauthorized, common.CodeTokenExpired, "access token expired")
			}
			return writeError(c, http.StatusUnauthorized, common.CodeInvalidCredential, "invalid token")
		}

		c.Locals(userIDKey, userID)
		return c.Next()
	}
}

// LoginRateLimit limits sign-in attempts per email or IP using Redis if
// available. Without a cache, or on cache errors, requests fail open.
func LoginRateLimit(cache *redis.Client, limit int, window time.Duration) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if cache == nil {
			return c.Next()
		}

		var req struct {
			Email string `json:"email"`
		}
		_ = c.BodyParser(&req)

		key := strings.TrimSpace(strings.ToLower(req.Email))
		if key == "" {
			key = c.IP()
		}
		key = "rl:login:" + key

		cnt, err := cache.Incr(c.UserContext(), key).Result()
		if err != nil {
			return c.Next()
		}
		if cnt == 1 {
			cache.Expire(c.UserContext(), key, window)
		}
		if cnt > int64(limit) {
			return writeError(c, http.StatusTooManyRequests, common.CodeTooManyRequests, "too many attempts, try again later")
		}

		return c.Next()
	}
}
