package middleware

import (
	"log/slog"
	"time"

	"github.com/gidia-app/nutricoach/internal/authctx"
	"github.com/gidia-app/nutricoach/internal/repository"
	"github.com/gofiber/fiber/v2"
)

// TrackActivity bumps users.last_active_at after a successful write. The
// inactivity job reads that column.
func TrackActivity(users repository.UserRepository) fiber.Handler {
	return func(c *fiber.Ctx) error {
		err := c.Next()
		if err != nil || c.Method() == fiber.MethodGet || c.Response().StatusCode() >= fiber.StatusBadRequest {
			return err
		}

		userID, idErr := authctx.GetUserID(c)
		if idErr != nil {
			return nil
		}
		if touchErr := users.TouchLastActive(c.UserContext(), userID, time.Now()); touchErr != nil {
			slog.Warn("failed to update last_active_at", "user_id", userID.String(), "error", touchErr)
		}
		return nil
	}
}

// SecurityHeaders sets the standard hardening headers.
func SecurityHeaders() fiber.Handler {
	return func(c *fiber.Ctx) error {
		c.Set("X-Content-Type-Options", "nosniff")
		c.Set("X-Frame-Options", "DENY")
		c.Set("X-XSS-Protection", "1; mode=block")
		c.Set("Referrer-Policy", "strict-origin-when-cross-origin")
		return c.Next()
	}
}
