package middleware

import (
	"log/slog"
	"strings"

	"github.com/circleshare/circleshare/circleshare/database/repositories"
	"github.com/circleshare/circleshare/circleshare/web/utils"
	"github.com/gofiber/fiber/v2"
)

func bearerToken(c *fiber.Ctx) string {
	header := c.Get("Authorization")
	if strings.HasPrefix(header, "Bearer ") {
		return strings.TrimPrefix(header, "Bearer ")
	}
	return ""
}

// AuthRequired rejects requests without a valid session token.
func AuthRequired(sessions repositories.SessionRepository) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token := bearerToken(c)
		if token == "" {
			return utils.SendUnauthorized(c, "Missing bearer token")
		}

		session, err := sessions.Lookup(c.UserContext(), token)
		if err != nil {
			slog.Debug("Auth required: no valid session", slog.String("error", err.Error()))
			return utils.SendUnauthorized(c, "Invalid or expired session")
		}

		c.Locals("member_id", session.MemberID)
		return c.Next()
	}
}

// OptionalAuth resolves the session if present but lets anonymous requests
// through; visibility rules handle the rest.
func OptionalAuth(sessions repositories.SessionRepository) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if token := bearerToken(c); token != "" {
			if session, err := sessions.Lookup(c.UserContext(), token); err == nil {
				c.Locals("member_id", session.MemberID)
			}
		}
		return c.Next()
	}
}
