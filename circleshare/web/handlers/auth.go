package handlers

import (
	"strings"
	"time"

	dbmodels "github.com/circleshare/circleshare/circleshare/database/models"
	"github.com/circleshare/circleshare/circleshare/web/utils"
	"github.com/gofiber/fiber/v2"
)

const sessionTTL = 30 * 24 * time.Hour

type registerRequest struct {
	Email     string `json:"email"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

// Register creates a member and issues a session token. Credential checks
// happen upstream at the identity provider; this service only needs a member
// identity to attribute actions to.
func Register(webApp *WebApp) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req registerRequest
		if err := c.BodyParser(&req); err != nil {
			return utils.SendBadRequest(c, "Invalid request body")
		}
		req.Email = strings.ToLower(strings.TrimSpace(req.Email))
		if req.Email == "" || req.FirstName == "" || req.LastName == "" {
			return utils.SendBadRequest(c, "Email, first name and last name are required")
		}

		member := &dbmodels.Member{
			Email:     req.Email,
			FirstName: strings.TrimSpace(req.FirstName),
			LastName:  strings.TrimSpace(req.LastName),
		}
		if err := webApp.Members.Create(c.UserContext(), member); err != nil {
			return utils.SendError(c, fiber.StatusConflict, "EMAIL_TAKEN", "Email already registered", nil)
		}

		session, err := webApp.Sessions.Issue(c.UserContext(), member.ID, sessionTTL)
		if err != nil {
			return utils.SendInternalServerError(c, "Failed to create session")
		}
		return utils.SendCreated(c, fiber.Map{
			"member_id": member.ID,
			"token":     session.Token,
		}, "Member registered")
	}
}

type loginRequest struct {
	Email string `json:"email"`
}

// Login exchanges a verified email for a session token.
func Login(webApp *WebApp) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req loginRequest
		if err := c.BodyParser(&req); err != nil {
			return utils.SendBadRequest(c, "Invalid request body")
		}

		member, err := webApp.Members.GetByEmail(c.UserContext(), strings.ToLower(strings.TrimSpace(req.Email)))
		if err != nil {
			return utils.SendUnauthorized(c, "Unknown member")
		}

		session, err := webApp.Sessions.Issue(c.UserContext(), member.ID, sessionTTL)
		if err != nil {
			return utils.SendInternalServerError(c, "Failed to create session")
		}
		return utils.SendSuccess(c, fiber.Map{
			"member_id": member.ID,
			"token":     session.Token,
		}, "Logged in")
	}
}

// Logout revokes the presented session token.
func Logout(webApp *WebApp) fiber.Handler {
	return func(c *fiber.Ctx) error {
		header := c.Get("Authorization")
		token := strings.TrimPrefix(header, "Bearer ")
		if token == "" || token == header {
			return utils.SendBadRequest(c, "Missing bearer token")
		}
		if err := webApp.Sessions.Revoke(c.UserContext(), token); err != nil {
			return utils.SendInternalServerError(c, "Failed to revoke session")
		}
		return utils.SendSuccess(c, nil, "Logged out")
	}
}
