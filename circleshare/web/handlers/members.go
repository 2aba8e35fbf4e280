package handlers

import (
	"strings"

	"github.com/circleshare/circleshare/circleshare/web/utils"
	"github.com/gofiber/fiber/v2"
)

type profileRequest struct {
	FirstName      string `json:"first_name"`
	LastName       string `json:"last_name"`
	AboutMe        string `json:"about_me"`
	PublicShowcase *bool  `json:"public_showcase"`
}

// Me returns the caller's profile.
func Me(webApp *WebApp) fiber.Handler {
	return func(c *fiber.Ctx) error {
		member, err := webApp.Members.GetByID(c.UserContext(), utils.ActorID(c))
		if err != nil {
			return utils.SendDomainError(c, err)
		}
		return utils.SendSuccess(c, fiber.Map{
			"member_id":       member.ID,
			"email":           member.Email,
			"name":            member.FullName(),
			"about_me":        member.AboutMe,
			"vacation_mode":   member.VacationMode,
			"public_showcase": member.PublicShowcase,
		}, "")
	}
}

// MeUpdate edits the caller's profile fields.
func MeUpdate(webApp *WebApp) fiber.Handler {
	return func(c *fiber.Ctx) error {
		member, err := webApp.Members.GetByID(c.UserContext(), utils.ActorID(c))
		if err != nil {
			return utils.SendDomainError(c, err)
		}

		var req profileRequest
		if err := c.BodyParser(&req); err != nil {
			return utils.SendBadRequest(c, "Invalid request body")
		}
		if strings.TrimSpace(req.FirstName) != "" {
			member.FirstName = strings.TrimSpace(req.FirstName)
		}
		if strings.TrimSpace(req.LastName) != "" {
			member.LastName = strings.TrimSpace(req.LastName)
		}
		member.AboutMe = req.AboutMe
		if req.PublicShowcase != nil {
			member.PublicShowcase = *req.PublicShowcase
		}

		if err := webApp.Members.Update(c.UserContext(), member); err != nil {
			return utils.SendDomainError(c, err)
		}
		return utils.SendSuccess(c, nil, "Profile updated")
	}
}

type vacationRequest struct {
	On bool `json:"on"`
}

// MeVacation toggles vacation mode, which hides the member's giveaways from
// every feed until turned off.
func MeVacation(webApp *WebApp) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req vacationRequest
		if err := c.BodyParser(&req); err != nil {
			return utils.SendBadRequest(c, "Invalid request body")
		}
		if err := webApp.Members.SetVacationMode(c.UserContext(), utils.ActorID(c), req.On); err != nil {
			return utils.SendDomainError(c, err)
		}
		return utils.SendSuccess(c, fiber.Map{"vacation_mode": req.On}, "Vacation mode updated")
	}
}

// MeDelete erases the caller's account and everything they own.
func MeDelete(webApp *WebApp) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if err := webApp.Members.Delete(c.UserContext(), utils.ActorID(c)); err != nil {
			return utils.SendDomainError(c, err)
		}
		return utils.SendSuccess(c, nil, "Account deleted")
	}
}

// Inbox lists the caller's received messages, newest first.
func Inbox(webApp *WebApp) fiber.Handler {
	return func(c *fiber.Ctx) error {
		limit := c.QueryInt("limit", 50)
		if limit <= 0 || limit > 200 {
			limit = 50
		}
		messages, err := webApp.Messages.Inbox(c.UserContext(), utils.ActorID(c), limit)
		if err != nil {
			return utils.SendDomainError(c, err)
		}
		return utils.SendSuccess(c, messages, "")
	}
}

// Conversation lists the back-and-forth between the caller and one member.
func Conversation(webApp *WebApp) fiber.Handler {
	return func(c *fiber.Ctx) error {
		otherID, err := c.ParamsInt("member_id")
		if err != nil {
			return utils.SendBadRequest(c, "Invalid member id")
		}
		limit := c.QueryInt("limit", 100)
		if limit <= 0 || limit > 500 {
			limit = 100
		}
		messages, err := webApp.Messages.Conversation(c.UserContext(), utils.ActorID(c), int64(otherID), limit)
		if err != nil {
			return utils.SendDomainError(c, err)
		}
		return utils.SendSuccess(c, messages, "")
	}
}
