package handlers

import (
	"strings"

	dbmodels "github.com/circleshare/circleshare/circleshare/database/models"
	"github.com/circleshare/circleshare/circleshare/web/utils"
	"github.com/gofiber/fiber/v2"
)

type circleRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Visibility  string `json:"visibility"`
}

// CirclesCreate creates a circle and joins the creator to it.
func CirclesCreate(webApp *WebApp) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req circleRequest
		if err := c.BodyParser(&req); err != nil {
			return utils.SendBadRequest(c, "Invalid request body")
		}
		if strings.TrimSpace(req.Name) == "" {
			return utils.SendBadRequest(c, "Name is required")
		}

		circle := &dbmodels.Circle{
			Name:        strings.TrimSpace(req.Name),
			Description: req.Description,
			Visibility:  dbmodels.CircleVisibility(req.Visibility),
		}
		if err := webApp.Circles.Create(c.UserContext(), circle); err != nil {
			return utils.SendError(c, fiber.StatusConflict, "NAME_TAKEN", "Circle name already taken", nil)
		}
		if err := webApp.Circles.AddMember(c.UserContext(), circle.ID, utils.ActorID(c)); err != nil {
			return utils.SendDomainError(c, err)
		}
		return utils.SendCreated(c, fiber.Map{
			"public_id": circle.PublicID,
			"name":      circle.Name,
		}, "Circle created")
	}
}

// CircleJoin adds the caller to a circle.
func CircleJoin(webApp *WebApp) fiber.Handler {
	return func(c *fiber.Ctx) error {
		circle, err := webApp.Circles.GetByPublicID(c.UserContext(), c.Params("public_id"))
		if err != nil {
			return utils.SendDomainError(c, err)
		}
		if err := webApp.Circles.AddMember(c.UserContext(), circle.ID, utils.ActorID(c)); err != nil {
			return utils.SendDomainError(c, err)
		}
		return utils.SendSuccess(c, nil, "Joined circle")
	}
}

// CircleLeave removes the caller from a circle.
func CircleLeave(webApp *WebApp) fiber.Handler {
	return func(c *fiber.Ctx) error {
		circle, err := webApp.Circles.GetByPublicID(c.UserContext(), c.Params("public_id"))
		if err != nil {
			return utils.SendDomainError(c, err)
		}
		if err := webApp.Circles.RemoveMember(c.UserContext(), circle.ID, utils.ActorID(c)); err != nil {
			return utils.SendDomainError(c, err)
		}
		return utils.SendSuccess(c, nil, "Left circle")
	}
}

// MyCircles lists the circles the caller belongs to.
func MyCircles(webApp *WebApp) fiber.Handler {
	return func(c *fiber.Ctx) error {
		circles, err := webApp.Circles.CirclesFor(c.UserContext(), utils.ActorID(c))
		if err != nil {
			return utils.SendDomainError(c, err)
		}
		return utils.SendSuccess(c, circles, "")
	}
}
