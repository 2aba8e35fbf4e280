package handlers

import (
	"github.com/circleshare/circleshare/circleshare/database"
	dbmodels "github.com/circleshare/circleshare/circleshare/database/models"
	"github.com/circleshare/circleshare/circleshare/database/repositories"
	"github.com/circleshare/circleshare/circleshare/giveaway"
	"github.com/circleshare/circleshare/circleshare/services"
	webmodels "github.com/circleshare/circleshare/circleshare/web/models"
	"github.com/circleshare/circleshare/circleshare/web/utils"
	"github.com/gofiber/fiber/v2"
)

// WebApp carries all handler dependencies.
type WebApp struct {
	DB         *database.DB
	Members    repositories.MemberRepository
	Items      repositories.ItemRepository
	Circles    repositories.CircleRepository
	Messages   repositories.MessageRepository
	Sessions   repositories.SessionRepository
	Giveaways  giveaway.Service
	Visibility *giveaway.VisibilityFilter
	Photos     *services.PhotoService
	Search     *services.SearchService
	Version    string
}

// HealthCheck reports service liveness.
func HealthCheck(webApp *WebApp) fiber.Handler {
	return func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":  "ok",
			"version": webApp.Version,
		})
	}
}

// DebugReset truncates all application tables. Registered only when the
// debug flag is on; never exposed in production.
func DebugReset(webApp *WebApp) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if err := webApp.DB.ResetAppTables(c.UserContext()); err != nil {
			return utils.SendInternalServerError(c, "Failed to reset tables")
		}
		return utils.SendSuccess(c, nil, "All application tables truncated")
	}
}

// resolveItem turns the :public_id path param into the stored item.
func (webApp *WebApp) resolveItem(c *fiber.Ctx) (*dbmodels.Item, error) {
	publicID := c.Params("public_id")
	if publicID == "" {
		return nil, fiber.NewError(fiber.StatusBadRequest, "missing item id")
	}
	return webApp.Items.GetByPublicID(c.UserContext(), publicID)
}

func (webApp *WebApp) itemView(item *dbmodels.Item) *webmodels.ItemView {
	photoURL := ""
	if webApp.Photos != nil {
		photoURL = webApp.Photos.URL(item.PhotoKey)
	}
	return webmodels.NewItemView(item, photoURL)
}

func (webApp *WebApp) itemViews(items []*dbmodels.Item) []*webmodels.ItemView {
	views := make([]*webmodels.ItemView, len(items))
	for i, item := range items {
		views[i] = webApp.itemView(item)
	}
	return views
}

func sendResolveError(c *fiber.Ctx, err error) error {
	if fiberErr, ok := err.(*fiber.Error); ok {
		return utils.SendError(c, fiberErr.Code, "BAD_REQUEST", fiberErr.Message, nil)
	}
	return utils.SendDomainError(c, err)
}
