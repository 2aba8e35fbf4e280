package handlers

import (
	"strings"
	"time"

	dbmodels "github.com/circleshare/circleshare/circleshare/database/models"
	"github.com/circleshare/circleshare/circleshare/giveaway"
	webmodels "github.com/circleshare/circleshare/circleshare/web/models"
	"github.com/circleshare/circleshare/circleshare/web/utils"
	"github.com/gofiber/fiber/v2"
)

const suggestionLimit = 4

// GiveawayFeed lists the unclaimed giveaways the viewer may discover,
// optionally fuzzy-filtered by ?q=.
func GiveawayFeed(webApp *WebApp) fiber.Handler {
	return func(c *fiber.Ctx) error {
		viewerID := utils.ActorID(c)

		items, err := webApp.Search.SearchGiveaways(c.UserContext(), viewerID, c.Query("q"))
		if err != nil {
			return utils.SendDomainError(c, err)
		}
		return utils.SendSuccess(c, webApp.itemViews(items), "")
	}
}

// GiveawaySuggestions returns a few other visible giveaways to show next to
// an item detail page.
func GiveawaySuggestions(webApp *WebApp) fiber.Handler {
	return func(c *fiber.Ctx) error {
		item, err := webApp.resolveItem(c)
		if err != nil {
			return sendResolveError(c, err)
		}

		items, err := webApp.Items.Suggestions(c.UserContext(), utils.ActorID(c), item.ID, suggestionLimit)
		if err != nil {
			return utils.SendDomainError(c, err)
		}
		return utils.SendSuccess(c, webApp.itemViews(items), "")
	}
}

type interestRequest struct {
	Message string `json:"message"`
}

// RegisterInterest adds the caller to the item's interest pool.
func RegisterInterest(webApp *WebApp) fiber.Handler {
	return func(c *fiber.Ctx) error {
		item, err := webApp.resolveItem(c)
		if err != nil {
			return sendResolveError(c, err)
		}

		var req interestRequest
		if err := c.BodyParser(&req); err != nil && len(c.Body()) > 0 {
			return utils.SendBadRequest(c, "Invalid request body")
		}

		if err := webApp.Giveaways.RegisterInterest(c.UserContext(), utils.ActorID(c), item.ID, strings.TrimSpace(req.Message)); err != nil {
			return utils.SendDomainError(c, err)
		}
		return utils.SendCreated(c, nil, "Interest registered")
	}
}

// WithdrawInterest removes the caller from the pool. Withdrawing while
// selected does not touch the item; the owner reassigns explicitly.
func WithdrawInterest(webApp *WebApp) fiber.Handler {
	return func(c *fiber.Ctx) error {
		item, err := webApp.resolveItem(c)
		if err != nil {
			return sendResolveError(c, err)
		}

		if err := webApp.Giveaways.WithdrawInterest(c.UserContext(), utils.ActorID(c), item.ID); err != nil {
			return utils.SendDomainError(c, err)
		}
		return utils.SendSuccess(c, nil, "Interest withdrawn")
	}
}

// InterestPool lists active interests, oldest first. Owner only.
func InterestPool(webApp *WebApp) fiber.Handler {
	return func(c *fiber.Ctx) error {
		item, err := webApp.resolveItem(c)
		if err != nil {
			return sendResolveError(c, err)
		}

		interests, err := webApp.Giveaways.InterestPool(c.UserContext(), utils.ActorID(c), item.ID)
		if err != nil {
			return utils.SendDomainError(c, err)
		}

		views := make([]*webmodels.InterestView, len(interests))
		for i, interest := range interests {
			views[i] = webmodels.NewInterestView(interest)
		}
		return utils.SendSuccess(c, views, "")
	}
}

type selectionRequest struct {
	Method   string `json:"method"`
	MemberID int64  `json:"member_id"`
}

func (req *selectionRequest) parse(c *fiber.Ctx) (giveaway.Method, error) {
	if err := c.BodyParser(req); err != nil {
		return "", err
	}
	method, err := giveaway.ParseMethod(req.Method)
	if err != nil {
		return "", err
	}
	if method == giveaway.MethodManual && req.MemberID == 0 {
		return "", giveaway.ErrCandidateNotFound
	}
	return method, nil
}

// SelectRecipient picks a recipient from the pool and moves the giveaway to
// pending pickup.
func SelectRecipient(webApp *WebApp) fiber.Handler {
	return func(c *fiber.Ctx) error {
		item, err := webApp.resolveItem(c)
		if err != nil {
			return sendResolveError(c, err)
		}

		var req selectionRequest
		method, err := req.parse(c)
		if err != nil {
			return utils.SendBadRequest(c, "Invalid selection request")
		}

		chosen, err := webApp.Giveaways.SelectRecipient(c.UserContext(), utils.ActorID(c), item.ID, method, req.MemberID)
		if err != nil {
			return utils.SendDomainError(c, err)
		}
		return utils.SendSuccess(c, webmodels.NewInterestView(chosen), "Recipient selected")
	}
}

// Reassign replaces the pending recipient with another pool member.
func Reassign(webApp *WebApp) fiber.Handler {
	return func(c *fiber.Ctx) error {
		item, err := webApp.resolveItem(c)
		if err != nil {
			return sendResolveError(c, err)
		}

		var req selectionRequest
		method, err := req.parse(c)
		if err != nil {
			return utils.SendBadRequest(c, "Invalid selection request")
		}

		chosen, err := webApp.Giveaways.Reassign(c.UserContext(), utils.ActorID(c), item.ID, method, req.MemberID)
		if err != nil {
			return utils.SendDomainError(c, err)
		}
		return utils.SendSuccess(c, webmodels.NewInterestView(chosen), "Recipient reassigned")
	}
}

// Release returns a pending giveaway to the open pool.
func Release(webApp *WebApp) fiber.Handler {
	return func(c *fiber.Ctx) error {
		item, err := webApp.resolveItem(c)
		if err != nil {
			return sendResolveError(c, err)
		}

		if err := webApp.Giveaways.ReleaseToAll(c.UserContext(), utils.ActorID(c), item.ID); err != nil {
			return utils.SendDomainError(c, err)
		}
		return utils.SendSuccess(c, nil, "Giveaway released to all interested members")
	}
}

// ConfirmHandoff finalizes the claim after the in-person pickup.
func ConfirmHandoff(webApp *WebApp) fiber.Handler {
	return func(c *fiber.Ctx) error {
		item, err := webApp.resolveItem(c)
		if err != nil {
			return sendResolveError(c, err)
		}

		updated, err := webApp.Giveaways.ConfirmHandoff(c.UserContext(), utils.ActorID(c), item.ID)
		if err != nil {
			return utils.SendDomainError(c, err)
		}
		updated.Owner = item.Owner
		return utils.SendSuccess(c, webApp.itemView(updated), "Handoff confirmed")
	}
}

type messageRequest struct {
	Body string `json:"body"`
}

// MessageRequester lets the owner open a conversation with a member of the
// interest pool about this giveaway.
func MessageRequester(webApp *WebApp) fiber.Handler {
	return func(c *fiber.Ctx) error {
		item, err := webApp.resolveItem(c)
		if err != nil {
			return sendResolveError(c, err)
		}

		requesterID, err := c.ParamsInt("member_id")
		if err != nil {
			return utils.SendBadRequest(c, "Invalid member id")
		}

		var req messageRequest
		if err := c.BodyParser(&req); err != nil || strings.TrimSpace(req.Body) == "" {
			return utils.SendBadRequest(c, "Message body is required")
		}

		actorID := utils.ActorID(c)
		if err := webApp.Giveaways.CanMessageRequester(c.UserContext(), actorID, item.ID, int64(requesterID)); err != nil {
			return utils.SendDomainError(c, err)
		}

		itemID := item.ID
		msg := &dbmodels.Message{
			SenderID:    actorID,
			RecipientID: int64(requesterID),
			ItemID:      &itemID,
			Body:        strings.TrimSpace(req.Body),
			CreatedAt:   time.Now(),
		}
		if err := webApp.Messages.Send(c.UserContext(), msg); err != nil {
			return utils.SendDomainError(c, err)
		}
		return utils.SendCreated(c, nil, "Message sent")
	}
}
