package handlers

import (
	"io"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	dbmodels "github.com/circleshare/circleshare/circleshare/database/models"
	"github.com/circleshare/circleshare/circleshare/utils"
	webutils "github.com/circleshare/circleshare/circleshare/web/utils"
	"github.com/gofiber/fiber/v2"
)

type itemRequest struct {
	Name               string `json:"name"`
	Description        string `json:"description"`
	Category           string `json:"category"`
	IsGiveaway         bool   `json:"is_giveaway"`
	GiveawayVisibility string `json:"giveaway_visibility"`
}

func parseVisibility(raw string) (dbmodels.GiveawayVisibility, bool) {
	switch dbmodels.GiveawayVisibility(raw) {
	case dbmodels.GiveawayVisibilityPublic:
		return dbmodels.GiveawayVisibilityPublic, true
	case dbmodels.GiveawayVisibilityDefault, "":
		return dbmodels.GiveawayVisibilityDefault, true
	}
	return "", false
}

// ItemsCreate registers a new item for the caller.
func ItemsCreate(webApp *WebApp) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req itemRequest
		if err := c.BodyParser(&req); err != nil {
			return webutils.SendBadRequest(c, "Invalid request body")
		}
		if strings.TrimSpace(req.Name) == "" {
			return webutils.SendBadRequest(c, "Name is required")
		}
		visibility, ok := parseVisibility(req.GiveawayVisibility)
		if !ok {
			return webutils.SendBadRequest(c, "Unknown giveaway visibility")
		}

		item := &dbmodels.Item{
			Name:        strings.TrimSpace(req.Name),
			Description: req.Description,
			Category:    req.Category,
			OwnerID:     webutils.ActorID(c),
			Available:   true,
			IsGiveaway:  req.IsGiveaway,
		}
		if req.IsGiveaway {
			item.GiveawayVisibility = visibility
		}

		if err := webApp.Items.Create(c.UserContext(), item); err != nil {
			return webutils.SendDomainError(c, err)
		}
		return webutils.SendCreated(c, webApp.itemView(item), "Item created")
	}
}

// ItemsDetail returns one item, subject to visibility rules.
func ItemsDetail(webApp *WebApp) fiber.Handler {
	return func(c *fiber.Ctx) error {
		item, err := webApp.resolveItem(c)
		if err != nil {
			return sendResolveError(c, err)
		}

		viewerID := webutils.ActorID(c)
		if viewerID != item.OwnerID {
			if !item.IsGiveaway || !webApp.Visibility.CanView(c.UserContext(), viewerID, item, time.Now()) {
				return webutils.SendNotFound(c, "Item not found")
			}
		}
		return webutils.SendSuccess(c, webApp.itemView(item), "")
	}
}

// ItemsUpdate edits the item's descriptive fields. Owner only.
func ItemsUpdate(webApp *WebApp) fiber.Handler {
	return func(c *fiber.Ctx) error {
		item, err := webApp.resolveItem(c)
		if err != nil {
			return sendResolveError(c, err)
		}
		if item.OwnerID != webutils.ActorID(c) {
			return webutils.SendForbidden(c, "Only the owner may edit this item")
		}

		var req itemRequest
		if err := c.BodyParser(&req); err != nil {
			return webutils.SendBadRequest(c, "Invalid request body")
		}
		if strings.TrimSpace(req.Name) != "" {
			item.Name = strings.TrimSpace(req.Name)
		}
		item.Description = req.Description
		item.Category = req.Category
		if item.IsGiveaway && req.GiveawayVisibility != "" {
			visibility, ok := parseVisibility(req.GiveawayVisibility)
			if !ok {
				return webutils.SendBadRequest(c, "Unknown giveaway visibility")
			}
			item.GiveawayVisibility = visibility
		}

		if err := webApp.Items.Update(c.UserContext(), item); err != nil {
			return webutils.SendDomainError(c, err)
		}
		return webutils.SendSuccess(c, webApp.itemView(item), "Item updated")
	}
}

// ItemsDelete removes the item, its interest pool, and its stored photo.
func ItemsDelete(webApp *WebApp) fiber.Handler {
	return func(c *fiber.Ctx) error {
		item, err := webApp.resolveItem(c)
		if err != nil {
			return sendResolveError(c, err)
		}
		if item.OwnerID != webutils.ActorID(c) {
			return webutils.SendForbidden(c, "Only the owner may delete this item")
		}

		if err := webApp.Items.Delete(c.UserContext(), item.ID); err != nil {
			return webutils.SendDomainError(c, err)
		}

		if item.PhotoKey != "" && webApp.Photos != nil {
			if err := webApp.Photos.Delete(c.UserContext(), item.PhotoKey); err != nil {
				slog.Warn("Failed to delete item photo",
					slog.String("photo_key", item.PhotoKey),
					slog.Any("error", err))
			}
		}
		return webutils.SendSuccess(c, nil, "Item deleted")
	}
}

var allowedPhotoExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".gif":  true,
	".webp": true,
}

// ItemsUploadPhoto stores a photo for the item and replaces the previous one.
func ItemsUploadPhoto(webApp *WebApp) fiber.Handler {
	return func(c *fiber.Ctx) error {
		item, err := webApp.resolveItem(c)
		if err != nil {
			return sendResolveError(c, err)
		}
		if item.OwnerID != webutils.ActorID(c) {
			return webutils.SendForbidden(c, "Only the owner may upload a photo")
		}
		if webApp.Photos == nil {
			return webutils.SendError(c, fiber.StatusServiceUnavailable, "PHOTOS_DISABLED", "Photo storage is not configured", nil)
		}

		file, err := c.FormFile("photo")
		if err != nil {
			return webutils.SendBadRequest(c, "Photo file is required")
		}
		if file.Size > utils.MaxPhotoSize {
			return webutils.SendBadRequest(c, "Photo exceeds the maximum size")
		}
		ext := strings.ToLower(filepath.Ext(file.Filename))
		if !allowedPhotoExtensions[ext] {
			return webutils.SendBadRequest(c, "Unsupported photo format")
		}

		src, err := file.Open()
		if err != nil {
			return webutils.SendInternalServerError(c, "Failed to read upload")
		}
		defer src.Close()

		data, err := io.ReadAll(src)
		if err != nil {
			return webutils.SendInternalServerError(c, "Failed to read upload")
		}

		key, err := webApp.Photos.Upload(c.UserContext(), item.PublicID, ext, data)
		if err != nil {
			return webutils.SendInternalServerError(c, "Failed to store photo")
		}

		previousKey := item.PhotoKey
		if err := webApp.Items.SetPhotoKey(c.UserContext(), item.ID, key); err != nil {
			return webutils.SendDomainError(c, err)
		}

		if previousKey != "" {
			if err := webApp.Photos.Delete(c.UserContext(), previousKey); err != nil {
				slog.Warn("Failed to delete replaced photo",
					slog.String("photo_key", previousKey),
					slog.Any("error", err))
			}
		}

		item.PhotoKey = key
		return webutils.SendSuccess(c, webApp.itemView(item), "Photo uploaded")
	}
}
