package utils

import (
	"errors"
	"net/http"

	"github.com/circleshare/circleshare/circleshare/giveaway"
	"github.com/circleshare/circleshare/circleshare/web/models"
	"github.com/gofiber/fiber/v2"
)

// SendJSON sends a JSON response using Fiber
func SendJSON(c *fiber.Ctx, statusCode int, data interface{}) error {
	return c.Status(statusCode).JSON(data)
}

// SendSuccess sends a successful JSON response
func SendSuccess(c *fiber.Ctx, data interface{}, message string) error {
	return SendJSON(c, http.StatusOK, models.NewSuccessResponse(data, message))
}

// SendCreated sends a created resource JSON response
func SendCreated(c *fiber.Ctx, data interface{}, message string) error {
	return SendJSON(c, http.StatusCreated, models.NewSuccessResponse(data, message))
}

// SendError sends an error JSON response
func SendError(c *fiber.Ctx, statusCode int, code, message string, details map[string]string) error {
	return SendJSON(c, statusCode, models.NewErrorResponse(code, message, details))
}

func SendBadRequest(c *fiber.Ctx, message string) error {
	return SendError(c, http.StatusBadRequest, "BAD_REQUEST", message, nil)
}

func SendUnauthorized(c *fiber.Ctx, message string) error {
	return SendError(c, http.StatusUnauthorized, "UNAUTHORIZED", message, nil)
}

func SendForbidden(c *fiber.Ctx, message string) error {
	return SendError(c, http.StatusForbidden, "FORBIDDEN", message, nil)
}

func SendNotFound(c *fiber.Ctx, message string) error {
	return SendError(c, http.StatusNotFound, "NOT_FOUND", message, nil)
}

func SendInternalServerError(c *fiber.Ctx, message string) error {
	return SendError(c, http.StatusInternalServerError, "INTERNAL_SERVER_ERROR", message, nil)
}

// SendDomainError maps lifecycle errors to HTTP statuses. Unrecognized errors
// become a 500 without leaking internals.
func SendDomainError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, giveaway.ErrNotFound):
		return SendError(c, http.StatusNotFound, "NOT_FOUND", "Item not found", nil)
	case errors.Is(err, giveaway.ErrCandidateNotFound):
		return SendError(c, http.StatusNotFound, "CANDIDATE_NOT_FOUND", "That member is not in the interest pool", nil)
	case errors.Is(err, giveaway.ErrPermissionDenied):
		return SendError(c, http.StatusForbidden, "FORBIDDEN", "Only the owner may perform this action", nil)
	case errors.Is(err, giveaway.ErrSelfInterest):
		return SendError(c, http.StatusForbidden, "SELF_INTEREST", "You cannot register interest in your own giveaway", nil)
	case errors.Is(err, giveaway.ErrNotGiveaway):
		return SendError(c, http.StatusConflict, "NOT_GIVEAWAY", "This item is not offered as a giveaway", nil)
	case errors.Is(err, giveaway.ErrInvalidState):
		return SendError(c, http.StatusConflict, "INVALID_STATE", "The giveaway is not in a state that allows this action", nil)
	case errors.Is(err, giveaway.ErrNotAvailable):
		return SendError(c, http.StatusConflict, "NOT_AVAILABLE", "This giveaway is no longer open for interest", nil)
	case errors.Is(err, giveaway.ErrAlreadyRegistered):
		return SendError(c, http.StatusConflict, "ALREADY_REGISTERED", "You already registered interest in this giveaway", nil)
	case errors.Is(err, giveaway.ErrAlreadySelected):
		return SendError(c, http.StatusConflict, "ALREADY_SELECTED", "That member is already the selected recipient", nil)
	case errors.Is(err, giveaway.ErrNotRegistered):
		return SendError(c, http.StatusConflict, "NOT_REGISTERED", "No interest registered for this giveaway", nil)
	case errors.Is(err, giveaway.ErrNoCandidates):
		return SendError(c, http.StatusUnprocessableEntity, "NO_CANDIDATES", "The interest pool is empty", nil)
	default:
		return SendInternalServerError(c, "Something went wrong")
	}
}

// ActorID returns the authenticated member id, or 0 for anonymous requests.
func ActorID(c *fiber.Ctx) int64 {
	if id, ok := c.Locals("member_id").(int64); ok {
		return id
	}
	return 0
}

// GetIPAddress extracts the client IP address
func GetIPAddress(c *fiber.Ctx) string {
	if xff := c.Get("X-Forwarded-For"); xff != "" {
		return xff
	}
	if xri := c.Get("X-Real-IP"); xri != "" {
		return xri
	}
	return c.IP()
}
