package utils

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/circleshare/circleshare/circleshare/giveaway"
	"github.com/gofiber/fiber/v2"
)

func TestSendDomainError(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{name: "not found", err: giveaway.ErrNotFound, wantStatus: http.StatusNotFound},
		{name: "candidate not found", err: giveaway.ErrCandidateNotFound, wantStatus: http.StatusNotFound},
		{name: "permission denied", err: giveaway.ErrPermissionDenied, wantStatus: http.StatusForbidden},
		{name: "self interest", err: giveaway.ErrSelfInterest, wantStatus: http.StatusForbidden},
		{name: "not a giveaway", err: giveaway.ErrNotGiveaway, wantStatus: http.StatusConflict},
		{name: "invalid state", err: giveaway.ErrInvalidState, wantStatus: http.StatusConflict},
		{name: "not available", err: giveaway.ErrNotAvailable, wantStatus: http.StatusConflict},
		{name: "already registered", err: giveaway.ErrAlreadyRegistered, wantStatus: http.StatusConflict},
		{name: "already selected", err: giveaway.ErrAlreadySelected, wantStatus: http.StatusConflict},
		{name: "not registered", err: giveaway.ErrNotRegistered, wantStatus: http.StatusConflict},
		{name: "no candidates", err: giveaway.ErrNoCandidates, wantStatus: http.StatusUnprocessableEntity},
		{name: "unexpected error", err: fmt.Errorf("pool exhausted"), wantStatus: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := fiber.New()
			app.Get("/", func(c *fiber.Ctx) error {
				return SendDomainError(c, tt.err)
			})

			resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/", nil))
			if err != nil {
				t.Fatalf("app.Test() error = %v", err)
			}
			defer resp.Body.Close()

			if resp.StatusCode != tt.wantStatus {
				t.Errorf("status = %d, want %d", resp.StatusCode, tt.wantStatus)
			}
		})
	}
}

func TestActorID(t *testing.T) {
	app := fiber.New()
	app.Get("/anon", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"id": ActorID(c)})
	})
	app.Get("/member", func(c *fiber.Ctx) error {
		c.Locals("member_id", int64(42))
		if got := ActorID(c); got != 42 {
			t.Errorf("ActorID() = %d, want 42", got)
		}
		return c.SendStatus(http.StatusOK)
	})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/member", nil))
	if err != nil {
		t.Fatalf("app.Test() error = %v", err)
	}
	resp.Body.Close()

	app.Get("/check-anon", func(c *fiber.Ctx) error {
		if got := ActorID(c); got != 0 {
			t.Errorf("ActorID() = %d, want 0 for anonymous", got)
		}
		return c.SendStatus(http.StatusOK)
	})
	resp, err = app.Test(httptest.NewRequest(http.MethodGet, "/check-anon", nil))
	if err != nil {
		t.Fatalf("app.Test() error = %v", err)
	}
	resp.Body.Close()
}
