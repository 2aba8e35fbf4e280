package handlers

import (
	"bytes"
	"context"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	dbmodels "github.com/circleshare/circleshare/circleshare/database/models"
	"github.com/circleshare/circleshare/circleshare/giveaway"
	"github.com/gofiber/fiber/v2"
)

type stubItems struct {
	item *dbmodels.Item
}

func (s *stubItems) Create(context.Context, *dbmodels.Item) error { return nil }
func (s *stubItems) GetByID(context.Context, int64) (*dbmodels.Item, error) {
	return s.item, nil
}
func (s *stubItems) GetByPublicID(_ context.Context, publicID string) (*dbmodels.Item, error) {
	if s.item == nil || s.item.PublicID != publicID {
		return nil, giveaway.ErrNotFound
	}
	return s.item, nil
}
func (s *stubItems) Update(context.Context, *dbmodels.Item) error       { return nil }
func (s *stubItems) SetPhotoKey(context.Context, int64, string) error   { return nil }
func (s *stubItems) Delete(context.Context, int64) error                { return nil }
func (s *stubItems) VisibleGiveaways(context.Context, int64) ([]*dbmodels.Item, error) {
	return nil, nil
}
func (s *stubItems) Suggestions(context.Context, int64, int64, int) ([]*dbmodels.Item, error) {
	return nil, nil
}

func photoUploadRequest(t *testing.T, path string) *http.Request {
	t.Helper()

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	part, err := writer.CreateFormFile("photo", "pic.jpg")
	if err != nil {
		t.Fatalf("CreateFormFile() error = %v", err)
	}
	if _, err := part.Write([]byte("not-really-a-jpeg")); err != nil {
		t.Fatalf("part.Write() error = %v", err)
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("writer.Close() error = %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, path, body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	return req
}

func TestItemsUploadPhoto_StorageNotConfigured(t *testing.T) {
	owner := int64(7)
	webApp := &WebApp{
		Items: &stubItems{item: &dbmodels.Item{
			ID:       1,
			PublicID: "abc",
			OwnerID:  owner,
		}},
		Photos: nil,
	}

	app := fiber.New()
	app.Post("/items/:public_id/photo", func(c *fiber.Ctx) error {
		c.Locals("member_id", owner)
		return c.Next()
	}, ItemsUploadPhoto(webApp))

	resp, err := app.Test(photoUploadRequest(t, "/items/abc/photo"))
	if err != nil {
		t.Fatalf("app.Test() error = %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusServiceUnavailable {
		t.Errorf("status = %d, want %d when photo storage is disabled", resp.StatusCode, http.StatusServiceUnavailable)
	}
}

func TestItemsUploadPhoto_NonOwnerForbidden(t *testing.T) {
	webApp := &WebApp{
		Items: &stubItems{item: &dbmodels.Item{
			ID:       1,
			PublicID: "abc",
			OwnerID:  7,
		}},
	}

	app := fiber.New()
	app.Post("/items/:public_id/photo", func(c *fiber.Ctx) error {
		c.Locals("member_id", int64(8))
		return c.Next()
	}, ItemsUploadPhoto(webApp))

	resp, err := app.Test(photoUploadRequest(t, "/items/abc/photo"))
	if err != nil {
		t.Fatalf("app.Test() error = %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusForbidden {
		t.Errorf("status = %d, want %d for a non-owner", resp.StatusCode, http.StatusForbidden)
	}
}
