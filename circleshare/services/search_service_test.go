package services

import (
	"context"
	"testing"

	"github.com/circleshare/circleshare/circleshare/database/models"
)

type stubItemRepository struct {
	visible []*models.Item
}

func (s *stubItemRepository) Create(context.Context, *models.Item) error          { return nil }
func (s *stubItemRepository) GetByID(context.Context, int64) (*models.Item, error) { return nil, nil }
func (s *stubItemRepository) GetByPublicID(context.Context, string) (*models.Item, error) {
	return nil, nil
}
func (s *stubItemRepository) Update(context.Context, *models.Item) error          { return nil }
func (s *stubItemRepository) SetPhotoKey(context.Context, int64, string) error    { return nil }
func (s *stubItemRepository) Delete(context.Context, int64) error                 { return nil }
func (s *stubItemRepository) VisibleGiveaways(context.Context, int64) ([]*models.Item, error) {
	return s.visible, nil
}
func (s *stubItemRepository) Suggestions(context.Context, int64, int64, int) ([]*models.Item, error) {
	return nil, nil
}

func TestSearchService_SearchGiveaways(t *testing.T) {
	visible := []*models.Item{
		{ID: 1, Name: "Bread maker", Category: "kitchen"},
		{ID: 2, Name: "Mountain bike", Category: "sports"},
		{ID: 3, Name: "Baking trays", Category: "kitchen"},
	}
	svc := NewSearchService(&stubItemRepository{visible: visible})

	t.Run("empty query returns full feed", func(t *testing.T) {
		got, err := svc.SearchGiveaways(context.Background(), 1, "  ")
		if err != nil {
			t.Fatalf("SearchGiveaways() error = %v", err)
		}
		if len(got) != 3 {
			t.Errorf("got %d items, want 3", len(got))
		}
	})

	t.Run("query ranks name matches first", func(t *testing.T) {
		got, err := svc.SearchGiveaways(context.Background(), 1, "bike")
		if err != nil {
			t.Fatalf("SearchGiveaways() error = %v", err)
		}
		if len(got) == 0 || got[0].ID != 2 {
			t.Errorf("got %v, want the bike ranked first", got)
		}
		if len(got) == 3 {
			t.Errorf("got all %d items, want non-matches dropped", len(got))
		}
	})

	t.Run("query matches category", func(t *testing.T) {
		got, err := svc.SearchGiveaways(context.Background(), 1, "kitchen")
		if err != nil {
			t.Fatalf("SearchGiveaways() error = %v", err)
		}
		if len(got) != 2 {
			t.Errorf("got %d items, want the 2 kitchen items", len(got))
		}
	})

	t.Run("no match returns empty", func(t *testing.T) {
		got, err := svc.SearchGiveaways(context.Background(), 1, "zzzzzz")
		if err != nil {
			t.Fatalf("SearchGiveaways() error = %v", err)
		}
		if len(got) != 0 {
			t.Errorf("got %d items, want 0", len(got))
		}
	})
}
