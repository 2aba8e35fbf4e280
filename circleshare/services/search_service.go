package services

import (
	"context"
	"strings"

	"github.com/circleshare/circleshare/circleshare/database/models"
	"github.com/circleshare/circleshare/circleshare/database/repositories"
	"github.com/sahilm/fuzzy"
)

// itemSearchEntries implements fuzzy.Source over giveaway items, matching
// against name and category together.
type itemSearchEntries []itemSearchEntry

type itemSearchEntry struct {
	Item *models.Item
	Text string
}

func (e itemSearchEntries) Len() int {
	return len(e)
}

func (e itemSearchEntries) String(i int) string {
	return e[i].Text
}

// SearchService runs fuzzy search over the giveaways a viewer is allowed to
// see. Visibility is resolved by the feed query before matching, so search
// never leaks items the feed would hide.
type SearchService struct {
	items repositories.ItemRepository
}

func NewSearchService(items repositories.ItemRepository) *SearchService {
	return &SearchService{items: items}
}

func (s *SearchService) SearchGiveaways(ctx context.Context, viewerID int64, query string) ([]*models.Item, error) {
	visible, err := s.items.VisibleGiveaways(ctx, viewerID)
	if err != nil {
		return nil, err
	}

	query = strings.TrimSpace(query)
	if query == "" {
		return visible, nil
	}

	entries := make(itemSearchEntries, len(visible))
	for i, item := range visible {
		entries[i] = itemSearchEntry{
			Item: item,
			Text: strings.ToLower(item.Name + " " + item.Category),
		}
	}

	matches := fuzzy.FindFrom(strings.ToLower(query), entries)
	results := make([]*models.Item, len(matches))
	for i, m := range matches {
		results[i] = entries[m.Index].Item
	}
	return results, nil
}
