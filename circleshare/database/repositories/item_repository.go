package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/circleshare/circleshare/circleshare/database/models"
	"github.com/circleshare/circleshare/circleshare/giveaway"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// ItemRepository covers item CRUD plus the discovery queries that back the
// giveaway feed. Claim state transitions live in the giveaway repository.
type ItemRepository interface {
	Create(ctx context.Context, item *models.Item) error
	GetByID(ctx context.Context, id int64) (*models.Item, error)
	GetByPublicID(ctx context.Context, publicID string) (*models.Item, error)
	Update(ctx context.Context, item *models.Item) error
	SetPhotoKey(ctx context.Context, itemID int64, key string) error
	Delete(ctx context.Context, itemID int64) error

	VisibleGiveaways(ctx context.Context, viewerID int64) ([]*models.Item, error)
	Suggestions(ctx context.Context, viewerID, excludeItemID int64, limit int) ([]*models.Item, error)
}

type itemRepository struct {
	db *bun.DB
}

func NewItemRepository(db *bun.DB) ItemRepository {
	return &itemRepository{db: db}
}

func (r *itemRepository) Create(ctx context.Context, item *models.Item) error {
	now := time.Now()
	item.PublicID = uuid.NewString()
	item.CreatedAt = now
	item.UpdatedAt = now

	if item.IsGiveaway {
		item.Available = true
		item.ClaimStatus = models.ClaimStatusUnclaimed
		if item.GiveawayVisibility == "" {
			item.GiveawayVisibility = models.GiveawayVisibilityDefault
		}
	}

	_, err := r.db.NewInsert().Model(item).Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to create item: %w", err)
	}
	return nil
}

func (r *itemRepository) GetByID(ctx context.Context, id int64) (*models.Item, error) {
	item := new(models.Item)
	err := r.db.NewSelect().
		Model(item).
		Relation("Owner").
		Where("i.id = ?", id).
		Scan(ctx)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, giveaway.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get item: %w", err)
	}
	return item, nil
}

func (r *itemRepository) GetByPublicID(ctx context.Context, publicID string) (*models.Item, error) {
	item := new(models.Item)
	err := r.db.NewSelect().
		Model(item).
		Relation("Owner").
		Where("i.public_id = ?", publicID).
		Scan(ctx)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, giveaway.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get item: %w", err)
	}
	return item, nil
}

func (r *itemRepository) Update(ctx context.Context, item *models.Item) error {
	item.UpdatedAt = time.Now()
	_, err := r.db.NewUpdate().
		Model(item).
		Column("name", "description", "category", "giveaway_visibility", "updated_at").
		WherePK().
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to update item: %w", err)
	}
	return nil
}

func (r *itemRepository) SetPhotoKey(ctx context.Context, itemID int64, key string) error {
	_, err := r.db.NewUpdate().
		Model((*models.Item)(nil)).
		Set("photo_key = ?", key).
		Set("updated_at = ?", time.Now()).
		Where("id = ?", itemID).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to set photo key: %w", err)
	}
	return nil
}

// Delete removes the item along with its interest pool and detaches it from
// message history instead of erasing the conversations.
func (r *itemRepository) Delete(ctx context.Context, itemID int64) error {
	return r.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		if _, err := tx.NewDelete().
			Model((*models.GiveawayInterest)(nil)).
			Where("item_id = ?", itemID).
			Exec(ctx); err != nil {
			return fmt.Errorf("failed to delete interests: %w", err)
		}

		if _, err := tx.NewUpdate().
			Model((*models.Message)(nil)).
			Set("item_id = NULL").
			Where("item_id = ?", itemID).
			Exec(ctx); err != nil {
			return fmt.Errorf("failed to detach messages: %w", err)
		}

		result, err := tx.NewDelete().
			Model((*models.Item)(nil)).
			Where("id = ?", itemID).
			Exec(ctx)
		if err != nil {
			return fmt.Errorf("failed to delete item: %w", err)
		}
		rows, err := result.RowsAffected()
		if err != nil {
			return fmt.Errorf("failed to check rows affected: %w", err)
		}
		if rows == 0 {
			return giveaway.ErrNotFound
		}
		return nil
	})
}

// VisibleGiveaways returns unclaimed giveaways the viewer may discover,
// newest first. viewerID 0 is an anonymous visitor and only sees public
// giveaways from showcased owners.
func (r *itemRepository) VisibleGiveaways(ctx context.Context, viewerID int64) ([]*models.Item, error) {
	var items []*models.Item
	q := r.baseGiveawayFeed(&items, viewerID).
		Order("i.created_at DESC")

	if err := q.Scan(ctx); err != nil {
		return nil, fmt.Errorf("failed to load giveaway feed: %w", err)
	}
	return items, nil
}

// Suggestions returns a handful of other giveaways the viewer could be
// interested in, shown alongside an item detail page.
func (r *itemRepository) Suggestions(ctx context.Context, viewerID, excludeItemID int64, limit int) ([]*models.Item, error) {
	var items []*models.Item
	q := r.baseGiveawayFeed(&items, viewerID).
		Where("i.id != ?", excludeItemID).
		Order("i.created_at DESC").
		Limit(limit)

	if err := q.Scan(ctx); err != nil {
		return nil, fmt.Errorf("failed to load suggestions: %w", err)
	}
	return items, nil
}

func (r *itemRepository) baseGiveawayFeed(items *[]*models.Item, viewerID int64) *bun.SelectQuery {
	q := r.db.NewSelect().
		Model(items).
		Relation("Owner").
		Where("i.is_giveaway = TRUE").
		Where("i.claim_status = ?", models.ClaimStatusUnclaimed).
		Where("owner.vacation_mode = FALSE")

	if viewerID == 0 {
		return q.
			Where("i.giveaway_visibility = ?", models.GiveawayVisibilityPublic).
			Where("owner.public_showcase = TRUE")
	}

	// Members in any circle shared with the viewer.
	shared := r.db.NewSelect().
		ColumnExpr("cm2.member_id").
		TableExpr("circle_members AS cm1").
		Join("JOIN circle_members AS cm2 ON cm2.circle_id = cm1.circle_id").
		Where("cm1.member_id = ?", viewerID)

	// Members belonging to at least one circle.
	anyCircle := r.db.NewSelect().
		ColumnExpr("member_id").
		TableExpr("circle_members")

	return q.
		Where("i.owner_id != ?", viewerID).
		WhereGroup(" AND ", func(q *bun.SelectQuery) *bun.SelectQuery {
			q = q.WhereGroup(" OR ", func(q *bun.SelectQuery) *bun.SelectQuery {
				return q.
					Where("i.giveaway_visibility = ?", models.GiveawayVisibilityDefault).
					Where("i.owner_id IN (?)", shared)
			})
			q = q.WhereGroup(" OR ", func(q *bun.SelectQuery) *bun.SelectQuery {
				return q.
					Where("i.giveaway_visibility = ?", models.GiveawayVisibilityPublic).
					Where("i.owner_id IN (?)", anyCircle)
			})
			return q
		})
}
