package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/circleshare/circleshare/circleshare/database/models"
	"github.com/circleshare/circleshare/circleshare/giveaway"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/driver/pgdriver"
)

type MemberRepository interface {
	Create(ctx context.Context, member *models.Member) error
	GetByID(ctx context.Context, id int64) (*models.Member, error)
	GetByEmail(ctx context.Context, email string) (*models.Member, error)
	Update(ctx context.Context, member *models.Member) error
	SetVacationMode(ctx context.Context, memberID int64, on bool) error
	Delete(ctx context.Context, memberID int64) error
}

type memberRepository struct {
	db *bun.DB
}

func NewMemberRepository(db *bun.DB) MemberRepository {
	return &memberRepository{db: db}
}

func (r *memberRepository) Create(ctx context.Context, member *models.Member) error {
	member.CreatedAt = time.Now()
	_, err := r.db.NewInsert().Model(member).Exec(ctx)
	if err != nil {
		var pgErr pgdriver.Error
		if errors.As(err, &pgErr) && pgErr.Field('C') == pgUniqueViolation {
			return fmt.Errorf("email already registered: %w", err)
		}
		return fmt.Errorf("failed to create member: %w", err)
	}
	return nil
}

func (r *memberRepository) GetByID(ctx context.Context, id int64) (*models.Member, error) {
	member := new(models.Member)
	err := r.db.NewSelect().
		Model(member).
		Where("m.id = ?", id).
		Scan(ctx)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, giveaway.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get member: %w", err)
	}
	return member, nil
}

func (r *memberRepository) GetByEmail(ctx context.Context, email string) (*models.Member, error) {
	member := new(models.Member)
	err := r.db.NewSelect().
		Model(member).
		Where("m.email = ?", email).
		Scan(ctx)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, giveaway.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get member: %w", err)
	}
	return member, nil
}

func (r *memberRepository) Update(ctx context.Context, member *models.Member) error {
	_, err := r.db.NewUpdate().
		Model(member).
		Column("first_name", "last_name", "about_me", "public_showcase").
		WherePK().
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to update member: %w", err)
	}
	return nil
}

func (r *memberRepository) SetVacationMode(ctx context.Context, memberID int64, on bool) error {
	_, err := r.db.NewUpdate().
		Model((*models.Member)(nil)).
		Set("vacation_mode = ?", on).
		Where("id = ?", memberID).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to set vacation mode: %w", err)
	}
	return nil
}

// Delete erases the member and everything they own. Items that were claimed
// from other members keep their claim history; only the recipient reference
// is cleared.
func (r *memberRepository) Delete(ctx context.Context, memberID int64) error {
	return r.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		// Interest pools of the member's own items go with the items.
		if _, err := tx.NewDelete().
			Model((*models.GiveawayInterest)(nil)).
			Where("item_id IN (SELECT id FROM items WHERE owner_id = ?)", memberID).
			Exec(ctx); err != nil {
			return fmt.Errorf("failed to delete owned-item interests: %w", err)
		}

		if _, err := tx.NewDelete().
			Model((*models.GiveawayInterest)(nil)).
			Where("member_id = ?", memberID).
			Exec(ctx); err != nil {
			return fmt.Errorf("failed to delete member interests: %w", err)
		}

		if _, err := tx.NewUpdate().
			Model((*models.Message)(nil)).
			Set("item_id = NULL").
			Where("item_id IN (SELECT id FROM items WHERE owner_id = ?)", memberID).
			Exec(ctx); err != nil {
			return fmt.Errorf("failed to detach messages: %w", err)
		}

		if _, err := tx.NewDelete().
			Model((*models.Item)(nil)).
			Where("owner_id = ?", memberID).
			Exec(ctx); err != nil {
			return fmt.Errorf("failed to delete owned items: %w", err)
		}

		// Weak reference: the claim record on other members' items survives.
		if _, err := tx.NewUpdate().
			Model((*models.Item)(nil)).
			Set("claimed_by_id = NULL").
			Where("claimed_by_id = ?", memberID).
			Exec(ctx); err != nil {
			return fmt.Errorf("failed to clear claim references: %w", err)
		}

		if _, err := tx.NewDelete().
			Model((*models.Message)(nil)).
			Where("sender_id = ? OR recipient_id = ?", memberID, memberID).
			Exec(ctx); err != nil {
			return fmt.Errorf("failed to delete messages: %w", err)
		}

		if _, err := tx.NewDelete().
			Model((*models.CircleMember)(nil)).
			Where("member_id = ?", memberID).
			Exec(ctx); err != nil {
			return fmt.Errorf("failed to delete circle memberships: %w", err)
		}

		if _, err := tx.NewDelete().
			Model((*models.Session)(nil)).
			Where("member_id = ?", memberID).
			Exec(ctx); err != nil {
			return fmt.Errorf("failed to delete sessions: %w", err)
		}

		result, err := tx.NewDelete().
			Model((*models.Member)(nil)).
			Where("id = ?", memberID).
			Exec(ctx)
		if err != nil {
			return fmt.Errorf("failed to delete member: %w", err)
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
