package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/circleshare/circleshare/circleshare/database/models"
	"github.com/circleshare/circleshare/circleshare/giveaway"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/driver/pgdriver"
)

const pgUniqueViolation = "23505"

// giveawayRepository is the persistence side of the claim state machine.
// Every transition method locks the item row with FOR UPDATE and commits the
// item mutation together with the interest-status flips, so a race loser
// re-reads the post-transition state and fails with ErrInvalidState instead
// of corrupting the pool.
type giveawayRepository struct {
	db *bun.DB
}

func NewGiveawayRepository(db *bun.DB) giveaway.Repository {
	return &giveawayRepository{db: db}
}

func (r *giveawayRepository) GetItem(ctx context.Context, itemID int64) (*models.Item, error) {
	item := new(models.Item)
	err := r.db.NewSelect().
		Model(item).
		Relation("Owner").
		Where("i.id = ?", itemID).
		Scan(ctx)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, giveaway.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get item: %w", err)
	}
	return item, nil
}

func (r *giveawayRepository) RegisterInterest(ctx context.Context, interest *models.GiveawayInterest) error {
	interest.CreatedAt = time.Now()
	if interest.Status == "" {
		interest.Status = models.InterestStatusActive
	}

	_, err := r.db.NewInsert().Model(interest).Exec(ctx)
	if err != nil {
		var pgErr pgdriver.Error
		if errors.As(err, &pgErr) && pgErr.Field('C') == pgUniqueViolation {
			return giveaway.ErrAlreadyRegistered
		}
		return fmt.Errorf("failed to register interest: %w", err)
	}
	return nil
}

func (r *giveawayRepository) WithdrawInterest(ctx context.Context, itemID, memberID int64) error {
	result, err := r.db.NewDelete().
		Model((*models.GiveawayInterest)(nil)).
		Where("item_id = ? AND member_id = ?", itemID, memberID).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to withdraw interest: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check rows affected: %w", err)
	}
	if rows == 0 {
		return giveaway.ErrNotRegistered
	}
	return nil
}

func (r *giveawayRepository) ActiveInterests(ctx context.Context, itemID int64) ([]*models.GiveawayInterest, error) {
	var interests []*models.GiveawayInterest
	err := r.db.NewSelect().
		Model(&interests).
		Relation("Member").
		Where("gi.item_id = ?", itemID).
		Where("gi.status = ?", models.InterestStatusActive).
		Order("gi.created_at ASC", "gi.id ASC").
		Scan(ctx)

	if err != nil {
		return nil, fmt.Errorf("failed to list interests: %w", err)
	}
	return interests, nil
}

func (r *giveawayRepository) InterestFor(ctx context.Context, itemID, memberID int64) (*models.GiveawayInterest, error) {
	interest := new(models.GiveawayInterest)
	err := r.db.NewSelect().
		Model(interest).
		Where("gi.item_id = ? AND gi.member_id = ?", itemID, memberID).
		Scan(ctx)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, giveaway.ErrNotRegistered
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get interest: %w", err)
	}
	return interest, nil
}

func (r *giveawayRepository) SelectRecipient(ctx context.Context, itemID int64, pick giveaway.SelectionFunc) (*giveaway.SelectionResult, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to start transaction: %w", err)
	}
	defer tx.Rollback()

	item, err := lockItem(ctx, tx, itemID)
	if err != nil {
		return nil, err
	}
	if err := giveaway.CanSelect(item.ClaimStatus); err != nil {
		return nil, err
	}

	// Initial selection draws from the full active pool; the incumbent, if
	// any, is deliberately not excluded.
	pool, err := activeInterestsTx(ctx, tx, itemID)
	if err != nil {
		return nil, err
	}
	chosen, err := pick(pool)
	if err != nil {
		return nil, err
	}

	previous := item.ClaimedBy()
	if err := applySelection(ctx, tx, item, chosen); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit selection: %w", err)
	}

	slog.Info("Giveaway recipient selected",
		slog.String("type", "db"),
		slog.Int64("item_id", itemID),
		slog.Int64("member_id", chosen.MemberID))

	return &giveaway.SelectionResult{Chosen: chosen, PreviousRecipientID: previous}, nil
}

func (r *giveawayRepository) Reassign(ctx context.Context, itemID int64, pick giveaway.SelectionFunc) (*giveaway.SelectionResult, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to start transaction: %w", err)
	}
	defer tx.Rollback()

	item, err := lockItem(ctx, tx, itemID)
	if err != nil {
		return nil, err
	}
	if err := giveaway.CanReassign(item.ClaimStatus); err != nil {
		return nil, err
	}

	// Reassignment draws from the pool excluding the current recipient,
	// even if their interest record is somehow still active.
	previous := item.ClaimedBy()
	pool, err := activeInterestsTx(ctx, tx, itemID)
	if err != nil {
		return nil, err
	}
	chosen, err := pick(giveaway.ExcludeMember(pool, previous))
	if err != nil {
		return nil, err
	}

	if err := applySelection(ctx, tx, item, chosen); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit reassignment: %w", err)
	}

	slog.Info("Giveaway recipient reassigned",
		slog.String("type", "db"),
		slog.Int64("item_id", itemID),
		slog.Int64("previous_member_id", previous),
		slog.Int64("member_id", chosen.MemberID))

	return &giveaway.SelectionResult{Chosen: chosen, PreviousRecipientID: previous}, nil
}

func (r *giveawayRepository) ReleaseToAll(ctx context.Context, itemID int64) (int64, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to start transaction: %w", err)
	}
	defer tx.Rollback()

	item, err := lockItem(ctx, tx, itemID)
	if err != nil {
		return 0, err
	}
	if err := giveaway.CanRelease(item.ClaimStatus); err != nil {
		return 0, err
	}

	previous := item.ClaimedBy()
	if err := demoteSelected(ctx, tx, itemID); err != nil {
		return 0, err
	}

	// The pool is preserved, not cleared: everyone stays active.
	_, err = tx.NewUpdate().
		Model((*models.Item)(nil)).
		Set("claim_status = ?", models.ClaimStatusUnclaimed).
		Set("claimed_by_id = NULL").
		Set("available = TRUE").
		Set("updated_at = ?", time.Now()).
		Where("id = ?", itemID).
		Exec(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to release item: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit release: %w", err)
	}

	slog.Info("Giveaway released to all",
		slog.String("type", "db"),
		slog.Int64("item_id", itemID),
		slog.Int64("previous_member_id", previous))

	return previous, nil
}

func (r *giveawayRepository) ConfirmHandoff(ctx context.Context, itemID int64) (*models.Item, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to start transaction: %w", err)
	}
	defer tx.Rollback()

	item, err := lockItem(ctx, tx, itemID)
	if err != nil {
		return nil, err
	}
	if err := giveaway.CanConfirmHandoff(item.ClaimStatus); err != nil {
		return nil, err
	}

	// A selected interest exists only while pending pickup; the recipient's
	// record rejoins the others as active once the claim is final.
	if err := demoteSelected(ctx, tx, itemID); err != nil {
		return nil, err
	}

	now := time.Now()
	_, err = tx.NewUpdate().
		Model((*models.Item)(nil)).
		Set("claim_status = ?", models.ClaimStatusClaimed).
		Set("claimed_at = ?", now).
		Set("available = FALSE").
		Set("updated_at = ?", now).
		Where("id = ?", itemID).
		Exec(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to confirm handoff: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit handoff: %w", err)
	}

	item.ClaimStatus = models.ClaimStatusClaimed
	item.ClaimedAt = &now
	item.Available = false
	item.UpdatedAt = now

	slog.Info("Giveaway handoff confirmed",
		slog.String("type", "db"),
		slog.Int64("item_id", itemID),
		slog.Int64("member_id", item.ClaimedBy()))

	return item, nil
}

// lockItem loads the item under FOR UPDATE so concurrent state-machine
// operations on the same giveaway serialize on the row lock.
func lockItem(ctx context.Context, tx bun.Tx, itemID int64) (*models.Item, error) {
	item := new(models.Item)
	err := tx.NewSelect().
		Model(item).
		Where("i.id = ?", itemID).
		For("UPDATE").
		Scan(ctx)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, giveaway.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to lock item: %w", err)
	}
	if !item.IsGiveaway {
		return nil, giveaway.ErrNotGiveaway
	}
	return item, nil
}

func activeInterestsTx(ctx context.Context, tx bun.Tx, itemID int64) ([]*models.GiveawayInterest, error) {
	var interests []*models.GiveawayInterest
	err := tx.NewSelect().
		Model(&interests).
		Where("gi.item_id = ?", itemID).
		Where("gi.status = ?", models.InterestStatusActive).
		Order("gi.created_at ASC", "gi.id ASC").
		Scan(ctx)

	if err != nil {
		return nil, fmt.Errorf("failed to load interest pool: %w", err)
	}
	return interests, nil
}

// applySelection flips the previously selected interest back to active,
// promotes the chosen one, and points the item at the new recipient. The
// demotion runs first so the one-selected-per-item unique index admits the
// promotion.
func applySelection(ctx context.Context, tx bun.Tx, item *models.Item, chosen *models.GiveawayInterest) error {
	if err := demoteSelected(ctx, tx, item.ID); err != nil {
		return err
	}

	_, err := tx.NewUpdate().
		Model((*models.GiveawayInterest)(nil)).
		Set("status = ?", models.InterestStatusSelected).
		Where("id = ?", chosen.ID).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to mark interest selected: %w", err)
	}
	chosen.Status = models.InterestStatusSelected

	// claimed_at stays untouched: it is set only at handoff confirmation.
	_, err = tx.NewUpdate().
		Model((*models.Item)(nil)).
		Set("claim_status = ?", models.ClaimStatusPendingPickup).
		Set("claimed_by_id = ?", chosen.MemberID).
		Set("available = FALSE").
		Set("updated_at = ?", time.Now()).
		Where("id = ?", item.ID).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to update item claim state: %w", err)
	}
	return nil
}

func demoteSelected(ctx context.Context, tx bun.Tx, itemID int64) error {
	_, err := tx.NewUpdate().
		Model((*models.GiveawayInterest)(nil)).
		Set("status = ?", models.InterestStatusActive).
		Where("item_id = ? AND status = ?", itemID, models.InterestStatusSelected).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to revert selected interest: %w", err)
	}
	return nil
}
