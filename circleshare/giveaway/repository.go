package giveaway

import (
	"context"

	"github.com/circleshare/circleshare/circleshare/database/models"
)

// SelectionFunc picks one candidate from an eligible pool. It runs inside the
// repository's transaction, against the pool read under the item's row lock.
type SelectionFunc func(pool []*models.GiveawayInterest) (*models.GiveawayInterest, error)

// SelectionResult reports the outcome of a selection transaction.
type SelectionResult struct {
	Chosen *models.GiveawayInterest
	// PreviousRecipientID is the member who was selected before this
	// operation, or 0 when the item had no recipient.
	PreviousRecipientID int64
}

// Repository is the persistence surface of the claim lifecycle. Every
// state-machine method executes as one atomic transaction holding a row lock
// on the item: the item-status mutation and the interest-status flips commit
// together or not at all. Race losers observe the post-transition state and
// get ErrInvalidState.
type Repository interface {
	GetItem(ctx context.Context, itemID int64) (*models.Item, error)

	RegisterInterest(ctx context.Context, interest *models.GiveawayInterest) error
	WithdrawInterest(ctx context.Context, itemID, memberID int64) error
	ActiveInterests(ctx context.Context, itemID int64) ([]*models.GiveawayInterest, error)
	InterestFor(ctx context.Context, itemID, memberID int64) (*models.GiveawayInterest, error)

	// SelectRecipient runs initial selection. The eligible set is the full
	// active pool; the incumbent, if any, is not excluded.
	SelectRecipient(ctx context.Context, itemID int64, pick SelectionFunc) (*SelectionResult, error)
	// Reassign replaces the current recipient. The eligible set excludes the
	// current claimed_by member.
	Reassign(ctx context.Context, itemID int64, pick SelectionFunc) (*SelectionResult, error)
	// ReleaseToAll reverts a pending giveaway to unclaimed, preserving the
	// pool. Returns the released recipient's member id.
	ReleaseToAll(ctx context.Context, itemID int64) (int64, error)
	// ConfirmHandoff finalizes the claim. Terminal.
	ConfirmHandoff(ctx context.Context, itemID int64) (*models.Item, error)
}
