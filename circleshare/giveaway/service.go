package giveaway

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/circleshare/circleshare/circleshare/database/models"
)

// Service exposes the giveaway claim lifecycle: interest registration and
// withdrawal, owner-driven recipient selection, reassignment, release and
// handoff confirmation. Every mutation takes the acting member so ownership
// preconditions are enforced here, not at the transport layer.
type Service interface {
	RegisterInterest(ctx context.Context, actorID, itemID int64, message string) error
	WithdrawInterest(ctx context.Context, actorID, itemID int64) error
	InterestPool(ctx context.Context, actorID, itemID int64) ([]*models.GiveawayInterest, error)

	SelectRecipient(ctx context.Context, actorID, itemID int64, method Method, targetMemberID int64) (*models.GiveawayInterest, error)
	Reassign(ctx context.Context, actorID, itemID int64, method Method, targetMemberID int64) (*models.GiveawayInterest, error)
	ReleaseToAll(ctx context.Context, actorID, itemID int64) error
	ConfirmHandoff(ctx context.Context, actorID, itemID int64) (*models.Item, error)

	CanMessageRequester(ctx context.Context, actorID, itemID, requesterID int64) error
}

type service struct {
	repo       Repository
	selector   *Selector
	dispatcher *Dispatcher
}

func NewService(repo Repository, selector *Selector, dispatcher *Dispatcher) Service {
	return &service{
		repo:       repo,
		selector:   selector,
		dispatcher: dispatcher,
	}
}

func (s *service) RegisterInterest(ctx context.Context, actorID, itemID int64, message string) error {
	item, err := s.repo.GetItem(ctx, itemID)
	if err != nil {
		return err
	}
	if item.OwnerID == actorID {
		return ErrSelfInterest
	}
	if err := CanRegisterInterest(item); err != nil {
		return err
	}

	interest := &models.GiveawayInterest{
		ItemID:   itemID,
		MemberID: actorID,
		Status:   models.InterestStatusActive,
	}
	if message != "" {
		interest.Message = sql.NullString{String: message, Valid: true}
	}
	return s.repo.RegisterInterest(ctx, interest)
}

func (s *service) WithdrawInterest(ctx context.Context, actorID, itemID int64) error {
	// Withdrawal has no side effect on the item even if the withdrawing
	// member is currently selected; reassignment stays an explicit owner
	// action.
	return s.repo.WithdrawInterest(ctx, itemID, actorID)
}

func (s *service) InterestPool(ctx context.Context, actorID, itemID int64) ([]*models.GiveawayInterest, error) {
	item, err := s.repo.GetItem(ctx, itemID)
	if err != nil {
		return nil, err
	}
	if item.OwnerID != actorID {
		return nil, ErrPermissionDenied
	}
	if !item.IsGiveaway {
		return nil, ErrNotGiveaway
	}
	return s.repo.ActiveInterests(ctx, itemID)
}

func (s *service) SelectRecipient(ctx context.Context, actorID, itemID int64, method Method, targetMemberID int64) (*models.GiveawayInterest, error) {
	item, err := s.ownedGiveaway(ctx, actorID, itemID)
	if err != nil {
		return nil, err
	}
	if err := CanSelect(item.ClaimStatus); err != nil {
		return nil, err
	}

	result, err := s.repo.SelectRecipient(ctx, itemID, func(pool []*models.GiveawayInterest) (*models.GiveawayInterest, error) {
		return s.selector.Pick(pool, method, targetMemberID)
	})
	if err != nil {
		return nil, err
	}

	s.dispatcher.Dispatch(ctx, item.OwnerID, itemID, Note{
		RecipientID: result.Chosen.MemberID,
		Body:        fmt.Sprintf("You have been selected as the recipient of %q. The owner will arrange the pickup with you.", item.Name),
	})
	return result.Chosen, nil
}

func (s *service) Reassign(ctx context.Context, actorID, itemID int64, method Method, targetMemberID int64) (*models.GiveawayInterest, error) {
	item, err := s.ownedGiveaway(ctx, actorID, itemID)
	if err != nil {
		return nil, err
	}
	if err := CanReassign(item.ClaimStatus); err != nil {
		return nil, err
	}
	if method == MethodManual && targetMemberID == item.ClaimedBy() {
		return nil, ErrAlreadySelected
	}

	result, err := s.repo.Reassign(ctx, itemID, func(pool []*models.GiveawayInterest) (*models.GiveawayInterest, error) {
		return s.selector.Pick(pool, method, targetMemberID)
	})
	if err != nil {
		return nil, err
	}

	notes := make([]Note, 0, 2)
	if result.PreviousRecipientID != 0 {
		notes = append(notes, Note{
			RecipientID: result.PreviousRecipientID,
			Body:        fmt.Sprintf("The giveaway %q has been reassigned to another member. You are back in the interest pool.", item.Name),
		})
	}
	notes = append(notes, Note{
		RecipientID: result.Chosen.MemberID,
		Body:        fmt.Sprintf("You have been selected as the recipient of %q. The owner will arrange the pickup with you.", item.Name),
	})
	s.dispatcher.Dispatch(ctx, item.OwnerID, itemID, notes...)

	return result.Chosen, nil
}

func (s *service) ReleaseToAll(ctx context.Context, actorID, itemID int64) error {
	item, err := s.ownedGiveaway(ctx, actorID, itemID)
	if err != nil {
		return err
	}
	if err := CanRelease(item.ClaimStatus); err != nil {
		return err
	}

	previous, err := s.repo.ReleaseToAll(ctx, itemID)
	if err != nil {
		return err
	}

	if previous != 0 {
		s.dispatcher.Dispatch(ctx, item.OwnerID, itemID, Note{
			RecipientID: previous,
			Body:        fmt.Sprintf("The giveaway %q has been released back to all interested members. You are back in the interest pool.", item.Name),
		})
	}
	return nil
}

func (s *service) ConfirmHandoff(ctx context.Context, actorID, itemID int64) (*models.Item, error) {
	item, err := s.ownedGiveaway(ctx, actorID, itemID)
	if err != nil {
		return nil, err
	}
	if err := CanConfirmHandoff(item.ClaimStatus); err != nil {
		return nil, err
	}

	// Handoff happens in person; no notification is sent.
	return s.repo.ConfirmHandoff(ctx, itemID)
}

func (s *service) CanMessageRequester(ctx context.Context, actorID, itemID, requesterID int64) error {
	item, err := s.repo.GetItem(ctx, itemID)
	if err != nil {
		return err
	}
	if item.OwnerID != actorID {
		return ErrPermissionDenied
	}
	if !item.IsGiveaway {
		return ErrNotGiveaway
	}
	if _, err := s.repo.InterestFor(ctx, itemID, requesterID); err != nil {
		return err
	}
	return nil
}

func (s *service) ownedGiveaway(ctx context.Context, actorID, itemID int64) (*models.Item, error) {
	item, err := s.repo.GetItem(ctx, itemID)
	if err != nil {
		return nil, err
	}
	if item.OwnerID != actorID {
		return nil, ErrPermissionDenied
	}
	if !item.IsGiveaway {
		return nil, ErrNotGiveaway
	}
	return item, nil
}
