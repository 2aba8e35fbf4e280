package giveaway

import (
	"github.com/circleshare/circleshare/circleshare/database/models"
)

// Transition rules for the claim lifecycle:
//
//	unclaimed -> pending_pickup            (select)
//	pending_pickup -> pending_pickup       (re-select, reassign)
//	pending_pickup -> unclaimed            (release)
//	pending_pickup -> claimed              (confirm handoff, terminal)
//
// No transition originates from claimed.

// CanRegisterInterest reports whether a new interest record may be created.
// A pending giveaway blocks new registrants: only the existing pool may be
// drawn from during reassignment.
func CanRegisterInterest(item *models.Item) error {
	if !item.IsGiveaway {
		return ErrNotGiveaway
	}
	switch item.ClaimStatus {
	case models.ClaimStatusPendingPickup, models.ClaimStatusClaimed:
		return ErrNotAvailable
	}
	return nil
}

// CanSelect covers initial selection, which is also allowed while already
// pending: re-running selection acts like a reassignment that does not
// exclude the incumbent.
func CanSelect(status models.ClaimStatus) error {
	switch status {
	case models.ClaimStatusUnclaimed, models.ClaimStatusPendingPickup:
		return nil
	}
	return ErrInvalidState
}

func CanReassign(status models.ClaimStatus) error {
	if status != models.ClaimStatusPendingPickup {
		return ErrInvalidState
	}
	return nil
}

func CanRelease(status models.ClaimStatus) error {
	if status != models.ClaimStatusPendingPickup {
		return ErrInvalidState
	}
	return nil
}

func CanConfirmHandoff(status models.ClaimStatus) error {
	if status != models.ClaimStatusPendingPickup {
		return ErrInvalidState
	}
	return nil
}
