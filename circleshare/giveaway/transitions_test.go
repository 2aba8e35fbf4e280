package giveaway

import (
	"errors"
	"testing"

	"github.com/circleshare/circleshare/circleshare/database/models"
)

func TestCanRegisterInterest(t *testing.T) {
	tests := []struct {
		name    string
		item    *models.Item
		wantErr error
	}{
		{
			name: "unclaimed giveaway is open",
			item: &models.Item{IsGiveaway: true, ClaimStatus: models.ClaimStatusUnclaimed},
		},
		{
			name:    "pending giveaway blocks new registrants",
			item:    &models.Item{IsGiveaway: true, ClaimStatus: models.ClaimStatusPendingPickup},
			wantErr: ErrNotAvailable,
		},
		{
			name:    "claimed giveaway blocks new registrants",
			item:    &models.Item{IsGiveaway: true, ClaimStatus: models.ClaimStatusClaimed},
			wantErr: ErrNotAvailable,
		},
		{
			name:    "loan item never enters the lifecycle",
			item:    &models.Item{IsGiveaway: false},
			wantErr: ErrNotGiveaway,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := CanRegisterInterest(tt.item); !errors.Is(err, tt.wantErr) {
				t.Errorf("CanRegisterInterest() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestClaimTransitions(t *testing.T) {
	tests := []struct {
		name    string
		check   func(models.ClaimStatus) error
		status  models.ClaimStatus
		wantErr error
	}{
		{name: "select from unclaimed", check: CanSelect, status: models.ClaimStatusUnclaimed},
		{name: "select again while pending", check: CanSelect, status: models.ClaimStatusPendingPickup},
		{name: "select from claimed", check: CanSelect, status: models.ClaimStatusClaimed, wantErr: ErrInvalidState},

		{name: "reassign while pending", check: CanReassign, status: models.ClaimStatusPendingPickup},
		{name: "reassign from unclaimed", check: CanReassign, status: models.ClaimStatusUnclaimed, wantErr: ErrInvalidState},
		{name: "reassign from claimed", check: CanReassign, status: models.ClaimStatusClaimed, wantErr: ErrInvalidState},

		{name: "release while pending", check: CanRelease, status: models.ClaimStatusPendingPickup},
		{name: "release from unclaimed", check: CanRelease, status: models.ClaimStatusUnclaimed, wantErr: ErrInvalidState},
		{name: "release from claimed", check: CanRelease, status: models.ClaimStatusClaimed, wantErr: ErrInvalidState},

		{name: "confirm while pending", check: CanConfirmHandoff, status: models.ClaimStatusPendingPickup},
		{name: "confirm from unclaimed", check: CanConfirmHandoff, status: models.ClaimStatusUnclaimed, wantErr: ErrInvalidState},
		{name: "claimed is terminal", check: CanConfirmHandoff, status: models.ClaimStatusClaimed, wantErr: ErrInvalidState},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.check(tt.status); !errors.Is(err, tt.wantErr) {
				t.Errorf("transition check error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}
