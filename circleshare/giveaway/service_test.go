package giveaway_test

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/circleshare/circleshare/circleshare/database/models"
	"github.com/circleshare/circleshare/circleshare/giveaway"
	"github.com/circleshare/circleshare/circleshare/giveaway/mock"
	"go.uber.org/mock/gomock"
)

const (
	ownerID     = int64(1)
	requesterID = int64(2)
	otherID     = int64(3)
	itemID      = int64(5)
)

type delivered struct {
	senderID    int64
	recipientID int64
	itemID      int64
	body        string
}

// fakeNotifier records deliveries; it can be told to fail every attempt.
type fakeNotifier struct {
	mu    sync.Mutex
	fail  bool
	notes []delivered
}

func (f *fakeNotifier) Notify(_ context.Context, senderID, recipientID, itemID int64, body string) error {
	if f.fail {
		return fmt.Errorf("delivery failed")
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.notes = append(f.notes, delivered{senderID, recipientID, itemID, body})
	return nil
}

func (f *fakeNotifier) recipients() []int64 {
	f.mu.Lock()
	defer f.mu.Unlock()
	ids := make([]int64, len(f.notes))
	for i, n := range f.notes {
		ids[i] = n.recipientID
	}
	return ids
}

func giveawayItem(status models.ClaimStatus, claimedBy int64) *models.Item {
	item := &models.Item{
		ID:          itemID,
		Name:        "Bread maker",
		OwnerID:     ownerID,
		IsGiveaway:  true,
		ClaimStatus: status,
	}
	if claimedBy != 0 {
		item.ClaimedByID = &claimedBy
	}
	return item
}

func newTestService(t *testing.T) (giveaway.Service, *mock.MockRepository, *fakeNotifier) {
	repo := mock.NewMockRepository(gomock.NewController(t))
	notifier := &fakeNotifier{}
	svc := giveaway.NewService(repo, giveaway.NewSelector(nil), giveaway.NewDispatcher(notifier))
	return svc, repo, notifier
}

func TestService_RegisterInterest(t *testing.T) {
	tests := []struct {
		name    string
		actorID int64
		item    *models.Item
		wantErr error
	}{
		{
			name:    "owner cannot register on own giveaway",
			actorID: ownerID,
			item:    giveawayItem(models.ClaimStatusUnclaimed, 0),
			wantErr: giveaway.ErrSelfInterest,
		},
		{
			name:    "pending giveaway rejects new interest",
			actorID: requesterID,
			item:    giveawayItem(models.ClaimStatusPendingPickup, requesterID),
			wantErr: giveaway.ErrNotAvailable,
		},
		{
			name:    "claimed giveaway rejects new interest",
			actorID: requesterID,
			item:    giveawayItem(models.ClaimStatusClaimed, requesterID),
			wantErr: giveaway.ErrNotAvailable,
		},
		{
			name:    "loan item rejects interest",
			actorID: requesterID,
			item:    &models.Item{ID: itemID, OwnerID: ownerID, IsGiveaway: false},
			wantErr: giveaway.ErrNotGiveaway,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, repo, _ := newTestService(t)
			repo.EXPECT().GetItem(gomock.Any(), itemID).Return(tt.item, nil)

			err := svc.RegisterInterest(context.Background(), tt.actorID, itemID, "")
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("RegisterInterest() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestService_RegisterInterest_StoresMessage(t *testing.T) {
	svc, repo, _ := newTestService(t)
	repo.EXPECT().GetItem(gomock.Any(), itemID).Return(giveawayItem(models.ClaimStatusUnclaimed, 0), nil)

	var stored *models.GiveawayInterest
	repo.EXPECT().
		RegisterInterest(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, interest *models.GiveawayInterest) error {
			stored = interest
			return nil
		})

	if err := svc.RegisterInterest(context.Background(), requesterID, itemID, "I could really use this"); err != nil {
		t.Fatalf("RegisterInterest() error = %v", err)
	}
	if stored.ItemID != itemID || stored.MemberID != requesterID {
		t.Errorf("stored interest = (%d, %d), want (%d, %d)", stored.ItemID, stored.MemberID, itemID, requesterID)
	}
	if stored.Status != models.InterestStatusActive {
		t.Errorf("stored status = %s, want active", stored.Status)
	}
	if !stored.Message.Valid || stored.Message.String != "I could really use this" {
		t.Errorf("stored message = %+v, want the request message", stored.Message)
	}
}

func TestService_RegisterInterest_DuplicateSurfaces(t *testing.T) {
	svc, repo, _ := newTestService(t)
	repo.EXPECT().GetItem(gomock.Any(), itemID).Return(giveawayItem(models.ClaimStatusUnclaimed, 0), nil)
	repo.EXPECT().RegisterInterest(gomock.Any(), gomock.Any()).Return(giveaway.ErrAlreadyRegistered)

	err := svc.RegisterInterest(context.Background(), requesterID, itemID, "")
	if !errors.Is(err, giveaway.ErrAlreadyRegistered) {
		t.Errorf("RegisterInterest() error = %v, want ErrAlreadyRegistered", err)
	}
}

func TestService_WithdrawInterest(t *testing.T) {
	svc, repo, _ := newTestService(t)
	repo.EXPECT().WithdrawInterest(gomock.Any(), itemID, requesterID).Return(nil)

	if err := svc.WithdrawInterest(context.Background(), requesterID, itemID); err != nil {
		t.Fatalf("WithdrawInterest() error = %v", err)
	}
}

func TestService_WithdrawInterest_NotRegistered(t *testing.T) {
	svc, repo, _ := newTestService(t)
	repo.EXPECT().WithdrawInterest(gomock.Any(), itemID, requesterID).Return(giveaway.ErrNotRegistered)

	err := svc.WithdrawInterest(context.Background(), requesterID, itemID)
	if !errors.Is(err, giveaway.ErrNotRegistered) {
		t.Errorf("WithdrawInterest() error = %v, want ErrNotRegistered", err)
	}
}

func TestService_InterestPool_OwnerOnly(t *testing.T) {
	svc, repo, _ := newTestService(t)
	repo.EXPECT().GetItem(gomock.Any(), itemID).Return(giveawayItem(models.ClaimStatusUnclaimed, 0), nil)

	_, err := svc.InterestPool(context.Background(), requesterID, itemID)
	if !errors.Is(err, giveaway.ErrPermissionDenied) {
		t.Errorf("InterestPool() error = %v, want ErrPermissionDenied", err)
	}
}

func TestService_InterestPool(t *testing.T) {
	svc, repo, _ := newTestService(t)
	pool := []*models.GiveawayInterest{
		{ID: 1, ItemID: itemID, MemberID: requesterID, Status: models.InterestStatusActive},
		{ID: 2, ItemID: itemID, MemberID: otherID, Status: models.InterestStatusActive},
	}
	repo.EXPECT().GetItem(gomock.Any(), itemID).Return(giveawayItem(models.ClaimStatusUnclaimed, 0), nil)
	repo.EXPECT().ActiveInterests(gomock.Any(), itemID).Return(pool, nil)

	got, err := svc.InterestPool(context.Background(), ownerID, itemID)
	if err != nil {
		t.Fatalf("InterestPool() error = %v", err)
	}
	if len(got) != 2 {
		t.Errorf("InterestPool() returned %d interests, want 2", len(got))
	}
}

func TestService_SelectRecipient(t *testing.T) {
	svc, repo, notifier := newTestService(t)
	chosen := &models.GiveawayInterest{ID: 1, ItemID: itemID, MemberID: requesterID, Status: models.InterestStatusSelected}

	repo.EXPECT().GetItem(gomock.Any(), itemID).Return(giveawayItem(models.ClaimStatusUnclaimed, 0), nil)
	repo.EXPECT().
		SelectRecipient(gomock.Any(), itemID, gomock.Any()).
		Return(&giveaway.SelectionResult{Chosen: chosen}, nil)

	got, err := svc.SelectRecipient(context.Background(), ownerID, itemID, giveaway.MethodFirst, 0)
	if err != nil {
		t.Fatalf("SelectRecipient() error = %v", err)
	}
	if got.MemberID != requesterID {
		t.Errorf("SelectRecipient() member = %d, want %d", got.MemberID, requesterID)
	}

	recipients := notifier.recipients()
	if len(recipients) != 1 || recipients[0] != requesterID {
		t.Errorf("notified %v, want only the chosen member %d", recipients, requesterID)
	}
}

func TestService_SelectRecipient_Errors(t *testing.T) {
	tests := []struct {
		name    string
		actorID int64
		item    *models.Item
		wantErr error
	}{
		{
			name:    "non-owner denied",
			actorID: requesterID,
			item:    giveawayItem(models.ClaimStatusUnclaimed, 0),
			wantErr: giveaway.ErrPermissionDenied,
		},
		{
			name:    "claimed is terminal",
			actorID: ownerID,
			item:    giveawayItem(models.ClaimStatusClaimed, requesterID),
			wantErr: giveaway.ErrInvalidState,
		},
		{
			name:    "loan item",
			actorID: ownerID,
			item:    &models.Item{ID: itemID, OwnerID: ownerID, IsGiveaway: false},
			wantErr: giveaway.ErrNotGiveaway,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, repo, notifier := newTestService(t)
			repo.EXPECT().GetItem(gomock.Any(), itemID).Return(tt.item, nil)

			_, err := svc.SelectRecipient(context.Background(), tt.actorID, itemID, giveaway.MethodFirst, 0)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("SelectRecipient() error = %v, want %v", err, tt.wantErr)
			}
			if len(notifier.recipients()) != 0 {
				t.Errorf("no notification expected on failure")
			}
		})
	}
}

func TestService_SelectRecipient_EmptyPool(t *testing.T) {
	svc, repo, notifier := newTestService(t)
	repo.EXPECT().GetItem(gomock.Any(), itemID).Return(giveawayItem(models.ClaimStatusUnclaimed, 0), nil)
	repo.EXPECT().
		SelectRecipient(gomock.Any(), itemID, gomock.Any()).
		Return(nil, giveaway.ErrNoCandidates)

	_, err := svc.SelectRecipient(context.Background(), ownerID, itemID, giveaway.MethodRandom, 0)
	if !errors.Is(err, giveaway.ErrNoCandidates) {
		t.Errorf("SelectRecipient() error = %v, want ErrNoCandidates", err)
	}
	if len(notifier.recipients()) != 0 {
		t.Errorf("no notification expected on failure")
	}
}

func TestService_SelectRecipient_NotificationFailureSwallowed(t *testing.T) {
	svc, repo, notifier := newTestService(t)
	notifier.fail = true
	chosen := &models.GiveawayInterest{ID: 1, ItemID: itemID, MemberID: requesterID}

	repo.EXPECT().GetItem(gomock.Any(), itemID).Return(giveawayItem(models.ClaimStatusUnclaimed, 0), nil)
	repo.EXPECT().
		SelectRecipient(gomock.Any(), itemID, gomock.Any()).
		Return(&giveaway.SelectionResult{Chosen: chosen}, nil)

	if _, err := svc.SelectRecipient(context.Background(), ownerID, itemID, giveaway.MethodFirst, 0); err != nil {
		t.Fatalf("SelectRecipient() error = %v, delivery failures must not surface", err)
	}
}

func TestService_Reassign(t *testing.T) {
	svc, repo, notifier := newTestService(t)
	chosen := &models.GiveawayInterest{ID: 2, ItemID: itemID, MemberID: otherID}

	repo.EXPECT().GetItem(gomock.Any(), itemID).Return(giveawayItem(models.ClaimStatusPendingPickup, requesterID), nil)
	repo.EXPECT().
		Reassign(gomock.Any(), itemID, gomock.Any()).
		Return(&giveaway.SelectionResult{Chosen: chosen, PreviousRecipientID: requesterID}, nil)

	got, err := svc.Reassign(context.Background(), ownerID, itemID, giveaway.MethodManual, otherID)
	if err != nil {
		t.Fatalf("Reassign() error = %v", err)
	}
	if got.MemberID != otherID {
		t.Errorf("Reassign() member = %d, want %d", got.MemberID, otherID)
	}

	recipients := notifier.recipients()
	if len(recipients) != 2 {
		t.Fatalf("notified %d members, want previous and new recipient", len(recipients))
	}
	seen := map[int64]bool{}
	for _, id := range recipients {
		seen[id] = true
	}
	if !seen[requesterID] || !seen[otherID] {
		t.Errorf("notified %v, want both %d and %d", recipients, requesterID, otherID)
	}
}

func TestService_Reassign_IncumbentRejected(t *testing.T) {
	svc, repo, notifier := newTestService(t)
	repo.EXPECT().GetItem(gomock.Any(), itemID).Return(giveawayItem(models.ClaimStatusPendingPickup, requesterID), nil)

	_, err := svc.Reassign(context.Background(), ownerID, itemID, giveaway.MethodManual, requesterID)
	if !errors.Is(err, giveaway.ErrAlreadySelected) {
		t.Errorf("Reassign() error = %v, want ErrAlreadySelected", err)
	}
	if len(notifier.recipients()) != 0 {
		t.Errorf("no notification expected on failure")
	}
}

func TestService_Reassign_RequiresPending(t *testing.T) {
	svc, repo, _ := newTestService(t)
	repo.EXPECT().GetItem(gomock.Any(), itemID).Return(giveawayItem(models.ClaimStatusUnclaimed, 0), nil)

	_, err := svc.Reassign(context.Background(), ownerID, itemID, giveaway.MethodRandom, 0)
	if !errors.Is(err, giveaway.ErrInvalidState) {
		t.Errorf("Reassign() error = %v, want ErrInvalidState", err)
	}
}

func TestService_ReleaseToAll(t *testing.T) {
	svc, repo, notifier := newTestService(t)
	repo.EXPECT().GetItem(gomock.Any(), itemID).Return(giveawayItem(models.ClaimStatusPendingPickup, requesterID), nil)
	repo.EXPECT().ReleaseToAll(gomock.Any(), itemID).Return(requesterID, nil)

	if err := svc.ReleaseToAll(context.Background(), ownerID, itemID); err != nil {
		t.Fatalf("ReleaseToAll() error = %v", err)
	}

	recipients := notifier.recipients()
	if len(recipients) != 1 || recipients[0] != requesterID {
		t.Errorf("notified %v, want only the released recipient %d", recipients, requesterID)
	}
}

func TestService_ReleaseToAll_RequiresPending(t *testing.T) {
	svc, repo, _ := newTestService(t)
	repo.EXPECT().GetItem(gomock.Any(), itemID).Return(giveawayItem(models.ClaimStatusClaimed, requesterID), nil)

	err := svc.ReleaseToAll(context.Background(), ownerID, itemID)
	if !errors.Is(err, giveaway.ErrInvalidState) {
		t.Errorf("ReleaseToAll() error = %v, want ErrInvalidState", err)
	}
}

func TestService_ConfirmHandoff(t *testing.T) {
	svc, repo, notifier := newTestService(t)
	confirmed := giveawayItem(models.ClaimStatusClaimed, requesterID)

	repo.EXPECT().GetItem(gomock.Any(), itemID).Return(giveawayItem(models.ClaimStatusPendingPickup, requesterID), nil)
	repo.EXPECT().ConfirmHandoff(gomock.Any(), itemID).Return(confirmed, nil)

	got, err := svc.ConfirmHandoff(context.Background(), ownerID, itemID)
	if err != nil {
		t.Fatalf("ConfirmHandoff() error = %v", err)
	}
	if got.ClaimStatus != models.ClaimStatusClaimed {
		t.Errorf("ConfirmHandoff() status = %s, want claimed", got.ClaimStatus)
	}
	if len(notifier.recipients()) != 0 {
		t.Errorf("handoff confirmation must not notify anyone")
	}
}

func TestService_ConfirmHandoff_RequiresPending(t *testing.T) {
	svc, repo, _ := newTestService(t)
	repo.EXPECT().GetItem(gomock.Any(), itemID).Return(giveawayItem(models.ClaimStatusUnclaimed, 0), nil)

	_, err := svc.ConfirmHandoff(context.Background(), ownerID, itemID)
	if !errors.Is(err, giveaway.ErrInvalidState) {
		t.Errorf("ConfirmHandoff() error = %v, want ErrInvalidState", err)
	}
}

func TestService_CanMessageRequester(t *testing.T) {
	tests := []struct {
		name        string
		actorID     int64
		requesterID int64
		registered  bool
		wantErr     error
	}{
		{name: "owner may message a registered member", actorID: ownerID, requesterID: requesterID, registered: true},
		{name: "non-owner denied", actorID: otherID, requesterID: requesterID, wantErr: giveaway.ErrPermissionDenied},
		{name: "unregistered member", actorID: ownerID, requesterID: otherID, registered: false, wantErr: giveaway.ErrNotRegistered},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, repo, _ := newTestService(t)
			repo.EXPECT().GetItem(gomock.Any(), itemID).Return(giveawayItem(models.ClaimStatusUnclaimed, 0), nil)
			if tt.actorID == ownerID {
				if tt.registered {
					repo.EXPECT().
						InterestFor(gomock.Any(), itemID, tt.requesterID).
						Return(&models.GiveawayInterest{ItemID: itemID, MemberID: tt.requesterID}, nil)
				} else {
					repo.EXPECT().
						InterestFor(gomock.Any(), itemID, tt.requesterID).
						Return(nil, giveaway.ErrNotRegistered)
				}
			}

			err := svc.CanMessageRequester(context.Background(), tt.actorID, itemID, tt.requesterID)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("CanMessageRequester() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}
