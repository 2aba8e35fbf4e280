package giveaway

import (
	"errors"
	"math/rand"
	"testing"

	"github.com/circleshare/circleshare/circleshare/database/models"
)

func testPool(memberIDs ...int64) []*models.GiveawayInterest {
	pool := make([]*models.GiveawayInterest, len(memberIDs))
	for i, id := range memberIDs {
		pool[i] = &models.GiveawayInterest{
			ID:       int64(i + 1),
			ItemID:   1,
			MemberID: id,
			Status:   models.InterestStatusActive,
		}
	}
	return pool
}

func TestParseMethod(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    Method
		wantErr bool
	}{
		{name: "first", input: "first", want: MethodFirst},
		{name: "random", input: "random", want: MethodRandom},
		{name: "manual", input: "manual", want: MethodManual},
		{name: "unknown", input: "fifo", wantErr: true},
		{name: "empty", input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseMethod(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ParseMethod() error = %v, wantErr %v", err, tt.wantErr)
				return
			}
			if got != tt.want {
				t.Errorf("ParseMethod() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestSelector_Pick(t *testing.T) {
	type args struct {
		pool     []*models.GiveawayInterest
		method   Method
		targetID int64
	}
	tests := []struct {
		name       string
		args       args
		wantMember int64
		wantErr    error
	}{
		{
			name:    "empty pool",
			args:    args{pool: nil, method: MethodFirst},
			wantErr: ErrNoCandidates,
		},
		{
			name:    "empty pool manual",
			args:    args{pool: nil, method: MethodManual, targetID: 7},
			wantErr: ErrNoCandidates,
		},
		{
			name:       "first picks earliest registrant",
			args:       args{pool: testPool(10, 20, 30), method: MethodFirst},
			wantMember: 10,
		},
		{
			name:       "manual picks the target",
			args:       args{pool: testPool(10, 20, 30), method: MethodManual, targetID: 20},
			wantMember: 20,
		},
		{
			name:    "manual target not in pool",
			args:    args{pool: testPool(10, 20, 30), method: MethodManual, targetID: 99},
			wantErr: ErrCandidateNotFound,
		},
	}

	s := NewSelector(rand.NewSource(1))

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := s.Pick(tt.args.pool, tt.args.method, tt.args.targetID)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Selector.Pick() error = %v, want %v", err, tt.wantErr)
				return
			}
			if tt.wantErr != nil {
				return
			}
			if got.MemberID != tt.wantMember {
				t.Errorf("Selector.Pick() member = %d, want %d", got.MemberID, tt.wantMember)
			}
		})
	}
}

func TestSelector_Pick_RandomStaysInPool(t *testing.T) {
	s := NewSelector(rand.NewSource(42))
	pool := testPool(10, 20, 30)

	members := map[int64]bool{10: true, 20: true, 30: true}
	for i := 0; i < 50; i++ {
		got, err := s.Pick(pool, MethodRandom, 0)
		if err != nil {
			t.Fatalf("Selector.Pick() error = %v", err)
		}
		if !members[got.MemberID] {
			t.Fatalf("Selector.Pick() returned member %d outside the pool", got.MemberID)
		}
	}
}

func TestExcludeMember(t *testing.T) {
	tests := []struct {
		name        string
		pool        []*models.GiveawayInterest
		memberID    int64
		wantMembers []int64
	}{
		{
			name:        "zero member id keeps pool",
			pool:        testPool(10, 20, 30),
			memberID:    0,
			wantMembers: []int64{10, 20, 30},
		},
		{
			name:        "drops the incumbent",
			pool:        testPool(10, 20, 30),
			memberID:    20,
			wantMembers: []int64{10, 30},
		},
		{
			name:        "incumbent not in pool",
			pool:        testPool(10, 30),
			memberID:    20,
			wantMembers: []int64{10, 30},
		},
		{
			name:        "sole candidate excluded",
			pool:        testPool(20),
			memberID:    20,
			wantMembers: []int64{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ExcludeMember(tt.pool, tt.memberID)
			if len(got) != len(tt.wantMembers) {
				t.Fatalf("ExcludeMember() returned %d candidates, want %d", len(got), len(tt.wantMembers))
			}
			for i, interest := range got {
				if interest.MemberID != tt.wantMembers[i] {
					t.Errorf("ExcludeMember()[%d].MemberID = %d, want %d", i, interest.MemberID, tt.wantMembers[i])
				}
			}
		})
	}
}

func TestExcludeMember_RandomNeverReturnsIncumbent(t *testing.T) {
	s := NewSelector(rand.NewSource(7))
	incumbent := int64(20)
	pool := testPool(incumbent, 30)

	for i := 0; i < 50; i++ {
		got, err := s.Pick(ExcludeMember(pool, incumbent), MethodRandom, 0)
		if err != nil {
			t.Fatalf("Selector.Pick() error = %v", err)
		}
		if got.MemberID == incumbent {
			t.Fatalf("Selector.Pick() returned the excluded member %d", incumbent)
		}
		if got.MemberID != 30 {
			t.Fatalf("Selector.Pick() member = %d, want 30", got.MemberID)
		}
	}
}

func TestExcludeMember_EmptiedPoolHasNoCandidates(t *testing.T) {
	s := NewSelector(rand.NewSource(7))
	pool := testPool(20)

	for _, method := range []Method{MethodFirst, MethodRandom} {
		_, err := s.Pick(ExcludeMember(pool, 20), method, 0)
		if !errors.Is(err, ErrNoCandidates) {
			t.Errorf("Selector.Pick(%s) error = %v, want ErrNoCandidates", method, err)
		}
	}
}

func TestSelector_Pick_SingleCandidate(t *testing.T) {
	s := NewSelector(rand.NewSource(1))
	pool := testPool(42)

	for _, method := range []Method{MethodFirst, MethodRandom} {
		got, err := s.Pick(pool, method, 0)
		if err != nil {
			t.Fatalf("Selector.Pick(%s) error = %v", method, err)
		}
		if got.MemberID != 42 {
			t.Errorf("Selector.Pick(%s) member = %d, want 42", method, got.MemberID)
		}
	}
}
