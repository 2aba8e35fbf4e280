package models

import (
	"time"

	"github.com/uptrace/bun"
)

// ClaimStatus is the lifecycle state of a giveaway. It is NULL (empty) for
// loan items, which never enter the claim lifecycle.
type ClaimStatus string

const (
	ClaimStatusUnclaimed     ClaimStatus = "unclaimed"
	ClaimStatusPendingPickup ClaimStatus = "pending_pickup"
	ClaimStatusClaimed       ClaimStatus = "claimed"
)

type GiveawayVisibility string

const (
	// GiveawayVisibilityDefault restricts discovery to members sharing a
	// circle with the owner.
	GiveawayVisibilityDefault GiveawayVisibility = "default"
	// GiveawayVisibilityPublic allows discovery by any member of any circle,
	// provided the owner belongs to at least one circle.
	GiveawayVisibilityPublic GiveawayVisibility = "public"
)

type Item struct {
	bun.BaseModel `bun:"table:items,alias:i"`

	ID          int64  `bun:"id,pk,autoincrement"`
	PublicID    string `bun:"public_id,notnull,unique"`
	Name        string `bun:"name,notnull"`
	Description string `bun:"description"`
	Category    string `bun:"category"`
	OwnerID     int64  `bun:"owner_id,notnull"`
	Available   bool   `bun:"available,notnull,default:true"`

	IsGiveaway         bool               `bun:"is_giveaway,notnull,default:false"`
	GiveawayVisibility GiveawayVisibility `bun:"giveaway_visibility,nullzero"`
	ClaimStatus        ClaimStatus        `bun:"claim_status,nullzero"`
	// ClaimedByID is a weak reference: deleting the member clears it while
	// claim_status and claimed_at are preserved.
	ClaimedByID *int64     `bun:"claimed_by_id,nullzero"`
	ClaimedAt   *time.Time `bun:"claimed_at,nullzero"`

	PhotoKey string `bun:"photo_key,nullzero"`

	CreatedAt time.Time `bun:"created_at,notnull,default:current_timestamp"`
	UpdatedAt time.Time `bun:"updated_at,notnull,default:current_timestamp"`

	Owner *Member `bun:"rel:belongs-to,join:owner_id=id"`
}

// ClaimedBy returns the recipient id or 0 when no recipient is set.
func (i *Item) ClaimedBy() int64 {
	if i.ClaimedByID == nil {
		return 0
	}
	return *i.ClaimedByID
}
