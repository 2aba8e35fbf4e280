package models

import (
	"database/sql"
	"time"

	"github.com/uptrace/bun"
)

type InterestStatus string

const (
	InterestStatusActive   InterestStatus = "active"
	InterestStatusSelected InterestStatus = "selected"
)

// GiveawayInterest records one member's desire for one giveaway. At most one
// record exists per (item, member) pair; duplicates fail on the unique
// constraint rather than overwrite.
type GiveawayInterest struct {
	bun.BaseModel `bun:"table:giveaway_interests,alias:gi"`

	ID       int64          `bun:"id,pk,autoincrement"`
	ItemID   int64          `bun:"item_id,notnull,unique:giveaway_interests_item_member"`
	MemberID int64          `bun:"member_id,notnull,unique:giveaway_interests_item_member"`
	Message  sql.NullString `bun:"message"`
	Status   InterestStatus `bun:"status,notnull,default:'active'"`

	CreatedAt time.Time `bun:"created_at,notnull,default:current_timestamp"`

	Member *Member `bun:"rel:belongs-to,join:member_id=id"`
}
