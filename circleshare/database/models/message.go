package models

import (
	"time"

	"github.com/uptrace/bun"
)

// Message is an in-app direct message. Giveaway notifications are delivered
// as messages from the item owner to the affected member.
type Message struct {
	bun.BaseModel `bun:"table:messages,alias:msg"`

	ID          int64     `bun:"id,pk,autoincrement"`
	SenderID    int64     `bun:"sender_id,notnull"`
	RecipientID int64     `bun:"recipient_id,notnull"`
	ItemID      *int64    `bun:"item_id,nullzero"`
	Body        string    `bun:"body,notnull"`
	CreatedAt   time.Time `bun:"created_at,notnull,default:current_timestamp"`
}
