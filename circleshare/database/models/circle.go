package models

import (
	"time"

	"github.com/uptrace/bun"
)

type CircleVisibility string

const (
	CircleVisibilityPublic   CircleVisibility = "public"
	CircleVisibilityPrivate  CircleVisibility = "private"
	CircleVisibilityUnlisted CircleVisibility = "unlisted"
)

type Circle struct {
	bun.BaseModel `bun:"table:circles,alias:c"`

	ID          int64            `bun:"id,pk,autoincrement"`
	PublicID    string           `bun:"public_id,notnull,unique"`
	Name        string           `bun:"name,notnull,unique"`
	Description string           `bun:"description"`
	Visibility  CircleVisibility `bun:"visibility,notnull,default:'private'"`
	CreatedAt   time.Time        `bun:"created_at,notnull,default:current_timestamp"`
}

// CircleMember links members to the circles they belong to.
type CircleMember struct {
	bun.BaseModel `bun:"table:circle_members,alias:cm"`

	CircleID int64     `bun:"circle_id,pk"`
	MemberID int64     `bun:"member_id,pk"`
	JoinedAt time.Time `bun:"joined_at,notnull,default:current_timestamp"`
}
