package models

import (
	"time"

	"github.com/uptrace/bun"
)

// Session maps an opaque bearer token to a member. Authentication proper
// (credentials, OAuth) lives outside this service; sessions are the narrow
// identity surface the API middleware consumes.
type Session struct {
	bun.BaseModel `bun:"table:sessions,alias:s"`

	Token     string    `bun:"token,pk"`
	MemberID  int64     `bun:"member_id,notnull"`
	ExpiresAt time.Time `bun:"expires_at,notnull"`
	CreatedAt time.Time `bun:"created_at,notnull,default:current_timestamp"`
}

func (s *Session) Expired(now time.Time) bool {
	return now.After(s.ExpiresAt)
}
