package models

import (
	"fmt"
	"time"

	"github.com/uptrace/bun"
)

type Member struct {
	bun.BaseModel `bun:"table:members,alias:m"`

	ID             int64     `bun:"id,pk,autoincrement"`
	Email          string    `bun:"email,notnull,unique"`
	FirstName      string    `bun:"first_name,notnull"`
	LastName       string    `bun:"last_name,notnull"`
	AboutMe        string    `bun:"about_me"`
	VacationMode   bool      `bun:"vacation_mode,notnull,default:false"`
	PublicShowcase bool      `bun:"public_showcase,notnull,default:false"`
	CreatedAt      time.Time `bun:"created_at,notnull,default:current_timestamp"`
}

func (m *Member) FullName() string {
	return fmt.Sprintf("%s %s", m.FirstName, m.LastName)
}
