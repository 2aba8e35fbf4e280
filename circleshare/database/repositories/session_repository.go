package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/circleshare/circleshare/circleshare/database/models"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

var ErrSessionInvalid = errors.New("session invalid or expired")

type SessionRepository interface {
	Issue(ctx context.Context, memberID int64, ttl time.Duration) (*models.Session, error)
	Lookup(ctx context.Context, token string) (*models.Session, error)
	Revoke(ctx context.Context, token string) error
}

type sessionRepository struct {
	db *bun.DB
}

func NewSessionRepository(db *bun.DB) SessionRepository {
	return &sessionRepository{db: db}
}

func (r *sessionRepository) Issue(ctx context.Context, memberID int64, ttl time.Duration) (*models.Session, error) {
	session := &models.Session{
		Token:     uuid.NewString(),
		MemberID:  memberID,
		ExpiresAt: time.Now().Add(ttl),
	}
	_, err := r.db.NewInsert().Model(session).Exec(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to issue session: %w", err)
	}
	return session, nil
}

func (r *sessionRepository) Lookup(ctx context.Context, token string) (*models.Session, error) {
	session := new(models.Session)
	err := r.db.NewSelect().
		Model(session).
		Where("s.token = ?", token).
		Scan(ctx)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrSessionInvalid
	}
	if err != nil {
		return nil, fmt.Errorf("failed to look up session: %w", err)
	}
	if session.Expired(time.Now()) {
		return nil, ErrSessionInvalid
	}
	return session, nil
}

func (r *sessionRepository) Revoke(ctx context.Context, token string) error {
	_, err := r.db.NewDelete().
		Model((*models.Session)(nil)).
		Where("token = ?", token).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to revoke session: %w", err)
	}
	return nil
}
