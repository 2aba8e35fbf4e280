package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/circleshare/circleshare/circleshare/database/models"
	"github.com/circleshare/circleshare/circleshare/giveaway"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/driver/pgdriver"
)

// CircleRepository manages circles and their memberships. It also implements
// giveaway.MembershipChecker for the visibility filter.
type CircleRepository interface {
	giveaway.MembershipChecker

	Create(ctx context.Context, circle *models.Circle) error
	GetByPublicID(ctx context.Context, publicID string) (*models.Circle, error)
	AddMember(ctx context.Context, circleID, memberID int64) error
	RemoveMember(ctx context.Context, circleID, memberID int64) error
	CirclesFor(ctx context.Context, memberID int64) ([]*models.Circle, error)
}

type circleRepository struct {
	db *bun.DB
}

func NewCircleRepository(db *bun.DB) CircleRepository {
	return &circleRepository{db: db}
}

func (r *circleRepository) Create(ctx context.Context, circle *models.Circle) error {
	circle.PublicID = uuid.NewString()
	circle.CreatedAt = time.Now()
	if circle.Visibility == "" {
		circle.Visibility = models.CircleVisibilityPrivate
	}

	_, err := r.db.NewInsert().Model(circle).Exec(ctx)
	if err != nil {
		var pgErr pgdriver.Error
		if errors.As(err, &pgErr) && pgErr.Field('C') == pgUniqueViolation {
			return fmt.Errorf("circle name already taken: %w", err)
		}
		return fmt.Errorf("failed to create circle: %w", err)
	}
	return nil
}

func (r *circleRepository) GetByPublicID(ctx context.Context, publicID string) (*models.Circle, error) {
	circle := new(models.Circle)
	err := r.db.NewSelect().
		Model(circle).
		Where("c.public_id = ?", publicID).
		Scan(ctx)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, giveaway.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get circle: %w", err)
	}
	return circle, nil
}

func (r *circleRepository) AddMember(ctx context.Context, circleID, memberID int64) error {
	membership := &models.CircleMember{
		CircleID: circleID,
		MemberID: memberID,
		JoinedAt: time.Now(),
	}
	_, err := r.db.NewInsert().
		Model(membership).
		On("CONFLICT (circle_id, member_id) DO NOTHING").
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to add circle member: %w", err)
	}
	return nil
}

func (r *circleRepository) RemoveMember(ctx context.Context, circleID, memberID int64) error {
	_, err := r.db.NewDelete().
		Model((*models.CircleMember)(nil)).
		Where("circle_id = ? AND member_id = ?", circleID, memberID).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to remove circle member: %w", err)
	}
	return nil
}

func (r *circleRepository) CirclesFor(ctx context.Context, memberID int64) ([]*models.Circle, error) {
	var circles []*models.Circle
	err := r.db.NewSelect().
		Model(&circles).
		Join("JOIN circle_members AS cm ON cm.circle_id = c.id").
		Where("cm.member_id = ?", memberID).
		Order("c.name ASC").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list circles: %w", err)
	}
	return circles, nil
}

func (r *circleRepository) SharesCircle(ctx context.Context, memberA, memberB int64) (bool, error) {
	exists, err := r.db.NewSelect().
		TableExpr("circle_members AS a").
		Join("JOIN circle_members AS b ON b.circle_id = a.circle_id").
		Where("a.member_id = ?", memberA).
		Where("b.member_id = ?", memberB).
		Exists(ctx)
	if err != nil {
		return false, fmt.Errorf("failed to check shared circle: %w", err)
	}
	return exists, nil
}

func (r *circleRepository) InAnyCircle(ctx context.Context, memberID int64) (bool, error) {
	exists, err := r.db.NewSelect().
		Model((*models.CircleMember)(nil)).
		Where("cm.member_id = ?", memberID).
		Exists(ctx)
	if err != nil {
		return false, fmt.Errorf("failed to check circle membership: %w", err)
	}
	return exists, nil
}
