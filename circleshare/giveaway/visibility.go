package giveaway

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/circleshare/circleshare/circleshare/database/models"
	"github.com/circleshare/circleshare/circleshare/utils"

	lru "github.com/hashicorp/golang-lru"
)

// ClaimedRetentionWindow is how long a claimed giveaway stays visible to the
// owner and the recipient after handoff.
const ClaimedRetentionWindow = 90 * 24 * time.Hour

// MembershipChecker answers circle-membership predicates. Backed by the
// circle repository in production.
type MembershipChecker interface {
	SharesCircle(ctx context.Context, memberA, memberB int64) (bool, error)
	InAnyCircle(ctx context.Context, memberID int64) (bool, error)
}

// VisibilityFilter is the read-side projection deciding whether a giveaway
// appears in a viewer's feeds and detail views. It never errors: lookup
// failures are logged and resolve to non-inclusion.
type VisibilityFilter struct {
	memberships MembershipChecker
	cache       *lru.Cache
}

type membershipCacheEntry struct {
	value     bool
	expiresAt time.Time
}

func NewVisibilityFilter(memberships MembershipChecker, cacheSize int) *VisibilityFilter {
	cache, _ := lru.New(cacheSize)
	return &VisibilityFilter{
		memberships: memberships,
		cache:       cache,
	}
}

// WithinRetentionWindow reports whether a claimed giveaway is still inside
// its post-handoff visibility window.
func WithinRetentionWindow(item *models.Item, now time.Time) bool {
	if item.ClaimStatus != models.ClaimStatusClaimed || item.ClaimedAt == nil {
		return false
	}
	return !item.ClaimedAt.Before(now.Add(-ClaimedRetentionWindow))
}

// IsGiveawayParty reports whether the viewer is the owner or the recipient.
func IsGiveawayParty(item *models.Item, viewerID int64) bool {
	if viewerID == 0 {
		return false
	}
	return viewerID == item.OwnerID || viewerID == item.ClaimedBy()
}

// CanView decides feed/search inclusion of item for the given viewer.
// viewerID 0 means an anonymous visitor.
func (f *VisibilityFilter) CanView(ctx context.Context, viewerID int64, item *models.Item, now time.Time) bool {
	if !item.IsGiveaway {
		return false
	}

	switch item.ClaimStatus {
	case models.ClaimStatusClaimed:
		// Hidden from everyone but the parties, and only within the window.
		return IsGiveawayParty(item, viewerID) && WithinRetentionWindow(item, now)

	case models.ClaimStatusPendingPickup:
		// Hidden from every viewer except the owner; the recipient learns of
		// it via direct notification, not open feeds.
		return viewerID == item.OwnerID

	case models.ClaimStatusUnclaimed:
		if viewerID == item.OwnerID {
			return true
		}
		if item.Owner != nil && item.Owner.VacationMode {
			return false
		}
		if viewerID == 0 {
			return item.GiveawayVisibility == models.GiveawayVisibilityPublic &&
				item.Owner != nil && item.Owner.PublicShowcase
		}
		switch item.GiveawayVisibility {
		case models.GiveawayVisibilityPublic:
			return f.inAnyCircle(ctx, item.OwnerID)
		default:
			return f.sharesCircle(ctx, viewerID, item.OwnerID)
		}
	}

	return false
}

func (f *VisibilityFilter) sharesCircle(ctx context.Context, viewerID, ownerID int64) bool {
	key := fmt.Sprintf("shared:%d:%d", viewerID, ownerID)
	if v, ok := f.getCached(key); ok {
		return v
	}

	shared, err := f.memberships.SharesCircle(ctx, viewerID, ownerID)
	if err != nil {
		slog.Error("Shared-circle lookup failed, hiding giveaway",
			slog.Int64("viewer_id", viewerID),
			slog.Int64("owner_id", ownerID),
			slog.Any("error", err))
		return false
	}

	f.setCached(key, shared)
	return shared
}

func (f *VisibilityFilter) inAnyCircle(ctx context.Context, ownerID int64) bool {
	key := fmt.Sprintf("any:%d", ownerID)
	if v, ok := f.getCached(key); ok {
		return v
	}

	in, err := f.memberships.InAnyCircle(ctx, ownerID)
	if err != nil {
		slog.Error("Circle-membership lookup failed, hiding giveaway",
			slog.Int64("owner_id", ownerID),
			slog.Any("error", err))
		return false
	}

	f.setCached(key, in)
	return in
}

func (f *VisibilityFilter) getCached(key string) (bool, bool) {
	if entry, ok := f.cache.Get(key); ok {
		cached := entry.(membershipCacheEntry)
		if time.Now().Before(cached.expiresAt) {
			return cached.value, true
		}
		f.cache.Remove(key)
	}
	return false, false
}

func (f *VisibilityFilter) setCached(key string, value bool) {
	f.cache.Add(key, membershipCacheEntry{
		value:     value,
		expiresAt: time.Now().Add(utils.CacheExpiration),
	})
}
