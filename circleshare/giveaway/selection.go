package giveaway

import (
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/circleshare/circleshare/circleshare/database/models"
)

type Method string

const (
	// MethodFirst picks the earliest-registered candidate.
	MethodFirst Method = "first"
	// MethodRandom picks uniformly from the eligible set.
	MethodRandom Method = "random"
	// MethodManual picks the candidate matching a target member id.
	MethodManual Method = "manual"
)

func ParseMethod(s string) (Method, error) {
	switch Method(s) {
	case MethodFirst, MethodRandom, MethodManual:
		return Method(s), nil
	}
	return "", fmt.Errorf("unknown selection method %q", s)
}

// Selector picks one candidate from an interest pool. It is a pure function
// over the supplied candidates and has no persistence side effects. The
// entropy source is injected so tests can be deterministic.
type Selector struct {
	mu  sync.Mutex
	rng *rand.Rand
}

func NewSelector(src rand.Source) *Selector {
	if src == nil {
		src = rand.NewSource(time.Now().UnixNano())
	}
	return &Selector{rng: rand.New(src)}
}

// ExcludeMember drops the given member's interest from the pool. It backs
// reassignment, where the current recipient must never be drawn again no
// matter the method. A zero memberID leaves the pool untouched.
func ExcludeMember(pool []*models.GiveawayInterest, memberID int64) []*models.GiveawayInterest {
	if memberID == 0 {
		return pool
	}
	filtered := make([]*models.GiveawayInterest, 0, len(pool))
	for _, interest := range pool {
		if interest.MemberID != memberID {
			filtered = append(filtered, interest)
		}
	}
	return filtered
}

// Pick chooses from pool, which callers supply ordered by registration time.
// targetMemberID is only meaningful for MethodManual.
func (s *Selector) Pick(pool []*models.GiveawayInterest, method Method, targetMemberID int64) (*models.GiveawayInterest, error) {
	if len(pool) == 0 {
		return nil, ErrNoCandidates
	}

	switch method {
	case MethodFirst:
		return pool[0], nil
	case MethodRandom:
		s.mu.Lock()
		idx := s.rng.Intn(len(pool))
		s.mu.Unlock()
		return pool[idx], nil
	case MethodManual:
		for _, interest := range pool {
			if interest.MemberID == targetMemberID {
				return interest, nil
			}
		}
		return nil, ErrCandidateNotFound
	default:
		return nil, fmt.Errorf("unknown selection method %q", method)
	}
}
