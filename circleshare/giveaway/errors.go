package giveaway

import "errors"

// Typed error taxonomy surfaced to callers. All of these are recovered at the
// API boundary and mapped onto user-facing outcomes; none propagate as
// unhandled faults.
var (
	ErrNotFound          = errors.New("item not found")
	ErrPermissionDenied  = errors.New("you do not have permission to manage this giveaway")
	ErrNotGiveaway       = errors.New("item is not a giveaway")
	ErrInvalidState      = errors.New("operation not allowed in the giveaway's current state")
	ErrNotAvailable      = errors.New("giveaway is no longer available")
	ErrSelfInterest      = errors.New("cannot express interest in your own giveaway")
	ErrAlreadyRegistered = errors.New("interest already registered for this giveaway")
	ErrNotRegistered     = errors.New("no interest registered for this giveaway")
	ErrNoCandidates      = errors.New("no eligible candidates in the interest pool")
	ErrCandidateNotFound = errors.New("candidate is not in the eligible set")
	ErrAlreadySelected   = errors.New("member is already the selected recipient")
)
