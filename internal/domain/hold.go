package domain

import "time"

// Hold represents a short-lived soft reservation of a time range, created
// while a user is mid-checkout. A hold blocks the range for other callers
// until it is released, confirmed into a Booking, or its TTL passes.
//
// Expiry is a property of the row, not of any timer: every read compares
// ExpiresAt against server time, so an expired hold is invisible even if
// the sweeper has not deleted it yet.
type Hold struct {
	ID         string
	ResourceID int64
	ServiceID  int64
	StartAt    time.Time
	// EndAt is the end of the reserved range, including any travel buffer
	// appended past the visible service duration.
	EndAt    time.Time
	Quantity int
	// Exclusive mirrors Booking.Exclusive; see there.
	Exclusive  bool
	OwnerToken string
	ExpiresAt  time.Time
	CreatedAt  time.Time
}

// IsExpiredAt returns true if the hold's TTL has passed at the given instant
func (h *Hold) IsExpiredAt(now time.Time) bool {
	return !h.ExpiresAt.After(now)
}

// OverlapsRange reports whether the hold occupies any part of [start, end)
func (h *Hold) OverlapsRange(start, end time.Time) bool {
	return Overlaps(h.StartAt, h.EndAt, start, end)
}
