package domain

import "time"

// BookingStatus represents the status of a booking
type BookingStatus string

const (
	StatusPending   BookingStatus = "pending"
	StatusConfirmed BookingStatus = "confirmed"
	StatusCompleted BookingStatus = "completed"
	StatusCancelled BookingStatus = "cancelled"
)

// Booking represents a confirmed reservation of a resource for a time range.
// Bookings are created exclusively by the hold confirmation path; the rest
// of the engine only reads them.
type Booking struct {
	ID         int64
	ResourceID int64
	ServiceID  int64
	StartAt    time.Time
	EndAt      time.Time
	Quantity   int
	// Exclusive is true for single-seat services; the database exclusion
	// constraint on overlapping ranges applies only to exclusive rows.
	Exclusive bool
	Status    BookingStatus

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsActive returns true if the booking still occupies its time range
func (b *Booking) IsActive() bool {
	return b.Status == StatusPending || b.Status == StatusConfirmed
}

// IsTerminal returns true if the booking can no longer change state
func (b *Booking) IsTerminal() bool {
	return b.Status == StatusCompleted || b.Status == StatusCancelled
}

// OverlapsRange reports whether the booking occupies any part of [start, end)
func (b *Booking) OverlapsRange(start, end time.Time) bool {
	return Overlaps(b.StartAt, b.EndAt, start, end)
}

// ActiveStatuses booking statuses that occupy calendar time.
// Used when filtering the ledger for conflict checks.
var ActiveStatuses = []BookingStatus{
	StatusPending,
	StatusConfirmed,
}
