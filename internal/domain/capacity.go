package domain

import "time"

// OverlappingSeats sums the quantities of active bookings and unexpired
// holds that intersect [start, end). Entries that merely touch the range
// boundaries are not counted.
func OverlappingSeats(bookings []*Booking, holds []*Hold, start, end time.Time) int {
	seats := 0

	for _, b := range bookings {
		if !b.IsActive() {
			continue
		}
		if b.OverlapsRange(start, end) {
			seats += b.Quantity
		}
	}

	for _, h := range holds {
		if h.OverlapsRange(start, end) {
			seats += h.Quantity
		}
	}

	return seats
}

// RemainingCapacity returns total minus the seats occupied by overlapping
// bookings and holds. The result may be negative when stale data produced
// transient overbooking; callers clamp at zero and log the anomaly.
func RemainingCapacity(total int, bookings []*Booking, holds []*Hold, start, end time.Time) int {
	return total - OverlappingSeats(bookings, holds, start, end)
}
