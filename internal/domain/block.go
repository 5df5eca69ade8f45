package domain

import "time"

// CalendarBlock represents a manual blackout range on a resource's calendar
// (vacation, maintenance). Externally managed, read-only to the engine.
type CalendarBlock struct {
	ID         int64
	ResourceID int64
	StartAt    time.Time
	EndAt      time.Time
	Reason     *string
}

// OverlapsRange reports whether the block covers any part of [start, end)
func (b *CalendarBlock) OverlapsRange(start, end time.Time) bool {
	return Overlaps(b.StartAt, b.EndAt, start, end)
}
