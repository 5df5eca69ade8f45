package domain

import "time"

// Slot represents a computed candidate time interval. Derived data: slots
// are generated on every request and never persisted.
type Slot struct {
	StartAt        time.Time
	EndAt          time.Time
	Available      bool
	AvailableSeats int
	TotalSeats     int
}

// IsFull returns true if the slot has no available seats
func (s *Slot) IsFull() bool {
	return s.AvailableSeats <= 0
}

// IsPartiallyAvailable returns true if the slot has some but not all seats available
func (s *Slot) IsPartiallyAvailable() bool {
	return s.AvailableSeats > 0 && s.AvailableSeats < s.TotalSeats
}

// OccupancyRate returns the occupancy rate as a percentage (0-100)
func (s *Slot) OccupancyRate() float64 {
	if s.TotalSeats == 0 {
		return 0
	}
	occupied := s.TotalSeats - s.AvailableSeats
	return float64(occupied) / float64(s.TotalSeats) * 100
}
