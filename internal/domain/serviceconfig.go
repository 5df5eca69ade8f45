package domain

import "time"

// ServiceConfig represents per-service booking configuration: buffer times
// around the nominal duration and seat capacity for multi-seat services.
// Read-only reference data.
type ServiceConfig struct {
	ID        int64
	ServiceID int64
	// Buffers in minutes around the nominal service duration
	PreMinutes    int
	PostMinutes   int
	TravelMinutes int
	// TotalCapacity is the number of simultaneous seats for capacity-based
	// services; ignored when CapacityBased is false.
	TotalCapacity int
	CapacityBased bool

	CreatedAt time.Time
	UpdatedAt time.Time
}

// DefaultServiceConfig returns the configuration used when a service has
// none: zero buffers, single seat.
func DefaultServiceConfig(serviceID int64) *ServiceConfig {
	return &ServiceConfig{
		ServiceID:     serviceID,
		TotalCapacity: DefaultTotalCapacity,
	}
}

// OccupiedDurationMinutes returns the duration a slot occupies on the
// calendar: nominal duration plus pre and post buffers. Travel time is not
// part of the visible slot; see ReservedDurationMinutes.
func (c *ServiceConfig) OccupiedDurationMinutes(baseDurationMinutes int) int {
	return baseDurationMinutes + c.PreMinutes + c.PostMinutes
}

// ReservedDurationMinutes returns the full duration reserved on the calendar
// when a hold is created, including travel time appended past the occupied
// duration.
func (c *ServiceConfig) ReservedDurationMinutes(baseDurationMinutes int) int {
	return c.OccupiedDurationMinutes(baseDurationMinutes) + c.TravelMinutes
}

// EffectiveCapacity returns the seat count conflict checks compare against:
// TotalCapacity for capacity-based services, a single seat otherwise.
func (c *ServiceConfig) EffectiveCapacity() int {
	if c.CapacityBased && c.TotalCapacity > 0 {
		return c.TotalCapacity
	}
	return 1
}
