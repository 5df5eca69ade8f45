package domain

import (
	"time"

	"github.com/m04kA/SMC-ScheduleService/pkg/types"
)

// AvailabilityWindow represents a recurring weekly open-hours window for a
// resource. Reference data: mutated by configuration, never by booking traffic.
type AvailabilityWindow struct {
	ID            int64
	ResourceID    int64
	ResourceClass string
	DayOfWeek     int // 0 = Sunday ... 6 = Saturday, matching time.Weekday
	StartTime     types.TimeString
	EndTime       types.TimeString
	Location      string
	IsAvailable   bool
}

// Bounds resolves the window to concrete timestamps on the given date
func (w *AvailabilityWindow) Bounds(date time.Time) (start, end time.Time, err error) {
	start, err = w.StartTime.OnDate(date)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	end, err = w.EndTime.OnDate(date)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	return start, end, nil
}
