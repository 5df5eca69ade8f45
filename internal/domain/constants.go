package domain

// Default configuration values
const (
	DefaultGranularityMinutes = 30
	DefaultTotalCapacity      = 1
	DefaultHoldTTLMinutes     = 10
	DefaultQuantity           = 1
)

// Business validation constants
const (
	MinDurationMinutes    = 5
	MaxDurationMinutes    = 480 // 8 hours
	MinGranularityMinutes = 5
	MaxGranularityMinutes = 240
	MinQuantity           = 1
	MaxQuantity           = 100
	MaxOwnerTokenLength   = 128
)

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)
