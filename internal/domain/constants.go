package domain

import "github.com/m04kA/SMC-SalonBookingService/pkg/types"

// Default schedule values
const (
	DefaultOpenTime            types.TimeString = "08:00"
	DefaultCloseTime           types.TimeString = "22:00"
	DefaultLunchStart          types.TimeString = "12:00"
	DefaultLunchEnd            types.TimeString = "13:00"
	DefaultSlotIntervalMinutes                  = 30
	DefaultServiceDuration                      = 60
)

// Business validation constants
const (
	MaxNotesLength       = 500
	MaxClientNameLength  = 200
	MaxServiceNameLength = 200
	MaxStoreIDLength     = 128
)

// Schedule fallback groups
const (
	FallbackHours    = "hours"
	FallbackLunch    = "lunch"
	FallbackInterval = "interval"
)

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)
