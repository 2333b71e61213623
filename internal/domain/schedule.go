package domain

import (
	"sort"
	"time"

	"github.com/m04kA/SMC-SalonBookingService/pkg/types"
)

// StoreSchedule is a store's scheduling record as persisted.
// Nil fields were not set for the store and take the default value.
type StoreSchedule struct {
	StoreID             string
	CalendarID          string
	OpenTime            *types.TimeString
	CloseTime           *types.TimeString
	LunchStart          *types.TimeString
	LunchEnd            *types.TimeString
	SlotIntervalMinutes *int
	NonWorkingDays      []string // YYYY-MM-DD, store-local
}

// ScheduleConfig is the effective schedule used for one slot computation.
type ScheduleConfig struct {
	StoreID             string
	CalendarID          string
	OpenTime            types.TimeString
	CloseTime           types.TimeString
	LunchStart          types.TimeString
	LunchEnd            types.TimeString
	SlotIntervalMinutes int
	NonWorkingDays      map[string]struct{}

	// Source tells where the values came from (see ScheduleSource*)
	Source string
	// Fallbacks lists the field groups replaced by defaults
	Fallbacks []string
}

const (
	ScheduleSourceStored  = "stored"
	ScheduleSourceDefault = "default"
)

// DefaultScheduleConfig returns the schedule used when a store has no usable config.
func DefaultScheduleConfig(storeID string) *ScheduleConfig {
	return &ScheduleConfig{
		StoreID:             storeID,
		OpenTime:            DefaultOpenTime,
		CloseTime:           DefaultCloseTime,
		LunchStart:          DefaultLunchStart,
		LunchEnd:            DefaultLunchEnd,
		SlotIntervalMinutes: DefaultSlotIntervalMinutes,
		NonWorkingDays:      map[string]struct{}{},
		Source:              ScheduleSourceDefault,
	}
}

// IsNonWorkingDay reports whether the store-local date is fully excluded.
func (c *ScheduleConfig) IsNonWorkingDay(date time.Time) bool {
	_, ok := c.NonWorkingDays[date.Format(DateFormat)]
	return ok
}

// HasLunchBreak reports whether the lunch window excludes any time.
func (c *ScheduleConfig) HasLunchBreak() bool {
	return c.LunchStart.IsBefore(c.LunchEnd)
}

// Interval returns the slot width as a duration.
func (c *ScheduleConfig) Interval() time.Duration {
	return time.Duration(c.SlotIntervalMinutes) * time.Minute
}

// DayBounds returns the operating window of the given date.
func (c *ScheduleConfig) DayBounds(date time.Time) (time.Time, time.Time) {
	return c.OpenTime.On(date), c.CloseTime.On(date)
}

// LunchBounds returns the lunch window of the given date.
func (c *ScheduleConfig) LunchBounds(date time.Time) (time.Time, time.Time) {
	return c.LunchStart.On(date), c.LunchEnd.On(date)
}

// SortedNonWorkingDays returns the non-working days in ascending order.
func (c *ScheduleConfig) SortedNonWorkingDays() []string {
	days := make([]string, 0, len(c.NonWorkingDays))
	for day := range c.NonWorkingDays {
		days = append(days, day)
	}
	sort.Strings(days)
	return days
}
