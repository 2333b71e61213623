package get_busy_intervals

import (
	"time"

	"github.com/m04kA/SMC-SalonBookingService/internal/domain"
)

// BusyIntervalsResponse занятые интервалы календаря магазина за день
type BusyIntervalsResponse struct {
	Date      string         `json:"date"`
	StoreID   string         `json:"storeId"`
	Intervals []BusyInterval `json:"intervals"`
	Warnings  []string       `json:"warnings"`
}

// BusyInterval занятый интервал [start, end)
type BusyInterval struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// FromDomainIntervals конвертирует интервалы, время в RFC3339 часового пояса магазина
func FromDomainIntervals(storeID string, date time.Time, intervals []domain.BusyInterval, warnings []string) *BusyIntervalsResponse {
	items := make([]BusyInterval, len(intervals))
	for i, interval := range intervals {
		items[i] = BusyInterval{
			Start: interval.Start.In(date.Location()).Format(time.RFC3339),
			End:   interval.End.In(date.Location()).Format(time.RFC3339),
		}
	}

	if warnings == nil {
		warnings = []string{}
	}

	return &BusyIntervalsResponse{
		Date:      date.Format(domain.DateFormat),
		StoreID:   storeID,
		Intervals: items,
		Warnings:  warnings,
	}
}
