package get_busy_intervals

import (
	"context"
	"time"

	"github.com/m04kA/SMC-SalonBookingService/internal/domain"
)

type ScheduleProvider interface {
	GetScheduleConfig(ctx context.Context, storeID string) *domain.ScheduleConfig
}

type BusyIntervalSource interface {
	ListBusyIntervals(ctx context.Context, calendarID string, date time.Time) ([]domain.BusyInterval, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
