package get_store_schedule

import (
	"context"

	"github.com/m04kA/SMC-SalonBookingService/internal/domain"
)

type ScheduleProvider interface {
	GetScheduleConfig(ctx context.Context, storeID string) *domain.ScheduleConfig
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
