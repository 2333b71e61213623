package schedule

import (
	"context"

	"github.com/m04kA/SMC-SalonBookingService/internal/domain"
)

// ScheduleRepository источник расписаний магазинов (PostgreSQL или Firestore)
type ScheduleRepository interface {
	GetByStoreID(ctx context.Context, storeID string) (*domain.StoreSchedule, error)
}

// Metrics метрики подстановки значений по умолчанию
type Metrics interface {
	IncScheduleFallback(reason string)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
