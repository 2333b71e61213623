package get_available_slots

import (
	"context"
	"time"

	"github.com/m04kA/SMC-SalonBookingService/internal/domain"
)

// ScheduleProvider провайдер расписаний магазинов
type ScheduleProvider interface {
	GetScheduleConfig(ctx context.Context, storeID string) *domain.ScheduleConfig
}

// BusyIntervalSource источник занятых интервалов календаря
type BusyIntervalSource interface {
	ListBusyIntervals(ctx context.Context, calendarID string, date time.Time) ([]domain.BusyInterval, error)
}

// Metrics метрики расчета доступности
type Metrics interface {
	ObserveSlotsGenerated(count int)
	IncCalendarReadDegraded(reason string)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
