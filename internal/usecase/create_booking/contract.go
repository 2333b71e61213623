package create_booking

import (
	"context"
	"time"

	"github.com/m04kA/SMC-SalonBookingService/internal/domain"
)

// ScheduleProvider провайдер расписаний магазинов
type ScheduleProvider interface {
	GetScheduleConfig(ctx context.Context, storeID string) *domain.ScheduleConfig
}

// CalendarService источник занятых интервалов и запись бронирований в календарь
type CalendarService interface {
	ListBusyIntervals(ctx context.Context, calendarID string, date time.Time) ([]domain.BusyInterval, error)
	InsertBusyInterval(ctx context.Context, calendarID string, event *domain.CalendarEvent) (string, error)
}

// Metrics метрики бронирований
type Metrics interface {
	IncBookingCommit(result string)
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
