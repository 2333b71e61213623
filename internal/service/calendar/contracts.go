package calendar

import (
	"context"
	"time"

	"github.com/m04kA/SMC-SalonBookingService/internal/domain"
)

// CalendarClient клиент внешнего календаря (Google Calendar или календарь в памяти)
type CalendarClient interface {
	ListEvents(ctx context.Context, calendarID string, from, to time.Time) ([]domain.BusyInterval, error)
	InsertEvent(ctx context.Context, calendarID string, event *domain.CalendarEvent) (string, error)
}

// Metrics метрики доступности календаря
type Metrics interface {
	SetCalendarBreakerState(calendarID string, state int)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
