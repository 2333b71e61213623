package calendar

import "errors"

var (
	// ErrCalendarUnavailable возвращается, когда календарь не ответил, ответил ошибкой или отключен предохранителем
	ErrCalendarUnavailable = errors.New("calendar: unavailable")

	// ErrCalendarNotConfigured возвращается, когда у магазина нет календаря
	ErrCalendarNotConfigured = errors.New("calendar: calendar id is not configured")

	// ErrConflict возвращается, когда календарь отклонил событие из-за пересечения
	ErrConflict = errors.New("calendar: event conflicts with existing event")

	// ErrInvalidInterval возвращается для пустого интервала события
	ErrInvalidInterval = errors.New("calendar: invalid event interval")
)
