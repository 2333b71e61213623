package get_available_slots

import "errors"

// ErrInvalidInput возвращается при некорректных входных данных
var ErrInvalidInput = errors.New("get_available_slots: invalid input data")

// Коды предупреждений ответа
const (
	// WarningCalendarReadUnavailable календарь недоступен, занятые интервалы не учтены
	WarningCalendarReadUnavailable = "calendar_read_unavailable"
)
