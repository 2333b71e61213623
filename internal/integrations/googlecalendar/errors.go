package googlecalendar

import "errors"

var (
	// ErrConflict возвращается, когда календарь отклонил вставку события (HTTP 409)
	ErrConflict = errors.New("googlecalendar client: event conflict")

	// ErrCalendarNotFound возвращается, когда календарь не существует или недоступен сервисному аккаунту
	ErrCalendarNotFound = errors.New("googlecalendar client: calendar not found")

	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("googlecalendar client: internal error")

	// ErrInvalidResponse возвращается при некорректном ответе API
	ErrInvalidResponse = errors.New("googlecalendar client: invalid response")
)
