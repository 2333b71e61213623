package memcalendar

import "errors"

var (
	// ErrConflict возвращается при вставке события, пересекающегося с существующим
	ErrConflict = errors.New("memcalendar: event overlaps existing event")

	// ErrInvalidInterval возвращается для пустого или перевернутого интервала
	ErrInvalidInterval = errors.New("memcalendar: invalid interval")
)
