package create_booking

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_booking: invalid input data")

	// ErrNonWorkingDay возвращается, когда магазин не работает в указанную дату
	ErrNonWorkingDay = errors.New("create_booking: store is closed on this date")

	// ErrSlotInPast возвращается, когда начало слота уже прошло
	ErrSlotInPast = errors.New("create_booking: slot start is in the past")

	// ErrInvalidTimeSlot возвращается, когда время не лежит на сетке слотов или выходит за рабочие часы
	ErrInvalidTimeSlot = errors.New("create_booking: invalid time slot")

	// ErrSlotNoLongerAvailable возвращается, когда слот заняли после получения доступности
	ErrSlotNoLongerAvailable = errors.New("create_booking: slot is no longer available")

	// ErrCommitFailed возвращается, когда не удалось проверить или записать бронирование (можно повторить)
	ErrCommitFailed = errors.New("create_booking: commit failed")
)
