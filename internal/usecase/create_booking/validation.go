package create_booking

import (
	"fmt"
	"net/mail"
	"strings"
	"time"

	"github.com/m04kA/SMC-SalonBookingService/internal/availability"
	"github.com/m04kA/SMC-SalonBookingService/internal/domain"
	"github.com/m04kA/SMC-SalonBookingService/pkg/types"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request, maxDurationMinutes int) error {
	if req.StoreID == "" {
		return fmt.Errorf("%w: storeID is required", ErrInvalidInput)
	}

	if len(req.StoreID) > domain.MaxStoreIDLength {
		return fmt.Errorf("%w: storeID is too long", ErrInvalidInput)
	}

	// Проверяем, что дата не является нулевой
	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	// Валидируем формат времени
	if _, err := types.NewTimeStringFromString(req.StartTime.String()); err != nil {
		return fmt.Errorf("%w: invalid startTime format: %v", ErrInvalidInput, err)
	}

	if req.DurationMinutes < 0 {
		return fmt.Errorf("%w: durationMinutes must not be negative", ErrInvalidInput)
	}

	if maxDurationMinutes > 0 && req.DurationMinutes > maxDurationMinutes {
		return fmt.Errorf("%w: durationMinutes must not exceed %d", ErrInvalidInput, maxDurationMinutes)
	}

	if strings.TrimSpace(req.ServiceName) == "" {
		return fmt.Errorf("%w: serviceName is required", ErrInvalidInput)
	}

	if len(req.ServiceName) > domain.MaxServiceNameLength {
		return fmt.Errorf("%w: serviceName is too long", ErrInvalidInput)
	}

	if strings.TrimSpace(req.Client.Name) == "" {
		return fmt.Errorf("%w: client name is required", ErrInvalidInput)
	}

	if len(req.Client.Name) > domain.MaxClientNameLength {
		return fmt.Errorf("%w: client name is too long", ErrInvalidInput)
	}

	if req.Client.Email != "" {
		if _, err := mail.ParseAddress(req.Client.Email); err != nil {
			return fmt.Errorf("%w: invalid client email", ErrInvalidInput)
		}
	}

	if req.Notes != nil && len(*req.Notes) > domain.MaxNotesLength {
		return fmt.Errorf("%w: notes must not exceed %d characters", ErrInvalidInput, domain.MaxNotesLength)
	}

	return nil
}

// validateSlot проверяет, что интервал [start, end) можно бронировать по расписанию магазина
func validateSlot(cfg *domain.ScheduleConfig, start, end, now time.Time) error {
	if cfg.IsNonWorkingDay(start) {
		return ErrNonWorkingDay
	}

	if start.Before(now) {
		return fmt.Errorf("%w: start %s, now %s", ErrSlotInPast, start.Format(time.RFC3339), now.Format(time.RFC3339))
	}

	// Начало должно лежать на сетке от времени открытия
	if !availability.IsAligned(cfg, start) {
		return fmt.Errorf("%w: start %s is not aligned to %d-minute grid from %s",
			ErrInvalidTimeSlot, start.Format(domain.TimeFormat), cfg.SlotIntervalMinutes, cfg.OpenTime)
	}

	// Весь интервал должен уместиться в рабочие часы
	dayStart, dayEnd := cfg.DayBounds(start)
	if start.Before(dayStart) || end.After(dayEnd) {
		return fmt.Errorf("%w: %s-%s is outside working hours %s-%s",
			ErrInvalidTimeSlot, start.Format(domain.TimeFormat), end.Format(domain.TimeFormat), cfg.OpenTime, cfg.CloseTime)
	}

	return nil
}

// buildEvent формирует событие календаря для бронирования
func buildEvent(bookingID string, req *Request, start, end time.Time) *domain.CalendarEvent {
	description := fmt.Sprintf("Agendamento feito por %s para o serviço: %s.", req.Client.Name, req.ServiceName)
	if req.Notes != nil && *req.Notes != "" {
		description += "\nDescrição: " + *req.Notes
	}

	return &domain.CalendarEvent{
		BookingID:   bookingID,
		Start:       start,
		End:         end,
		Summary:     fmt.Sprintf("Agendamento: %s - %s", req.Client.Name, req.ServiceName),
		Description: description,
		Client:      req.Client,
	}
}
