package create_booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-SalonBookingService/internal/availability"
	"github.com/m04kA/SMC-SalonBookingService/internal/domain"
	calendarService "github.com/m04kA/SMC-SalonBookingService/internal/service/calendar"
)

const (
	resultCreated  = "created"
	resultConflict = "conflict"
	resultFailed   = "failed"
	resultRejected = "rejected"
)

// UseCase use case для бронирования слота.
// Подтверждением бронирования является созданное событие во внешнем календаре
type UseCase struct {
	scheduleProvider   ScheduleProvider
	calendar           CalendarService
	metrics            Metrics
	maxDurationMinutes int
	timeProvider       TimeProvider
	logger             Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	scheduleProvider ScheduleProvider,
	calendar CalendarService,
	metrics Metrics,
	maxDurationMinutes int,
	logger Logger,
) *UseCase {
	return &UseCase{
		scheduleProvider:   scheduleProvider,
		calendar:           calendar,
		metrics:            metrics,
		maxDurationMinutes: maxDurationMinutes,
		timeProvider:       &RealTimeProvider{},
		logger:             logger,
	}
}

// Execute выполняет use case бронирования.
// Доступность перепроверяется по свежим данным календаря, блокировки не берутся:
// окно гонки между проверкой и записью сужается, но не закрывается
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateBooking: store=%s, date=%s, time=%s, duration=%d, service=%q",
		req.StoreID, req.Date.Format(domain.DateFormat), req.StartTime, req.DurationMinutes, req.ServiceName)

	// 1. Валидация входных данных
	if err := validateRequest(req, uc.maxDurationMinutes); err != nil {
		uc.logger.Warn("CreateBooking: validation failed: %v", err)
		uc.metrics.IncBookingCommit(resultRejected)
		return nil, err
	}

	duration := req.DurationMinutes
	if duration == 0 {
		duration = domain.DefaultServiceDuration
	}

	// 2. Получаем текущее время
	now := uc.timeProvider.Now()

	// 3. Получаем расписание магазина
	cfg := uc.scheduleProvider.GetScheduleConfig(ctx, req.StoreID)

	start := req.StartTime.On(req.Date)
	end := start.Add(time.Duration(duration) * time.Minute)

	// 4. Проверяем, что слот допустим по расписанию
	if err := validateSlot(cfg, start, end, now); err != nil {
		uc.logger.Warn("CreateBooking: store=%s slot rejected: %v", req.StoreID, err)
		uc.metrics.IncBookingCommit(resultRejected)
		return nil, err
	}

	// 5. Перечитываем занятые интервалы: без свежих данных бронировать нельзя
	busy, err := uc.calendar.ListBusyIntervals(ctx, cfg.CalendarID, start)
	if err != nil {
		uc.logger.Error("CreateBooking: store=%s failed to re-read calendar=%s: %v", req.StoreID, cfg.CalendarID, err)
		uc.metrics.IncBookingCommit(resultFailed)
		return nil, fmt.Errorf("%w: failed to re-read calendar: %v", ErrCommitFailed, err)
	}

	// 6. Проверяем пересечение всего интервала с обедом и занятыми интервалами
	if !availability.IsSpanFree(cfg, start, end, busy) {
		uc.logger.Warn("CreateBooking: store=%s span %s-%s is no longer free",
			req.StoreID, start.Format(domain.TimeFormat), end.Format(domain.TimeFormat))
		uc.metrics.IncBookingCommit(resultConflict)
		return nil, ErrSlotNoLongerAvailable
	}

	// 7. Записываем событие в календарь
	bookingID := uuid.NewString()
	eventID, err := uc.calendar.InsertBusyInterval(ctx, cfg.CalendarID, buildEvent(bookingID, req, start, end))
	if err != nil {
		if errors.Is(err, calendarService.ErrConflict) {
			uc.logger.Warn("CreateBooking: store=%s calendar rejected booking=%s as conflicting", req.StoreID, bookingID)
			uc.metrics.IncBookingCommit(resultConflict)
			return nil, ErrSlotNoLongerAvailable
		}
		uc.logger.Error("CreateBooking: store=%s failed to insert booking=%s: %v", req.StoreID, bookingID, err)
		uc.metrics.IncBookingCommit(resultFailed)
		return nil, fmt.Errorf("%w: failed to insert event: %v", ErrCommitFailed, err)
	}

	booking := &domain.Booking{
		ID:              bookingID,
		EventID:         eventID,
		StoreID:         req.StoreID,
		CalendarID:      cfg.CalendarID,
		Start:           start,
		End:             end,
		DurationMinutes: duration,
		ServiceName:     req.ServiceName,
		Client:          req.Client,
		Notes:           req.Notes,
		CreatedAt:       now,
	}

	uc.metrics.IncBookingCommit(resultCreated)
	uc.logger.Info("CreateBooking: store=%s booking=%s committed as event=%s (%s-%s)",
		req.StoreID, bookingID, eventID, start.Format(domain.TimeFormat), end.Format(domain.TimeFormat))

	return FromDomainBooking(booking), nil
}
