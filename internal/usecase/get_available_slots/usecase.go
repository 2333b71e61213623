package get_available_slots

import (
	"context"
	"errors"
	"time"

	"github.com/m04kA/SMC-SalonBookingService/internal/availability"
	"github.com/m04kA/SMC-SalonBookingService/internal/domain"
	calendarService "github.com/m04kA/SMC-SalonBookingService/internal/service/calendar"
)

const (
	degradedUnavailable   = "unavailable"
	degradedNotConfigured = "not_configured"
)

// UseCase use case для получения слотов магазина на дату
type UseCase struct {
	scheduleProvider ScheduleProvider
	busySource       BusyIntervalSource
	metrics          Metrics
	timeProvider     TimeProvider
	logger           Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	scheduleProvider ScheduleProvider,
	busySource BusyIntervalSource,
	metrics Metrics,
	logger Logger,
) *UseCase {
	return &UseCase{
		scheduleProvider: scheduleProvider,
		busySource:       busySource,
		metrics:          metrics,
		timeProvider:     &RealTimeProvider{},
		logger:           logger,
	}
}

// Execute выполняет use case получения слотов.
// Недоступность календаря не является ошибкой: слоты считаются без занятых интервалов, в ответ добавляется предупреждение
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetAvailableSlots: store=%s, date=%s", req.StoreID, req.Date.Format(domain.DateFormat))

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetAvailableSlots: validation failed: %v", err)
		return nil, err
	}

	date := time.Date(req.Date.Year(), req.Date.Month(), req.Date.Day(), 0, 0, 0, 0, req.Date.Location())

	// 2. Получаем текущее время
	now := uc.timeProvider.Now()

	// 3. Получаем расписание магазина (всегда есть, при необходимости - по умолчанию)
	cfg := uc.scheduleProvider.GetScheduleConfig(ctx, req.StoreID)

	response := &Response{
		Date:                date,
		StoreID:             req.StoreID,
		SlotIntervalMinutes: cfg.SlotIntervalMinutes,
		Slots:               []domain.Slot{},
		Warnings:            []string{},
	}

	// 4. Нерабочий день: пустой список, календарь не запрашиваем
	if cfg.IsNonWorkingDay(date) {
		uc.logger.Info("GetAvailableSlots: store=%s is closed on %s", req.StoreID, date.Format(domain.DateFormat))
		uc.metrics.ObserveSlotsGenerated(0)
		return response, nil
	}

	// 5. Получаем занятые интервалы, при ошибке деградируем до пустого списка
	busy, err := uc.busySource.ListBusyIntervals(ctx, cfg.CalendarID, date)
	if err != nil {
		reason := degradedUnavailable
		if errors.Is(err, calendarService.ErrCalendarNotConfigured) {
			reason = degradedNotConfigured
		}
		uc.logger.Warn("GetAvailableSlots: store=%s calendar read degraded (%s): %v", req.StoreID, reason, err)
		uc.metrics.IncCalendarReadDegraded(reason)

		busy = nil
		response.Warnings = append(response.Warnings, WarningCalendarReadUnavailable)
	}

	// 6. Генерируем слоты
	response.Slots = availability.GenerateSlots(cfg, date, busy, now)
	uc.metrics.ObserveSlotsGenerated(len(response.Slots))

	uc.logger.Info("GetAvailableSlots: store=%s date=%s generated %d slots", req.StoreID, date.Format(domain.DateFormat), len(response.Slots))
	return response, nil
}
