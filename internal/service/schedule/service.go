package schedule

import (
	"context"
	"errors"
	"time"

	"github.com/m04kA/SMC-SalonBookingService/internal/domain"
	scheduleRepo "github.com/m04kA/SMC-SalonBookingService/internal/infra/storage/schedule"
)

const (
	reasonStoreNotFound = "store_not_found"
	reasonLookupFailed  = "lookup_failed"
	reasonTimeout       = "timeout"
)

// Service провайдер расписаний магазинов.
// Никогда не возвращает ошибку: при отсутствии или недоступности расписания используются значения по умолчанию
type Service struct {
	repo              ScheduleRepository
	timeout           time.Duration
	defaultCalendarID string
	metrics           Metrics
	logger            Logger
}

// NewService создает новый экземпляр провайдера расписаний
func NewService(
	repo ScheduleRepository,
	timeout time.Duration,
	defaultCalendarID string,
	metrics Metrics,
	logger Logger,
) *Service {
	return &Service{
		repo:              repo,
		timeout:           timeout,
		defaultCalendarID: defaultCalendarID,
		metrics:           metrics,
		logger:            logger,
	}
}

// GetScheduleConfig возвращает действующее расписание магазина
func (s *Service) GetScheduleConfig(ctx context.Context, storeID string) *domain.ScheduleConfig {
	// 1. Читаем расписание с ограничением по времени
	lookupCtx := ctx
	if s.timeout > 0 {
		var cancel context.CancelFunc
		lookupCtx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	stored, err := s.repo.GetByStoreID(lookupCtx, storeID)
	if err != nil {
		// 2. Любая ошибка чтения означает расписание по умолчанию
		switch {
		case errors.Is(err, scheduleRepo.ErrStoreNotFound):
			s.logger.Info("GetScheduleConfig: store=%s has no schedule, using defaults", storeID)
			s.metrics.IncScheduleFallback(reasonStoreNotFound)
		case errors.Is(lookupCtx.Err(), context.DeadlineExceeded):
			s.logger.Warn("GetScheduleConfig: schedule lookup for store=%s timed out after %s, using defaults", storeID, s.timeout)
			s.metrics.IncScheduleFallback(reasonTimeout)
		default:
			s.logger.Warn("GetScheduleConfig: failed to load schedule for store=%s, using defaults: %v", storeID, err)
			s.metrics.IncScheduleFallback(reasonLookupFailed)
		}

		cfg := domain.DefaultScheduleConfig(storeID)
		cfg.CalendarID = s.defaultCalendarID
		return cfg
	}

	// 3. Собираем конфигурацию с подстановкой незаполненных и некорректных полей
	cfg := s.buildConfig(storeID, stored)
	for _, group := range cfg.Fallbacks {
		s.metrics.IncScheduleFallback(group)
	}
	if len(cfg.Fallbacks) > 0 {
		s.logger.Warn("GetScheduleConfig: store=%s has invalid schedule fields %v, defaults applied", storeID, cfg.Fallbacks)
	}

	return cfg
}

// buildConfig применяет значения по умолчанию по полям и по группам инвариантов:
// open < close, lunchStart <= lunchEnd, interval > 0
func (s *Service) buildConfig(storeID string, stored *domain.StoreSchedule) *domain.ScheduleConfig {
	cfg := domain.DefaultScheduleConfig(storeID)
	cfg.Source = domain.ScheduleSourceStored

	cfg.CalendarID = stored.CalendarID
	if cfg.CalendarID == "" {
		cfg.CalendarID = s.defaultCalendarID
	}

	if stored.OpenTime != nil {
		cfg.OpenTime = *stored.OpenTime
	}
	if stored.CloseTime != nil {
		cfg.CloseTime = *stored.CloseTime
	}
	if !cfg.OpenTime.IsBefore(cfg.CloseTime) {
		cfg.OpenTime = domain.DefaultOpenTime
		cfg.CloseTime = domain.DefaultCloseTime
		cfg.Fallbacks = append(cfg.Fallbacks, domain.FallbackHours)
	}

	if stored.LunchStart != nil {
		cfg.LunchStart = *stored.LunchStart
	}
	if stored.LunchEnd != nil {
		cfg.LunchEnd = *stored.LunchEnd
	}
	if cfg.LunchStart.IsAfter(cfg.LunchEnd) {
		cfg.LunchStart = domain.DefaultLunchStart
		cfg.LunchEnd = domain.DefaultLunchEnd
		cfg.Fallbacks = append(cfg.Fallbacks, domain.FallbackLunch)
	}

	if stored.SlotIntervalMinutes != nil {
		if *stored.SlotIntervalMinutes > 0 {
			cfg.SlotIntervalMinutes = *stored.SlotIntervalMinutes
		} else {
			cfg.Fallbacks = append(cfg.Fallbacks, domain.FallbackInterval)
		}
	}

	for _, day := range stored.NonWorkingDays {
		parsed, err := time.Parse(domain.DateFormat, day)
		if err != nil {
			s.logger.Warn("GetScheduleConfig: store=%s has invalid non-working day %q, skipped", storeID, day)
			continue
		}
		cfg.NonWorkingDays[parsed.Format(domain.DateFormat)] = struct{}{}
	}

	return cfg
}
