package calendar

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/sony/gobreaker"

	"github.com/m04kA/SMC-SalonBookingService/internal/domain"
	"github.com/m04kA/SMC-SalonBookingService/internal/integrations/googlecalendar"
	"github.com/m04kA/SMC-SalonBookingService/internal/integrations/memcalendar"
)

// Options параметры доступа к календарю
type Options struct {
	ReadTimeout        time.Duration
	WriteTimeout       time.Duration
	InsertAttempts     int
	BreakerMaxFailures uint32
	BreakerOpenTimeout time.Duration
}

// Service источник занятых интервалов магазина.
// Чтение идет через предохранитель отдельного календаря, запись - напрямую с собственным таймаутом
type Service struct {
	client  CalendarClient
	opts    Options
	metrics Metrics
	logger  Logger

	mu       sync.Mutex
	breakers map[string]*gobreaker.CircuitBreaker
}

// NewService создает новый экземпляр сервиса календаря
func NewService(
	client CalendarClient,
	opts Options,
	metrics Metrics,
	logger Logger,
) *Service {
	if opts.BreakerMaxFailures == 0 {
		opts.BreakerMaxFailures = 1
	}
	if opts.InsertAttempts < 1 {
		opts.InsertAttempts = 1
	}

	return &Service{
		client:   client,
		opts:     opts,
		metrics:  metrics,
		logger:   logger,
		breakers: make(map[string]*gobreaker.CircuitBreaker),
	}
}

// breakerFor возвращает предохранитель календаря, создавая его при первом обращении.
// Отказ одного календаря не отключает чтение остальных
func (s *Service) breakerFor(calendarID string) *gobreaker.CircuitBreaker {
	s.mu.Lock()
	defer s.mu.Unlock()

	if cb, ok := s.breakers[calendarID]; ok {
		return cb
	}

	maxFailures := s.opts.BreakerMaxFailures
	cb := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "calendar-read:" + calendarID,
		MaxRequests: 1,
		Timeout:     s.opts.BreakerOpenTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= maxFailures
		},
		// Несуществующий календарь - ошибка настройки магазина, а не отказ сервиса календаря
		IsSuccessful: func(err error) bool {
			return err == nil || errors.Is(err, googlecalendar.ErrCalendarNotFound)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			s.logger.Warn("calendar breaker %s: %s -> %s", name, from, to)
			s.metrics.SetCalendarBreakerState(calendarID, int(to))
		},
	})
	s.breakers[calendarID] = cb

	return cb
}

// ListBusyIntervals возвращает занятые интервалы календаря за календарный день date
// (полночь - полночь в часовом поясе date)
func (s *Service) ListBusyIntervals(ctx context.Context, calendarID string, date time.Time) ([]domain.BusyInterval, error) {
	if calendarID == "" {
		return nil, ErrCalendarNotConfigured
	}

	from := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	to := from.AddDate(0, 0, 1)

	readCtx, cancel := withTimeout(ctx, s.opts.ReadTimeout)
	defer cancel()

	breaker := s.breakerFor(calendarID)

	// Отмена запроса клиентом не считается отказом календаря
	var callerErr error
	result, err := breaker.Execute(func() (interface{}, error) {
		intervals, err := s.client.ListEvents(readCtx, calendarID, from, to)
		if err != nil && errors.Is(ctx.Err(), context.Canceled) {
			callerErr = err
			return nil, nil
		}
		return intervals, err
	})
	if callerErr != nil {
		return nil, callerErr
	}
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			s.logger.Warn("ListBusyIntervals: calendar=%s skipped, breaker is %s", calendarID, breaker.State())
		} else {
			s.logger.Error("ListBusyIntervals: calendar=%s date=%s read failed: %v", calendarID, from.Format(domain.DateFormat), err)
		}
		return nil, fmt.Errorf("%w: %v", ErrCalendarUnavailable, err)
	}

	intervals, _ := result.([]domain.BusyInterval)
	if intervals == nil {
		intervals = []domain.BusyInterval{}
	}
	return intervals, nil
}

// InsertBusyInterval создает событие бронирования и возвращает ID события.
// ID события выводится из ID бронирования, поэтому сбойную вставку можно повторить:
// если первая попытка дошла до календаря, повтор вернет то же событие
func (s *Service) InsertBusyInterval(ctx context.Context, calendarID string, event *domain.CalendarEvent) (string, error) {
	if calendarID == "" {
		return "", ErrCalendarNotConfigured
	}
	if !event.Start.Before(event.End) {
		return "", fmt.Errorf("%w: %s - %s", ErrInvalidInterval, event.Start, event.End)
	}

	for attempt := 1; ; attempt++ {
		eventID, err := s.insertOnce(ctx, calendarID, event)
		if err == nil {
			return eventID, nil
		}

		if errors.Is(err, googlecalendar.ErrConflict) || errors.Is(err, memcalendar.ErrConflict) {
			s.logger.Warn("InsertBusyInterval: calendar=%s rejected booking=%s: %v", calendarID, event.BookingID, err)
			return "", fmt.Errorf("%w: %v", ErrConflict, err)
		}

		if attempt >= s.opts.InsertAttempts || ctx.Err() != nil {
			s.logger.Error("InsertBusyInterval: calendar=%s booking=%s insert failed after %d attempt(s): %v",
				calendarID, event.BookingID, attempt, err)
			return "", fmt.Errorf("%w: %v", ErrCalendarUnavailable, err)
		}

		s.logger.Warn("InsertBusyInterval: calendar=%s booking=%s attempt %d failed, retrying: %v",
			calendarID, event.BookingID, attempt, err)
	}
}

func (s *Service) insertOnce(ctx context.Context, calendarID string, event *domain.CalendarEvent) (string, error) {
	writeCtx, cancel := withTimeout(ctx, s.opts.WriteTimeout)
	defer cancel()

	return s.client.InsertEvent(writeCtx, calendarID, event)
}

// BreakerState наихудшее состояние среди предохранителей календарей
func (s *Service) BreakerState() string {
	s.mu.Lock()
	defer s.mu.Unlock()

	worst := gobreaker.StateClosed
	for _, cb := range s.breakers {
		switch state := cb.State(); {
		case state == gobreaker.StateOpen:
			return state.String()
		case state == gobreaker.StateHalfOpen:
			worst = state
		}
	}
	return worst.String()
}

// calendarBreakerState состояние предохранителя конкретного календаря
func (s *Service) calendarBreakerState(calendarID string) string {
	s.mu.Lock()
	cb, ok := s.breakers[calendarID]
	s.mu.Unlock()

	if !ok {
		return gobreaker.StateClosed.String()
	}
	return cb.State().String()
}

func withTimeout(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, timeout)
}
