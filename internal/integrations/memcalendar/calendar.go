// Package memcalendar календарь в памяти для локальной разработки и тестов.
// В отличие от Google Calendar отклоняет пересекающиеся события.
// Повторная вставка того же бронирования возвращает уже созданное событие, как и googlecalendar
package memcalendar

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-SalonBookingService/internal/domain"
)

type storedEvent struct {
	id    string
	event domain.CalendarEvent
}

// Calendar потокобезопасный набор событий по календарям
type Calendar struct {
	mu     sync.RWMutex
	events map[string][]storedEvent
}

// New создает пустой календарь
func New() *Calendar {
	return &Calendar{events: make(map[string][]storedEvent)}
}

// ListEvents возвращает интервалы событий, пересекающихся с окном [from, to), по возрастанию начала
func (c *Calendar) ListEvents(ctx context.Context, calendarID string, from, to time.Time) ([]domain.BusyInterval, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	c.mu.RLock()
	defer c.mu.RUnlock()

	intervals := make([]domain.BusyInterval, 0)
	for _, stored := range c.events[calendarID] {
		interval := domain.BusyInterval{Start: stored.event.Start, End: stored.event.End}
		if interval.Overlaps(from, to) {
			intervals = append(intervals, interval)
		}
	}

	sort.Slice(intervals, func(i, j int) bool {
		return intervals[i].Start.Before(intervals[j].Start)
	})

	return intervals, nil
}

// InsertEvent сохраняет событие, если оно не пересекается с уже существующими.
// Для уже сохраненного BookingID возвращает ID существующего события
func (c *Calendar) InsertEvent(ctx context.Context, calendarID string, event *domain.CalendarEvent) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if !event.Start.Before(event.End) {
		return "", fmt.Errorf("%w: %s - %s", ErrInvalidInterval, event.Start, event.End)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	for _, stored := range c.events[calendarID] {
		if event.BookingID != "" && stored.event.BookingID == event.BookingID {
			return stored.id, nil
		}
	}

	for _, stored := range c.events[calendarID] {
		existing := domain.BusyInterval{Start: stored.event.Start, End: stored.event.End}
		if existing.Overlaps(event.Start, event.End) {
			return "", fmt.Errorf("%w: event=%s", ErrConflict, stored.id)
		}
	}

	id := "mem-" + uuid.NewString()
	c.events[calendarID] = append(c.events[calendarID], storedEvent{id: id, event: *event})

	return id, nil
}

// Block добавляет занятый интервал без проверки пересечений (бронирования, сделанные вне сервиса)
func (c *Calendar) Block(calendarID string, start, end time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.events[calendarID] = append(c.events[calendarID], storedEvent{
		id:    "ext-" + uuid.NewString(),
		event: domain.CalendarEvent{Start: start, End: end, Summary: "external"},
	})
}

// Count количество событий календаря
func (c *Calendar) Count(calendarID string) int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.events[calendarID])
}
