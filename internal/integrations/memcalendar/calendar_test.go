package memcalendar

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SalonBookingService/internal/domain"
)

var day = time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)

func event(fromHour, toHour int) *domain.CalendarEvent {
	return &domain.CalendarEvent{
		Start: day.Add(time.Duration(fromHour) * time.Hour),
		End:   day.Add(time.Duration(toHour) * time.Hour),
	}
}

func TestCalendar_InsertAndList(t *testing.T) {
	cal := New()
	ctx := context.Background()

	_, err := cal.InsertEvent(ctx, "salon-1", event(14, 15))
	require.NoError(t, err)
	_, err = cal.InsertEvent(ctx, "salon-1", event(9, 10))
	require.NoError(t, err)
	_, err = cal.InsertEvent(ctx, "salon-2", event(9, 10))
	require.NoError(t, err)

	intervals, err := cal.ListEvents(ctx, "salon-1", day, day.AddDate(0, 0, 1))
	require.NoError(t, err)
	require.Len(t, intervals, 2)
	assert.Equal(t, day.Add(9*time.Hour), intervals[0].Start)
	assert.Equal(t, day.Add(14*time.Hour), intervals[1].Start)

	intervals, err = cal.ListEvents(ctx, "salon-1", day.AddDate(0, 0, 1), day.AddDate(0, 0, 2))
	require.NoError(t, err)
	assert.Empty(t, intervals)
}

func TestCalendar_InsertRejectsOverlap(t *testing.T) {
	cal := New()
	ctx := context.Background()

	_, err := cal.InsertEvent(ctx, "salon-1", event(10, 12))
	require.NoError(t, err)

	_, err = cal.InsertEvent(ctx, "salon-1", event(11, 13))
	assert.ErrorIs(t, err, ErrConflict)

	_, err = cal.InsertEvent(ctx, "salon-1", event(12, 13))
	assert.NoError(t, err, "adjacent events do not overlap")

	_, err = cal.InsertEvent(ctx, "salon-1", event(13, 13))
	assert.ErrorIs(t, err, ErrInvalidInterval)
}

func TestCalendar_InsertSameBookingIsIdempotent(t *testing.T) {
	cal := New()
	ctx := context.Background()

	ev := event(10, 11)
	ev.BookingID = "b-1"

	first, err := cal.InsertEvent(ctx, "salon-1", ev)
	require.NoError(t, err)

	second, err := cal.InsertEvent(ctx, "salon-1", ev)
	require.NoError(t, err)
	assert.Equal(t, first, second)
	assert.Equal(t, 1, cal.Count("salon-1"))

	other := event(10, 11)
	other.BookingID = "b-2"
	_, err = cal.InsertEvent(ctx, "salon-1", other)
	assert.ErrorIs(t, err, ErrConflict)
}

func TestCalendar_ConcurrentInsertsSameSpan(t *testing.T) {
	cal := New()
	ctx := context.Background()

	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		succeeded int
	)
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := cal.InsertEvent(ctx, "salon-1", event(10, 11)); err == nil {
				mu.Lock()
				succeeded++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, succeeded)
	assert.Equal(t, 1, cal.Count("salon-1"))
}

func TestCalendar_CancelledContext(t *testing.T) {
	cal := New()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := cal.ListEvents(ctx, "salon-1", day, day.AddDate(0, 0, 1))
	assert.ErrorIs(t, err, context.Canceled)
}
