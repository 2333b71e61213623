package googlecalendar

import (
	"encoding/base32"
	"fmt"
	"strings"
	"time"

	"google.golang.org/api/calendar/v3"

	"github.com/m04kA/SMC-SalonBookingService/internal/domain"
)

const (
	statusCancelled     = "cancelled"
	transparencyFree    = "transparent"
	bookingIDProperty   = "bookingId"
	clientPhoneProperty = "clientPhone"
	clientEmailProperty = "clientEmail"
)

// toBusyInterval конвертирует событие в занятый интервал.
// ok=false для событий, которые не занимают время
func toBusyInterval(ev *calendar.Event, loc *time.Location) (domain.BusyInterval, bool, error) {
	if ev == nil || ev.Status == statusCancelled || ev.Transparency == transparencyFree {
		return domain.BusyInterval{}, false, nil
	}

	start, err := parseEventTime(ev.Start, loc)
	if err != nil {
		return domain.BusyInterval{}, false, fmt.Errorf("start: %w", err)
	}
	end, err := parseEventTime(ev.End, loc)
	if err != nil {
		return domain.BusyInterval{}, false, fmt.Errorf("end: %w", err)
	}

	return domain.BusyInterval{Start: start, End: end}, true, nil
}

// parseEventTime событие на весь день задается датой (конец исключительный), обычное - RFC3339
func parseEventTime(t *calendar.EventDateTime, loc *time.Location) (time.Time, error) {
	if t == nil {
		return time.Time{}, fmt.Errorf("%w: missing event time", ErrInvalidResponse)
	}

	if t.DateTime != "" {
		parsed, err := time.Parse(time.RFC3339, t.DateTime)
		if err != nil {
			return time.Time{}, fmt.Errorf("%w: %v", ErrInvalidResponse, err)
		}
		return parsed.In(loc), nil
	}

	if t.Date != "" {
		parsed, err := time.ParseInLocation(domain.DateFormat, t.Date, loc)
		if err != nil {
			return time.Time{}, fmt.Errorf("%w: %v", ErrInvalidResponse, err)
		}
		return parsed, nil
	}

	return time.Time{}, fmt.Errorf("%w: empty event time", ErrInvalidResponse)
}

var eventIDEncoding = base32.HexEncoding.WithPadding(base32.NoPadding)

// eventIDFor ID события из ID бронирования. Calendar API принимает в ID только
// символы base32hex (0-9, a-v), поэтому повторная вставка того же бронирования дает 409
func eventIDFor(bookingID string) string {
	if bookingID == "" {
		return ""
	}
	return strings.ToLower(eventIDEncoding.EncodeToString([]byte(bookingID)))
}

// isBookingEvent проверяет, что событие создано для этого бронирования
func isBookingEvent(ev *calendar.Event, bookingID string) bool {
	if ev == nil || ev.Status == statusCancelled || ev.ExtendedProperties == nil {
		return false
	}
	return ev.ExtendedProperties.Private[bookingIDProperty] == bookingID
}

// toCalendarEvent формирует событие бронирования
func toCalendarEvent(ev *domain.CalendarEvent, loc *time.Location) *calendar.Event {
	private := map[string]string{
		bookingIDProperty: ev.BookingID,
	}
	if ev.Client.Phone != "" {
		private[clientPhoneProperty] = ev.Client.Phone
	}
	if ev.Client.Email != "" {
		private[clientEmailProperty] = ev.Client.Email
	}

	// Участников не добавляем: сервисный аккаунт без делегирования не может приглашать
	return &calendar.Event{
		Id:          eventIDFor(ev.BookingID),
		Summary:     ev.Summary,
		Description: ev.Description,
		Start: &calendar.EventDateTime{
			DateTime: ev.Start.In(loc).Format(time.RFC3339),
			TimeZone: loc.String(),
		},
		End: &calendar.EventDateTime{
			DateTime: ev.End.In(loc).Format(time.RFC3339),
			TimeZone: loc.String(),
		},
		ExtendedProperties: &calendar.EventExtendedProperties{
			Private: private,
		},
	}
}
