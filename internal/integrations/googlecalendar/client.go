package googlecalendar

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"google.golang.org/api/calendar/v3"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"

	"github.com/m04kA/SMC-SalonBookingService/internal/domain"
)

const maxResultsPerPage = 250

// Client клиент Google Calendar API v3
type Client struct {
	service  *calendar.Service
	location *time.Location
	log      Logger
}

// NewClient создает клиента с ключом сервисного аккаунта
func NewClient(ctx context.Context, credentialsFile string, location *time.Location, log Logger) (*Client, error) {
	opts := []option.ClientOption{option.WithScopes(calendar.CalendarEventsScope)}
	if credentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(credentialsFile))
	}
	return NewClientWithOptions(ctx, location, log, opts...)
}

// NewClientWithOptions создает клиента с произвольными опциями (эндпоинт, http-клиент)
func NewClientWithOptions(ctx context.Context, location *time.Location, log Logger, opts ...option.ClientOption) (*Client, error) {
	service, err := calendar.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create calendar service: %v", ErrInternal, err)
	}

	return &Client{
		service:  service,
		location: location,
		log:      log,
	}, nil
}

// ListEvents возвращает занятые интервалы календаря в окне [from, to).
// Повторяющиеся события разворачиваются, отмененные и прозрачные (free) события пропускаются
func (c *Client) ListEvents(ctx context.Context, calendarID string, from, to time.Time) ([]domain.BusyInterval, error) {
	intervals := make([]domain.BusyInterval, 0)
	pageToken := ""

	for {
		call := c.service.Events.List(calendarID).
			TimeMin(from.Format(time.RFC3339)).
			TimeMax(to.Format(time.RFC3339)).
			SingleEvents(true).
			OrderBy("startTime").
			ShowDeleted(false).
			MaxResults(maxResultsPerPage).
			Context(ctx)
		if pageToken != "" {
			call = call.PageToken(pageToken)
		}

		events, err := call.Do()
		if err != nil {
			return nil, c.mapError("list events", calendarID, err)
		}

		for _, item := range events.Items {
			interval, ok, err := toBusyInterval(item, c.location)
			if err != nil {
				c.log.Warn("ListEvents: calendar=%s event=%s skipped: %v", calendarID, item.Id, err)
				continue
			}
			if ok {
				intervals = append(intervals, interval)
			}
		}

		if events.NextPageToken == "" {
			break
		}
		pageToken = events.NextPageToken
	}

	return intervals, nil
}

// InsertEvent создает событие бронирования и возвращает его ID
func (c *Client) InsertEvent(ctx context.Context, calendarID string, event *domain.CalendarEvent) (string, error) {
	body := toCalendarEvent(event, c.location)

	created, err := c.service.Events.Insert(calendarID, body).
		Context(ctx).
		Do()
	if err != nil {
		mapped := c.mapError("insert event", calendarID, err)
		if body.Id == "" || !errors.Is(mapped, ErrConflict) {
			return "", mapped
		}

		// Событие с этим ID уже есть: повторная вставка того же бронирования считается успешной
		existing, getErr := c.service.Events.Get(calendarID, body.Id).Context(ctx).Do()
		if getErr != nil {
			c.log.Warn("InsertEvent: calendar=%s event=%s conflict, lookup failed: %v", calendarID, body.Id, getErr)
			return "", mapped
		}
		if !isBookingEvent(existing, event.BookingID) {
			return "", mapped
		}

		c.log.Info("InsertEvent: calendar=%s event=%s booking=%s already exists", calendarID, existing.Id, event.BookingID)
		return existing.Id, nil
	}

	if created == nil || created.Id == "" {
		return "", fmt.Errorf("%w: insert returned event without id", ErrInvalidResponse)
	}

	c.log.Info("InsertEvent: calendar=%s event=%s booking=%s", calendarID, created.Id, event.BookingID)
	return created.Id, nil
}

func (c *Client) mapError(op, calendarID string, err error) error {
	var apiErr *googleapi.Error
	if errors.As(err, &apiErr) {
		switch apiErr.Code {
		case http.StatusConflict:
			return fmt.Errorf("%w: %s calendar=%s: %v", ErrConflict, op, calendarID, err)
		case http.StatusNotFound:
			return fmt.Errorf("%w: %s calendar=%s: %v", ErrCalendarNotFound, op, calendarID, err)
		}
		return fmt.Errorf("%w: %s calendar=%s: status %d: %v", ErrInvalidResponse, op, calendarID, apiErr.Code, err)
	}
	return fmt.Errorf("%w: %s calendar=%s: %v", ErrInternal, op, calendarID, err)
}
