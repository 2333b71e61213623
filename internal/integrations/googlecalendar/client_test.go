package googlecalendar

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/api/calendar/v3"
	"google.golang.org/api/option"

	"github.com/m04kA/SMC-SalonBookingService/internal/domain"
	"github.com/m04kA/SMC-SalonBookingService/pkg/logger"
)

var brt = time.FixedZone("BRT", -3*60*60)

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func newTestClient(t *testing.T, handler http.Handler) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	client, err := NewClientWithOptions(context.Background(), brt, logger.NewNop(),
		option.WithEndpoint(srv.URL+"/"),
		option.WithHTTPClient(srv.Client()),
	)
	require.NoError(t, err)
	return client
}

func TestClient_ListEvents(t *testing.T) {
	var gotQuery map[string]string
	pages := 0

	mux := http.NewServeMux()
	mux.HandleFunc("/calendars/salon-1/events", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		pages++
		q := r.URL.Query()
		gotQuery = map[string]string{
			"singleEvents": q.Get("singleEvents"),
			"orderBy":      q.Get("orderBy"),
			"timeMin":      q.Get("timeMin"),
		}

		if q.Get("pageToken") == "" {
			writeJSON(w, http.StatusOK, map[string]interface{}{
				"nextPageToken": "p2",
				"items": []map[string]interface{}{
					{
						"id":     "e1",
						"status": "confirmed",
						"start":  map[string]string{"dateTime": "2025-03-10T13:00:00Z"},
						"end":    map[string]string{"dateTime": "2025-03-10T13:30:00Z"},
					},
					{
						"id":     "e2",
						"status": "cancelled",
						"start":  map[string]string{"dateTime": "2025-03-10T14:00:00-03:00"},
						"end":    map[string]string{"dateTime": "2025-03-10T15:00:00-03:00"},
					},
				},
			})
			return
		}

		writeJSON(w, http.StatusOK, map[string]interface{}{
			"items": []map[string]interface{}{
				{
					"id":           "e3",
					"transparency": "transparent",
					"start":        map[string]string{"dateTime": "2025-03-10T16:00:00-03:00"},
					"end":          map[string]string{"dateTime": "2025-03-10T17:00:00-03:00"},
				},
				{
					"id":    "e4",
					"start": map[string]string{"date": "2025-03-10"},
					"end":   map[string]string{"date": "2025-03-11"},
				},
				{
					"id":    "broken",
					"start": map[string]string{},
					"end":   map[string]string{"dateTime": "2025-03-10T17:00:00-03:00"},
				},
			},
		})
	})

	client := newTestClient(t, mux)
	from := time.Date(2025, 3, 10, 0, 0, 0, 0, brt)

	intervals, err := client.ListEvents(context.Background(), "salon-1", from, from.AddDate(0, 0, 1))
	require.NoError(t, err)

	assert.Equal(t, 2, pages)
	assert.Equal(t, "true", gotQuery["singleEvents"])
	assert.Equal(t, "startTime", gotQuery["orderBy"])
	assert.Equal(t, "2025-03-10T00:00:00-03:00", gotQuery["timeMin"])

	require.Len(t, intervals, 2)
	assert.True(t, intervals[0].Start.Equal(time.Date(2025, 3, 10, 10, 0, 0, 0, brt)))
	assert.True(t, intervals[0].End.Equal(time.Date(2025, 3, 10, 10, 30, 0, 0, brt)))
	assert.Equal(t, brt, intervals[0].Start.Location())
	assert.True(t, intervals[1].Start.Equal(from))
	assert.True(t, intervals[1].End.Equal(from.AddDate(0, 0, 1)))
}

func TestClient_InsertEvent(t *testing.T) {
	var received calendar.Event

	mux := http.NewServeMux()
	mux.HandleFunc("/calendars/salon-1/events", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&received))
		writeJSON(w, http.StatusOK, map[string]interface{}{"id": "evt-42"})
	})

	client := newTestClient(t, mux)
	start := time.Date(2025, 3, 10, 14, 0, 0, 0, brt)

	id, err := client.InsertEvent(context.Background(), "salon-1", &domain.CalendarEvent{
		BookingID:   "b-1",
		Start:       start,
		End:         start.Add(time.Hour),
		Summary:     "Agendamento: Ana - Corte",
		Description: "Serviço: Corte",
		Client:      domain.ClientInfo{Name: "Ana", Phone: "+5511999999999"},
	})
	require.NoError(t, err)

	assert.Equal(t, "evt-42", id)
	assert.Equal(t, eventIDFor("b-1"), received.Id)
	assert.Equal(t, "Agendamento: Ana - Corte", received.Summary)
	assert.Equal(t, "2025-03-10T14:00:00-03:00", received.Start.DateTime)
	assert.Equal(t, "2025-03-10T15:00:00-03:00", received.End.DateTime)
	require.NotNil(t, received.ExtendedProperties)
	assert.Equal(t, "b-1", received.ExtendedProperties.Private[bookingIDProperty])
	assert.Equal(t, "+5511999999999", received.ExtendedProperties.Private[clientPhoneProperty])
}

func TestEventIDFor(t *testing.T) {
	valid := regexp.MustCompile(`^[0-9a-v]{5,1024}$`)

	for _, bookingID := range []string{"b-1", "0b6f1c1e-5d1a-4c39-9a52-3c1f8f0c2d11", "Ünïcode"} {
		id := eventIDFor(bookingID)
		assert.Regexp(t, valid, id, bookingID)
		assert.Equal(t, id, eventIDFor(bookingID))
	}
	assert.NotEqual(t, eventIDFor("b-1"), eventIDFor("b-2"))
	assert.Empty(t, eventIDFor(""))
}

func TestClient_InsertEvent_Duplicate(t *testing.T) {
	start := time.Date(2025, 3, 10, 14, 0, 0, 0, brt)
	event := &domain.CalendarEvent{BookingID: "b-1", Start: start, End: start.Add(time.Hour)}
	eventID := eventIDFor("b-1")

	tests := []struct {
		name          string
		storedBooking string
		storedStatus  string
		wantErr       error
	}{
		{name: "same booking", storedBooking: "b-1", storedStatus: "confirmed"},
		{name: "other booking", storedBooking: "b-9", storedStatus: "confirmed", wantErr: ErrConflict},
		{name: "deleted event", storedBooking: "b-1", storedStatus: "cancelled", wantErr: ErrConflict},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mux := http.NewServeMux()
			mux.HandleFunc("/calendars/salon-1/events", func(w http.ResponseWriter, r *http.Request) {
				writeJSON(w, http.StatusConflict, map[string]interface{}{
					"error": map[string]interface{}{"code": http.StatusConflict, "message": "The requested identifier already exists."},
				})
			})
			mux.HandleFunc("/calendars/salon-1/events/"+eventID, func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, http.MethodGet, r.Method)
				writeJSON(w, http.StatusOK, map[string]interface{}{
					"id":     eventID,
					"status": tt.storedStatus,
					"extendedProperties": map[string]interface{}{
						"private": map[string]string{bookingIDProperty: tt.storedBooking},
					},
				})
			})

			client := newTestClient(t, mux)
			id, err := client.InsertEvent(context.Background(), "salon-1", event)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Empty(t, id)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, eventID, id)
		})
	}
}

func TestClient_ErrorMapping(t *testing.T) {
	apiError := func(code int) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			writeJSON(w, code, map[string]interface{}{
				"error": map[string]interface{}{"code": code, "message": http.StatusText(code)},
			})
		}
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/calendars/conflict/events", apiError(http.StatusConflict))
	mux.HandleFunc("/calendars/missing/events", apiError(http.StatusNotFound))
	mux.HandleFunc("/calendars/broken/events", apiError(http.StatusBadRequest))

	client := newTestClient(t, mux)
	start := time.Date(2025, 3, 10, 14, 0, 0, 0, brt)
	event := &domain.CalendarEvent{BookingID: "b-1", Start: start, End: start.Add(time.Hour)}

	_, err := client.InsertEvent(context.Background(), "conflict", event)
	assert.ErrorIs(t, err, ErrConflict)

	_, err = client.ListEvents(context.Background(), "missing", start, start.Add(time.Hour))
	assert.ErrorIs(t, err, ErrCalendarNotFound)

	_, err = client.ListEvents(context.Background(), "broken", start, start.Add(time.Hour))
	assert.ErrorIs(t, err, ErrInvalidResponse)
}

func TestToBusyInterval_SkipsFreeAndCancelled(t *testing.T) {
	_, ok, err := toBusyInterval(&calendar.Event{Status: "cancelled"}, brt)
	require.NoError(t, err)
	assert.False(t, ok)

	_, ok, err = toBusyInterval(&calendar.Event{Transparency: "transparent"}, brt)
	require.NoError(t, err)
	assert.False(t, ok)

	_, _, err = toBusyInterval(&calendar.Event{Start: &calendar.EventDateTime{DateTime: "nope"}}, brt)
	assert.ErrorIs(t, err, ErrInvalidResponse)
}
