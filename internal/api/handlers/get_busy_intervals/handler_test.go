package get_busy_intervals

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SalonBookingService/internal/domain"
	"github.com/m04kA/SMC-SalonBookingService/pkg/logger"
)

var brt = time.FixedZone("BRT", -3*60*60)

type stubProvider struct{}

func (stubProvider) GetScheduleConfig(_ context.Context, storeID string) *domain.ScheduleConfig {
	cfg := domain.DefaultScheduleConfig(storeID)
	cfg.CalendarID = "cal-1"
	return cfg
}

type MockBusyIntervalSource struct {
	mock.Mock
}

func (m *MockBusyIntervalSource) ListBusyIntervals(ctx context.Context, calendarID string, date time.Time) ([]domain.BusyInterval, error) {
	args := m.Called(ctx, calendarID, date)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.BusyInterval), args.Error(1)
}

func serve(h *Handler, target string) *httptest.ResponseRecorder {
	r := mux.NewRouter()
	r.HandleFunc("/api/v1/stores/{storeId}/busy-intervals", h.Handle)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
	return rec
}

func TestHandler_Handle_SortedIntervals(t *testing.T) {
	source := new(MockBusyIntervalSource)
	h := NewHandler(stubProvider{}, source, brt, logger.NewNop())

	date := time.Date(2025, 3, 10, 0, 0, 0, 0, brt)
	source.On("ListBusyIntervals", mock.Anything, "cal-1", date).Return([]domain.BusyInterval{
		{Start: date.Add(14 * time.Hour), End: date.Add(15 * time.Hour)},
		{Start: time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC), End: time.Date(2025, 3, 10, 12, 30, 0, 0, time.UTC)},
	}, nil)

	rec := serve(h, "/api/v1/stores/salon-1/busy-intervals?date=2025-03-10")
	require.Equal(t, http.StatusOK, rec.Code)

	var body BusyIntervalsResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "2025-03-10", body.Date)
	assert.Equal(t, []BusyInterval{
		{Start: "2025-03-10T09:00:00-03:00", End: "2025-03-10T09:30:00-03:00"},
		{Start: "2025-03-10T14:00:00-03:00", End: "2025-03-10T15:00:00-03:00"},
	}, body.Intervals)
	assert.Empty(t, body.Warnings)
}

func TestHandler_Handle_CalendarDegraded(t *testing.T) {
	source := new(MockBusyIntervalSource)
	h := NewHandler(stubProvider{}, source, brt, logger.NewNop())

	source.On("ListBusyIntervals", mock.Anything, "cal-1", mock.Anything).Return(nil, errors.New("calendar: unavailable"))

	rec := serve(h, "/api/v1/stores/salon-1/busy-intervals?date=2025-03-10")
	require.Equal(t, http.StatusOK, rec.Code)

	var body BusyIntervalsResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Empty(t, body.Intervals)
	assert.Equal(t, []string{"calendar_read_unavailable"}, body.Warnings)
}

func TestHandler_Handle_BadDate(t *testing.T) {
	source := new(MockBusyIntervalSource)
	h := NewHandler(stubProvider{}, source, brt, logger.NewNop())

	assert.Equal(t, http.StatusBadRequest, serve(h, "/api/v1/stores/salon-1/busy-intervals").Code)
	assert.Equal(t, http.StatusBadRequest, serve(h, "/api/v1/stores/salon-1/busy-intervals?date=tomorrow").Code)
	source.AssertNotCalled(t, "ListBusyIntervals", mock.Anything, mock.Anything, mock.Anything)
}
