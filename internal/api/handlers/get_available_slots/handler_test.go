package get_available_slots

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
	getAvailableSlots "github.com/m04kA/SMC-SalonBookingService/internal/usecase/get_available_slots"
	"github.com/m04kA/SMC-SalonBookingService/pkg/logger"
)

var brt = time.FixedZone("BRT", -3*60*60)

type MockUseCase struct {
	mock.Mock
}

func (m *MockUseCase) Execute(ctx context.Context, req *getAvailableSlots.Request) (*getAvailableSlots.Response, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*getAvailableSlots.Response), args.Error(1)
}

func serve(h *Handler, target string) *httptest.ResponseRecorder {
	r := mux.NewRouter()
	r.HandleFunc("/api/v1/stores/{storeId}/available-slots", h.Handle).Methods(http.MethodGet)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
	return rec
}

func TestHandler_Handle_OK(t *testing.T) {
	uc := new(MockUseCase)
	h := NewHandler(uc, brt, logger.NewNop())

	date := time.Date(2025, 3, 10, 0, 0, 0, 0, brt)
	uc.On("Execute", mock.Anything, &getAvailableSlots.Request{StoreID: "salon-1", Date: date}).
		Return(&getAvailableSlots.Response{
			Date:                date,
			StoreID:             "salon-1",
			SlotIntervalMinutes: 30,
			Slots: []domain.Slot{
				{Start: date.Add(8 * time.Hour), End: date.Add(8*time.Hour + 30*time.Minute), Available: true},
				{Start: date.Add(12 * time.Hour), End: date.Add(12*time.Hour + 30*time.Minute), Available: false},
			},
			Warnings: []string{getAvailableSlots.WarningCalendarReadUnavailable},
		}, nil)

	rec := serve(h, "/api/v1/stores/salon-1/available-slots?date=2025-03-10")
	require.Equal(t, http.StatusOK, rec.Code)

	var body AvailableSlotsResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "2025-03-10", body.Date)
	assert.Equal(t, "salon-1", body.StoreID)
	assert.Equal(t, 30, body.SlotIntervalMinutes)
	assert.Equal(t, []AvailableSlot{
		{StartTime: "08:00", EndTime: "08:30", Available: true},
		{StartTime: "12:00", EndTime: "12:30", Available: false},
	}, body.Slots)
	assert.Equal(t, []string{"calendar_read_unavailable"}, body.Warnings)
}

func TestHandler_Handle_EmptyListsAreArrays(t *testing.T) {
	uc := new(MockUseCase)
	h := NewHandler(uc, brt, logger.NewNop())

	uc.On("Execute", mock.Anything, mock.Anything).Return(&getAvailableSlots.Response{
		Date:    time.Date(2025, 12, 25, 0, 0, 0, 0, brt),
		StoreID: "salon-1",
	}, nil)

	rec := serve(h, "/api/v1/stores/salon-1/available-slots?date=2025-12-25")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"slots":[]`)
	assert.Contains(t, rec.Body.String(), `"warnings":[]`)
}

func TestHandler_Handle_BadRequest(t *testing.T) {
	uc := new(MockUseCase)
	h := NewHandler(uc, brt, logger.NewNop())

	for _, target := range []string{
		"/api/v1/stores/salon-1/available-slots",
		"/api/v1/stores/salon-1/available-slots?date=10/03/2025",
	} {
		rec := serve(h, target)
		assert.Equal(t, http.StatusBadRequest, rec.Code, target)
	}
	uc.AssertNotCalled(t, "Execute", mock.Anything, mock.Anything)
}

func TestHandler_Handle_UseCaseErrors(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{name: "invalid input", err: getAvailableSlots.ErrInvalidInput, wantStatus: http.StatusBadRequest},
		{name: "unexpected", err: errors.New("boom"), wantStatus: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc := new(MockUseCase)
			h := NewHandler(uc, brt, logger.NewNop())
			uc.On("Execute", mock.Anything, mock.Anything).Return(nil, tt.err)

			rec := serve(h, "/api/v1/stores/salon-1/available-slots?date=2025-03-10")
			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}
