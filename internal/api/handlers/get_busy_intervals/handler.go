package get_busy_intervals

import (
	"net/http"
	"sort"
	"time"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-SalonBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-SalonBookingService/internal/domain"
	getAvailableSlots "github.com/m04kA/SMC-SalonBookingService/internal/usecase/get_available_slots"
)

const (
	msgInvalidStoreID = "некорректный ID магазина"
	msgMissingDate    = "дата обязательна"
	msgInvalidDate    = "некорректный формат даты, ожидается YYYY-MM-DD"
)

type Handler struct {
	provider   ScheduleProvider
	busySource BusyIntervalSource
	location   *time.Location
	logger     Logger
}

func NewHandler(provider ScheduleProvider, busySource BusyIntervalSource, location *time.Location, logger Logger) *Handler {
	return &Handler{
		provider:   provider,
		busySource: busySource,
		location:   location,
		logger:     logger,
	}
}

// Handle GET /api/v1/stores/{storeId}/busy-intervals
// Query params: date (required, YYYY-MM-DD)
// Недоступность календаря отдается как пустой список с предупреждением, как и для слотов
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	storeID := mux.Vars(r)["storeId"]
	if storeID == "" || len(storeID) > domain.MaxStoreIDLength {
		h.logger.Warn("GET /stores/{id}/busy-intervals - Invalid store ID: %q", storeID)
		handlers.RespondBadRequest(w, msgInvalidStoreID)
		return
	}

	dateStr := r.URL.Query().Get("date")
	if dateStr == "" {
		h.logger.Warn("GET /stores/{id}/busy-intervals - Missing date: store_id=%s", storeID)
		handlers.RespondBadRequest(w, msgMissingDate)
		return
	}

	date, err := time.ParseInLocation(domain.DateFormat, dateStr, h.location)
	if err != nil {
		h.logger.Warn("GET /stores/{id}/busy-intervals - Invalid date format: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	cfg := h.provider.GetScheduleConfig(r.Context(), storeID)

	var warnings []string
	intervals, err := h.busySource.ListBusyIntervals(r.Context(), cfg.CalendarID, date)
	if err != nil {
		h.logger.Warn("GET /stores/{id}/busy-intervals - Calendar read degraded: store_id=%s, error=%v", storeID, err)
		intervals = nil
		warnings = append(warnings, getAvailableSlots.WarningCalendarReadUnavailable)
	}

	sort.Slice(intervals, func(i, j int) bool {
		return intervals[i].Start.Before(intervals[j].Start)
	})

	h.logger.Info("GET /stores/{id}/busy-intervals - Intervals retrieved: store_id=%s, date=%s, count=%d",
		storeID, dateStr, len(intervals))
	handlers.RespondJSON(w, http.StatusOK, FromDomainIntervals(storeID, date, intervals, warnings))
}
