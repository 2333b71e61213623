package create_booking

import (
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-SalonBookingService/internal/api/handlers"
	createBooking "github.com/m04kA/SMC-SalonBookingService/internal/usecase/create_booking"
)

const (
	msgInvalidRequestBody     = "некорректное тело запроса"
	msgInvalidDate            = "некорректный формат даты бронирования, ожидается YYYY-MM-DD"
	msgInvalidTime            = "некорректный формат времени начала, ожидается HH:MM"
	msgInvalidInput           = "некорректные данные бронирования"
	msgNonWorkingDay          = "магазин не работает в выбранную дату"
	msgSlotInPast             = "выбранное время уже прошло"
	msgInvalidTimeSlot        = "некорректный временной слот"
	msgSlotNoLongerAvailable  = "выбранный слот уже занят, обновите список доступных слотов"
	msgCommitFailed           = "не удалось подтвердить бронирование, повторите попытку"
	codeNonWorkingDay         = "non_working_day"
	codeSlotInPast            = "slot_in_past"
	codeInvalidTimeSlot       = "invalid_time_slot"
	codeSlotNoLongerAvailable = "slot_no_longer_available"
	codeCommitFailed          = "commit_failed"
)

var (
	errInvalidDate = errors.New("invalid date")
	errInvalidTime = errors.New("invalid start time")
)

type Handler struct {
	useCase  CreateBookingUseCase
	location *time.Location
	logger   Logger
}

func NewHandler(useCase CreateBookingUseCase, location *time.Location, logger Logger) *Handler {
	return &Handler{
		useCase:  useCase,
		location: location,
		logger:   logger,
	}
}

// Handle POST /api/v1/stores/{storeId}/bookings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	storeID := mux.Vars(r)["storeId"]

	var req CreateBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /stores/{id}/bookings - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	// Конвертируем HTTP запрос в модель use case (с парсингом даты и времени)
	useCaseReq, err := req.ToUseCaseRequest(storeID, h.location)
	if err != nil {
		h.logger.Warn("POST /stores/{id}/bookings - Failed to parse request: store_id=%s, error=%v", storeID, err)
		if errors.Is(err, errInvalidTime) {
			handlers.RespondBadRequest(w, msgInvalidTime)
		} else {
			handlers.RespondBadRequest(w, msgInvalidDate)
		}
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, createBooking.ErrSlotNoLongerAvailable):
			h.logger.Warn("POST /stores/{id}/bookings - Slot no longer available: store_id=%s, date=%s, time=%s",
				storeID, req.Date, req.StartTime)
			handlers.RespondErrorCode(w, http.StatusConflict, codeSlotNoLongerAvailable, msgSlotNoLongerAvailable)

		case errors.Is(err, createBooking.ErrCommitFailed):
			h.logger.Error("POST /stores/{id}/bookings - Commit failed: store_id=%s, error=%v", storeID, err)
			handlers.RespondErrorCode(w, http.StatusServiceUnavailable, codeCommitFailed, msgCommitFailed)

		case errors.Is(err, createBooking.ErrInvalidInput):
			h.logger.Warn("POST /stores/{id}/bookings - Invalid input: store_id=%s, error=%v", storeID, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		case errors.Is(err, createBooking.ErrNonWorkingDay):
			h.logger.Warn("POST /stores/{id}/bookings - Non-working day: store_id=%s, date=%s", storeID, req.Date)
			handlers.RespondErrorCode(w, http.StatusBadRequest, codeNonWorkingDay, msgNonWorkingDay)

		case errors.Is(err, createBooking.ErrSlotInPast):
			h.logger.Warn("POST /stores/{id}/bookings - Slot in the past: store_id=%s, date=%s, time=%s",
				storeID, req.Date, req.StartTime)
			handlers.RespondErrorCode(w, http.StatusBadRequest, codeSlotInPast, msgSlotInPast)

		case errors.Is(err, createBooking.ErrInvalidTimeSlot):
			h.logger.Warn("POST /stores/{id}/bookings - Invalid time slot: store_id=%s, error=%v", storeID, err)
			handlers.RespondErrorCode(w, http.StatusBadRequest, codeInvalidTimeSlot, msgInvalidTimeSlot)

		default:
			h.logger.Error("POST /stores/{id}/bookings - Failed to create booking: store_id=%s, error=%v", storeID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	response := FromUseCaseResponse(result)

	h.logger.Info("POST /stores/{id}/bookings - Booking created successfully: booking_id=%s, event_id=%s, store_id=%s",
		result.BookingID, result.EventID, storeID)
	handlers.RespondJSON(w, http.StatusCreated, response)
}
