package get_store_schedule

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-SalonBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-SalonBookingService/internal/domain"
)

const msgInvalidStoreID = "некорректный ID магазина"

type Handler struct {
	provider ScheduleProvider
	logger   Logger
}

func NewHandler(provider ScheduleProvider, logger Logger) *Handler {
	return &Handler{
		provider: provider,
		logger:   logger,
	}
}

// Handle GET /api/v1/stores/{storeId}/schedule
// Расписание есть всегда: при отсутствии в хранилище возвращаются значения по умолчанию
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	storeID := mux.Vars(r)["storeId"]
	if storeID == "" || len(storeID) > domain.MaxStoreIDLength {
		h.logger.Warn("GET /stores/{id}/schedule - Invalid store ID: %q", storeID)
		handlers.RespondBadRequest(w, msgInvalidStoreID)
		return
	}

	cfg := h.provider.GetScheduleConfig(r.Context(), storeID)

	h.logger.Info("GET /stores/{id}/schedule - Schedule retrieved: store_id=%s, source=%s", storeID, cfg.Source)
	handlers.RespondJSON(w, http.StatusOK, FromDomainConfig(cfg))
}
