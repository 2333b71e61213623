package health

import (
	"context"
	"net/http"
	"time"

	"github.com/m04kA/SMC-SalonBookingService/internal/api/handlers"
)

const pingTimeout = time.Second

// Pinger проверка зависимости (БД, Redis)
type Pinger func(ctx context.Context) error

// BreakerStateProvider состояние предохранителя календаря
type BreakerStateProvider interface {
	BreakerState() string
}

// Response состояние сервиса
type Response struct {
	Status          string            `json:"status"`
	CalendarBreaker string            `json:"calendarBreaker"`
	Dependencies    map[string]string `json:"dependencies"`
}

type Handler struct {
	breaker BreakerStateProvider
	checks  map[string]Pinger
}

func NewHandler(breaker BreakerStateProvider, checks map[string]Pinger) *Handler {
	return &Handler{
		breaker: breaker,
		checks:  checks,
	}
}

// Handle GET /health
// Сервис деградирует, но не падает при недоступности зависимостей, поэтому статус всегда 200
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), pingTimeout)
	defer cancel()

	resp := Response{
		Status:          "ok",
		CalendarBreaker: h.breaker.BreakerState(),
		Dependencies:    make(map[string]string, len(h.checks)),
	}

	for name, ping := range h.checks {
		if err := ping(ctx); err != nil {
			resp.Dependencies[name] = "unavailable"
			resp.Status = "degraded"
			continue
		}
		resp.Dependencies[name] = "ok"
	}

	if resp.CalendarBreaker == "open" {
		resp.Status = "degraded"
	}

	handlers.RespondJSON(w, http.StatusOK, resp)
}
