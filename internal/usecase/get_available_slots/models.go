package get_available_slots

import (
	"time"

	"github.com/m04kA/SMC-SalonBookingService/internal/domain"
)

// Request модель запроса на получение слотов
type Request struct {
	StoreID string    // ID магазина
	Date    time.Time // Дата в часовом поясе магазина (время игнорируется)
}

// Response модель ответа со списком слотов
type Response struct {
	Date                time.Time     // Дата, на которую запрашивались слоты
	StoreID             string        // ID магазина
	SlotIntervalMinutes int           // Ширина слота
	Slots               []domain.Slot // Слоты дня, включая недоступные
	Warnings            []string      // Коды деградации (например, calendar_read_unavailable)
}
