package create_booking

import (
	"time"

	"github.com/m04kA/SMC-SalonBookingService/internal/domain"
	"github.com/m04kA/SMC-SalonBookingService/pkg/types"
)

// Request модель запроса на бронирование слота
type Request struct {
	StoreID         string            // ID магазина
	Date            time.Time         // Дата в часовом поясе магазина (время игнорируется)
	StartTime       types.TimeString  // Время начала (например, "10:00")
	DurationMinutes int               // Длительность услуги, 0 - по умолчанию
	ServiceName     string            // Название услуги
	Client          domain.ClientInfo // Клиент
	Notes           *string           // Дополнительные заметки (опционально)
}

// Response модель ответа с подтвержденным бронированием
type Response struct {
	BookingID       string    // ID бронирования
	EventID         string    // ID события во внешнем календаре
	StoreID         string    // ID магазина
	Start           time.Time // Начало
	End             time.Time // Конец
	DurationMinutes int       // Длительность в минутах
	ServiceName     string    // Название услуги
	ClientName      string    // Имя клиента
	Notes           *string   // Заметки
	CreatedAt       time.Time // Время создания
}

// FromDomainBooking конвертирует доменное бронирование в ответ
func FromDomainBooking(b *domain.Booking) *Response {
	return &Response{
		BookingID:       b.ID,
		EventID:         b.EventID,
		StoreID:         b.StoreID,
		Start:           b.Start,
		End:             b.End,
		DurationMinutes: b.DurationMinutes,
		ServiceName:     b.ServiceName,
		ClientName:      b.Client.Name,
		Notes:           b.Notes,
		CreatedAt:       b.CreatedAt,
	}
}
