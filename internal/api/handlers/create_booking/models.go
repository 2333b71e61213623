package create_booking

import (
	"time"

	"github.com/m04kA/SMC-SalonBookingService/internal/domain"
	createBooking "github.com/m04kA/SMC-SalonBookingService/internal/usecase/create_booking"
	"github.com/m04kA/SMC-SalonBookingService/pkg/types"
)

// CreateBookingRequest HTTP request model
type CreateBookingRequest struct {
	Date            string  `json:"date"`      // "2025-10-15"
	StartTime       string  `json:"startTime"` // "10:00"
	DurationMinutes int     `json:"durationMinutes,omitempty"`
	ServiceName     string  `json:"serviceName"`
	Client          Client  `json:"client"`
	Notes           *string `json:"notes,omitempty"`
}

// Client данные клиента
type Client struct {
	Name  string `json:"name"`
	Email string `json:"email,omitempty"`
	Phone string `json:"phone,omitempty"`
}

// BookingResponse HTTP response model
type BookingResponse struct {
	BookingID       string  `json:"bookingId"`
	EventID         string  `json:"eventId"`
	StoreID         string  `json:"storeId"`
	Date            string  `json:"date"`
	StartTime       string  `json:"startTime"`
	EndTime         string  `json:"endTime"`
	DurationMinutes int     `json:"durationMinutes"`
	ServiceName     string  `json:"serviceName"`
	ClientName      string  `json:"clientName"`
	Notes           *string `json:"notes,omitempty"`
	CreatedAt       string  `json:"createdAt"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case.
// Дата интерпретируется в часовом поясе магазина
func (r *CreateBookingRequest) ToUseCaseRequest(storeID string, loc *time.Location) (*createBooking.Request, error) {
	// Парсим дату
	date, err := time.ParseInLocation(domain.DateFormat, r.Date, loc)
	if err != nil {
		return nil, errInvalidDate
	}

	// Парсим время
	startTime, err := types.NewTimeStringFromString(r.StartTime)
	if err != nil {
		return nil, errInvalidTime
	}

	return &createBooking.Request{
		StoreID:         storeID,
		Date:            date,
		StartTime:       startTime,
		DurationMinutes: r.DurationMinutes,
		ServiceName:     r.ServiceName,
		Client: domain.ClientInfo{
			Name:  r.Client.Name,
			Email: r.Client.Email,
			Phone: r.Client.Phone,
		},
		Notes: r.Notes,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createBooking.Response) *BookingResponse {
	return &BookingResponse{
		BookingID:       resp.BookingID,
		EventID:         resp.EventID,
		StoreID:         resp.StoreID,
		Date:            resp.Start.Format(domain.DateFormat),
		StartTime:       resp.Start.Format(domain.TimeFormat),
		EndTime:         resp.End.Format(domain.TimeFormat),
		DurationMinutes: resp.DurationMinutes,
		ServiceName:     resp.ServiceName,
		ClientName:      resp.ClientName,
		Notes:           resp.Notes,
		CreatedAt:       resp.CreatedAt.Format(time.RFC3339),
	}
}
