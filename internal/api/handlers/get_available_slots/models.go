package get_available_slots

import (
	"time"

	"github.com/m04kA/SMC-SalonBookingService/internal/domain"
	getAvailableSlots "github.com/m04kA/SMC-SalonBookingService/internal/usecase/get_available_slots"
)

// AvailableSlotsResponse HTTP response model
type AvailableSlotsResponse struct {
	Date                string          `json:"date"`
	StoreID             string          `json:"storeId"`
	SlotIntervalMinutes int             `json:"slotIntervalMinutes"`
	Slots               []AvailableSlot `json:"slots"`
	Warnings            []string        `json:"warnings"`
}

// AvailableSlot модель временного слота
type AvailableSlot struct {
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
	Available bool   `json:"available"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getAvailableSlots.Response) *AvailableSlotsResponse {
	slots := make([]AvailableSlot, len(resp.Slots))
	for i, slot := range resp.Slots {
		slots[i] = AvailableSlot{
			StartTime: slot.Start.Format(domain.TimeFormat),
			EndTime:   slot.End.Format(domain.TimeFormat),
			Available: slot.Available,
		}
	}

	warnings := resp.Warnings
	if warnings == nil {
		warnings = []string{}
	}

	return &AvailableSlotsResponse{
		Date:                resp.Date.Format(domain.DateFormat),
		StoreID:             resp.StoreID,
		SlotIntervalMinutes: resp.SlotIntervalMinutes,
		Slots:               slots,
		Warnings:            warnings,
	}
}

// ToUseCaseRequest создает запрос use case, дата интерпретируется в часовом поясе магазина
func ToUseCaseRequest(storeID, dateStr string, loc *time.Location) (*getAvailableSlots.Request, error) {
	date, err := time.ParseInLocation(domain.DateFormat, dateStr, loc)
	if err != nil {
		return nil, err
	}

	return &getAvailableSlots.Request{
		StoreID: storeID,
		Date:    date,
	}, nil
}
