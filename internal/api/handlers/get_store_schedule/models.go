package get_store_schedule

import (
	"github.com/m04kA/SMC-SalonBookingService/internal/domain"
)

// ScheduleResponse действующее расписание магазина (с подставленными значениями по умолчанию)
type ScheduleResponse struct {
	StoreID             string   `json:"storeId"`
	OpenTime            string   `json:"openTime"`
	CloseTime           string   `json:"closeTime"`
	LunchStart          string   `json:"lunchStart"`
	LunchEnd            string   `json:"lunchEnd"`
	SlotIntervalMinutes int      `json:"slotIntervalMinutes"`
	NonWorkingDays      []string `json:"nonWorkingDays"`
	Source              string   `json:"source"`
	Fallbacks           []string `json:"fallbacks,omitempty"`
}

// FromDomainConfig конвертирует расписание в HTTP response.
// ID календаря наружу не отдается
func FromDomainConfig(cfg *domain.ScheduleConfig) *ScheduleResponse {
	return &ScheduleResponse{
		StoreID:             cfg.StoreID,
		OpenTime:            cfg.OpenTime.String(),
		CloseTime:           cfg.CloseTime.String(),
		LunchStart:          cfg.LunchStart.String(),
		LunchEnd:            cfg.LunchEnd.String(),
		SlotIntervalMinutes: cfg.SlotIntervalMinutes,
		NonWorkingDays:      cfg.SortedNonWorkingDays(),
		Source:              cfg.Source,
		Fallbacks:           cfg.Fallbacks,
	}
}
