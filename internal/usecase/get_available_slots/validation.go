package get_available_slots

import (
	"fmt"

	"github.com/m04kA/SMC-SalonBookingService/internal/domain"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.StoreID == "" {
		return fmt.Errorf("%w: storeID is required", ErrInvalidInput)
	}

	if len(req.StoreID) > domain.MaxStoreIDLength {
		return fmt.Errorf("%w: storeID is too long", ErrInvalidInput)
	}

	// Проверяем, что дата не является нулевой
	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	return nil
}
