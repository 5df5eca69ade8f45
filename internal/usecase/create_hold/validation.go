package create_hold

import (
	"fmt"
	"time"

	"github.com/m04kA/SMC-ScheduleService/internal/domain"
)

// validateRequest валидирует входные данные запроса.
// Выполняется до обращения к хранилищам.
func validateRequest(req *Request, now time.Time) error {
	if req.ResourceID <= 0 {
		return fmt.Errorf("%w: resourceID must be positive", ErrInvalidInput)
	}

	if req.ServiceID <= 0 {
		return fmt.Errorf("%w: serviceID must be positive", ErrInvalidInput)
	}

	if req.StartAt.IsZero() || req.EndAt.IsZero() {
		return fmt.Errorf("%w: start and end are required", ErrInvalidInput)
	}

	if !req.StartAt.Before(req.EndAt) {
		return fmt.Errorf("%w: start must be before end", ErrInvalidInput)
	}

	if req.StartAt.Before(now) {
		return ErrStartInPast
	}

	if req.Quantity < domain.MinQuantity || req.Quantity > domain.MaxQuantity {
		return fmt.Errorf("%w: quantity must be between %d and %d",
			ErrInvalidInput, domain.MinQuantity, domain.MaxQuantity)
	}

	if req.OwnerToken == "" {
		return fmt.Errorf("%w: ownerToken is required", ErrInvalidInput)
	}

	if len(req.OwnerToken) > domain.MaxOwnerTokenLength {
		return fmt.Errorf("%w: ownerToken is too long", ErrInvalidInput)
	}

	return nil
}
