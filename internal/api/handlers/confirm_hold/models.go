package confirm_hold

import (
	"time"

	"github.com/m04kA/SMC-ScheduleService/internal/domain"
)

// BookingResponse HTTP response model
type BookingResponse struct {
	ID         int64  `json:"id"`
	ResourceID int64  `json:"resourceId"`
	ServiceID  int64  `json:"serviceId"`
	StartAt    string `json:"startAt"`
	EndAt      string `json:"endAt"`
	Quantity   int    `json:"quantity"`
	Status     string `json:"status"`
	CreatedAt  string `json:"createdAt"`
}

// FromDomain конвертирует доменную модель бронирования в HTTP response
func FromDomain(b *domain.Booking) *BookingResponse {
	return &BookingResponse{
		ID:         b.ID,
		ResourceID: b.ResourceID,
		ServiceID:  b.ServiceID,
		StartAt:    b.StartAt.Format(time.RFC3339),
		EndAt:      b.EndAt.Format(time.RFC3339),
		Quantity:   b.Quantity,
		Status:     string(b.Status),
		CreatedAt:  b.CreatedAt.Format(time.RFC3339),
	}
}
