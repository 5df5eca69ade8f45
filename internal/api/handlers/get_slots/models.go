package get_slots

import (
	"time"

	"github.com/m04kA/SMC-ScheduleService/internal/domain"
	generateSlots "github.com/m04kA/SMC-ScheduleService/internal/usecase/generate_slots"
)

// SlotResponse HTTP-модель одного слота
type SlotResponse struct {
	StartAt        string `json:"startAt"`
	EndAt          string `json:"endAt"`
	Available      bool   `json:"available"`
	AvailableSeats int    `json:"availableSeats"`
	TotalSeats     int    `json:"totalSeats"`
}

// SlotsResponse HTTP-модель ответа со списком слотов
type SlotsResponse struct {
	ResourceID int64          `json:"resourceId"`
	ServiceID  int64          `json:"serviceId"`
	Date       string         `json:"date"`
	Slots      []SlotResponse `json:"slots"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *generateSlots.Response) *SlotsResponse {
	slots := make([]SlotResponse, len(resp.Slots))
	for i, s := range resp.Slots {
		slots[i] = SlotResponse{
			StartAt:        s.StartAt.Format(time.RFC3339),
			EndAt:          s.EndAt.Format(time.RFC3339),
			Available:      s.Available,
			AvailableSeats: s.AvailableSeats,
			TotalSeats:     s.TotalSeats,
		}
	}

	return &SlotsResponse{
		ResourceID: resp.ResourceID,
		ServiceID:  resp.ServiceID,
		Date:       resp.Date.Format(domain.DateFormat),
		Slots:      slots,
	}
}
