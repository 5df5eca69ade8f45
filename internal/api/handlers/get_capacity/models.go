package get_capacity

import "github.com/m04kA/SMC-ScheduleService/internal/service/capacity"

// CapacityResponse HTTP response model
type CapacityResponse struct {
	Available bool `json:"available"`
	Remaining int  `json:"remaining"`
	Total     int  `json:"total"`
}

// FromServiceResult конвертирует результат сервиса в HTTP response
func FromServiceResult(result *capacity.Result) *CapacityResponse {
	return &CapacityResponse{
		Available: result.Available,
		Remaining: result.Remaining,
		Total:     result.Total,
	}
}
