package create_hold

import (
	"time"

	"github.com/go-playground/validator/v10"

	createHold "github.com/m04kA/SMC-ScheduleService/internal/usecase/create_hold"
)

var validate = validator.New()

// CreateHoldRequest HTTP request model
type CreateHoldRequest struct {
	ResourceID int64  `json:"resourceId" validate:"required,gt=0"`
	ServiceID  int64  `json:"serviceId" validate:"required,gt=0"`
	StartAt    string `json:"startAt" validate:"required"` // RFC3339
	EndAt      string `json:"endAt" validate:"required"`   // RFC3339
	Quantity   int    `json:"quantity" validate:"omitempty,gte=1,lte=100"`
}

// Validate проверяет структуру запроса до парсинга временных меток
func (r *CreateHoldRequest) Validate() error {
	return validate.Struct(r)
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateHoldRequest) ToUseCaseRequest(ownerToken string) (*createHold.Request, error) {
	startAt, err := time.Parse(time.RFC3339, r.StartAt)
	if err != nil {
		return nil, err
	}

	endAt, err := time.Parse(time.RFC3339, r.EndAt)
	if err != nil {
		return nil, err
	}

	quantity := r.Quantity
	if quantity == 0 {
		quantity = 1
	}

	return &createHold.Request{
		ResourceID: r.ResourceID,
		ServiceID:  r.ServiceID,
		StartAt:    startAt,
		EndAt:      endAt,
		Quantity:   quantity,
		OwnerToken: ownerToken,
	}, nil
}

// HoldResponse HTTP response model
type HoldResponse struct {
	ID         string `json:"id"`
	ResourceID int64  `json:"resourceId"`
	ServiceID  int64  `json:"serviceId"`
	StartAt    string `json:"startAt"`
	EndAt      string `json:"endAt"`
	Quantity   int    `json:"quantity"`
	ExpiresAt  string `json:"expiresAt"`
	CreatedAt  string `json:"createdAt"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createHold.Response) *HoldResponse {
	return &HoldResponse{
		ID:         resp.ID,
		ResourceID: resp.ResourceID,
		ServiceID:  resp.ServiceID,
		StartAt:    resp.StartAt.Format(time.RFC3339),
		EndAt:      resp.EndAt.Format(time.RFC3339),
		Quantity:   resp.Quantity,
		ExpiresAt:  resp.ExpiresAt.Format(time.RFC3339),
		CreatedAt:  resp.CreatedAt.Format(time.RFC3339),
	}
}
