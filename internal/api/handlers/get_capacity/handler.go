package get_capacity

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/m04kA/SMC-ScheduleService/internal/api/handlers"
	"github.com/m04kA/SMC-ScheduleService/internal/domain"
	"github.com/m04kA/SMC-ScheduleService/internal/service/capacity"
)

const (
	msgMissingResourceID = "ID ресурса обязателен"
	msgInvalidResourceID = "некорректный ID ресурса"
	msgMissingServiceID  = "ID услуги обязателен"
	msgInvalidServiceID  = "некорректный ID услуги"
	msgMissingInterval   = "границы интервала обязательны"
	msgInvalidTimestamp  = "некорректный формат времени, ожидается RFC3339"
	msgInvalidQuantity   = "некорректное количество мест"
	msgInvalidInput      = "некорректные параметры запроса"
)

type Handler struct {
	service CapacityService
	logger  Logger
}

func NewHandler(service CapacityService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/capacity
// Query params: resourceId, serviceId, start, end (RFC3339), quantity (optional, default 1)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	resourceIDStr := query.Get("resourceId")
	if resourceIDStr == "" {
		handlers.RespondBadRequest(w, msgMissingResourceID)
		return
	}
	resourceID, err := strconv.ParseInt(resourceIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("GET /capacity - Invalid resource ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidResourceID)
		return
	}

	serviceIDStr := query.Get("serviceId")
	if serviceIDStr == "" {
		handlers.RespondBadRequest(w, msgMissingServiceID)
		return
	}
	serviceID, err := strconv.ParseInt(serviceIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("GET /capacity - Invalid service ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidServiceID)
		return
	}

	startStr := query.Get("start")
	endStr := query.Get("end")
	if startStr == "" || endStr == "" {
		handlers.RespondBadRequest(w, msgMissingInterval)
		return
	}
	startAt, err := time.Parse(time.RFC3339, startStr)
	if err != nil {
		h.logger.Warn("GET /capacity - Invalid start timestamp: %v", err)
		handlers.RespondBadRequest(w, msgInvalidTimestamp)
		return
	}
	endAt, err := time.Parse(time.RFC3339, endStr)
	if err != nil {
		h.logger.Warn("GET /capacity - Invalid end timestamp: %v", err)
		handlers.RespondBadRequest(w, msgInvalidTimestamp)
		return
	}

	quantity := domain.DefaultQuantity
	if quantityStr := query.Get("quantity"); quantityStr != "" {
		quantity, err = strconv.Atoi(quantityStr)
		if err != nil {
			h.logger.Warn("GET /capacity - Invalid quantity: %v", err)
			handlers.RespondBadRequest(w, msgInvalidQuantity)
			return
		}
	}

	result, err := h.service.Check(r.Context(), &capacity.Request{
		ResourceID: resourceID,
		ServiceID:  serviceID,
		StartAt:    startAt,
		EndAt:      endAt,
		Quantity:   quantity,
	})
	if err != nil {
		switch {
		case errors.Is(err, capacity.ErrInvalidInput):
			h.logger.Warn("GET /capacity - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("GET /capacity - Failed to check capacity: resource_id=%d, error=%v",
				resourceID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /capacity - Checked: resource_id=%d, remaining=%d, total=%d, available=%t",
		resourceID, result.Remaining, result.Total, result.Available)
	handlers.RespondJSON(w, http.StatusOK, FromServiceResult(result))
}
