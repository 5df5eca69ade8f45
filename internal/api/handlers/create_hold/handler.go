package create_hold

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-ScheduleService/internal/api/handlers"
	createHold "github.com/m04kA/SMC-ScheduleService/internal/usecase/create_hold"
)

const (
	headerOwnerToken = "X-Owner-Token"

	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidTimestamp   = "некорректный формат времени, ожидается RFC3339"
	msgMissingOwnerToken  = "токен владельца обязателен"
	msgResourceNotFound   = "ресурс не найден"
	msgHoldConflict       = "запрошенный интервал уже занят"
	msgCapacityExceeded   = "недостаточно свободных мест на запрошенный интервал"
	msgStartInPast        = "время начала не может быть в прошлом"
	msgInvalidInput       = "некорректные параметры запроса"
)

type Handler struct {
	useCase CreateHoldUseCase
	logger  Logger
}

func NewHandler(useCase CreateHoldUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/holds
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	ownerToken := r.Header.Get(headerOwnerToken)
	if ownerToken == "" {
		handlers.RespondUnauthorized(w, msgMissingOwnerToken)
		return
	}

	var req CreateHoldRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /holds - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	if err := req.Validate(); err != nil {
		h.logger.Warn("POST /holds - Request validation failed: %v", err)
		handlers.RespondBadRequest(w, msgInvalidInput)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(ownerToken)
	if err != nil {
		h.logger.Warn("POST /holds - Failed to parse timestamps: %v", err)
		handlers.RespondBadRequest(w, msgInvalidTimestamp)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, createHold.ErrHoldConflict):
			h.logger.Warn("POST /holds - Interval conflict: resource_id=%d, start=%s",
				req.ResourceID, req.StartAt)
			handlers.RespondError(w, http.StatusConflict, msgHoldConflict)

		case errors.Is(err, createHold.ErrCapacityExceeded):
			h.logger.Warn("POST /holds - Capacity exceeded: resource_id=%d, quantity=%d",
				req.ResourceID, req.Quantity)
			handlers.RespondError(w, http.StatusConflict, msgCapacityExceeded)

		case errors.Is(err, createHold.ErrResourceNotFound):
			h.logger.Warn("POST /holds - Resource not found: resource_id=%d", req.ResourceID)
			handlers.RespondNotFound(w, msgResourceNotFound)

		case errors.Is(err, createHold.ErrStartInPast):
			h.logger.Warn("POST /holds - Start in past: resource_id=%d, start=%s",
				req.ResourceID, req.StartAt)
			handlers.RespondBadRequest(w, msgStartInPast)

		case errors.Is(err, createHold.ErrInvalidInput):
			h.logger.Warn("POST /holds - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("POST /holds - Failed to create hold: resource_id=%d, error=%v",
				req.ResourceID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /holds - Hold created: hold_id=%s, resource_id=%d, expires_at=%s",
		result.ID, req.ResourceID, result.ExpiresAt.Format("15:04:05"))
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}
