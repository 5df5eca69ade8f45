package confirm_hold

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/google/uuid"

	"github.com/m04kA/SMC-ScheduleService/internal/api/handlers"
	"github.com/m04kA/SMC-ScheduleService/internal/service/holds"
)

const (
	msgInvalidHoldID = "некорректный ID холда"
	msgHoldExpired   = "холд истёк или не существует"
	msgInvalidInput  = "некорректные параметры запроса"
)

type Handler struct {
	service HoldsService
	logger  Logger
}

func NewHandler(service HoldsService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle POST /api/v1/holds/{holdId}/confirm
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	holdID := vars["holdId"]
	if _, err := uuid.Parse(holdID); err != nil {
		h.logger.Warn("POST /holds/{id}/confirm - Invalid hold ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidHoldID)
		return
	}

	booking, err := h.service.ConfirmHold(r.Context(), holdID)
	if err != nil {
		switch {
		case errors.Is(err, holds.ErrHoldExpired):
			h.logger.Warn("POST /holds/{id}/confirm - Hold expired or missing: hold_id=%s", holdID)
			handlers.RespondError(w, http.StatusGone, msgHoldExpired)

		case errors.Is(err, holds.ErrInvalidInput):
			h.logger.Warn("POST /holds/{id}/confirm - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("POST /holds/{id}/confirm - Failed to confirm hold: hold_id=%s, error=%v", holdID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /holds/{id}/confirm - Hold confirmed: hold_id=%s, booking_id=%d", holdID, booking.ID)
	handlers.RespondJSON(w, http.StatusCreated, FromDomain(booking))
}
