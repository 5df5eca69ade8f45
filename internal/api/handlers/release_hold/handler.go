package release_hold

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

// Handle DELETE /api/v1/holds/{holdId}
// Повторное удаление того же холда тоже отвечает 204.
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	holdID := vars["holdId"]
	if _, err := uuid.Parse(holdID); err != nil {
		h.logger.Warn("DELETE /holds/{id} - Invalid hold ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidHoldID)
		return
	}

	if err := h.service.ReleaseHold(r.Context(), holdID); err != nil {
		switch {
		case errors.Is(err, holds.ErrInvalidInput):
			h.logger.Warn("DELETE /holds/{id} - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("DELETE /holds/{id} - Failed to release hold: hold_id=%s, error=%v", holdID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("DELETE /holds/{id} - Hold released: hold_id=%s", holdID)
	handlers.RespondNoContent(w)
}
