package get_slots

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-ScheduleService/internal/api/handlers"
	"github.com/m04kA/SMC-ScheduleService/internal/domain"
	generateSlots "github.com/m04kA/SMC-ScheduleService/internal/usecase/generate_slots"
)

const (
	msgInvalidResourceID   = "некорректный ID ресурса"
	msgMissingServiceID    = "ID услуги обязателен"
	msgInvalidServiceID    = "некорректный ID услуги"
	msgMissingDate         = "дата обязательна"
	msgInvalidDate         = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgMissingDuration     = "длительность услуги обязательна"
	msgInvalidDuration     = "некорректная длительность услуги"
	msgInvalidGranularity  = "некорректный шаг генерации слотов"
	msgInvalidQuantity     = "некорректное количество мест"
	msgInvalidInput        = "некорректные параметры запроса"
)

type Handler struct {
	useCase GenerateSlotsUseCase
	logger  Logger
}

func NewHandler(useCase GenerateSlotsUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/resources/{resourceId}/slots
// Query params: serviceId (required), date (required, YYYY-MM-DD),
// durationMinutes (required), granularityMinutes (optional, default 30),
// quantity (optional, default 1)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	resourceID, err := strconv.ParseInt(vars["resourceId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /resources/{id}/slots - Invalid resource ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidResourceID)
		return
	}

	query := r.URL.Query()

	serviceIDStr := query.Get("serviceId")
	if serviceIDStr == "" {
		handlers.RespondBadRequest(w, msgMissingServiceID)
		return
	}
	serviceID, err := strconv.ParseInt(serviceIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("GET /resources/{id}/slots - Invalid service ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidServiceID)
		return
	}

	dateStr := query.Get("date")
	if dateStr == "" {
		handlers.RespondBadRequest(w, msgMissingDate)
		return
	}
	date, err := time.Parse(domain.DateFormat, dateStr)
	if err != nil {
		h.logger.Warn("GET /resources/{id}/slots - Invalid date: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	durationStr := query.Get("durationMinutes")
	if durationStr == "" {
		handlers.RespondBadRequest(w, msgMissingDuration)
		return
	}
	duration, err := strconv.Atoi(durationStr)
	if err != nil {
		h.logger.Warn("GET /resources/{id}/slots - Invalid duration: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDuration)
		return
	}

	granularity := domain.DefaultGranularityMinutes
	if granularityStr := query.Get("granularityMinutes"); granularityStr != "" {
		granularity, err = strconv.Atoi(granularityStr)
		if err != nil {
			h.logger.Warn("GET /resources/{id}/slots - Invalid granularity: %v", err)
			handlers.RespondBadRequest(w, msgInvalidGranularity)
			return
		}
	}

	quantity := domain.DefaultQuantity
	if quantityStr := query.Get("quantity"); quantityStr != "" {
		quantity, err = strconv.Atoi(quantityStr)
		if err != nil {
			h.logger.Warn("GET /resources/{id}/slots - Invalid quantity: %v", err)
			handlers.RespondBadRequest(w, msgInvalidQuantity)
			return
		}
	}

	result, err := h.useCase.Execute(r.Context(), &generateSlots.Request{
		ResourceID:         resourceID,
		ServiceID:          serviceID,
		Date:               date,
		DurationMinutes:    duration,
		GranularityMinutes: granularity,
		Quantity:           quantity,
	})
	if err != nil {
		switch {
		case errors.Is(err, generateSlots.ErrInvalidInput):
			h.logger.Warn("GET /resources/{id}/slots - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("GET /resources/{id}/slots - Failed to generate slots: resource_id=%d, error=%v",
				resourceID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /resources/{id}/slots - Generated %d slots: resource_id=%d, service_id=%d, date=%s",
		len(result.Slots), resourceID, serviceID, dateStr)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
