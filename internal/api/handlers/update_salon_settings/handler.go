package update_salon_settings

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-SalonService/internal/api/handlers"
	"github.com/m04kA/SMC-SalonService/internal/api/middleware"
	scheduleService "github.com/m04kA/SMC-SalonService/internal/service/schedule"
)

const (
	msgInvalidSalonID     = "некорректный ID салона"
	msgMissingUserID      = "отсутствует идентификатор пользователя"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidSettings    = "некорректные настройки салона"
	msgSalonNotFound      = "салон не найден"
	msgForbidden          = "недостаточно прав для изменения настроек"
)

type Handler struct {
	service ScheduleService
	logger  Logger
}

func NewHandler(service ScheduleService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle PUT /api/v1/salons/{salonId}/settings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	salonIDStr := vars["salonId"]
	salonID, err := strconv.ParseInt(salonIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("PUT /salons/{id}/settings - Invalid salon ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidSalonID)
		return
	}

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("PUT /salons/{id}/settings - Missing user ID in context")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req UpdateSettingsRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /salons/{id}/settings - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.UpdateSettings(r.Context(), req.ToServiceRequest(userID, salonID))
	if err != nil {
		switch {
		case errors.Is(err, scheduleService.ErrSalonNotFound):
			h.logger.Warn("PUT /salons/{id}/settings - Salon not found: salon_id=%d", salonID)
			handlers.RespondNotFound(w, msgSalonNotFound)

		case errors.Is(err, scheduleService.ErrAccessDenied):
			h.logger.Warn("PUT /salons/{id}/settings - Access denied: salon_id=%d, user_id=%d", salonID, userID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, scheduleService.ErrInvalidInput):
			h.logger.Warn("PUT /salons/{id}/settings - Invalid settings: salon_id=%d, error=%v", salonID, err)
			handlers.RespondBadRequest(w, msgInvalidSettings)

		default:
			h.logger.Error("PUT /salons/{id}/settings - Failed to update settings: salon_id=%d, user_id=%d, error=%v",
				salonID, userID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /salons/{id}/settings - Settings updated: salon_id=%d, timezone=%s, step=%d, buffer=%d",
		salonID, result.Timezone, result.SlotStepMinutes, result.DefaultBufferMinutes)
	handlers.RespondJSON(w, http.StatusOK, result)
}
