package delete_schedule_exception

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-SalonService/internal/api/handlers"
	"github.com/m04kA/SMC-SalonService/internal/api/middleware"
	scheduleService "github.com/m04kA/SMC-SalonService/internal/service/schedule"
	"github.com/m04kA/SMC-SalonService/internal/service/schedule/models"
)

const (
	msgInvalidSalonID     = "некорректный ID салона"
	msgInvalidExceptionID = "некорректный ID исключения"
	msgMissingUserID      = "отсутствует идентификатор пользователя"
	msgSalonNotFound      = "салон не найден"
	msgExceptionNotFound  = "исключение расписания не найдено"
	msgForbidden          = "недостаточно прав для изменения расписания"
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

// Handle DELETE /api/v1/salons/{salonId}/schedule-exceptions/{exceptionId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	salonIDStr := vars["salonId"]
	salonID, err := strconv.ParseInt(salonIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("DELETE /salons/{id}/schedule-exceptions/{excId} - Invalid salon ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidSalonID)
		return
	}

	exceptionIDStr := vars["exceptionId"]
	exceptionID, err := strconv.ParseInt(exceptionIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("DELETE /salons/{id}/schedule-exceptions/{excId} - Invalid exception ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidExceptionID)
		return
	}

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("DELETE /salons/{id}/schedule-exceptions/{excId} - Missing user ID in context")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	req := &models.DeleteExceptionRequest{
		UserID:      userID,
		SalonID:     salonID,
		ExceptionID: exceptionID,
	}

	if err := h.service.DeleteException(r.Context(), req); err != nil {
		switch {
		case errors.Is(err, scheduleService.ErrSalonNotFound):
			h.logger.Warn("DELETE /salons/{id}/schedule-exceptions/{excId} - Salon not found: salon_id=%d", salonID)
			handlers.RespondNotFound(w, msgSalonNotFound)

		case errors.Is(err, scheduleService.ErrExceptionNotFound):
			h.logger.Warn("DELETE /salons/{id}/schedule-exceptions/{excId} - Exception not found: salon_id=%d, exception_id=%d",
				salonID, exceptionID)
			handlers.RespondNotFound(w, msgExceptionNotFound)

		case errors.Is(err, scheduleService.ErrAccessDenied):
			h.logger.Warn("DELETE /salons/{id}/schedule-exceptions/{excId} - Access denied: salon_id=%d, user_id=%d",
				salonID, userID)
			handlers.RespondForbidden(w, msgForbidden)

		default:
			h.logger.Error("DELETE /salons/{id}/schedule-exceptions/{excId} - Failed to delete exception: salon_id=%d, exception_id=%d, error=%v",
				salonID, exceptionID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("DELETE /salons/{id}/schedule-exceptions/{excId} - Exception deleted: salon_id=%d, exception_id=%d, user_id=%d",
		salonID, exceptionID, userID)
	handlers.RespondJSON(w, http.StatusNoContent, nil)
}
