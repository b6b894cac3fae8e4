package create_schedule_exception

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
	msgInvalidException   = "некорректное исключение расписания"
	msgSalonNotFound      = "салон не найден"
	msgStaffNotFound      = "мастер не найден"
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

// Handle POST /api/v1/salons/{salonId}/schedule-exceptions
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	salonIDStr := vars["salonId"]
	salonID, err := strconv.ParseInt(salonIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("POST /salons/{id}/schedule-exceptions - Invalid salon ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidSalonID)
		return
	}

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("POST /salons/{id}/schedule-exceptions - Missing user ID in context")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req CreateExceptionRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /salons/{id}/schedule-exceptions - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.CreateException(r.Context(), req.ToServiceRequest(userID, salonID))
	if err != nil {
		switch {
		case errors.Is(err, scheduleService.ErrSalonNotFound):
			h.logger.Warn("POST /salons/{id}/schedule-exceptions - Salon not found: salon_id=%d", salonID)
			handlers.RespondNotFound(w, msgSalonNotFound)

		case errors.Is(err, scheduleService.ErrStaffNotFound):
			h.logger.Warn("POST /salons/{id}/schedule-exceptions - Staff not found: salon_id=%d, staff_id=%v",
				salonID, req.StaffID)
			handlers.RespondNotFound(w, msgStaffNotFound)

		case errors.Is(err, scheduleService.ErrAccessDenied):
			h.logger.Warn("POST /salons/{id}/schedule-exceptions - Access denied: salon_id=%d, user_id=%d",
				salonID, userID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, scheduleService.ErrInvalidInput), errors.Is(err, scheduleService.ErrInvalidSchedule):
			h.logger.Warn("POST /salons/{id}/schedule-exceptions - Invalid exception: salon_id=%d, error=%v",
				salonID, err)
			handlers.RespondBadRequest(w, msgInvalidException)

		default:
			h.logger.Error("POST /salons/{id}/schedule-exceptions - Failed to create exception: salon_id=%d, user_id=%d, error=%v",
				salonID, userID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /salons/{id}/schedule-exceptions - Exception created: id=%d, salon_id=%d, user_id=%d",
		result.ID, salonID, userID)
	handlers.RespondJSON(w, http.StatusCreated, result)
}
