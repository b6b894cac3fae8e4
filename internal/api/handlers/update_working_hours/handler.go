package update_working_hours

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
	msgInvalidSchedule    = "некорректное расписание: ожидается HH:MM и start < end"
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

// Handle PUT /api/v1/salons/{salonId}/working-hours
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	salonIDStr := vars["salonId"]
	salonID, err := strconv.ParseInt(salonIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("PUT /salons/{id}/working-hours - Invalid salon ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidSalonID)
		return
	}

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("PUT /salons/{id}/working-hours - Missing user ID in context")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req UpdateWorkingHoursRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /salons/{id}/working-hours - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	if err := h.service.ReplaceWeeklyHours(r.Context(), req.ToServiceRequest(userID, salonID)); err != nil {
		switch {
		case errors.Is(err, scheduleService.ErrSalonNotFound):
			h.logger.Warn("PUT /salons/{id}/working-hours - Salon not found: salon_id=%d", salonID)
			handlers.RespondNotFound(w, msgSalonNotFound)

		case errors.Is(err, scheduleService.ErrStaffNotFound):
			h.logger.Warn("PUT /salons/{id}/working-hours - Staff not found: salon_id=%d, staff_id=%v",
				salonID, req.StaffID)
			handlers.RespondNotFound(w, msgStaffNotFound)

		case errors.Is(err, scheduleService.ErrAccessDenied):
			h.logger.Warn("PUT /salons/{id}/working-hours - Access denied: salon_id=%d, user_id=%d", salonID, userID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, scheduleService.ErrInvalidSchedule), errors.Is(err, scheduleService.ErrInvalidInput):
			h.logger.Warn("PUT /salons/{id}/working-hours - Invalid schedule: salon_id=%d, error=%v", salonID, err)
			handlers.RespondBadRequest(w, msgInvalidSchedule)

		default:
			h.logger.Error("PUT /salons/{id}/working-hours - Failed to replace hours: salon_id=%d, user_id=%d, error=%v",
				salonID, userID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /salons/{id}/working-hours - Working hours replaced: salon_id=%d, staff_id=%v, user_id=%d",
		salonID, req.StaffID, userID)
	handlers.RespondJSON(w, http.StatusNoContent, nil)
}
