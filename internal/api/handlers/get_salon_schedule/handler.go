package get_salon_schedule

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-SalonService/internal/api/handlers"
	scheduleService "github.com/m04kA/SMC-SalonService/internal/service/schedule"
	"github.com/m04kA/SMC-SalonService/internal/service/schedule/models"
)

const (
	msgInvalidSalonID  = "некорректный ID салона"
	msgInvalidStaffID  = "некорректный ID мастера"
	msgInvalidSchedule = "данные расписания повреждены"
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

// Handle GET /api/v1/salons/{salonId}/schedule
// Query params: staffId (optional) - персональный шаблон мастера поверх салонного
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	salonIDStr := vars["salonId"]
	salonID, err := strconv.ParseInt(salonIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("GET /salons/{id}/schedule - Invalid salon ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidSalonID)
		return
	}

	req := &models.GetWeekScheduleRequest{SalonID: salonID}

	if staffIDStr := r.URL.Query().Get("staffId"); staffIDStr != "" {
		staffID, err := strconv.ParseInt(staffIDStr, 10, 64)
		if err != nil || staffID <= 0 {
			h.logger.Warn("GET /salons/{id}/schedule - Invalid staff ID: %v", err)
			handlers.RespondBadRequest(w, msgInvalidStaffID)
			return
		}
		req.StaffID = &staffID
	}

	result, err := h.service.GetWeekSchedule(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, scheduleService.ErrInvalidSchedule):
			h.logger.Error("GET /salons/{id}/schedule - Invalid schedule data: salon_id=%d, error=%v", salonID, err)
			handlers.RespondError(w, http.StatusUnprocessableEntity, msgInvalidSchedule)

		default:
			h.logger.Error("GET /salons/{id}/schedule - Failed to get schedule: salon_id=%d, error=%v", salonID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /salons/{id}/schedule - Schedule retrieved: salon_id=%d, staff_id=%v", salonID, req.StaffID)
	handlers.RespondJSON(w, http.StatusOK, result)
}
