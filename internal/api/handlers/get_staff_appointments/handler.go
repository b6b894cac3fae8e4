package get_staff_appointments

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-SalonService/internal/api/handlers"
	"github.com/m04kA/SMC-SalonService/internal/api/middleware"
	appointmentsService "github.com/m04kA/SMC-SalonService/internal/service/appointments"
)

const (
	msgInvalidSalonID = "некорректный ID салона"
	msgInvalidStaffID = "некорректный ID мастера"
	msgMissingUserID  = "отсутствует идентификатор пользователя"
	msgInvalidFilter  = "некорректные параметры фильтрации"
	msgSalonNotFound  = "салон не найден"
	msgForbidden      = "недостаточно прав для просмотра записей мастера"
)

type Handler struct {
	service AppointmentsService
	logger  Logger
}

func NewHandler(service AppointmentsService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/salons/{salonId}/staff/{staffId}/appointments
// Query params: from, to (ISO 8601), status, includeInactive
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	salonIDStr := vars["salonId"]
	salonID, err := strconv.ParseInt(salonIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("GET /salons/{id}/staff/{id}/appointments - Invalid salon ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidSalonID)
		return
	}

	staffIDStr := vars["staffId"]
	staffID, err := strconv.ParseInt(staffIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("GET /salons/{id}/staff/{id}/appointments - Invalid staff ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidStaffID)
		return
	}

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("GET /salons/{id}/staff/{id}/appointments - Missing user ID in context")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	req, err := ToServiceRequest(userID, salonID, staffID, r.URL.Query())
	if err != nil {
		h.logger.Warn("GET /salons/{id}/staff/{id}/appointments - Invalid filter: %v", err)
		handlers.RespondBadRequest(w, msgInvalidFilter)
		return
	}

	result, err := h.service.GetStaffAppointments(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, appointmentsService.ErrSalonNotFound):
			h.logger.Warn("GET /salons/{id}/staff/{id}/appointments - Salon not found: salon_id=%d", salonID)
			handlers.RespondNotFound(w, msgSalonNotFound)

		case errors.Is(err, appointmentsService.ErrAccessDenied):
			h.logger.Warn("GET /salons/{id}/staff/{id}/appointments - Access denied: salon_id=%d, user_id=%d",
				salonID, userID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, appointmentsService.ErrInvalidInput):
			h.logger.Warn("GET /salons/{id}/staff/{id}/appointments - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidFilter)

		default:
			h.logger.Error("GET /salons/{id}/staff/{id}/appointments - Failed to get appointments: salon_id=%d, staff_id=%d, error=%v",
				salonID, staffID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /salons/{id}/staff/{id}/appointments - Appointments retrieved: salon_id=%d, staff_id=%d, count=%d",
		salonID, staffID, len(result.Appointments))
	handlers.RespondJSON(w, http.StatusOK, result)
}
