package validate_booking

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-SalonService/internal/api/handlers"
	validateBooking "github.com/m04kA/SMC-SalonService/internal/usecase/validate_booking"
)

const (
	msgInvalidSalonID     = "некорректный ID салона"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidInterval    = "некорректный интервал, ожидается ISO 8601 и startTime < endTime"
	msgSalonNotFound      = "салон не найден"
)

type Handler struct {
	useCase ValidateBookingUseCase
	logger  Logger
}

func NewHandler(useCase ValidateBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/salons/{salonId}/appointments/validate
//
// Консультативная проверка для формы записи: ответ {ok, reason} всегда 200,
// кроме ошибок валидации запроса. Результат не резервирует интервал
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	salonIDStr := vars["salonId"]
	salonID, err := strconv.ParseInt(salonIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("POST /salons/{id}/appointments/validate - Invalid salon ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidSalonID)
		return
	}

	var req ValidateBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /salons/{id}/appointments/validate - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(salonID)
	if err != nil {
		h.logger.Warn("POST /salons/{id}/appointments/validate - Failed to parse interval: %v", err)
		handlers.RespondBadRequest(w, msgInvalidInterval)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, validateBooking.ErrSalonNotFound):
			h.logger.Warn("POST /salons/{id}/appointments/validate - Salon not found: salon_id=%d", salonID)
			handlers.RespondNotFound(w, msgSalonNotFound)

		case errors.Is(err, validateBooking.ErrInvalidInput):
			h.logger.Warn("POST /salons/{id}/appointments/validate - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidInterval)

		default:
			h.logger.Error("POST /salons/{id}/appointments/validate - Failed to validate: salon_id=%d, staff_id=%d, error=%v",
				salonID, req.StaffID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /salons/{id}/appointments/validate - Validated: salon_id=%d, staff_id=%d, ok=%t, reason=%s",
		salonID, req.StaffID, result.Valid, result.Reason)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
