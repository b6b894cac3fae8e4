package create_appointment

import (
	"errors"
	"net/http"
	"strings"

	"github.com/m04kA/SMC-SalonService/internal/api/handlers"
	"github.com/m04kA/SMC-SalonService/internal/api/middleware"
	createAppointment "github.com/m04kA/SMC-SalonService/internal/usecase/create_appointment"
)

const (
	msgMissingUserID           = "отсутствует идентификатор пользователя"
	msgInvalidRequestBody      = "некорректное тело запроса"
	msgInvalidDate             = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgInvalidTime             = "некорректный формат времени начала, ожидается HH:MM"
	msgSalonNotFound           = "салон не найден"
	msgStaffNotFound           = "мастер не найден"
	msgServiceNotFound         = "услуга не найдена"
	msgStaffNotProvidesService = "мастер не выполняет выбранную услугу"
	msgSalonClosed             = "салон закрыт в выбранную дату"
	msgStaffOff                = "мастер не работает в выбранную дату"
	msgOutsideWorkingHours     = "запись выходит за рабочие часы мастера"
	msgTimeConflict            = "выбранное время занято другой записью"
	msgInvalidAppointmentDate  = "некорректная дата записи"
)

type Handler struct {
	useCase CreateAppointmentUseCase
	logger  Logger
}

func NewHandler(useCase CreateAppointmentUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/appointments
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("POST /appointments - Missing user ID in context")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req CreateAppointmentRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /appointments - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	// Конвертируем HTTP запрос в модель use case (с парсингом даты и времени)
	useCaseReq, err := req.ToUseCaseRequest(userID)
	if err != nil {
		h.logger.Warn("POST /appointments - Failed to parse request: %v", err)
		// Определяем тип ошибки парсинга
		if strings.Contains(err.Error(), "invalid time string format") {
			handlers.RespondBadRequest(w, msgInvalidTime)
		} else {
			handlers.RespondBadRequest(w, msgInvalidDate)
		}
		return
	}

	// Вызываем use case
	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		// Обработка ошибок use case
		switch {
		case errors.Is(err, createAppointment.ErrTimeConflict):
			h.logger.Warn("POST /appointments - Time conflict: client_id=%d, salon_id=%d, staff_id=%d",
				userID, req.SalonID, req.StaffID)
			handlers.RespondError(w, http.StatusConflict, msgTimeConflict)

		case errors.Is(err, createAppointment.ErrSalonNotFound):
			h.logger.Warn("POST /appointments - Salon not found: salon_id=%d", req.SalonID)
			handlers.RespondNotFound(w, msgSalonNotFound)

		case errors.Is(err, createAppointment.ErrStaffNotFound):
			h.logger.Warn("POST /appointments - Staff not found: salon_id=%d, staff_id=%d", req.SalonID, req.StaffID)
			handlers.RespondNotFound(w, msgStaffNotFound)

		case errors.Is(err, createAppointment.ErrServiceNotFound):
			h.logger.Warn("POST /appointments - Service not found: salon_id=%d, service_id=%d", req.SalonID, req.ServiceID)
			handlers.RespondNotFound(w, msgServiceNotFound)

		case errors.Is(err, createAppointment.ErrStaffNotProvidingService):
			h.logger.Warn("POST /appointments - Staff does not provide service: staff_id=%d, service_id=%d",
				req.StaffID, req.ServiceID)
			handlers.RespondBadRequest(w, msgStaffNotProvidesService)

		case errors.Is(err, createAppointment.ErrSalonClosed):
			h.logger.Warn("POST /appointments - Salon closed: salon_id=%d, date=%s", req.SalonID, req.Date)
			handlers.RespondBadRequest(w, msgSalonClosed)

		case errors.Is(err, createAppointment.ErrStaffOff):
			h.logger.Warn("POST /appointments - Staff off: staff_id=%d, date=%s", req.StaffID, req.Date)
			handlers.RespondBadRequest(w, msgStaffOff)

		case errors.Is(err, createAppointment.ErrOutsideWorkingHours):
			h.logger.Warn("POST /appointments - Outside working hours: staff_id=%d, date=%s, time=%s",
				req.StaffID, req.Date, req.StartTime)
			handlers.RespondBadRequest(w, msgOutsideWorkingHours)

		case errors.Is(err, createAppointment.ErrInvalidDate):
			h.logger.Warn("POST /appointments - Invalid appointment date: client_id=%d, date=%s", userID, req.Date)
			handlers.RespondBadRequest(w, msgInvalidAppointmentDate)

		case errors.Is(err, createAppointment.ErrInvalidInput):
			h.logger.Warn("POST /appointments - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidRequestBody)

		default:
			h.logger.Error("POST /appointments - Failed to create appointment: client_id=%d, salon_id=%d, error=%v",
				userID, req.SalonID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	// Формируем HTTP ответ
	response := FromUseCaseResponse(result)

	h.logger.Info("POST /appointments - Appointment created successfully: id=%d, client_id=%d, salon_id=%d",
		result.ID, userID, req.SalonID)
	handlers.RespondJSON(w, http.StatusCreated, response)
}
