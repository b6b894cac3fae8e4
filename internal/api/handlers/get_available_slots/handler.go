package get_available_slots

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-SalonService/internal/api/handlers"
	getAvailableSlots "github.com/m04kA/SMC-SalonService/internal/usecase/get_available_slots"
)

const (
	msgInvalidSalonID          = "некорректный ID салона"
	msgInvalidStaffID          = "некорректный ID мастера"
	msgInvalidServiceID        = "некорректный ID услуги"
	msgMissingServiceID        = "ID услуги обязателен"
	msgMissingDate             = "дата обязательна"
	msgInvalidDate             = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgInvalidStep             = "некорректный шаг слотов"
	msgSalonNotFound           = "салон не найден"
	msgStaffNotFound           = "мастер не найден"
	msgServiceNotFound         = "услуга не найдена"
	msgStaffNotProvidesService = "мастер не выполняет выбранную услугу"
)

type Handler struct {
	useCase GetAvailableSlotsUseCase
	logger  Logger
}

func NewHandler(useCase GetAvailableSlotsUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/salons/{salonId}/staff/{staffId}/available-slots
// Query params: serviceId (required), date (required, YYYY-MM-DD), stepMinutes (optional)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	// Извлекаем salonId из URL
	salonIDStr := vars["salonId"]
	salonID, err := strconv.ParseInt(salonIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("GET /salons/{id}/staff/{id}/available-slots - Invalid salon ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidSalonID)
		return
	}

	// Извлекаем staffId из URL
	staffIDStr := vars["staffId"]
	staffID, err := strconv.ParseInt(staffIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("GET /salons/{id}/staff/{id}/available-slots - Invalid staff ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidStaffID)
		return
	}

	// Извлекаем serviceId из query параметров
	serviceIDStr := r.URL.Query().Get("serviceId")
	if serviceIDStr == "" {
		h.logger.Warn("GET /salons/{id}/staff/{id}/available-slots - Missing service ID")
		handlers.RespondBadRequest(w, msgMissingServiceID)
		return
	}

	serviceID, err := strconv.ParseInt(serviceIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("GET /salons/{id}/staff/{id}/available-slots - Invalid service ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidServiceID)
		return
	}

	// Извлекаем date из query параметров
	dateStr := r.URL.Query().Get("date")
	if dateStr == "" {
		h.logger.Warn("GET /salons/{id}/staff/{id}/available-slots - Missing date")
		handlers.RespondBadRequest(w, msgMissingDate)
		return
	}

	// Извлекаем опциональный stepMinutes из query параметров
	var stepMinutes *int
	if stepStr := r.URL.Query().Get("stepMinutes"); stepStr != "" {
		step, err := strconv.Atoi(stepStr)
		if err != nil {
			h.logger.Warn("GET /salons/{id}/staff/{id}/available-slots - Invalid step: %v", err)
			handlers.RespondBadRequest(w, msgInvalidStep)
			return
		}
		stepMinutes = &step
	}

	// Формируем запрос к use case (с парсингом даты)
	useCaseReq, err := ToUseCaseRequest(salonID, staffID, serviceID, dateStr, stepMinutes)
	if err != nil {
		h.logger.Warn("GET /salons/{id}/staff/{id}/available-slots - Invalid date format: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	// Вызываем use case
	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		// Обработка ошибок use case
		switch {
		case errors.Is(err, getAvailableSlots.ErrSalonNotFound):
			h.logger.Warn("GET /salons/{id}/staff/{id}/available-slots - Salon not found: salon_id=%d", salonID)
			handlers.RespondNotFound(w, msgSalonNotFound)

		case errors.Is(err, getAvailableSlots.ErrStaffNotFound):
			h.logger.Warn("GET /salons/{id}/staff/{id}/available-slots - Staff not found: salon_id=%d, staff_id=%d",
				salonID, staffID)
			handlers.RespondNotFound(w, msgStaffNotFound)

		case errors.Is(err, getAvailableSlots.ErrServiceNotFound):
			h.logger.Warn("GET /salons/{id}/staff/{id}/available-slots - Service not found: salon_id=%d, service_id=%d",
				salonID, serviceID)
			handlers.RespondNotFound(w, msgServiceNotFound)

		case errors.Is(err, getAvailableSlots.ErrStaffNotProvidingService):
			h.logger.Warn("GET /salons/{id}/staff/{id}/available-slots - Staff does not provide service: salon_id=%d, staff_id=%d, service_id=%d",
				salonID, staffID, serviceID)
			handlers.RespondBadRequest(w, msgStaffNotProvidesService)

		case errors.Is(err, getAvailableSlots.ErrInvalidInput):
			h.logger.Warn("GET /salons/{id}/staff/{id}/available-slots - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidSalonID)

		default:
			h.logger.Error("GET /salons/{id}/staff/{id}/available-slots - Failed to get slots: salon_id=%d, staff_id=%d, service_id=%d, error=%v",
				salonID, staffID, serviceID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	// Формируем HTTP ответ
	response := FromUseCaseResponse(result)

	h.logger.Info("GET /salons/{id}/staff/{id}/available-slots - Slots retrieved successfully: salon_id=%d, staff_id=%d, service_id=%d, slots_count=%d",
		salonID, staffID, serviceID, len(result.Slots))
	handlers.RespondJSON(w, http.StatusOK, response)
}
