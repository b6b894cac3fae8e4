package create_appointment

import (
	"fmt"
	"time"

	"github.com/m04kA/SMC-SalonService/internal/integrations/catalogservice"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.ClientID <= 0 {
		return fmt.Errorf("%w: clientID must be positive", ErrInvalidInput)
	}

	if req.SalonID <= 0 {
		return fmt.Errorf("%w: salonID must be positive", ErrInvalidInput)
	}

	if req.StaffID <= 0 {
		return fmt.Errorf("%w: staffID must be positive", ErrInvalidInput)
	}

	if req.ServiceID <= 0 {
		return fmt.Errorf("%w: serviceID must be positive", ErrInvalidInput)
	}

	// Проверяем, что дата не является нулевой
	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	// Проверяем, что время начала указано
	if req.StartTime.IsZero() {
		return fmt.Errorf("%w: startTime is required", ErrInvalidInput)
	}

	// Валидируем формат времени
	if err := req.StartTime.Validate(); err != nil {
		return fmt.Errorf("%w: invalid startTime format: %v", ErrInvalidInput, err)
	}

	return nil
}

// validateStaffProvidesService проверяет, что мастер выполняет услугу
// Пустой список мастеров у услуги означает "любой мастер салона"
func validateStaffProvidesService(service *catalogservice.Service, staffID int64) error {
	if len(service.StaffIDs) == 0 {
		return nil
	}

	for _, id := range service.StaffIDs {
		if id == staffID {
			return nil
		}
	}

	return ErrStaffNotProvidingService
}

// validateStartInstant проверяет, что момент начала записи не в прошлом
func validateStartInstant(startUTC, now time.Time) error {
	if startUTC.Before(now) {
		return ErrInvalidDate
	}
	return nil
}

// servicePrice извлекает цену из услуги, 0.0 если цена не указана
func servicePrice(service *catalogservice.Service) float64 {
	if service.Price == nil {
		return 0.0
	}
	return *service.Price
}
