package get_available_slots

import (
	"fmt"
	"time"

	"github.com/m04kA/SMC-SalonService/internal/domain"
	"github.com/m04kA/SMC-SalonService/internal/integrations/catalogservice"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
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

	if req.StepMinutes != nil {
		if *req.StepMinutes < domain.MinSlotStepMinutes || *req.StepMinutes > domain.MaxSlotStepMinutes {
			return fmt.Errorf("%w: stepMinutes must be between %d and %d",
				ErrInvalidInput, domain.MinSlotStepMinutes, domain.MaxSlotStepMinutes)
		}
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

// isDateInPast проверяет, что дата в прошлом (раньше сегодняшнего дня в таймзоне салона)
func isDateInPast(date time.Time, now time.Time, loc *time.Location) bool {
	localNow := now.In(loc)
	nowOnly := time.Date(localNow.Year(), localNow.Month(), localNow.Day(), 0, 0, 0, 0, time.UTC)
	dateOnly := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, time.UTC)
	return dateOnly.Before(nowOnly)
}
