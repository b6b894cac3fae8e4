package validate_booking

import (
	"time"

	"github.com/m04kA/SMC-SalonService/internal/domain"
)

// Request модель запроса на проверку предлагаемой записи
type Request struct {
	SalonID  int64     // ID салона
	StaffID  int64     // ID мастера
	StartUTC time.Time // Начало интервала (UTC)
	EndUTC   time.Time // Конец интервала (UTC, исключительно)
}

// Response результат проверки
//
// Valid=false с заполненным Reason - штатный ответ, не ошибка: форма записи
// показывает причину клиенту
type Response struct {
	Valid  bool
	Reason domain.UnavailabilityReason // пусто при Valid=true

	// ConflictingAppointmentID заполняется при Reason=APPOINTMENT_CONFLICT
	ConflictingAppointmentID *int64
}
