package create_appointment

import (
	"context"
	"time"

	"github.com/m04kA/SMC-SalonService/internal/domain"
	"github.com/m04kA/SMC-SalonService/internal/integrations/catalogservice"
)

// AppointmentRepository интерфейс репозитория записей
type AppointmentRepository interface {
	Create(ctx context.Context, appointment *domain.Appointment) (*domain.Appointment, error)
	GetByStaffWithFilter(ctx context.Context, filter domain.StaffAppointmentsFilter) ([]*domain.Appointment, error)
}

// ScheduleRepository интерфейс репозитория расписания
type ScheduleRepository interface {
	GetWeeklyHours(ctx context.Context, salonID int64, staffID *int64) ([]domain.WeeklyWorkingHour, error)
	ListExceptions(ctx context.Context, salonID, staffID int64, from, to time.Time) ([]domain.ScheduleException, error)
}

// SalonRepository интерфейс репозитория настроек салона
type SalonRepository interface {
	GetSettings(ctx context.Context, salonID int64) (*domain.SalonSettings, error)
}

// CatalogServiceClient интерфейс клиента для CatalogService
type CatalogServiceClient interface {
	GetService(ctx context.Context, salonID, serviceID int64) (*catalogservice.Service, error)
	GetStaffMember(ctx context.Context, salonID, staffID int64) (*catalogservice.StaffMember, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
