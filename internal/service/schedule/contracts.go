package schedule

import (
	"context"
	"time"

	"github.com/m04kA/SMC-SalonService/internal/domain"
	"github.com/m04kA/SMC-SalonService/internal/integrations/catalogservice"
)

// ScheduleRepository интерфейс репозитория расписания
type ScheduleRepository interface {
	GetWeeklyHours(ctx context.Context, salonID int64, staffID *int64) ([]domain.WeeklyWorkingHour, error)
	ReplaceWeeklyHours(ctx context.Context, salonID int64, staffID *int64, hours []domain.WeeklyWorkingHour) error
	ListExceptions(ctx context.Context, salonID, staffID int64, from, to time.Time) ([]domain.ScheduleException, error)
	CreateException(ctx context.Context, exc *domain.ScheduleException) (*domain.ScheduleException, error)
	DeleteException(ctx context.Context, salonID, exceptionID int64) error
}

// SalonRepository интерфейс репозитория настроек салона
type SalonRepository interface {
	GetSettings(ctx context.Context, salonID int64) (*domain.SalonSettings, error)
	UpsertSettings(ctx context.Context, settings *domain.SalonSettings) error
}

// CatalogServiceClient интерфейс клиента для CatalogService
type CatalogServiceClient interface {
	GetSalon(ctx context.Context, salonID int64) (*catalogservice.Salon, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
