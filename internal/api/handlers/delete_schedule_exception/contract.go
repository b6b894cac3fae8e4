package delete_schedule_exception

import (
	"context"

	"github.com/m04kA/SMC-SalonService/internal/service/schedule/models"
)

type ScheduleService interface {
	DeleteException(ctx context.Context, req *models.DeleteExceptionRequest) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
