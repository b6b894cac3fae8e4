package create_appointment

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-SalonService/internal/domain"
	salonRepo "github.com/m04kA/SMC-SalonService/internal/infra/storage/salon"
	catalogClient "github.com/m04kA/SMC-SalonService/internal/integrations/catalogservice"
	"github.com/m04kA/SMC-SalonService/internal/scheduling"
	"github.com/m04kA/SMC-SalonService/pkg/ptr"
)

// UseCase use case для создания записи
type UseCase struct {
	appointmentRepo AppointmentRepository
	scheduleRepo    ScheduleRepository
	salonRepo       SalonRepository
	catalogClient   CatalogServiceClient
	txManager       TransactionManager
	timeProvider    TimeProvider
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	appointmentRepo AppointmentRepository,
	scheduleRepo ScheduleRepository,
	salonRepo SalonRepository,
	catalogClient CatalogServiceClient,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		appointmentRepo: appointmentRepo,
		scheduleRepo:    scheduleRepo,
		salonRepo:       salonRepo,
		catalogClient:   catalogClient,
		txManager:       txManager,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// Execute выполняет use case создания записи
// Авторитетная проверка расписания и конфликтов выполняется в сериализуемой
// транзакции: две конкурентные записи на один интервал не пройдут обе
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateAppointment: client=%d, salon=%d, staff=%d, service=%d, date=%s, time=%s",
		req.ClientID, req.SalonID, req.StaffID, req.ServiceID, req.Date.Format(domain.DateFormat), req.StartTime)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateAppointment: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем настройки салона и таймзону
	settings, err := uc.salonRepo.GetSettings(ctx, req.SalonID)
	if err != nil {
		if errors.Is(err, salonRepo.ErrSettingsNotFound) {
			uc.logger.Warn("CreateAppointment: salon id=%d not found", req.SalonID)
			return nil, ErrSalonNotFound
		}
		uc.logger.Error("CreateAppointment: failed to get salon settings id=%d: %v", req.SalonID, err)
		return nil, fmt.Errorf("%w: failed to get salon settings: %v", ErrInternal, err)
	}

	loc, err := settings.Location()
	if err != nil {
		uc.logger.Error("CreateAppointment: salon id=%d has invalid timezone %q: %v", req.SalonID, settings.Timezone, err)
		return nil, fmt.Errorf("%w: invalid salon timezone %q: %v", ErrInternal, settings.Timezone, err)
	}

	// 3. Получаем услугу
	service, err := uc.catalogClient.GetService(ctx, req.SalonID, req.ServiceID)
	if err != nil {
		if errors.Is(err, catalogClient.ErrServiceNotFound) {
			uc.logger.Warn("CreateAppointment: service id=%d not found", req.ServiceID)
			return nil, ErrServiceNotFound
		}
		uc.logger.Error("CreateAppointment: failed to get service id=%d: %v", req.ServiceID, err)
		return nil, fmt.Errorf("%w: failed to get service: %v", ErrInternal, err)
	}

	// 4. Проверяем существование мастера и что он выполняет услугу
	if _, err := uc.catalogClient.GetStaffMember(ctx, req.SalonID, req.StaffID); err != nil {
		if errors.Is(err, catalogClient.ErrStaffNotFound) {
			uc.logger.Warn("CreateAppointment: staff id=%d not found in salon id=%d", req.StaffID, req.SalonID)
			return nil, ErrStaffNotFound
		}
		uc.logger.Error("CreateAppointment: failed to get staff id=%d: %v", req.StaffID, err)
		return nil, fmt.Errorf("%w: failed to get staff member: %v", ErrInternal, err)
	}

	if err := validateStaffProvidesService(service, req.StaffID); err != nil {
		uc.logger.Warn("CreateAppointment: staff id=%d does not provide service id=%d", req.StaffID, req.ServiceID)
		return nil, err
	}

	// 5. Резолвим локальное время начала в UTC момент
	startUTC, err := scheduling.ToUTCInstant(req.Date, req.StartTime, loc)
	if err != nil {
		uc.logger.Warn("CreateAppointment: failed to resolve start time: %v", err)
		return nil, fmt.Errorf("%w: invalid startTime: %v", ErrInvalidInput, err)
	}
	endUTC := startUTC.Add(time.Duration(service.DurationMinutes) * time.Minute)

	// 6. Запись должна начинаться в будущем
	if err := validateStartInstant(startUTC, uc.timeProvider.Now()); err != nil {
		uc.logger.Warn("CreateAppointment: start instant %s is in the past", startUTC.Format(time.RFC3339))
		return nil, err
	}

	// Переменная для хранения результата
	var result *domain.Appointment

	// 7. Авторитетная проверка и создание в сериализуемой транзакции
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 7.1. Рабочий интервал мастера на дату
		day, cause, err := uc.resolveDay(txCtx, req.SalonID, req.StaffID, req.Date)
		if err != nil {
			return err
		}

		if !day.Working {
			if cause == scheduling.CauseSalonClosed {
				uc.logger.Warn("CreateAppointment: salon id=%d is closed on %s", req.SalonID, req.Date.Format(domain.DateFormat))
				return ErrSalonClosed
			}
			uc.logger.Warn("CreateAppointment: staff id=%d is off on %s", req.StaffID, req.Date.Format(domain.DateFormat))
			return ErrStaffOff
		}

		// 7.2. Интервал должен целиком лежать внутри рабочих часов
		workStart, err := scheduling.ToUTCInstant(req.Date, day.Start, loc)
		if err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidSchedule, err)
		}
		workEnd, err := scheduling.ToUTCInstant(req.Date, day.End, loc)
		if err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidSchedule, err)
		}

		if startUTC.Before(workStart) || endUTC.After(workEnd) {
			uc.logger.Warn("CreateAppointment: interval [%s, %s) outside working hours [%s, %s)",
				startUTC.Format(time.RFC3339), endUTC.Format(time.RFC3339),
				workStart.Format(time.RFC3339), workEnd.Format(time.RFC3339))
			return ErrOutsideWorkingHours
		}

		// 7.3. Конфликты с активными записями мастера
		appointments, err := uc.appointmentRepo.GetByStaffWithFilter(txCtx, domain.StaffAppointmentsFilter{
			SalonID: req.SalonID,
			StaffID: req.StaffID,
			FromUTC: ptr.Ptr(startUTC),
			ToUTC:   ptr.Ptr(endUTC),
		})
		if err != nil {
			uc.logger.Error("CreateAppointment: failed to get appointments: %v", err)
			return fmt.Errorf("%w: failed to get appointments: %v", ErrInternal, err)
		}

		if conflict := scheduling.FindConflict(startUTC, endUTC, appointments); conflict != nil {
			uc.logger.Warn("CreateAppointment: conflict with appointment id=%d", conflict.ID)
			return ErrTimeConflict
		}

		// 7.4. Создаем запись с денормализацией данных услуги
		appointment := &domain.Appointment{
			SalonID:   req.SalonID,
			ClientID:  req.ClientID,
			StaffID:   req.StaffID,
			ServiceID: req.ServiceID,
			StartUTC:  startUTC,
			EndUTC:    endUTC,
			Status:    domain.StatusConfirmed,
			// Денормализация данных услуги
			ServiceName:  service.Name,
			ServicePrice: servicePrice(service),
			// Заметки
			Notes: req.Notes,
		}

		created, err := uc.appointmentRepo.Create(txCtx, appointment)
		if err != nil {
			uc.logger.Error("CreateAppointment: failed to create appointment: %v", err)
			return fmt.Errorf("%w: failed to create appointment: %v", ErrInternal, err)
		}

		result = created
		return nil
	})

	if err != nil {
		return nil, err
	}

	uc.logger.Info("CreateAppointment: successfully created appointment id=%d", result.ID)

	// Конвертируем в response
	return &Response{
		ID:           result.ID,
		ClientID:     result.ClientID,
		SalonID:      result.SalonID,
		StaffID:      result.StaffID,
		ServiceID:    result.ServiceID,
		StartUTC:     result.StartUTC,
		EndUTC:       result.EndUTC,
		Status:       string(result.Status),
		ServiceName:  result.ServiceName,
		ServicePrice: result.ServicePrice,
		Notes:        result.Notes,
		CreatedAt:    result.CreatedAt,
		UpdatedAt:    result.UpdatedAt,
	}, nil
}

// resolveDay собирает итоговый рабочий интервал мастера на дату
func (uc *UseCase) resolveDay(ctx context.Context, salonID, staffID int64, date time.Time) (domain.EffectiveDay, scheduling.ClosureCause, error) {
	salonHours, err := uc.scheduleRepo.GetWeeklyHours(ctx, salonID, nil)
	if err != nil {
		uc.logger.Error("CreateAppointment: failed to get salon weekly hours: %v", err)
		return domain.ClosedDay(), scheduling.CauseNone, fmt.Errorf("%w: failed to get salon weekly hours: %v", ErrInternal, err)
	}

	staffHours, err := uc.scheduleRepo.GetWeeklyHours(ctx, salonID, ptr.Ptr(staffID))
	if err != nil {
		uc.logger.Error("CreateAppointment: failed to get staff weekly hours: %v", err)
		return domain.ClosedDay(), scheduling.CauseNone, fmt.Errorf("%w: failed to get staff weekly hours: %v", ErrInternal, err)
	}

	week, err := scheduling.ResolveWeek(salonHours, staffHours)
	if err != nil {
		uc.logger.Error("CreateAppointment: invalid weekly schedule for salon=%d, staff=%d: %v", salonID, staffID, err)
		return domain.ClosedDay(), scheduling.CauseNone, fmt.Errorf("%w: %v", ErrInvalidSchedule, err)
	}

	exceptions, err := uc.scheduleRepo.ListExceptions(ctx, salonID, staffID, date, date)
	if err != nil {
		uc.logger.Error("CreateAppointment: failed to get schedule exceptions: %v", err)
		return domain.ClosedDay(), scheduling.CauseNone, fmt.Errorf("%w: failed to get schedule exceptions: %v", ErrInternal, err)
	}

	day, cause, err := scheduling.ResolveDay(week, date, staffID, exceptions)
	if err != nil {
		uc.logger.Error("CreateAppointment: invalid schedule exception for salon=%d, staff=%d: %v", salonID, staffID, err)
		return domain.ClosedDay(), scheduling.CauseNone, fmt.Errorf("%w: %v", ErrInvalidSchedule, err)
	}

	return day, cause, nil
}
