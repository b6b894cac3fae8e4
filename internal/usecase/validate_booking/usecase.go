package validate_booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-SalonService/internal/domain"
	salonRepo "github.com/m04kA/SMC-SalonService/internal/infra/storage/salon"
	"github.com/m04kA/SMC-SalonService/internal/scheduling"
	"github.com/m04kA/SMC-SalonService/pkg/ptr"
)

// UseCase use case для проверки предлагаемого интервала записи
//
// Read-path проверка для формы записи: отвечает "можно ли записаться на этот
// интервал" без гарантий на момент создания. Авторитетная проверка повторяется
// в create_appointment внутри serializable транзакции
type UseCase struct {
	appointmentRepo AppointmentRepository
	scheduleRepo    ScheduleRepository
	salonRepo       SalonRepository
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	appointmentRepo AppointmentRepository,
	scheduleRepo ScheduleRepository,
	salonRepo SalonRepository,
	logger Logger,
) *UseCase {
	return &UseCase{
		appointmentRepo: appointmentRepo,
		scheduleRepo:    scheduleRepo,
		salonRepo:       salonRepo,
		logger:          logger,
	}
}

// Execute выполняет проверку интервала: рабочие часы мастера на дату,
// границы интервала, конфликты с активными записями
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("ValidateBooking: salon=%d, staff=%d, interval=[%s, %s)",
		req.SalonID, req.StaffID, req.StartUTC.Format(time.RFC3339), req.EndUTC.Format(time.RFC3339))

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("ValidateBooking: validation failed: %v", err)
		return nil, err
	}

	// 2. Настройки салона и таймзона
	settings, err := uc.salonRepo.GetSettings(ctx, req.SalonID)
	if err != nil {
		if errors.Is(err, salonRepo.ErrSettingsNotFound) {
			uc.logger.Warn("ValidateBooking: salon id=%d not found", req.SalonID)
			return nil, ErrSalonNotFound
		}
		uc.logger.Error("ValidateBooking: failed to get salon settings id=%d: %v", req.SalonID, err)
		return nil, fmt.Errorf("%w: failed to get salon settings: %v", ErrInternal, err)
	}

	loc, err := settings.Location()
	if err != nil {
		uc.logger.Error("ValidateBooking: salon id=%d has invalid timezone %q: %v", req.SalonID, settings.Timezone, err)
		return nil, fmt.Errorf("%w: invalid salon timezone %q: %v", ErrInternal, settings.Timezone, err)
	}

	// 3. Рабочий интервал мастера на локальную дату начала записи
	date, _ := scheduling.ToLocal(req.StartUTC, loc)

	day, cause, err := uc.resolveDay(ctx, req.SalonID, req.StaffID, date)
	if err != nil {
		return nil, err
	}

	if !day.Working {
		return &Response{Valid: false, Reason: closureReason(cause)}, nil
	}

	// 4. Интервал должен целиком лежать внутри рабочих часов
	workStart, err := scheduling.ToUTCInstant(date, day.Start, loc)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidSchedule, err)
	}
	workEnd, err := scheduling.ToUTCInstant(date, day.End, loc)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidSchedule, err)
	}

	if req.StartUTC.Before(workStart) || req.EndUTC.After(workEnd) {
		uc.logger.Info("ValidateBooking: interval outside working hours [%s, %s)",
			workStart.Format(time.RFC3339), workEnd.Format(time.RFC3339))
		return &Response{Valid: false, Reason: domain.ReasonOutsideWorkingHours}, nil
	}

	// 5. Конфликты с активными записями мастера
	appointments, err := uc.appointmentRepo.GetByStaffWithFilter(ctx, domain.StaffAppointmentsFilter{
		SalonID: req.SalonID,
		StaffID: req.StaffID,
		FromUTC: ptr.Ptr(req.StartUTC),
		ToUTC:   ptr.Ptr(req.EndUTC),
	})
	if err != nil {
		uc.logger.Error("ValidateBooking: failed to get appointments: %v", err)
		return nil, fmt.Errorf("%w: failed to get appointments: %v", ErrInternal, err)
	}

	if conflict := scheduling.FindConflict(req.StartUTC, req.EndUTC, appointments); conflict != nil {
		uc.logger.Info("ValidateBooking: conflict with appointment id=%d", conflict.ID)
		return &Response{
			Valid:                    false,
			Reason:                   domain.ReasonAppointmentConflict,
			ConflictingAppointmentID: ptr.Ptr(conflict.ID),
		}, nil
	}

	return &Response{Valid: true}, nil
}

// resolveDay собирает итоговый рабочий интервал мастера на дату
func (uc *UseCase) resolveDay(ctx context.Context, salonID, staffID int64, date time.Time) (domain.EffectiveDay, scheduling.ClosureCause, error) {
	salonHours, err := uc.scheduleRepo.GetWeeklyHours(ctx, salonID, nil)
	if err != nil {
		uc.logger.Error("ValidateBooking: failed to get salon weekly hours: %v", err)
		return domain.ClosedDay(), scheduling.CauseNone, fmt.Errorf("%w: failed to get salon weekly hours: %v", ErrInternal, err)
	}

	staffHours, err := uc.scheduleRepo.GetWeeklyHours(ctx, salonID, ptr.Ptr(staffID))
	if err != nil {
		uc.logger.Error("ValidateBooking: failed to get staff weekly hours: %v", err)
		return domain.ClosedDay(), scheduling.CauseNone, fmt.Errorf("%w: failed to get staff weekly hours: %v", ErrInternal, err)
	}

	week, err := scheduling.ResolveWeek(salonHours, staffHours)
	if err != nil {
		uc.logger.Error("ValidateBooking: invalid weekly schedule for salon=%d, staff=%d: %v", salonID, staffID, err)
		return domain.ClosedDay(), scheduling.CauseNone, fmt.Errorf("%w: %v", ErrInvalidSchedule, err)
	}

	exceptions, err := uc.scheduleRepo.ListExceptions(ctx, salonID, staffID, date, date)
	if err != nil {
		uc.logger.Error("ValidateBooking: failed to get schedule exceptions: %v", err)
		return domain.ClosedDay(), scheduling.CauseNone, fmt.Errorf("%w: failed to get schedule exceptions: %v", ErrInternal, err)
	}

	day, cause, err := scheduling.ResolveDay(week, date, staffID, exceptions)
	if err != nil {
		uc.logger.Error("ValidateBooking: invalid schedule exception for salon=%d, staff=%d: %v", salonID, staffID, err)
		return domain.ClosedDay(), scheduling.CauseNone, fmt.Errorf("%w: %v", ErrInvalidSchedule, err)
	}

	return day, cause, nil
}

// closureReason маппит причину закрытия дня на причину недоступности.
// Закрытие недельным шаблоном (cause=none) относим к мастеру: салонные
// закрытия приходят только через салонные исключения
func closureReason(cause scheduling.ClosureCause) domain.UnavailabilityReason {
	if cause == scheduling.CauseSalonClosed {
		return domain.ReasonSalonClosed
	}
	return domain.ReasonStaffOff
}

func validateRequest(req *Request) error {
	if req.SalonID <= 0 {
		return fmt.Errorf("%w: salonID must be positive", ErrInvalidInput)
	}

	if req.StaffID <= 0 {
		return fmt.Errorf("%w: staffID must be positive", ErrInvalidInput)
	}

	if req.StartUTC.IsZero() || req.EndUTC.IsZero() {
		return fmt.Errorf("%w: startTime and endTime are required", ErrInvalidInput)
	}

	if !req.StartUTC.Before(req.EndUTC) {
		return fmt.Errorf("%w: startTime must be before endTime", ErrInvalidInput)
	}

	return nil
}
