package get_available_slots

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

// UseCase use case для получения доступных слотов для записи
type UseCase struct {
	appointmentRepo AppointmentRepository
	scheduleRepo    ScheduleRepository
	salonRepo       SalonRepository
	catalogClient   CatalogServiceClient
	timeProvider    TimeProvider
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	appointmentRepo AppointmentRepository,
	scheduleRepo ScheduleRepository,
	salonRepo SalonRepository,
	catalogClient CatalogServiceClient,
	logger Logger,
) *UseCase {
	return &UseCase{
		appointmentRepo: appointmentRepo,
		scheduleRepo:    scheduleRepo,
		salonRepo:       salonRepo,
		catalogClient:   catalogClient,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// Execute выполняет use case получения доступных слотов
//
// Композиция: недельный шаблон (салон + мастер) -> наложение исключений на
// дату -> генерация слотов с проверкой конфликтов по активным записям.
// Use case чисто читающий: данные берутся снапшотом на момент запроса
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetAvailableSlots: salon=%d, staff=%d, service=%d, date=%s",
		req.SalonID, req.StaffID, req.ServiceID, req.Date.Format(domain.DateFormat))

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetAvailableSlots: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем настройки салона (таймзона, шаг сетки, дефолтный буфер)
	settings, err := uc.salonRepo.GetSettings(ctx, req.SalonID)
	if err != nil {
		if errors.Is(err, salonRepo.ErrSettingsNotFound) {
			uc.logger.Warn("GetAvailableSlots: salon id=%d not found", req.SalonID)
			return nil, ErrSalonNotFound
		}
		uc.logger.Error("GetAvailableSlots: failed to get salon settings id=%d: %v", req.SalonID, err)
		return nil, fmt.Errorf("%w: failed to get salon settings: %v", ErrInternal, err)
	}

	loc, err := settings.Location()
	if err != nil {
		uc.logger.Error("GetAvailableSlots: salon id=%d has invalid timezone %q: %v", req.SalonID, settings.Timezone, err)
		return nil, fmt.Errorf("%w: invalid salon timezone %q: %v", ErrInternal, settings.Timezone, err)
	}

	// 3. Получаем услугу (длительность и буфер)
	service, err := uc.catalogClient.GetService(ctx, req.SalonID, req.ServiceID)
	if err != nil {
		if errors.Is(err, catalogClient.ErrServiceNotFound) {
			uc.logger.Warn("GetAvailableSlots: service id=%d not found", req.ServiceID)
			return nil, ErrServiceNotFound
		}
		uc.logger.Error("GetAvailableSlots: failed to get service id=%d: %v", req.ServiceID, err)
		return nil, fmt.Errorf("%w: failed to get service: %v", ErrInternal, err)
	}

	// 4. Проверяем существование мастера и что он выполняет услугу
	if _, err := uc.catalogClient.GetStaffMember(ctx, req.SalonID, req.StaffID); err != nil {
		if errors.Is(err, catalogClient.ErrStaffNotFound) {
			uc.logger.Warn("GetAvailableSlots: staff id=%d not found in salon id=%d", req.StaffID, req.SalonID)
			return nil, ErrStaffNotFound
		}
		uc.logger.Error("GetAvailableSlots: failed to get staff id=%d: %v", req.StaffID, err)
		return nil, fmt.Errorf("%w: failed to get staff member: %v", ErrInternal, err)
	}

	if err := validateStaffProvidesService(service, req.StaffID); err != nil {
		uc.logger.Warn("GetAvailableSlots: staff id=%d does not provide service id=%d", req.StaffID, req.ServiceID)
		return nil, err
	}

	// 5. Дата в прошлом - пустой список слотов, не ошибка
	now := uc.timeProvider.Now()
	if isDateInPast(req.Date, now, loc) {
		uc.logger.Info("GetAvailableSlots: date %s is in the past", req.Date.Format(domain.DateFormat))
		return uc.emptyResponse(req, settings), nil
	}

	// 6. Собираем эффективное недельное расписание мастера
	day, _, err := uc.resolveDay(ctx, req.SalonID, req.StaffID, req.Date)
	if err != nil {
		return nil, err
	}

	// 7. Закрытый день - пустой список без причин по слотам
	if !day.Working {
		uc.logger.Info("GetAvailableSlots: staff id=%d is off on %s", req.StaffID, req.Date.Format(domain.DateFormat))
		return uc.emptyResponse(req, settings), nil
	}

	// 8. Получаем активные записи мастера на локальные сутки
	dayStart, dayEnd, err := scheduling.DayBoundsUTC(req.Date, loc)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to compute day bounds: %v", err)
		return nil, fmt.Errorf("%w: failed to compute day bounds: %v", ErrInternal, err)
	}

	appointments, err := uc.appointmentRepo.GetByStaffWithFilter(ctx, domain.StaffAppointmentsFilter{
		SalonID: req.SalonID,
		StaffID: req.StaffID,
		FromUTC: ptr.Ptr(dayStart),
		ToUTC:   ptr.Ptr(dayEnd),
	})
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to get appointments: %v", err)
		return nil, fmt.Errorf("%w: failed to get appointments: %v", ErrInternal, err)
	}

	// 9. Генерируем слоты
	slots, err := scheduling.GenerateSlots(scheduling.SlotParams{
		Date:                   req.Date,
		Location:               loc,
		Day:                    day,
		ServiceDurationMinutes: service.DurationMinutes,
		BufferMinutes:          bufferMinutes(service, settings),
		StepMinutes:            stepMinutes(req, settings),
		Appointments:           appointments,
	})
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to generate slots: %v", err)
		return nil, fmt.Errorf("%w: failed to generate slots: %v", ErrInternal, err)
	}

	uc.logger.Info("GetAvailableSlots: generated %d slots for salon=%d, staff=%d, date=%s",
		len(slots), req.SalonID, req.StaffID, req.Date.Format(domain.DateFormat))

	return &Response{
		Date:      req.Date,
		SalonID:   req.SalonID,
		StaffID:   req.StaffID,
		ServiceID: req.ServiceID,
		Timezone:  settings.Timezone,
		Slots:     slots,
	}, nil
}

// resolveDay собирает итоговый рабочий интервал мастера на дату:
// недельные шаблоны салона и мастера + исключения расписания
func (uc *UseCase) resolveDay(ctx context.Context, salonID, staffID int64, date time.Time) (domain.EffectiveDay, scheduling.ClosureCause, error) {
	salonHours, err := uc.scheduleRepo.GetWeeklyHours(ctx, salonID, nil)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to get salon weekly hours: %v", err)
		return domain.ClosedDay(), scheduling.CauseNone, fmt.Errorf("%w: failed to get salon weekly hours: %v", ErrInternal, err)
	}

	staffHours, err := uc.scheduleRepo.GetWeeklyHours(ctx, salonID, ptr.Ptr(staffID))
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to get staff weekly hours: %v", err)
		return domain.ClosedDay(), scheduling.CauseNone, fmt.Errorf("%w: failed to get staff weekly hours: %v", ErrInternal, err)
	}

	week, err := scheduling.ResolveWeek(salonHours, staffHours)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: invalid weekly schedule for salon=%d, staff=%d: %v", salonID, staffID, err)
		return domain.ClosedDay(), scheduling.CauseNone, fmt.Errorf("%w: %v", ErrInvalidSchedule, err)
	}

	exceptions, err := uc.scheduleRepo.ListExceptions(ctx, salonID, staffID, date, date)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to get schedule exceptions: %v", err)
		return domain.ClosedDay(), scheduling.CauseNone, fmt.Errorf("%w: failed to get schedule exceptions: %v", ErrInternal, err)
	}

	day, cause, err := scheduling.ResolveDay(week, date, staffID, exceptions)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: invalid schedule exception for salon=%d, staff=%d: %v", salonID, staffID, err)
		return domain.ClosedDay(), scheduling.CauseNone, fmt.Errorf("%w: %v", ErrInvalidSchedule, err)
	}

	return day, cause, nil
}

func (uc *UseCase) emptyResponse(req *Request, settings *domain.SalonSettings) *Response {
	return &Response{
		Date:      req.Date,
		SalonID:   req.SalonID,
		StaffID:   req.StaffID,
		ServiceID: req.ServiceID,
		Timezone:  settings.Timezone,
		Slots:     []domain.Slot{},
	}
}

// bufferMinutes возвращает буфер услуги или дефолт салона
func bufferMinutes(service *catalogClient.Service, settings *domain.SalonSettings) int {
	if service.BufferMinutes != nil {
		return *service.BufferMinutes
	}
	return settings.DefaultBufferMinutes
}

// stepMinutes возвращает шаг генерации слотов. Запрос может укрупнить шаг
// салона, но не сделать его мельче
func stepMinutes(req *Request, settings *domain.SalonSettings) int {
	if req.StepMinutes != nil && *req.StepMinutes > settings.SlotStepMinutes {
		return *req.StepMinutes
	}
	return settings.SlotStepMinutes
}
