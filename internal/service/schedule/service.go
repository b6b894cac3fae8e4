package schedule

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-SalonService/internal/domain"
	scheduleRepo "github.com/m04kA/SMC-SalonService/internal/infra/storage/schedule"
	catalogClient "github.com/m04kA/SMC-SalonService/internal/integrations/catalogservice"
	"github.com/m04kA/SMC-SalonService/internal/scheduling"
	"github.com/m04kA/SMC-SalonService/internal/service/schedule/models"
	"github.com/m04kA/SMC-SalonService/pkg/types"
)

// Service сервис для работы с расписанием салона
type Service struct {
	scheduleRepo  ScheduleRepository
	salonRepo     SalonRepository
	catalogClient CatalogServiceClient
	txManager     TransactionManager
	logger        Logger
}

// NewService создает новый экземпляр сервиса расписания
func NewService(
	scheduleRepo ScheduleRepository,
	salonRepo SalonRepository,
	catalogClient CatalogServiceClient,
	txManager TransactionManager,
	logger Logger,
) *Service {
	return &Service{
		scheduleRepo:  scheduleRepo,
		salonRepo:     salonRepo,
		catalogClient: catalogClient,
		txManager:     txManager,
		logger:        logger,
	}
}

// GetWeekSchedule получает эффективное недельное расписание
// Публичный метод - доступен всем
// Если указан staffId, персональный шаблон мастера накладывается на салонный
func (s *Service) GetWeekSchedule(ctx context.Context, req *models.GetWeekScheduleRequest) (*models.WeekScheduleResponse, error) {
	s.logger.Info("GetWeekSchedule: fetching schedule for salon=%d, staff=%v", req.SalonID, req.StaffID)

	salonHours, err := s.scheduleRepo.GetWeeklyHours(ctx, req.SalonID, nil)
	if err != nil {
		s.logger.Error("GetWeekSchedule: repository error for salon=%d: %v", req.SalonID, err)
		return nil, fmt.Errorf("%w: GetWeekSchedule - repository error: %v", ErrInternal, err)
	}

	var staffHours []domain.WeeklyWorkingHour
	if req.StaffID != nil {
		staffHours, err = s.scheduleRepo.GetWeeklyHours(ctx, req.SalonID, req.StaffID)
		if err != nil {
			s.logger.Error("GetWeekSchedule: repository error for staff=%d: %v", *req.StaffID, err)
			return nil, fmt.Errorf("%w: GetWeekSchedule - repository error: %v", ErrInternal, err)
		}
	}

	week, err := scheduling.ResolveWeek(salonHours, staffHours)
	if err != nil {
		s.logger.Error("GetWeekSchedule: invalid schedule data for salon=%d: %v", req.SalonID, err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidSchedule, err)
	}

	s.logger.Info("GetWeekSchedule: successfully resolved schedule for salon=%d", req.SalonID)
	return models.FromEffectiveWeek(req.SalonID, req.StaffID, week), nil
}

// ReplaceWeeklyHours полностью заменяет недельный шаблон салона или мастера
// Доступно только менеджерам салона
// Замена атомарна: старые записи удаляются и новые вставляются в одной транзакции
func (s *Service) ReplaceWeeklyHours(ctx context.Context, req *models.ReplaceWeeklyHoursRequest) error {
	s.logger.Info("ReplaceWeeklyHours: replacing hours for salon=%d, staff=%v by user=%d",
		req.SalonID, req.StaffID, req.UserID)

	// 1. Проверяем права доступа (только менеджер салона)
	if err := s.checkManagerAccess(ctx, req.SalonID, req.UserID); err != nil {
		return err
	}

	// 2. Если шаблон персональный, проверяем существование мастера
	if req.StaffID != nil {
		if err := s.checkStaffExists(ctx, req.SalonID, *req.StaffID); err != nil {
			return err
		}
	}

	// 3. Валидируем дни шаблона
	if err := validateDays(req.Days); err != nil {
		s.logger.Warn("ReplaceWeeklyHours: validation failed for salon=%d: %v", req.SalonID, err)
		return err
	}

	// 4. Атомарно заменяем шаблон
	hours := req.ToDomainHours()
	err := s.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		return s.scheduleRepo.ReplaceWeeklyHours(txCtx, req.SalonID, req.StaffID, hours)
	})
	if err != nil {
		s.logger.Error("ReplaceWeeklyHours: repository error for salon=%d: %v", req.SalonID, err)
		return fmt.Errorf("%w: ReplaceWeeklyHours - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("ReplaceWeeklyHours: successfully replaced %d records for salon=%d", len(hours), req.SalonID)
	return nil
}

// CreateException создает исключение расписания
// Доступно только менеджерам салона
func (s *Service) CreateException(ctx context.Context, req *models.CreateExceptionRequest) (*models.ExceptionResponse, error) {
	s.logger.Info("CreateException: creating exception for salon=%d, staff=%v by user=%d",
		req.SalonID, req.StaffID, req.UserID)

	// 1. Проверяем права доступа (только менеджер салона)
	if err := s.checkManagerAccess(ctx, req.SalonID, req.UserID); err != nil {
		return nil, err
	}

	// 2. Если исключение персональное, проверяем существование мастера
	if req.StaffID != nil {
		if err := s.checkStaffExists(ctx, req.SalonID, *req.StaffID); err != nil {
			return nil, err
		}
	}

	// 3. Конвертируем и валидируем
	exc, err := req.ToDomainException()
	if err != nil {
		s.logger.Warn("CreateException: invalid request for salon=%d: %v", req.SalonID, err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	if err := validateException(exc); err != nil {
		s.logger.Warn("CreateException: validation failed for salon=%d: %v", req.SalonID, err)
		return nil, err
	}

	// 4. Сохраняем
	created, err := s.scheduleRepo.CreateException(ctx, exc)
	if err != nil {
		s.logger.Error("CreateException: repository error for salon=%d: %v", req.SalonID, err)
		return nil, fmt.Errorf("%w: CreateException - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("CreateException: successfully created exception id=%d", created.ID)
	return models.FromDomainException(created), nil
}

// DeleteException удаляет исключение расписания
// Доступно только менеджерам салона
func (s *Service) DeleteException(ctx context.Context, req *models.DeleteExceptionRequest) error {
	s.logger.Info("DeleteException: deleting exception id=%d for salon=%d by user=%d",
		req.ExceptionID, req.SalonID, req.UserID)

	if err := s.checkManagerAccess(ctx, req.SalonID, req.UserID); err != nil {
		return err
	}

	if err := s.scheduleRepo.DeleteException(ctx, req.SalonID, req.ExceptionID); err != nil {
		if errors.Is(err, scheduleRepo.ErrExceptionNotFound) {
			s.logger.Warn("DeleteException: exception id=%d not found", req.ExceptionID)
			return ErrExceptionNotFound
		}
		s.logger.Error("DeleteException: repository error for exception id=%d: %v", req.ExceptionID, err)
		return fmt.Errorf("%w: DeleteException - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("DeleteException: successfully deleted exception id=%d", req.ExceptionID)
	return nil
}

// UpdateSettings обновляет настройки салона (таймзона, шаг сетки, дефолтный буфер)
// Доступно только менеджерам салона
func (s *Service) UpdateSettings(ctx context.Context, req *models.UpdateSettingsRequest) (*models.SettingsResponse, error) {
	s.logger.Info("UpdateSettings: updating settings for salon=%d by user=%d", req.SalonID, req.UserID)

	if err := s.checkManagerAccess(ctx, req.SalonID, req.UserID); err != nil {
		return nil, err
	}

	if err := validateSettings(req); err != nil {
		s.logger.Warn("UpdateSettings: validation failed for salon=%d: %v", req.SalonID, err)
		return nil, err
	}

	settings := &domain.SalonSettings{
		SalonID:              req.SalonID,
		Timezone:             req.Timezone,
		SlotStepMinutes:      req.SlotStepMinutes,
		DefaultBufferMinutes: req.DefaultBufferMinutes,
	}

	if err := s.salonRepo.UpsertSettings(ctx, settings); err != nil {
		s.logger.Error("UpdateSettings: repository error for salon=%d: %v", req.SalonID, err)
		return nil, fmt.Errorf("%w: UpdateSettings - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("UpdateSettings: successfully updated settings for salon=%d", req.SalonID)
	return models.FromDomainSettings(settings), nil
}

// Вспомогательные методы

// checkManagerAccess проверяет, что пользователь является менеджером салона
func (s *Service) checkManagerAccess(ctx context.Context, salonID int64, userID int64) error {
	salon, err := s.catalogClient.GetSalon(ctx, salonID)
	if err != nil {
		if errors.Is(err, catalogClient.ErrSalonNotFound) {
			s.logger.Warn("checkManagerAccess: salon id=%d not found", salonID)
			return ErrSalonNotFound
		}
		s.logger.Error("checkManagerAccess: failed to get salon id=%d: %v", salonID, err)
		return fmt.Errorf("%w: checkManagerAccess - failed to get salon: %v", ErrInternal, err)
	}

	for _, managerID := range salon.ManagerIDs {
		if managerID == userID {
			s.logger.Info("checkManagerAccess: user=%d is manager of salon=%d", userID, salonID)
			return nil
		}
	}

	s.logger.Warn("checkManagerAccess: user=%d is not a manager of salon=%d", userID, salonID)
	return ErrAccessDenied
}

// checkStaffExists проверяет, что мастер числится в салоне
func (s *Service) checkStaffExists(ctx context.Context, salonID, staffID int64) error {
	salon, err := s.catalogClient.GetSalon(ctx, salonID)
	if err != nil {
		if errors.Is(err, catalogClient.ErrSalonNotFound) {
			return ErrSalonNotFound
		}
		return fmt.Errorf("%w: checkStaffExists - failed to get salon: %v", ErrInternal, err)
	}

	for _, id := range salon.StaffIDs {
		if id == staffID {
			return nil
		}
	}

	s.logger.Warn("checkStaffExists: staff id=%d not found in salon id=%d", staffID, salonID)
	return ErrStaffNotFound
}

// validateDays валидирует дни недельного шаблона
func validateDays(days []models.DayHours) error {
	if len(days) == 0 {
		return fmt.Errorf("%w: days are required", ErrInvalidInput)
	}

	seen := make(map[int]bool, len(days))

	for _, day := range days {
		if day.DayOfWeek < 0 || day.DayOfWeek >= scheduling.DaysPerWeek {
			return fmt.Errorf("%w: dayOfWeek must be in range 0..6", ErrInvalidInput)
		}

		if seen[day.DayOfWeek] {
			return fmt.Errorf("%w: duplicate dayOfWeek %d", ErrInvalidInput, day.DayOfWeek)
		}
		seen[day.DayOfWeek] = true

		if !day.IsWorkingDay {
			continue
		}

		if err := validateTimeRange(day.StartTime, day.EndTime); err != nil {
			return fmt.Errorf("%w: day %d: %v", ErrInvalidSchedule, day.DayOfWeek, err)
		}
	}

	return nil
}

// validateException валидирует исключение расписания
func validateException(exc *domain.ScheduleException) error {
	if exc.EndDate.Before(exc.StartDate) {
		return fmt.Errorf("%w: endDate must not be before startDate", ErrInvalidInput)
	}

	if exc.EndDate.Sub(exc.StartDate) > domain.MaxExceptionRangeDays*24*time.Hour {
		return fmt.Errorf("%w: exception range must not exceed %d days", ErrInvalidInput, domain.MaxExceptionRangeDays)
	}

	if exc.Type != domain.ExceptionCustomHours {
		return nil
	}

	// custom_hours с isWorkingDay=false закрывает день, интервал не нужен
	if !exc.IsWorkingDay {
		return nil
	}

	if exc.CustomStart == nil || exc.CustomEnd == nil {
		return fmt.Errorf("%w: custom_hours exception requires customStart and customEnd", ErrInvalidInput)
	}

	if err := validateTimeRange(exc.CustomStart.String(), exc.CustomEnd.String()); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidSchedule, err)
	}

	return nil
}

// validateTimeRange проверяет формат HH:MM и что start строго раньше end
func validateTimeRange(start, end string) error {
	startMin, err := types.TimeString(start).Minutes()
	if err != nil {
		return err
	}

	endMin, err := types.TimeString(end).Minutes()
	if err != nil {
		return err
	}

	if startMin >= endMin {
		return errors.New("startTime must be before endTime")
	}

	return nil
}

// validateSettings валидирует настройки салона
func validateSettings(req *models.UpdateSettingsRequest) error {
	if _, err := time.LoadLocation(req.Timezone); err != nil {
		return fmt.Errorf("%w: unknown timezone %q", ErrInvalidInput, req.Timezone)
	}

	if req.SlotStepMinutes < domain.MinSlotStepMinutes || req.SlotStepMinutes > domain.MaxSlotStepMinutes {
		return fmt.Errorf("%w: slotStepMinutes must be in range %d..%d",
			ErrInvalidInput, domain.MinSlotStepMinutes, domain.MaxSlotStepMinutes)
	}

	if req.DefaultBufferMinutes < 0 || req.DefaultBufferMinutes > domain.MaxBufferMinutes {
		return fmt.Errorf("%w: defaultBufferMinutes must be in range 0..%d",
			ErrInvalidInput, domain.MaxBufferMinutes)
	}

	return nil
}
