package appointments

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-SalonService/internal/domain"
	appointmentRepo "github.com/m04kA/SMC-SalonService/internal/infra/storage/appointment"
	catalogClient "github.com/m04kA/SMC-SalonService/internal/integrations/catalogservice"
	"github.com/m04kA/SMC-SalonService/internal/service/appointments/models"
)

// Service сервис для работы с записями
type Service struct {
	appointmentRepo AppointmentRepository
	catalogClient   CatalogServiceClient
	logger          Logger
}

// NewService создает новый экземпляр сервиса записей
func NewService(
	appointmentRepo AppointmentRepository,
	catalogClient CatalogServiceClient,
	logger Logger,
) *Service {
	return &Service{
		appointmentRepo: appointmentRepo,
		catalogClient:   catalogClient,
		logger:          logger,
	}
}

// GetByID получает запись по ID
// Проверяет права доступа - клиент видит только свою запись,
// менеджер салона видит любую запись салона
func (s *Service) GetByID(ctx context.Context, id int64, userID int64) (*models.AppointmentResponse, error) {
	s.logger.Info("GetByID: fetching appointment id=%d for user=%d", id, userID)

	appointment, err := s.appointmentRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
			s.logger.Warn("GetByID: appointment id=%d not found", id)
			return nil, ErrAppointmentNotFound
		}
		s.logger.Error("GetByID: repository error for appointment id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	// Проверяем права доступа
	if err := s.checkUserAccess(ctx, appointment, userID); err != nil {
		s.logger.Warn("GetByID: access denied for user=%d to appointment id=%d", userID, id)
		return nil, err
	}

	s.logger.Info("GetByID: successfully fetched appointment id=%d", id)
	return models.FromDomainAppointment(appointment), nil
}

// GetStaffAppointments получает записи мастера с гибкой фильтрацией
// Поддерживает фильтрацию по периоду, статусу и включению неактивных записей
// Доступно менеджерам салона и самому мастеру
//
// Примеры использования:
// - Все активные записи: GetStaffAppointments(ctx, &GetStaffAppointmentsRequest{SalonID: 1, StaffID: 2, UserID: 3})
// - Записи на дату: FromUTC и ToUTC указывают на границы суток
// - Только подтвержденные: указать Status = "confirmed"
// - Включая отменённые: IncludeInactive = true
func (s *Service) GetStaffAppointments(ctx context.Context, req *models.GetStaffAppointmentsRequest) (*models.AppointmentListResponse, error) {
	s.logger.Info("GetStaffAppointments: fetching appointments for salon=%d, staff=%d, user=%d",
		req.SalonID, req.StaffID, req.UserID)

	// Проверяем права доступа: сам мастер или менеджер салона
	if req.UserID != req.StaffID {
		if err := s.checkManagerAccess(ctx, req.SalonID, req.UserID); err != nil {
			return nil, err
		}
	}

	// Конвертируем request в domain фильтр
	filter, err := req.ToDomainFilter()
	if err != nil {
		s.logger.Warn("GetStaffAppointments: invalid filter for staff=%d: %v", req.StaffID, err)
		return nil, fmt.Errorf("%w: invalid filter", ErrInvalidInput)
	}

	// Получаем записи с фильтрацией
	appointments, err := s.appointmentRepo.GetByStaffWithFilter(ctx, filter)
	if err != nil {
		s.logger.Error("GetStaffAppointments: repository error for staff=%d: %v", req.StaffID, err)
		return nil, fmt.Errorf("%w: GetStaffAppointments - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetStaffAppointments: successfully fetched %d appointments for staff=%d",
		len(appointments), req.StaffID)
	return models.FromDomainAppointmentList(appointments), nil
}

// Cancel отменяет запись
// Клиент может отменить только свою запись (cancelled_by_client)
// Менеджер может отменить любую запись салона (cancelled_by_salon)
func (s *Service) Cancel(ctx context.Context, appointmentID int64, req *models.CancelAppointmentRequest) error {
	s.logger.Info("Cancel: cancelling appointment id=%d by user=%d", appointmentID, req.UserID)

	// Получаем запись
	appointment, err := s.appointmentRepo.GetByID(ctx, appointmentID)
	if err != nil {
		if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
			s.logger.Warn("Cancel: appointment id=%d not found", appointmentID)
			return ErrAppointmentNotFound
		}
		s.logger.Error("Cancel: repository error for appointment id=%d: %v", appointmentID, err)
		return fmt.Errorf("%w: Cancel - repository error: %v", ErrInternal, err)
	}

	// Проверяем, можно ли отменить запись
	if !appointment.CanBeCancelled() {
		s.logger.Warn("Cancel: appointment id=%d cannot be cancelled, status=%s", appointmentID, appointment.Status)
		return ErrCannotCancel
	}

	// Определяем статус отмены в зависимости от прав доступа
	var cancelStatus domain.AppointmentStatus

	// Проверяем, является ли пользователь владельцем записи
	if appointment.ClientID == req.UserID {
		cancelStatus = domain.StatusCancelledByClient
	} else {
		// Проверяем, является ли пользователь менеджером салона
		if err := s.checkManagerAccess(ctx, appointment.SalonID, req.UserID); err != nil {
			s.logger.Warn("Cancel: access denied for user=%d to cancel appointment id=%d", req.UserID, appointmentID)
			return ErrAccessDenied
		}
		cancelStatus = domain.StatusCancelledBySalon
	}

	// Отменяем запись
	if err := s.appointmentRepo.Cancel(ctx, appointmentID, cancelStatus, req.CancellationReason); err != nil {
		if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
			s.logger.Warn("Cancel: appointment id=%d not found during cancellation", appointmentID)
			return ErrAppointmentNotFound
		}
		s.logger.Error("Cancel: repository error for appointment id=%d: %v", appointmentID, err)
		return fmt.Errorf("%w: Cancel - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Cancel: successfully cancelled appointment id=%d with status=%s", appointmentID, cancelStatus)
	return nil
}

// UpdateStatus обновляет статус записи
// Доступно только менеджерам салона
func (s *Service) UpdateStatus(ctx context.Context, appointmentID int64, req *models.UpdateStatusRequest) error {
	s.logger.Info("UpdateStatus: updating appointment id=%d to status=%s by user=%d",
		appointmentID, req.Status, req.UserID)

	// Получаем запись
	appointment, err := s.appointmentRepo.GetByID(ctx, appointmentID)
	if err != nil {
		if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
			s.logger.Warn("UpdateStatus: appointment id=%d not found", appointmentID)
			return ErrAppointmentNotFound
		}
		s.logger.Error("UpdateStatus: repository error for appointment id=%d: %v", appointmentID, err)
		return fmt.Errorf("%w: UpdateStatus - repository error: %v", ErrInternal, err)
	}

	// Проверяем права доступа (только менеджер салона)
	if err := s.checkManagerAccess(ctx, appointment.SalonID, req.UserID); err != nil {
		return err
	}

	// Валидируем и конвертируем статус
	newStatus, err := models.ToDomainAppointmentStatus(req.Status)
	if err != nil {
		s.logger.Warn("UpdateStatus: invalid status=%s for appointment id=%d", req.Status, appointmentID)
		return fmt.Errorf("%w: invalid status", ErrInvalidInput)
	}

	// Обновляем статус
	if err := s.appointmentRepo.UpdateStatus(ctx, appointmentID, newStatus); err != nil {
		if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
			s.logger.Warn("UpdateStatus: appointment id=%d not found during update", appointmentID)
			return ErrAppointmentNotFound
		}
		s.logger.Error("UpdateStatus: repository error for appointment id=%d: %v", appointmentID, err)
		return fmt.Errorf("%w: UpdateStatus - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("UpdateStatus: successfully updated appointment id=%d to status=%s", appointmentID, newStatus)
	return nil
}

// Вспомогательные методы

// checkUserAccess проверяет, что пользователь имеет доступ к записи
// Клиент видит свою запись, мастер - записи к себе, менеджер - записи салона
func (s *Service) checkUserAccess(ctx context.Context, appointment *domain.Appointment, userID int64) error {
	// Если пользователь владелец записи или мастер - доступ разрешён
	if appointment.ClientID == userID || appointment.StaffID == userID {
		return nil
	}

	// Проверяем, является ли пользователь менеджером салона
	if err := s.checkManagerAccess(ctx, appointment.SalonID, userID); err != nil {
		// Ошибка уже залогирована в checkManagerAccess
		return ErrAccessDenied
	}

	return nil
}

// checkManagerAccess проверяет, что пользователь является менеджером салона
func (s *Service) checkManagerAccess(ctx context.Context, salonID int64, userID int64) error {
	// Получаем салон через CatalogService
	salon, err := s.catalogClient.GetSalon(ctx, salonID)
	if err != nil {
		if errors.Is(err, catalogClient.ErrSalonNotFound) {
			s.logger.Warn("checkManagerAccess: salon id=%d not found", salonID)
			return ErrSalonNotFound
		}
		s.logger.Error("checkManagerAccess: failed to get salon id=%d: %v", salonID, err)
		return fmt.Errorf("%w: checkManagerAccess - failed to get salon: %v", ErrInternal, err)
	}

	// Проверяем, что userID в списке менеджеров
	for _, managerID := range salon.ManagerIDs {
		if managerID == userID {
			s.logger.Info("checkManagerAccess: user=%d is manager of salon=%d", userID, salonID)
			return nil
		}
	}

	s.logger.Warn("checkManagerAccess: user=%d is not a manager of salon=%d", userID, salonID)
	return ErrAccessDenied
}
