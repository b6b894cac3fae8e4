package get_available_slots

import "errors"

var (
	// ErrSalonNotFound возвращается, когда салон не найден
	ErrSalonNotFound = errors.New("get_available_slots: salon not found")

	// ErrServiceNotFound возвращается, когда услуга не найдена
	ErrServiceNotFound = errors.New("get_available_slots: service not found")

	// ErrStaffNotFound возвращается, когда мастер не найден в салоне
	ErrStaffNotFound = errors.New("get_available_slots: staff member not found")

	// ErrStaffNotProvidingService возвращается, когда мастер не выполняет услугу
	ErrStaffNotProvidingService = errors.New("get_available_slots: staff member does not provide this service")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("get_available_slots: invalid input data")

	// ErrInvalidSchedule возвращается при некорректных данных расписания
	// (битый формат времени или start >= end в рабочих часах)
	ErrInvalidSchedule = errors.New("get_available_slots: invalid schedule data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("get_available_slots: internal error")
)
