package schedule

import "errors"

var (
	// ErrSalonNotFound возвращается, когда салон не найден
	ErrSalonNotFound = errors.New("salon not found")

	// ErrStaffNotFound возвращается, когда мастер не найден в салоне
	ErrStaffNotFound = errors.New("staff member not found")

	// ErrExceptionNotFound возвращается, когда исключение расписания не найдено
	ErrExceptionNotFound = errors.New("schedule exception not found")

	// ErrAccessDenied возвращается, когда у пользователя нет прав доступа
	ErrAccessDenied = errors.New("access denied")

	// ErrInvalidSchedule возвращается при некорректных данных расписания
	ErrInvalidSchedule = errors.New("invalid schedule data")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
