package validate_booking

import "errors"

var (
	// ErrSalonNotFound возвращается, когда салон не найден
	ErrSalonNotFound = errors.New("validate_booking: salon not found")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("validate_booking: invalid input data")

	// ErrInvalidSchedule возвращается при некорректных данных расписания
	ErrInvalidSchedule = errors.New("validate_booking: invalid schedule data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("validate_booking: internal error")
)
