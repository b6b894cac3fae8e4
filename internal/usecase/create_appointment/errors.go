package create_appointment

import "errors"

var (
	// ErrSalonNotFound возвращается, когда салон не найден
	ErrSalonNotFound = errors.New("create_appointment: salon not found")

	// ErrServiceNotFound возвращается, когда услуга не найдена
	ErrServiceNotFound = errors.New("create_appointment: service not found")

	// ErrStaffNotFound возвращается, когда мастер не найден в салоне
	ErrStaffNotFound = errors.New("create_appointment: staff member not found")

	// ErrStaffNotProvidingService возвращается, когда мастер не выполняет услугу
	ErrStaffNotProvidingService = errors.New("create_appointment: staff member does not provide this service")

	// ErrInvalidDate возвращается при дате записи в прошлом
	ErrInvalidDate = errors.New("create_appointment: invalid appointment date")

	// ErrSalonClosed возвращается, когда салон закрыт в указанную дату
	ErrSalonClosed = errors.New("create_appointment: salon is closed on this date")

	// ErrStaffOff возвращается, когда мастер не работает в указанную дату
	ErrStaffOff = errors.New("create_appointment: staff member is off on this date")

	// ErrOutsideWorkingHours возвращается, когда интервал выходит за рабочие часы мастера
	ErrOutsideWorkingHours = errors.New("create_appointment: appointment is outside working hours")

	// ErrTimeConflict возвращается при пересечении с существующей активной записью
	ErrTimeConflict = errors.New("create_appointment: time conflict with existing appointment")

	// ErrInvalidSchedule возвращается при некорректных данных расписания
	ErrInvalidSchedule = errors.New("create_appointment: invalid schedule data")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_appointment: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_appointment: internal error")
)
