package schedule

import "errors"

var (
	// ErrExceptionNotFound возвращается, когда исключение расписания не найдено
	ErrExceptionNotFound = errors.New("schedule exception not found")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("schedule repository: build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("schedule repository: execute query")

	// ErrScanRow возвращается при ошибке чтения строки результата
	ErrScanRow = errors.New("schedule repository: scan row")
)
