package salon

import "errors"

var (
	// ErrSettingsNotFound возвращается, когда настройки салона не найдены
	ErrSettingsNotFound = errors.New("salon settings not found")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("salon repository: build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("salon repository: execute query")

	// ErrScanRow возвращается при ошибке чтения строки результата
	ErrScanRow = errors.New("salon repository: scan row")
)
