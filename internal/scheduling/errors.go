package scheduling

import "errors"

var (
	// ErrInvalidRange возвращается, когда у интервала рабочих часов start >= end
	// Ошибка поднимается в момент чтения записи, чтобы некорректные данные
	// не искажали генерацию слотов
	ErrInvalidRange = errors.New("scheduling: invalid time range, start must be before end")

	// ErrUnknownTimezone возвращается при некорректном IANA идентификаторе таймзоны
	ErrUnknownTimezone = errors.New("scheduling: unknown timezone")
)
