package scheduling

import (
	"time"

	"github.com/m04kA/SMC-SalonService/internal/domain"
)

// Overlaps проверяет пересечение полуоткрытых интервалов [s1, e1) и [s2, e2)
// Интервалы пересекаются только при строгом наложении: запись, заканчивающаяся
// ровно в момент начала другой (back-to-back), конфликтом НЕ является
//
// Примеры:
//   - [10:00, 11:00) и [10:30, 11:30) - конфликт
//   - [10:00, 11:00) и [11:00, 11:30) - НЕ конфликт (граничат)
func Overlaps(s1, e1, s2, e2 time.Time) bool {
	return s1.Before(e2) && s2.Before(e1)
}

// FindConflict ищет первую активную запись мастера, пересекающуюся с
// предложенным интервалом [startUTC, endUTC)
//
// Возвращает найденную запись или nil. Решение о блокировке бронирования
// принимает вызывающая сторона: форма записи показывает предупреждение,
// авторитетная проверка на write-path отклоняет запись
func FindConflict(startUTC, endUTC time.Time, appointments []*domain.Appointment) *domain.Appointment {
	for _, appt := range appointments {
		// Отмененные и no-show записи не занимают интервал
		if !appt.IsActive() {
			continue
		}

		if Overlaps(startUTC, endUTC, appt.StartUTC, appt.EndUTC) {
			return appt
		}
	}

	return nil
}

// HasConflict возвращает true, если интервал пересекается хотя бы с одной
// активной записью мастера
func HasConflict(startUTC, endUTC time.Time, appointments []*domain.Appointment) bool {
	return FindConflict(startUTC, endUTC, appointments) != nil
}
