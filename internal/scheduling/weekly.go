package scheduling

import (
	"fmt"

	"github.com/m04kA/SMC-SalonService/internal/domain"
	"github.com/m04kA/SMC-SalonService/pkg/types"
)

// DaysPerWeek количество записей в эффективном недельном расписании
const DaysPerWeek = 7

// ResolveWeek собирает эффективное недельное расписание мастера из
// салонного шаблона и персонального шаблона мастера
//
// Правило: если у мастера есть запись на день недели, она полностью заменяет
// салонную (без помержения полей). Иначе действует салонная запись.
// Если нет ни той, ни другой - день закрыт. Отсутствие записей не ошибка.
//
// Записи с isWorkingDay=true и start >= end отклоняются с ErrInvalidRange
func ResolveWeek(salonHours, staffHours []domain.WeeklyWorkingHour) ([DaysPerWeek]domain.EffectiveDay, error) {
	var week [DaysPerWeek]domain.EffectiveDay

	salonByDay, err := indexByDay(salonHours)
	if err != nil {
		return week, err
	}

	staffByDay, err := indexByDay(staffHours)
	if err != nil {
		return week, err
	}

	for day := 0; day < DaysPerWeek; day++ {
		record, ok := staffByDay[day]
		if !ok {
			record, ok = salonByDay[day]
		}

		if !ok || !record.IsWorkingDay {
			week[day] = domain.ClosedDay()
			continue
		}

		week[day] = domain.OpenDay(record.StartTime, record.EndTime)
	}

	return week, nil
}

// indexByDay индексирует записи по дню недели, валидируя интервалы
// При дублях на один день побеждает последняя запись (порядок выборки из БД)
func indexByDay(hours []domain.WeeklyWorkingHour) (map[int]domain.WeeklyWorkingHour, error) {
	byDay := make(map[int]domain.WeeklyWorkingHour, len(hours))

	for _, h := range hours {
		if h.DayOfWeek < 0 || h.DayOfWeek >= DaysPerWeek {
			continue
		}

		if h.IsWorkingDay {
			if err := validateRange(h.StartTime, h.EndTime); err != nil {
				return nil, fmt.Errorf("%w (day %d, id %d)", err, h.DayOfWeek, h.ID)
			}
		}

		byDay[h.DayOfWeek] = h
	}

	return byDay, nil
}

// validateRange проверяет, что интервал парсится и start строго раньше end
// Переход через полночь не поддерживается
func validateRange(start, end types.TimeString) error {
	startMin, err := start.Minutes()
	if err != nil {
		return err
	}

	endMin, err := end.Minutes()
	if err != nil {
		return err
	}

	if startMin >= endMin {
		return ErrInvalidRange
	}

	return nil
}
