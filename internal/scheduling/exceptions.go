package scheduling

import (
	"fmt"
	"time"

	"github.com/m04kA/SMC-SalonService/internal/domain"
)

// ClosureCause причина закрытия дня после наложения исключений
// Используется для различения SALON_CLOSED и STAFF_OFF при валидации записи
type ClosureCause string

const (
	// CauseNone день не закрыт исключением
	CauseNone ClosureCause = ""
	// CauseSalonClosed день закрыт салонным (staffId = null) исключением
	CauseSalonClosed ClosureCause = "salon_closed"
	// CauseStaffOff день закрыт персональным исключением мастера
	CauseStaffOff ClosureCause = "staff_off"
)

// ResolveDay накладывает исключения расписания на эффективный недельный шаблон
// и возвращает итоговый рабочий интервал (или закрытый день) на конкретную дату
//
// Порядок приоритетов (сверху вниз):
//  1. салонное закрывающее исключение, покрывающее дату - мастер не работает
//     независимо от всего остального
//  2. персональное исключение мастера: day_off/sick_leave закрывает день,
//     custom_hours заменяет рабочий интервал (или закрывает при isWorkingDay=false)
//  3. салонное custom_hours с isWorkingDay=true заменяет интервал
//  4. запись эффективного недельного шаблона на день недели даты
//
// Если дату покрывают несколько исключений одного приоритета (целостность
// данных ядро не контролирует, но обязано переживать), побеждает исключение
// с самым поздним startDate, при равенстве - с большим id. Это документированный
// tie-break, а не случайный выбор.
func ResolveDay(
	week [DaysPerWeek]domain.EffectiveDay,
	date time.Time,
	staffID int64,
	exceptions []domain.ScheduleException,
) (domain.EffectiveDay, ClosureCause, error) {
	var salonWide, staffScoped []domain.ScheduleException

	for _, exc := range exceptions {
		if !exc.Covers(date) || !exc.AppliesTo(staffID) {
			continue
		}
		if exc.IsSalonWide() {
			salonWide = append(salonWide, exc)
		} else {
			staffScoped = append(staffScoped, exc)
		}
	}

	// 1. Салонное закрытие перекрывает всё
	for _, exc := range salonWide {
		if exc.Closes() {
			return domain.ClosedDay(), CauseSalonClosed, nil
		}
	}

	// 2. Персональное исключение мастера
	if winner := pickWinner(staffScoped); winner != nil {
		if winner.Closes() {
			return domain.ClosedDay(), CauseStaffOff, nil
		}
		day, err := customHoursDay(winner)
		return day, CauseNone, err
	}

	// 3. Салонное custom_hours (не закрывающее - закрывающие обработаны выше)
	if winner := pickWinner(salonWide); winner != nil {
		day, err := customHoursDay(winner)
		return day, CauseNone, err
	}

	// 4. Эффективный недельный шаблон
	return week[int(date.Weekday())], CauseNone, nil
}

// pickWinner выбирает исключение с самым поздним startDate (затем с большим id)
func pickWinner(candidates []domain.ScheduleException) *domain.ScheduleException {
	var winner *domain.ScheduleException

	for i := range candidates {
		c := &candidates[i]
		if winner == nil {
			winner = c
			continue
		}
		if c.StartDate.After(winner.StartDate) ||
			(c.StartDate.Equal(winner.StartDate) && c.ID > winner.ID) {
			winner = c
		}
	}

	return winner
}

// customHoursDay строит открытый день из custom_hours исключения
// Интервал валидируется в момент чтения (ErrInvalidRange при start >= end)
func customHoursDay(exc *domain.ScheduleException) (domain.EffectiveDay, error) {
	if exc.CustomStart == nil || exc.CustomEnd == nil {
		return domain.ClosedDay(), fmt.Errorf("%w: custom_hours exception id %d has no interval", ErrInvalidRange, exc.ID)
	}

	if err := validateRange(*exc.CustomStart, *exc.CustomEnd); err != nil {
		return domain.ClosedDay(), fmt.Errorf("%w (exception id %d)", err, exc.ID)
	}

	return domain.OpenDay(*exc.CustomStart, *exc.CustomEnd), nil
}
