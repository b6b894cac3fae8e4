package scheduling

import (
	"time"

	"github.com/m04kA/SMC-SalonService/pkg/types"
)

// ToUTCInstant резолвит локальное wall-clock время на дату date в таймзоне loc
// в абсолютный момент времени (UTC)
//
// Переходы на летнее/зимнее время обрабатываются детерминированно:
//   - несуществующее локальное время (перевод стрелок вперед) сдвигается
//     вперед на величину пропуска (02:30 при переходе 02:00->03:00 даст 03:30)
//   - неоднозначное локальное время (перевод стрелок назад) резолвится
//     в первое вхождение (более ранний момент)
//
// Ошибки возможны только при некорректном формате времени - генерация слотов
// остается тотальной на всех валидных календарных датах
func ToUTCInstant(date time.Time, localTime types.TimeString, loc *time.Location) (time.Time, error) {
	minutes, err := localTime.Minutes()
	if err != nil {
		return time.Time{}, err
	}

	year, month, day := date.Date()

	// Wall-clock время как если бы таймзона была UTC
	wallUTC := time.Date(year, month, day, 0, 0, 0, 0, time.UTC).
		Add(time.Duration(minutes) * time.Minute)

	// Кандидаты офсетов: за сутки до и через сутки после целевого момента
	// Любой DST переход внутри целевых суток попадает между этими пробами
	_, offBefore := wallUTC.Add(-24 * time.Hour).In(loc).Zone()
	_, offAfter := wallUTC.Add(24 * time.Hour).In(loc).Zone()

	offsets := []int{offBefore}
	if offAfter != offBefore {
		offsets = append(offsets, offAfter)
	}

	// Валидный кандидат - момент, который в loc дает исходное wall-clock время
	// При неоднозначности (два валидных кандидата) берем самый ранний момент
	var resolved time.Time
	found := false

	for _, offset := range offsets {
		candidate := wallUTC.Add(-time.Duration(offset) * time.Second)
		if sameWallClock(candidate.In(loc), year, month, day, minutes) {
			if !found || candidate.Before(resolved) {
				resolved = candidate
				found = true
			}
		}
	}

	if found {
		return resolved, nil
	}

	// Ни один кандидат не воспроизводит wall-clock время - локальное время
	// попало в пропуск перевода стрелок. Берем офсет, действовавший до
	// перехода: полученный момент лежит сразу за пропуском
	return wallUTC.Add(-time.Duration(offBefore) * time.Second), nil
}

// ToLocal обратное преобразование: абсолютный момент -> локальная дата и время
// Дата возвращается как полночь UTC (соглашение для date-only значений)
func ToLocal(instant time.Time, loc *time.Location) (time.Time, types.TimeString) {
	local := instant.In(loc)
	year, month, day := local.Date()
	date := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
	return date, types.NewTimeString(local)
}

// DayBoundsUTC возвращает границы локальных суток [start, end) в UTC
// Используется для выборки бронирований на дату
func DayBoundsUTC(date time.Time, loc *time.Location) (time.Time, time.Time, error) {
	start, err := ToUTCInstant(date, types.TimeString("00:00"), loc)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}

	end, err := ToUTCInstant(date.AddDate(0, 0, 1), types.TimeString("00:00"), loc)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}

	return start, end, nil
}

func sameWallClock(t time.Time, year int, month time.Month, day int, minutes int) bool {
	y, m, d := t.Date()
	return y == year && m == month && d == day && t.Hour()*60+t.Minute() == minutes
}
