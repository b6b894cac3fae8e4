package scheduling

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SalonService/internal/domain"
	"github.com/m04kA/SMC-SalonService/pkg/ptr"
	"github.com/m04kA/SMC-SalonService/pkg/types"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func openWeek(start, end string) [DaysPerWeek]domain.EffectiveDay {
	var week [DaysPerWeek]domain.EffectiveDay
	for day := 0; day < DaysPerWeek; day++ {
		week[day] = domain.OpenDay(types.TimeString(start), types.TimeString(end))
	}
	return week
}

func exception(id int64, staffID *int64, from, to time.Time, typ domain.ExceptionType) domain.ScheduleException {
	return domain.ScheduleException{
		ID:        id,
		SalonID:   1,
		StaffID:   staffID,
		StartDate: from,
		EndDate:   to,
		Type:      typ,
	}
}

func customHours(id int64, staffID *int64, from, to time.Time, start, end string) domain.ScheduleException {
	exc := exception(id, staffID, from, to, domain.ExceptionCustomHours)
	exc.CustomStart = ptr.Ptr(types.TimeString(start))
	exc.CustomEnd = ptr.Ptr(types.TimeString(end))
	exc.IsWorkingDay = true
	return exc
}

func TestResolveDay_NoExceptionsFallsBackToWeek(t *testing.T) {
	week := openWeek("09:00", "18:00")
	// 2025-06-10 - вторник
	day, cause, err := ResolveDay(week, date(2025, time.June, 10), 7, nil)

	require.NoError(t, err)
	assert.Equal(t, CauseNone, cause)
	assert.Equal(t, domain.OpenDay("09:00", "18:00"), day)
}

func TestResolveDay_SalonWideClosureBeatsEverything(t *testing.T) {
	week := openWeek("09:00", "18:00")
	target := date(2025, time.June, 10)

	exceptions := []domain.ScheduleException{
		// Персональные кастомные часы мастера не спасают от закрытия салона
		customHours(1, ptr.Ptr(int64(7)), target, target, "12:00", "16:00"),
		exception(2, nil, target, target, domain.ExceptionDayOff),
	}

	day, cause, err := ResolveDay(week, target, 7, exceptions)

	require.NoError(t, err)
	assert.False(t, day.Working)
	assert.Equal(t, CauseSalonClosed, cause)
}

func TestResolveDay_StaffSickLeaveClosesDay(t *testing.T) {
	week := openWeek("09:00", "18:00")
	target := date(2025, time.June, 10)

	exceptions := []domain.ScheduleException{
		exception(1, ptr.Ptr(int64(7)), date(2025, time.June, 9), date(2025, time.June, 12), domain.ExceptionSickLeave),
	}

	day, cause, err := ResolveDay(week, target, 7, exceptions)

	require.NoError(t, err)
	assert.False(t, day.Working)
	assert.Equal(t, CauseStaffOff, cause)
}

func TestResolveDay_StaffExceptionOfOtherStaffIgnored(t *testing.T) {
	week := openWeek("09:00", "18:00")
	target := date(2025, time.June, 10)

	exceptions := []domain.ScheduleException{
		exception(1, ptr.Ptr(int64(99)), target, target, domain.ExceptionDayOff),
	}

	day, cause, err := ResolveDay(week, target, 7, exceptions)

	require.NoError(t, err)
	assert.True(t, day.Working)
	assert.Equal(t, CauseNone, cause)
}

func TestResolveDay_CustomHoursReplaceInterval(t *testing.T) {
	week := openWeek("09:00", "18:00")
	// 2025-06-11 - среда
	target := date(2025, time.June, 11)

	exceptions := []domain.ScheduleException{
		customHours(1, ptr.Ptr(int64(7)), target, target, "12:00", "16:00"),
	}

	day, cause, err := ResolveDay(week, target, 7, exceptions)

	require.NoError(t, err)
	assert.Equal(t, CauseNone, cause)
	assert.Equal(t, domain.OpenDay("12:00", "16:00"), day)
}

func TestResolveDay_CustomHoursNotWorkingClosesDay(t *testing.T) {
	week := openWeek("09:00", "18:00")
	target := date(2025, time.June, 11)

	exc := customHours(1, ptr.Ptr(int64(7)), target, target, "12:00", "16:00")
	exc.IsWorkingDay = false

	day, cause, err := ResolveDay(week, target, 7, []domain.ScheduleException{exc})

	require.NoError(t, err)
	assert.False(t, day.Working)
	assert.Equal(t, CauseStaffOff, cause)
}

func TestResolveDay_SalonWideCustomHoursApplyWhenNoStaffException(t *testing.T) {
	week := openWeek("09:00", "18:00")
	target := date(2025, time.June, 11)

	exceptions := []domain.ScheduleException{
		customHours(1, nil, target, target, "10:00", "14:00"),
	}

	day, cause, err := ResolveDay(week, target, 7, exceptions)

	require.NoError(t, err)
	assert.Equal(t, CauseNone, cause)
	assert.Equal(t, domain.OpenDay("10:00", "14:00"), day)
}

func TestResolveDay_SameScopeTieBreakLatestStartDateWins(t *testing.T) {
	week := openWeek("09:00", "18:00")
	target := date(2025, time.June, 11)

	exceptions := []domain.ScheduleException{
		// Более ранний длинный отпуск и более поздние кастомные часы
		customHours(1, ptr.Ptr(int64(7)), date(2025, time.June, 1), date(2025, time.June, 30), "08:00", "12:00"),
		customHours(2, ptr.Ptr(int64(7)), date(2025, time.June, 10), date(2025, time.June, 12), "12:00", "16:00"),
	}

	day, _, err := ResolveDay(week, target, 7, exceptions)

	require.NoError(t, err)
	assert.Equal(t, domain.OpenDay("12:00", "16:00"), day)
}

func TestResolveDay_EqualStartDateTieBreakHighestID(t *testing.T) {
	week := openWeek("09:00", "18:00")
	target := date(2025, time.June, 11)

	exceptions := []domain.ScheduleException{
		customHours(5, ptr.Ptr(int64(7)), target, target, "08:00", "12:00"),
		customHours(9, ptr.Ptr(int64(7)), target, target, "13:00", "17:00"),
	}

	day, _, err := ResolveDay(week, target, 7, exceptions)

	require.NoError(t, err)
	assert.Equal(t, domain.OpenDay("13:00", "17:00"), day)
}

func TestResolveDay_ExceptionOutsideDateRangeIgnored(t *testing.T) {
	week := openWeek("09:00", "18:00")

	exceptions := []domain.ScheduleException{
		exception(1, nil, date(2025, time.June, 12), date(2025, time.June, 15), domain.ExceptionDayOff),
	}

	day, cause, err := ResolveDay(week, date(2025, time.June, 11), 7, exceptions)

	require.NoError(t, err)
	assert.True(t, day.Working)
	assert.Equal(t, CauseNone, cause)
}

func TestResolveDay_InvalidCustomRangeSurfaced(t *testing.T) {
	week := openWeek("09:00", "18:00")
	target := date(2025, time.June, 11)

	exceptions := []domain.ScheduleException{
		customHours(1, ptr.Ptr(int64(7)), target, target, "16:00", "12:00"),
	}

	_, _, err := ResolveDay(week, target, 7, exceptions)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidRange)
}
