package scheduling

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SalonService/internal/domain"
	"github.com/m04kA/SMC-SalonService/pkg/ptr"
	"github.com/m04kA/SMC-SalonService/pkg/types"
)

func weeklyHour(staffID *int64, day int, start, end string, working bool) domain.WeeklyWorkingHour {
	return domain.WeeklyWorkingHour{
		SalonID:      1,
		StaffID:      staffID,
		DayOfWeek:    day,
		StartTime:    types.TimeString(start),
		EndTime:      types.TimeString(end),
		IsWorkingDay: working,
	}
}

func TestResolveWeek_SalonTemplateOnly(t *testing.T) {
	salon := []domain.WeeklyWorkingHour{
		weeklyHour(nil, 1, "09:00", "18:00", true),
		weeklyHour(nil, 2, "09:00", "18:00", true),
		weeklyHour(nil, 0, "", "", false),
	}

	week, err := ResolveWeek(salon, nil)
	require.NoError(t, err)

	assert.False(t, week[0].Working)
	assert.True(t, week[1].Working)
	assert.Equal(t, types.TimeString("09:00"), week[1].Start)
	assert.Equal(t, types.TimeString("18:00"), week[1].End)

	// Дни без записей закрыты, а не ошибка
	for _, day := range []int{3, 4, 5, 6} {
		assert.False(t, week[day].Working, "day %d must be closed", day)
	}
}

func TestResolveWeek_StaffRecordFullyReplacesSalonRecord(t *testing.T) {
	salon := []domain.WeeklyWorkingHour{
		weeklyHour(nil, 1, "09:00", "18:00", true),
		weeklyHour(nil, 2, "09:00", "18:00", true),
	}
	staff := []domain.WeeklyWorkingHour{
		weeklyHour(ptr.Ptr(int64(7)), 1, "12:00", "20:00", true),
		// Персональный выходной перекрывает рабочий день салона
		weeklyHour(ptr.Ptr(int64(7)), 2, "", "", false),
	}

	week, err := ResolveWeek(salon, staff)
	require.NoError(t, err)

	assert.Equal(t, domain.OpenDay("12:00", "20:00"), week[1])
	assert.False(t, week[2].Working)
}

func TestResolveWeek_AlwaysSevenDays(t *testing.T) {
	week, err := ResolveWeek(nil, nil)
	require.NoError(t, err)

	assert.Len(t, week, DaysPerWeek)
	for day := 0; day < DaysPerWeek; day++ {
		assert.False(t, week[day].Working)
	}
}

func TestResolveWeek_InvalidRangeRejected(t *testing.T) {
	salon := []domain.WeeklyWorkingHour{
		weeklyHour(nil, 1, "18:00", "09:00", true),
	}

	_, err := ResolveWeek(salon, nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidRange)
}

func TestResolveWeek_InvalidTimeFormatRejected(t *testing.T) {
	staff := []domain.WeeklyWorkingHour{
		weeklyHour(ptr.Ptr(int64(7)), 3, "9am", "17:00", true),
	}

	_, err := ResolveWeek(nil, staff)
	require.Error(t, err)
	assert.ErrorIs(t, err, types.ErrInvalidTimeFormat)
}

func TestResolveWeek_NonWorkingRecordSkipsRangeValidation(t *testing.T) {
	// У выходного дня интервал не обязан быть валидным
	salon := []domain.WeeklyWorkingHour{
		weeklyHour(nil, 5, "", "", false),
	}

	week, err := ResolveWeek(salon, nil)
	require.NoError(t, err)
	assert.False(t, week[5].Working)
}
