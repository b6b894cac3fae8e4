package scheduling

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SalonService/pkg/types"
)

func mustLocation(t *testing.T, name string) *time.Location {
	t.Helper()
	loc, err := time.LoadLocation(name)
	require.NoError(t, err)
	return loc
}

func TestToUTCInstant_RegularTime(t *testing.T) {
	loc := mustLocation(t, "Europe/Warsaw")

	// 2025-06-10 летнее время, офсет +02:00
	instant, err := ToUTCInstant(date(2025, time.June, 10), "10:00", loc)
	require.NoError(t, err)

	assert.Equal(t, time.Date(2025, time.June, 10, 8, 0, 0, 0, time.UTC), instant)
}

func TestToUTCInstant_RoundTrip(t *testing.T) {
	loc := mustLocation(t, "Europe/Warsaw")

	cases := []struct {
		day       time.Time
		localTime types.TimeString
	}{
		{date(2025, time.January, 15), "09:00"},
		{date(2025, time.June, 10), "18:30"},
		{date(2025, time.March, 30), "01:30"}, // до перевода стрелок
		{date(2025, time.October, 26), "12:00"},
		{date(2025, time.December, 31), "23:45"},
	}

	for _, tc := range cases {
		instant, err := ToUTCInstant(tc.day, tc.localTime, loc)
		require.NoError(t, err)

		gotDate, gotTime := ToLocal(instant, loc)
		assert.Equal(t, tc.day, gotDate, "date round-trip for %s %s", tc.day.Format("2006-01-02"), tc.localTime)
		assert.Equal(t, tc.localTime, gotTime, "time round-trip for %s %s", tc.day.Format("2006-01-02"), tc.localTime)
	}
}

func TestToUTCInstant_SpringForwardGapShiftsForward(t *testing.T) {
	loc := mustLocation(t, "Europe/Warsaw")

	// 2025-03-30 в Варшаве 02:00 -> 03:00, времени 02:30 не существует
	instant, err := ToUTCInstant(date(2025, time.March, 30), "02:30", loc)
	require.NoError(t, err)

	// Сдвиг вперед за пропуск: 02:30 CET трактуется как 01:30 UTC = 03:30 CEST
	assert.Equal(t, time.Date(2025, time.March, 30, 1, 30, 0, 0, time.UTC), instant)

	_, localTime := ToLocal(instant, loc)
	assert.Equal(t, types.TimeString("03:30"), localTime)
}

func TestToUTCInstant_FallBackAmbiguityPicksFirstOccurrence(t *testing.T) {
	loc := mustLocation(t, "Europe/Warsaw")

	// 2025-10-26 в Варшаве 03:00 -> 02:00, время 02:30 встречается дважды:
	// 00:30 UTC (CEST, +02) и 01:30 UTC (CET, +01). Берем первое вхождение
	instant, err := ToUTCInstant(date(2025, time.October, 26), "02:30", loc)
	require.NoError(t, err)

	assert.Equal(t, time.Date(2025, time.October, 26, 0, 30, 0, 0, time.UTC), instant)
}

func TestToUTCInstant_InvalidTimeFormat(t *testing.T) {
	loc := mustLocation(t, "Europe/Warsaw")

	_, err := ToUTCInstant(date(2025, time.June, 10), "25:00", loc)
	require.Error(t, err)
	assert.ErrorIs(t, err, types.ErrInvalidTimeFormat)
}

func TestToLocal(t *testing.T) {
	loc := mustLocation(t, "Europe/Warsaw")

	// 22:30 UTC 9 июня = 00:30 10 июня по Варшаве: дата сдвигается
	gotDate, gotTime := ToLocal(time.Date(2025, time.June, 9, 22, 30, 0, 0, time.UTC), loc)

	assert.Equal(t, date(2025, time.June, 10), gotDate)
	assert.Equal(t, types.TimeString("00:30"), gotTime)
}

func TestDayBoundsUTC(t *testing.T) {
	loc := mustLocation(t, "Europe/Warsaw")

	start, end, err := DayBoundsUTC(date(2025, time.June, 10), loc)
	require.NoError(t, err)

	assert.Equal(t, time.Date(2025, time.June, 9, 22, 0, 0, 0, time.UTC), start)
	assert.Equal(t, time.Date(2025, time.June, 10, 22, 0, 0, 0, time.UTC), end)
}

func TestDayBoundsUTC_DSTTransitionDayIs23Hours(t *testing.T) {
	loc := mustLocation(t, "Europe/Warsaw")

	start, end, err := DayBoundsUTC(date(2025, time.March, 30), loc)
	require.NoError(t, err)

	assert.Equal(t, 23*time.Hour, end.Sub(start))
}
