package types

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTimeStringFromString(t *testing.T) {
	valid := []string{"00:00", "09:30", "23:59"}
	for _, s := range valid {
		ts, err := NewTimeStringFromString(s)
		require.NoError(t, err, s)
		assert.Equal(t, s, ts.String())
	}

	invalid := []string{"", "24:00", "12:60", "9:00", "09:5", "ab:cd", "12-30", "12:30:00"}
	for _, s := range invalid {
		_, err := NewTimeStringFromString(s)
		require.Error(t, err, s)
		assert.ErrorIs(t, err, ErrInvalidTimeFormat, s)
	}
}

func TestTimeStringMinutes(t *testing.T) {
	cases := map[string]int{
		"00:00": 0,
		"01:00": 60,
		"09:45": 585,
		"23:59": 1439,
	}

	for s, want := range cases {
		got, err := TimeString(s).Minutes()
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}
}

func TestNewTimeStringFromMinutes(t *testing.T) {
	ts, err := NewTimeStringFromMinutes(585)
	require.NoError(t, err)
	assert.Equal(t, TimeString("09:45"), ts)

	_, err = NewTimeStringFromMinutes(-1)
	assert.Error(t, err)

	_, err = NewTimeStringFromMinutes(24 * 60)
	assert.Error(t, err)
}

func TestTimeStringAddMinutes(t *testing.T) {
	ts, err := TimeString("09:45").AddMinutes(30)
	require.NoError(t, err)
	assert.Equal(t, TimeString("10:15"), ts)

	// Выход за пределы суток - ошибка
	_, err = TimeString("23:45").AddMinutes(30)
	assert.Error(t, err)
}

func TestTimeStringComparisons(t *testing.T) {
	assert.True(t, TimeString("09:00").IsBefore("10:00"))
	assert.False(t, TimeString("10:00").IsBefore("10:00"))
	assert.True(t, TimeString("10:30").IsAfter("10:00"))
	assert.False(t, TimeString("10:00").IsAfter("10:00"))

	// Некорректные значения несравнимы
	assert.False(t, TimeString("bad").IsBefore("10:00"))
	assert.False(t, TimeString("10:00").IsAfter("bad"))
}

func TestNewTimeString(t *testing.T) {
	ts := NewTimeString(time.Date(2025, time.June, 10, 9, 5, 33, 0, time.UTC))
	assert.Equal(t, TimeString("09:05"), ts)
}

func TestTimeStringScan(t *testing.T) {
	var ts TimeString

	// Postgres TIME приходит как "10:00:00"
	require.NoError(t, ts.Scan("10:00:00"))
	assert.Equal(t, TimeString("10:00"), ts)

	require.NoError(t, ts.Scan([]byte("18:30")))
	assert.Equal(t, TimeString("18:30"), ts)

	require.NoError(t, ts.Scan(nil))
	assert.True(t, ts.IsZero())

	assert.Error(t, ts.Scan(42))
}

func TestTimeStringValue(t *testing.T) {
	v, err := TimeString("10:00").Value()
	require.NoError(t, err)
	assert.Equal(t, "10:00", v)

	v, err = TimeString("").Value()
	require.NoError(t, err)
	assert.Nil(t, v)

	_, err = TimeString("bad").Value()
	assert.Error(t, err)
}
