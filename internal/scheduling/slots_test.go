package scheduling

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SalonService/internal/domain"
	"github.com/m04kA/SMC-SalonService/pkg/types"
)

// slotByStart ищет слот по локальному времени начала
func slotByStart(t *testing.T, slots []domain.Slot, start string) domain.Slot {
	t.Helper()
	for _, s := range slots {
		if s.StartLocal == types.TimeString(start) {
			return s
		}
	}
	t.Fatalf("slot starting at %s not found", start)
	return domain.Slot{}
}

func TestGenerateSlots_ClosedDayGivesEmptyList(t *testing.T) {
	slots, err := GenerateSlots(SlotParams{
		Date:                   date(2025, time.June, 10),
		Location:               time.UTC,
		Day:                    domain.ClosedDay(),
		ServiceDurationMinutes: 30,
		StepMinutes:            15,
	})

	require.NoError(t, err)
	assert.Empty(t, slots)
}

// Сценарий: салон открыт 09:00-18:00, одна запись 10:00-11:00,
// слоты по 30 минут без буфера, шаг 15 минут
func TestGenerateSlots_ReferenceScenario(t *testing.T) {
	day := date(2025, time.June, 10) // вторник
	loc := time.UTC

	apptStart, err := ToUTCInstant(day, "10:00", loc)
	require.NoError(t, err)
	apptEnd, err := ToUTCInstant(day, "11:00", loc)
	require.NoError(t, err)

	slots, err := GenerateSlots(SlotParams{
		Date:                   day,
		Location:               loc,
		Day:                    domain.OpenDay("09:00", "18:00"),
		ServiceDurationMinutes: 30,
		BufferMinutes:          0,
		StepMinutes:            15,
		Appointments: []*domain.Appointment{
			appt(1, apptStart, apptEnd, domain.StatusConfirmed),
		},
	})
	require.NoError(t, err)

	// Слоты идут с шагом 15 минут, последний старт 17:30
	require.NotEmpty(t, slots)
	assert.Equal(t, types.TimeString("09:00"), slots[0].StartLocal)
	assert.Equal(t, types.TimeString("17:30"), slots[len(slots)-1].StartLocal)

	assert.True(t, slotByStart(t, slots, "09:00").Available)
	assert.True(t, slotByStart(t, slots, "09:15").Available)

	// 09:45-10:15 пересекает запись 10:00-11:00
	blocked := slotByStart(t, slots, "09:45")
	assert.False(t, blocked.Available)
	assert.Equal(t, domain.ReasonAppointmentConflict, blocked.Reason)

	// 10:45-11:15 всё еще пересекает
	assert.False(t, slotByStart(t, slots, "10:45").Available)

	// 11:00-11:30 начинается ровно в конец записи - доступен (back-to-back)
	assert.True(t, slotByStart(t, slots, "11:00").Available)

	// Ни один слот не выходит за закрытие
	for _, s := range slots {
		assert.False(t, s.EndLocal.IsAfter("18:00"), "slot %s-%s runs past closing", s.StartLocal, s.EndLocal)
	}
}

func TestGenerateSlots_OrderedOldestFirst(t *testing.T) {
	slots, err := GenerateSlots(SlotParams{
		Date:                   date(2025, time.June, 10),
		Location:               time.UTC,
		Day:                    domain.OpenDay("09:00", "12:00"),
		ServiceDurationMinutes: 60,
		StepMinutes:            30,
	})
	require.NoError(t, err)

	for i := 1; i < len(slots); i++ {
		assert.True(t, slots[i-1].StartUTC.Before(slots[i].StartUTC))
	}
}

func TestGenerateSlots_BufferBlocksAdjacentSlot(t *testing.T) {
	day := date(2025, time.June, 10)
	loc := time.UTC

	apptStart, _ := ToUTCInstant(day, "11:00", loc)
	apptEnd, _ := ToUTCInstant(day, "12:00", loc)

	slots, err := GenerateSlots(SlotParams{
		Date:                   day,
		Location:               loc,
		Day:                    domain.OpenDay("09:00", "18:00"),
		ServiceDurationMinutes: 30,
		BufferMinutes:          15,
		StepMinutes:            15,
		Appointments: []*domain.Appointment{
			appt(1, apptStart, apptEnd, domain.StatusConfirmed),
		},
	})
	require.NoError(t, err)

	// 10:30-11:00 с буфером 15 минут тянется до 11:15 - конфликт
	assert.False(t, slotByStart(t, slots, "10:30").Available)
	// 10:15-10:45 с буфером до 11:00 - не конфликт (back-to-back)
	assert.True(t, slotByStart(t, slots, "10:15").Available)
}

func TestGenerateSlots_ServiceLongerThanDayGivesZeroSlots(t *testing.T) {
	slots, err := GenerateSlots(SlotParams{
		Date:                   date(2025, time.June, 10),
		Location:               time.UTC,
		Day:                    domain.OpenDay("12:00", "13:00"),
		ServiceDurationMinutes: 120,
		StepMinutes:            15,
	})

	require.NoError(t, err)
	assert.Empty(t, slots)
}

func TestGenerateSlots_CancelledAppointmentsDoNotBlock(t *testing.T) {
	day := date(2025, time.June, 10)
	loc := time.UTC

	apptStart, _ := ToUTCInstant(day, "10:00", loc)
	apptEnd, _ := ToUTCInstant(day, "11:00", loc)

	slots, err := GenerateSlots(SlotParams{
		Date:                   day,
		Location:               loc,
		Day:                    domain.OpenDay("09:00", "18:00"),
		ServiceDurationMinutes: 30,
		StepMinutes:            15,
		Appointments: []*domain.Appointment{
			appt(1, apptStart, apptEnd, domain.StatusCancelledBySalon),
		},
	})
	require.NoError(t, err)

	assert.True(t, slotByStart(t, slots, "10:00").Available)
}

func TestGenerateSlots_SlotsCarryUTCBoundaries(t *testing.T) {
	loc := mustLocation(t, "Europe/Warsaw")
	day := date(2025, time.June, 10) // летнее время, +02:00

	slots, err := GenerateSlots(SlotParams{
		Date:                   day,
		Location:               loc,
		Day:                    domain.OpenDay("09:00", "10:00"),
		ServiceDurationMinutes: 30,
		StepMinutes:            30,
	})
	require.NoError(t, err)
	require.Len(t, slots, 2)

	assert.Equal(t, time.Date(2025, time.June, 10, 7, 0, 0, 0, time.UTC), slots[0].StartUTC)
	assert.Equal(t, time.Date(2025, time.June, 10, 7, 30, 0, 0, time.UTC), slots[0].EndUTC)
	assert.Equal(t, 30, slots[0].DurationMinutes())
}

func TestGenerateSlots_InvalidParams(t *testing.T) {
	_, err := GenerateSlots(SlotParams{
		Date:                   date(2025, time.June, 10),
		Location:               time.UTC,
		Day:                    domain.OpenDay("09:00", "18:00"),
		ServiceDurationMinutes: 0,
		StepMinutes:            15,
	})
	assert.Error(t, err)

	_, err = GenerateSlots(SlotParams{
		Date:                   date(2025, time.June, 10),
		Location:               time.UTC,
		Day:                    domain.OpenDay("09:00", "18:00"),
		ServiceDurationMinutes: 30,
		BufferMinutes:          -1,
		StepMinutes:            15,
	})
	assert.Error(t, err)
}
