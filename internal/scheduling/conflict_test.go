package scheduling

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/m04kA/SMC-SalonService/internal/domain"
)

func utc(h, m int) time.Time {
	return time.Date(2025, time.June, 10, h, m, 0, 0, time.UTC)
}

func appt(id int64, start, end time.Time, status domain.AppointmentStatus) *domain.Appointment {
	return &domain.Appointment{
		ID:       id,
		SalonID:  1,
		StaffID:  7,
		StartUTC: start,
		EndUTC:   end,
		Status:   status,
	}
}

func TestOverlaps(t *testing.T) {
	cases := []struct {
		name           string
		s1, e1, s2, e2 time.Time
		want           bool
	}{
		{"partial overlap", utc(10, 0), utc(11, 0), utc(10, 30), utc(11, 30), true},
		{"containment", utc(10, 0), utc(12, 0), utc(10, 30), utc(11, 0), true},
		{"identical", utc(10, 0), utc(11, 0), utc(10, 0), utc(11, 0), true},
		{"back-to-back after", utc(10, 0), utc(11, 0), utc(11, 0), utc(11, 30), false},
		{"back-to-back before", utc(11, 0), utc(11, 30), utc(10, 0), utc(11, 0), false},
		{"disjoint", utc(9, 0), utc(9, 30), utc(15, 0), utc(16, 0), false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Overlaps(tc.s1, tc.e1, tc.s2, tc.e2))
			// Пересечение симметрично
			assert.Equal(t, tc.want, Overlaps(tc.s2, tc.e2, tc.s1, tc.e1))
		})
	}
}

func TestFindConflict_SkipsInactiveAppointments(t *testing.T) {
	appointments := []*domain.Appointment{
		appt(1, utc(10, 0), utc(11, 0), domain.StatusCancelledByClient),
		appt(2, utc(10, 0), utc(11, 0), domain.StatusNoShow),
	}

	assert.Nil(t, FindConflict(utc(10, 30), utc(11, 0), appointments))
}

func TestFindConflict_ReturnsOverlappingAppointment(t *testing.T) {
	appointments := []*domain.Appointment{
		appt(1, utc(9, 0), utc(9, 30), domain.StatusConfirmed),
		appt(2, utc(10, 0), utc(11, 0), domain.StatusConfirmed),
	}

	found := FindConflict(utc(10, 30), utc(11, 0), appointments)
	assert.NotNil(t, found)
	assert.Equal(t, int64(2), found.ID)
}

func TestHasConflict_BackToBackIsNotAConflict(t *testing.T) {
	appointments := []*domain.Appointment{
		appt(1, utc(10, 0), utc(11, 0), domain.StatusConfirmed),
	}

	assert.False(t, HasConflict(utc(11, 0), utc(11, 30), appointments))
	assert.False(t, HasConflict(utc(9, 30), utc(10, 0), appointments))
	assert.True(t, HasConflict(utc(10, 30), utc(11, 0), appointments))
}
