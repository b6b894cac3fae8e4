package validate_booking

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SalonService/internal/domain"
	"github.com/m04kA/SMC-SalonService/pkg/ptr"
	"github.com/m04kA/SMC-SalonService/pkg/types"
)

type fakeAppointmentRepo struct {
	appointments []*domain.Appointment
}

func (f *fakeAppointmentRepo) GetByStaffWithFilter(_ context.Context, _ domain.StaffAppointmentsFilter) ([]*domain.Appointment, error) {
	return f.appointments, nil
}

type fakeScheduleRepo struct {
	salonHours []domain.WeeklyWorkingHour
	staffHours []domain.WeeklyWorkingHour
	exceptions []domain.ScheduleException
}

func (f *fakeScheduleRepo) GetWeeklyHours(_ context.Context, _ int64, staffID *int64) ([]domain.WeeklyWorkingHour, error) {
	if staffID == nil {
		return f.salonHours, nil
	}
	return f.staffHours, nil
}

func (f *fakeScheduleRepo) ListExceptions(_ context.Context, _, _ int64, _, _ time.Time) ([]domain.ScheduleException, error) {
	return f.exceptions, nil
}

type fakeSalonRepo struct {
	settings *domain.SalonSettings
}

func (f *fakeSalonRepo) GetSettings(_ context.Context, _ int64) (*domain.SalonSettings, error) {
	return f.settings, nil
}

type noopLogger struct{}

func (noopLogger) Info(string, ...interface{})  {}
func (noopLogger) Warn(string, ...interface{})  {}
func (noopLogger) Error(string, ...interface{}) {}

func workingWeek(start, end string) []domain.WeeklyWorkingHour {
	hours := make([]domain.WeeklyWorkingHour, 0, 7)
	for day := 0; day < 7; day++ {
		hours = append(hours, domain.WeeklyWorkingHour{
			SalonID:      1,
			DayOfWeek:    day,
			IsWorkingDay: true,
			StartTime:    types.TimeString(start),
			EndTime:      types.TimeString(end),
		})
	}
	return hours
}

func newTestUseCase(appts *fakeAppointmentRepo, sched *fakeScheduleRepo) *UseCase {
	salon := &fakeSalonRepo{settings: &domain.SalonSettings{
		SalonID:              1,
		Timezone:             "Europe/Warsaw",
		SlotStepMinutes:      15,
		DefaultBufferMinutes: 0,
	}}
	return NewUseCase(appts, sched, salon, noopLogger{})
}

// Летом Варшава живет по UTC+2: 08:30 UTC = 10:30 локального времени
func utc(h, m int) time.Time {
	return time.Date(2025, time.June, 2, h, m, 0, 0, time.UTC)
}

func confirmed(id int64, start, end time.Time) *domain.Appointment {
	return &domain.Appointment{
		ID:       id,
		SalonID:  1,
		StaffID:  2,
		StartUTC: start,
		EndUTC:   end,
		Status:   domain.StatusConfirmed,
	}
}

func TestExecute_ValidInterval(t *testing.T) {
	uc := newTestUseCase(
		&fakeAppointmentRepo{},
		&fakeScheduleRepo{salonHours: workingWeek("09:00", "18:00")},
	)

	resp, err := uc.Execute(context.Background(), &Request{
		SalonID: 1, StaffID: 2,
		StartUTC: utc(8, 30), EndUTC: utc(9, 0), // 10:30-11:00 локального
	})
	require.NoError(t, err)
	assert.True(t, resp.Valid)
	assert.Empty(t, resp.Reason)
}

func TestExecute_OverlappingAppointmentRejected(t *testing.T) {
	uc := newTestUseCase(
		&fakeAppointmentRepo{appointments: []*domain.Appointment{
			confirmed(42, utc(8, 0), utc(9, 0)), // 10:00-11:00 локального
		}},
		&fakeScheduleRepo{salonHours: workingWeek("09:00", "18:00")},
	)

	resp, err := uc.Execute(context.Background(), &Request{
		SalonID: 1, StaffID: 2,
		StartUTC: utc(8, 30), EndUTC: utc(9, 0), // 10:30-11:00 локального
	})
	require.NoError(t, err)
	assert.False(t, resp.Valid)
	assert.Equal(t, domain.ReasonAppointmentConflict, resp.Reason)
	require.NotNil(t, resp.ConflictingAppointmentID)
	assert.Equal(t, int64(42), *resp.ConflictingAppointmentID)
}

func TestExecute_BackToBackIsValid(t *testing.T) {
	uc := newTestUseCase(
		&fakeAppointmentRepo{appointments: []*domain.Appointment{
			confirmed(42, utc(8, 0), utc(9, 0)),
		}},
		&fakeScheduleRepo{salonHours: workingWeek("09:00", "18:00")},
	)

	resp, err := uc.Execute(context.Background(), &Request{
		SalonID: 1, StaffID: 2,
		StartUTC: utc(9, 0), EndUTC: utc(9, 30), // 11:00-11:30, вплотную к записи
	})
	require.NoError(t, err)
	assert.True(t, resp.Valid)
}

func TestExecute_CancelledAppointmentDoesNotBlock(t *testing.T) {
	cancelled := confirmed(42, utc(8, 0), utc(9, 0))
	cancelled.Status = domain.StatusCancelledByClient

	uc := newTestUseCase(
		&fakeAppointmentRepo{appointments: []*domain.Appointment{cancelled}},
		&fakeScheduleRepo{salonHours: workingWeek("09:00", "18:00")},
	)

	resp, err := uc.Execute(context.Background(), &Request{
		SalonID: 1, StaffID: 2,
		StartUTC: utc(8, 30), EndUTC: utc(9, 0),
	})
	require.NoError(t, err)
	assert.True(t, resp.Valid)
}

func TestExecute_OutsideWorkingHours(t *testing.T) {
	uc := newTestUseCase(
		&fakeAppointmentRepo{},
		&fakeScheduleRepo{salonHours: workingWeek("09:00", "18:00")},
	)

	resp, err := uc.Execute(context.Background(), &Request{
		SalonID: 1, StaffID: 2,
		StartUTC: utc(15, 45), EndUTC: utc(16, 15), // 17:45-18:15, хвост за закрытием
	})
	require.NoError(t, err)
	assert.False(t, resp.Valid)
	assert.Equal(t, domain.ReasonOutsideWorkingHours, resp.Reason)
}

func TestExecute_SalonClosedByException(t *testing.T) {
	uc := newTestUseCase(
		&fakeAppointmentRepo{},
		&fakeScheduleRepo{
			salonHours: workingWeek("09:00", "18:00"),
			exceptions: []domain.ScheduleException{{
				ID:        1,
				SalonID:   1,
				Type:      domain.ExceptionDayOff,
				StartDate: time.Date(2025, time.June, 2, 0, 0, 0, 0, time.UTC),
				EndDate:   time.Date(2025, time.June, 2, 0, 0, 0, 0, time.UTC),
			}},
		},
	)

	resp, err := uc.Execute(context.Background(), &Request{
		SalonID: 1, StaffID: 2,
		StartUTC: utc(8, 30), EndUTC: utc(9, 0),
	})
	require.NoError(t, err)
	assert.False(t, resp.Valid)
	assert.Equal(t, domain.ReasonSalonClosed, resp.Reason)
}

func TestExecute_StaffOffByException(t *testing.T) {
	uc := newTestUseCase(
		&fakeAppointmentRepo{},
		&fakeScheduleRepo{
			salonHours: workingWeek("09:00", "18:00"),
			exceptions: []domain.ScheduleException{{
				ID:        1,
				SalonID:   1,
				StaffID:   ptr.Ptr(int64(2)),
				Type:      domain.ExceptionSickLeave,
				StartDate: time.Date(2025, time.June, 2, 0, 0, 0, 0, time.UTC),
				EndDate:   time.Date(2025, time.June, 2, 0, 0, 0, 0, time.UTC),
			}},
		},
	)

	resp, err := uc.Execute(context.Background(), &Request{
		SalonID: 1, StaffID: 2,
		StartUTC: utc(8, 30), EndUTC: utc(9, 0),
	})
	require.NoError(t, err)
	assert.False(t, resp.Valid)
	assert.Equal(t, domain.ReasonStaffOff, resp.Reason)
}

func TestExecute_InvalidInterval(t *testing.T) {
	uc := newTestUseCase(&fakeAppointmentRepo{}, &fakeScheduleRepo{})

	_, err := uc.Execute(context.Background(), &Request{
		SalonID: 1, StaffID: 2,
		StartUTC: utc(9, 0), EndUTC: utc(9, 0),
	})
	assert.ErrorIs(t, err, ErrInvalidInput)
}
