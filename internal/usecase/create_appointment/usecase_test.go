package create_appointment

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SalonService/internal/domain"
	"github.com/m04kA/SMC-SalonService/internal/integrations/catalogservice"
	"github.com/m04kA/SMC-SalonService/pkg/ptr"
	"github.com/m04kA/SMC-SalonService/pkg/types"
)

type fakeAppointmentRepo struct {
	appointments []*domain.Appointment
	created      *domain.Appointment
}

func (f *fakeAppointmentRepo) Create(_ context.Context, appointment *domain.Appointment) (*domain.Appointment, error) {
	created := *appointment
	created.ID = 100
	created.CreatedAt = time.Date(2025, time.June, 1, 12, 0, 0, 0, time.UTC)
	created.UpdatedAt = created.CreatedAt
	f.created = &created
	return &created, nil
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

type fakeCatalogClient struct {
	service *catalogservice.Service
	staff   *catalogservice.StaffMember
}

func (f *fakeCatalogClient) GetService(_ context.Context, _, _ int64) (*catalogservice.Service, error) {
	return f.service, nil
}

func (f *fakeCatalogClient) GetStaffMember(_ context.Context, _, _ int64) (*catalogservice.StaffMember, error) {
	return f.staff, nil
}

// fakeTxManager выполняет функцию без транзакции
type fakeTxManager struct{}

func (fakeTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fixedTimeProvider struct {
	now time.Time
}

func (f *fixedTimeProvider) Now() time.Time {
	return f.now
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
	catalog := &fakeCatalogClient{
		service: &catalogservice.Service{
			ID:              3,
			Name:            "Haircut",
			Price:           ptr.Ptr(120.0),
			DurationMinutes: 30,
		},
		staff: &catalogservice.StaffMember{ID: 2},
	}
	uc := NewUseCase(appts, sched, salon, catalog, fakeTxManager{}, noopLogger{})
	uc.timeProvider = &fixedTimeProvider{now: time.Date(2025, time.June, 1, 8, 0, 0, 0, time.UTC)}
	return uc
}

func defaultRequest() *Request {
	return &Request{
		ClientID:  7,
		SalonID:   1,
		StaffID:   2,
		ServiceID: 3,
		Date:      time.Date(2025, time.June, 2, 0, 0, 0, 0, time.UTC),
		StartTime: types.TimeString("10:30"),
	}
}

func TestExecute_CreatesAppointment(t *testing.T) {
	appts := &fakeAppointmentRepo{}
	uc := newTestUseCase(appts, &fakeScheduleRepo{salonHours: workingWeek("09:00", "18:00")})

	resp, err := uc.Execute(context.Background(), defaultRequest())
	require.NoError(t, err)

	assert.Equal(t, int64(100), resp.ID)
	assert.Equal(t, "confirmed", resp.Status)
	assert.Equal(t, "Haircut", resp.ServiceName)
	assert.Equal(t, 120.0, resp.ServicePrice)
	// 10:30 локального времени Варшавы летом = 08:30 UTC
	assert.Equal(t, time.Date(2025, time.June, 2, 8, 30, 0, 0, time.UTC), resp.StartUTC)
	assert.Equal(t, time.Date(2025, time.June, 2, 9, 0, 0, 0, time.UTC), resp.EndUTC)

	require.NotNil(t, appts.created)
	assert.Equal(t, domain.StatusConfirmed, appts.created.Status)
}

func TestExecute_ConflictRejected(t *testing.T) {
	appts := &fakeAppointmentRepo{appointments: []*domain.Appointment{{
		ID:       42,
		SalonID:  1,
		StaffID:  2,
		StartUTC: time.Date(2025, time.June, 2, 8, 0, 0, 0, time.UTC),
		EndUTC:   time.Date(2025, time.June, 2, 9, 0, 0, 0, time.UTC),
		Status:   domain.StatusConfirmed,
	}}}
	uc := newTestUseCase(appts, &fakeScheduleRepo{salonHours: workingWeek("09:00", "18:00")})

	_, err := uc.Execute(context.Background(), defaultRequest())
	assert.ErrorIs(t, err, ErrTimeConflict)
	assert.Nil(t, appts.created)
}

func TestExecute_BackToBackAllowed(t *testing.T) {
	appts := &fakeAppointmentRepo{appointments: []*domain.Appointment{{
		ID:       42,
		SalonID:  1,
		StaffID:  2,
		StartUTC: time.Date(2025, time.June, 2, 8, 0, 0, 0, time.UTC),
		EndUTC:   time.Date(2025, time.June, 2, 8, 30, 0, 0, time.UTC),
		Status:   domain.StatusConfirmed,
	}}}
	uc := newTestUseCase(appts, &fakeScheduleRepo{salonHours: workingWeek("09:00", "18:00")})

	// 10:30 локального = 08:30 UTC, вплотную к существующей записи
	_, err := uc.Execute(context.Background(), defaultRequest())
	assert.NoError(t, err)
}

func TestExecute_OutsideWorkingHours(t *testing.T) {
	uc := newTestUseCase(&fakeAppointmentRepo{}, &fakeScheduleRepo{salonHours: workingWeek("09:00", "18:00")})

	req := defaultRequest()
	req.StartTime = types.TimeString("17:45") // хвост 30-минутной услуги за закрытием

	_, err := uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrOutsideWorkingHours)
}

func TestExecute_SalonClosedByException(t *testing.T) {
	uc := newTestUseCase(&fakeAppointmentRepo{}, &fakeScheduleRepo{
		salonHours: workingWeek("09:00", "18:00"),
		exceptions: []domain.ScheduleException{{
			ID:        1,
			SalonID:   1,
			Type:      domain.ExceptionDayOff,
			StartDate: time.Date(2025, time.June, 2, 0, 0, 0, 0, time.UTC),
			EndDate:   time.Date(2025, time.June, 2, 0, 0, 0, 0, time.UTC),
		}},
	})

	_, err := uc.Execute(context.Background(), defaultRequest())
	assert.ErrorIs(t, err, ErrSalonClosed)
}

func TestExecute_StaffOffByException(t *testing.T) {
	uc := newTestUseCase(&fakeAppointmentRepo{}, &fakeScheduleRepo{
		salonHours: workingWeek("09:00", "18:00"),
		exceptions: []domain.ScheduleException{{
			ID:        1,
			SalonID:   1,
			StaffID:   ptr.Ptr(int64(2)),
			Type:      domain.ExceptionSickLeave,
			StartDate: time.Date(2025, time.June, 2, 0, 0, 0, 0, time.UTC),
			EndDate:   time.Date(2025, time.June, 2, 0, 0, 0, 0, time.UTC),
		}},
	})

	_, err := uc.Execute(context.Background(), defaultRequest())
	assert.ErrorIs(t, err, ErrStaffOff)
}

func TestExecute_PastStartRejected(t *testing.T) {
	uc := newTestUseCase(&fakeAppointmentRepo{}, &fakeScheduleRepo{salonHours: workingWeek("09:00", "18:00")})

	req := defaultRequest()
	req.Date = time.Date(2025, time.May, 20, 0, 0, 0, 0, time.UTC)

	_, err := uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrInvalidDate)
}

func TestExecute_InvalidStartTimeFormat(t *testing.T) {
	uc := newTestUseCase(&fakeAppointmentRepo{}, &fakeScheduleRepo{salonHours: workingWeek("09:00", "18:00")})

	req := defaultRequest()
	req.StartTime = types.TimeString("25:99")

	_, err := uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrInvalidInput)
}
