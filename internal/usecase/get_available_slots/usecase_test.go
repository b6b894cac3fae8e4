package get_available_slots

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SalonService/internal/domain"
	"github.com/m04kA/SMC-SalonService/internal/integrations/catalogservice"
	salonRepo "github.com/m04kA/SMC-SalonService/internal/infra/storage/salon"
	"github.com/m04kA/SMC-SalonService/pkg/ptr"
	"github.com/m04kA/SMC-SalonService/pkg/types"
)

type fakeAppointmentRepo struct {
	appointments []*domain.Appointment
	err          error
}

func (f *fakeAppointmentRepo) GetByStaffWithFilter(_ context.Context, _ domain.StaffAppointmentsFilter) ([]*domain.Appointment, error) {
	return f.appointments, f.err
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
	err      error
}

func (f *fakeSalonRepo) GetSettings(_ context.Context, _ int64) (*domain.SalonSettings, error) {
	return f.settings, f.err
}

type fakeCatalogClient struct {
	service  *catalogservice.Service
	staff    *catalogservice.StaffMember
	svcErr   error
	staffErr error
}

func (f *fakeCatalogClient) GetService(_ context.Context, _, _ int64) (*catalogservice.Service, error) {
	return f.service, f.svcErr
}

func (f *fakeCatalogClient) GetStaffMember(_ context.Context, _, _ int64) (*catalogservice.StaffMember, error) {
	return f.staff, f.staffErr
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

func tstr(s string) types.TimeString {
	return types.TimeString(s)
}

func workingWeek(start, end string) []domain.WeeklyWorkingHour {
	hours := make([]domain.WeeklyWorkingHour, 0, 7)
	for day := 0; day < 7; day++ {
		hours = append(hours, domain.WeeklyWorkingHour{
			SalonID:      1,
			DayOfWeek:    day,
			IsWorkingDay: true,
			StartTime:    tstr(start),
			EndTime:      tstr(end),
		})
	}
	return hours
}

func newTestUseCase(
	appts *fakeAppointmentRepo,
	sched *fakeScheduleRepo,
	salon *fakeSalonRepo,
	catalog *fakeCatalogClient,
) *UseCase {
	uc := NewUseCase(appts, sched, salon, catalog, noopLogger{})
	uc.timeProvider = &fixedTimeProvider{now: time.Date(2025, time.June, 1, 8, 0, 0, 0, time.UTC)}
	return uc
}

func defaultFakes() (*fakeAppointmentRepo, *fakeScheduleRepo, *fakeSalonRepo, *fakeCatalogClient) {
	appts := &fakeAppointmentRepo{}
	sched := &fakeScheduleRepo{salonHours: workingWeek("09:00", "18:00")}
	salon := &fakeSalonRepo{settings: &domain.SalonSettings{
		SalonID:              1,
		Timezone:             "Europe/Warsaw",
		SlotStepMinutes:      15,
		DefaultBufferMinutes: 0,
	}}
	catalog := &fakeCatalogClient{
		service: &catalogservice.Service{ID: 3, DurationMinutes: 30},
		staff:   &catalogservice.StaffMember{ID: 2},
	}
	return appts, sched, salon, catalog
}

func defaultRequest() *Request {
	return &Request{
		SalonID:   1,
		StaffID:   2,
		ServiceID: 3,
		Date:      time.Date(2025, time.June, 2, 0, 0, 0, 0, time.UTC),
	}
}

func TestExecute_GeneratesSlots(t *testing.T) {
	appts, sched, salon, catalog := defaultFakes()
	uc := newTestUseCase(appts, sched, salon, catalog)

	resp, err := uc.Execute(context.Background(), defaultRequest())
	require.NoError(t, err)

	// 09:00 .. 17:30 последний старт 30-минутной услуги, шаг 15 минут
	assert.Len(t, resp.Slots, 35)
	assert.Equal(t, "Europe/Warsaw", resp.Timezone)
	assert.Equal(t, "09:00", resp.Slots[0].StartLocal.String())
	assert.Equal(t, "17:30", resp.Slots[len(resp.Slots)-1].StartLocal.String())
	for _, slot := range resp.Slots {
		assert.True(t, slot.Available)
	}
}

func TestExecute_ExistingAppointmentBlocksSlots(t *testing.T) {
	appts, sched, salon, catalog := defaultFakes()
	// Запись 10:00-11:00 локального времени (UTC+2 летом в Варшаве)
	appts.appointments = []*domain.Appointment{{
		ID:       10,
		SalonID:  1,
		StaffID:  2,
		StartUTC: time.Date(2025, time.June, 2, 8, 0, 0, 0, time.UTC),
		EndUTC:   time.Date(2025, time.June, 2, 9, 0, 0, 0, time.UTC),
		Status:   domain.StatusConfirmed,
	}}
	uc := newTestUseCase(appts, sched, salon, catalog)

	resp, err := uc.Execute(context.Background(), defaultRequest())
	require.NoError(t, err)

	byStart := make(map[string]domain.Slot, len(resp.Slots))
	for _, slot := range resp.Slots {
		byStart[slot.StartLocal.String()] = slot
	}

	assert.True(t, byStart["09:15"].Available)
	assert.False(t, byStart["09:45"].Available)
	assert.Equal(t, domain.ReasonAppointmentConflict, byStart["09:45"].Reason)
	assert.False(t, byStart["10:45"].Available)
	assert.True(t, byStart["11:00"].Available)
}

func TestExecute_PastDateReturnsEmptySlots(t *testing.T) {
	appts, sched, salon, catalog := defaultFakes()
	uc := newTestUseCase(appts, sched, salon, catalog)

	req := defaultRequest()
	req.Date = time.Date(2025, time.May, 20, 0, 0, 0, 0, time.UTC)

	resp, err := uc.Execute(context.Background(), req)
	require.NoError(t, err)
	assert.Empty(t, resp.Slots)
}

func TestExecute_ClosedDayReturnsEmptySlots(t *testing.T) {
	appts, sched, salon, catalog := defaultFakes()
	sched.exceptions = []domain.ScheduleException{{
		ID:        1,
		SalonID:   1,
		StaffID:   ptr.Ptr(int64(2)),
		Type:      domain.ExceptionDayOff,
		StartDate: time.Date(2025, time.June, 2, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2025, time.June, 2, 0, 0, 0, 0, time.UTC),
	}}
	uc := newTestUseCase(appts, sched, salon, catalog)

	resp, err := uc.Execute(context.Background(), defaultRequest())
	require.NoError(t, err)
	assert.Empty(t, resp.Slots)
}

func TestExecute_ServiceBufferOverridesSalonDefault(t *testing.T) {
	appts, sched, salon, catalog := defaultFakes()
	catalog.service.BufferMinutes = ptr.Ptr(15)
	// Запись 11:00-12:00 локального времени
	appts.appointments = []*domain.Appointment{{
		ID:       11,
		SalonID:  1,
		StaffID:  2,
		StartUTC: time.Date(2025, time.June, 2, 9, 0, 0, 0, time.UTC),
		EndUTC:   time.Date(2025, time.June, 2, 10, 0, 0, 0, time.UTC),
		Status:   domain.StatusConfirmed,
	}}
	uc := newTestUseCase(appts, sched, salon, catalog)

	resp, err := uc.Execute(context.Background(), defaultRequest())
	require.NoError(t, err)

	byStart := make(map[string]domain.Slot, len(resp.Slots))
	for _, slot := range resp.Slots {
		byStart[slot.StartLocal.String()] = slot
	}

	// Слот 10:15-10:45 с буфером 15 минут занимает до 11:00 - еще свободен,
	// 10:30 с буфером тянется до 11:15 и конфликтует
	assert.True(t, byStart["10:15"].Available)
	assert.False(t, byStart["10:30"].Available)
}

func TestExecute_SalonNotFound(t *testing.T) {
	appts, sched, _, catalog := defaultFakes()
	salon := &fakeSalonRepo{err: salonRepo.ErrSettingsNotFound}
	uc := newTestUseCase(appts, sched, salon, catalog)

	_, err := uc.Execute(context.Background(), defaultRequest())
	assert.ErrorIs(t, err, ErrSalonNotFound)
}

func TestExecute_ServiceNotFound(t *testing.T) {
	appts, sched, salon, catalog := defaultFakes()
	catalog.service = nil
	catalog.svcErr = catalogservice.ErrServiceNotFound
	uc := newTestUseCase(appts, sched, salon, catalog)

	_, err := uc.Execute(context.Background(), defaultRequest())
	assert.ErrorIs(t, err, ErrServiceNotFound)
}

func TestExecute_StaffNotFound(t *testing.T) {
	appts, sched, salon, catalog := defaultFakes()
	catalog.staff = nil
	catalog.staffErr = catalogservice.ErrStaffNotFound
	uc := newTestUseCase(appts, sched, salon, catalog)

	_, err := uc.Execute(context.Background(), defaultRequest())
	assert.ErrorIs(t, err, ErrStaffNotFound)
}

func TestExecute_StaffNotProvidingService(t *testing.T) {
	appts, sched, salon, catalog := defaultFakes()
	catalog.service.StaffIDs = []int64{77}
	uc := newTestUseCase(appts, sched, salon, catalog)

	_, err := uc.Execute(context.Background(), defaultRequest())
	assert.ErrorIs(t, err, ErrStaffNotProvidingService)
}

func TestExecute_InvalidInput(t *testing.T) {
	appts, sched, salon, catalog := defaultFakes()
	uc := newTestUseCase(appts, sched, salon, catalog)

	req := defaultRequest()
	req.StaffID = 0

	_, err := uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestExecute_RequestStepWidensSalonStep(t *testing.T) {
	appts, sched, salon, catalog := defaultFakes()
	uc := newTestUseCase(appts, sched, salon, catalog)

	req := defaultRequest()
	req.StepMinutes = ptr.Ptr(30)

	resp, err := uc.Execute(context.Background(), req)
	require.NoError(t, err)

	// 09:00 .. 17:30 с шагом 30 минут
	assert.Len(t, resp.Slots, 18)
	assert.Equal(t, "09:30", resp.Slots[1].StartLocal.String())
}

func TestExecute_RequestStepFinerThanSalonIsIgnored(t *testing.T) {
	appts, sched, salon, catalog := defaultFakes()
	uc := newTestUseCase(appts, sched, salon, catalog)

	req := defaultRequest()
	req.StepMinutes = ptr.Ptr(5)

	resp, err := uc.Execute(context.Background(), req)
	require.NoError(t, err)

	// Шаг салона 15 минут сохраняется
	assert.Len(t, resp.Slots, 35)
	assert.Equal(t, "09:15", resp.Slots[1].StartLocal.String())
}

func TestExecute_RequestStepOutOfRange(t *testing.T) {
	appts, sched, salon, catalog := defaultFakes()
	uc := newTestUseCase(appts, sched, salon, catalog)

	req := defaultRequest()
	req.StepMinutes = ptr.Ptr(3)

	_, err := uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrInvalidInput)
}
