package domain

import "time"

// AppointmentStatus represents the status of an appointment
type AppointmentStatus string

const (
	StatusPending           AppointmentStatus = "pending"
	StatusConfirmed         AppointmentStatus = "confirmed"
	StatusInProgress        AppointmentStatus = "in_progress"
	StatusCompleted         AppointmentStatus = "completed"
	StatusCancelledByClient AppointmentStatus = "cancelled_by_client"
	StatusCancelledBySalon  AppointmentStatus = "cancelled_by_salon"
	StatusNoShow            AppointmentStatus = "no_show"
)

// Appointment represents a client appointment with a staff member.
// Start and end are stored as UTC instants; the salon timezone is applied
// only when rendering or when resolving working hours.
type Appointment struct {
	ID        int64
	SalonID   int64
	ClientID  int64
	StaffID   int64
	ServiceID int64
	StartUTC  time.Time
	EndUTC    time.Time
	Status    AppointmentStatus

	// Denormalized data for history
	ServiceName  string
	ServicePrice float64
	Notes        *string

	CancellationReason *string
	CancelledAt        *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsActive returns true if the appointment occupies its time interval.
// Cancelled and no-show appointments do not participate in conflict detection.
func (a *Appointment) IsActive() bool {
	return a.Status != StatusCancelledByClient &&
		a.Status != StatusCancelledBySalon &&
		a.Status != StatusNoShow
}

// CanBeCancelled returns true if the appointment can be cancelled
func (a *Appointment) CanBeCancelled() bool {
	return a.Status == StatusPending || a.Status == StatusConfirmed
}

// IsCancelled returns true if the appointment has been cancelled
func (a *Appointment) IsCancelled() bool {
	return a.Status == StatusCancelledByClient || a.Status == StatusCancelledBySalon
}

// Overlaps reports whether the appointment's half-open interval [StartUTC, EndUTC)
// intersects [start, end). Back-to-back appointments do not overlap.
func (a *Appointment) Overlaps(start, end time.Time) bool {
	return a.StartUTC.Before(end) && start.Before(a.EndUTC)
}

// StaffAppointmentsFilter filters appointments of a single staff member
type StaffAppointmentsFilter struct {
	SalonID         int64
	StaffID         int64
	FromUTC         *time.Time         // period start (optional)
	ToUTC           *time.Time         // period end, exclusive (optional)
	Status          *AppointmentStatus // optional status filter
	IncludeInactive bool               // include cancelled and no-show appointments
}
