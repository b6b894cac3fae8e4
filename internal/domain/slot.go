package domain

import (
	"time"

	"github.com/m04kA/SMC-SalonService/pkg/types"
)

// UnavailabilityReason explains why a slot or a proposed appointment is not bookable
type UnavailabilityReason string

const (
	ReasonAppointmentConflict UnavailabilityReason = "APPOINTMENT_CONFLICT"
	ReasonSalonClosed         UnavailabilityReason = "SALON_CLOSED"
	ReasonStaffOff            UnavailabilityReason = "STAFF_OFF"
	ReasonOutsideWorkingHours UnavailabilityReason = "OUTSIDE_WORKING_HOURS"
)

// Slot is a candidate bookable interval of fixed service duration.
// Slots are derived and transient: recomputed on every request, never persisted.
// Boundaries are carried both in salon-local wall-clock time and as UTC
// instants so callers in other timezones display correctly without recomputation.
type Slot struct {
	StartLocal types.TimeString
	EndLocal   types.TimeString
	StartUTC   time.Time
	EndUTC     time.Time
	Available  bool
	Reason     UnavailabilityReason // empty when Available
}

// DurationMinutes returns the slot length in minutes
func (s *Slot) DurationMinutes() int {
	return int(s.EndUTC.Sub(s.StartUTC).Minutes())
}
