package domain

import (
	"time"

	"github.com/m04kA/SMC-SalonService/pkg/types"
)

// WeeklyWorkingHour is one weekly-template record for a single day of week.
// StaffID == nil means the salon-wide default; a staff-scoped record for the
// same day fully replaces the salon's record (no field-level merge).
type WeeklyWorkingHour struct {
	ID           int64
	SalonID      int64
	StaffID      *int64 // nil = salon-wide default
	DayOfWeek    int    // 0 = Sunday .. 6 = Saturday, matching time.Weekday
	StartTime    types.TimeString
	EndTime      types.TimeString
	IsWorkingDay bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// IsSalonWide returns true if the record is the salon-wide default
func (w *WeeklyWorkingHour) IsSalonWide() bool {
	return w.StaffID == nil
}

// ExceptionType represents the kind of a schedule exception
type ExceptionType string

const (
	ExceptionDayOff      ExceptionType = "day_off"
	ExceptionSickLeave   ExceptionType = "sick_leave"
	ExceptionCustomHours ExceptionType = "custom_hours"
)

// ScheduleException is a date-range override that takes precedence over the
// weekly template for every date it covers. StaffID == nil means a salon-wide
// exception applying to every staff member.
type ScheduleException struct {
	ID           int64
	SalonID      int64
	StaffID      *int64    // nil = salon-wide
	StartDate    time.Time // inclusive, local date
	EndDate      time.Time // inclusive, local date
	Type         ExceptionType
	CustomStart  *types.TimeString // custom_hours only
	CustomEnd    *types.TimeString // custom_hours only
	IsWorkingDay bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// IsSalonWide returns true if the exception applies to every staff member
func (e *ScheduleException) IsSalonWide() bool {
	return e.StaffID == nil
}

// AppliesTo returns true if the exception applies to the given staff member
func (e *ScheduleException) AppliesTo(staffID int64) bool {
	return e.StaffID == nil || *e.StaffID == staffID
}

// Covers returns true if the local date falls inside [StartDate, EndDate]
func (e *ScheduleException) Covers(date time.Time) bool {
	d := dateOnly(date)
	return !d.Before(dateOnly(e.StartDate)) && !d.After(dateOnly(e.EndDate))
}

// Closes returns true if the exception closes the day entirely.
// Custom-hours exceptions close the day only when IsWorkingDay is false.
func (e *ScheduleException) Closes() bool {
	if e.Type == ExceptionCustomHours {
		return !e.IsWorkingDay
	}
	return true
}

// EffectiveDay is the resolved working interval for one staff member on one
// date. "Closed" is a first-class state: Working == false means no interval.
type EffectiveDay struct {
	Working bool
	Start   types.TimeString
	End     types.TimeString
}

// ClosedDay returns the closed state
func ClosedDay() EffectiveDay {
	return EffectiveDay{Working: false}
}

// OpenDay returns an open day with the given working interval
func OpenDay(start, end types.TimeString) EffectiveDay {
	return EffectiveDay{Working: true, Start: start, End: end}
}

func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
