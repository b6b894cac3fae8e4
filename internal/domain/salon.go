package domain

import "time"

// SalonSettings holds per-salon scheduling policy.
// Slot step and default buffer are configurable defaults, not invariants:
// the booking UI snaps to SlotStepMinutes and services may override the buffer.
type SalonSettings struct {
	SalonID              int64
	Timezone             string // IANA zone name, e.g. "Europe/Warsaw"
	SlotStepMinutes      int
	DefaultBufferMinutes int
	CreatedAt            time.Time
	UpdatedAt            time.Time
}

// Location resolves the salon's IANA timezone
func (s *SalonSettings) Location() (*time.Location, error) {
	return time.LoadLocation(s.Timezone)
}
