package domain

// Default scheduling policy values
const (
	DefaultSlotStepMinutes        = 15 // booking UI snapping granularity
	DefaultBufferMinutes          = 0
	DefaultTimezone               = "Europe/Warsaw"
	DefaultServiceDurationMinutes = 30
)

// Business validation constants
const (
	MinServiceDurationMinutes   = 5
	MaxServiceDurationMinutes   = 480 // 8 hours
	MinSlotStepMinutes          = 5
	MaxSlotStepMinutes          = 120
	MinBufferMinutes            = 0
	MaxBufferMinutes            = 180
	MaxExceptionRangeDays       = 366
	MaxNotesLength              = 500
	MaxCancellationReasonLength = 500
)

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// InactiveStatuses список статусов, не занимающих временной интервал
// Используется при фильтрации бронирований для проверки конфликтов
var InactiveStatuses = []AppointmentStatus{
	StatusCancelledByClient,
	StatusCancelledBySalon,
	StatusNoShow,
}

// ActiveStatuses список статусов активных записей
var ActiveStatuses = []AppointmentStatus{
	StatusPending,
	StatusConfirmed,
	StatusInProgress,
	StatusCompleted,
}
