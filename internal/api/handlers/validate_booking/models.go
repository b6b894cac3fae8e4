package validate_booking

import (
	"time"

	validateBooking "github.com/m04kA/SMC-SalonService/internal/usecase/validate_booking"
)

// ValidateBookingRequest HTTP request model
type ValidateBookingRequest struct {
	StaffID   int64  `json:"staffId"`
	StartTime string `json:"startTime"` // ISO 8601, UTC
	EndTime   string `json:"endTime"`   // ISO 8601, UTC
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *ValidateBookingRequest) ToUseCaseRequest(salonID int64) (*validateBooking.Request, error) {
	start, err := time.Parse(time.RFC3339, r.StartTime)
	if err != nil {
		return nil, err
	}

	end, err := time.Parse(time.RFC3339, r.EndTime)
	if err != nil {
		return nil, err
	}

	return &validateBooking.Request{
		SalonID:  salonID,
		StaffID:  r.StaffID,
		StartUTC: start.UTC(),
		EndUTC:   end.UTC(),
	}, nil
}

// ValidateBookingResponse HTTP response model
type ValidateBookingResponse struct {
	OK                       bool   `json:"ok"`
	Reason                   string `json:"reason,omitempty"`
	ConflictingAppointmentID *int64 `json:"conflictingAppointmentId,omitempty"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *validateBooking.Response) *ValidateBookingResponse {
	return &ValidateBookingResponse{
		OK:                       resp.Valid,
		Reason:                   string(resp.Reason),
		ConflictingAppointmentID: resp.ConflictingAppointmentID,
	}
}
