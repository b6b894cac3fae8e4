package create_appointment

import (
	"time"

	"github.com/m04kA/SMC-SalonService/internal/domain"
	createAppointment "github.com/m04kA/SMC-SalonService/internal/usecase/create_appointment"
	"github.com/m04kA/SMC-SalonService/pkg/types"
)

// CreateAppointmentRequest HTTP request model
type CreateAppointmentRequest struct {
	SalonID   int64   `json:"salonId"`
	StaffID   int64   `json:"staffId"`
	ServiceID int64   `json:"serviceId"`
	Date      string  `json:"date"`      // "2025-06-02", локальная дата салона
	StartTime string  `json:"startTime"` // "10:00", локальное время салона
	Notes     *string `json:"notes,omitempty"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case (с парсингом даты)
func (r *CreateAppointmentRequest) ToUseCaseRequest(clientID int64) (*createAppointment.Request, error) {
	date, err := time.Parse(domain.DateFormat, r.Date)
	if err != nil {
		return nil, err
	}

	startTime, err := types.NewTimeStringFromString(r.StartTime)
	if err != nil {
		return nil, err
	}

	return &createAppointment.Request{
		ClientID:  clientID,
		SalonID:   r.SalonID,
		StaffID:   r.StaffID,
		ServiceID: r.ServiceID,
		Date:      date,
		StartTime: startTime,
		Notes:     r.Notes,
	}, nil
}

// AppointmentResponse HTTP response model
type AppointmentResponse struct {
	ID        int64  `json:"id"`
	ClientID  int64  `json:"clientId"`
	SalonID   int64  `json:"salonId"`
	StaffID   int64  `json:"staffId"`
	ServiceID int64  `json:"serviceId"`
	StartTime string `json:"startTime"` // ISO 8601, UTC
	EndTime   string `json:"endTime"`   // ISO 8601, UTC
	Status    string `json:"status"`

	ServiceName  string  `json:"serviceName"`
	ServicePrice float64 `json:"servicePrice"`
	Notes        *string `json:"notes,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createAppointment.Response) *AppointmentResponse {
	return &AppointmentResponse{
		ID:           resp.ID,
		ClientID:     resp.ClientID,
		SalonID:      resp.SalonID,
		StaffID:      resp.StaffID,
		ServiceID:    resp.ServiceID,
		StartTime:    resp.StartUTC.Format(time.RFC3339),
		EndTime:      resp.EndUTC.Format(time.RFC3339),
		Status:       resp.Status,
		ServiceName:  resp.ServiceName,
		ServicePrice: resp.ServicePrice,
		Notes:        resp.Notes,
		CreatedAt:    resp.CreatedAt,
		UpdatedAt:    resp.UpdatedAt,
	}
}
