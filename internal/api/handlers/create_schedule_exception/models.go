package create_schedule_exception

import (
	"github.com/m04kA/SMC-SalonService/internal/service/schedule/models"
)

// CreateExceptionRequest HTTP request model
type CreateExceptionRequest struct {
	StaffID      *int64  `json:"staffId,omitempty"` // nil - салонное исключение
	StartDate    string  `json:"startDate"`         // "2025-06-02"
	EndDate      string  `json:"endDate"`           // включительно
	Type         string  `json:"type"`              // day_off | sick_leave | custom_hours
	CustomStart  *string `json:"customStart,omitempty"`
	CustomEnd    *string `json:"customEnd,omitempty"`
	IsWorkingDay bool    `json:"isWorkingDay"`
}

// ToServiceRequest конвертирует HTTP запрос в модель сервиса
func (r *CreateExceptionRequest) ToServiceRequest(userID, salonID int64) *models.CreateExceptionRequest {
	return &models.CreateExceptionRequest{
		UserID:       userID,
		SalonID:      salonID,
		StaffID:      r.StaffID,
		StartDate:    r.StartDate,
		EndDate:      r.EndDate,
		Type:         r.Type,
		CustomStart:  r.CustomStart,
		CustomEnd:    r.CustomEnd,
		IsWorkingDay: r.IsWorkingDay,
	}
}
