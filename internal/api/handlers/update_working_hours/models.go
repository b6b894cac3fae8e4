package update_working_hours

import (
	"github.com/m04kA/SMC-SalonService/internal/service/schedule/models"
)

// UpdateWorkingHoursRequest HTTP request model
type UpdateWorkingHoursRequest struct {
	StaffID *int64            `json:"staffId,omitempty"` // nil - салонный шаблон
	Days    []models.DayHours `json:"days"`
}

// ToServiceRequest конвертирует HTTP запрос в модель сервиса
func (r *UpdateWorkingHoursRequest) ToServiceRequest(userID, salonID int64) *models.ReplaceWeeklyHoursRequest {
	return &models.ReplaceWeeklyHoursRequest{
		UserID:  userID,
		SalonID: salonID,
		StaffID: r.StaffID,
		Days:    r.Days,
	}
}
