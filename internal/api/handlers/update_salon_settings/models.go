package update_salon_settings

import (
	"github.com/m04kA/SMC-SalonService/internal/service/schedule/models"
)

// UpdateSettingsRequest HTTP request model
type UpdateSettingsRequest struct {
	Timezone             string `json:"timezone"` // IANA, например "Europe/Warsaw"
	SlotStepMinutes      int    `json:"slotStepMinutes"`
	DefaultBufferMinutes int    `json:"defaultBufferMinutes"`
}

// ToServiceRequest конвертирует HTTP запрос в модель сервиса
func (r *UpdateSettingsRequest) ToServiceRequest(userID, salonID int64) *models.UpdateSettingsRequest {
	return &models.UpdateSettingsRequest{
		UserID:               userID,
		SalonID:              salonID,
		Timezone:             r.Timezone,
		SlotStepMinutes:      r.SlotStepMinutes,
		DefaultBufferMinutes: r.DefaultBufferMinutes,
	}
}
