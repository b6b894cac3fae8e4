package get_available_slots

import (
	"time"

	"github.com/m04kA/SMC-SalonService/internal/domain"
	getAvailableSlots "github.com/m04kA/SMC-SalonService/internal/usecase/get_available_slots"
)

// AvailableSlotsResponse HTTP response model
type AvailableSlotsResponse struct {
	Date      string          `json:"date"`
	SalonID   int64           `json:"salonId"`
	StaffID   int64           `json:"staffId"`
	ServiceID int64           `json:"serviceId"`
	Timezone  string          `json:"timezone"`
	Slots     []AvailableSlot `json:"slots"`
}

// AvailableSlot модель временного слота
type AvailableSlot struct {
	StartTime    string `json:"startTime"`        // локальное время салона, "10:00"
	EndTime      string `json:"endTime"`          // локальное время салона
	StartTimeUTC string `json:"startTimeUtc"`     // ISO 8601
	EndTimeUTC   string `json:"endTimeUtc"`       // ISO 8601
	Available    bool   `json:"available"`
	Reason       string `json:"reason,omitempty"` // только для недоступных слотов
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getAvailableSlots.Response) *AvailableSlotsResponse {
	slots := make([]AvailableSlot, len(resp.Slots))
	for i, slot := range resp.Slots {
		slots[i] = AvailableSlot{
			StartTime:    slot.StartLocal.String(),
			EndTime:      slot.EndLocal.String(),
			StartTimeUTC: slot.StartUTC.Format(time.RFC3339),
			EndTimeUTC:   slot.EndUTC.Format(time.RFC3339),
			Available:    slot.Available,
			Reason:       string(slot.Reason),
		}
	}

	return &AvailableSlotsResponse{
		Date:      resp.Date.Format(domain.DateFormat),
		SalonID:   resp.SalonID,
		StaffID:   resp.StaffID,
		ServiceID: resp.ServiceID,
		Timezone:  resp.Timezone,
		Slots:     slots,
	}
}

// ToUseCaseRequest создает запрос use case из path и query параметров
func ToUseCaseRequest(salonID, staffID, serviceID int64, dateStr string, stepMinutes *int) (*getAvailableSlots.Request, error) {
	// Парсим дату
	date, err := time.Parse(domain.DateFormat, dateStr)
	if err != nil {
		return nil, err
	}

	return &getAvailableSlots.Request{
		SalonID:     salonID,
		StaffID:     staffID,
		ServiceID:   serviceID,
		Date:        date,
		StepMinutes: stepMinutes,
	}, nil
}
