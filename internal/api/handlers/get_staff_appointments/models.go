package get_staff_appointments

import (
	"net/url"
	"time"

	"github.com/m04kA/SMC-SalonService/internal/service/appointments/models"
)

// ToServiceRequest собирает запрос сервиса из path и query параметров
//
// Поддерживаемые query параметры:
//   - from, to: границы периода в ISO 8601 (UTC)
//   - status: фильтр по статусу записи
//   - includeInactive: включить отменённые и no-show записи
func ToServiceRequest(userID, salonID, staffID int64, query url.Values) (*models.GetStaffAppointmentsRequest, error) {
	req := &models.GetStaffAppointmentsRequest{
		UserID:  userID,
		SalonID: salonID,
		StaffID: staffID,
	}

	if fromStr := query.Get("from"); fromStr != "" {
		from, err := time.Parse(time.RFC3339, fromStr)
		if err != nil {
			return nil, err
		}
		fromUTC := from.UTC()
		req.FromUTC = &fromUTC
	}

	if toStr := query.Get("to"); toStr != "" {
		to, err := time.Parse(time.RFC3339, toStr)
		if err != nil {
			return nil, err
		}
		toUTC := to.UTC()
		req.ToUTC = &toUTC
	}

	if status := query.Get("status"); status != "" {
		req.Status = &status
	}

	if query.Get("includeInactive") == "true" {
		req.IncludeInactive = true
	}

	return req, nil
}
