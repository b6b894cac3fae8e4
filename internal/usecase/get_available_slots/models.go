package get_available_slots

import (
	"time"

	"github.com/m04kA/SMC-SalonService/internal/domain"
)

// Request модель запроса на получение доступных слотов
type Request struct {
	SalonID   int64     // ID салона
	StaffID   int64     // ID мастера
	ServiceID int64     // ID услуги (определяет длительность и буфер)
	Date      time.Time // Дата для получения слотов (без времени)

	// StepMinutes опциональный шаг из запроса. Может только укрупнять
	// шаг салона, более мелкий шаг игнорируется
	StepMinutes *int
}

// Response модель ответа со списком слотов
type Response struct {
	Date      time.Time     // Дата, на которую запрашивались слоты
	SalonID   int64         // ID салона
	StaffID   int64         // ID мастера
	ServiceID int64         // ID услуги
	Timezone  string        // IANA таймзона салона
	Slots     []domain.Slot // Слоты в порядке возрастания времени начала
}
