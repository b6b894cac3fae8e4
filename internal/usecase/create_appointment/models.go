package create_appointment

import (
	"time"

	"github.com/m04kA/SMC-SalonService/pkg/types"
)

// Request модель запроса на создание записи
type Request struct {
	ClientID  int64            // ID клиента
	SalonID   int64            // ID салона
	StaffID   int64            // ID мастера
	ServiceID int64            // ID услуги
	Date      time.Time        // Дата записи (без времени, локальная для салона)
	StartTime types.TimeString // Локальное время начала (например, "10:00")
	Notes     *string          // Дополнительные заметки (опционально)
}

// Response модель ответа с созданной записью
type Response struct {
	ID        int64     // ID созданной записи
	ClientID  int64     // ID клиента
	SalonID   int64     // ID салона
	StaffID   int64     // ID мастера
	ServiceID int64     // ID услуги
	StartUTC  time.Time // Начало записи (UTC)
	EndUTC    time.Time // Конец записи (UTC, исключительно)
	Status    string    // Статус записи

	// Денормализованные данные
	ServiceName  string  // Название услуги
	ServicePrice float64 // Цена услуги
	Notes        *string // Заметки

	CreatedAt time.Time // Время создания
	UpdatedAt time.Time // Время обновления
}
