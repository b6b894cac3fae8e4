package catalogservice

// Salon модель салона из CatalogService
type Salon struct {
	ID         int64   `json:"id"`
	Name       string  `json:"name"`
	Timezone   string  `json:"timezone"`
	ManagerIDs []int64 `json:"manager_ids"`
	StaffIDs   []int64 `json:"staff_ids"`
}

// Service модель услуги из CatalogService
type Service struct {
	ID              int64    `json:"id"`
	SalonID         int64    `json:"salon_id"`
	Name            string   `json:"name"`
	Price           *float64 `json:"price"`
	DurationMinutes int      `json:"duration_minutes"`
	BufferMinutes   *int     `json:"buffer_minutes"` // nil - используется дефолт салона
	StaffIDs        []int64  `json:"staff_ids"`      // мастера, выполняющие услугу
}

// StaffMember модель мастера из CatalogService
type StaffMember struct {
	ID       int64  `json:"id"`
	SalonID  int64  `json:"salon_id"`
	FullName string `json:"full_name"`
	Active   bool   `json:"active"`
}

// ErrorResponse модель ошибки от CatalogService
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}
