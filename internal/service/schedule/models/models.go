package models

import (
	"errors"
	"time"

	"github.com/m04kA/SMC-SalonService/internal/domain"
	"github.com/m04kA/SMC-SalonService/pkg/types"
)

var (
	// ErrInvalidExceptionType возвращается при некорректном типе исключения
	ErrInvalidExceptionType = errors.New("invalid exception type")
)

// Request модели

// GetWeekScheduleRequest запрос на получение эффективного недельного расписания
type GetWeekScheduleRequest struct {
	SalonID int64  `json:"salonId"`
	StaffID *int64 `json:"staffId,omitempty"` // nil - расписание салона без персональных замен
}

// DayHours рабочие часы на один день недели
type DayHours struct {
	DayOfWeek    int    `json:"dayOfWeek"` // 0 = воскресенье .. 6 = суббота
	IsWorkingDay bool   `json:"isWorkingDay"`
	StartTime    string `json:"startTime,omitempty"` // "09:00", пусто для выходного
	EndTime      string `json:"endTime,omitempty"`
}

// ReplaceWeeklyHoursRequest запрос на замену недельного шаблона
type ReplaceWeeklyHoursRequest struct {
	UserID  int64      `json:"userId"`
	SalonID int64      `json:"salonId"`
	StaffID *int64     `json:"staffId,omitempty"` // nil - салонный шаблон
	Days    []DayHours `json:"days"`
}

// ToDomainHours конвертирует дни запроса в domain записи шаблона
func (r *ReplaceWeeklyHoursRequest) ToDomainHours() []domain.WeeklyWorkingHour {
	hours := make([]domain.WeeklyWorkingHour, 0, len(r.Days))
	for _, day := range r.Days {
		hours = append(hours, domain.WeeklyWorkingHour{
			SalonID:      r.SalonID,
			StaffID:      r.StaffID,
			DayOfWeek:    day.DayOfWeek,
			IsWorkingDay: day.IsWorkingDay,
			StartTime:    types.TimeString(day.StartTime),
			EndTime:      types.TimeString(day.EndTime),
		})
	}
	return hours
}

// CreateExceptionRequest запрос на создание исключения расписания
type CreateExceptionRequest struct {
	UserID       int64   `json:"userId"`
	SalonID      int64   `json:"salonId"`
	StaffID      *int64  `json:"staffId,omitempty"` // nil - салонное исключение
	StartDate    string  `json:"startDate"`         // "2025-06-02"
	EndDate      string  `json:"endDate"`           // включительно
	Type         string  `json:"type"`              // day_off | sick_leave | custom_hours
	CustomStart  *string `json:"customStart,omitempty"`
	CustomEnd    *string `json:"customEnd,omitempty"`
	IsWorkingDay bool    `json:"isWorkingDay"`
}

// ToDomainException конвертирует request в domain модель
func (r *CreateExceptionRequest) ToDomainException() (*domain.ScheduleException, error) {
	excType, err := ToDomainExceptionType(r.Type)
	if err != nil {
		return nil, err
	}

	startDate, err := time.Parse(domain.DateFormat, r.StartDate)
	if err != nil {
		return nil, err
	}

	endDate, err := time.Parse(domain.DateFormat, r.EndDate)
	if err != nil {
		return nil, err
	}

	exc := &domain.ScheduleException{
		SalonID:      r.SalonID,
		StaffID:      r.StaffID,
		StartDate:    startDate,
		EndDate:      endDate,
		Type:         excType,
		IsWorkingDay: r.IsWorkingDay,
	}

	if r.CustomStart != nil {
		ts := types.TimeString(*r.CustomStart)
		exc.CustomStart = &ts
	}
	if r.CustomEnd != nil {
		ts := types.TimeString(*r.CustomEnd)
		exc.CustomEnd = &ts
	}

	return exc, nil
}

// DeleteExceptionRequest запрос на удаление исключения
type DeleteExceptionRequest struct {
	UserID      int64 `json:"userId"`
	SalonID     int64 `json:"salonId"`
	ExceptionID int64 `json:"exceptionId"`
}

// UpdateSettingsRequest запрос на обновление настроек салона
type UpdateSettingsRequest struct {
	UserID               int64  `json:"userId"`
	SalonID              int64  `json:"salonId"`
	Timezone             string `json:"timezone"`
	SlotStepMinutes      int    `json:"slotStepMinutes"`
	DefaultBufferMinutes int    `json:"defaultBufferMinutes"`
}

// Response модели

// WeekScheduleResponse эффективное недельное расписание
type WeekScheduleResponse struct {
	SalonID int64      `json:"salonId"`
	StaffID *int64     `json:"staffId,omitempty"`
	Days    []DayHours `json:"days"` // 7 дней, индекс = день недели
}

// ExceptionResponse ответ с данными исключения
type ExceptionResponse struct {
	ID           int64   `json:"id"`
	SalonID      int64   `json:"salonId"`
	StaffID      *int64  `json:"staffId,omitempty"`
	StartDate    string  `json:"startDate"`
	EndDate      string  `json:"endDate"`
	Type         string  `json:"type"`
	CustomStart  *string `json:"customStart,omitempty"`
	CustomEnd    *string `json:"customEnd,omitempty"`
	IsWorkingDay bool    `json:"isWorkingDay"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// SettingsResponse ответ с настройками салона
type SettingsResponse struct {
	SalonID              int64  `json:"salonId"`
	Timezone             string `json:"timezone"`
	SlotStepMinutes      int    `json:"slotStepMinutes"`
	DefaultBufferMinutes int    `json:"defaultBufferMinutes"`
}

// Методы конвертации

// FromEffectiveWeek конвертирует результат резолвера в DTO
func FromEffectiveWeek(salonID int64, staffID *int64, week [7]domain.EffectiveDay) *WeekScheduleResponse {
	resp := &WeekScheduleResponse{
		SalonID: salonID,
		StaffID: staffID,
		Days:    make([]DayHours, 7),
	}

	for day, effective := range week {
		dto := DayHours{
			DayOfWeek:    day,
			IsWorkingDay: effective.Working,
		}
		if effective.Working {
			dto.StartTime = effective.Start.String()
			dto.EndTime = effective.End.String()
		}
		resp.Days[day] = dto
	}

	return resp
}

// FromDomainException конвертирует domain модель в DTO
func FromDomainException(e *domain.ScheduleException) *ExceptionResponse {
	if e == nil {
		return nil
	}

	resp := &ExceptionResponse{
		ID:           e.ID,
		SalonID:      e.SalonID,
		StaffID:      e.StaffID,
		StartDate:    e.StartDate.Format(domain.DateFormat),
		EndDate:      e.EndDate.Format(domain.DateFormat),
		Type:         string(e.Type),
		IsWorkingDay: e.IsWorkingDay,
		CreatedAt:    e.CreatedAt,
		UpdatedAt:    e.UpdatedAt,
	}

	if e.CustomStart != nil {
		s := e.CustomStart.String()
		resp.CustomStart = &s
	}
	if e.CustomEnd != nil {
		s := e.CustomEnd.String()
		resp.CustomEnd = &s
	}

	return resp
}

// FromDomainSettings конвертирует domain модель в DTO
func FromDomainSettings(s *domain.SalonSettings) *SettingsResponse {
	if s == nil {
		return nil
	}
	return &SettingsResponse{
		SalonID:              s.SalonID,
		Timezone:             s.Timezone,
		SlotStepMinutes:      s.SlotStepMinutes,
		DefaultBufferMinutes: s.DefaultBufferMinutes,
	}
}

// ToDomainExceptionType конвертирует строку в domain.ExceptionType с валидацией
func ToDomainExceptionType(excType string) (domain.ExceptionType, error) {
	t := domain.ExceptionType(excType)

	validTypes := []domain.ExceptionType{
		domain.ExceptionDayOff,
		domain.ExceptionSickLeave,
		domain.ExceptionCustomHours,
	}

	for _, valid := range validTypes {
		if t == valid {
			return t, nil
		}
	}

	return "", ErrInvalidExceptionType
}
