package schedule

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-SalonService/internal/domain"
	"github.com/m04kA/SMC-SalonService/pkg/dbmetrics"
	"github.com/m04kA/SMC-SalonService/pkg/psqlbuilder"
	"github.com/m04kA/SMC-SalonService/pkg/types"
)

const (
	workingHoursTable = "weekly_working_hours"
	exceptionsTable   = "schedule_exceptions"
)

// Repository репозиторий для работы с расписанием (недельные шаблоны и исключения)
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория расписания
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetWeeklyHours получает недельный шаблон рабочих часов
// staffID = nil - салонный шаблон, иначе персональный шаблон мастера
// Отсутствие записей не ошибка: день без записи считается закрытым
func (r *Repository) GetWeeklyHours(ctx context.Context, salonID int64, staffID *int64) ([]domain.WeeklyWorkingHour, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(
		"id",
		"salon_id",
		"staff_id",
		"day_of_week",
		"start_time",
		"end_time",
		"is_working_day",
		"created_at",
		"updated_at",
	).
		From(workingHoursTable).
		Where(squirrel.Eq{"salon_id": salonID}).
		OrderBy("day_of_week ASC, id ASC")

	if staffID == nil {
		selectBuilder = selectBuilder.Where("staff_id IS NULL")
	} else {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"staff_id": *staffID})
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetWeeklyHours - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetWeeklyHours - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	hours := make([]domain.WeeklyWorkingHour, 0, 7)
	for rows.Next() {
		var h domain.WeeklyWorkingHour
		var createdAt, updatedAt sql.NullTime

		err := rows.Scan(
			&h.ID,
			&h.SalonID,
			&h.StaffID,
			&h.DayOfWeek,
			&h.StartTime,
			&h.EndTime,
			&h.IsWorkingDay,
			&createdAt,
			&updatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("%w: GetWeeklyHours - scan row: %v", ErrScanRow, err)
		}

		h.CreatedAt = createdAt.Time
		h.UpdatedAt = updatedAt.Time
		hours = append(hours, h)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetWeeklyHours - rows iteration: %v", ErrScanRow, err)
	}

	return hours, nil
}

// ReplaceWeeklyHours заменяет недельный шаблон (салонный или персональный)
// Удаляет старые записи и вставляет новые; вызывается внутри транзакции
func (r *Repository) ReplaceWeeklyHours(ctx context.Context, salonID int64, staffID *int64, hours []domain.WeeklyWorkingHour) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	deleteBuilder := psqlbuilder.Delete(workingHoursTable).
		Where(squirrel.Eq{"salon_id": salonID})

	if staffID == nil {
		deleteBuilder = deleteBuilder.Where("staff_id IS NULL")
	} else {
		deleteBuilder = deleteBuilder.Where(squirrel.Eq{"staff_id": *staffID})
	}

	query, args, err := deleteBuilder.ToSql()
	if err != nil {
		return fmt.Errorf("%w: ReplaceWeeklyHours - build delete query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: ReplaceWeeklyHours - execute delete: %v", ErrExecQuery, err)
	}

	if len(hours) == 0 {
		return nil
	}

	insertBuilder := psqlbuilder.Insert(workingHoursTable).
		Columns("salon_id", "staff_id", "day_of_week", "start_time", "end_time", "is_working_day")

	for _, h := range hours {
		insertBuilder = insertBuilder.Values(salonID, staffID, h.DayOfWeek, h.StartTime, h.EndTime, h.IsWorkingDay)
	}

	query, args, err = insertBuilder.ToSql()
	if err != nil {
		return fmt.Errorf("%w: ReplaceWeeklyHours - build insert query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: ReplaceWeeklyHours - execute insert: %v", ErrExecQuery, err)
	}

	return nil
}

// ListExceptions получает исключения расписания, пересекающие период [from, to]
// Возвращает и салонные (staff_id IS NULL), и персональные исключения мастера
func (r *Repository) ListExceptions(ctx context.Context, salonID, staffID int64, from, to time.Time) ([]domain.ScheduleException, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"salon_id",
		"staff_id",
		"start_date",
		"end_date",
		"type",
		"custom_start",
		"custom_end",
		"is_working_day",
		"created_at",
		"updated_at",
	).
		From(exceptionsTable).
		Where(squirrel.Eq{"salon_id": salonID}).
		Where(squirrel.Or{
			squirrel.Eq{"staff_id": nil},
			squirrel.Eq{"staff_id": staffID},
		}).
		Where(squirrel.LtOrEq{"start_date": to}).
		Where(squirrel.GtOrEq{"end_date": from}).
		OrderBy("start_date ASC, id ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ListExceptions - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListExceptions - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	exceptions := make([]domain.ScheduleException, 0)
	for rows.Next() {
		var exc domain.ScheduleException
		var createdAt, updatedAt sql.NullTime
		var customStart, customEnd sql.NullString

		err := rows.Scan(
			&exc.ID,
			&exc.SalonID,
			&exc.StaffID,
			&exc.StartDate,
			&exc.EndDate,
			&exc.Type,
			&customStart,
			&customEnd,
			&exc.IsWorkingDay,
			&createdAt,
			&updatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("%w: ListExceptions - scan row: %v", ErrScanRow, err)
		}

		if exc.CustomStart, err = nullableTimeString(customStart); err != nil {
			return nil, fmt.Errorf("%w: ListExceptions - custom_start: %v", ErrScanRow, err)
		}
		if exc.CustomEnd, err = nullableTimeString(customEnd); err != nil {
			return nil, fmt.Errorf("%w: ListExceptions - custom_end: %v", ErrScanRow, err)
		}

		exc.CreatedAt = createdAt.Time
		exc.UpdatedAt = updatedAt.Time
		exceptions = append(exceptions, exc)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListExceptions - rows iteration: %v", ErrScanRow, err)
	}

	return exceptions, nil
}

// CreateException создает исключение расписания
func (r *Repository) CreateException(ctx context.Context, exc *domain.ScheduleException) (*domain.ScheduleException, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert(exceptionsTable).
		Columns(
			"salon_id",
			"staff_id",
			"start_date",
			"end_date",
			"type",
			"custom_start",
			"custom_end",
			"is_working_day",
		).
		Values(
			exc.SalonID,
			exc.StaffID,
			exc.StartDate,
			exc.EndDate,
			exc.Type,
			exc.CustomStart,
			exc.CustomEnd,
			exc.IsWorkingDay,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: CreateException - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&exc.ID,
		&createdAt,
		&updatedAt,
	)

	if err != nil {
		return nil, fmt.Errorf("%w: CreateException - execute insert: %v", ErrExecQuery, err)
	}

	exc.CreatedAt = createdAt.Time
	exc.UpdatedAt = updatedAt.Time

	return exc, nil
}

// nullableTimeString конвертирует NULLABLE колонку TIME в *types.TimeString
// Postgres TIME приходит как "10:00:00" - нормализуется через Scan
func nullableTimeString(v sql.NullString) (*types.TimeString, error) {
	if !v.Valid {
		return nil, nil
	}

	var ts types.TimeString
	if err := ts.Scan(v.String); err != nil {
		return nil, err
	}
	return &ts, nil
}

// DeleteException удаляет исключение расписания
func (r *Repository) DeleteException(ctx context.Context, salonID, exceptionID int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete(exceptionsTable).
		Where(squirrel.Eq{
			"id":       exceptionID,
			"salon_id": salonID,
		}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: DeleteException - build delete query: %v", ErrBuildQuery, err)
	}

	res, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: DeleteException - execute delete: %v", ErrExecQuery, err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: DeleteException - rows affected: %v", ErrExecQuery, err)
	}
	if affected == 0 {
		return ErrExceptionNotFound
	}

	return nil
}
