package salon

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-SalonService/internal/domain"
	"github.com/m04kA/SMC-SalonService/pkg/dbmetrics"
	"github.com/m04kA/SMC-SalonService/pkg/psqlbuilder"
)

const settingsTable = "salon_settings"

// Repository репозиторий для работы с настройками салона
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория настроек салона
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetSettings получает настройки планирования салона (таймзона, шаг сетки, буфер)
func (r *Repository) GetSettings(ctx context.Context, salonID int64) (*domain.SalonSettings, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"salon_id",
		"timezone",
		"slot_step_minutes",
		"default_buffer_minutes",
		"created_at",
		"updated_at",
	).
		From(settingsTable).
		Where(squirrel.Eq{"salon_id": salonID}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetSettings - build select query: %v", ErrBuildQuery, err)
	}

	var settings domain.SalonSettings
	var createdAt, updatedAt sql.NullTime

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&settings.SalonID,
		&settings.Timezone,
		&settings.SlotStepMinutes,
		&settings.DefaultBufferMinutes,
		&createdAt,
		&updatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, ErrSettingsNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetSettings - scan settings: %v", ErrScanRow, err)
	}

	settings.CreatedAt = createdAt.Time
	settings.UpdatedAt = updatedAt.Time

	return &settings, nil
}

// UpsertSettings создает или обновляет настройки планирования салона
func (r *Repository) UpsertSettings(ctx context.Context, settings *domain.SalonSettings) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert(settingsTable).
		Columns(
			"salon_id",
			"timezone",
			"slot_step_minutes",
			"default_buffer_minutes",
		).
		Values(
			settings.SalonID,
			settings.Timezone,
			settings.SlotStepMinutes,
			settings.DefaultBufferMinutes,
		).
		Suffix(`ON CONFLICT (salon_id) DO UPDATE SET
			timezone = EXCLUDED.timezone,
			slot_step_minutes = EXCLUDED.slot_step_minutes,
			default_buffer_minutes = EXCLUDED.default_buffer_minutes,
			updated_at = NOW()`).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: UpsertSettings - build upsert query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: UpsertSettings - execute upsert: %v", ErrExecQuery, err)
	}

	return nil
}
