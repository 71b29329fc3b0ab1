package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/sleeptrain/checkin-engine/internal/core/domain"
)

type PostgresScheduleRepository struct {
	db *sql.DB
}

func NewPostgresScheduleRepository(db *sql.DB) *PostgresScheduleRepository {
	return &PostgresScheduleRepository{
		db: db,
	}
}

func (r *PostgresScheduleRepository) GetByUserID(ctx context.Context, userID string) (*domain.ScheduleTemplate, error) {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	query := `
		SELECT user_id, bed_hour, bed_minute, wake_hour, wake_minute, updated_at
		FROM schedules
		WHERE user_id = $1
	`

	var tmpl domain.ScheduleTemplate

	err := r.db.QueryRowContext(ctx, query, userID).Scan(
		&tmpl.UserID,
		&tmpl.BedHour,
		&tmpl.BedMinute,
		&tmpl.WakeHour,
		&tmpl.WakeMinute,
		&tmpl.UpdatedAt,
	)

	if err != nil {
		if err == sql.ErrNoRows {
			return nil, domain.ErrScheduleNotFound
		}
		return nil, fmt.Errorf("repository: get schedule failed: %w", err)
	}

	return &tmpl, nil
}

func (r *PostgresScheduleRepository) Upsert(ctx context.Context, tmpl *domain.ScheduleTemplate) error {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	query := `
		INSERT INTO schedules (user_id, bed_hour, bed_minute, wake_hour, wake_minute, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (user_id) DO UPDATE SET
			bed_hour    = EXCLUDED.bed_hour,
			bed_minute  = EXCLUDED.bed_minute,
			wake_hour   = EXCLUDED.wake_hour,
			wake_minute = EXCLUDED.wake_minute,
			updated_at  = EXCLUDED.updated_at
	`

	_, err := r.db.ExecContext(
		ctx,
		query,
		tmpl.UserID,
		tmpl.BedHour,
		tmpl.BedMinute,
		tmpl.WakeHour,
		tmpl.WakeMinute,
		tmpl.UpdatedAt,
	)

	if err != nil {
		return fmt.Errorf("repository: upsert schedule failed: %w", err)
	}

	return nil
}

func (r *PostgresScheduleRepository) ListUserIDs(ctx context.Context) ([]string, error) {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	rows, err := r.db.QueryContext(ctx, `SELECT user_id FROM schedules`)
	if err != nil {
		return nil, fmt.Errorf("repository: list schedule users failed: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("repository: scan schedule user failed: %w", err)
		}
		ids = append(ids, id)
	}

	return ids, rows.Err()
}
