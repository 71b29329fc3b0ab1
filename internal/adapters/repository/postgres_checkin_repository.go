package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/sleeptrain/checkin-engine/internal/core/domain"
)

type PostgresCheckInRepository struct {
	db *sqlx.DB
}

func NewPostgresCheckInRepository(db *sqlx.DB) *PostgresCheckInRepository {
	return &PostgresCheckInRepository{db: db}
}

func (r *PostgresCheckInRepository) GetByDay(ctx context.Context, userID string, day time.Time) (*domain.DailyCheckIn, error) {
	var record domain.DailyCheckIn

	query := `SELECT * FROM daily_check_ins WHERE user_id = $1 AND day = $2`

	err := r.db.GetContext(ctx, &record, query, userID, domain.StartOfDay(day))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrCheckInNotFound
		}
		return nil, err
	}
	return &record, nil
}

func (r *PostgresCheckInRepository) Upsert(ctx context.Context, record *domain.DailyCheckIn) error {
	if record.ID == "" {
		record.ID = uuid.NewString()
	}

	query := `
		INSERT INTO daily_check_ins (
			id, user_id, day,
			status, checked_in_at,
			created_at, updated_at
		) VALUES (
			:id, :user_id, :day,
			:status, :checked_in_at,
			:created_at, :updated_at
		)
		ON CONFLICT (user_id, day) DO UPDATE SET
			status        = EXCLUDED.status,
			checked_in_at = EXCLUDED.checked_in_at,
			updated_at    = EXCLUDED.updated_at`

	_, err := r.db.NamedExecContext(ctx, query, record)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok {
			if pqErr.Code == "23503" {
				return errors.New("referenced user does not exist")
			}
		}
		return err
	}
	return nil
}

func (r *PostgresCheckInRepository) ListRange(ctx context.Context, userID string, from, to time.Time) ([]*domain.DailyCheckIn, error) {
	records := []*domain.DailyCheckIn{}

	query := `
		SELECT * FROM daily_check_ins
		WHERE user_id = $1
		  AND day >= $2
		  AND day <= $3
		ORDER BY day ASC`

	err := r.db.SelectContext(ctx, &records, query, userID, domain.StartOfDay(from), domain.StartOfDay(to))
	if err != nil {
		return nil, err
	}
	return records, nil
}
