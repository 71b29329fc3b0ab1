package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/sleeptrain/checkin-engine/internal/core/domain"
)

type PostgresStatsRepository struct {
	db *sql.DB
}

func NewPostgresStatsRepository(db *sql.DB) *PostgresStatsRepository {
	return &PostgresStatsRepository{
		db: db,
	}
}

func (r *PostgresStatsRepository) GetByUserID(ctx context.Context, userID string) (*domain.Stats, error) {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	query := `
		SELECT user_id, streak, best_streak, updated_at
		FROM stats
		WHERE user_id = $1
	`

	var stats domain.Stats

	err := r.db.QueryRowContext(ctx, query, userID).Scan(
		&stats.UserID,
		&stats.Streak,
		&stats.BestStreak,
		&stats.UpdatedAt,
	)

	if err != nil {
		if err == sql.ErrNoRows {
			return nil, domain.ErrStatsNotFound
		}
		return nil, fmt.Errorf("repository: get stats failed: %w", err)
	}

	return &stats, nil
}

func (r *PostgresStatsRepository) Save(ctx context.Context, stats *domain.Stats) error {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	query := `
		INSERT INTO stats (user_id, streak, best_streak, updated_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (user_id) DO UPDATE SET
			streak      = EXCLUDED.streak,
			best_streak = EXCLUDED.best_streak,
			updated_at  = EXCLUDED.updated_at
	`

	_, err := r.db.ExecContext(ctx, query, stats.UserID, stats.Streak, stats.BestStreak, stats.UpdatedAt)
	if err != nil {
		return fmt.Errorf("repository: save stats failed: %w", err)
	}

	return nil
}
