package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sleeptrain/checkin-engine/internal/core/domain"
)

func TestPostgresScheduleRepository_Integration(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	cleanup(t, db)
	defer cleanup(t, db)

	repo := NewPostgresScheduleRepository(db.DB)
	ctx := context.Background()

	userID := seedUser(t, db)

	t.Run("GetByUserID without a stored schedule returns not found", func(t *testing.T) {
		_, err := repo.GetByUserID(ctx, userID)
		assert.ErrorIs(t, err, domain.ErrScheduleNotFound)
	})

	t.Run("Upsert stores and GetByUserID reads the template back", func(t *testing.T) {
		tmpl, err := domain.NewScheduleTemplate(userID, 23, 0, 7, 0)
		require.NoError(t, err)
		tmpl.UpdatedAt = time.Date(2026, 1, 14, 12, 0, 0, 0, time.UTC)

		require.NoError(t, repo.Upsert(ctx, tmpl))

		got, err := repo.GetByUserID(ctx, userID)
		require.NoError(t, err)
		assert.Equal(t, 23, got.BedHour)
		assert.Equal(t, 0, got.BedMinute)
		assert.Equal(t, 7, got.WakeHour)
	})

	t.Run("Upsert overwrites the previous template", func(t *testing.T) {
		tmpl, err := domain.NewScheduleTemplate(userID, 22, 15, 6, 45)
		require.NoError(t, err)

		require.NoError(t, repo.Upsert(ctx, tmpl))

		got, err := repo.GetByUserID(ctx, userID)
		require.NoError(t, err)
		assert.Equal(t, 22, got.BedHour)
		assert.Equal(t, 15, got.BedMinute)
	})

	t.Run("ListUserIDs enumerates users with schedules", func(t *testing.T) {
		ids, err := repo.ListUserIDs(ctx)
		require.NoError(t, err)
		assert.Contains(t, ids, userID)
	})
}
