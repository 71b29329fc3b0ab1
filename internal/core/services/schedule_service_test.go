package services

import (
	"context"
	"testing"
	"time"

	"github.com/sleeptrain/checkin-engine/internal/core/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScheduleService(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 1, 14, 12, 0, 0, 0, time.UTC)

	t.Run("Success: Get falls back to the default template", func(t *testing.T) {
		svc := NewScheduleService(newFakeScheduleRepo(), &fakeClock{now: now})

		tmpl, err := svc.Get(ctx, "u1")

		require.NoError(t, err)
		assert.Equal(t, domain.DefaultBedHour, tmpl.BedHour)
		assert.Equal(t, domain.DefaultBedMinute, tmpl.BedMinute)
		assert.Equal(t, domain.DefaultWakeHour, tmpl.WakeHour)
		assert.Equal(t, domain.DefaultWakeMinute, tmpl.WakeMinute)
	})

	t.Run("Success: Update stores the template and Get returns it", func(t *testing.T) {
		repo := newFakeScheduleRepo()
		svc := NewScheduleService(repo, &fakeClock{now: now})

		saved, err := svc.Update(ctx, UpdateScheduleInput{
			UserID:     "u1",
			BedHour:    22,
			BedMinute:  15,
			WakeHour:   6,
			WakeMinute: 45,
		})

		require.NoError(t, err)
		assert.Equal(t, now, saved.UpdatedAt)

		tmpl, err := svc.Get(ctx, "u1")
		require.NoError(t, err)
		assert.Equal(t, 22, tmpl.BedHour)
		assert.Equal(t, 15, tmpl.BedMinute)
		assert.Equal(t, 6, tmpl.WakeHour)
		assert.Equal(t, 45, tmpl.WakeMinute)
	})

	t.Run("Fail: Update rejects invalid clock times without persisting", func(t *testing.T) {
		repo := newFakeScheduleRepo()
		svc := NewScheduleService(repo, &fakeClock{now: now})

		_, err := svc.Update(ctx, UpdateScheduleInput{
			UserID:  "u1",
			BedHour: 25,
		})

		assert.ErrorIs(t, err, domain.ErrInvalidScheduleTime)
		assert.Empty(t, repo.templates)
	})
}
