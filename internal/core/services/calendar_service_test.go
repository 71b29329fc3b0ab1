package services

import (
	"context"
	"testing"
	"time"

	"github.com/sleeptrain/checkin-engine/internal/core/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCalendarService_Range(t *testing.T) {
	ctx := context.Background()

	// Wednesday evening, bedtime 23:00.
	now := time.Date(2026, 1, 14, 21, 0, 0, 0, time.UTC)

	setup := func(t *testing.T) (*CalendarService, *fakeCheckInRepo, *fakeClock) {
		t.Helper()

		checkIns := newFakeCheckInRepo()
		schedules := newFakeScheduleRepo()
		clock := &fakeClock{now: now}

		tmpl, err := domain.NewScheduleTemplate("u1", 23, 0, 7, 0)
		require.NoError(t, err)
		require.NoError(t, schedules.Upsert(ctx, tmpl))

		return NewCalendarService(checkIns, schedules, clock), checkIns, clock
	}

	record := func(day time.Time, status domain.CheckInStatus, checkedInAt *time.Time) *domain.DailyCheckIn {
		r := domain.NewDailyCheckIn("u1", day)
		r.Status = status
		r.CheckedInAt = checkedInAt
		return r
	}

	t.Run("Success: Window starts on Monday and classifies every day", func(t *testing.T) {
		svc, checkIns, _ := setup(t)

		monday := time.Date(2026, 1, 12, 0, 0, 0, 0, time.UTC)
		tuesday := monday.AddDate(0, 0, 1)

		mondayInstant := time.Date(2026, 1, 12, 23, 5, 0, 0, time.UTC)
		require.NoError(t, checkIns.Upsert(ctx, record(monday, domain.StatusCompleted, &mondayInstant)))
		require.NoError(t, checkIns.Upsert(ctx, record(tuesday, domain.StatusFailed, nil)))

		days, err := svc.Range(ctx, "u1", 0, 2)

		require.NoError(t, err)
		require.Len(t, days, 5)

		assert.Equal(t, monday, days[0].Day)
		assert.Equal(t, domain.DayCompleted, days[0].Status)
		assert.Equal(t, domain.DayFailed, days[1].Status)
		// Today at 21:00 with a 23:00 bedtime is still out of reach.
		assert.Equal(t, domain.DayNotReached, days[2].Status)
		assert.Equal(t, domain.DayFuture, days[3].Status)
		assert.Equal(t, domain.DayFuture, days[4].Status)
	})

	t.Run("Success: Past days without records show as gaps", func(t *testing.T) {
		svc, _, _ := setup(t)

		days, err := svc.Range(ctx, "u1", 2, 0)

		require.NoError(t, err)
		for _, d := range days[:len(days)-1] {
			assert.Equal(t, domain.DayNoRecord, d.Status, "day %s", domain.DayKey(d.Day))
		}
	})

	t.Run("Success: Missing schedule falls back to the default template", func(t *testing.T) {
		svc := NewCalendarService(newFakeCheckInRepo(), newFakeScheduleRepo(), &fakeClock{now: now})

		days, err := svc.Range(ctx, "u1", 0, 0)

		require.NoError(t, err)
		assert.NotEmpty(t, days)
	})

	t.Run("Success: Stale completed label is re-derived from the instant", func(t *testing.T) {
		svc, checkIns, _ := setup(t)

		monday := time.Date(2026, 1, 12, 0, 0, 0, 0, time.UTC)
		lateInstant := time.Date(2026, 1, 13, 0, 30, 0, 0, time.UTC) // 90 minutes past 23:00
		require.NoError(t, checkIns.Upsert(ctx, record(monday, domain.StatusCompleted, &lateInstant)))

		days, err := svc.Range(ctx, "u1", 0, 0)

		require.NoError(t, err)
		assert.Equal(t, domain.DayLateCompleted, days[0].Status)
	})
}

func TestCalendarService_StreakDays(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 1, 14, 21, 0, 0, 0, time.UTC)

	checkIns := newFakeCheckInRepo()
	schedules := newFakeScheduleRepo()
	clock := &fakeClock{now: now}

	tmpl, err := domain.NewScheduleTemplate("u1", 23, 0, 7, 0)
	require.NoError(t, err)
	require.NoError(t, schedules.Upsert(ctx, tmpl))

	monday := time.Date(2026, 1, 12, 0, 0, 0, 0, time.UTC)
	mondayInstant := time.Date(2026, 1, 12, 23, 5, 0, 0, time.UTC)
	mondayRecord := domain.NewDailyCheckIn("u1", monday)
	mondayRecord.Status = domain.StatusCompleted
	mondayRecord.CheckedInAt = &mondayInstant
	require.NoError(t, checkIns.Upsert(ctx, mondayRecord))

	svc := NewCalendarService(checkIns, schedules, clock)

	days, err := svc.StreakDays(ctx, "u1", 0, 0)

	require.NoError(t, err)
	require.Len(t, days, 3)
	assert.True(t, days[0].IsCompleted)
	assert.False(t, days[1].IsCompleted)
	assert.False(t, days[2].IsCompleted)
}
