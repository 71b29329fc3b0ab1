package domain_test

import (
	"testing"
	"time"

	"github.com/sleeptrain/checkin-engine/internal/core/domain"
	"github.com/stretchr/testify/assert"
)

func TestNewScheduleTemplate(t *testing.T) {
	t.Run("Success: Creates valid template", func(t *testing.T) {
		tmpl, err := domain.NewScheduleTemplate("u1", 23, 0, 7, 0)

		assert.Nil(t, err)
		assert.NotNil(t, tmpl)
		assert.Equal(t, "u1", tmpl.UserID)
		assert.Equal(t, 23, tmpl.BedHour)
		assert.Equal(t, 0, tmpl.BedMinute)
		assert.Equal(t, 7, tmpl.WakeHour)
		assert.Equal(t, 0, tmpl.WakeMinute)
		assert.WithinDuration(t, time.Now().UTC(), tmpl.UpdatedAt, 2*time.Second)
	})

	t.Run("Error: Rejects out of range clock times", func(t *testing.T) {
		tests := []struct {
			name                   string
			bedH, bedM, wakeH, wakeM int
		}{
			{"bed hour 24", 24, 0, 7, 0},
			{"bed hour negative", -1, 0, 7, 0},
			{"bed minute 60", 23, 60, 7, 0},
			{"wake hour 24", 23, 0, 24, 0},
			{"wake minute negative", 23, 0, 7, -1},
		}

		for _, tc := range tests {
			t.Run(tc.name, func(t *testing.T) {
				_, err := domain.NewScheduleTemplate("u1", tc.bedH, tc.bedM, tc.wakeH, tc.wakeM)
				assert.Equal(t, domain.ErrInvalidScheduleTime, err)
			})
		}
	})
}

func TestDefaultTemplate(t *testing.T) {
	tmpl := domain.DefaultTemplate("u1")

	assert.Equal(t, "u1", tmpl.UserID)
	assert.Equal(t, domain.DefaultBedHour, tmpl.BedHour)
	assert.Equal(t, domain.DefaultBedMinute, tmpl.BedMinute)
	assert.Equal(t, domain.DefaultWakeHour, tmpl.WakeHour)
	assert.Equal(t, domain.DefaultWakeMinute, tmpl.WakeMinute)
}

func TestScheduleTemplate_Resolve(t *testing.T) {
	day := time.Date(2026, 1, 14, 15, 42, 7, 0, time.UTC)

	t.Run("Success: Overnight schedule rolls arrival to next day", func(t *testing.T) {
		tmpl := &domain.ScheduleTemplate{BedHour: 23, BedMinute: 30, WakeHour: 7, WakeMinute: 30}

		departure, arrival := tmpl.Resolve(day)

		assert.Equal(t, time.Date(2026, 1, 14, 23, 30, 0, 0, time.UTC), departure)
		assert.Equal(t, time.Date(2026, 1, 15, 7, 30, 0, 0, time.UTC), arrival)
	})

	t.Run("Success: Same-day schedule keeps arrival on the same day", func(t *testing.T) {
		tmpl := &domain.ScheduleTemplate{BedHour: 13, BedMinute: 0, WakeHour: 21, WakeMinute: 0}

		departure, arrival := tmpl.Resolve(day)

		assert.Equal(t, time.Date(2026, 1, 14, 13, 0, 0, 0, time.UTC), departure)
		assert.Equal(t, time.Date(2026, 1, 14, 21, 0, 0, 0, time.UTC), arrival)
	})

	t.Run("Success: Identical bed and wake times roll over a full day", func(t *testing.T) {
		tmpl := &domain.ScheduleTemplate{BedHour: 22, BedMinute: 0, WakeHour: 22, WakeMinute: 0}

		departure, arrival := tmpl.Resolve(day)

		assert.True(t, arrival.After(departure))
		assert.Equal(t, 24*time.Hour, arrival.Sub(departure))
	})

	t.Run("Success: Instants inside the evening window stay on their own day", func(t *testing.T) {
		tmpl := &domain.ScheduleTemplate{BedHour: 23, BedMinute: 0, WakeHour: 7, WakeMinute: 0}

		attributed, departure := tmpl.AttributeDay(time.Date(2026, 1, 14, 23, 15, 0, 0, time.UTC))

		assert.Equal(t, time.Date(2026, 1, 14, 0, 0, 0, 0, time.UTC), attributed)
		assert.Equal(t, time.Date(2026, 1, 14, 23, 0, 0, 0, time.UTC), departure)
	})

	t.Run("Success: Just after midnight still belongs to the previous night", func(t *testing.T) {
		tmpl := &domain.ScheduleTemplate{BedHour: 23, BedMinute: 0, WakeHour: 7, WakeMinute: 0}

		attributed, departure := tmpl.AttributeDay(time.Date(2026, 1, 15, 0, 30, 0, 0, time.UTC))

		assert.Equal(t, time.Date(2026, 1, 14, 0, 0, 0, 0, time.UTC), attributed)
		assert.Equal(t, time.Date(2026, 1, 14, 23, 0, 0, 0, time.UTC), departure)
	})

	t.Run("Success: Past the previous window the instant falls to its own day", func(t *testing.T) {
		tmpl := &domain.ScheduleTemplate{BedHour: 23, BedMinute: 0, WakeHour: 7, WakeMinute: 0}

		// 01:01 is one minute past the tail of the window of the 14th.
		attributed, _ := tmpl.AttributeDay(time.Date(2026, 1, 15, 1, 1, 0, 0, time.UTC))
		assert.Equal(t, time.Date(2026, 1, 15, 0, 0, 0, 0, time.UTC), attributed)

		// Mid-afternoon is nowhere near either window.
		attributed, _ = tmpl.AttributeDay(time.Date(2026, 1, 15, 15, 0, 0, 0, time.UTC))
		assert.Equal(t, time.Date(2026, 1, 15, 0, 0, 0, 0, time.UTC), attributed)
	})

	t.Run("Success: Resolve strips the time of day from the input", func(t *testing.T) {
		tmpl := &domain.ScheduleTemplate{BedHour: 23, BedMinute: 30, WakeHour: 7, WakeMinute: 30}

		dep1, _ := tmpl.Resolve(time.Date(2026, 1, 14, 0, 0, 0, 0, time.UTC))
		dep2, _ := tmpl.Resolve(time.Date(2026, 1, 14, 23, 59, 59, 0, time.UTC))

		assert.Equal(t, dep1, dep2)
	})
}
