package domain

import (
	"context"
	"time"
)

// StreakDay is the lightweight projection the calendar widget renders:
// a day and whether it counts as completed. Always derived, never
// authoritative.
type StreakDay struct {
	Day         time.Time `json:"day"`
	IsCompleted bool      `json:"is_completed"`
}

// RecordFetcher loads the check-in record for a single calendar day.
// A (nil, nil) return means no record exists for that day.
type RecordFetcher func(ctx context.Context, day time.Time) (*DailyCheckIn, error)

// CurrentStreak counts consecutive successful days scanning backward
// from asOf. The scan stops at the first failed, unrecorded or missing
// day; that day is excluded from the count. There is no gap tolerance.
func CurrentStreak(ctx context.Context, asOf time.Time, fetch RecordFetcher) (int, error) {
	cursor := StartOfDay(asOf)
	streak := 0

	for {
		record, err := fetch(ctx, cursor)
		if err != nil {
			return 0, err
		}
		if record == nil || !record.Status.Success() {
			return streak, nil
		}

		streak++
		cursor = cursor.AddDate(0, 0, -1)
	}
}
