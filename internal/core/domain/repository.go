package domain

import (
	"context"
	"errors"
	"time"
)

var (
	ErrCheckInNotFound = errors.New("daily check-in not found")
	ErrStatsNotFound   = errors.New("stats not found")
)

type CheckInRepository interface {
	// GetByDay retrieves the single record for a user and calendar day.
	GetByDay(ctx context.Context, userID string, day time.Time) (*DailyCheckIn, error)

	// Upsert inserts the record or replaces the existing one for the same
	// user and day. At most one record exists per day; records are never
	// deleted.
	Upsert(ctx context.Context, record *DailyCheckIn) error

	// ListRange retrieves all records for the user between from and to
	// inclusive, ordered by day ascending.
	ListRange(ctx context.Context, userID string, from, to time.Time) ([]*DailyCheckIn, error)
}

type ScheduleRepository interface {
	// GetByUserID retrieves the user's configured schedule template.
	GetByUserID(ctx context.Context, userID string) (*ScheduleTemplate, error)

	// Upsert stores the template, replacing any previous one.
	Upsert(ctx context.Context, template *ScheduleTemplate) error

	// ListUserIDs returns every user with a stored schedule. The sweep
	// worker uses it to enumerate sweep targets.
	ListUserIDs(ctx context.Context) ([]string, error)
}

type StatsRepository interface {
	// GetByUserID retrieves the derived stats row for a user.
	GetByUserID(ctx context.Context, userID string) (*Stats, error)

	// Save overwrites the stats row.
	Save(ctx context.Context, stats *Stats) error
}

type UserRepository interface {
	Create(ctx context.Context, user *User) error
	GetByEmail(ctx context.Context, email string) (*User, error)
	GetByID(ctx context.Context, id string) (*User, error)
}
