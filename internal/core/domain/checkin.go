package domain

import (
	"time"

	"github.com/google/uuid"
)

type CheckInStatus string

const (
	StatusNone          CheckInStatus = "none"
	StatusCompleted     CheckInStatus = "completed"
	StatusLateCompleted CheckInStatus = "late_completed"
	StatusFailed        CheckInStatus = "failed"
)

// Success reports whether the status counts toward the streak.
func (s CheckInStatus) Success() bool {
	return s == StatusCompleted || s == StatusLateCompleted
}

// DailyCheckIn is the single record for one user and calendar day, keyed
// by that day's midnight. Records are created lazily on the first
// check-in attempt or detected failure, upserted in place and never
// deleted.
type DailyCheckIn struct {
	ID          string        `json:"id" db:"id"`
	UserID      string        `json:"user_id" db:"user_id"`
	Day         time.Time     `json:"day" db:"day"`
	Status      CheckInStatus `json:"status" db:"status"`
	CheckedInAt *time.Time    `json:"checked_in_at,omitempty" db:"checked_in_at"`
	CreatedAt   time.Time     `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time     `json:"updated_at" db:"updated_at"`
}

func NewDailyCheckIn(userID string, day time.Time) *DailyCheckIn {
	now := time.Now().UTC()

	return &DailyCheckIn{
		ID:        uuid.NewString(),
		UserID:    userID,
		Day:       StartOfDay(day),
		Status:    StatusNone,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Recorded reports whether the day already carries an outcome. The sweep
// never overwrites a recorded day: the first writer wins.
func (c *DailyCheckIn) Recorded() bool {
	return c != nil && c.Status != StatusNone
}

// Terminal reports whether the stored state is authoritative for
// classifying today: a failure, or a success backed by a check-in
// instant.
func (c *DailyCheckIn) Terminal() bool {
	if c == nil {
		return false
	}
	if c.Status == StatusFailed {
		return true
	}
	return c.Status.Success() && c.CheckedInAt != nil
}

// StartOfDay truncates an instant to midnight of its calendar day.
func StartOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// DayKey is the canonical storage key for a calendar day.
func DayKey(t time.Time) string {
	return t.Format("2006-01-02")
}
