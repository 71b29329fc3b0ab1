package domain

import (
	"errors"
	"time"
)

var (
	ErrInvalidScheduleTime = errors.New("invalid schedule time (hour must be 0-23, minute 0-59)")
	ErrScheduleNotFound    = errors.New("schedule not found")
)

const (
	DefaultBedHour    = 23
	DefaultBedMinute  = 30
	DefaultWakeHour   = 7
	DefaultWakeMinute = 30
)

// ScheduleTemplate holds the user's configured bed and wake times as
// time-of-day only. Resolving it against a calendar day yields the
// concrete departure (bedtime) and arrival (waketime) instants for that
// day. The template is mutated only through explicit settings updates.
type ScheduleTemplate struct {
	UserID     string    `json:"user_id" db:"user_id"`
	BedHour    int       `json:"bed_hour" db:"bed_hour"`
	BedMinute  int       `json:"bed_minute" db:"bed_minute"`
	WakeHour   int       `json:"wake_hour" db:"wake_hour"`
	WakeMinute int       `json:"wake_minute" db:"wake_minute"`
	UpdatedAt  time.Time `json:"updated_at" db:"updated_at"`
}

func NewScheduleTemplate(userID string, bedHour, bedMinute, wakeHour, wakeMinute int) (*ScheduleTemplate, error) {
	if !validClockTime(bedHour, bedMinute) || !validClockTime(wakeHour, wakeMinute) {
		return nil, ErrInvalidScheduleTime
	}

	return &ScheduleTemplate{
		UserID:     userID,
		BedHour:    bedHour,
		BedMinute:  bedMinute,
		WakeHour:   wakeHour,
		WakeMinute: wakeMinute,
		UpdatedAt:  time.Now().UTC(),
	}, nil
}

// DefaultTemplate is the conservative fallback applied when a user has
// no stored schedule, so classification always has a departure to work
// against.
func DefaultTemplate(userID string) *ScheduleTemplate {
	return &ScheduleTemplate{
		UserID:     userID,
		BedHour:    DefaultBedHour,
		BedMinute:  DefaultBedMinute,
		WakeHour:   DefaultWakeHour,
		WakeMinute: DefaultWakeMinute,
	}
}

func validClockTime(hour, minute int) bool {
	return hour >= 0 && hour <= 23 && minute >= 0 && minute <= 59
}

// AttributeDay maps an instant to the calendar day whose check-in
// window it belongs to, and that day's departure. A late bedtime pushes
// the tail of the window past midnight, so an instant shortly after
// midnight still belongs to the previous day's night as long as it sits
// inside that day's window.
func (t *ScheduleTemplate) AttributeDay(at time.Time) (day, departure time.Time) {
	day = StartOfDay(at)
	departure, _ = t.Resolve(day)

	if at.Before(departure.Add(-OnTimeTolerance)) {
		prev := day.AddDate(0, 0, -1)
		prevDeparture, _ := t.Resolve(prev)
		if !at.Before(prevDeparture.Add(-OnTimeTolerance)) && !at.After(prevDeparture.Add(LateLimit)) {
			return prev, prevDeparture
		}
	}

	return day, departure
}

// Resolve composes the departure and arrival instants for the given
// calendar day, seconds zeroed. When the wake time is not later than the
// bed time the arrival rolls over to the next day, so arrival is always
// strictly after departure.
func (t *ScheduleTemplate) Resolve(day time.Time) (departure, arrival time.Time) {
	y, m, d := day.Date()
	loc := day.Location()

	departure = time.Date(y, m, d, t.BedHour, t.BedMinute, 0, 0, loc)
	arrival = time.Date(y, m, d, t.WakeHour, t.WakeMinute, 0, 0, loc)

	if !arrival.After(departure) {
		arrival = arrival.AddDate(0, 0, 1)
	}

	return departure, arrival
}
