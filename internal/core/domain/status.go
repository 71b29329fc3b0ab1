package domain

import (
	"math"
	"time"
)

// DayStatus is the presentation-facing status of a single calendar day.
type DayStatus string

const (
	DayFuture        DayStatus = "future"
	DayNotReached    DayStatus = "not_reached"
	DayAvailable     DayStatus = "available"
	DayCompleted     DayStatus = "completed"
	DayLateCompleted DayStatus = "late_completed"
	DayFailed        DayStatus = "failed"
	DayNoRecord      DayStatus = "no_record"
)

const (
	// OnTimeTolerance bounds the on-time band around departure, inclusive
	// on both ends.
	OnTimeTolerance = 30 * time.Minute

	// LateLimit is how far past departure a check-in is still accepted.
	// The check-in window is [-OnTimeTolerance, +LateLimit].
	LateLimit = 120 * time.Minute
)

// ClassifyDelta maps the signed offset between a check-in instant and
// the departure instant onto an outcome. A tie at exactly 30 minutes
// goes to completed; the late band is (+30, +120] minutes.
func ClassifyDelta(diff time.Duration) CheckInStatus {
	switch {
	case diff >= -OnTimeTolerance && diff <= OnTimeTolerance:
		return StatusCompleted
	case diff > OnTimeTolerance && diff <= LateLimit:
		return StatusLateCompleted
	default:
		return StatusFailed
	}
}

// ClassifyDay yields the status of one calendar day given its record (if
// any), the day's resolved departure instant and the current time.
//
// A recorded terminal state always wins. Otherwise the day resolves
// from its record once its window has fully elapsed; while the window
// is still live the position of now decides between not-reached,
// available and failed. A window crossing midnight keeps its day
// available after the date changes: the day is only "past" for
// classification once its own window is over.
func ClassifyDay(day time.Time, record *DailyCheckIn, departure, now time.Time) DayStatus {
	dayStart := StartOfDay(day)
	today := StartOfDay(now)

	if dayStart.After(today) {
		return DayFuture
	}

	if record.Terminal() {
		return classifyRecord(record, departure)
	}

	minutesUntilDeparture := int(math.Floor(departure.Sub(now).Minutes()))

	if dayStart.Before(today) && minutesUntilDeparture < -120 {
		if record == nil {
			return DayNoRecord
		}
		return classifyRecord(record, departure)
	}

	switch {
	case minutesUntilDeparture > 30:
		return DayNotReached
	case minutesUntilDeparture >= -120:
		return DayAvailable
	default:
		return DayFailed
	}
}

// classifyRecord resolves a stored record. A success backed by a
// check-in instant is re-derived from that instant rather than trusting
// a possibly stale stored label.
func classifyRecord(record *DailyCheckIn, departure time.Time) DayStatus {
	switch record.Status {
	case StatusFailed:
		return DayFailed
	case StatusCompleted, StatusLateCompleted:
		if record.CheckedInAt != nil {
			return toDayStatus(ClassifyDelta(record.CheckedInAt.Sub(departure)))
		}
		return toDayStatus(record.Status)
	default:
		return DayNoRecord
	}
}

func toDayStatus(s CheckInStatus) DayStatus {
	switch s {
	case StatusCompleted:
		return DayCompleted
	case StatusLateCompleted:
		return DayLateCompleted
	case StatusFailed:
		return DayFailed
	default:
		return DayNoRecord
	}
}
