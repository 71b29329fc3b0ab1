package domain

import "time"

// DayRange produces one entry per calendar day from today-pastDays to
// today+futureDays inclusive, chronologically ascending with no gaps.
// The earliest date is snapped backward to the Monday starting its week
// so the calendar grid always begins on a week boundary.
func DayRange(today time.Time, pastDays, futureDays int) []time.Time {
	start := StartOfDay(today).AddDate(0, 0, -pastDays)
	start = start.AddDate(0, 0, -mondayOffset(start.Weekday()))
	end := StartOfDay(today).AddDate(0, 0, futureDays)

	var days []time.Time
	for cur := start; !cur.After(end); cur = cur.AddDate(0, 0, 1) {
		days = append(days, cur)
	}

	return days
}

// time.Weekday counts from Sunday; shift so Monday maps to 0.
func mondayOffset(d time.Weekday) int {
	return (int(d) + 6) % 7
}
