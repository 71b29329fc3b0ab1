package services

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/sleeptrain/checkin-engine/internal/core/domain"
)

// CalendarService builds the classified day range the calendar UI and
// the live-activity widget render.
type CalendarService struct {
	checkIns  domain.CheckInRepository
	schedules domain.ScheduleRepository
	clock     domain.Clock
}

func NewCalendarService(checkIns domain.CheckInRepository, schedules domain.ScheduleRepository, clock domain.Clock) *CalendarService {
	return &CalendarService{
		checkIns:  checkIns,
		schedules: schedules,
		clock:     clock,
	}
}

type CalendarDay struct {
	Day    time.Time        `json:"day"`
	Status domain.DayStatus `json:"status"`
}

// Range classifies every day of the display window: pastDays back from
// today (snapped to the week's Monday) through futureDays ahead.
func (s *CalendarService) Range(ctx context.Context, userID string, pastDays, futureDays int) ([]CalendarDay, error) {
	now := s.clock.Now()
	days := domain.DayRange(now, pastDays, futureDays)

	records, err := s.checkIns.ListRange(ctx, userID, days[0], days[len(days)-1])
	if err != nil {
		return nil, err
	}

	byDay := make(map[string]*domain.DailyCheckIn, len(records))
	for _, r := range records {
		byDay[domain.DayKey(r.Day)] = r
	}

	tmpl, err := s.schedules.GetByUserID(ctx, userID)
	if err != nil {
		if !errors.Is(err, domain.ErrScheduleNotFound) {
			log.Printf("[SCHEDULE] Failed to load template for user %s, using default: %v", userID, err)
		}
		tmpl = domain.DefaultTemplate(userID)
	}

	out := make([]CalendarDay, 0, len(days))
	for _, day := range days {
		departure, _ := tmpl.Resolve(day)
		status := domain.ClassifyDay(day, byDay[domain.DayKey(day)], departure, now)
		out = append(out, CalendarDay{Day: day, Status: status})
	}

	return out, nil
}

// StreakDays projects the range onto the widget's completed/not-completed
// view.
func (s *CalendarService) StreakDays(ctx context.Context, userID string, pastDays, futureDays int) ([]domain.StreakDay, error) {
	days, err := s.Range(ctx, userID, pastDays, futureDays)
	if err != nil {
		return nil, err
	}

	out := make([]domain.StreakDay, 0, len(days))
	for _, d := range days {
		out = append(out, domain.StreakDay{
			Day:         d.Day,
			IsCompleted: d.Status == domain.DayCompleted || d.Status == domain.DayLateCompleted,
		})
	}

	return out, nil
}
