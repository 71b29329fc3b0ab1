package services

import (
	"context"
	"errors"
	"log"
	"sync"
	"time"

	"github.com/sleeptrain/checkin-engine/internal/core/domain"
)

// CheckInService owns every state transition for a user's day: the
// check-in itself, the wake-up confirmation, the emergency stop and the
// periodic failure sweep. All writes for the same user are serialized so
// a check-in and a sweep can never race on today's outcome; once a day
// carries a recorded state the first writer wins.
type CheckInService struct {
	checkIns  domain.CheckInRepository
	schedules domain.ScheduleRepository
	stats     domain.StatsRepository
	clock     domain.Clock

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func NewCheckInService(checkIns domain.CheckInRepository, schedules domain.ScheduleRepository, stats domain.StatsRepository, clock domain.Clock) *CheckInService {
	return &CheckInService{
		checkIns:  checkIns,
		schedules: schedules,
		stats:     stats,
		clock:     clock,
		locks:     make(map[string]*sync.Mutex),
	}
}

type CheckInResult struct {
	Accepted         bool                 `json:"accepted"`
	Status           domain.CheckInStatus `json:"status"`
	Streak           int                  `json:"streak"`
	AlreadyCheckedIn bool                 `json:"already_checked_in"`
}

func (s *CheckInService) userLock(userID string) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()

	l, ok := s.locks[userID]
	if !ok {
		l = &sync.Mutex{}
		s.locks[userID] = l
	}
	return l
}

// template loads the user's schedule, falling back to the default when
// none is configured so classification stays total.
func (s *CheckInService) template(ctx context.Context, userID string) *domain.ScheduleTemplate {
	tmpl, err := s.schedules.GetByUserID(ctx, userID)
	if err != nil {
		if !errors.Is(err, domain.ErrScheduleNotFound) {
			log.Printf("[SCHEDULE] Failed to load template for user %s, using default: %v", userID, err)
		}
		return domain.DefaultTemplate(userID)
	}
	return tmpl
}

func (s *CheckInService) fetcher(userID string) domain.RecordFetcher {
	return func(ctx context.Context, day time.Time) (*domain.DailyCheckIn, error) {
		record, err := s.checkIns.GetByDay(ctx, userID, day)
		if errors.Is(err, domain.ErrCheckInNotFound) {
			return nil, nil
		}
		return record, err
	}
}

func (s *CheckInService) getRecord(ctx context.Context, userID string, day time.Time) (*domain.DailyCheckIn, error) {
	record, err := s.checkIns.GetByDay(ctx, userID, day)
	if err != nil {
		if errors.Is(err, domain.ErrCheckInNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return record, nil
}

// recomputeStreak rescans the chain backward from asOf and overwrites
// the stats row. The best streak only ever grows.
func (s *CheckInService) recomputeStreak(ctx context.Context, userID string, asOf time.Time) (int, error) {
	streak, err := domain.CurrentStreak(ctx, asOf, s.fetcher(userID))
	if err != nil {
		return 0, err
	}

	stats, err := s.stats.GetByUserID(ctx, userID)
	if err != nil {
		if !errors.Is(err, domain.ErrStatsNotFound) {
			return 0, err
		}
		stats = &domain.Stats{UserID: userID}
	}

	stats.Streak = streak
	if streak > stats.BestStreak {
		stats.BestStreak = streak
	}
	stats.UpdatedAt = s.clock.Now()

	if err := s.stats.Save(ctx, stats); err != nil {
		return 0, err
	}

	return streak, nil
}

// CheckIn records a check-in attempt at the given instant. The instant
// is attributed to the day whose window it falls in, so a late check-in
// just past midnight still lands on the previous day. Attempts outside
// the allowed window around departure are rejected without creating a
// record; a second attempt on an already checked-in day is a no-op that
// reports the current streak, and a day already recorded as failed
// stays failed.
func (s *CheckInService) CheckIn(ctx context.Context, userID string, at time.Time) (*CheckInResult, error) {
	lock := s.userLock(userID)
	lock.Lock()
	defer lock.Unlock()

	day, departure := s.template(ctx, userID).AttributeDay(at)

	record, err := s.getRecord(ctx, userID, day)
	if err != nil {
		return nil, err
	}

	if record != nil && record.Status == domain.StatusFailed {
		streak, err := domain.CurrentStreak(ctx, day, s.fetcher(userID))
		if err != nil {
			return nil, err
		}
		return &CheckInResult{Accepted: false, Status: domain.StatusFailed, Streak: streak}, nil
	}

	if record != nil && record.CheckedInAt != nil {
		streak, err := domain.CurrentStreak(ctx, day, s.fetcher(userID))
		if err != nil {
			return nil, err
		}
		return &CheckInResult{
			Accepted:         true,
			Status:           record.Status,
			Streak:           streak,
			AlreadyCheckedIn: true,
		}, nil
	}

	diff := at.Sub(departure)
	if diff < -domain.OnTimeTolerance || diff > domain.LateLimit {
		return &CheckInResult{Accepted: false, Status: domain.StatusNone}, nil
	}

	if record == nil {
		record = domain.NewDailyCheckIn(userID, day)
	}
	checkedInAt := at
	record.Status = domain.ClassifyDelta(diff)
	record.CheckedInAt = &checkedInAt
	record.UpdatedAt = s.clock.Now()

	if err := s.checkIns.Upsert(ctx, record); err != nil {
		return nil, err
	}

	streak, err := s.recomputeStreak(ctx, userID, day)
	if err != nil {
		return nil, err
	}

	return &CheckInResult{Accepted: true, Status: record.Status, Streak: streak}, nil
}

// WakeUp ends the sleep session as a user-confirmed success: the day
// the instant belongs to is marked completed and the streak recomputed.
// An already failed day stays failed, and an existing check-in instant
// is preserved so later reclassification still derives from it.
func (s *CheckInService) WakeUp(ctx context.Context, userID string, at time.Time) (*CheckInResult, error) {
	lock := s.userLock(userID)
	lock.Lock()
	defer lock.Unlock()

	day, _ := s.template(ctx, userID).AttributeDay(at)

	record, err := s.getRecord(ctx, userID, day)
	if err != nil {
		return nil, err
	}

	if record != nil && record.Status == domain.StatusFailed {
		streak, err := domain.CurrentStreak(ctx, day, s.fetcher(userID))
		if err != nil {
			return nil, err
		}
		return &CheckInResult{Accepted: false, Status: domain.StatusFailed, Streak: streak}, nil
	}

	if record == nil {
		record = domain.NewDailyCheckIn(userID, day)
	}
	if !record.Status.Success() {
		record.Status = domain.StatusCompleted
		record.UpdatedAt = s.clock.Now()

		if err := s.checkIns.Upsert(ctx, record); err != nil {
			return nil, err
		}
	}

	streak, err := s.recomputeStreak(ctx, userID, day)
	if err != nil {
		return nil, err
	}

	return &CheckInResult{Accepted: true, Status: record.Status, Streak: streak}, nil
}

// ManualCheckOut is the emergency stop: the day the instant belongs to
// is recorded as failed, which breaks the chain at that day and zeroes
// the current streak. An abort after midnight still fails the night it
// interrupts.
func (s *CheckInService) ManualCheckOut(ctx context.Context, userID string, at time.Time) (*CheckInResult, error) {
	lock := s.userLock(userID)
	lock.Lock()
	defer lock.Unlock()

	day, _ := s.template(ctx, userID).AttributeDay(at)

	record, err := s.getRecord(ctx, userID, day)
	if err != nil {
		return nil, err
	}

	if record == nil {
		record = domain.NewDailyCheckIn(userID, day)
	}
	record.Status = domain.StatusFailed
	record.UpdatedAt = s.clock.Now()

	if err := s.checkIns.Upsert(ctx, record); err != nil {
		return nil, err
	}

	streak, err := s.recomputeStreak(ctx, userID, day)
	if err != nil {
		return nil, err
	}

	return &CheckInResult{Accepted: true, Status: domain.StatusFailed, Streak: streak}, nil
}

// Sweep force-fails the current session's day once its check-in window
// has fully elapsed with no recorded outcome, so an ignored window
// cannot stay available forever. Before today's window opens the
// current session is still the previous night, which is how a window
// that crossed midnight gets swept shortly after it closes. Recorded
// days are never overwritten. Returns whether the day was swept.
func (s *CheckInService) Sweep(ctx context.Context, userID string) (bool, error) {
	lock := s.userLock(userID)
	lock.Lock()
	defer lock.Unlock()

	now := s.clock.Now()
	tmpl := s.template(ctx, userID)

	day := domain.StartOfDay(now)
	departure, _ := tmpl.Resolve(day)
	if now.Before(departure.Add(-domain.OnTimeTolerance)) {
		day = day.AddDate(0, 0, -1)
		departure, _ = tmpl.Resolve(day)
	}

	if now.Sub(departure) <= domain.LateLimit {
		return false, nil
	}

	record, err := s.getRecord(ctx, userID, day)
	if err != nil {
		return false, err
	}
	if record.Recorded() {
		return false, nil
	}

	if record == nil {
		record = domain.NewDailyCheckIn(userID, day)
	}
	record.Status = domain.StatusFailed
	record.UpdatedAt = now

	if err := s.checkIns.Upsert(ctx, record); err != nil {
		return false, err
	}

	if _, err := s.recomputeStreak(ctx, userID, day); err != nil {
		return false, err
	}

	return true, nil
}

// Stats returns the derived aggregate, zeroed when nothing has been
// recorded yet.
func (s *CheckInService) Stats(ctx context.Context, userID string) (*domain.Stats, error) {
	stats, err := s.stats.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrStatsNotFound) {
			return &domain.Stats{UserID: userID}, nil
		}
		return nil, err
	}
	return stats, nil
}
