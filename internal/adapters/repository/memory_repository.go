package repository

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/sleeptrain/checkin-engine/internal/core/domain"
)

// In-memory implementations backing tests and local development. Day
// records are keyed by user plus day key, so the one-record-per-day
// upsert contract holds by construction.

type InMemoryCheckInRepository struct {
	store map[string]*domain.DailyCheckIn

	mu sync.RWMutex
}

func NewInMemoryCheckInRepository() *InMemoryCheckInRepository {
	return &InMemoryCheckInRepository{
		store: make(map[string]*domain.DailyCheckIn),
	}
}

func checkInKey(userID string, day time.Time) string {
	return userID + "/" + domain.DayKey(day)
}

func (r *InMemoryCheckInRepository) GetByDay(ctx context.Context, userID string, day time.Time) (*domain.DailyCheckIn, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	record, ok := r.store[checkInKey(userID, day)]
	if !ok {
		return nil, domain.ErrCheckInNotFound
	}
	return record, nil
}

func (r *InMemoryCheckInRepository) Upsert(ctx context.Context, record *domain.DailyCheckIn) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.store[checkInKey(record.UserID, record.Day)] = record
	return nil
}

func (r *InMemoryCheckInRepository) ListRange(ctx context.Context, userID string, from, to time.Time) ([]*domain.DailyCheckIn, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	fromDay := domain.StartOfDay(from)
	toDay := domain.StartOfDay(to)

	var records []*domain.DailyCheckIn
	for _, rec := range r.store {
		if rec.UserID != userID {
			continue
		}
		if rec.Day.Before(fromDay) || rec.Day.After(toDay) {
			continue
		}
		records = append(records, rec)
	}

	sort.Slice(records, func(i, j int) bool {
		return records[i].Day.Before(records[j].Day)
	})

	return records, nil
}

type InMemoryScheduleRepository struct {
	store map[string]*domain.ScheduleTemplate

	mu sync.RWMutex
}

func NewInMemoryScheduleRepository() *InMemoryScheduleRepository {
	return &InMemoryScheduleRepository{
		store: make(map[string]*domain.ScheduleTemplate),
	}
}

func (r *InMemoryScheduleRepository) GetByUserID(ctx context.Context, userID string) (*domain.ScheduleTemplate, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	tmpl, ok := r.store[userID]
	if !ok {
		return nil, domain.ErrScheduleNotFound
	}
	return tmpl, nil
}

func (r *InMemoryScheduleRepository) Upsert(ctx context.Context, tmpl *domain.ScheduleTemplate) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.store[tmpl.UserID] = tmpl
	return nil
}

func (r *InMemoryScheduleRepository) ListUserIDs(ctx context.Context) ([]string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	ids := make([]string, 0, len(r.store))
	for id := range r.store {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	return ids, nil
}

type InMemoryStatsRepository struct {
	store map[string]*domain.Stats

	mu sync.RWMutex
}

func NewInMemoryStatsRepository() *InMemoryStatsRepository {
	return &InMemoryStatsRepository{
		store: make(map[string]*domain.Stats),
	}
}

func (r *InMemoryStatsRepository) GetByUserID(ctx context.Context, userID string) (*domain.Stats, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	stats, ok := r.store[userID]
	if !ok {
		return nil, domain.ErrStatsNotFound
	}
	return stats, nil
}

func (r *InMemoryStatsRepository) Save(ctx context.Context, stats *domain.Stats) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.store[stats.UserID] = stats
	return nil
}

type InMemoryUserRepository struct {
	store map[string]*domain.User

	mu sync.RWMutex
}

func NewInMemoryUserRepository() *InMemoryUserRepository {
	return &InMemoryUserRepository{
		store: make(map[string]*domain.User),
	}
}

func (r *InMemoryUserRepository) Create(ctx context.Context, user *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, u := range r.store {
		if u.Email == user.Email {
			return domain.ErrEmailAlreadyExists
		}
	}
	r.store[user.ID] = user
	return nil
}

func (r *InMemoryUserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, u := range r.store {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *InMemoryUserRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	user, ok := r.store[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return user, nil
}
