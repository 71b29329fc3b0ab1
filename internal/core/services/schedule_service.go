package services

import (
	"context"
	"errors"

	"github.com/sleeptrain/checkin-engine/internal/core/domain"
)

type ScheduleService struct {
	repo  domain.ScheduleRepository
	clock domain.Clock
}

func NewScheduleService(repo domain.ScheduleRepository, clock domain.Clock) *ScheduleService {
	return &ScheduleService{
		repo:  repo,
		clock: clock,
	}
}

type UpdateScheduleInput struct {
	UserID     string
	BedHour    int
	BedMinute  int
	WakeHour   int
	WakeMinute int
}

// Get returns the stored template, or the default when the user has not
// configured one yet.
func (s *ScheduleService) Get(ctx context.Context, userID string) (*domain.ScheduleTemplate, error) {
	tmpl, err := s.repo.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrScheduleNotFound) {
			return domain.DefaultTemplate(userID), nil
		}
		return nil, err
	}
	return tmpl, nil
}

// Update validates and stores the template. This is the only mutation
// path for a user's schedule.
func (s *ScheduleService) Update(ctx context.Context, input UpdateScheduleInput) (*domain.ScheduleTemplate, error) {
	tmpl, err := domain.NewScheduleTemplate(input.UserID, input.BedHour, input.BedMinute, input.WakeHour, input.WakeMinute)
	if err != nil {
		return nil, err
	}
	tmpl.UpdatedAt = s.clock.Now()

	if err := s.repo.Upsert(ctx, tmpl); err != nil {
		return nil, err
	}

	return tmpl, nil
}
