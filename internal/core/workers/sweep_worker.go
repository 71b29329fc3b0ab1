package workers

import (
	"context"
	"log"
	"time"
)

// CheckInSweeper is the slice of the check-in service the worker drives.
type CheckInSweeper interface {
	Sweep(ctx context.Context, userID string) (bool, error)
}

// UserSource enumerates the users whose current day may need
// force-failing.
type UserSource interface {
	ListUserIDs(ctx context.Context) ([]string, error)
}

type SweepJob struct {
	UserID string
}

// SweepWorker periodically re-evaluates every user's current day and
// force-fails it once the check-in window has elapsed with nothing
// recorded. The ticker is advisory polling only: the authoritative state
// is always recomputed inside the service from persisted records plus
// the clock.
type SweepWorker struct {
	sweeper  CheckInSweeper
	users    UserSource
	interval time.Duration
	jobs     chan SweepJob
}

func NewSweepWorker(sweeper CheckInSweeper, users UserSource, interval time.Duration) *SweepWorker {
	return &SweepWorker{
		sweeper:  sweeper,
		users:    users,
		interval: interval,
		jobs:     make(chan SweepJob, 100),
	}
}

func (w *SweepWorker) Start(ctx context.Context) {
	go func() {
		log.Println("Sweep Worker started in background...")
		ticker := time.NewTicker(w.interval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				w.enqueueAll(ctx)
			case job := <-w.jobs:
				w.processJob(ctx, job)
			case <-ctx.Done():
				log.Println("Sweep Worker shutting down...")
				return
			}
		}
	}()
}

func (w *SweepWorker) Enqueue(userID string) {
	select {
	case w.jobs <- SweepJob{UserID: userID}:
	default:
		log.Printf("Sweep Worker queue full! Dropping job for user %s", userID)
	}
}

func (w *SweepWorker) enqueueAll(ctx context.Context) {
	ids, err := w.users.ListUserIDs(ctx)
	if err != nil {
		log.Printf("Worker Error listing sweep targets: %v", err)
		return
	}
	for _, id := range ids {
		w.Enqueue(id)
	}
}

func (w *SweepWorker) processJob(ctx context.Context, job SweepJob) {
	swept, err := w.sweeper.Sweep(ctx, job.UserID)
	if err != nil {
		log.Printf("Worker Error sweeping user %s: %v", job.UserID, err)
		return
	}
	if swept {
		log.Printf("Sweep force-failed the current day for user %s", job.UserID)
	}
}
