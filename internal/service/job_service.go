package service

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"parkinglot/internal/logger"
	"parkinglot/internal/repository"
)

// JobService runs the periodic slot status sync: the informational status
// flag is brought in line with the reservation set, so dashboards show
// OCCUPIED while an active reservation covers the current instant. Conflict
// detection never reads this flag.
type JobService struct {
	jobs  repository.JobStore
	clock Clock
}

func NewJobService(jobs repository.JobStore) *JobService {
	return &JobService{jobs: jobs, clock: systemClock{}}
}

func (s *JobService) SyncSlotStatuses(ctx context.Context) error {
	now := s.clock.Now().UTC()

	occupied, err := s.jobs.MarkSlotsOccupied(ctx, now)
	if err != nil {
		return fmt.Errorf("status sync: marking occupied slots: %w", err)
	}
	vacated, err := s.jobs.MarkSlotsVacated(ctx, now)
	if err != nil {
		return fmt.Errorf("status sync: marking vacated slots: %w", err)
	}

	if occupied > 0 || vacated > 0 {
		logger.L().Info("slot statuses synced",
			zap.Int64("marked_occupied", occupied),
			zap.Int64("marked_available", vacated),
			zap.Time("as_of", now),
		)
	}
	return nil
}

// Run is the cron entrypoint; failures are logged, never fatal.
func (s *JobService) Run() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := s.SyncSlotStatuses(ctx); err != nil {
		logger.L().Error("slot status sync failed", zap.Error(err))
	}
}
