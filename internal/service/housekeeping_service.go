package service

import (
	"context"
	"errors"
	"sync/atomic"
	"time"

	"exam-byte/internal/domain"
	"exam-byte/internal/logger"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const housekeepingConcurrency = 4

// HousekeepingService moves sessions nobody finished to the abandoned state.
type HousekeepingService interface {
	AbandonStale(ctx context.Context, olderThan time.Duration) (int, error)
}

type housekeepingService struct {
	sessionRepo domain.QuizSessionRepository
	txManager   domain.TransactionManager
	now         func() time.Time
}

// NewHousekeepingService creates a new HousekeepingService. Each session is
// abandoned in its own transaction.
func NewHousekeepingService(sessionRepo domain.QuizSessionRepository, txManager domain.TransactionManager) HousekeepingService {
	return &housekeepingService{sessionRepo: sessionRepo, txManager: txManager, now: time.Now}
}

// AbandonStale implements HousekeepingService. Sessions that changed while
// the sweep ran are skipped and picked up by the next run.
func (s *housekeepingService) AbandonStale(ctx context.Context, olderThan time.Duration) (int, error) {
	if olderThan <= 0 {
		return 0, domain.NewInvalidInputError("abandon cutoff must be positive")
	}
	now := s.now()
	cutoff := now.Add(-olderThan)

	stale, err := s.sessionRepo.FindStaleSessions(ctx, cutoff)
	if err != nil {
		return 0, domain.NewInternalError("failed to find stale sessions", err)
	}

	var abandoned atomic.Int64
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(housekeepingConcurrency)
	for _, session := range stale {
		g.Go(func() error {
			if err := session.Abandon(now); err != nil {
				return nil
			}
			err := s.txManager.WithTransaction(gctx, func(txCtx context.Context) error {
				return s.sessionRepo.UpdateSession(txCtx, session)
			})
			if err != nil {
				if errors.Is(err, domain.ErrConflict) {
					logger.Get().Info("Skipping session modified during sweep", zap.String("session_id", session.ID))
					return nil
				}
				return err
			}
			abandoned.Add(1)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return int(abandoned.Load()), domain.NewInternalError("failed to abandon stale sessions", err)
	}

	logger.Get().Info("Stale quiz sessions abandoned",
		zap.Time("cutoff", cutoff),
		zap.Int("found", len(stale)),
		zap.Int64("abandoned", abandoned.Load()))
	return int(abandoned.Load()), nil
}
