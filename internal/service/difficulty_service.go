package service

import (
	"context"
	"errors"
	"time"

	"exam-byte/internal/domain"
	"exam-byte/internal/logger"

	"go.uber.org/zap"
)

// DifficultyService keeps the adaptive difficulty of students in step with
// their graded answers.
type DifficultyService interface {
	// Apply records one graded outcome. It never fails the caller: the
	// persistence result comes back as a SideEffect.
	Apply(ctx context.Context, user *domain.User, isCorrect bool) domain.SideEffect
	Get(ctx context.Context, userID string) (*domain.DifficultyState, error)
}

type difficultyService struct {
	userRepo domain.UserRepository
	now      func() time.Time
}

// NewDifficultyService creates a new DifficultyService
func NewDifficultyService(userRepo domain.UserRepository) DifficultyService {
	return &difficultyService{userRepo: userRepo, now: time.Now}
}

// Apply implements DifficultyService
func (s *difficultyService) Apply(ctx context.Context, user *domain.User, isCorrect bool) domain.SideEffect {
	if user == nil || !user.IsStudent() {
		return domain.SideEffect{}
	}

	current := user
	for attempt := 1; attempt <= maxCASAttempts; attempt++ {
		state := domain.NewDifficultyState(s.now())
		if current.Difficulty != nil {
			state = *current.Difficulty
		}
		next := domain.RecordOutcome(state, isCorrect, s.now())

		err := s.userRepo.UpdateDifficulty(ctx, user.ID, next)
		if err == nil {
			next.Version++
			user.Difficulty = &next
			return domain.SideEffect{Applied: true}
		}
		if !errors.Is(err, domain.ErrConflict) {
			logger.Get().Warn("Failed to persist adaptive difficulty",
				zap.String("user_id", user.ID),
				zap.Error(err))
			return domain.SideEffect{Err: err}
		}

		reloaded, err := s.userRepo.GetUserByID(ctx, user.ID)
		if err != nil || reloaded == nil {
			if err == nil {
				err = domain.NewNotFoundError("user not found: " + user.ID)
			}
			logger.Get().Warn("Failed to reload user after difficulty conflict",
				zap.String("user_id", user.ID),
				zap.Error(err))
			return domain.SideEffect{Err: err}
		}
		current = reloaded
	}

	logger.Get().Warn("Gave up persisting adaptive difficulty after repeated conflicts",
		zap.String("user_id", user.ID))
	return domain.SideEffect{Err: domain.ErrConflict}
}

// Get implements DifficultyService
func (s *difficultyService) Get(ctx context.Context, userID string) (*domain.DifficultyState, error) {
	user, err := s.userRepo.GetUserByID(ctx, userID)
	if err != nil {
		return nil, domain.NewInternalError("failed to load user", err)
	}
	if user == nil {
		return nil, domain.NewNotFoundError("user not found: " + userID)
	}
	if !user.IsStudent() {
		return nil, domain.NewInvalidInputError("adaptive difficulty is only tracked for students")
	}
	if user.Difficulty == nil {
		state := domain.NewDifficultyState(s.now())
		return &state, nil
	}
	return user.Difficulty, nil
}
