package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"exam-byte/internal/domain"
	"exam-byte/internal/logger"

	"go.uber.org/zap"
)

// maxCASAttempts bounds the read-modify-write retries on a version conflict.
const maxCASAttempts = 3

// QuotaService is the persistent side of the quota tracker. Every method
// applies the day rollover before looking at the counters.
type QuotaService interface {
	GetQuota(ctx context.Context, userID string) (*domain.QuotaState, error)
	// ReserveUpload counts len(sizes) uploads and their bytes in one update,
	// or nothing at all.
	ReserveUpload(ctx context.Context, userID string, sizes ...int64) (*domain.QuotaState, error)
	ReserveGeneration(ctx context.Context, userID string) (*domain.QuotaState, error)
	ReleaseStorage(ctx context.Context, userID string, bytes int64) (*domain.QuotaState, error)
}

type quotaService struct {
	userRepo domain.UserRepository
	now      func() time.Time
}

// NewQuotaService creates a new QuotaService
func NewQuotaService(userRepo domain.UserRepository) QuotaService {
	return &quotaService{userRepo: userRepo, now: time.Now}
}

func (s *quotaService) loadUser(ctx context.Context, userID string) (*domain.User, error) {
	user, err := s.userRepo.GetUserByID(ctx, userID)
	if err != nil {
		return nil, domain.NewInternalError("failed to load user", err)
	}
	if user == nil {
		return nil, domain.NewNotFoundError("user not found: " + userID)
	}
	return user, nil
}

// GetQuota implements QuotaService
func (s *quotaService) GetQuota(ctx context.Context, userID string) (*domain.QuotaState, error) {
	user, err := s.loadUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	fresh := domain.EnsureFreshDay(user.Quota, s.now())
	if fresh.LastResetDate.Equal(user.Quota.LastResetDate) {
		return &fresh, nil
	}

	// A lost race here means another request already persisted a reset.
	if err := s.userRepo.UpdateQuota(ctx, userID, fresh); err != nil {
		if errors.Is(err, domain.ErrConflict) {
			user, err = s.loadUser(ctx, userID)
			if err != nil {
				return nil, err
			}
			fresh = domain.EnsureFreshDay(user.Quota, s.now())
			return &fresh, nil
		}
		return nil, domain.NewInternalError("failed to persist quota reset", err)
	}
	fresh.Version++
	return &fresh, nil
}

// ReserveUpload implements QuotaService
func (s *quotaService) ReserveUpload(ctx context.Context, userID string, sizes ...int64) (*domain.QuotaState, error) {
	if len(sizes) == 0 {
		return nil, domain.NewInvalidInputError("at least one upload is required")
	}
	var total int64
	for _, size := range sizes {
		if size < 0 {
			return nil, domain.NewInvalidInputError("upload size must not be negative")
		}
		total += size
	}

	return s.update(ctx, userID, func(q domain.QuotaState) (domain.QuotaState, error) {
		if !domain.CanUploadN(q, len(sizes)) {
			return q, domain.NewQuotaExceededError(fmt.Sprintf(
				"daily upload limit reached: %d remaining, %d requested", domain.RemainingUploads(q), len(sizes)))
		}
		if !domain.CanStore(q, total) {
			return q, domain.NewQuotaExceededError("storage limit exceeded")
		}
		for _, size := range sizes {
			q = domain.RecordUpload(q, size)
		}
		return q, nil
	})
}

// ReserveGeneration implements QuotaService
func (s *quotaService) ReserveGeneration(ctx context.Context, userID string) (*domain.QuotaState, error) {
	return s.update(ctx, userID, func(q domain.QuotaState) (domain.QuotaState, error) {
		if !domain.CanGenerate(q) {
			return q, domain.NewQuotaExceededError("daily generation limit reached")
		}
		return domain.RecordGeneration(q), nil
	})
}

// ReleaseStorage implements QuotaService
func (s *quotaService) ReleaseStorage(ctx context.Context, userID string, bytes int64) (*domain.QuotaState, error) {
	if bytes < 0 {
		return nil, domain.NewInvalidInputError("released bytes must not be negative")
	}
	return s.update(ctx, userID, func(q domain.QuotaState) (domain.QuotaState, error) {
		return domain.ReleaseStorage(q, bytes), nil
	})
}

// update runs a version-checked read-modify-write of the user's quota.
func (s *quotaService) update(ctx context.Context, userID string, mutate func(domain.QuotaState) (domain.QuotaState, error)) (*domain.QuotaState, error) {
	for attempt := 1; attempt <= maxCASAttempts; attempt++ {
		user, err := s.loadUser(ctx, userID)
		if err != nil {
			return nil, err
		}

		next, err := mutate(domain.EnsureFreshDay(user.Quota, s.now()))
		if err != nil {
			return nil, err
		}

		err = s.userRepo.UpdateQuota(ctx, userID, next)
		if err == nil {
			next.Version++
			return &next, nil
		}
		if !errors.Is(err, domain.ErrConflict) {
			return nil, domain.NewInternalError("failed to update quota", err)
		}
		logger.Get().Debug("Quota update conflict, retrying",
			zap.String("user_id", userID),
			zap.Int("attempt", attempt))
	}
	return nil, domain.NewConflictError("quota was modified concurrently", domain.ErrConflict)
}
