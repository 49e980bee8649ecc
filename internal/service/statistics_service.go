package service

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"exam-byte/internal/cache"
	"exam-byte/internal/domain"
	"exam-byte/internal/logger"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

// StatisticsService serves the aggregate performance view of a user.
type StatisticsService interface {
	GetStatistics(ctx context.Context, userID string) (*domain.Statistics, error)
	// Invalidate drops the cached view; failures are only logged.
	Invalidate(ctx context.Context, userID string)
}

type statisticsService struct {
	sessionRepo  domain.QuizSessionRepository
	questionRepo domain.QuestionRepository
	cache        domain.Cache
	ttl          time.Duration
	group        singleflight.Group
}

// NewStatisticsService creates a new StatisticsService. A nil cache disables
// memoization.
func NewStatisticsService(sessionRepo domain.QuizSessionRepository, questionRepo domain.QuestionRepository, c domain.Cache, ttl time.Duration) StatisticsService {
	return &statisticsService{
		sessionRepo:  sessionRepo,
		questionRepo: questionRepo,
		cache:        c,
		ttl:          ttl,
	}
}

// GetStatistics implements StatisticsService
func (s *statisticsService) GetStatistics(ctx context.Context, userID string) (*domain.Statistics, error) {
	key := cache.UserStatsKey(userID)

	if s.cache != nil {
		cached, err := s.cache.Get(ctx, key)
		switch {
		case err == nil:
			var stats domain.Statistics
			jsonErr := json.Unmarshal([]byte(cached), &stats)
			if jsonErr == nil {
				return &stats, nil
			}
			logger.Get().Warn("Discarding unreadable statistics cache entry",
				zap.String("key", key),
				zap.Error(jsonErr))
		case errors.Is(err, domain.ErrCacheMiss):
		default:
			logger.Get().Warn("Statistics cache read failed", zap.String("key", key), zap.Error(err))
		}
	}

	v, err, _ := s.group.Do(userID, func() (interface{}, error) {
		return s.compute(ctx, userID)
	})
	if err != nil {
		return nil, err
	}
	stats := v.(*domain.Statistics)

	if s.cache != nil {
		if payload, err := json.Marshal(stats); err == nil {
			if err := s.cache.Set(ctx, key, string(payload), s.ttl); err != nil {
				logger.Get().Warn("Statistics cache write failed", zap.String("key", key), zap.Error(err))
			}
		}
	}
	return stats, nil
}

func (s *statisticsService) compute(ctx context.Context, userID string) (*domain.Statistics, error) {
	sessions, err := s.sessionRepo.ListSessionsByUser(ctx, userID, domain.SessionCompleted)
	if err != nil {
		return nil, domain.NewInternalError("failed to load completed sessions", err)
	}

	seen := make(map[string]bool)
	var ids []string
	for _, session := range sessions {
		for _, item := range session.Items {
			if !seen[item.QuestionID] {
				seen[item.QuestionID] = true
				ids = append(ids, item.QuestionID)
			}
		}
	}

	questionsByID := make(map[string]*domain.Question, len(ids))
	if len(ids) > 0 {
		questions, err := s.questionRepo.GetQuestionsByIDs(ctx, ids)
		if err != nil {
			return nil, domain.NewInternalError("failed to load questions", err)
		}
		for _, q := range questions {
			questionsByID[q.ID] = q
		}
	}

	stats := domain.Aggregate(sessions, questionsByID)
	return &stats, nil
}

// Invalidate implements StatisticsService
func (s *statisticsService) Invalidate(ctx context.Context, userID string) {
	if s.cache == nil {
		return
	}
	key := cache.UserStatsKey(userID)
	if err := s.cache.Delete(ctx, key); err != nil {
		logger.Get().Warn("Failed to invalidate statistics cache", zap.String("key", key), zap.Error(err))
	}
}
