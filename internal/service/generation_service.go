package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"exam-byte/internal/domain"
	"exam-byte/internal/logger"

	"go.uber.org/zap"
)

const (
	minGenerateCount = 1
	maxGenerateCount = 50
)

// GenerationResult is what a quota-gated generation produced.
type GenerationResult struct {
	Questions   []*domain.Question
	KeyConcepts []string
	Skipped     int
	Quota       *domain.QuotaState
}

// GenerationService gates the external question generator behind the
// user's quota.
type GenerationService interface {
	Generate(ctx context.Context, userID string, req domain.GenerationRequest) (*GenerationResult, error)
}

type generationService struct {
	quota        QuotaService
	generator    domain.QuestionGenerator
	questionRepo domain.QuestionRepository
	txManager    domain.TransactionManager
	timeout      time.Duration
}

// NewGenerationService creates a new GenerationService
func NewGenerationService(
	quota QuotaService,
	generator domain.QuestionGenerator,
	questionRepo domain.QuestionRepository,
	txManager domain.TransactionManager,
	timeout time.Duration,
) GenerationService {
	return &generationService{
		quota:        quota,
		generator:    generator,
		questionRepo: questionRepo,
		txManager:    txManager,
		timeout:      timeout,
	}
}

// Generate implements GenerationService. The generation is counted as soon
// as the quota allows it, even if the generator then fails.
func (s *generationService) Generate(ctx context.Context, userID string, req domain.GenerationRequest) (*GenerationResult, error) {
	if strings.TrimSpace(req.SourceText) == "" {
		return nil, domain.NewInvalidInputError("source text is required")
	}
	if req.Count < minGenerateCount || req.Count > maxGenerateCount {
		return nil, domain.NewInvalidInputError(fmt.Sprintf("count must be between %d and %d", minGenerateCount, maxGenerateCount))
	}

	quota, err := s.quota.ReserveGeneration(ctx, userID)
	if err != nil {
		return nil, err
	}

	genCtx := ctx
	if s.timeout > 0 {
		var cancel context.CancelFunc
		genCtx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	generated, err := s.generator.Generate(genCtx, req)
	if err != nil {
		logger.Get().Error("Question generation failed",
			zap.String("user_id", userID),
			zap.Error(err))
		return nil, domain.NewExternalServiceError("question generator", err)
	}

	result := &GenerationResult{KeyConcepts: generated.KeyConcepts, Quota: quota}
	for _, q := range generated.Questions {
		if q == nil {
			continue
		}
		q.UserID = userID
		if q.Subject == "" {
			q.Subject = req.Subject
		}
		if err := q.Validate(); err != nil {
			result.Skipped++
			continue
		}
		result.Questions = append(result.Questions, q)
	}
	if len(result.Questions) == 0 {
		return nil, domain.NewExternalServiceError("question generator", fmt.Errorf("no usable questions in %d generated", len(generated.Questions)))
	}

	err = s.txManager.WithTransaction(ctx, func(txCtx context.Context) error {
		for _, q := range result.Questions {
			if err := s.questionRepo.SaveQuestion(txCtx, q); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, domain.NewInternalError("failed to save generated questions", err)
	}

	logger.Get().Info("Generated questions saved",
		zap.String("user_id", userID),
		zap.Int("saved", len(result.Questions)),
		zap.Int("skipped", result.Skipped))
	return result, nil
}
