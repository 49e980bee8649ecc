package service

import (
	"context"

	"exam-byte/internal/domain"
	"exam-byte/internal/logger"

	"go.uber.org/zap"
)

// QuestionUpdate lists the fields to change; nil fields keep their value.
type QuestionUpdate struct {
	Type          *domain.QuestionType
	Difficulty    *domain.DifficultyLevel
	Subject       *string
	Question      *string
	Options       *[]string
	CorrectAnswer *string
	Explanation   *string
	Hint          *string
}

func (u QuestionUpdate) apply(q *domain.Question) {
	if u.Type != nil {
		q.Type = *u.Type
	}
	if u.Difficulty != nil {
		q.Difficulty = *u.Difficulty
	}
	if u.Subject != nil {
		q.Subject = *u.Subject
	}
	if u.Question != nil {
		q.Question = *u.Question
	}
	if u.Options != nil {
		q.Options = *u.Options
	}
	if u.CorrectAnswer != nil {
		q.CorrectAnswer = *u.CorrectAnswer
	}
	if u.Explanation != nil {
		q.Explanation = *u.Explanation
	}
	if u.Hint != nil {
		q.Hint = *u.Hint
	}
}

// QuestionService manages the caller's own question bank.
type QuestionService interface {
	List(ctx context.Context, userID string, filter domain.QuestionFilter) ([]*domain.Question, error)
	Update(ctx context.Context, userID, questionID string, update QuestionUpdate) (*domain.Question, error)
	Delete(ctx context.Context, userID, questionID string) error
}

type questionService struct {
	questionRepo domain.QuestionRepository
	stats        StatisticsService
}

// NewQuestionService creates a new QuestionService. stats may be nil.
func NewQuestionService(questionRepo domain.QuestionRepository, stats StatisticsService) QuestionService {
	return &questionService{questionRepo: questionRepo, stats: stats}
}

// List implements QuestionService
func (s *questionService) List(ctx context.Context, userID string, filter domain.QuestionFilter) ([]*domain.Question, error) {
	questions, err := s.questionRepo.ListQuestions(ctx, userID, filter)
	if err != nil {
		return nil, domain.NewInternalError("failed to list questions", err)
	}
	return questions, nil
}

// Update implements QuestionService. The merged question must still validate.
func (s *questionService) Update(ctx context.Context, userID, questionID string, update QuestionUpdate) (*domain.Question, error) {
	current, err := s.owned(ctx, userID, questionID)
	if err != nil {
		return nil, err
	}

	question := *current
	question.Options = append([]string(nil), current.Options...)
	update.apply(&question)
	if question.Type != domain.QuestionMCQ {
		question.Options = nil
	}
	if err := question.Validate(); err != nil {
		return nil, err
	}

	if err := s.questionRepo.UpdateQuestion(ctx, &question); err != nil {
		if domain.IsCode(err, domain.CodeNotFound) {
			return nil, err
		}
		return nil, domain.NewInternalError("failed to update question", err)
	}
	s.invalidate(ctx, userID)

	logger.Get().Info("Question updated",
		zap.String("question_id", questionID),
		zap.String("user_id", userID))
	return &question, nil
}

// Delete implements QuestionService. Sessions already holding the question
// keep their items; statistics stop counting it.
func (s *questionService) Delete(ctx context.Context, userID, questionID string) error {
	if _, err := s.owned(ctx, userID, questionID); err != nil {
		return err
	}
	if err := s.questionRepo.DeleteQuestion(ctx, questionID); err != nil {
		if domain.IsCode(err, domain.CodeNotFound) {
			return err
		}
		return domain.NewInternalError("failed to delete question", err)
	}
	s.invalidate(ctx, userID)

	logger.Get().Info("Question deleted",
		zap.String("question_id", questionID),
		zap.String("user_id", userID))
	return nil
}

func (s *questionService) owned(ctx context.Context, userID, questionID string) (*domain.Question, error) {
	questions, err := s.questionRepo.GetQuestionsByIDs(ctx, []string{questionID})
	if err != nil {
		return nil, domain.NewInternalError("failed to load question", err)
	}
	if len(questions) == 0 {
		return nil, domain.NewNotFoundError("question not found: " + questionID)
	}
	if questions[0].UserID != userID {
		return nil, domain.NewUnauthorizedError("question belongs to another user")
	}
	return questions[0], nil
}

func (s *questionService) invalidate(ctx context.Context, userID string) {
	if s.stats != nil {
		s.stats.Invalidate(ctx, userID)
	}
}
