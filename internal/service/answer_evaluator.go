package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"exam-byte/internal/domain"
	"exam-byte/internal/logger"

	"go.uber.org/zap"
)

// AnswerEvaluator decides whether a submitted answer is correct.
type AnswerEvaluator interface {
	// Evaluate never fails: grader problems degrade to exact matching.
	Evaluate(ctx context.Context, question *domain.Question, userAnswer string) domain.Evaluation
}

var (
	errNoGrader       = errors.New("no grader configured")
	errMalformedGrade = errors.New("grader returned a score outside [0,100]")
)

type answerEvaluator struct {
	grader  domain.Grader
	timeout time.Duration
}

// NewAnswerEvaluator creates an evaluator. A nil grader makes every open
// ended question use the fallback.
func NewAnswerEvaluator(grader domain.Grader, timeout time.Duration) AnswerEvaluator {
	return &answerEvaluator{grader: grader, timeout: timeout}
}

func normalizeAnswer(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

func exactMatch(userAnswer, correctAnswer string) bool {
	return normalizeAnswer(userAnswer) == normalizeAnswer(correctAnswer)
}

// Evaluate implements AnswerEvaluator
func (e *answerEvaluator) Evaluate(ctx context.Context, question *domain.Question, userAnswer string) domain.Evaluation {
	if !question.Type.IsOpenEnded() {
		return domain.Evaluation{IsCorrect: exactMatch(userAnswer, question.CorrectAnswer)}
	}

	if strings.TrimSpace(userAnswer) == "" {
		zero := 0
		return domain.Evaluation{Score: &zero, Feedback: domain.FeedbackNoAnswer}
	}

	result, err := e.grade(ctx, question, userAnswer)
	if err != nil {
		logger.Get().Warn("Answer grader failed, falling back to exact match",
			zap.String("question_id", question.ID),
			zap.Error(err))
		return fallbackEvaluation(userAnswer, question.CorrectAnswer)
	}

	score := result.Score
	return domain.Evaluation{
		IsCorrect: score >= domain.PassMark,
		Score:     &score,
		Feedback:  result.Feedback,
	}
}

func (e *answerEvaluator) grade(ctx context.Context, question *domain.Question, userAnswer string) (*domain.GradeResult, error) {
	if e.grader == nil {
		return nil, domain.NewExternalServiceError("answer grader", errNoGrader)
	}

	if e.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, e.timeout)
		defer cancel()
	}

	result, err := e.grader.Grade(ctx, domain.GradeRequest{
		Question:        question.Question,
		ReferenceAnswer: question.CorrectAnswer,
		UserAnswer:      userAnswer,
		Explanation:     question.Explanation,
	})
	if err != nil {
		return nil, domain.NewExternalServiceError("answer grader", err)
	}
	if result == nil || result.Score < 0 || result.Score > 100 {
		return nil, domain.NewExternalServiceError("answer grader", errMalformedGrade)
	}
	return result, nil
}

func fallbackEvaluation(userAnswer, correctAnswer string) domain.Evaluation {
	correct := exactMatch(userAnswer, correctAnswer)
	score := 0
	if correct {
		score = 100
	}
	return domain.Evaluation{
		IsCorrect: correct,
		Score:     &score,
		Feedback:  domain.FeedbackFallback,
		Fallback:  true,
	}
}
