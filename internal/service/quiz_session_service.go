package service

import (
	"context"
	"errors"
	"time"

	"exam-byte/internal/cache"
	"exam-byte/internal/config"
	"exam-byte/internal/domain"
	"exam-byte/internal/logger"
	"exam-byte/internal/util"

	"go.uber.org/zap"
)

const (
	lockAttempts   = 5
	lockRetryDelay = 100 * time.Millisecond
)

// CreateQuizInput lists the questions of an explicit quiz in order.
type CreateQuizInput struct {
	QuestionIDs []string
	Options     domain.SessionOptions
}

// RandomQuizInput samples Count questions from the user's own pool.
type RandomQuizInput struct {
	Count   int
	Filter  domain.QuestionFilter
	Options domain.SessionOptions
}

type SubmitAnswerInput struct {
	Index            int
	Answer           string
	TimeSpentSeconds int
}

// SubmitAnswerResult is the immediate feedback for one answer.
type SubmitAnswerResult struct {
	Session       *domain.QuizSession
	Index         int
	Evaluation    domain.Evaluation
	CorrectAnswer string
	Explanation   string
	Difficulty    domain.SideEffect
}

// QuizSessionService defines the interface for the quiz session lifecycle
type QuizSessionService interface {
	Create(ctx context.Context, userID string, in CreateQuizInput) (*domain.QuizSession, error)
	CreateRandom(ctx context.Context, userID string, in RandomQuizInput) (*domain.QuizSession, error)
	Get(ctx context.Context, userID, sessionID string) (*domain.QuizSession, error)
	List(ctx context.Context, userID string, status domain.SessionStatus) ([]*domain.QuizSession, error)
	SubmitAnswer(ctx context.Context, userID, sessionID string, in SubmitAnswerInput) (*SubmitAnswerResult, error)
	Complete(ctx context.Context, userID, sessionID string) (*domain.QuizSession, error)
	Delete(ctx context.Context, userID, sessionID string) error
}

type quizSessionService struct {
	sessionRepo  domain.QuizSessionRepository
	questionRepo domain.QuestionRepository
	userRepo     domain.UserRepository
	txManager    domain.TransactionManager
	evaluator    AnswerEvaluator
	difficulty   DifficultyService
	stats        StatisticsService
	locker       domain.Locker
	rng          domain.RandSource
	lockTTL      time.Duration
	now          func() time.Time
}

// NewQuizSessionService creates a new QuizSessionService. locker and stats
// may be nil; sessions are then guarded by their version column alone.
// Every session write runs inside txManager.
func NewQuizSessionService(
	sessionRepo domain.QuizSessionRepository,
	questionRepo domain.QuestionRepository,
	userRepo domain.UserRepository,
	txManager domain.TransactionManager,
	evaluator AnswerEvaluator,
	difficulty DifficultyService,
	stats StatisticsService,
	locker domain.Locker,
	rng domain.RandSource,
	cfg config.QuizConfig,
) QuizSessionService {
	if rng == nil {
		rng = util.NewLockedRand(0)
	}
	return &quizSessionService{
		sessionRepo:  sessionRepo,
		questionRepo: questionRepo,
		userRepo:     userRepo,
		txManager:    txManager,
		evaluator:    evaluator,
		difficulty:   difficulty,
		stats:        stats,
		locker:       locker,
		rng:          rng,
		lockTTL:      cfg.LockTTL,
		now:          time.Now,
	}
}

// Create implements QuizSessionService
func (s *quizSessionService) Create(ctx context.Context, userID string, in CreateQuizInput) (*domain.QuizSession, error) {
	if len(in.QuestionIDs) == 0 {
		return nil, domain.NewInvalidInputError("at least one question is required")
	}

	seen := make(map[string]bool, len(in.QuestionIDs))
	for _, id := range in.QuestionIDs {
		if id == "" {
			return nil, domain.NewInvalidInputError("question id must not be empty")
		}
		if seen[id] {
			return nil, domain.NewInvalidInputError("duplicate question id: " + id)
		}
		seen[id] = true
	}

	questions, err := s.questionRepo.GetQuestionsByIDs(ctx, in.QuestionIDs)
	if err != nil {
		return nil, domain.NewInternalError("failed to load questions", err)
	}
	found := make(map[string]*domain.Question, len(questions))
	for _, q := range questions {
		found[q.ID] = q
	}
	for _, id := range in.QuestionIDs {
		q, ok := found[id]
		if !ok || q.UserID != userID {
			return nil, domain.NewInvalidInputError("question not found or not owned by user: " + id)
		}
	}

	return s.start(ctx, userID, in.QuestionIDs, in.Options)
}

// CreateRandom implements QuizSessionService
func (s *quizSessionService) CreateRandom(ctx context.Context, userID string, in RandomQuizInput) (*domain.QuizSession, error) {
	if in.Count <= 0 {
		return nil, domain.NewInvalidInputError("count must be positive")
	}
	pool, err := s.questionRepo.GetQuestionsByOwner(ctx, userID)
	if err != nil {
		return nil, domain.NewInternalError("failed to load question pool", err)
	}

	selected, err := domain.SelectRandom(pool, in.Count, in.Filter, s.rng)
	if err != nil {
		return nil, err
	}

	ids := make([]string, len(selected))
	for i, q := range selected {
		ids[i] = q.ID
	}

	opts := in.Options
	if opts.Difficulty == "" && in.Filter.Difficulty != "" {
		opts.Difficulty = string(in.Filter.Difficulty)
	}
	if opts.Subject == "" {
		opts.Subject = in.Filter.Subject
	}
	return s.start(ctx, userID, ids, opts)
}

func (s *quizSessionService) start(ctx context.Context, userID string, questionIDs []string, opts domain.SessionOptions) (*domain.QuizSession, error) {
	session, err := domain.NewQuizSession(util.NewULID(), userID, questionIDs, opts, s.rng, s.now())
	if err != nil {
		return nil, err
	}
	err = inTransaction(ctx, s.txManager, "failed to create quiz session", func(txCtx context.Context) error {
		return s.sessionRepo.CreateSession(txCtx, session)
	})
	if err != nil {
		return nil, err
	}

	logger.Get().Info("Quiz session created",
		zap.String("session_id", session.ID),
		zap.String("user_id", userID),
		zap.Int("total_questions", session.TotalQuestions))
	return session, nil
}

// Get implements QuizSessionService
func (s *quizSessionService) Get(ctx context.Context, userID, sessionID string) (*domain.QuizSession, error) {
	session, err := s.sessionRepo.GetSessionByID(ctx, sessionID)
	if err != nil {
		return nil, domain.NewInternalError("failed to load quiz session", err)
	}
	if session == nil {
		return nil, domain.NewNotFoundError("quiz session not found: " + sessionID)
	}
	if session.UserID != userID {
		return nil, domain.NewUnauthorizedError("quiz session belongs to another user")
	}
	return session, nil
}

// List implements QuizSessionService
func (s *quizSessionService) List(ctx context.Context, userID string, status domain.SessionStatus) ([]*domain.QuizSession, error) {
	sessions, err := s.sessionRepo.ListSessionsByUser(ctx, userID, status)
	if err != nil {
		return nil, domain.NewInternalError("failed to list quiz sessions", err)
	}
	return sessions, nil
}

// SubmitAnswer implements QuizSessionService
func (s *quizSessionService) SubmitAnswer(ctx context.Context, userID, sessionID string, in SubmitAnswerInput) (*SubmitAnswerResult, error) {
	session, err := s.Get(ctx, userID, sessionID)
	if err != nil {
		return nil, err
	}
	if err := session.CheckAnswerable(in.Index); err != nil {
		return nil, err
	}

	questionID := session.Items[in.Index].QuestionID
	questions, err := s.questionRepo.GetQuestionsByIDs(ctx, []string{questionID})
	if err != nil {
		return nil, domain.NewInternalError("failed to load question", err)
	}
	if len(questions) == 0 {
		return nil, domain.NewNotFoundError("question not found: " + questionID)
	}
	question := questions[0]

	// Grading may take seconds, so it runs before the session lock is taken.
	eval := s.evaluator.Evaluate(ctx, question, in.Answer)

	err = s.withSessionLock(ctx, sessionID, func() error {
		return inTransaction(ctx, s.txManager, "failed to save quiz session", func(txCtx context.Context) error {
			current, err := s.Get(txCtx, userID, sessionID)
			if err != nil {
				return err
			}
			if err := current.RecordAnswer(in.Index, in.Answer, in.TimeSpentSeconds, eval, s.now()); err != nil {
				return err
			}
			if err := s.save(txCtx, current); err != nil {
				return err
			}
			session = current
			return nil
		})
	})
	if err != nil {
		return nil, err
	}

	return &SubmitAnswerResult{
		Session:       session,
		Index:         in.Index,
		Evaluation:    eval,
		CorrectAnswer: question.CorrectAnswer,
		Explanation:   question.Explanation,
		Difficulty:    s.applyDifficulty(ctx, userID, eval.IsCorrect),
	}, nil
}

func (s *quizSessionService) applyDifficulty(ctx context.Context, userID string, isCorrect bool) domain.SideEffect {
	if s.difficulty == nil {
		return domain.SideEffect{}
	}
	user, err := s.userRepo.GetUserByID(ctx, userID)
	if err != nil {
		logger.Get().Warn("Failed to load user for difficulty update",
			zap.String("user_id", userID),
			zap.Error(err))
		return domain.SideEffect{Err: err}
	}
	if user == nil {
		return domain.SideEffect{}
	}
	return s.difficulty.Apply(ctx, user, isCorrect)
}

// Complete implements QuizSessionService
func (s *quizSessionService) Complete(ctx context.Context, userID, sessionID string) (*domain.QuizSession, error) {
	var completed *domain.QuizSession
	err := s.withSessionLock(ctx, sessionID, func() error {
		return inTransaction(ctx, s.txManager, "failed to save quiz session", func(txCtx context.Context) error {
			current, err := s.Get(txCtx, userID, sessionID)
			if err != nil {
				return err
			}
			if err := current.Complete(s.now()); err != nil {
				return err
			}
			if err := s.save(txCtx, current); err != nil {
				return err
			}
			completed = current
			return nil
		})
	})
	if err != nil {
		return nil, err
	}

	if s.stats != nil {
		s.stats.Invalidate(ctx, userID)
	}

	logger.Get().Info("Quiz session completed",
		zap.String("session_id", sessionID),
		zap.Int("correct_count", completed.CorrectCount),
		zap.Int("percentage", completed.Percentage))
	return completed, nil
}

// Delete implements QuizSessionService
func (s *quizSessionService) Delete(ctx context.Context, userID, sessionID string) error {
	var session *domain.QuizSession
	err := inTransaction(ctx, s.txManager, "failed to delete quiz session", func(txCtx context.Context) error {
		var err error
		session, err = s.Get(txCtx, userID, sessionID)
		if err != nil {
			return err
		}
		if err := s.sessionRepo.DeleteSession(txCtx, sessionID); err != nil {
			if domain.IsCode(err, domain.CodeNotFound) {
				return err
			}
			return domain.NewInternalError("failed to delete quiz session", err)
		}
		return nil
	})
	if err != nil {
		return err
	}
	if session.Status == domain.SessionCompleted && s.stats != nil {
		s.stats.Invalidate(ctx, userID)
	}
	return nil
}

// inTransaction runs fn in one transaction. Errors that are not already
// domain errors, such as a failed commit, become internal errors carrying msg.
func inTransaction(ctx context.Context, txManager domain.TransactionManager, msg string, fn func(ctx context.Context) error) error {
	err := txManager.WithTransaction(ctx, fn)
	if err == nil {
		return nil
	}
	var domainErr *domain.DomainError
	if errors.As(err, &domainErr) {
		return err
	}
	return domain.NewInternalError(msg, err)
}

func (s *quizSessionService) save(ctx context.Context, session *domain.QuizSession) error {
	if err := s.sessionRepo.UpdateSession(ctx, session); err != nil {
		if errors.Is(err, domain.ErrConflict) {
			return domain.NewConflictError("quiz session was modified concurrently", err)
		}
		return domain.NewInternalError("failed to save quiz session", err)
	}
	return nil
}

// withSessionLock serializes fn with other mutations of the same session.
// When the lock backend is unreachable fn still runs, guarded by the
// session version check.
func (s *quizSessionService) withSessionLock(ctx context.Context, sessionID string, fn func() error) error {
	if s.locker == nil {
		return fn()
	}

	key := cache.SessionLockKey(sessionID)
	var release domain.ReleaseFunc
	for attempt := 1; ; attempt++ {
		var err error
		release, err = s.locker.Acquire(ctx, key, s.lockTTL)
		if err == nil {
			break
		}
		if !errors.Is(err, domain.ErrLockNotAcquired) {
			logger.Get().Warn("Session lock unavailable, relying on version check",
				zap.String("session_id", sessionID),
				zap.Error(err))
			return fn()
		}
		if attempt == lockAttempts {
			return domain.NewConflictError("quiz session is busy", err)
		}
		select {
		case <-ctx.Done():
			return domain.NewConflictError("quiz session is busy", ctx.Err())
		case <-time.After(lockRetryDelay):
		}
	}

	defer func() {
		if err := release(context.WithoutCancel(ctx)); err != nil {
			logger.Get().Warn("Failed to release session lock",
				zap.String("session_id", sessionID),
				zap.Error(err))
		}
	}()
	return fn()
}
