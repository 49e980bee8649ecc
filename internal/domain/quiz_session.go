package domain

import (
	"context"
	"strings"
	"time"

	"exam-byte/internal/util"
)

// SessionStatus is the lifecycle state of a quiz session.
type SessionStatus string

const (
	SessionInProgress SessionStatus = "in-progress"
	SessionCompleted  SessionStatus = "completed"
	SessionAbandoned  SessionStatus = "abandoned"
)

func ParseSessionStatus(s string) (SessionStatus, bool) {
	switch st := SessionStatus(strings.ToLower(strings.TrimSpace(s))); st {
	case SessionInProgress, SessionCompleted, SessionAbandoned:
		return st, true
	}
	return "", false
}

// Correctness is the tri-state verdict of a session item.
type Correctness int8

const (
	CorrectnessUnknown Correctness = iota
	CorrectnessCorrect
	CorrectnessIncorrect
)

func CorrectnessOf(isCorrect bool) Correctness {
	if isCorrect {
		return CorrectnessCorrect
	}
	return CorrectnessIncorrect
}

func (c Correctness) Known() bool {
	return c != CorrectnessUnknown
}

// Bool returns nil while the verdict is unknown.
func (c Correctness) Bool() *bool {
	if !c.Known() {
		return nil
	}
	v := c == CorrectnessCorrect
	return &v
}

// SessionItem is one question slot of a session.
type SessionItem struct {
	QuestionID       string
	UserAnswer       string
	IsCorrect        Correctness
	TimeSpentSeconds int
	AIScore          *int
	AIFeedback       string
	AnsweredAt       *time.Time
}

// SessionOptions carries the presentation settings chosen at creation.
type SessionOptions struct {
	Title            string
	Subject          string
	Difficulty       string
	TimeLimitMinutes int
	ShuffleQuestions bool
	ShuffleOptions   bool
}

// QuizSession is one run of a user through an ordered set of questions.
// The item order is fixed at creation.
type QuizSession struct {
	ID                    string
	UserID                string
	Title                 string
	Subject               string
	Difficulty            string
	TimeLimitMinutes      int
	ShuffleQuestions      bool
	ShuffleOptions        bool
	Items                 []SessionItem
	Status                SessionStatus
	TotalQuestions        int
	CorrectCount          int
	Percentage            int
	Score                 int
	StartedAt             time.Time
	CompletedAt           *time.Time
	TotalTimeSpentSeconds int
	Version               int64
	CreatedAt             time.Time
	UpdatedAt             time.Time
}

// RandSource is the injectable randomness used for shuffling and sampling.
// *rand.Rand satisfies it.
type RandSource interface {
	Intn(n int) int
	Shuffle(n int, swap func(i, j int))
}

// NewQuizSession builds an in-progress session. When ShuffleQuestions is set
// the order is permuted here, once.
func NewQuizSession(id, userID string, questionIDs []string, opts SessionOptions, rng RandSource, now time.Time) (*QuizSession, error) {
	if len(questionIDs) == 0 {
		return nil, NewInvalidInputError("at least one question is required")
	}

	ordered := make([]string, len(questionIDs))
	copy(ordered, questionIDs)
	if opts.ShuffleQuestions && rng != nil {
		rng.Shuffle(len(ordered), func(i, j int) {
			ordered[i], ordered[j] = ordered[j], ordered[i]
		})
	}

	items := make([]SessionItem, len(ordered))
	for i, qID := range ordered {
		items[i] = SessionItem{QuestionID: qID}
	}

	difficulty := opts.Difficulty
	if difficulty == "" {
		difficulty = "mixed"
	}

	return &QuizSession{
		ID:               id,
		UserID:           userID,
		Title:            opts.Title,
		Subject:          opts.Subject,
		Difficulty:       difficulty,
		TimeLimitMinutes: opts.TimeLimitMinutes,
		ShuffleQuestions: opts.ShuffleQuestions,
		ShuffleOptions:   opts.ShuffleOptions,
		Items:            items,
		Status:           SessionInProgress,
		TotalQuestions:   len(items),
		StartedAt:        now,
		CreatedAt:        now,
		UpdatedAt:        now,
	}, nil
}

// QuestionIDs returns the question references in session order.
func (s *QuizSession) QuestionIDs() []string {
	ids := make([]string, len(s.Items))
	for i, item := range s.Items {
		ids[i] = item.QuestionID
	}
	return ids
}

// CheckAnswerable validates that index can receive an answer right now.
func (s *QuizSession) CheckAnswerable(index int) error {
	if s.Status != SessionInProgress {
		return NewInvalidStateError("quiz session is " + string(s.Status))
	}
	if index < 0 || index >= len(s.Items) {
		return NewOutOfRangeIndexError(index, len(s.Items))
	}
	return nil
}

// RecordAnswer stores the evaluated answer for one item, replacing any
// earlier answer for the same index.
func (s *QuizSession) RecordAnswer(index int, userAnswer string, timeSpentSeconds int, eval Evaluation, now time.Time) error {
	if err := s.CheckAnswerable(index); err != nil {
		return err
	}
	if timeSpentSeconds < 0 {
		timeSpentSeconds = 0
	}

	item := &s.Items[index]
	item.UserAnswer = userAnswer
	item.TimeSpentSeconds = timeSpentSeconds
	item.IsCorrect = CorrectnessOf(eval.IsCorrect)
	item.AIScore = eval.Score
	item.AIFeedback = eval.Feedback
	answeredAt := now
	item.AnsweredAt = &answeredAt
	s.UpdatedAt = now
	return nil
}

// Complete closes the session: unanswered items count as incorrect and the
// score fields are derived.
func (s *QuizSession) Complete(now time.Time) error {
	if s.Status != SessionInProgress {
		return NewInvalidStateError("quiz session is already " + string(s.Status))
	}

	correct := 0
	total := 0
	for i := range s.Items {
		if !s.Items[i].IsCorrect.Known() {
			s.Items[i].IsCorrect = CorrectnessIncorrect
		}
		if s.Items[i].IsCorrect == CorrectnessCorrect {
			correct++
		}
		total += s.Items[i].TimeSpentSeconds
	}

	completedAt := now
	s.Status = SessionCompleted
	s.CompletedAt = &completedAt
	s.TotalTimeSpentSeconds = total
	s.CorrectCount = correct
	s.Score = correct
	s.Percentage = util.RoundPercent(correct, s.TotalQuestions)
	s.UpdatedAt = now
	return nil
}

// Abandon is used by housekeeping for sessions nobody finished. Like Complete,
// it leaves no item unknown; score fields are not derived.
func (s *QuizSession) Abandon(now time.Time) error {
	if s.Status != SessionInProgress {
		return NewInvalidStateError("quiz session is already " + string(s.Status))
	}
	for i := range s.Items {
		if !s.Items[i].IsCorrect.Known() {
			s.Items[i].IsCorrect = CorrectnessIncorrect
		}
	}
	s.Status = SessionAbandoned
	s.UpdatedAt = now
	return nil
}

// SelectRandom draws min(count, |filtered pool|) distinct questions uniformly
// at random from the pool entries that match filter.
func SelectRandom(pool []*Question, count int, filter QuestionFilter, rng RandSource) ([]*Question, error) {
	candidates := make([]*Question, 0, len(pool))
	for _, q := range pool {
		if q != nil && filter.Matches(q) {
			candidates = append(candidates, q)
		}
	}
	if len(candidates) == 0 {
		return nil, NewInvalidInputError("no questions found matching criteria")
	}
	if count <= 0 {
		return nil, NewInvalidInputError("count must be positive")
	}
	if count > len(candidates) {
		count = len(candidates)
	}

	// partial Fisher-Yates
	for i := 0; i < count; i++ {
		j := i + rng.Intn(len(candidates)-i)
		candidates[i], candidates[j] = candidates[j], candidates[i]
	}
	return candidates[:count], nil
}

// QuizSessionRepository defines the interface for session persistence.
// UpdateSession is a compare-and-swap on Version and returns ErrConflict when
// the stored record moved on; on success it bumps session.Version.
type QuizSessionRepository interface {
	CreateSession(ctx context.Context, session *QuizSession) error
	GetSessionByID(ctx context.Context, sessionID string) (*QuizSession, error)
	UpdateSession(ctx context.Context, session *QuizSession) error
	ListSessionsByUser(ctx context.Context, userID string, status SessionStatus) ([]*QuizSession, error)
	DeleteSession(ctx context.Context, sessionID string) error
	FindStaleSessions(ctx context.Context, startedBefore time.Time) ([]*QuizSession, error)
}
