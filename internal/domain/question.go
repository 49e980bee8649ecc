package domain

import (
	"context"
	"strings"
	"time"
)

// QuestionType decides how an answer is evaluated.
type QuestionType string

const (
	QuestionMCQ         QuestionType = "mcq"
	QuestionShort       QuestionType = "short"
	QuestionTrueFalse   QuestionType = "truefalse"
	QuestionApplication QuestionType = "application"
)

// QuestionTypes lists every supported type.
var QuestionTypes = []QuestionType{QuestionMCQ, QuestionShort, QuestionTrueFalse, QuestionApplication}

func ParseQuestionType(s string) (QuestionType, bool) {
	t := QuestionType(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range QuestionTypes {
		if t == known {
			return t, true
		}
	}
	return "", false
}

// IsOpenEnded reports whether answers of this type are graded semantically.
func (t QuestionType) IsOpenEnded() bool {
	return t == QuestionShort || t == QuestionApplication
}

// Question is a practice question owned by a user.
type Question struct {
	ID            string
	UserID        string
	Type          QuestionType
	Difficulty    DifficultyLevel
	Subject       string
	Question      string
	Options       []string // mcq only
	CorrectAnswer string
	Explanation   string
	Hint          string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// Validate validates the question
func (q *Question) Validate() error {
	if strings.TrimSpace(q.Question) == "" {
		return NewInvalidInputError("question text is required")
	}
	if _, ok := ParseQuestionType(string(q.Type)); !ok {
		return NewInvalidInputError("invalid question type: " + string(q.Type))
	}
	if _, ok := ParseDifficulty(string(q.Difficulty)); !ok {
		return NewInvalidInputError("invalid question difficulty: " + string(q.Difficulty))
	}
	if strings.TrimSpace(q.CorrectAnswer) == "" {
		return NewInvalidInputError("correct answer is required")
	}
	if q.Type == QuestionMCQ && len(q.Options) < 2 {
		return NewInvalidInputError("multiple choice questions need at least two options")
	}
	return nil
}

// QuestionFilter narrows a candidate pool. Empty fields match everything.
type QuestionFilter struct {
	Difficulty DifficultyLevel
	Subject    string
	Type       QuestionType
}

func (f QuestionFilter) Matches(q *Question) bool {
	if f.Difficulty != "" && q.Difficulty != f.Difficulty {
		return false
	}
	if f.Subject != "" && !strings.EqualFold(q.Subject, f.Subject) {
		return false
	}
	if f.Type != "" && q.Type != f.Type {
		return false
	}
	return true
}

// QuestionRepository defines the interface for question persistence
type QuestionRepository interface {
	SaveQuestion(ctx context.Context, question *Question) error
	// GetQuestionsByIDs returns the questions that exist; missing ids are skipped.
	GetQuestionsByIDs(ctx context.Context, ids []string) ([]*Question, error)
	GetQuestionsByOwner(ctx context.Context, userID string) ([]*Question, error)
	// ListQuestions returns the owner's questions matching filter, newest first.
	ListQuestions(ctx context.Context, userID string, filter QuestionFilter) ([]*Question, error)
	UpdateQuestion(ctx context.Context, question *Question) error
	DeleteQuestion(ctx context.Context, questionID string) error
}
