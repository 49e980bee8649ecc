package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"exam-byte/internal/domain"
	"exam-byte/internal/repository/models"
	"exam-byte/internal/util"

	"github.com/jmoiron/sqlx"
)

const questionColumns = `ID, USER_ID, QUESTION_TYPE, DIFFICULTY, SUBJECT, QUESTION, OPTIONS,
	CORRECT_ANSWER, EXPLANATION, HINT, CREATED_AT, UPDATED_AT`

// QuestionDatabaseAdapter implements domain.QuestionRepository using sqlx.DB
type QuestionDatabaseAdapter struct {
	db *sqlx.DB
}

// NewQuestionDatabaseAdapter creates a new instance of QuestionDatabaseAdapter
func NewQuestionDatabaseAdapter(db *sqlx.DB) domain.QuestionRepository {
	return &QuestionDatabaseAdapter{db: db}
}

func toDomainQuestion(m *models.Question) *domain.Question {
	if m == nil {
		return nil
	}
	return &domain.Question{
		ID:            m.ID,
		UserID:        m.UserID,
		Type:          domain.QuestionType(m.Type),
		Difficulty:    domain.DifficultyLevel(m.Difficulty),
		Subject:       m.Subject.String,
		Question:      m.Question,
		Options:       []string(m.Options),
		CorrectAnswer: m.CorrectAnswer,
		Explanation:   m.Explanation.String,
		Hint:          m.Hint.String,
		CreatedAt:     m.CreatedAt,
		UpdatedAt:     m.UpdatedAt,
	}
}

// SaveQuestion implements domain.QuestionRepository. The ID is generated when empty.
func (a *QuestionDatabaseAdapter) SaveQuestion(ctx context.Context, question *domain.Question) error {
	if question == nil {
		return fmt.Errorf("cannot save nil question")
	}
	if question.ID == "" {
		question.ID = util.NewULID()
	}
	now := time.Now()
	if question.CreatedAt.IsZero() {
		question.CreatedAt = now
	}
	question.UpdatedAt = now

	query := `INSERT INTO questions (` + questionColumns + `)
	VALUES (:1, :2, :3, :4, :5, :6, :7, :8, :9, :10, :11, :12)`

	_, err := GetExecutor(ctx, a.db).ExecContext(ctx, query,
		question.ID,
		question.UserID,
		string(question.Type),
		string(question.Difficulty),
		util.StringToNullString(question.Subject),
		question.Question,
		models.StringSlice(question.Options),
		question.CorrectAnswer,
		util.StringToNullString(question.Explanation),
		util.StringToNullString(question.Hint),
		question.CreatedAt,
		question.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to save question: %w", err)
	}
	return nil
}

// GetQuestionsByIDs implements domain.QuestionRepository
func (a *QuestionDatabaseAdapter) GetQuestionsByIDs(ctx context.Context, ids []string) ([]*domain.Question, error) {
	if len(ids) == 0 {
		return []*domain.Question{}, nil
	}

	query := `SELECT ` + questionColumns + ` FROM questions WHERE id IN (` + placeholders(1, len(ids)) + `)`
	args := make([]interface{}, len(ids))
	for i, id := range ids {
		args[i] = id
	}

	var rows []models.Question
	if err := GetExecutor(ctx, a.db).SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("failed to get questions by ids: %w", err)
	}
	return toDomainQuestions(rows), nil
}

// GetQuestionsByOwner implements domain.QuestionRepository
func (a *QuestionDatabaseAdapter) GetQuestionsByOwner(ctx context.Context, userID string) ([]*domain.Question, error) {
	query := `SELECT ` + questionColumns + ` FROM questions WHERE user_id = :1 ORDER BY created_at`

	var rows []models.Question
	if err := GetExecutor(ctx, a.db).SelectContext(ctx, &rows, query, userID); err != nil {
		return nil, fmt.Errorf("failed to get questions by owner: %w", err)
	}
	return toDomainQuestions(rows), nil
}

// ListQuestions implements domain.QuestionRepository. Subject matches
// case-insensitively, as domain.QuestionFilter.Matches does.
func (a *QuestionDatabaseAdapter) ListQuestions(ctx context.Context, userID string, filter domain.QuestionFilter) ([]*domain.Question, error) {
	query := `SELECT ` + questionColumns + ` FROM questions WHERE user_id = :1`
	args := []interface{}{userID}
	if filter.Difficulty != "" {
		args = append(args, string(filter.Difficulty))
		query += fmt.Sprintf(` AND difficulty = :%d`, len(args))
	}
	if filter.Type != "" {
		args = append(args, string(filter.Type))
		query += fmt.Sprintf(` AND question_type = :%d`, len(args))
	}
	if filter.Subject != "" {
		args = append(args, strings.ToLower(filter.Subject))
		query += fmt.Sprintf(` AND LOWER(subject) = :%d`, len(args))
	}
	query += ` ORDER BY created_at DESC`

	var rows []models.Question
	if err := GetExecutor(ctx, a.db).SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("failed to list questions: %w", err)
	}
	return toDomainQuestions(rows), nil
}

// UpdateQuestion implements domain.QuestionRepository. Ownership and
// creation time never change.
func (a *QuestionDatabaseAdapter) UpdateQuestion(ctx context.Context, question *domain.Question) error {
	if question == nil {
		return fmt.Errorf("cannot update nil question")
	}
	question.UpdatedAt = time.Now()

	query := `UPDATE questions SET
		question_type = :1,
		difficulty = :2,
		subject = :3,
		question = :4,
		options = :5,
		correct_answer = :6,
		explanation = :7,
		hint = :8,
		updated_at = :9
	WHERE id = :10`

	result, err := GetExecutor(ctx, a.db).ExecContext(ctx, query,
		string(question.Type),
		string(question.Difficulty),
		util.StringToNullString(question.Subject),
		question.Question,
		models.StringSlice(question.Options),
		question.CorrectAnswer,
		util.StringToNullString(question.Explanation),
		util.StringToNullString(question.Hint),
		question.UpdatedAt,
		question.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update question: %w", err)
	}
	return checkRowsAffected(result, "question not found: "+question.ID)
}

// DeleteQuestion implements domain.QuestionRepository. Sessions that already
// reference the question keep their item rows.
func (a *QuestionDatabaseAdapter) DeleteQuestion(ctx context.Context, questionID string) error {
	result, err := GetExecutor(ctx, a.db).ExecContext(ctx, `DELETE FROM questions WHERE id = :1`, questionID)
	if err != nil {
		return fmt.Errorf("failed to delete question: %w", err)
	}
	return checkRowsAffected(result, "question not found: "+questionID)
}

func toDomainQuestions(rows []models.Question) []*domain.Question {
	out := make([]*domain.Question, 0, len(rows))
	for i := range rows {
		out = append(out, toDomainQuestion(&rows[i]))
	}
	return out
}
