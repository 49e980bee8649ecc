package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"exam-byte/internal/domain"
	"exam-byte/internal/repository/models"
	"exam-byte/internal/util"

	"github.com/jmoiron/sqlx"
)

const sessionColumns = `ID, USER_ID, TITLE, SUBJECT, DIFFICULTY, TIME_LIMIT_MINUTES,
	SHUFFLE_QUESTIONS, SHUFFLE_OPTIONS, STATUS, TOTAL_QUESTIONS, CORRECT_COUNT,
	PERCENTAGE, SCORE, STARTED_AT, COMPLETED_AT, TOTAL_TIME_SPENT_SECONDS,
	VERSION, CREATED_AT, UPDATED_AT`

const sessionItemColumns = `SESSION_ID, POSITION, QUESTION_ID, USER_ANSWER, IS_CORRECT,
	TIME_SPENT_SECONDS, AI_SCORE, AI_FEEDBACK, ANSWERED_AT`

// QuizSessionDatabaseAdapter implements domain.QuizSessionRepository using sqlx.DB.
// A session is one QUIZ_SESSIONS row plus one QUIZ_SESSION_ITEMS row per item;
// every write touches both inside one transaction, joining the caller's
// transaction when ctx carries one.
type QuizSessionDatabaseAdapter struct {
	db *sqlx.DB
	tx domain.TransactionManager
}

// NewQuizSessionDatabaseAdapter creates a new instance of QuizSessionDatabaseAdapter
func NewQuizSessionDatabaseAdapter(db *sqlx.DB) domain.QuizSessionRepository {
	return &QuizSessionDatabaseAdapter{db: db, tx: NewTransactionManagerAdapter(db)}
}

func correctnessToNull(c domain.Correctness) sql.NullInt64 {
	switch c {
	case domain.CorrectnessCorrect:
		return sql.NullInt64{Int64: 1, Valid: true}
	case domain.CorrectnessIncorrect:
		return sql.NullInt64{Int64: 0, Valid: true}
	}
	return sql.NullInt64{}
}

func nullToCorrectness(n sql.NullInt64) domain.Correctness {
	if !n.Valid {
		return domain.CorrectnessUnknown
	}
	return domain.CorrectnessOf(n.Int64 != 0)
}

func toDomainSession(m *models.QuizSession, items []models.QuizSessionItem) *domain.QuizSession {
	s := &domain.QuizSession{
		ID:                    m.ID,
		UserID:                m.UserID,
		Title:                 m.Title.String,
		Subject:               m.Subject.String,
		Difficulty:            m.Difficulty,
		TimeLimitMinutes:      m.TimeLimitMinutes,
		ShuffleQuestions:      m.ShuffleQuestions != 0,
		ShuffleOptions:        m.ShuffleOptions != 0,
		Status:                domain.SessionStatus(m.Status),
		TotalQuestions:        m.TotalQuestions,
		CorrectCount:          m.CorrectCount,
		Percentage:            m.Percentage,
		Score:                 m.Score,
		StartedAt:             m.StartedAt,
		CompletedAt:           util.NullTimeToPtr(m.CompletedAt),
		TotalTimeSpentSeconds: m.TotalTimeSpentSeconds,
		Version:               m.Version,
		CreatedAt:             m.CreatedAt,
		UpdatedAt:             m.UpdatedAt,
		Items:                 make([]domain.SessionItem, len(items)),
	}
	for i, it := range items {
		s.Items[i] = domain.SessionItem{
			QuestionID:       it.QuestionID,
			UserAnswer:       it.UserAnswer.String,
			IsCorrect:        nullToCorrectness(it.IsCorrect),
			TimeSpentSeconds: it.TimeSpentSeconds,
			AIScore:          util.NullInt64ToIntPtr(it.AIScore),
			AIFeedback:       it.AIFeedback.String,
			AnsweredAt:       util.NullTimeToPtr(it.AnsweredAt),
		}
	}
	return s
}

// CreateSession inserts the session row and its items.
func (a *QuizSessionDatabaseAdapter) CreateSession(ctx context.Context, session *domain.QuizSession) error {
	if session == nil {
		return fmt.Errorf("cannot save nil quiz session")
	}
	return a.tx.WithTransaction(ctx, func(ctx context.Context) error {
		return a.insertSession(ctx, session)
	})
}

func (a *QuizSessionDatabaseAdapter) insertSession(ctx context.Context, session *domain.QuizSession) error {
	exec := GetExecutor(ctx, a.db)

	query := `INSERT INTO quiz_sessions (` + sessionColumns + `)
	VALUES (:1, :2, :3, :4, :5, :6, :7, :8, :9, :10, :11, :12, :13, :14, :15, :16, :17, :18, :19)`

	_, err := exec.ExecContext(ctx, query,
		session.ID,
		session.UserID,
		util.StringToNullString(session.Title),
		util.StringToNullString(session.Subject),
		session.Difficulty,
		session.TimeLimitMinutes,
		boolToNumber(session.ShuffleQuestions),
		boolToNumber(session.ShuffleOptions),
		string(session.Status),
		session.TotalQuestions,
		session.CorrectCount,
		session.Percentage,
		session.Score,
		session.StartedAt,
		util.TimePtrToNullTime(session.CompletedAt),
		session.TotalTimeSpentSeconds,
		session.Version,
		session.CreatedAt,
		session.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create quiz session: %w", err)
	}

	itemQuery := `INSERT INTO quiz_session_items (` + sessionItemColumns + `)
	VALUES (:1, :2, :3, :4, :5, :6, :7, :8, :9)`
	for i, item := range session.Items {
		_, err := exec.ExecContext(ctx, itemQuery,
			session.ID,
			i,
			item.QuestionID,
			util.StringToNullString(item.UserAnswer),
			correctnessToNull(item.IsCorrect),
			item.TimeSpentSeconds,
			util.IntPtrToNullInt64(item.AIScore),
			util.StringToNullString(item.AIFeedback),
			util.TimePtrToNullTime(item.AnsweredAt),
		)
		if err != nil {
			return fmt.Errorf("failed to create quiz session item %d: %w", i, err)
		}
	}
	return nil
}

// GetSessionByID returns nil, nil when the session does not exist.
func (a *QuizSessionDatabaseAdapter) GetSessionByID(ctx context.Context, sessionID string) (*domain.QuizSession, error) {
	exec := GetExecutor(ctx, a.db)

	var m models.QuizSession
	query := `SELECT ` + sessionColumns + ` FROM quiz_sessions WHERE id = :1`
	if err := exec.GetContext(ctx, &m, query, sessionID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get quiz session %s: %w", sessionID, err)
	}

	itemsBySession, err := a.loadItems(ctx, exec, []string{m.ID})
	if err != nil {
		return nil, err
	}
	return toDomainSession(&m, itemsBySession[m.ID]), nil
}

// UpdateSession saves every mutable column if VERSION still equals
// session.Version, then bumps session.Version. Header and items commit or
// roll back together.
func (a *QuizSessionDatabaseAdapter) UpdateSession(ctx context.Context, session *domain.QuizSession) error {
	err := a.tx.WithTransaction(ctx, func(ctx context.Context) error {
		return a.updateSession(ctx, session)
	})
	if err != nil {
		return err
	}
	session.Version++
	return nil
}

func (a *QuizSessionDatabaseAdapter) updateSession(ctx context.Context, session *domain.QuizSession) error {
	exec := GetExecutor(ctx, a.db)

	query := `UPDATE quiz_sessions SET
		status = :1,
		correct_count = :2,
		percentage = :3,
		score = :4,
		completed_at = :5,
		total_time_spent_seconds = :6,
		version = version + 1,
		updated_at = :7
	WHERE id = :8 AND version = :9`

	result, err := exec.ExecContext(ctx, query,
		string(session.Status),
		session.CorrectCount,
		session.Percentage,
		session.Score,
		util.TimePtrToNullTime(session.CompletedAt),
		session.TotalTimeSpentSeconds,
		session.UpdatedAt,
		session.ID,
		session.Version,
	)
	if err != nil {
		return fmt.Errorf("failed to update quiz session: %w", err)
	}
	if err := checkVersionedUpdate(result); err != nil {
		return err
	}

	itemQuery := `UPDATE quiz_session_items SET
		user_answer = :1,
		is_correct = :2,
		time_spent_seconds = :3,
		ai_score = :4,
		ai_feedback = :5,
		answered_at = :6
	WHERE session_id = :7 AND position = :8`
	for i, item := range session.Items {
		_, err := exec.ExecContext(ctx, itemQuery,
			util.StringToNullString(item.UserAnswer),
			correctnessToNull(item.IsCorrect),
			item.TimeSpentSeconds,
			util.IntPtrToNullInt64(item.AIScore),
			util.StringToNullString(item.AIFeedback),
			util.TimePtrToNullTime(item.AnsweredAt),
			session.ID,
			i,
		)
		if err != nil {
			return fmt.Errorf("failed to update quiz session item %d: %w", i, err)
		}
	}
	return nil
}

// ListSessionsByUser returns the user's sessions, newest first. An empty
// status matches every status.
func (a *QuizSessionDatabaseAdapter) ListSessionsByUser(ctx context.Context, userID string, status domain.SessionStatus) ([]*domain.QuizSession, error) {
	query := `SELECT ` + sessionColumns + ` FROM quiz_sessions WHERE user_id = :1`
	args := []interface{}{userID}
	if status != "" {
		query += ` AND status = :2`
		args = append(args, string(status))
	}
	query += ` ORDER BY started_at DESC`

	return a.selectSessions(ctx, query, args...)
}

// FindStaleSessions returns in-progress sessions started before the cutoff.
func (a *QuizSessionDatabaseAdapter) FindStaleSessions(ctx context.Context, startedBefore time.Time) ([]*domain.QuizSession, error) {
	query := `SELECT ` + sessionColumns + ` FROM quiz_sessions WHERE status = :1 AND started_at < :2 ORDER BY started_at`
	return a.selectSessions(ctx, query, string(domain.SessionInProgress), startedBefore)
}

// DeleteSession removes the session and its items.
func (a *QuizSessionDatabaseAdapter) DeleteSession(ctx context.Context, sessionID string) error {
	return a.tx.WithTransaction(ctx, func(ctx context.Context) error {
		return a.deleteSession(ctx, sessionID)
	})
}

func (a *QuizSessionDatabaseAdapter) deleteSession(ctx context.Context, sessionID string) error {
	exec := GetExecutor(ctx, a.db)

	if _, err := exec.ExecContext(ctx, `DELETE FROM quiz_session_items WHERE session_id = :1`, sessionID); err != nil {
		return fmt.Errorf("failed to delete quiz session items: %w", err)
	}
	result, err := exec.ExecContext(ctx, `DELETE FROM quiz_sessions WHERE id = :1`, sessionID)
	if err != nil {
		return fmt.Errorf("failed to delete quiz session: %w", err)
	}
	return checkRowsAffected(result, "quiz session not found")
}

func (a *QuizSessionDatabaseAdapter) selectSessions(ctx context.Context, query string, args ...interface{}) ([]*domain.QuizSession, error) {
	exec := GetExecutor(ctx, a.db)

	var rows []models.QuizSession
	if err := exec.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("failed to list quiz sessions: %w", err)
	}
	if len(rows) == 0 {
		return []*domain.QuizSession{}, nil
	}

	ids := make([]string, len(rows))
	for i := range rows {
		ids[i] = rows[i].ID
	}
	itemsBySession, err := a.loadItems(ctx, exec, ids)
	if err != nil {
		return nil, err
	}

	sessions := make([]*domain.QuizSession, 0, len(rows))
	for i := range rows {
		sessions = append(sessions, toDomainSession(&rows[i], itemsBySession[rows[i].ID]))
	}
	return sessions, nil
}

// loadItems fetches the items of the given sessions grouped by session id,
// each group ordered by position.
func (a *QuizSessionDatabaseAdapter) loadItems(ctx context.Context, exec DBTX, sessionIDs []string) (map[string][]models.QuizSessionItem, error) {
	query := `SELECT ` + sessionItemColumns + ` FROM quiz_session_items
	WHERE session_id IN (` + placeholders(1, len(sessionIDs)) + `)
	ORDER BY session_id, position`
	args := make([]interface{}, len(sessionIDs))
	for i, id := range sessionIDs {
		args[i] = id
	}

	var items []models.QuizSessionItem
	if err := exec.SelectContext(ctx, &items, query, args...); err != nil {
		return nil, fmt.Errorf("failed to load quiz session items: %w", err)
	}

	grouped := make(map[string][]models.QuizSessionItem, len(sessionIDs))
	for _, it := range items {
		grouped[it.SessionID] = append(grouped[it.SessionID], it)
	}
	return grouped, nil
}
