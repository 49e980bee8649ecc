package repository

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"exam-byte/internal/domain"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var sessionRowColumns = []string{
	"ID", "USER_ID", "TITLE", "SUBJECT", "DIFFICULTY", "TIME_LIMIT_MINUTES",
	"SHUFFLE_QUESTIONS", "SHUFFLE_OPTIONS", "STATUS", "TOTAL_QUESTIONS", "CORRECT_COUNT",
	"PERCENTAGE", "SCORE", "STARTED_AT", "COMPLETED_AT", "TOTAL_TIME_SPENT_SECONDS",
	"VERSION", "CREATED_AT", "UPDATED_AT",
}

var sessionItemRowColumns = []string{
	"SESSION_ID", "POSITION", "QUESTION_ID", "USER_ANSWER", "IS_CORRECT",
	"TIME_SPENT_SECONDS", "AI_SCORE", "AI_FEEDBACK", "ANSWERED_AT",
}

func TestCorrectnessConversion(t *testing.T) {
	for _, c := range []domain.Correctness{domain.CorrectnessUnknown, domain.CorrectnessCorrect, domain.CorrectnessIncorrect} {
		assert.Equal(t, c, nullToCorrectness(correctnessToNull(c)))
	}
	assert.False(t, correctnessToNull(domain.CorrectnessUnknown).Valid)
}

func TestQuizSessionDatabaseAdapter_CreateSession(t *testing.T) {
	db, mock := setupTestDB(t)
	defer db.Close()
	repo := NewQuizSessionDatabaseAdapter(db)
	now := time.Now()

	session, err := domain.NewQuizSession("s1", "user1", []string{"q1", "q2"}, domain.SessionOptions{Title: "Week 1"}, nil, now)
	require.NoError(t, err)

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO quiz_sessions").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("INSERT INTO quiz_session_items").
		WithArgs("s1", 0, "q1", nil, nil, 0, nil, nil, nil).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("INSERT INTO quiz_session_items").
		WithArgs("s1", 1, "q2", nil, nil, 0, nil, nil, nil).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	assert.NoError(t, repo.CreateSession(context.Background(), session))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestQuizSessionDatabaseAdapter_CreateSession_ItemFailureRollsBack(t *testing.T) {
	db, mock := setupTestDB(t)
	defer db.Close()
	repo := NewQuizSessionDatabaseAdapter(db)

	session, err := domain.NewQuizSession("s1", "user1", []string{"q1", "q2"}, domain.SessionOptions{}, nil, time.Now())
	require.NoError(t, err)

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO quiz_sessions").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("INSERT INTO quiz_session_items").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("INSERT INTO quiz_session_items").WillReturnError(assert.AnError)
	mock.ExpectRollback()

	err = repo.CreateSession(context.Background(), session)
	assert.ErrorIs(t, err, assert.AnError)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestQuizSessionDatabaseAdapter_GetSessionByID(t *testing.T) {
	db, mock := setupTestDB(t)
	defer db.Close()
	repo := NewQuizSessionDatabaseAdapter(db)
	now := time.Now().Truncate(time.Second)

	t.Run("Found", func(t *testing.T) {
		mock.ExpectQuery("SELECT (.+) FROM quiz_sessions WHERE id = :1").WithArgs("s1").
			WillReturnRows(sqlmock.NewRows(sessionRowColumns).AddRow(
				"s1", "user1", "Week 1", nil, "mixed", 0,
				1, 0, "in-progress", 2, 0,
				0, 0, now, nil, 0,
				int64(3), now, now,
			))
		mock.ExpectQuery("SELECT (.+) FROM quiz_session_items WHERE session_id IN \\(:1\\)").WithArgs("s1").
			WillReturnRows(sqlmock.NewRows(sessionItemRowColumns).
				AddRow("s1", 0, "q1", "photosynthesis", int64(1), 40, int64(88), "solid", now).
				AddRow("s1", 1, "q2", nil, nil, 0, nil, nil, nil))

		s, err := repo.GetSessionByID(context.Background(), "s1")
		require.NoError(t, err)
		require.NotNil(t, s)
		assert.Equal(t, domain.SessionInProgress, s.Status)
		assert.True(t, s.ShuffleQuestions)
		assert.Equal(t, int64(3), s.Version)
		assert.Nil(t, s.CompletedAt)
		require.Len(t, s.Items, 2)
		assert.Equal(t, domain.CorrectnessCorrect, s.Items[0].IsCorrect)
		assert.Equal(t, 88, *s.Items[0].AIScore)
		assert.Equal(t, domain.CorrectnessUnknown, s.Items[1].IsCorrect)
		assert.Nil(t, s.Items[1].AnsweredAt)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("NotFound", func(t *testing.T) {
		mock.ExpectQuery("SELECT (.+) FROM quiz_sessions WHERE id = :1").WithArgs("nope").WillReturnError(sql.ErrNoRows)

		s, err := repo.GetSessionByID(context.Background(), "nope")
		assert.NoError(t, err)
		assert.Nil(t, s)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestQuizSessionDatabaseAdapter_UpdateSession(t *testing.T) {
	now := time.Now()
	newSession := func() *domain.QuizSession {
		s, _ := domain.NewQuizSession("s1", "user1", []string{"q1"}, domain.SessionOptions{}, nil, now)
		s.Version = 4
		_ = s.RecordAnswer(0, "B", 12, domain.Evaluation{IsCorrect: true}, now)
		return s
	}

	t.Run("Success", func(t *testing.T) {
		db, mock := setupTestDB(t)
		defer db.Close()
		repo := NewQuizSessionDatabaseAdapter(db)
		s := newSession()

		mock.ExpectBegin()
		mock.ExpectExec("UPDATE quiz_sessions SET (.+) WHERE id = :8 AND version = :9").
			WithArgs("in-progress", 0, 0, 0, nil, 0, sqlmock.AnyArg(), "s1", int64(4)).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec("UPDATE quiz_session_items SET").
			WithArgs("B", int64(1), 12, nil, nil, sqlmock.AnyArg(), "s1", 0).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		require.NoError(t, repo.UpdateSession(context.Background(), s))
		assert.Equal(t, int64(5), s.Version)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("ItemFailureRollsBackHeader", func(t *testing.T) {
		db, mock := setupTestDB(t)
		defer db.Close()
		repo := NewQuizSessionDatabaseAdapter(db)
		s := newSession()
		require.NoError(t, s.Complete(now))

		mock.ExpectBegin()
		mock.ExpectExec("UPDATE quiz_sessions SET").WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec("UPDATE quiz_session_items SET").WillReturnError(assert.AnError)
		mock.ExpectRollback()

		err := repo.UpdateSession(context.Background(), s)
		assert.ErrorIs(t, err, assert.AnError)
		assert.Equal(t, int64(4), s.Version)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("JoinsCallerTransaction", func(t *testing.T) {
		db, mock := setupTestDB(t)
		defer db.Close()
		repo := NewQuizSessionDatabaseAdapter(db)
		txManager := NewTransactionManagerAdapter(db)
		s := newSession()

		mock.ExpectBegin()
		mock.ExpectExec("UPDATE quiz_sessions SET").WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec("UPDATE quiz_session_items SET").WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		err := txManager.WithTransaction(context.Background(), func(ctx context.Context) error {
			return repo.UpdateSession(ctx, s)
		})
		require.NoError(t, err)
		assert.Equal(t, int64(5), s.Version)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Conflict", func(t *testing.T) {
		db, mock := setupTestDB(t)
		defer db.Close()
		repo := NewQuizSessionDatabaseAdapter(db)
		s := newSession()

		mock.ExpectBegin()
		mock.ExpectExec("UPDATE quiz_sessions SET").WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectRollback()

		err := repo.UpdateSession(context.Background(), s)
		assert.ErrorIs(t, err, domain.ErrConflict)
		assert.Equal(t, int64(4), s.Version)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestQuizSessionDatabaseAdapter_ListSessionsByUser(t *testing.T) {
	db, mock := setupTestDB(t)
	defer db.Close()
	repo := NewQuizSessionDatabaseAdapter(db)
	now := time.Now().Truncate(time.Second)

	mock.ExpectQuery("SELECT (.+) FROM quiz_sessions WHERE user_id = :1 AND status = :2 ORDER BY started_at DESC").
		WithArgs("user1", "completed").
		WillReturnRows(sqlmock.NewRows(sessionRowColumns).
			AddRow("s2", "user1", nil, "math", "easy", 10, 0, 0, "completed", 1, 1, 100, 1, now, now, 30, int64(2), now, now).
			AddRow("s1", "user1", nil, nil, "mixed", 0, 0, 0, "completed", 1, 0, 0, 0, now, now, 5, int64(2), now, now))
	mock.ExpectQuery("SELECT (.+) FROM quiz_session_items WHERE session_id IN \\(:1, :2\\)").
		WithArgs("s2", "s1").
		WillReturnRows(sqlmock.NewRows(sessionItemRowColumns).
			AddRow("s1", 0, "q9", "x", int64(0), 5, nil, nil, now).
			AddRow("s2", 0, "q1", "A", int64(1), 30, nil, nil, now))

	got, err := repo.ListSessionsByUser(context.Background(), "user1", domain.SessionCompleted)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "s2", got[0].ID)
	assert.Equal(t, "math", got[0].Subject)
	require.NotNil(t, got[0].CompletedAt)
	assert.Equal(t, "q1", got[0].Items[0].QuestionID)
	assert.Equal(t, domain.CorrectnessIncorrect, got[1].Items[0].IsCorrect)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestQuizSessionDatabaseAdapter_FindStaleSessions_Empty(t *testing.T) {
	db, mock := setupTestDB(t)
	defer db.Close()
	repo := NewQuizSessionDatabaseAdapter(db)
	cutoff := time.Now().Add(-24 * time.Hour)

	mock.ExpectQuery("SELECT (.+) FROM quiz_sessions WHERE status = :1 AND started_at < :2").
		WithArgs("in-progress", cutoff).
		WillReturnRows(sqlmock.NewRows(sessionRowColumns))

	got, err := repo.FindStaleSessions(context.Background(), cutoff)
	require.NoError(t, err)
	assert.Empty(t, got)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestQuizSessionDatabaseAdapter_DeleteSession(t *testing.T) {
	db, mock := setupTestDB(t)
	defer db.Close()
	repo := NewQuizSessionDatabaseAdapter(db)

	mock.ExpectBegin()
	mock.ExpectExec("DELETE FROM quiz_session_items WHERE session_id = :1").WithArgs("s1").WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectExec("DELETE FROM quiz_sessions WHERE id = :1").WithArgs("s1").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()
	assert.NoError(t, repo.DeleteSession(context.Background(), "s1"))

	mock.ExpectBegin()
	mock.ExpectExec("DELETE FROM quiz_session_items").WithArgs("s2").WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec("DELETE FROM quiz_sessions").WithArgs("s2").WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectRollback()
	err := repo.DeleteSession(context.Background(), "s2")
	assert.True(t, domain.IsCode(err, domain.CodeNotFound))

	mock.ExpectBegin()
	mock.ExpectExec("DELETE FROM quiz_session_items").WithArgs("s3").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("DELETE FROM quiz_sessions").WithArgs("s3").WillReturnError(assert.AnError)
	mock.ExpectRollback()
	err = repo.DeleteSession(context.Background(), "s3")
	assert.ErrorIs(t, err, assert.AnError)

	assert.NoError(t, mock.ExpectationsWereMet())
}
