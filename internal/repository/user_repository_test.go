package repository

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"exam-byte/internal/domain"
	"exam-byte/internal/repository/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupTestDB creates a new sqlx.DB instance and sqlmock for repository testing.
func setupTestDB(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock) {
	mockDB, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("Failed to create sqlmock: %v", err)
	}
	sqlxDB := sqlx.NewDb(mockDB, "sqlmock")
	return sqlxDB, mock
}

var userRowColumns = []string{
	"ID", "EMAIL", "NAME", "ROLE", "PLAN",
	"STORAGE_USED", "STORAGE_LIMIT", "UPLOADS_TODAY", "UPLOADS_LIMIT",
	"GENERATIONS_TODAY", "GENERATIONS_LIMIT", "LAST_RESET_DATE", "QUOTA_VERSION",
	"DIFFICULTY_LEVEL", "CONSECUTIVE_CORRECT", "CONSECUTIVE_INCORRECT",
	"DIFFICULTY_UPDATED_AT", "DIFFICULTY_VERSION", "CREATED_AT", "UPDATED_AT",
}

// --- Tests for Converter Functions ---

func TestToDomainUser(t *testing.T) {
	now := time.Now().Truncate(time.Second)
	modelUser := &models.User{
		ID:                   "user1",
		Email:                "test@example.com",
		Name:                 sql.NullString{String: "Test User", Valid: true},
		Role:                 "student",
		Plan:                 "free",
		StorageLimit:         100,
		UploadsLimit:         5,
		GenerationsLimit:     20,
		LastResetDate:        now,
		QuotaVersion:         3,
		DifficultyLevel:      sql.NullString{String: "hard", Valid: true},
		ConsecutiveCorrect:   2,
		DifficultyUpdatedAt:  sql.NullTime{Time: now, Valid: true},
		DifficultyVersion:    7,
		CreatedAt:            now,
		UpdatedAt:            now,
	}

	domainUser := toDomainUser(modelUser)
	require.NotNil(t, domainUser)
	assert.Equal(t, domain.RoleStudent, domainUser.Role)
	assert.Equal(t, "Test User", domainUser.Name)
	assert.Equal(t, int64(3), domainUser.Quota.Version)
	assert.Equal(t, 5, domainUser.Quota.UploadsLimit)
	require.NotNil(t, domainUser.Difficulty)
	assert.Equal(t, domain.DifficultyHard, domainUser.Difficulty.CurrentLevel)
	assert.Equal(t, 2, domainUser.Difficulty.ConsecutiveCorrect)
	assert.Equal(t, int64(7), domainUser.Difficulty.Version)

	modelUser.DifficultyLevel = sql.NullString{}
	assert.Nil(t, toDomainUser(modelUser).Difficulty)

	assert.Nil(t, toDomainUser(nil))
}

func TestFromDomainUser(t *testing.T) {
	now := time.Now().Truncate(time.Second)
	u := domain.NewUser("user1", "test@example.com", "", domain.RoleStudent, domain.PlanFree, now)

	m := fromDomainUser(u)
	require.NotNil(t, m)
	assert.False(t, m.Name.Valid)
	assert.Equal(t, sql.NullString{String: "medium", Valid: true}, m.DifficultyLevel)
	assert.Equal(t, u.Quota.StorageLimit, m.StorageLimit)

	faculty := domain.NewUser("user2", "f@example.com", "Kim", domain.RoleFaculty, domain.PlanFree, now)
	assert.False(t, fromDomainUser(faculty).DifficultyLevel.Valid)

	assert.Nil(t, fromDomainUser(nil))
}

// --- Tests for Repository Methods ---

func TestSQLXUserRepository_CreateUser(t *testing.T) {
	db, mock := setupTestDB(t)
	defer db.Close()
	repo := NewSQLXUserRepository(db)

	u := domain.NewUser("", "new@example.com", "New", domain.RoleStudent, domain.PlanFree, time.Now())

	mock.ExpectExec("INSERT INTO users").WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.CreateUser(context.Background(), u)
	assert.NoError(t, err)
	assert.NotEmpty(t, u.ID, "id is generated when missing")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSQLXUserRepository_CreateUser_Duplicate(t *testing.T) {
	db, mock := setupTestDB(t)
	defer db.Close()
	repo := NewSQLXUserRepository(db)

	mock.ExpectExec("INSERT INTO users").WillReturnError(errors.New("ORA-00001: unique constraint (EXAM.USERS_EMAIL_UK) violated"))

	err := repo.CreateUser(context.Background(), domain.NewUser("u1", "dup@example.com", "", domain.RoleFaculty, domain.PlanFree, time.Now()))
	assert.True(t, domain.IsCode(err, domain.CodeConflict))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSQLXUserRepository_GetUserByID(t *testing.T) {
	db, mock := setupTestDB(t)
	defer db.Close()
	repo := NewSQLXUserRepository(db)
	now := time.Now().Truncate(time.Second)

	t.Run("Found", func(t *testing.T) {
		rows := sqlmock.NewRows(userRowColumns).AddRow(
			"user1", "a@example.com", "Alice", "student", "free",
			int64(1024), int64(10485760), 2, 5,
			1, 20, now, int64(4),
			"easy", 0, 1,
			now, int64(9), now, now,
		)
		mock.ExpectQuery("SELECT (.+) FROM users WHERE id = :1").WithArgs("user1").WillReturnRows(rows)

		u, err := repo.GetUserByID(context.Background(), "user1")
		require.NoError(t, err)
		require.NotNil(t, u)
		assert.Equal(t, int64(1024), u.Quota.StorageUsed)
		assert.Equal(t, 2, u.Quota.UploadsToday)
		assert.Equal(t, int64(4), u.Quota.Version)
		require.NotNil(t, u.Difficulty)
		assert.Equal(t, domain.DifficultyEasy, u.Difficulty.CurrentLevel)
		assert.Equal(t, 1, u.Difficulty.ConsecutiveIncorrect)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("NotFound", func(t *testing.T) {
		mock.ExpectQuery("SELECT (.+) FROM users WHERE id = :1").WithArgs("missing").WillReturnError(sql.ErrNoRows)

		u, err := repo.GetUserByID(context.Background(), "missing")
		assert.NoError(t, err)
		assert.Nil(t, u)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestSQLXUserRepository_UpdateQuota(t *testing.T) {
	db, mock := setupTestDB(t)
	defer db.Close()
	repo := NewSQLXUserRepository(db)
	quota := domain.QuotaState{UploadsToday: 1, UploadsLimit: 5, StorageUsed: 10, StorageLimit: 100, Version: 2}

	t.Run("Success", func(t *testing.T) {
		mock.ExpectExec("UPDATE users SET (.+) quota_version = quota_version \\+ 1").
			WithArgs(quota.StorageUsed, quota.StorageLimit, quota.UploadsToday, quota.UploadsLimit,
				quota.GenerationsToday, quota.GenerationsLimit, quota.LastResetDate, sqlmock.AnyArg(),
				"user1", quota.Version).
			WillReturnResult(sqlmock.NewResult(0, 1))

		assert.NoError(t, repo.UpdateQuota(context.Background(), "user1", quota))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("StaleVersion", func(t *testing.T) {
		mock.ExpectExec("UPDATE users SET").WillReturnResult(sqlmock.NewResult(0, 0))

		err := repo.UpdateQuota(context.Background(), "user1", quota)
		assert.ErrorIs(t, err, domain.ErrConflict)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestSQLXUserRepository_UpdateDifficulty(t *testing.T) {
	db, mock := setupTestDB(t)
	defer db.Close()
	repo := NewSQLXUserRepository(db)
	state := domain.DifficultyState{CurrentLevel: domain.DifficultyHard, ConsecutiveCorrect: 1, Version: 5}

	mock.ExpectExec("UPDATE users SET (.+) difficulty_version = difficulty_version \\+ 1").
		WithArgs("hard", 1, 0, sqlmock.AnyArg(), sqlmock.AnyArg(), "user1", int64(5)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	assert.NoError(t, repo.UpdateDifficulty(context.Background(), "user1", state))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTransactionManager_Rollback(t *testing.T) {
	db, mock := setupTestDB(t)
	defer db.Close()
	tm := NewTransactionManagerAdapter(db)
	repo := NewSQLXUserRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE users SET").WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectRollback()

	err := tm.WithTransaction(context.Background(), func(ctx context.Context) error {
		return repo.UpdateQuota(ctx, "user1", domain.QuotaState{})
	})
	assert.ErrorIs(t, err, domain.ErrConflict)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTransactionManager_CommitAndJoin(t *testing.T) {
	db, mock := setupTestDB(t)
	defer db.Close()
	tm := NewTransactionManagerAdapter(db)

	mock.ExpectBegin()
	mock.ExpectCommit()

	calls := 0
	err := tm.WithTransaction(context.Background(), func(ctx context.Context) error {
		return tm.WithTransaction(ctx, func(ctx context.Context) error {
			calls++
			return nil
		})
	})
	assert.NoError(t, err)
	assert.Equal(t, 1, calls)
	assert.NoError(t, mock.ExpectationsWereMet())
}
