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

const userColumns = `ID, EMAIL, NAME, ROLE, PLAN,
	STORAGE_USED, STORAGE_LIMIT, UPLOADS_TODAY, UPLOADS_LIMIT,
	GENERATIONS_TODAY, GENERATIONS_LIMIT, LAST_RESET_DATE, QUOTA_VERSION,
	DIFFICULTY_LEVEL, CONSECUTIVE_CORRECT, CONSECUTIVE_INCORRECT,
	DIFFICULTY_UPDATED_AT, DIFFICULTY_VERSION, CREATED_AT, UPDATED_AT`

// sqlxUserRepository implements domain.UserRepository using sqlx.
type sqlxUserRepository struct {
	db *sqlx.DB
}

// NewSQLXUserRepository creates a new instance of sqlxUserRepository.
func NewSQLXUserRepository(db *sqlx.DB) domain.UserRepository {
	return &sqlxUserRepository{db: db}
}

func toDomainUser(m *models.User) *domain.User {
	if m == nil {
		return nil
	}
	u := &domain.User{
		ID:    m.ID,
		Email: m.Email,
		Name:  m.Name.String,
		Role:  domain.Role(m.Role),
		Plan:  domain.Plan(m.Plan),
		Quota: domain.QuotaState{
			StorageUsed:      m.StorageUsed,
			StorageLimit:     m.StorageLimit,
			UploadsToday:     m.UploadsToday,
			UploadsLimit:     m.UploadsLimit,
			GenerationsToday: m.GenerationsToday,
			GenerationsLimit: m.GenerationsLimit,
			LastResetDate:    m.LastResetDate,
			Version:          m.QuotaVersion,
		},
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
	if m.DifficultyLevel.Valid {
		u.Difficulty = &domain.DifficultyState{
			CurrentLevel:         domain.DifficultyLevel(m.DifficultyLevel.String),
			ConsecutiveCorrect:   m.ConsecutiveCorrect,
			ConsecutiveIncorrect: m.ConsecutiveIncorrect,
			LastUpdated:          m.DifficultyUpdatedAt.Time,
			Version:              m.DifficultyVersion,
		}
	}
	return u
}

func fromDomainUser(u *domain.User) *models.User {
	if u == nil {
		return nil
	}
	m := &models.User{
		ID:               u.ID,
		Email:            u.Email,
		Name:             util.StringToNullString(u.Name),
		Role:             string(u.Role),
		Plan:             string(u.Plan),
		StorageUsed:      u.Quota.StorageUsed,
		StorageLimit:     u.Quota.StorageLimit,
		UploadsToday:     u.Quota.UploadsToday,
		UploadsLimit:     u.Quota.UploadsLimit,
		GenerationsToday: u.Quota.GenerationsToday,
		GenerationsLimit: u.Quota.GenerationsLimit,
		LastResetDate:    u.Quota.LastResetDate,
		QuotaVersion:     u.Quota.Version,
		CreatedAt:        u.CreatedAt,
		UpdatedAt:        u.UpdatedAt,
	}
	if d := u.Difficulty; d != nil {
		m.DifficultyLevel = util.StringToNullString(string(d.CurrentLevel))
		m.ConsecutiveCorrect = d.ConsecutiveCorrect
		m.ConsecutiveIncorrect = d.ConsecutiveIncorrect
		m.DifficultyUpdatedAt = util.TimeToNullTime(d.LastUpdated)
		m.DifficultyVersion = d.Version
	}
	return m
}

// CreateUser inserts a new user into the database.
func (r *sqlxUserRepository) CreateUser(ctx context.Context, user *domain.User) error {
	m := fromDomainUser(user)
	if m == nil {
		return fmt.Errorf("cannot create nil user")
	}
	if m.ID == "" {
		m.ID = util.NewULID()
		user.ID = m.ID
	}

	query := `INSERT INTO users (` + userColumns + `)
	VALUES (:1, :2, :3, :4, :5, :6, :7, :8, :9, :10, :11, :12, :13, :14, :15, :16, :17, :18, :19, :20)`

	_, err := GetExecutor(ctx, r.db).ExecContext(ctx, query,
		m.ID, m.Email, m.Name, m.Role, m.Plan,
		m.StorageUsed, m.StorageLimit, m.UploadsToday, m.UploadsLimit,
		m.GenerationsToday, m.GenerationsLimit, m.LastResetDate, m.QuotaVersion,
		m.DifficultyLevel, m.ConsecutiveCorrect, m.ConsecutiveIncorrect,
		m.DifficultyUpdatedAt, m.DifficultyVersion, m.CreatedAt, m.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.NewConflictError("user already exists", err)
		}
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

// GetUserByID retrieves a user by their internal ID. Returns nil, nil if absent.
func (r *sqlxUserRepository) GetUserByID(ctx context.Context, userID string) (*domain.User, error) {
	var m models.User
	query := `SELECT ` + userColumns + ` FROM users WHERE id = :1`

	if err := GetExecutor(ctx, r.db).GetContext(ctx, &m, query, userID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get user by id: %w", err)
	}
	return toDomainUser(&m), nil
}

// UpdateQuota writes the quota columns if QUOTA_VERSION still equals
// quota.Version.
func (r *sqlxUserRepository) UpdateQuota(ctx context.Context, userID string, quota domain.QuotaState) error {
	query := `UPDATE users SET
		storage_used = :1,
		storage_limit = :2,
		uploads_today = :3,
		uploads_limit = :4,
		generations_today = :5,
		generations_limit = :6,
		last_reset_date = :7,
		quota_version = quota_version + 1,
		updated_at = :8
	WHERE id = :9 AND quota_version = :10`

	result, err := GetExecutor(ctx, r.db).ExecContext(ctx, query,
		quota.StorageUsed, quota.StorageLimit,
		quota.UploadsToday, quota.UploadsLimit,
		quota.GenerationsToday, quota.GenerationsLimit,
		quota.LastResetDate, time.Now(),
		userID, quota.Version,
	)
	if err != nil {
		return fmt.Errorf("failed to update quota: %w", err)
	}
	return checkVersionedUpdate(result)
}

// UpdateDifficulty writes the difficulty columns if DIFFICULTY_VERSION still
// equals state.Version.
func (r *sqlxUserRepository) UpdateDifficulty(ctx context.Context, userID string, state domain.DifficultyState) error {
	query := `UPDATE users SET
		difficulty_level = :1,
		consecutive_correct = :2,
		consecutive_incorrect = :3,
		difficulty_updated_at = :4,
		difficulty_version = difficulty_version + 1,
		updated_at = :5
	WHERE id = :6 AND difficulty_version = :7`

	result, err := GetExecutor(ctx, r.db).ExecContext(ctx, query,
		string(state.CurrentLevel), state.ConsecutiveCorrect, state.ConsecutiveIncorrect,
		state.LastUpdated, time.Now(),
		userID, state.Version,
	)
	if err != nil {
		return fmt.Errorf("failed to update difficulty: %w", err)
	}
	return checkVersionedUpdate(result)
}

func checkVersionedUpdate(result sql.Result) error {
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return domain.ErrConflict
	}
	return nil
}
