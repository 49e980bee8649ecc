package models

import (
	"database/sql"
	"time"
)

// User is a row of USERS. Quota and difficulty columns live on the user row
// and each group carries its own version counter.
type User struct {
	ID                   string         `db:"ID"` // ULID
	Email                string         `db:"EMAIL"`
	Name                 sql.NullString `db:"NAME"`
	Role                 string         `db:"ROLE"`
	Plan                 string         `db:"PLAN"`
	StorageUsed          int64          `db:"STORAGE_USED"`
	StorageLimit         int64          `db:"STORAGE_LIMIT"`
	UploadsToday         int            `db:"UPLOADS_TODAY"`
	UploadsLimit         int            `db:"UPLOADS_LIMIT"`
	GenerationsToday     int            `db:"GENERATIONS_TODAY"`
	GenerationsLimit     int            `db:"GENERATIONS_LIMIT"`
	LastResetDate        time.Time      `db:"LAST_RESET_DATE"`
	QuotaVersion         int64          `db:"QUOTA_VERSION"`
	DifficultyLevel      sql.NullString `db:"DIFFICULTY_LEVEL"` // NULL for non-students
	ConsecutiveCorrect   int            `db:"CONSECUTIVE_CORRECT"`
	ConsecutiveIncorrect int            `db:"CONSECUTIVE_INCORRECT"`
	DifficultyUpdatedAt  sql.NullTime   `db:"DIFFICULTY_UPDATED_AT"`
	DifficultyVersion    int64          `db:"DIFFICULTY_VERSION"`
	CreatedAt            time.Time      `db:"CREATED_AT"`
	UpdatedAt            time.Time      `db:"UPDATED_AT"`
}

// Question is a row of QUESTIONS.
type Question struct {
	ID            string         `db:"ID"`
	UserID        string         `db:"USER_ID"`
	Type          string         `db:"QUESTION_TYPE"`
	Difficulty    string         `db:"DIFFICULTY"`
	Subject       sql.NullString `db:"SUBJECT"`
	Question      string         `db:"QUESTION"`
	Options       StringSlice    `db:"OPTIONS"` // JSON array, mcq only
	CorrectAnswer string         `db:"CORRECT_ANSWER"`
	Explanation   sql.NullString `db:"EXPLANATION"`
	Hint          sql.NullString `db:"HINT"`
	CreatedAt     time.Time      `db:"CREATED_AT"`
	UpdatedAt     time.Time      `db:"UPDATED_AT"`
}

// QuizSession is a row of QUIZ_SESSIONS.
type QuizSession struct {
	ID                    string         `db:"ID"`
	UserID                string         `db:"USER_ID"`
	Title                 sql.NullString `db:"TITLE"`
	Subject               sql.NullString `db:"SUBJECT"`
	Difficulty            string         `db:"DIFFICULTY"`
	TimeLimitMinutes      int            `db:"TIME_LIMIT_MINUTES"`
	ShuffleQuestions      int            `db:"SHUFFLE_QUESTIONS"` // NUMBER(1)
	ShuffleOptions        int            `db:"SHUFFLE_OPTIONS"`   // NUMBER(1)
	Status                string         `db:"STATUS"`
	TotalQuestions        int            `db:"TOTAL_QUESTIONS"`
	CorrectCount          int            `db:"CORRECT_COUNT"`
	Percentage            int            `db:"PERCENTAGE"`
	Score                 int            `db:"SCORE"`
	StartedAt             time.Time      `db:"STARTED_AT"`
	CompletedAt           sql.NullTime   `db:"COMPLETED_AT"`
	TotalTimeSpentSeconds int            `db:"TOTAL_TIME_SPENT_SECONDS"`
	Version               int64          `db:"VERSION"`
	CreatedAt             time.Time      `db:"CREATED_AT"`
	UpdatedAt             time.Time      `db:"UPDATED_AT"`
}

// QuizSessionItem is a row of QUIZ_SESSION_ITEMS, keyed by (SESSION_ID, POSITION).
type QuizSessionItem struct {
	SessionID        string         `db:"SESSION_ID"`
	Position         int            `db:"POSITION"`
	QuestionID       string         `db:"QUESTION_ID"`
	UserAnswer       sql.NullString `db:"USER_ANSWER"`
	IsCorrect        sql.NullInt64  `db:"IS_CORRECT"` // NULL while unknown, else 0/1
	TimeSpentSeconds int            `db:"TIME_SPENT_SECONDS"`
	AIScore          sql.NullInt64  `db:"AI_SCORE"`
	AIFeedback       sql.NullString `db:"AI_FEEDBACK"`
	AnsweredAt       sql.NullTime   `db:"ANSWERED_AT"`
}

// Document is a row of DOCUMENTS.
type Document struct {
	ID        string         `db:"ID"`
	UserID    string         `db:"USER_ID"`
	FileName  string         `db:"FILE_NAME"`
	FileType  string         `db:"FILE_TYPE"`
	Subject   sql.NullString `db:"SUBJECT"`
	SizeBytes int64          `db:"SIZE_BYTES"`
	CreatedAt time.Time      `db:"CREATED_AT"`
}
