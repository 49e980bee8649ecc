package dto

import (
	"time"

	"exam-byte/internal/domain"
)

// SessionOptionsRequest carries presentation settings shared by both create calls.
type SessionOptionsRequest struct {
	Title            string `json:"title,omitempty"`
	Subject          string `json:"subject,omitempty"`
	Difficulty       string `json:"difficulty,omitempty"`
	TimeLimitMinutes int    `json:"time_limit_minutes,omitempty"`
	ShuffleQuestions bool   `json:"shuffle_questions"`
	ShuffleOptions   bool   `json:"shuffle_options"`
}

func (r SessionOptionsRequest) ToDomain() domain.SessionOptions {
	return domain.SessionOptions{
		Title:            r.Title,
		Subject:          r.Subject,
		Difficulty:       r.Difficulty,
		TimeLimitMinutes: r.TimeLimitMinutes,
		ShuffleQuestions: r.ShuffleQuestions,
		ShuffleOptions:   r.ShuffleOptions,
	}
}

// CreateQuizRequest represents the request body for creating a quiz from explicit questions.
// @Description Request body for creating a quiz session
type CreateQuizRequest struct {
	QuestionIDs []string `json:"question_ids"`
	SessionOptionsRequest
}

// CreateRandomQuizRequest samples questions from the caller's own pool.
// @Description Request body for creating a random quiz session
type CreateRandomQuizRequest struct {
	Count            int    `json:"count"`
	FilterDifficulty string `json:"filter_difficulty,omitempty"`
	FilterSubject    string `json:"filter_subject,omitempty"`
	QuestionType     string `json:"question_type,omitempty"`
	SessionOptionsRequest
}

// SubmitAnswerRequest represents the request body for answering one question.
// @Description Request body for submitting an answer
type SubmitAnswerRequest struct {
	Index            int    `json:"index"`
	Answer           string `json:"answer"`
	TimeSpentSeconds int    `json:"time_spent_seconds"`
}

// SessionItemResponse is one question slot. IsCorrect is null until graded.
type SessionItemResponse struct {
	Index            int        `json:"index"`
	QuestionID       string     `json:"question_id"`
	UserAnswer       string     `json:"user_answer,omitempty"`
	IsCorrect        *bool      `json:"is_correct"`
	TimeSpentSeconds int        `json:"time_spent_seconds"`
	AIScore          *int       `json:"ai_score,omitempty"`
	AIFeedback       string     `json:"ai_feedback,omitempty"`
	AnsweredAt       *time.Time `json:"answered_at,omitempty"`
}

// QuizSessionResponse represents a quiz session.
// @Description Quiz session with its items
type QuizSessionResponse struct {
	ID                    string                `json:"id"`
	Title                 string                `json:"title,omitempty"`
	Subject               string                `json:"subject,omitempty"`
	Difficulty            string                `json:"difficulty"`
	TimeLimitMinutes      int                   `json:"time_limit_minutes,omitempty"`
	ShuffleOptions        bool                  `json:"shuffle_options"`
	Status                string                `json:"status"`
	TotalQuestions        int                   `json:"total_questions"`
	CorrectCount          int                   `json:"correct_count"`
	Percentage            int                   `json:"percentage"`
	Score                 int                   `json:"score"`
	StartedAt             time.Time             `json:"started_at"`
	CompletedAt           *time.Time            `json:"completed_at,omitempty"`
	TotalTimeSpentSeconds int                   `json:"total_time_spent_seconds"`
	Items                 []SessionItemResponse `json:"items"`
}

// NewQuizSessionResponse maps a domain session to its API shape.
func NewQuizSessionResponse(s *domain.QuizSession) QuizSessionResponse {
	items := make([]SessionItemResponse, len(s.Items))
	for i, item := range s.Items {
		items[i] = SessionItemResponse{
			Index:            i,
			QuestionID:       item.QuestionID,
			UserAnswer:       item.UserAnswer,
			IsCorrect:        item.IsCorrect.Bool(),
			TimeSpentSeconds: item.TimeSpentSeconds,
			AIScore:          item.AIScore,
			AIFeedback:       item.AIFeedback,
			AnsweredAt:       item.AnsweredAt,
		}
	}
	return QuizSessionResponse{
		ID:                    s.ID,
		Title:                 s.Title,
		Subject:               s.Subject,
		Difficulty:            s.Difficulty,
		TimeLimitMinutes:      s.TimeLimitMinutes,
		ShuffleOptions:        s.ShuffleOptions,
		Status:                string(s.Status),
		TotalQuestions:        s.TotalQuestions,
		CorrectCount:          s.CorrectCount,
		Percentage:            s.Percentage,
		Score:                 s.Score,
		StartedAt:             s.StartedAt,
		CompletedAt:           s.CompletedAt,
		TotalTimeSpentSeconds: s.TotalTimeSpentSeconds,
		Items:                 items,
	}
}

// QuizSessionListResponse wraps a list of sessions.
type QuizSessionListResponse struct {
	Sessions []QuizSessionResponse `json:"sessions"`
}

// SubmitAnswerResponse is the immediate feedback for one answer.
// @Description Result of submitting an answer
type SubmitAnswerResponse struct {
	Index             int    `json:"index"`
	IsCorrect         bool   `json:"is_correct"`
	Score             *int   `json:"score,omitempty"`
	Feedback          string `json:"feedback,omitempty"`
	Fallback          bool   `json:"fallback"`
	CorrectAnswer     string `json:"correct_answer"`
	Explanation       string `json:"explanation,omitempty"`
	DifficultyUpdated bool   `json:"difficulty_updated"`
}
