package dto

import (
	"time"

	"exam-byte/internal/domain"
)

// PerformanceResponse is one row of a performance breakdown.
type PerformanceResponse struct {
	Total      int `json:"total"`
	Correct    int `json:"correct"`
	Percentage int `json:"percentage"`
	QuizCount  int `json:"quiz_count,omitempty"`
}

// RecentQuizResponse summarizes one completed session.
type RecentQuizResponse struct {
	ID                    string    `json:"id"`
	Title                 string    `json:"title,omitempty"`
	Subject               string    `json:"subject,omitempty"`
	Difficulty            string    `json:"difficulty"`
	Score                 int       `json:"score"`
	TotalQuestions        int       `json:"total_questions"`
	Percentage            int       `json:"percentage"`
	TotalTimeSpentSeconds int       `json:"total_time_spent_seconds"`
	CompletedAt           time.Time `json:"completed_at"`
}

// StatisticsResponse is the aggregate performance view of the caller.
// @Description User performance statistics
type StatisticsResponse struct {
	TotalQuizzes            int                            `json:"total_quizzes"`
	TotalQuestions          int                            `json:"total_questions"`
	TotalCorrect            int                            `json:"total_correct"`
	AverageScore            float64                        `json:"average_score"`
	AveragePercentage       int                            `json:"average_percentage"`
	TotalTimeSpentSeconds   int                            `json:"total_time_spent_seconds"`
	PerformanceByDifficulty map[string]PerformanceResponse `json:"performance_by_difficulty"`
	PerformanceBySubject    map[string]PerformanceResponse `json:"performance_by_subject"`
	RecentQuizzes           []RecentQuizResponse           `json:"recent_quizzes"`
}

func newPerformanceResponse(b domain.PerformanceBucket) PerformanceResponse {
	return PerformanceResponse{Total: b.Total, Correct: b.Correct, Percentage: b.Percentage, QuizCount: b.QuizCount}
}

// NewStatisticsResponse maps aggregated statistics to their API shape.
func NewStatisticsResponse(s *domain.Statistics) StatisticsResponse {
	resp := StatisticsResponse{
		TotalQuizzes:            s.TotalQuizzes,
		TotalQuestions:          s.TotalQuestions,
		TotalCorrect:            s.TotalCorrect,
		AverageScore:            s.AverageScore,
		AveragePercentage:       s.AveragePercentage,
		TotalTimeSpentSeconds:   s.TotalTimeSpentSeconds,
		PerformanceByDifficulty: make(map[string]PerformanceResponse, len(s.PerformanceByDifficulty)),
		PerformanceBySubject:    make(map[string]PerformanceResponse, len(s.PerformanceBySubject)),
		RecentQuizzes:           make([]RecentQuizResponse, 0, len(s.RecentQuizzes)),
	}
	for level, b := range s.PerformanceByDifficulty {
		resp.PerformanceByDifficulty[string(level)] = newPerformanceResponse(b)
	}
	for subject, b := range s.PerformanceBySubject {
		resp.PerformanceBySubject[subject] = newPerformanceResponse(b)
	}
	for _, r := range s.RecentQuizzes {
		resp.RecentQuizzes = append(resp.RecentQuizzes, RecentQuizResponse{
			ID:                    r.ID,
			Title:                 r.Title,
			Subject:               r.Subject,
			Difficulty:            r.Difficulty,
			Score:                 r.Score,
			TotalQuestions:        r.TotalQuestions,
			Percentage:            r.Percentage,
			TotalTimeSpentSeconds: r.TotalTimeSpentSeconds,
			CompletedAt:           r.CompletedAt,
		})
	}
	return resp
}

// DifficultyResponse is the adaptive difficulty of a student.
// @Description Adaptive difficulty state
type DifficultyResponse struct {
	CurrentLevel         string    `json:"current_level"`
	ConsecutiveCorrect   int       `json:"consecutive_correct"`
	ConsecutiveIncorrect int       `json:"consecutive_incorrect"`
	LastUpdated          time.Time `json:"last_updated"`
}

func NewDifficultyResponse(s *domain.DifficultyState) DifficultyResponse {
	return DifficultyResponse{
		CurrentLevel:         string(s.CurrentLevel),
		ConsecutiveCorrect:   s.ConsecutiveCorrect,
		ConsecutiveIncorrect: s.ConsecutiveIncorrect,
		LastUpdated:          s.LastUpdated,
	}
}

// QuotaResponse is the caller's quota after the day rollover.
// @Description Quota usage and limits
type QuotaResponse struct {
	StorageUsed      int64     `json:"storage_used"`
	StorageLimit     int64     `json:"storage_limit"`
	UploadsToday     int       `json:"uploads_today"`
	UploadsLimit     int       `json:"uploads_limit"`
	UploadsRemaining int       `json:"uploads_remaining"`
	GenerationsToday int       `json:"generations_today"`
	GenerationsLimit int       `json:"generations_limit"`
	LastResetDate    time.Time `json:"last_reset_date"`
}

func NewQuotaResponse(q *domain.QuotaState) QuotaResponse {
	return QuotaResponse{
		StorageUsed:      q.StorageUsed,
		StorageLimit:     q.StorageLimit,
		UploadsToday:     q.UploadsToday,
		UploadsLimit:     q.UploadsLimit,
		UploadsRemaining: domain.RemainingUploads(*q),
		GenerationsToday: q.GenerationsToday,
		GenerationsLimit: q.GenerationsLimit,
		LastResetDate:    q.LastResetDate,
	}
}
