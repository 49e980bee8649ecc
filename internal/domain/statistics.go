package domain

import (
	"sort"
	"time"

	"exam-byte/internal/util"
)

// RecentQuizLimit is how many completed sessions the recent view keeps.
const RecentQuizLimit = 5

// PerformanceBucket is one row of a breakdown. QuizCount is only filled for
// the subject breakdown.
type PerformanceBucket struct {
	Total      int
	Correct    int
	Percentage int
	QuizCount  int
}

// SessionSummary is the projection of a completed session used in reports.
type SessionSummary struct {
	ID                    string
	Title                 string
	Subject               string
	Difficulty            string
	Score                 int
	TotalQuestions        int
	Percentage            int
	TotalTimeSpentSeconds int
	CompletedAt           time.Time
}

// Statistics is the aggregate performance view of one user.
type Statistics struct {
	TotalQuizzes            int
	TotalQuestions          int
	TotalCorrect            int
	AverageScore            float64
	AveragePercentage       int
	TotalTimeSpentSeconds   int
	PerformanceByDifficulty map[DifficultyLevel]PerformanceBucket
	PerformanceBySubject    map[string]PerformanceBucket
	RecentQuizzes           []SessionSummary
}

// Aggregate builds the statistics of the completed sessions in the input.
// Sessions in any other status are ignored. questionsByID resolves item
// difficulty; items whose question is unknown are left out of the difficulty
// breakdown.
func Aggregate(sessions []*QuizSession, questionsByID map[string]*Question) Statistics {
	stats := Statistics{
		PerformanceByDifficulty: make(map[DifficultyLevel]PerformanceBucket, len(DifficultyLevels)),
		PerformanceBySubject:    make(map[string]PerformanceBucket),
		RecentQuizzes:           []SessionSummary{},
	}
	for _, level := range DifficultyLevels {
		stats.PerformanceByDifficulty[level] = PerformanceBucket{}
	}

	completed := make([]*QuizSession, 0, len(sessions))
	for _, s := range sessions {
		if s == nil || s.Status != SessionCompleted {
			continue
		}
		completed = append(completed, s)

		stats.TotalQuizzes++
		stats.TotalQuestions += s.TotalQuestions
		stats.TotalCorrect += s.CorrectCount
		stats.TotalTimeSpentSeconds += s.TotalTimeSpentSeconds

		for _, item := range s.Items {
			q, ok := questionsByID[item.QuestionID]
			if !ok || q == nil {
				continue
			}
			bucket, tracked := stats.PerformanceByDifficulty[q.Difficulty]
			if !tracked {
				continue
			}
			bucket.Total++
			if item.IsCorrect == CorrectnessCorrect {
				bucket.Correct++
			}
			stats.PerformanceByDifficulty[q.Difficulty] = bucket
		}

		if s.Subject != "" {
			bucket := stats.PerformanceBySubject[s.Subject]
			bucket.Total += s.TotalQuestions
			bucket.Correct += s.CorrectCount
			bucket.QuizCount++
			stats.PerformanceBySubject[s.Subject] = bucket
		}
	}

	for level, bucket := range stats.PerformanceByDifficulty {
		bucket.Percentage = util.RoundPercent(bucket.Correct, bucket.Total)
		stats.PerformanceByDifficulty[level] = bucket
	}
	for subject, bucket := range stats.PerformanceBySubject {
		bucket.Percentage = util.RoundPercent(bucket.Correct, bucket.Total)
		stats.PerformanceBySubject[subject] = bucket
	}

	if stats.TotalQuizzes > 0 {
		stats.AverageScore = util.RoundTo2(float64(stats.TotalCorrect) / float64(stats.TotalQuizzes))
	}
	stats.AveragePercentage = util.RoundPercent(stats.TotalCorrect, stats.TotalQuestions)

	sort.SliceStable(completed, func(i, j int) bool {
		return completedAt(completed[i]).After(completedAt(completed[j]))
	})
	if len(completed) > RecentQuizLimit {
		completed = completed[:RecentQuizLimit]
	}
	for _, s := range completed {
		stats.RecentQuizzes = append(stats.RecentQuizzes, SessionSummary{
			ID:                    s.ID,
			Title:                 s.Title,
			Subject:               s.Subject,
			Difficulty:            s.Difficulty,
			Score:                 s.Score,
			TotalQuestions:        s.TotalQuestions,
			Percentage:            s.Percentage,
			TotalTimeSpentSeconds: s.TotalTimeSpentSeconds,
			CompletedAt:           completedAt(s),
		})
	}
	return stats
}

func completedAt(s *QuizSession) time.Time {
	if s.CompletedAt == nil {
		return time.Time{}
	}
	return *s.CompletedAt
}
