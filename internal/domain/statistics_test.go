package domain

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func completedSession(id, subject string, correct, total int, completedAt time.Time, questionIDs ...string) *QuizSession {
	items := make([]SessionItem, total)
	for i := range items {
		items[i].IsCorrect = CorrectnessIncorrect
		if i < correct {
			items[i].IsCorrect = CorrectnessCorrect
		}
		if i < len(questionIDs) {
			items[i].QuestionID = questionIDs[i]
		}
		items[i].TimeSpentSeconds = 10
	}
	at := completedAt
	return &QuizSession{
		ID:                    id,
		Subject:               subject,
		Items:                 items,
		Status:                SessionCompleted,
		TotalQuestions:        total,
		CorrectCount:          correct,
		Score:                 correct,
		TotalTimeSpentSeconds: 10 * total,
		CompletedAt:           &at,
	}
}

func TestAggregate_Rounding(t *testing.T) {
	base := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	sessions := []*QuizSession{
		completedSession("a", "math", 3, 4, base),
		completedSession("b", "math", 1, 2, base.Add(time.Hour)),
	}

	stats := Aggregate(sessions, nil)

	assert.Equal(t, 2, stats.TotalQuizzes)
	assert.Equal(t, 6, stats.TotalQuestions)
	assert.Equal(t, 4, stats.TotalCorrect)
	assert.Equal(t, 67, stats.AveragePercentage)
	assert.Equal(t, 2.0, stats.AverageScore)
	assert.Equal(t, 60, stats.TotalTimeSpentSeconds)
	assert.Equal(t, PerformanceBucket{Total: 6, Correct: 4, Percentage: 67, QuizCount: 2}, stats.PerformanceBySubject["math"])
}

func TestAggregate_IgnoresNonCompleted(t *testing.T) {
	done := completedSession("a", "", 1, 1, time.Now())
	open := &QuizSession{ID: "b", Status: SessionInProgress, TotalQuestions: 3}
	gone := &QuizSession{ID: "c", Status: SessionAbandoned, TotalQuestions: 2}

	stats := Aggregate([]*QuizSession{done, open, gone, nil}, nil)

	assert.Equal(t, 1, stats.TotalQuizzes)
	assert.Equal(t, 1, stats.TotalQuestions)
	assert.Empty(t, stats.PerformanceBySubject, "sessions without a subject are excluded")
}

func TestAggregate_Empty(t *testing.T) {
	stats := Aggregate(nil, nil)
	assert.Zero(t, stats.AveragePercentage)
	assert.Zero(t, stats.AverageScore)
	assert.Len(t, stats.PerformanceByDifficulty, 3)
	assert.NotNil(t, stats.RecentQuizzes)
}

func TestAggregate_ByQuestionDifficulty(t *testing.T) {
	questions := map[string]*Question{
		"q1": {ID: "q1", Difficulty: DifficultyEasy},
		"q2": {ID: "q2", Difficulty: DifficultyHard},
		"q3": {ID: "q3", Difficulty: DifficultyHard},
	}
	// the session is nominally "easy" but item difficulty comes from questions
	s := completedSession("a", "chem", 2, 3, time.Now(), "q1", "q2", "q3")
	s.Difficulty = "easy"

	stats := Aggregate([]*QuizSession{s}, questions)

	assert.Equal(t, PerformanceBucket{Total: 1, Correct: 1, Percentage: 100}, stats.PerformanceByDifficulty[DifficultyEasy])
	assert.Equal(t, PerformanceBucket{Total: 2, Correct: 1, Percentage: 50}, stats.PerformanceByDifficulty[DifficultyHard])
	assert.Equal(t, PerformanceBucket{}, stats.PerformanceByDifficulty[DifficultyMedium])
}

func TestAggregate_RecentQuizzes(t *testing.T) {
	base := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	var sessions []*QuizSession
	for i := 0; i < 7; i++ {
		sessions = append(sessions, completedSession(fmt.Sprintf("s%d", i), "", 1, 1, base.Add(time.Duration(i)*time.Hour)))
	}

	stats := Aggregate(sessions, nil)

	assert.Len(t, stats.RecentQuizzes, RecentQuizLimit)
	assert.Equal(t, "s6", stats.RecentQuizzes[0].ID)
	assert.Equal(t, "s2", stats.RecentQuizzes[4].ID)
}
