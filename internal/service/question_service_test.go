package service

import (
	"context"
	"errors"
	"testing"

	"exam-byte/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// recordingStats counts invalidations.
type recordingStats struct {
	invalidated []string
}

func (r *recordingStats) GetStatistics(context.Context, string) (*domain.Statistics, error) {
	return &domain.Statistics{}, nil
}

func (r *recordingStats) Invalidate(_ context.Context, userID string) {
	r.invalidated = append(r.invalidated, userID)
}

func newQuestionFixture() (*questionService, *memQuestionRepo, *recordingStats) {
	hard := mcq("q2", "u1", "B")
	hard.Difficulty = domain.DifficultyHard
	hard.Subject = "Math"
	repo := newMemQuestionRepo(mcq("q1", "u1", "A"), hard, mcq("q3", "u2", "C"))
	stats := &recordingStats{}
	return NewQuestionService(repo, stats).(*questionService), repo, stats
}

func TestQuestionService_List(t *testing.T) {
	svc, _, _ := newQuestionFixture()
	ctx := context.Background()

	all, err := svc.List(ctx, "u1", domain.QuestionFilter{})
	require.NoError(t, err)
	assert.Len(t, all, 2)

	hard, err := svc.List(ctx, "u1", domain.QuestionFilter{Difficulty: domain.DifficultyHard, Subject: "math"})
	require.NoError(t, err)
	require.Len(t, hard, 1)
	assert.Equal(t, "q2", hard[0].ID)

	none, err := svc.List(ctx, "u1", domain.QuestionFilter{Type: domain.QuestionShort})
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestQuestionService_List_RepositoryError(t *testing.T) {
	repo := new(MockQuestionRepository)
	repo.On("ListQuestions", mock.Anything, "u1", domain.QuestionFilter{}).Return(nil, errors.New("db down"))

	_, err := NewQuestionService(repo, nil).List(context.Background(), "u1", domain.QuestionFilter{})
	assert.True(t, domain.IsCode(err, domain.CodeInternal))
}

func TestQuestionService_Update(t *testing.T) {
	svc, repo, stats := newQuestionFixture()
	ctx := context.Background()

	text := "Pick the right one"
	hint := "not C"
	updated, err := svc.Update(ctx, "u1", "q1", QuestionUpdate{Question: &text, Hint: &hint})
	require.NoError(t, err)
	assert.Equal(t, "Pick the right one", updated.Question)
	assert.Equal(t, "not C", updated.Hint)
	assert.Equal(t, "A", updated.CorrectAnswer)
	assert.Equal(t, "Pick the right one", repo.questions["q1"].Question)
	assert.Equal(t, []string{"u1"}, stats.invalidated)

	t.Run("switching away from mcq drops options", func(t *testing.T) {
		short := domain.QuestionShort
		answer := "Mitochondria"
		got, err := svc.Update(ctx, "u1", "q2", QuestionUpdate{Type: &short, CorrectAnswer: &answer})
		require.NoError(t, err)
		assert.Empty(t, got.Options)
	})

	t.Run("invalid result leaves the stored question alone", func(t *testing.T) {
		empty := ""
		_, err := svc.Update(ctx, "u1", "q1", QuestionUpdate{CorrectAnswer: &empty})
		assert.True(t, domain.IsCode(err, domain.CodeInvalidInput))
		assert.Equal(t, "A", repo.questions["q1"].CorrectAnswer)
	})

	t.Run("mcq needs two options", func(t *testing.T) {
		one := []string{"A"}
		_, err := svc.Update(ctx, "u1", "q1", QuestionUpdate{Options: &one})
		assert.True(t, domain.IsCode(err, domain.CodeInvalidInput))
		assert.Len(t, repo.questions["q1"].Options, 3)
	})

	t.Run("not owner", func(t *testing.T) {
		_, err := svc.Update(ctx, "u1", "q3", QuestionUpdate{Question: &text})
		assert.True(t, domain.IsCode(err, domain.CodeUnauthorized))
	})

	t.Run("missing", func(t *testing.T) {
		_, err := svc.Update(ctx, "u1", "nope", QuestionUpdate{Question: &text})
		assert.True(t, domain.IsCode(err, domain.CodeNotFound))
	})
}

func TestQuestionService_Update_RepositoryError(t *testing.T) {
	repo := new(MockQuestionRepository)
	repo.On("GetQuestionsByIDs", mock.Anything, []string{"q1"}).Return([]*domain.Question{mcq("q1", "u1", "A")}, nil)
	repo.On("UpdateQuestion", mock.Anything, mock.Anything).Return(errors.New("ORA-03113"))

	hint := "h"
	_, err := NewQuestionService(repo, nil).Update(context.Background(), "u1", "q1", QuestionUpdate{Hint: &hint})
	assert.True(t, domain.IsCode(err, domain.CodeInternal))
}

func TestQuestionService_Delete(t *testing.T) {
	svc, repo, stats := newQuestionFixture()
	ctx := context.Background()

	assert.True(t, domain.IsCode(svc.Delete(ctx, "u1", "q3"), domain.CodeUnauthorized))
	assert.Contains(t, repo.questions, "q3")

	require.NoError(t, svc.Delete(ctx, "u1", "q1"))
	assert.NotContains(t, repo.questions, "q1")
	assert.Equal(t, []string{"u1"}, stats.invalidated)

	assert.True(t, domain.IsCode(svc.Delete(ctx, "u1", "q1"), domain.CodeNotFound))
}
