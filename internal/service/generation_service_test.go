package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"exam-byte/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type generationFixture struct {
	svc       GenerationService
	users     *memUserRepo
	questions *memQuestionRepo
	generator *MockQuestionGenerator
	tx        *passThroughTxManager
}

func newGenerationFixture(generationsToday, generationsLimit int) *generationFixture {
	users := newMemUserRepo(&domain.User{
		ID:   "u1",
		Role: domain.RoleFaculty,
		Quota: domain.QuotaState{
			StorageLimit:     1000,
			UploadsLimit:     2,
			GenerationsToday: generationsToday,
			GenerationsLimit: generationsLimit,
			LastResetDate:    quotaNow,
		},
	})
	quota := NewQuotaService(users).(*quotaService)
	quota.now = func() time.Time { return quotaNow }

	questions := newMemQuestionRepo()
	generator := new(MockQuestionGenerator)
	tx := &passThroughTxManager{}
	return &generationFixture{
		svc:       NewGenerationService(quota, generator, questions, tx, time.Second),
		users:     users,
		questions: questions,
		generator: generator,
		tx:        tx,
	}
}

func generationRequest() domain.GenerationRequest {
	return domain.GenerationRequest{
		SourceText: "TCP provides reliable, ordered delivery.",
		Subject:    "networks",
		Difficulty: domain.DifficultyMedium,
		Count:      3,
	}
}

func TestGenerationService_Generate(t *testing.T) {
	f := newGenerationFixture(0, 5)
	f.generator.On("Generate", mock.Anything, generationRequest()).Return(&domain.GeneratedQuestions{
		Questions: []*domain.Question{
			{Type: domain.QuestionTrueFalse, Difficulty: domain.DifficultyEasy, Question: "TCP is reliable.", CorrectAnswer: "true"},
			{Type: domain.QuestionMCQ, Difficulty: domain.DifficultyMedium, Question: "Which layer?", Options: []string{"Transport"}, CorrectAnswer: "Transport"},
			{Type: domain.QuestionShort, Difficulty: domain.DifficultyHard, Question: "Explain ordering.", CorrectAnswer: "Sequence numbers", Subject: "tcp"},
		},
		KeyConcepts: []string{"reliability", "ordering"},
	}, nil)

	result, err := f.svc.Generate(context.Background(), "u1", generationRequest())
	require.NoError(t, err)

	require.Len(t, result.Questions, 2)
	assert.Equal(t, 1, result.Skipped)
	assert.Equal(t, []string{"reliability", "ordering"}, result.KeyConcepts)
	assert.Equal(t, 1, result.Quota.GenerationsToday)
	assert.Equal(t, "u1", result.Questions[0].UserID)
	assert.Equal(t, "networks", result.Questions[0].Subject)
	assert.Equal(t, "tcp", result.Questions[1].Subject)
	assert.Len(t, f.questions.saved, 2)
	assert.Equal(t, 1, f.tx.Calls())
}

func TestGenerationService_GeneratorFailureStillCountsGeneration(t *testing.T) {
	f := newGenerationFixture(0, 5)
	f.generator.On("Generate", mock.Anything, mock.Anything).Return(nil, errors.New("model overloaded"))

	_, err := f.svc.Generate(context.Background(), "u1", generationRequest())
	require.Error(t, err)
	assert.True(t, domain.IsCode(err, domain.CodeExternalService))

	user, _ := f.users.GetUserByID(context.Background(), "u1")
	assert.Equal(t, 1, user.Quota.GenerationsToday)
	assert.Empty(t, f.questions.saved)
}

func TestGenerationService_NothingUsable(t *testing.T) {
	f := newGenerationFixture(0, 5)
	f.generator.On("Generate", mock.Anything, mock.Anything).Return(&domain.GeneratedQuestions{
		Questions: []*domain.Question{{Type: "essay", Question: "?", CorrectAnswer: "x"}, nil},
	}, nil)

	_, err := f.svc.Generate(context.Background(), "u1", generationRequest())
	require.Error(t, err)
	assert.True(t, domain.IsCode(err, domain.CodeExternalService))
	assert.Equal(t, 0, f.tx.Calls())
}

func TestGenerationService_QuotaExceeded(t *testing.T) {
	f := newGenerationFixture(5, 5)

	_, err := f.svc.Generate(context.Background(), "u1", generationRequest())
	require.Error(t, err)
	assert.True(t, domain.IsCode(err, domain.CodeQuotaExceeded))
	f.generator.AssertNotCalled(t, "Generate", mock.Anything, mock.Anything)
}

func TestGenerationService_InvalidRequest(t *testing.T) {
	f := newGenerationFixture(0, 5)

	noText := generationRequest()
	noText.SourceText = "  "
	_, err := f.svc.Generate(context.Background(), "u1", noText)
	assert.True(t, domain.IsCode(err, domain.CodeInvalidInput))

	tooMany := generationRequest()
	tooMany.Count = maxGenerateCount + 1
	_, err = f.svc.Generate(context.Background(), "u1", tooMany)
	assert.True(t, domain.IsCode(err, domain.CodeInvalidInput))

	user, _ := f.users.GetUserByID(context.Background(), "u1")
	assert.Equal(t, 0, user.Quota.GenerationsToday)
}
