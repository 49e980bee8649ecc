package quizgen_test

import (
	"context"
	"errors"
	"testing"

	"exam-byte/internal/adapter/quizgen"
	"exam-byte/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tmc/langchaingo/llms"
)

type fakeModel struct {
	content string
	err     error
}

func (f *fakeModel) GenerateContent(_ context.Context, _ []llms.MessageContent, _ ...llms.CallOption) (*llms.ContentResponse, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &llms.ContentResponse{Choices: []*llms.ContentChoice{{Content: f.content}}}, nil
}

func (f *fakeModel) Call(ctx context.Context, prompt string, options ...llms.CallOption) (string, error) {
	return llms.GenerateFromSinglePrompt(ctx, f, prompt, options...)
}

const sampleResponse = `{
  "keyConcepts": ["photosynthesis", "chlorophyll"],
  "questions": [
    {"type": "mcq", "difficulty": "easy", "question": "Where does photosynthesis happen?",
     "options": ["A) Chloroplast", "B) Nucleus", "C) Ribosome", "D) Golgi"], "correctAnswer": "A",
     "hint": "green", "explanation": "Chloroplasts hold chlorophyll."},
    {"type": "truefalse", "difficulty": "extreme", "question": "Plants release oxygen.", "correctAnswer": "True"},
    {"type": "essay", "difficulty": "easy", "question": "Discuss.", "correctAnswer": "..."},
    {"type": "mcq", "difficulty": "easy", "question": "", "options": ["A", "B"], "correctAnswer": "A"}
  ]
}`

func TestLLMQuestionGenerator_Generate(t *testing.T) {
	gen := quizgen.NewLLMQuestionGenerator(&fakeModel{content: sampleResponse})

	got, err := gen.Generate(context.Background(), domain.GenerationRequest{
		SourceText: "Photosynthesis converts light into chemical energy.",
		Subject:    "biology",
		Difficulty: domain.DifficultyMedium,
		Count:      4,
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"photosynthesis", "chlorophyll"}, got.KeyConcepts)
	require.Len(t, got.Questions, 2, "invalid entries are dropped")

	first := got.Questions[0]
	assert.Equal(t, domain.QuestionMCQ, first.Type)
	assert.Equal(t, domain.DifficultyEasy, first.Difficulty)
	assert.Equal(t, "biology", first.Subject)
	assert.Len(t, first.Options, 4)
	assert.Empty(t, first.ID)

	// unknown difficulty falls back to the requested one
	assert.Equal(t, domain.DifficultyMedium, got.Questions[1].Difficulty)
}

func TestLLMQuestionGenerator_Generate_Errors(t *testing.T) {
	req := domain.GenerationRequest{SourceText: "content", Count: 1}

	_, err := quizgen.NewLLMQuestionGenerator(&fakeModel{err: errors.New("timeout")}).Generate(context.Background(), req)
	assert.Error(t, err)

	_, err = quizgen.NewLLMQuestionGenerator(&fakeModel{content: "sorry"}).Generate(context.Background(), req)
	assert.Error(t, err)

	_, err = quizgen.NewLLMQuestionGenerator(&fakeModel{content: sampleResponse}).Generate(context.Background(), domain.GenerationRequest{Count: 1})
	assert.Error(t, err)
}
