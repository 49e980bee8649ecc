package quizgen

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"exam-byte/internal/adapter/llm"
	"exam-byte/internal/domain"
	"exam-byte/internal/logger"

	"github.com/tmc/langchaingo/llms"
	"go.uber.org/zap"
)

const generatorPrompt = `You are an expert educational content creator. Generate high-quality exam questions from the provided content.

Question formats:
- mcq: multiple choice with 4 options and one correct letter
- short: requires a brief written response
- truefalse: a statement that is either True or False
- application: a scenario-based or practical question

Requirements:
- Generate exactly %d questions
- Difficulty level: %s
- Question types to include: %s
- Provide a hint and an explanation for each question
- Extract the key concepts of the content

The "correctAnswer" field MUST contain:
- mcq: the letter only (A, B, C or D)
- short: a complete answer of 2-5 sentences
- truefalse: either "True" or "False"
- application: a comprehensive answer of 3-6 sentences

Respond with ONLY a JSON object in the following format:
{
  "keyConcepts": ["concept1", "concept2"],
  "questions": [
    {
      "type": "mcq",
      "difficulty": "%s",
      "question": "question text",
      "options": ["A) option1", "B) option2", "C) option3", "D) option4"],
      "correctAnswer": "A",
      "hint": "helpful hint",
      "explanation": "why this is the correct answer"
    }
  ]
}`

// LLMQuestionGenerator implements domain.QuestionGenerator with a chat model.
type LLMQuestionGenerator struct {
	model llms.Model
}

// NewLLMQuestionGenerator creates a new generator backed by model.
func NewLLMQuestionGenerator(model llms.Model) *LLMQuestionGenerator {
	return &LLMQuestionGenerator{model: model}
}

type generatedQuestion struct {
	Type          string   `json:"type"`
	Difficulty    string   `json:"difficulty"`
	Question      string   `json:"question"`
	Options       []string `json:"options"`
	CorrectAnswer string   `json:"correctAnswer"`
	Hint          string   `json:"hint"`
	Explanation   string   `json:"explanation"`
}

type generationResponse struct {
	KeyConcepts []string            `json:"keyConcepts"`
	Questions   []generatedQuestion `json:"questions"`
}

// Generate asks the model for questions. Entries that do not form a valid
// question are dropped.
func (g *LLMQuestionGenerator) Generate(ctx context.Context, req domain.GenerationRequest) (*domain.GeneratedQuestions, error) {
	l := logger.Get()

	if strings.TrimSpace(req.SourceText) == "" {
		return nil, fmt.Errorf("source text cannot be empty")
	}
	difficulty := req.Difficulty
	if difficulty == "" {
		difficulty = domain.DifficultyMedium
	}
	types := req.Types
	if len(types) == 0 {
		types = domain.QuestionTypes
	}
	typeNames := make([]string, len(types))
	for i, t := range types {
		typeNames[i] = string(t)
	}

	system := fmt.Sprintf(generatorPrompt, req.Count, difficulty, strings.Join(typeNames, ", "), difficulty)
	human := fmt.Sprintf("Based on the following content, generate %d exam questions at %s difficulty level:\n\n%s\n\nRemember to return ONLY valid JSON with no additional text.",
		req.Count, difficulty, req.SourceText)

	raw, err := llm.Chat(ctx, g.model, system, human, llms.WithTemperature(0.7))
	if err != nil {
		l.Error("LLM generation call failed", zap.Error(err))
		return nil, fmt.Errorf("generator call failed: %w", err)
	}

	extracted, err := llm.ExtractJSONObject(raw)
	if err != nil {
		return nil, err
	}

	var resp generationResponse
	if err := json.Unmarshal([]byte(extracted), &resp); err != nil {
		l.Error("Failed to unmarshal generator response", zap.Error(err))
		return nil, fmt.Errorf("failed to unmarshal generator JSON: %w", err)
	}

	out := &domain.GeneratedQuestions{KeyConcepts: resp.KeyConcepts}
	for _, gq := range resp.Questions {
		qType, _ := domain.ParseQuestionType(gq.Type)
		qDifficulty, ok := domain.ParseDifficulty(gq.Difficulty)
		if !ok {
			qDifficulty = difficulty
		}
		q := &domain.Question{
			Type:          qType,
			Difficulty:    qDifficulty,
			Subject:       req.Subject,
			Question:      strings.TrimSpace(gq.Question),
			Options:       gq.Options,
			CorrectAnswer: strings.TrimSpace(gq.CorrectAnswer),
			Explanation:   gq.Explanation,
			Hint:          gq.Hint,
		}
		if err := q.Validate(); err != nil {
			l.Warn("LLM generated incomplete question", zap.String("question", gq.Question), zap.Error(err))
			continue
		}
		out.Questions = append(out.Questions, q)
	}

	l.Info("Questions generated", zap.Int("requested", req.Count), zap.Int("accepted", len(out.Questions)))
	return out, nil
}
