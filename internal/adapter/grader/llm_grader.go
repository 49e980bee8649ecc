package grader

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

const systemPrompt = `You are an expert exam grader. Decide whether a student's answer is correct by comparing it to the reference answer.

Rules for evaluation:
- Accept semantically correct answers even if worded differently
- Give partial credit for partially correct answers
- Be lenient with minor spelling or grammatical errors
- Focus on the core concepts and understanding

Respond with ONLY a JSON object in the following format:
{
  "isCorrect": true,
  "score": 0,
  "feedback": "brief explanation of the grading decision"
}

Score guidelines:
- 90-100: fully correct answer with all key points
- 70-89: mostly correct with minor omissions
- 50-69: partially correct, missing some key points
- 30-49: some correct elements but significant gaps
- 0-29: incorrect or irrelevant answer

An answer is correct (isCorrect: true) if score >= %d.`

// LLMGrader implements domain.Grader on top of a chat model.
type LLMGrader struct {
	model llms.Model
}

// NewLLMGrader creates a new grader backed by model.
func NewLLMGrader(model llms.Model) *LLMGrader {
	return &LLMGrader{model: model}
}

type gradeResponse struct {
	IsCorrect bool     `json:"isCorrect"`
	Score     *float64 `json:"score"`
	Feedback  string   `json:"feedback"`
}

// Grade asks the model for a verdict. Any transport or parsing problem is
// returned as an error; the caller decides how to recover.
func (g *LLMGrader) Grade(ctx context.Context, req domain.GradeRequest) (*domain.GradeResult, error) {
	l := logger.Get()

	var b strings.Builder
	fmt.Fprintf(&b, "Question: %s\n\nReference Answer: %s\n\n", req.Question, req.ReferenceAnswer)
	if req.Explanation != "" {
		fmt.Fprintf(&b, "Additional Context: %s\n\n", req.Explanation)
	}
	fmt.Fprintf(&b, "Student's Answer: %s\n\nEvaluate the student's answer and return ONLY valid JSON.", req.UserAnswer)

	raw, err := llm.Chat(ctx, g.model, fmt.Sprintf(systemPrompt, domain.PassMark), b.String(), llms.WithTemperature(0.1))
	if err != nil {
		l.Error("LLM grading call failed", zap.Error(err))
		return nil, fmt.Errorf("grader call failed: %w", err)
	}
	l.Debug("Raw grader response received", zap.String("raw_response", raw))

	extracted, err := llm.ExtractJSONObject(raw)
	if err != nil {
		return nil, err
	}

	var resp gradeResponse
	if err := json.Unmarshal([]byte(extracted), &resp); err != nil {
		l.Error("Failed to unmarshal grader response", zap.Error(err), zap.String("json", extracted))
		return nil, fmt.Errorf("failed to unmarshal grader JSON: %w", err)
	}
	if resp.Score == nil {
		return nil, fmt.Errorf("grader response has no score")
	}

	return &domain.GradeResult{
		IsCorrect: resp.IsCorrect,
		Score:     int(*resp.Score + 0.5),
		Feedback:  resp.Feedback,
	}, nil
}
