package domain

import (
	"context"
)

// GenerationRequest is the input of the external question generator.
type GenerationRequest struct {
	SourceText string
	Subject    string
	Difficulty DifficultyLevel
	Count      int
	Types      []QuestionType
}

// GeneratedQuestions is what the generator hands back. Questions carry no ID
// or owner yet.
type GeneratedQuestions struct {
	Questions   []*Question
	KeyConcepts []string
}

// QuestionGenerator produces practice questions from study material.
type QuestionGenerator interface {
	Generate(ctx context.Context, req GenerationRequest) (*GeneratedQuestions, error)
}
