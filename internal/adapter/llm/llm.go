// Package llm builds the langchaingo model shared by the grader and the
// question generator, and holds the response cleanup both of them need.
package llm

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"exam-byte/internal/config"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/ollama"
	"github.com/tmc/langchaingo/llms/openai"
)

const (
	ProviderOllama = "ollama"
	ProviderOpenAI = "openai"
)

// ErrEmptyResponse is returned when the model produced no choices.
var ErrEmptyResponse = errors.New("llm returned an empty response")

// NewModel creates the configured chat model.
func NewModel(cfg config.LLMConfig) (llms.Model, error) {
	switch strings.ToLower(cfg.Provider) {
	case ProviderOpenAI:
		if cfg.OpenAIAPIKey == "" {
			return nil, fmt.Errorf("openai API key cannot be empty")
		}
		opts := []openai.Option{openai.WithToken(cfg.OpenAIAPIKey)}
		if cfg.Model != "" {
			opts = append(opts, openai.WithModel(cfg.Model))
		}
		if cfg.Server != "" {
			opts = append(opts, openai.WithBaseURL(cfg.Server))
		}
		model, err := openai.New(opts...)
		if err != nil {
			return nil, fmt.Errorf("failed to create openai client: %w", err)
		}
		return model, nil
	case ProviderOllama, "":
		if cfg.Server == "" {
			return nil, fmt.Errorf("llm server URL cannot be empty")
		}
		// request deadlines come from the caller's context
		httpClient := &http.Client{Transport: http.DefaultTransport}
		model, err := ollama.New(
			ollama.WithServerURL(cfg.Server),
			ollama.WithModel(cfg.Model),
			ollama.WithHTTPClient(httpClient),
		)
		if err != nil {
			return nil, fmt.Errorf("failed to create ollama client: %w", err)
		}
		return model, nil
	}
	return nil, fmt.Errorf("unsupported llm provider: %s", cfg.Provider)
}

// Chat sends one system and one human message and returns the first choice.
func Chat(ctx context.Context, model llms.Model, system, human string, options ...llms.CallOption) (string, error) {
	messages := []llms.MessageContent{
		llms.TextParts(llms.ChatMessageTypeSystem, system),
		llms.TextParts(llms.ChatMessageTypeHuman, human),
	}
	resp, err := model.GenerateContent(ctx, messages, options...)
	if err != nil {
		return "", err
	}
	if resp == nil || len(resp.Choices) == 0 || strings.TrimSpace(resp.Choices[0].Content) == "" {
		return "", ErrEmptyResponse
	}
	return resp.Choices[0].Content, nil
}

// ExtractJSONObject strips reasoning blocks and returns the text between the
// first '{' and the last '}'.
func ExtractJSONObject(raw string) (string, error) {
	cleaned := strings.TrimSpace(raw)

	if thinkStart := strings.Index(cleaned, "<think>"); thinkStart != -1 {
		if thinkEnd := strings.Index(cleaned, "</think>"); thinkEnd != -1 && thinkEnd > thinkStart {
			cleaned = cleaned[:thinkStart] + cleaned[thinkEnd+len("</think>"):]
			cleaned = strings.TrimSpace(cleaned)
		}
	}

	jsonStart := strings.Index(cleaned, "{")
	jsonEnd := strings.LastIndex(cleaned, "}")
	if jsonStart == -1 || jsonEnd == -1 || jsonEnd <= jsonStart {
		return "", fmt.Errorf("no JSON object found in LLM response: %q", truncate(cleaned, 200))
	}
	return cleaned[jsonStart : jsonEnd+1], nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
