package utils

import (
	"context"
	"fmt"
	"strings"

	"github.com/pgvector/pgvector-go"
)

// LLMClientInterface is the provider neutral surface used by the suggestion
// pipeline and the seeding tool.
type LLMClientInterface interface {
	// GenerateJSON returns a JSON object produced by the chat model.
	GenerateJSON(ctx context.Context, systemPrompt, userPrompt string, temperature float32) (string, error)
	GetEmbedding(ctx context.Context, text string) (pgvector.Vector, error)
	Close() error
}

type LLMOptions struct {
	Provider            string
	GeminiAPIKey        string
	OpenAIAPIKey        string
	ChatModel           string
	EmbeddingModel      string
	EmbeddingDimensions int
}

// NewLLMClient builds the client for opts.Provider ("gemini" or "openai").
func NewLLMClient(ctx context.Context, opts LLMOptions) (LLMClientInterface, error) {
	switch strings.ToLower(opts.Provider) {
	case "gemini", "":
		return NewGeminiClient(ctx, opts.GeminiAPIKey, opts.ChatModel, opts.EmbeddingModel, opts.EmbeddingDimensions)
	case "openai":
		return NewOpenAIClient(opts.OpenAIAPIKey, opts.ChatModel, opts.EmbeddingModel, opts.EmbeddingDimensions)
	default:
		return nil, fmt.Errorf("unsupported llm provider %q", opts.Provider)
	}
}

func checkDimensions(v []float32, want int) error {
	if want > 0 && len(v) != want {
		return fmt.Errorf("%w: embedding has %d dimensions, want %d", ErrUnexpectedBehaviorOfAI, len(v), want)
	}
	return nil
}
