package utils

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/generative-ai-go/genai"
	"github.com/pgvector/pgvector-go"
	"google.golang.org/api/option"
)

const (
	defaultGeminiChatModel      = "gemini-1.5-flash"
	defaultGeminiEmbeddingModel = "text-embedding-004"
)

// GeminiClient implements LLMClientInterface on Google's Gemini API.
type GeminiClient struct {
	client         *genai.Client
	chatModel      string
	embeddingModel string
	dimensions     int
}

func NewGeminiClient(ctx context.Context, apiKey, chatModel, embeddingModel string, dimensions int) (LLMClientInterface, error) {
	if apiKey == "" {
		return nil, errors.New("gemini api key is empty")
	}
	if chatModel == "" {
		chatModel = defaultGeminiChatModel
	}
	if embeddingModel == "" {
		embeddingModel = defaultGeminiEmbeddingModel
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	return &GeminiClient{
		client:         client,
		chatModel:      chatModel,
		embeddingModel: embeddingModel,
		dimensions:     dimensions,
	}, nil
}

func (c *GeminiClient) GenerateJSON(ctx context.Context, systemPrompt, userPrompt string, temperature float32) (string, error) {
	m := c.client.GenerativeModel(c.chatModel)
	m.ResponseMIMEType = "application/json"
	m.SetTemperature(temperature)
	if systemPrompt != "" {
		m.SystemInstruction = &genai.Content{Parts: []genai.Part{genai.Text(systemPrompt)}}
	}

	resp, err := m.GenerateContent(ctx, genai.Text(userPrompt))
	if err != nil {
		return "", fmt.Errorf("gemini: %w", err)
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("%w: no content generated by Gemini", ErrUnexpectedBehaviorOfAI)
	}

	content := CleanJSONResponse(fmt.Sprintf("%v", resp.Candidates[0].Content.Parts[0]))
	if !json.Valid([]byte(content)) {
		return "", fmt.Errorf("%w: gemini returned invalid json", ErrUnexpectedBehaviorOfAI)
	}
	return content, nil
}

func (c *GeminiClient) GetEmbedding(ctx context.Context, text string) (pgvector.Vector, error) {
	em := c.client.EmbeddingModel(c.embeddingModel)
	res, err := em.EmbedContent(ctx, genai.Text(text))
	if err != nil {
		return pgvector.Vector{}, fmt.Errorf("gemini embedding: %w", err)
	}
	if res == nil || res.Embedding == nil || len(res.Embedding.Values) == 0 {
		return pgvector.Vector{}, fmt.Errorf("%w: empty embedding", ErrUnexpectedBehaviorOfAI)
	}
	if err := checkDimensions(res.Embedding.Values, c.dimensions); err != nil {
		return pgvector.Vector{}, err
	}
	return pgvector.NewVector(res.Embedding.Values), nil
}

func (c *GeminiClient) Close() error {
	return c.client.Close()
}
