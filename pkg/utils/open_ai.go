package utils

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/pgvector/pgvector-go"
	openai "github.com/sashabaranov/go-openai"
)

// OpenAIClient implements LLMClientInterface on the OpenAI API. Embeddings
// are requested at the knowledge base dimension so both providers can share
// one pgvector column.
type OpenAIClient struct {
	client         *openai.Client
	chatModel      string
	embeddingModel string
	dimensions     int
}

func NewOpenAIClient(apiKey, chatModel, embeddingModel string, dimensions int) (LLMClientInterface, error) {
	if apiKey == "" {
		return nil, errors.New("openai api key is empty")
	}
	if chatModel == "" {
		chatModel = openai.GPT4oMini
	}
	if embeddingModel == "" {
		embeddingModel = string(openai.SmallEmbedding3)
	}
	return &OpenAIClient{
		client:         openai.NewClient(apiKey),
		chatModel:      chatModel,
		embeddingModel: embeddingModel,
		dimensions:     dimensions,
	}, nil
}

func (c *OpenAIClient) GenerateJSON(ctx context.Context, systemPrompt, userPrompt string, temperature float32) (string, error) {
	messages := make([]openai.ChatCompletionMessage, 0, 2)
	if systemPrompt != "" {
		messages = append(messages, openai.ChatCompletionMessage{Role: openai.ChatMessageRoleSystem, Content: systemPrompt})
	}
	messages = append(messages, openai.ChatCompletionMessage{Role: openai.ChatMessageRoleUser, Content: userPrompt})

	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       c.chatModel,
		Messages:    messages,
		Temperature: temperature,
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		},
	})
	if err != nil {
		return "", fmt.Errorf("openai: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("%w: no choices returned by OpenAI", ErrUnexpectedBehaviorOfAI)
	}

	content := CleanJSONResponse(resp.Choices[0].Message.Content)
	if !json.Valid([]byte(content)) {
		return "", fmt.Errorf("%w: openai returned invalid json", ErrUnexpectedBehaviorOfAI)
	}
	return content, nil
}

func (c *OpenAIClient) GetEmbedding(ctx context.Context, text string) (pgvector.Vector, error) {
	resp, err := c.client.CreateEmbeddings(ctx, openai.EmbeddingRequest{
		Input:      []string{text},
		Model:      openai.EmbeddingModel(c.embeddingModel),
		Dimensions: c.dimensions,
	})
	if err != nil {
		return pgvector.Vector{}, fmt.Errorf("openai embedding: %w", err)
	}
	if len(resp.Data) == 0 {
		return pgvector.Vector{}, fmt.Errorf("%w: empty embedding", ErrUnexpectedBehaviorOfAI)
	}
	if err := checkDimensions(resp.Data[0].Embedding, c.dimensions); err != nil {
		return pgvector.Vector{}, err
	}
	return pgvector.NewVector(resp.Data[0].Embedding), nil
}

func (c *OpenAIClient) Close() error { return nil }
