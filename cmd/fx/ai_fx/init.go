package ai_fx

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/fx"
	"go.uber.org/zap"

	"foodybuddy/internal/config"
	"foodybuddy/pkg/utils"
)

var Module = fx.Provide(ProvideLLMClient)

// ProvideLLMClient builds the configured provider client behind the circuit breakers.
func ProvideLLMClient(lc fx.Lifecycle, cfg *config.Config, log *zap.Logger) (utils.LLMClientInterface, error) {
	ai := cfg.AI
	if err := requireKey(ai); err != nil {
		return nil, err
	}

	log.Info("initializing llm client",
		zap.String("provider", ai.Provider),
		zap.String("chat_model", ai.ChatModel),
		zap.String("embedding_model", ai.EmbeddingModel),
	)

	client, err := utils.NewLLMClient(context.Background(), utils.LLMOptions{
		Provider:            ai.Provider,
		GeminiAPIKey:        ai.GeminiAPIKey,
		OpenAIAPIKey:        ai.OpenAIAPIKey,
		ChatModel:           ai.ChatModel,
		EmbeddingModel:      ai.EmbeddingModel,
		EmbeddingDimensions: ai.EmbeddingDimensions,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create %s client: %w", ai.Provider, err)
	}

	wrapped := utils.NewBreakerLLMClient(client, utils.BreakerSettings{
		MaxRequests:      ai.Breaker.MaxRequests,
		Interval:         ai.Breaker.Interval,
		Timeout:          ai.Breaker.Timeout,
		FailureThreshold: ai.Breaker.FailureThreshold,
		CallTimeout:      ai.RequestTimeout,
	}, log)

	lc.Append(fx.StopHook(wrapped.Close))
	return wrapped, nil
}

func requireKey(ai config.AIConfig) error {
	switch strings.ToLower(ai.Provider) {
	case "openai":
		if ai.OpenAIAPIKey == "" {
			return fmt.Errorf("ai.openai_api_key (OPENAI_API_KEY) is required when using the openai provider")
		}
	default:
		if ai.GeminiAPIKey == "" {
			return fmt.Errorf("ai.gemini_api_key (GEMINI_API_KEY) is required when using the gemini provider")
		}
	}
	return nil
}
