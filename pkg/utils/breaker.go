package utils

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/pgvector/pgvector-go"
	gobreaker "github.com/sony/gobreaker/v2"
	"go.uber.org/zap"

	"foodybuddy/pkg/metrics"
)

type BreakerSettings struct {
	MaxRequests      uint32
	Interval         time.Duration
	Timeout          time.Duration
	FailureThreshold uint32
	// CallTimeout bounds every call made through the breaker; zero disables it.
	CallTimeout time.Duration
}

// BreakerLLMClient guards an LLMClientInterface with one circuit breaker for
// chat calls and one for embeddings. It never retries: an open breaker fails
// the call immediately with ErrUnexpectedBehaviorOfAI.
type BreakerLLMClient struct {
	next        LLMClientInterface
	chat        *gobreaker.CircuitBreaker[string]
	embed       *gobreaker.CircuitBreaker[pgvector.Vector]
	callTimeout time.Duration
}

func NewBreakerLLMClient(next LLMClientInterface, s BreakerSettings, log *zap.Logger) *BreakerLLMClient {
	if log == nil {
		log = zap.NewNop()
	}
	return &BreakerLLMClient{
		next:        next,
		chat:        gobreaker.NewCircuitBreaker[string](breakerSettings("llm-chat", s, log)),
		embed:       gobreaker.NewCircuitBreaker[pgvector.Vector](breakerSettings("llm-embedding", s, log)),
		callTimeout: s.CallTimeout,
	}
}

func breakerSettings(name string, s BreakerSettings, log *zap.Logger) gobreaker.Settings {
	threshold := s.FailureThreshold
	if threshold == 0 {
		threshold = 5
	}
	metrics.CircuitBreakerState.WithLabelValues(name).Set(0)

	return gobreaker.Settings{
		Name:        name,
		MaxRequests: s.MaxRequests,
		Interval:    s.Interval,
		Timeout:     s.Timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= threshold
		},
		// A call abandoned by its caller says nothing about the provider.
		IsExcluded: isCallerGone,
		OnStateChange: func(name string, from, to gobreaker.State) {
			log.Warn("circuit breaker state change",
				zap.String("breaker", name),
				zap.String("from", from.String()),
				zap.String("to", to.String()),
			)
			metrics.CircuitBreakerState.WithLabelValues(name).Set(stateValue(to))
			metrics.CircuitBreakerTransitions.WithLabelValues(name, from.String(), to.String()).Inc()
		},
	}
}

func stateValue(s gobreaker.State) float64 {
	switch s {
	case gobreaker.StateHalfOpen:
		return 1
	case gobreaker.StateOpen:
		return 2
	default:
		return 0
	}
}

func (b *BreakerLLMClient) GenerateJSON(ctx context.Context, systemPrompt, userPrompt string, temperature float32) (string, error) {
	out, err := execute(ctx, b.chat, b.callTimeout, func(callCtx context.Context) (string, error) {
		return b.next.GenerateJSON(callCtx, systemPrompt, userPrompt, temperature)
	})
	return out, b.observe(b.chat.Name(), err)
}

func (b *BreakerLLMClient) GetEmbedding(ctx context.Context, text string) (pgvector.Vector, error) {
	out, err := execute(ctx, b.embed, b.callTimeout, func(callCtx context.Context) (pgvector.Vector, error) {
		return b.next.GetEmbedding(callCtx, text)
	})
	return out, b.observe(b.embed.Name(), err)
}

// callerGoneError marks a failure that happened after the caller's own
// context ended, so the breaker does not count it.
type callerGoneError struct {
	err error
}

func (e *callerGoneError) Error() string { return e.err.Error() }
func (e *callerGoneError) Unwrap() error { return e.err }

func execute[T any](ctx context.Context, cb *gobreaker.CircuitBreaker[T], timeout time.Duration, call func(context.Context) (T, error)) (T, error) {
	if err := ctx.Err(); err != nil {
		var zero T
		return zero, &callerGoneError{err: err}
	}

	callCtx, cancel := withTimeout(ctx, timeout)
	defer cancel()

	return cb.Execute(func() (T, error) {
		out, err := call(callCtx)
		if err != nil && ctx.Err() != nil {
			return out, &callerGoneError{err: err}
		}
		return out, err
	})
}

func (b *BreakerLLMClient) Close() error {
	return b.next.Close()
}

func withTimeout(ctx context.Context, d time.Duration) (context.Context, context.CancelFunc) {
	if d <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, d)
}

func (b *BreakerLLMClient) observe(name string, err error) error {
	switch {
	case err == nil:
		metrics.CircuitBreakerRequests.WithLabelValues(name, "success").Inc()
		return nil
	case isCallerGone(err):
		metrics.CircuitBreakerRequests.WithLabelValues(name, "cancelled").Inc()
		return err
	case errors.Is(err, gobreaker.ErrOpenState), errors.Is(err, gobreaker.ErrTooManyRequests):
		metrics.CircuitBreakerRequests.WithLabelValues(name, "rejected").Inc()
		return fmt.Errorf("%w: %s: %v", ErrUnexpectedBehaviorOfAI, name, err)
	default:
		metrics.CircuitBreakerRequests.WithLabelValues(name, "failure").Inc()
		if errors.Is(err, ErrUnexpectedBehaviorOfAI) {
			return err
		}
		return fmt.Errorf("%w: %w", ErrUnexpectedBehaviorOfAI, err)
	}
}

func isCallerGone(err error) bool {
	var gone *callerGoneError
	return errors.As(err, &gone) || errors.Is(err, context.Canceled)
}
