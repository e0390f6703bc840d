package utils

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/pgvector/pgvector-go"
	gobreaker "github.com/sony/gobreaker/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

type stubLLM struct {
	calls       int
	chatErr     error
	chatOut     string
	embedOut    pgvector.Vector
	sawDeadline bool
}

func (s *stubLLM) GenerateJSON(ctx context.Context, _, _ string, _ float32) (string, error) {
	s.calls++
	_, s.sawDeadline = ctx.Deadline()
	return s.chatOut, s.chatErr
}

func (s *stubLLM) GetEmbedding(_ context.Context, _ string) (pgvector.Vector, error) {
	s.calls++
	return s.embedOut, nil
}

func (s *stubLLM) Close() error { return nil }

func TestCleanJSONResponse(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"plain object", `{"foods":["pho"]}`, `{"foods":["pho"]}`},
		{"fenced", "```json\n{\"foods\": [\"pho\"]}\n```", `{"foods": ["pho"]}`},
		{"prose around", `Sure! {"a": {"b": "}"}} hope that helps`, `{"a": {"b": "}"}}`},
		{"array", `result: [1, [2, 3]] done`, `[1, [2, 3]]`},
		{"no json", `nothing here`, `nothing here`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CleanJSONResponse(tt.in))
		})
	}
}

func TestBreakerLLMClient_PassesThrough(t *testing.T) {
	stub := &stubLLM{chatOut: `{"ok":true}`, embedOut: pgvector.NewVector([]float32{1, 2})}
	b := NewBreakerLLMClient(stub, BreakerSettings{FailureThreshold: 3, CallTimeout: time.Second}, zaptest.NewLogger(t))

	out, err := b.GenerateJSON(context.Background(), "sys", "user", 0.2)
	require.NoError(t, err)
	assert.Equal(t, `{"ok":true}`, out)
	assert.True(t, stub.sawDeadline)

	vec, err := b.GetEmbedding(context.Background(), "pho")
	require.NoError(t, err)
	assert.Equal(t, []float32{1, 2}, vec.Slice())
}

func TestBreakerLLMClient_OpensAfterConsecutiveFailures(t *testing.T) {
	stub := &stubLLM{chatErr: errors.New("upstream down")}
	b := NewBreakerLLMClient(stub, BreakerSettings{FailureThreshold: 2, Timeout: time.Minute}, zaptest.NewLogger(t))

	for i := 0; i < 2; i++ {
		_, err := b.GenerateJSON(context.Background(), "", "q", 0)
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrUnexpectedBehaviorOfAI)
	}
	assert.Equal(t, gobreaker.StateOpen, b.chat.State())

	_, err := b.GenerateJSON(context.Background(), "", "q", 0)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnexpectedBehaviorOfAI)
	assert.Equal(t, 2, stub.calls, "open breaker must not reach the provider")

	// embeddings have their own breaker
	assert.Equal(t, gobreaker.StateClosed, b.embed.State())
}

func TestNewLLMClient_UnknownProvider(t *testing.T) {
	_, err := NewLLMClient(context.Background(), LLMOptions{Provider: "llama"})
	assert.Error(t, err)
}

func TestNewOpenAIClient_RequiresKey(t *testing.T) {
	_, err := NewOpenAIClient("", "", "", 768)
	assert.Error(t, err)

	c, err := NewOpenAIClient("sk-test", "", "", 768)
	require.NoError(t, err)
	assert.NoError(t, c.Close())
}

// cancelAwareLLM fails "bad" immediately and blocks every other embedding
// until the caller gives up.
type cancelAwareLLM struct {
	stubLLM
}

func (c *cancelAwareLLM) GetEmbedding(ctx context.Context, text string) (pgvector.Vector, error) {
	if text == "bad" {
		return pgvector.Vector{}, errors.New("upstream 503")
	}
	if text == "ok" {
		return pgvector.NewVector([]float32{1}), nil
	}
	<-ctx.Done()
	return pgvector.Vector{}, ctx.Err()
}

func TestBreakerLLMClient_IgnoresCallerCancellation(t *testing.T) {
	b := NewBreakerLLMClient(&cancelAwareLLM{}, BreakerSettings{FailureThreshold: 2, Timeout: time.Minute}, zaptest.NewLogger(t))

	_, err := b.GetEmbedding(context.Background(), "bad")
	require.ErrorIs(t, err, ErrUnexpectedBehaviorOfAI)

	for i := 0; i < 5; i++ {
		ctx, cancel := context.WithCancel(context.Background())
		done := make(chan error, 1)
		go func() {
			_, err := b.GetEmbedding(ctx, "slow")
			done <- err
		}()
		cancel()
		assert.ErrorIs(t, <-done, context.Canceled)
	}

	expired, cancel := context.WithTimeout(context.Background(), time.Millisecond)
	defer cancel()
	_, err = b.GetEmbedding(expired, "slow")
	assert.ErrorIs(t, err, context.DeadlineExceeded)

	assert.Equal(t, gobreaker.StateClosed, b.embed.State())
	vec, err := b.GetEmbedding(context.Background(), "ok")
	require.NoError(t, err)
	assert.Equal(t, []float32{1}, vec.Slice())
}

func TestBreakerLLMClient_CallTimeoutCountsAsFailure(t *testing.T) {
	b := NewBreakerLLMClient(&cancelAwareLLM{}, BreakerSettings{
		FailureThreshold: 2,
		Timeout:          time.Minute,
		CallTimeout:      5 * time.Millisecond,
	}, zaptest.NewLogger(t))

	for i := 0; i < 2; i++ {
		_, err := b.GetEmbedding(context.Background(), "slow")
		require.ErrorIs(t, err, context.DeadlineExceeded)
	}
	assert.Equal(t, gobreaker.StateOpen, b.embed.State())
}
