package mem

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redismock/v9"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStore(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	s := NewMemoryStore()
	s.now = func() time.Time { return now }

	_, ok, err := s.Get(ctx, "pho")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, s.Set(ctx, "pho", `["pho bo"]`, time.Minute))
	v, ok, err := s.Get(ctx, "pho")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, `["pho bo"]`, v)

	now = now.Add(2 * time.Minute)
	_, ok, err = s.Get(ctx, "pho")
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Equal(t, 0, s.Len(), "expired entry is evicted on read")
}

func TestRedisStore_Miniredis(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	ctx := context.Background()
	s := NewRedisStore(client, "expand:")

	_, ok, err := s.Get(ctx, "pho")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, s.Set(ctx, "pho", `["pho bo"]`, time.Minute))
	assert.True(t, mr.Exists("expand:pho"))

	v, ok, err := s.Get(ctx, "pho")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, `["pho bo"]`, v)

	mr.FastForward(2 * time.Minute)
	_, ok, err = s.Get(ctx, "pho")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestRedisStore_Errors(t *testing.T) {
	client, mock := redismock.NewClientMock()
	s := NewRedisStore(client, "expand:")
	ctx := context.Background()

	mock.ExpectGet("expand:pho").SetErr(errors.New("connection refused"))
	_, ok, err := s.Get(ctx, "pho")
	assert.Error(t, err)
	assert.False(t, ok)

	mock.ExpectSet("expand:pho", "v", time.Hour).SetErr(errors.New("readonly"))
	assert.Error(t, s.Set(ctx, "pho", "v", time.Hour))

	assert.NoError(t, mock.ExpectationsWereMet())
}
