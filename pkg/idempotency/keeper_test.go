package idempotency

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/chris/sportsbook-ledger/pkg/idempotency/mocks"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const redisKey = "idempotency:wager:user-1:key-1"

func TestReserve(t *testing.T) {
	ctx := context.Background()

	t.Run("First Request Claims Key", func(t *testing.T) {
		client := mocks.NewClient(t)
		client.On("SetNX", mock.Anything, redisKey, "wager-new", time.Hour).Return(redis.NewBoolResult(true, nil))

		existing, claimed, err := NewKeeper(client, time.Hour).Reserve(ctx, "user-1", "key-1", "wager-new")

		require.NoError(t, err)
		assert.True(t, claimed)
		assert.Equal(t, "wager-new", existing)
	})

	t.Run("Replay Returns Original Wager", func(t *testing.T) {
		client := mocks.NewClient(t)
		client.On("SetNX", mock.Anything, redisKey, "wager-new", time.Hour).Return(redis.NewBoolResult(false, nil))
		client.On("Get", mock.Anything, redisKey).Return(redis.NewStringResult("wager-old", nil))

		existing, claimed, err := NewKeeper(client, time.Hour).Reserve(ctx, "user-1", "key-1", "wager-new")

		require.NoError(t, err)
		assert.False(t, claimed)
		assert.Equal(t, "wager-old", existing)
	})

	t.Run("Key Expired Between Calls", func(t *testing.T) {
		client := mocks.NewClient(t)
		client.On("SetNX", mock.Anything, redisKey, "wager-new", time.Hour).Once().Return(redis.NewBoolResult(false, nil))
		client.On("Get", mock.Anything, redisKey).Return(redis.NewStringResult("", redis.Nil))
		client.On("SetNX", mock.Anything, redisKey, "wager-new", time.Hour).Once().Return(redis.NewBoolResult(true, nil))

		_, claimed, err := NewKeeper(client, time.Hour).Reserve(ctx, "user-1", "key-1", "wager-new")

		require.NoError(t, err)
		assert.True(t, claimed)
	})

	t.Run("Redis Error", func(t *testing.T) {
		client := mocks.NewClient(t)
		client.On("SetNX", mock.Anything, redisKey, "wager-new", time.Hour).Return(redis.NewBoolResult(false, errors.New("connection refused")))

		_, _, err := NewKeeper(client, time.Hour).Reserve(ctx, "user-1", "key-1", "wager-new")

		assert.ErrorContains(t, err, "failed to reserve idempotency key")
	})
}

func TestRelease(t *testing.T) {
	client := mocks.NewClient(t)
	client.On("Del", mock.Anything, redisKey).Return(redis.NewIntResult(1, nil))

	assert.NoError(t, NewKeeper(client, time.Hour).Release(context.Background(), "user-1", "key-1"))
}

func TestConnectFailsFast(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	// Nothing listens on port 1.
	client, err := Connect(ctx, "127.0.0.1:1")

	assert.Nil(t, client)
	assert.ErrorContains(t, err, "failed to connect to redis at 127.0.0.1:1")
}
