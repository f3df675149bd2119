// Package idempotency reserves client-supplied request keys in Redis so that a
// retried wager placement returns the wager created by the first attempt.
package idempotency

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

//go:generate go run github.com/vektra/mockery/v2 --name=Client --output=mocks --outpkg=mocks

// Client is the subset of *redis.Client used by the keeper.
type Client interface {
	SetNX(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.BoolCmd
	Get(ctx context.Context, key string) *redis.StringCmd
	Del(ctx context.Context, keys ...string) *redis.IntCmd
}

const keyFormat = "idempotency:wager:%s:%s"

// Keeper maps (account, idempotency key) to the ID of the wager created for it.
type Keeper struct {
	client Client
	ttl    time.Duration
}

// NewKeeper creates a Keeper whose reservations expire after ttl.
func NewKeeper(client Client, ttl time.Duration) *Keeper {
	return &Keeper{client: client, ttl: ttl}
}

// Reserve claims key for wagerID. When the key is already held it returns
// claimed=false and the wager ID stored by the earlier request.
func (k *Keeper) Reserve(ctx context.Context, accountID, key, wagerID string) (existing string, claimed bool, err error) {
	redisKey := fmt.Sprintf(keyFormat, accountID, key)

	ok, err := k.client.SetNX(ctx, redisKey, wagerID, k.ttl).Result()
	if err != nil {
		return "", false, fmt.Errorf("failed to reserve idempotency key: %w", err)
	}
	if ok {
		return wagerID, true, nil
	}

	existing, err = k.client.Get(ctx, redisKey).Result()
	if errors.Is(err, redis.Nil) {
		// Expired between SETNX and GET; try once more.
		ok, err = k.client.SetNX(ctx, redisKey, wagerID, k.ttl).Result()
		if err != nil {
			return "", false, fmt.Errorf("failed to reserve idempotency key: %w", err)
		}
		if ok {
			return wagerID, true, nil
		}
		return "", false, fmt.Errorf("idempotency key %s is contended", key)
	}
	if err != nil {
		return "", false, fmt.Errorf("failed to read idempotency key: %w", err)
	}
	return existing, false, nil
}

// Release frees key so that a failed request can be retried with it.
func (k *Keeper) Release(ctx context.Context, accountID, key string) error {
	if err := k.client.Del(ctx, fmt.Sprintf(keyFormat, accountID, key)).Err(); err != nil {
		return fmt.Errorf("failed to release idempotency key: %w", err)
	}
	return nil
}

// Connect opens a Redis client and checks that the server answers.
func Connect(ctx context.Context, addr string) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr: addr,
	})

	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("failed to connect to redis at %s: %w", addr, err)
	}

	return rdb, nil
}
