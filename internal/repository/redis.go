package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/rocketscienceinc/tictactoe-history/internal/apperror"
)

type redisSlot struct {
	client *redis.Client
}

func NewRedisStateRepository(client *redis.Client, key string) StateRepository {
	return newStateRepository(&redisSlot{client: client}, key)
}

func (that *redisSlot) read(ctx context.Context, key string) ([]byte, error) {
	response, err := that.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, apperror.ErrStateNotFound
	}

	if err != nil {
		return nil, fmt.Errorf("failed to get key: %w", err)
	}

	return response, nil
}

func (that *redisSlot) write(ctx context.Context, key string, value []byte) error {
	if err := that.client.Set(ctx, key, value, 0).Err(); err != nil {
		return fmt.Errorf("failed to set key: %w", err)
	}

	return nil
}

func (that *redisSlot) remove(ctx context.Context, key string) error {
	if err := that.client.Del(ctx, key).Err(); err != nil {
		return fmt.Errorf("failed to delete key: %w", err)
	}

	return nil
}
