package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/tair/article-likes/pkg/logger"
)

// NewRedisClient connects to Redis at addr. An empty addr disables the
// cache and returns a nil client.
func NewRedisClient(addr, password string) (*redis.Client, error) {
	if addr == "" {
		logger.Logger.Info().Msg("Redis address not set, lookup cache disabled")
		return nil, nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to connect to redis at %s: %w", addr, err)
	}

	logger.Logger.Info().
		Str("addr", addr).
		Msg("Connected to Redis")

	return client, nil
}

// Close closes the client if there is one
func Close(client *redis.Client) {
	if client == nil {
		return
	}
	if err := client.Close(); err != nil {
		logger.Logger.Error().Err(err).Msg("Error closing Redis")
	}
}
