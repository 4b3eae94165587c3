package redis

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
	"github.com/xw1nchester/dealscan-backend/internal/config"
)

func NewClient(ctx context.Context, rc config.Redis) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     rc.Address,
		Password: rc.Password,
		DB:       rc.DB,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("unable to ping redis: %w", err)
	}

	return client, nil
}
