package redis

import (
	"context"
	"errors"

	"github.com/redis/go-redis/v9"
)

// Ping returns a readiness check for client.
func Ping(client redis.UniversalClient) func(context.Context) error {
	return func(ctx context.Context) error {
		if client == nil {
			return ErrUnavailable
		}
		if err := client.Ping(ctx).Err(); err != nil {
			return errors.Join(ErrUnavailable, err)
		}
		return nil
	}
}
