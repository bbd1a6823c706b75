package host

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisStorage persists preferences in Redis, typically namespaced per
// visitor with WithKeyPrefix.
type RedisStorage struct {
	client redis.UniversalClient
	opts   *redisOptions
}

// NewRedisStorage creates a Redis-backed Storage.
// The client should be obtained from pkg/redis.Open.
//
// Example:
//
//	s := host.NewRedisStorage(client,
//	    host.WithKeyPrefix("prefs:"+visitorID),
//	    host.WithTTL(180*24*time.Hour),
//	)
func NewRedisStorage(client redis.UniversalClient, opts ...RedisOption) *RedisStorage {
	o := defaultRedisOptions()
	for _, opt := range opts {
		opt(o)
	}
	return &RedisStorage{client: client, opts: o}
}

// Get returns ErrNotFound when the key is absent.
func (s *RedisStorage) Get(ctx context.Context, key string) (string, error) {
	v, err := s.client.Get(ctx, s.key(key)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", ErrNotFound
		}
		return "", err
	}
	return v, nil
}

// Set stores value, refreshing the configured TTL.
// A non-positive TTL keeps the value forever.
func (s *RedisStorage) Set(ctx context.Context, key, value string) error {
	return s.client.Set(ctx, s.key(key), value, max(s.opts.ttl, 0)).Err()
}

func (s *RedisStorage) key(key string) string {
	if s.opts.prefix == "" {
		return key
	}
	return s.opts.prefix + ":" + key
}

// RedisOption configures RedisStorage.
type RedisOption func(*redisOptions)

type redisOptions struct {
	prefix string
	ttl    time.Duration
}

func defaultRedisOptions() *redisOptions {
	return &redisOptions{
		prefix: "prefs",
		ttl:    365 * 24 * time.Hour,
	}
}

// WithKeyPrefix sets the key prefix. Keys are stored as "{prefix}:{key}".
// Default: "prefs".
func WithKeyPrefix(prefix string) RedisOption {
	return func(o *redisOptions) {
		o.prefix = prefix
	}
}

// WithTTL sets how long a preference survives without being written again.
// Zero or negative disables expiration.
// Default: 365 days.
func WithTTL(d time.Duration) RedisOption {
	return func(o *redisOptions) {
		o.ttl = d
	}
}

var _ Storage = (*RedisStorage)(nil)
