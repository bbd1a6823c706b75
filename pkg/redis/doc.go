// Package redis opens go-redis clients for the preference storage.
//
// Visitors' language and theme choices can be kept server-side in Redis
// instead of cookies; see host.RedisStorage. Open validates the URL, applies
// pool defaults and retries the initial ping with a linear backoff:
//
//	client, err := redis.Open(ctx, os.Getenv("ARCHIVIST_REDIS_URL"),
//		redis.WithPoolSize(5),
//		redis.WithRetry(3, time.Second),
//	)
//	if err != nil {
//		return err
//	}
//	defer client.Close()
//
// [Ping] adapts a client into a readiness check for the preview server.
package redis
