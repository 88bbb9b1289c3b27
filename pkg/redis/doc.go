// Package redis opens the Redis connection used to share cached translation
// resources between lingo processes.
//
//	client, err := redis.Open(ctx, os.Getenv("REDIS_URL"), redis.WithPoolSize(5))
//	if err != nil {
//		return err
//	}
//	defer client.Close()
//
// Open retries the initial ping with a linear backoff, so a service started
// alongside its Redis container does not fail on the first attempt.
// Healthcheck adapts the client to a pkg/health check.
package redis
