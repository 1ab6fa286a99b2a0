// Package redis provides the Redis connection factory shared by the cache
// store and the ephemeral pub/sub event channel.
//
// It wraps the go-redis client with:
//
//   - Connect, which retries the connection using the supplied configuration
//     and fails fast on an unparsable URL.
//   - A health-check helper for liveness / readiness probes.
//
// Configuration is described by the Config struct whose fields are populated
// from environment variables via the config package.
//
//	var cfg redis.Config
//	config.MustLoad(&cfg)
//
//	client, err := redis.Connect(ctx, cfg)
//	if err != nil {
//	    // handle error, probably terminate the application
//	}
//	defer client.Close()
//
// Sentinel errors (e.g. ErrRedisNotReady) wrap the underlying go-redis errors
// using errors.Join for easy comparison and unwrapping.
package redis
