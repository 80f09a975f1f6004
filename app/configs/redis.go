package configs

import (
	"fmt"

	"github.com/redis/go-redis/v9"
)

// OpenRedis builds a client from REDIS_URL. Returns nil when the variable is
// unset: token revocation then degrades to expiry-only, which is acceptable
// for local development.
func OpenRedis() (*redis.Client, error) {
	if LoadENV.RedisURL == "" {
		return nil, nil
	}
	opt, err := redis.ParseURL(LoadENV.RedisURL)
	if err != nil {
		return nil, fmt.Errorf("invalid REDIS_URL: %w", err)
	}
	return redis.NewClient(opt), nil
}
