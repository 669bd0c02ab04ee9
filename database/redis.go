package database

import (
	"api/utils"
	"os"
	"sync"

	"github.com/redis/go-redis/v9"
)

var (
	redisClient *redis.Client
	redisOnce   sync.Once
)

// RedisClient returns the shared redis client, or nil when REDIS_URI is
// unset or malformed. Callers treat a nil client as "cache disabled".
func RedisClient() *redis.Client {
	redisOnce.Do(func() {
		redisURI := os.Getenv(utils.REDIS_URI)
		if redisURI == "" {
			return
		}
		opts, err := redis.ParseURL(redisURI)
		if err != nil {
			return
		}
		redisClient = redis.NewClient(opts)
	})
	return redisClient
}
