package redis

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/redis/go-redis/v9"
)

// Client stays nil until InitRedis succeeds; callers that cache treat a nil
// client as "no cache" and go straight to the database.
var (
	Client *redis.Client
	Ctx    = context.Background()
)

// InitRedis connects to the Redis instance named by REDIS_ADDR.
func InitRedis() error {
	client := redis.NewClient(&redis.Options{
		Addr: os.Getenv("REDIS_ADDR"),
		DB:   0,
	})

	if _, err := client.Ping(Ctx).Result(); err != nil {
		return fmt.Errorf("connect to redis at %q: %w", os.Getenv("REDIS_ADDR"), err)
	}

	Client = client
	log.Println("Connected to Redis")
	return nil
}
