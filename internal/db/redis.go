package db

import (
	"context"
	"log"
	"time"

	"github.com/redis/go-redis/v9"
)

var RedisClient *redis.Client

// InitRedis connects the package-level client used for session
// mirroring. A failed ping is logged, not fatal: the service stays up
// and sessions lose resumability until Redis returns.
func InitRedis(addr, password string, dbNum int) {
	RedisClient = redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       dbNum,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := RedisClient.Ping(ctx).Err(); err != nil {
		log.Printf("Warning: could not verify Redis connection: %s", err)
	} else {
		log.Println("Successfully connected to Redis")
	}
}
