// Package cache provides Redis connection management and cache-aside helpers.
package cache

import (
	"context"
	"log"
	"time"

	"github.com/redis/go-redis/v9"
)

// Client is the global Redis client. Nil when Redis is unavailable; all
// helpers are nil-safe and degrade to the underlying data source.
var Client *redis.Client

// InitRedis connects to Redis at addr. On failure the application continues
// without cache.
func InitRedis(addr string) {
	Client = redis.NewClient(&redis.Options{
		Addr: addr,
	})

	// Test connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := Client.Ping(ctx).Err(); err != nil {
		log.Printf("Redis connection warning: %v (continuing without cache)", err)
		Client = nil
	} else {
		log.Println("Redis connected successfully")
	}
}

// GetClient returns the global Redis client, or nil when unavailable.
func GetClient() *redis.Client {
	return Client
}
