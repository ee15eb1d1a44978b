package config

import (
	"context"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

// Cache is the shared Redis client. It stays nil when Redis is
// unreachable at startup, in which case all cache helpers become
// pass-throughs and every lookup is a miss.
var Cache *redis.Client

func InitCache() {
	host := strings.TrimSpace(os.Getenv("REDIS_HOST"))
	if host == "" {
		host = "localhost"
	}
	port := strings.TrimSpace(os.Getenv("REDIS_PORT"))
	if port == "" {
		port = "6379"
	}
	pass := strings.TrimSpace(os.Getenv("REDIS_PASSWORD"))

	client := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%s", host, port),
		Password: pass,
		DB:       0,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		log.Printf("Redis unavailable, bypassing cache: %v", err)
		_ = client.Close()
		Cache = nil
		return
	}

	Cache = client
	log.Println("Redis cache connected successfully")
}

// CacheGet returns the cached value for key, or "" and false on a miss
// or when the cache is disabled.
func CacheGet(ctx context.Context, key string) (string, bool) {
	if Cache == nil {
		return "", false
	}
	val, err := Cache.Get(ctx, key).Result()
	if err != nil {
		return "", false
	}
	return val, true
}

// CacheSet stores value under key for ttl. Errors are dropped; a cache
// write failure must never fail the request.
func CacheSet(ctx context.Context, key, value string, ttl time.Duration) {
	if Cache == nil {
		return
	}
	_ = Cache.Set(ctx, key, value, ttl).Err()
}
