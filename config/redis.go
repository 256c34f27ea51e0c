package config

import (
	"context"
	"os"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisClient is the shared price cache backend; nil when REDIS_ADDR is unset or unreachable.
var RedisClient *redis.Client

// InitRedis builds RedisClient from REDIS_ADDR, REDIS_PASS and REDIS_DB.
func InitRedis() {
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		RedisClient = nil
		return
	}
	db, _ := strconv.Atoi(os.Getenv("REDIS_DB"))
	RedisClient = redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: os.Getenv("REDIS_PASS"),
		DB:       db,
	})
}

// ConnectRedis initializes and pings Redis. On failure RedisClient is reset to nil
// and the ping error returned, so callers fall back to the in-memory cache.
func ConnectRedis() error {
	InitRedis()
	if RedisClient == nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(RedisCtx(), 3*time.Second)
	defer cancel()
	if err := RedisClient.Ping(ctx).Err(); err != nil {
		RedisClient.Close()
		RedisClient = nil
		return err
	}
	return nil
}

func RedisCtx() context.Context {
	return context.Background()
}
