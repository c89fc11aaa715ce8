package cache

import (
	"context"
	"net"
	"time"

	"github.com/gofiber/fiber/v2/log"
	"github.com/redis/go-redis/v9"

	"github.com/franhub/franhub/internal/pkg/env"
)

// Redis database assignments. Sessions (DB 1) and OAuth state (DB 2) get
// their own keyspaces so a cache flush never logs anyone out.
const (
	DBCache   = 0
	DBSession = 1
	DBOAuth   = 2
)

var (
	client *redis.Client
	ctx    = context.Background()
)

// SetupCache connects the shared client to the cache database. Credentials
// come from the environment; a failed ping is logged but not fatal since
// counters and stats degrade gracefully.
func SetupCache() {
	client = redis.NewClient(&redis.Options{
		Addr:     Addr(),
		Username: env.GetEnv("CACHE_USER", ""),
		Password: env.GetEnv("CACHE_PASSWORD", ""),
		DB:       DBCache,
	})

	if pong, err := client.Ping(ctx).Result(); err != nil {
		log.Warnf("cache unreachable at %s: %v", Addr(), err)
	} else {
		log.Infof("cache connected: %s", pong)
	}
}

// Addr returns the host:port the cache client dials.
func Addr() string {
	return net.JoinHostPort(env.GetEnv("CACHE_HOST", "localhost"), env.GetEnv("CACHE_PORT", "6379"))
}

// GetClient returns the shared client, connecting lazily on first use.
func GetClient() *redis.Client {
	if client == nil {
		SetupCache()
	}
	return client
}

func Set(key string, value interface{}, expiration time.Duration) error {
	return GetClient().Set(ctx, key, value, expiration).Err()
}

func Get(key string) (string, error) {
	return GetClient().Get(ctx, key).Result()
}

func GetInt(key string) (int, error) {
	return GetClient().Get(ctx, key).Int()
}

func Delete(key string) error {
	return GetClient().Del(ctx, key).Err()
}
