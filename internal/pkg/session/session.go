package session

import (
	"fmt"
	"net"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/session"
	"github.com/gofiber/storage/redis"

	"github.com/franhub/franhub/internal/pkg/cache"
	"github.com/franhub/franhub/internal/pkg/env"
)

var sessionStore *session.Store

// NewSessionStore builds the redis-backed session store. Sessions use
// their own redis database so cache flushes never invalidate logins.
func NewSessionStore() *session.Store {
	host, port := "localhost", 6379
	if h, p, err := net.SplitHostPort(cache.Addr()); err == nil {
		host = h
		if v, err := strconv.Atoi(p); err == nil {
			port = v
		}
	}

	storage := redis.New(redis.Config{
		Host:     host,
		Port:     port,
		Username: env.GetEnv("CACHE_USER", ""),
		Password: env.GetEnv("CACHE_PASSWORD", ""),
		Database: cache.DBSession,
		Reset:    false,
	})

	sessionStore = session.New(session.Config{
		Storage:        storage,
		CookieHTTPOnly: true,
		CookieSecure:   !env.IsDev(),
		Expiration:     time.Hour,
		KeyLookup:      "cookie:session_id",
	})

	return sessionStore
}

func GetSessionStore() *session.Store {
	return sessionStore
}

// SetSessionValue stores a string under key in the caller's session.
func SetSessionValue(c *fiber.Ctx, key, value string) error {
	if sessionStore == nil {
		return fmt.Errorf("session store not initialized")
	}

	sess, err := sessionStore.Get(c)
	if err != nil {
		return fmt.Errorf("failed to get session: %w", err)
	}

	sess.Set(key, value)
	return sess.Save()
}

// GetSessionValue returns the string stored under key, or "" when the
// session is missing or the value is not a string.
func GetSessionValue(c *fiber.Ctx, key string) string {
	if sessionStore == nil {
		return ""
	}

	sess, err := sessionStore.Get(c)
	if err != nil {
		return ""
	}

	if value, ok := sess.Get(key).(string); ok {
		return value
	}
	return ""
}
