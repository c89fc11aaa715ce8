package oauth

import (
	"net"
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2/middleware/session"
	redisstorage "github.com/gofiber/storage/redis"
	"github.com/gorilla/sessions"
	"github.com/markbates/goth"
	"github.com/markbates/goth/gothic"
	"github.com/markbates/goth/providers/google"
	gothfiber "github.com/shareed2k/goth_fiber"

	"github.com/franhub/franhub/internal/pkg/cache"
	"github.com/franhub/franhub/internal/pkg/env"
)

// Setup initializes Goth providers and session store based on environment variables.
// It is safe to call multiple times; providers will just be re-registered.
func Setup() {
	base := strings.TrimRight(env.GetEnv("PUBLIC_DOMAIN", ""), "/")
	if base == "" {
		base = "http://localhost:" + env.GetEnv("APP_PORT", "4000")
	}

	// gothic falls back to its package-level store outside the fiber flow
	gothic.Store = sessions.NewCookieStore([]byte(env.GetEnv("SESSION_SECRET", "franhub-oauth-state")))

	goth.UseProviders(
		google.New(
			env.GetEnv("GOOGLE_KEY", ""),
			env.GetEnv("GOOGLE_SECRET", ""),
			base+"/auth/google/callback",
			"email", "profile",
		),
	)

	// OAuth state lives in its own redis database, same server as the cache.
	host, port := "127.0.0.1", 6379
	if h, p, err := net.SplitHostPort(cache.Addr()); err == nil {
		host = h
		if parsed, e := strconv.Atoi(p); e == nil {
			port = parsed
		}
	}

	gothfiber.SessionStore = session.New(session.Config{
		Storage: redisstorage.New(redisstorage.Config{
			Host:     host,
			Port:     port,
			Username: env.GetEnv("CACHE_USER", ""),
			Password: env.GetEnv("CACHE_PASSWORD", ""),
			Database: cache.DBOAuth,
			Reset:    false,
		}),
		KeyLookup:      "cookie:" + gothic.SessionName,
		CookieHTTPOnly: true,
		CookieSameSite: "Lax",
		CookieSecure:   !env.IsDev(),
		Expiration:     72 * time.Hour,
	})
}
