package middleware

import (
	"github.com/gofiber/fiber/v2"

	"github.com/franhub/franhub/internal/pkg/usercontext"
)

func hasSession(c *fiber.Ctx) bool {
	loggedIn, _ := c.Locals(usercontext.KeyFromProtected).(bool)
	return loggedIn
}

// RequireAuth gates owner pages. Anonymous callers land on /login.
func RequireAuth(c *fiber.Ctx) error {
	if !hasSession(c) {
		return c.Redirect("/login", fiber.StatusSeeOther)
	}
	return c.Next()
}

// RequireAdmin gates the admin area. Non-admins are bounced to the home
// page rather than told the area exists.
func RequireAdmin(c *fiber.Ctx) error {
	if !hasSession(c) {
		return c.Redirect("/login", fiber.StatusSeeOther)
	}
	if isAdmin, ok := c.Locals(usercontext.KeyIsAdmin).(bool); !ok || !isAdmin {
		return c.Redirect("/", fiber.StatusSeeOther)
	}
	return c.Next()
}

// RequireAPISessionAuth is RequireAuth for JSON routes: 401 instead of a
// redirect.
func RequireAPISessionAuth(c *fiber.Ctx) error {
	if !hasSession(c) {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error":   "unauthorized",
			"message": "login required",
		})
	}
	return c.Next()
}
