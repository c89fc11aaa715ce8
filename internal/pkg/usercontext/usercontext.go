package usercontext

import "github.com/gofiber/fiber/v2"

// localsKey is where the middleware parks the resolved context for the
// rest of the request.
const localsKey = "USER_CONTEXT"

// UserContext is the per-request view of the signed-in user: identity,
// admin flag and the effective plan tier driving entitlement checks.
type UserContext struct {
	UserID     uint   `json:"user_id"`
	Username   string `json:"username"`
	IsLoggedIn bool   `json:"is_logged_in"`
	IsAdmin    bool   `json:"is_admin"`
	Plan       string `json:"plan"`
}

// Anonymous is the context for requests without a session.
func Anonymous() UserContext {
	return UserContext{}
}

// Store attaches the context to the request.
func Store(c *fiber.Ctx, ctx UserContext) {
	c.Locals(localsKey, ctx)
}

// GetUserContext returns the request's user context, or an anonymous one
// when the middleware has not run.
func GetUserContext(c *fiber.Ctx) UserContext {
	if ctx, ok := c.Locals(localsKey).(UserContext); ok {
		return ctx
	}
	return Anonymous()
}

func IsLoggedIn(c *fiber.Ctx) bool {
	return GetUserContext(c).IsLoggedIn
}

func IsAdmin(c *fiber.Ctx) bool {
	return GetUserContext(c).IsAdmin
}

func GetUserID(c *fiber.Ctx) uint {
	return GetUserContext(c).UserID
}

func GetUsername(c *fiber.Ctx) string {
	return GetUserContext(c).Username
}
