package router

import (
	"github.com/gofiber/fiber/v2"

	"github.com/franhub/franhub/app/controllers"
	"github.com/franhub/franhub/internal/pkg/middleware"
	"github.com/franhub/franhub/internal/pkg/oauth"
	"github.com/franhub/franhub/internal/pkg/session"
)

// HttpRouter mounts all browser-facing routes: public pages, the admin
// area and the CSRF-protected form routes.
type HttpRouter struct{}

func NewHttpRouter() *HttpRouter {
	return &HttpRouter{}
}

func (h HttpRouter) InstallRouter(app *fiber.App) {
	// Session store and OAuth providers must exist before any handler
	// runs; the user-context middleware reads both.
	session.NewSessionStore()
	oauth.Setup()

	app.Use(middleware.UserContextMiddleware)

	controllers.InitializeAdminController()

	h.registerPublicRoutes(app)
	h.registerAdminRoutes(app)
	h.registerCSRFProtectedRoutes(app)
}

// loggedInMiddleware marks routes that render differently for signed-in
// users. The context itself comes from UserContextMiddleware; this is a
// pass-through kept for route readability.
func loggedInMiddleware(c *fiber.Ctx) error {
	return c.Next()
}
