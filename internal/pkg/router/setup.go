package router

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/franhub/franhub/app/controllers"
)

// Router installs a set of routes on the app.
type Router interface {
	InstallRouter(app *fiber.App)
}

func InstallRouter(app *fiber.App) {
	// Install HttpRouter first to initialize session store, oauth providers,
	// and the global UserContext middleware. Then register API routes which
	// depend on that middleware.
	setup(app, NewHttpRouter(), NewApiRouter())

	// catch-all for anything no router claimed
	app.Use(func(c *fiber.Ctx) error {
		if strings.HasPrefix(c.Path(), "/api/") || c.Path() == "/api" {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "not_found", "message": "no such endpoint"})
		}
		return controllers.HandleNotFound(c)
	})
}

func setup(app *fiber.App, router ...Router) {
	for _, r := range router {
		r.InstallRouter(app)
	}
}
