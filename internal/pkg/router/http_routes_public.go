package router

import (
	"github.com/franhub/franhub/app/controllers"
	"github.com/franhub/franhub/internal/pkg/middleware"
	"github.com/gofiber/fiber/v2"
	gothfiber "github.com/shareed2k/goth_fiber"
)

func (h HttpRouter) registerPublicRoutes(app *fiber.App) {
	// API routes moved to ApiRouter (internal/pkg/router/api_router.go)
	app.Get("/docs/api", loggedInMiddleware, controllers.HandleDocsAPI)

	// Listing detail pages are public
	app.Get("/listing/:id", loggedInMiddleware, controllers.HandleListingView)

	// Advertiser landing page (the submit goes through the CSRF group)
	app.Get("/advertise", loggedInMiddleware, controllers.HandleAdvertise)

	// Auth
	app.Post("/logout", middleware.RequireAuth, controllers.HandleAuthLogout)

	// Social OAuth
	app.Get("/auth/:provider", gothfiber.BeginAuthHandler)
	app.Get("/auth/:provider/callback", controllers.HandleOAuthCallback)
}
