package router

import (
	"strings"
	"time"

	"github.com/franhub/franhub/app/controllers"
	"github.com/franhub/franhub/internal/pkg/env"
	"github.com/franhub/franhub/internal/pkg/middleware"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/csrf"
)

func (h HttpRouter) registerCSRFProtectedRoutes(app *fiber.App) {
	csrfConf := csrf.Config{
		KeyLookup:      "form:_csrf",
		ContextKey:     "csrf",
		CookieName:     "csrf_",
		CookieSameSite: "Lax",
		Expiration:     1 * time.Hour,
		CookieSecure:   !env.IsDev(),
		Next: func(c *fiber.Ctx) bool {
			return strings.HasPrefix(c.Path(), "/api/")
		},
	}

	group := app.Group("", cors.New(), csrf.New(csrfConf))
	group.Get("/", loggedInMiddleware, controllers.HandleStart)
	group.Get("/login", loggedInMiddleware, controllers.HandleAuthLogin)
	group.Post("/login", loggedInMiddleware, controllers.HandleAuthLogin)
	group.Get("/register", loggedInMiddleware, controllers.HandleAuthRegister)
	group.Post("/register", loggedInMiddleware, controllers.HandleAuthRegister)

	// Owner listing management
	group.Get("/user/listings", middleware.RequireAuth, controllers.HandleUserListings)
	group.Get("/user/listings/create", middleware.RequireAuth, controllers.HandleListingCreate)
	group.Post("/user/listings/create", middleware.RequireAuth, controllers.HandleListingCreate)
	group.Get("/user/listings/edit/:id", middleware.RequireAuth, controllers.HandleListingEdit)
	group.Post("/user/listings/edit/:id", middleware.RequireAuth, controllers.HandleListingEdit)
	group.Post("/user/listings/delete/:id", middleware.RequireAuth, controllers.HandleListingDelete)

	// Plans, boosts and the simulated checkout
	group.Get("/pricing", loggedInMiddleware, controllers.HandlePricing)
	group.Post("/subscribe", middleware.RequireAuth, controllers.HandleSubscriptionCheckout)
	group.Post("/boost", middleware.RequireAuth, controllers.HandleBoostCheckout)
	group.Get("/checkout/:session_id", middleware.RequireAuth, controllers.HandleCheckoutShow)
	group.Post("/checkout/:session_id/confirm", middleware.RequireAuth, controllers.HandleCheckoutConfirm)

	// Advertiser lead form
	group.Post("/advertise", loggedInMiddleware, controllers.HandleAdvertiseSubmit)
}
