package router

import (
	"github.com/franhub/franhub/app/controllers"
	"github.com/franhub/franhub/internal/pkg/middleware"
	"github.com/gofiber/fiber/v2"
)

func (h HttpRouter) registerAdminRoutes(app *fiber.App) {
	adminGroup := app.Group("/admin", middleware.RequireAdmin)
	ac := controllers.GetAdminController()

	adminGroup.Get("/", ac.HandleDashboard)

	// Banner ad management
	adminGroup.Get("/banners", ac.HandleBanners)
	adminGroup.Get("/banners/create", ac.HandleBannerCreate)
	adminGroup.Post("/banners/create", ac.HandleBannerCreate)
	adminGroup.Get("/banners/edit/:id", ac.HandleBannerEdit)
	adminGroup.Post("/banners/edit/:id", ac.HandleBannerEdit)
	adminGroup.Post("/banners/status/:id", ac.HandleBannerStatus)
	adminGroup.Post("/banners/delete/:id", ac.HandleBannerDelete)

	// Advertiser lead pipeline
	adminGroup.Get("/contacts", ac.HandleContacts)
	adminGroup.Post("/contacts/status/:id", ac.HandleContactStatus)
}
