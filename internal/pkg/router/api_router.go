package router

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"

	apiv1 "github.com/franhub/franhub/internal/api/v1"
)

// ApiRouter mounts the JSON API under /api with rate limiting.
type ApiRouter struct{}

func NewApiRouter() *ApiRouter {
	return &ApiRouter{}
}

func (h ApiRouter) InstallRouter(app *fiber.App) {
	api := app.Group("/api", limiter.New())
	api.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"name":    "franhub",
			"version": "v1",
			"docs":    "/docs/api/v1",
		})
	})

	apiv1.RegisterHandlers(api.Group("/v1"), apiv1.NewAPIServer())
}
