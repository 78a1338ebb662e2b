package routes

import (
	"github.com/gofiber/fiber/v2"
)

func InitRoutes(app *fiber.App) {
	api := app.Group("/api/v1")

	surveyRoutes(api)
	registrationRoutes(api)
	exportRoutes(api)
	adminRoutes(api)

	// Health check
	app.Get("/", func(c *fiber.Ctx) error {
		return c.SendString("✅ API is running...")
	})
}
