package routes

import (
	"Backend-Encuestas/src/controllers"
	"Backend-Encuestas/src/middleware"

	"github.com/gofiber/fiber/v2"
)

// exportRoutes defines the role-gated result exports.
func exportRoutes(router fiber.Router) {
	exports := router.Group("/encuestas/:id/export", middleware.AuthJWT)

	exports.Get("/csv", controllers.ExportCSV)
	exports.Get("/grid", controllers.ExportGrid)
}
