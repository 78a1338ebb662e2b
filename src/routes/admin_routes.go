package routes

import (
	"Backend-Encuestas/src/controllers"
	"Backend-Encuestas/src/middleware"

	"github.com/gofiber/fiber/v2"
)

// adminRoutes defines maintenance endpoints.
func adminRoutes(router fiber.Router) {
	admin := router.Group("/admin", middleware.AuthJWT)

	admin.Post("/jobs/purge-drafts", controllers.TriggerPurgeDrafts)
}
