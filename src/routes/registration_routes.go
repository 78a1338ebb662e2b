package routes

import (
	"Backend-Encuestas/src/controllers"
	"Backend-Encuestas/src/middleware"

	"github.com/gofiber/fiber/v2"
)

// registrationRoutes defines routes for submitting and correcting answer
// sets.
func registrationRoutes(router fiber.Router) {
	registros := router.Group("/registros", middleware.AuthJWT)

	registros.Post("/", controllers.SubmitRegistration)
	registros.Get("/borradores", controllers.GetMyDrafts)
	registros.Get("/paciente/:id", controllers.GetRegistrationsByPatient)
	registros.Put("/:id/completar", controllers.CompleteDraft)
	registros.Delete("/:id", controllers.DeleteRegistration)

	registros.Put("/:id/respuestas/:answerId", controllers.UpdateAnswer)
	registros.Delete("/:id/respuestas/:answerId", controllers.DeleteAnswer)
}
