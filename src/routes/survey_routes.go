package routes

import (
	"Backend-Encuestas/src/controllers"
	"Backend-Encuestas/src/middleware"

	"github.com/gofiber/fiber/v2"
)

// surveyRoutes defines routes for survey authoring and skip logic.
func surveyRoutes(router fiber.Router) {
	encuestas := router.Group("/encuestas", middleware.AuthJWT)

	encuestas.Post("/", controllers.CreateSurvey)
	encuestas.Get("/", controllers.GetSurveys)
	encuestas.Get("/:id", controllers.GetSurveyByID)
	encuestas.Put("/:id", controllers.UpdateSurvey)
	encuestas.Delete("/:id", controllers.DeleteSurvey)

	encuestas.Post("/:id/preguntas", controllers.AddQuestion)
	encuestas.Put("/preguntas/:id", controllers.UpdateQuestion)
	encuestas.Delete("/preguntas/:id", controllers.DeleteQuestion)

	encuestas.Post("/saltos", controllers.AddSkipEdge)
	encuestas.Get("/:id/saltos/lint", controllers.LintSkipLogic)
}
