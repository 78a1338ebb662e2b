package controllers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"Backend-Encuestas/src/models"
	"Backend-Encuestas/src/services/skiplogic"
	"Backend-Encuestas/src/services/surveys"
	"Backend-Encuestas/src/utils"
)

var validate = validator.New()

// respondServiceError maps service-layer failures onto the HTTP surface:
// validation carries the full violation list, sentinels become 404/409.
func respondServiceError(c *fiber.Ctx, err error) error {
	var vErr *models.ValidationError
	if errors.As(err, &vErr) {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{
			"error":      "Validation failed",
			"violations": vErr.Violations,
		})
	}
	switch {
	case errors.Is(err, surveys.ErrSurveyNotFound),
		errors.Is(err, surveys.ErrQuestionNotFound),
		errors.Is(err, skiplogic.ErrQuestionNotFound),
		errors.Is(err, skiplogic.ErrOptionNotFound):
		return utils.HandleError(c, http.StatusNotFound, err.Error())
	case errors.Is(err, surveys.ErrEmptyTitle),
		errors.Is(err, skiplogic.ErrCrossSurveyEdge):
		return utils.HandleError(c, http.StatusBadRequest, err.Error())
	}
	return utils.HandleError(c, http.StatusInternalServerError, err.Error())
}

func requestContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), 5*time.Second)
}

// CreateSurvey stores a survey with its nested questions and options in one
// pass.
func CreateSurvey(c *fiber.Ctx) error {
	var req models.CreateSurveyRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.HandleError(c, http.StatusBadRequest, "Invalid input")
	}
	if err := validate.Struct(req); err != nil {
		return utils.HandleError(c, http.StatusBadRequest, err.Error())
	}

	ctx, cancel := requestContext()
	defer cancel()

	view, err := surveys.CreateSurvey(ctx, &req)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.Status(http.StatusCreated).JSON(view)
}

func GetSurveys(c *fiber.Ctx) error {
	params := models.DefaultPagination()
	if err := c.QueryParser(&params); err != nil {
		return utils.HandleError(c, http.StatusBadRequest, "Invalid query parameters")
	}

	ctx, cancel := requestContext()
	defer cancel()

	result, err := surveys.ListSurveys(ctx, params)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(result)
}

func GetSurveyByID(c *fiber.Ctx) error {
	surveyID, err := primitive.ObjectIDFromHex(c.Params("id"))
	if err != nil {
		return utils.HandleError(c, http.StatusBadRequest, "Invalid survey ID")
	}

	ctx, cancel := requestContext()
	defer cancel()

	view, err := surveys.GetSurvey(ctx, surveyID)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(view)
}

func UpdateSurvey(c *fiber.Ctx) error {
	surveyID, err := primitive.ObjectIDFromHex(c.Params("id"))
	if err != nil {
		return utils.HandleError(c, http.StatusBadRequest, "Invalid survey ID")
	}

	var req models.UpdateSurveyRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.HandleError(c, http.StatusBadRequest, "Invalid input")
	}
	if err := validate.Struct(req); err != nil {
		return utils.HandleError(c, http.StatusBadRequest, err.Error())
	}

	ctx, cancel := requestContext()
	defer cancel()

	view, err := surveys.UpdateSurvey(ctx, surveyID, &req)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(view)
}

func DeleteSurvey(c *fiber.Ctx) error {
	surveyID, err := primitive.ObjectIDFromHex(c.Params("id"))
	if err != nil {
		return utils.HandleError(c, http.StatusBadRequest, "Invalid survey ID")
	}

	ctx, cancel := requestContext()
	defer cancel()

	if err := surveys.DeleteSurvey(ctx, surveyID); err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Survey deleted successfully"})
}

func AddQuestion(c *fiber.Ctx) error {
	surveyID, err := primitive.ObjectIDFromHex(c.Params("id"))
	if err != nil {
		return utils.HandleError(c, http.StatusBadRequest, "Invalid survey ID")
	}

	var req models.CreateQuestionRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.HandleError(c, http.StatusBadRequest, "Invalid input")
	}
	if err := validate.Struct(req); err != nil {
		return utils.HandleError(c, http.StatusBadRequest, err.Error())
	}

	ctx, cancel := requestContext()
	defer cancel()

	view, err := surveys.AddQuestion(ctx, surveyID, &req)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.Status(http.StatusCreated).JSON(view)
}

func UpdateQuestion(c *fiber.Ctx) error {
	questionID, err := primitive.ObjectIDFromHex(c.Params("id"))
	if err != nil {
		return utils.HandleError(c, http.StatusBadRequest, "Invalid question ID")
	}

	var req models.CreateQuestionRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.HandleError(c, http.StatusBadRequest, "Invalid input")
	}
	if err := validate.Struct(req); err != nil {
		return utils.HandleError(c, http.StatusBadRequest, err.Error())
	}

	ctx, cancel := requestContext()
	defer cancel()

	view, err := surveys.UpdateQuestion(ctx, questionID, &req)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(view)
}

func DeleteQuestion(c *fiber.Ctx) error {
	questionID, err := primitive.ObjectIDFromHex(c.Params("id"))
	if err != nil {
		return utils.HandleError(c, http.StatusBadRequest, "Invalid question ID")
	}

	ctx, cancel := requestContext()
	defer cancel()

	if err := surveys.DeleteQuestion(ctx, questionID); err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Question deleted successfully"})
}

// AddSkipEdge wires a branching rule between two questions of one survey.
func AddSkipEdge(c *fiber.Ctx) error {
	var req models.AddSkipEdgeRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.HandleError(c, http.StatusBadRequest, "Invalid input")
	}
	if err := validate.Struct(req); err != nil {
		return utils.HandleError(c, http.StatusBadRequest, err.Error())
	}

	ctx, cancel := requestContext()
	defer cancel()

	edge, err := skiplogic.AddEdge(ctx, &req)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.Status(http.StatusCreated).JSON(edge)
}

// LintSkipLogic reports structural problems in a survey's branching graph.
// Diagnostics never block saving; authors decide what to fix.
func LintSkipLogic(c *fiber.Ctx) error {
	surveyID, err := primitive.ObjectIDFromHex(c.Params("id"))
	if err != nil {
		return utils.HandleError(c, http.StatusBadRequest, "Invalid survey ID")
	}

	ctx, cancel := requestContext()
	defer cancel()

	graph, err := skiplogic.GraphForSurvey(ctx, surveyID)
	if err != nil {
		return respondServiceError(c, err)
	}
	questions, err := surveys.QuestionsForSurvey(ctx, surveyID)
	if err != nil {
		return respondServiceError(c, err)
	}

	diagnostics := graph.Lint(questions)
	if diagnostics == nil {
		diagnostics = []skiplogic.Diagnostic{}
	}
	return c.JSON(fiber.Map{"diagnostics": diagnostics})
}
