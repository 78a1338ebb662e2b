package controllers

import (
	"errors"
	"net/http"

	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"Backend-Encuestas/src/models"
	"Backend-Encuestas/src/services/registrations"
	"Backend-Encuestas/src/utils"
)

func requesterID(c *fiber.Ctx) (primitive.ObjectID, error) {
	raw, _ := c.Locals("userId").(string)
	return primitive.ObjectIDFromHex(raw)
}

func requesterRole(c *fiber.Ctx) models.Role {
	raw, _ := c.Locals("role").(string)
	return models.Role(raw)
}

// SubmitRegistration records an answer set. With isDraft the body is stored
// unvalidated; otherwise it must pass validation and be the patient's first
// completed registration for the survey.
func SubmitRegistration(c *fiber.Ctx) error {
	userID, err := requesterID(c)
	if err != nil {
		return utils.HandleError(c, http.StatusUnauthorized, "Invalid user identity")
	}

	var req models.SubmitRegistrationRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.HandleError(c, http.StatusBadRequest, "Invalid input")
	}
	if err := validate.Struct(req); err != nil {
		return utils.HandleError(c, http.StatusBadRequest, err.Error())
	}

	ctx, cancel := requestContext()
	defer cancel()

	registration, err := registrations.SubmitRegistration(ctx, userID, &req)
	if err != nil {
		if errors.Is(err, registrations.ErrDuplicateRegistration) {
			return utils.HandleError(c, http.StatusConflict, err.Error())
		}
		if errors.Is(err, registrations.ErrPatientNotFound) {
			return utils.HandleError(c, http.StatusNotFound, err.Error())
		}
		return respondServiceError(c, err)
	}
	return c.Status(http.StatusCreated).JSON(registration)
}

// CompleteDraft validates a stored draft and flips it to COMPLETED. The
// body may carry a replacement answer set.
func CompleteDraft(c *fiber.Ctx) error {
	registrationID, err := primitive.ObjectIDFromHex(c.Params("id"))
	if err != nil {
		return utils.HandleError(c, http.StatusBadRequest, "Invalid registration ID")
	}

	var body struct {
		Answers []models.AnswerInput `json:"answers"`
	}
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&body); err != nil {
			return utils.HandleError(c, http.StatusBadRequest, "Invalid input")
		}
	}

	ctx, cancel := requestContext()
	defer cancel()

	registration, err := registrations.CompleteDraft(ctx, registrationID, body.Answers)
	if err != nil {
		switch {
		case errors.Is(err, registrations.ErrRegistrationNotFound):
			return utils.HandleError(c, http.StatusNotFound, err.Error())
		case errors.Is(err, registrations.ErrDuplicateRegistration):
			return utils.HandleError(c, http.StatusConflict, err.Error())
		case errors.Is(err, registrations.ErrRegistrationCompleted):
			return utils.HandleError(c, http.StatusConflict, err.Error())
		}
		return respondServiceError(c, err)
	}
	return c.JSON(registration)
}

// GetMyDrafts lists the requester's unfinished registrations.
func GetMyDrafts(c *fiber.Ctx) error {
	userID, err := requesterID(c)
	if err != nil {
		return utils.HandleError(c, http.StatusUnauthorized, "Invalid user identity")
	}

	ctx, cancel := requestContext()
	defer cancel()

	drafts, err := registrations.GetDraftsByUser(ctx, userID)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(drafts)
}

func GetRegistrationsByPatient(c *fiber.Ctx) error {
	patientID, err := primitive.ObjectIDFromHex(c.Params("id"))
	if err != nil {
		return utils.HandleError(c, http.StatusBadRequest, "Invalid patient ID")
	}

	ctx, cancel := requestContext()
	defer cancel()

	regs, err := registrations.GetRegistrationsByPatient(ctx, patientID)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(regs)
}

// UpdateAnswer corrects one answer in a registration. Admin only.
func UpdateAnswer(c *fiber.Ctx) error {
	if requesterRole(c) != models.RoleAdmin {
		return utils.HandleError(c, http.StatusForbidden, "Admin role required")
	}

	registrationID, err := primitive.ObjectIDFromHex(c.Params("id"))
	if err != nil {
		return utils.HandleError(c, http.StatusBadRequest, "Invalid registration ID")
	}
	answerID, err := primitive.ObjectIDFromHex(c.Params("answerId"))
	if err != nil {
		return utils.HandleError(c, http.StatusBadRequest, "Invalid answer ID")
	}

	var req models.UpdateAnswerRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.HandleError(c, http.StatusBadRequest, "Invalid input")
	}

	ctx, cancel := requestContext()
	defer cancel()

	registration, err := registrations.UpdateAnswer(ctx, registrationID, answerID, &req)
	if err != nil {
		switch {
		case errors.Is(err, registrations.ErrRegistrationNotFound),
			errors.Is(err, registrations.ErrAnswerNotFound):
			return utils.HandleError(c, http.StatusNotFound, err.Error())
		}
		return respondServiceError(c, err)
	}
	return c.JSON(registration)
}

// DeleteAnswer removes one answer from a registration. Admin only.
func DeleteAnswer(c *fiber.Ctx) error {
	if requesterRole(c) != models.RoleAdmin {
		return utils.HandleError(c, http.StatusForbidden, "Admin role required")
	}

	registrationID, err := primitive.ObjectIDFromHex(c.Params("id"))
	if err != nil {
		return utils.HandleError(c, http.StatusBadRequest, "Invalid registration ID")
	}
	answerID, err := primitive.ObjectIDFromHex(c.Params("answerId"))
	if err != nil {
		return utils.HandleError(c, http.StatusBadRequest, "Invalid answer ID")
	}

	ctx, cancel := requestContext()
	defer cancel()

	if err := registrations.DeleteAnswer(ctx, registrationID, answerID); err != nil {
		if errors.Is(err, registrations.ErrRegistrationNotFound) || errors.Is(err, registrations.ErrAnswerNotFound) {
			return utils.HandleError(c, http.StatusNotFound, err.Error())
		}
		return respondServiceError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Answer deleted successfully"})
}

// DeleteRegistration removes a registration with its answers. Admin only.
func DeleteRegistration(c *fiber.Ctx) error {
	if requesterRole(c) != models.RoleAdmin {
		return utils.HandleError(c, http.StatusForbidden, "Admin role required")
	}

	registrationID, err := primitive.ObjectIDFromHex(c.Params("id"))
	if err != nil {
		return utils.HandleError(c, http.StatusBadRequest, "Invalid registration ID")
	}

	ctx, cancel := requestContext()
	defer cancel()

	if err := registrations.DeleteRegistration(ctx, registrationID); err != nil {
		if errors.Is(err, registrations.ErrRegistrationNotFound) {
			return utils.HandleError(c, http.StatusNotFound, err.Error())
		}
		return respondServiceError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Registration deleted successfully"})
}
