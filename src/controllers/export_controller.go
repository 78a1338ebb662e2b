package controllers

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"net/http"

	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"Backend-Encuestas/src/services/exports"
	"Backend-Encuestas/src/services/surveys"
	"Backend-Encuestas/src/utils"
)

func exportGrid(c *fiber.Ctx) ([][]string, error) {
	surveyID, err := primitive.ObjectIDFromHex(c.Params("id"))
	if err != nil {
		return nil, utils.HandleError(c, http.StatusBadRequest, "Invalid survey ID")
	}

	var patientID *primitive.ObjectID
	if raw := c.Query("idPaciente"); raw != "" {
		id, err := primitive.ObjectIDFromHex(raw)
		if err != nil {
			return nil, utils.HandleError(c, http.StatusBadRequest, "Invalid patient ID")
		}
		patientID = &id
	}

	ctx, cancel := requestContext()
	defer cancel()

	grid, err := exports.GridForSurvey(ctx, surveyID, patientID, requesterRole(c))
	if err != nil {
		if errors.Is(err, surveys.ErrSurveyNotFound) {
			return nil, utils.HandleError(c, http.StatusNotFound, err.Error())
		}
		return nil, respondServiceError(c, err)
	}
	return grid, nil
}

// ExportGrid returns the encoded result table as JSON rows.
func ExportGrid(c *fiber.Ctx) error {
	grid, err := exportGrid(c)
	if grid == nil {
		return err
	}
	return c.JSON(fiber.Map{"rows": grid})
}

// ExportCSV streams the encoded result table as a CSV download. What each
// cell contains depends on the requester's role; the byte format does not.
func ExportCSV(c *fiber.Ctx) error {
	grid, err := exportGrid(c)
	if grid == nil {
		return err
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.WriteAll(grid); err != nil {
		return utils.HandleError(c, http.StatusInternalServerError, "Failed to render CSV")
	}

	c.Set(fiber.HeaderContentType, "text/csv")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=encuesta_%s.csv", c.Params("id")))
	return c.Send(buf.Bytes())
}
