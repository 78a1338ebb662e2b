package surveys

import (
	"errors"
	"testing"

	"Backend-Encuestas/src/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestBuildSurveyView(t *testing.T) {
	survey := &models.Survey{ID: primitive.NewObjectID(), Title: "Estudio", Version: "1.0"}

	q1 := models.Question{ID: primitive.NewObjectID(), SurveyID: survey.ID, Text: "Zona", Type: models.SingleChoice, Order: 1}
	q1.Options = []models.Option{
		{ID: primitive.NewObjectID(), QuestionID: q1.ID, Text: "Urbana"},
		{ID: primitive.NewObjectID(), QuestionID: q1.ID, Text: "Rural"},
	}
	q2 := models.Question{ID: primitive.NewObjectID(), SurveyID: survey.ID, Text: "Ocupación", Type: models.FreeText, Order: 2}
	q3 := models.Question{ID: primitive.NewObjectID(), SurveyID: survey.ID, Text: "Final", Type: models.FreeText, Order: 3}

	edges := []models.SkipEdge{
		{
			ID:                    primitive.NewObjectID(),
			SurveyID:              survey.ID,
			OriginQuestionID:      q1.ID,
			OriginOptionID:        &q1.Options[0].ID,
			DestinationQuestionID: q3.ID,
		},
		// second edge for the same option loses, mirroring runtime
		{
			ID:                    primitive.NewObjectID(),
			SurveyID:              survey.ID,
			OriginQuestionID:      q1.ID,
			OriginOptionID:        &q1.Options[0].ID,
			DestinationQuestionID: q2.ID,
		},
	}

	view := buildSurveyView(survey, []models.Question{q1, q2, q3}, edges)

	assert.Equal(t, "Estudio", view.Title)
	require.Len(t, view.Questions, 3)

	urbana := view.Questions[0].Options[0]
	require.NotNil(t, urbana.DestinationQuestionID)
	assert.Equal(t, q3.ID, *urbana.DestinationQuestionID)

	rural := view.Questions[0].Options[1]
	assert.Nil(t, rural.DestinationQuestionID)
	assert.Empty(t, view.Questions[1].Options)
}

func TestCheckComposition(t *testing.T) {
	t.Run("OptionsOnFreeText", func(t *testing.T) {
		req := &models.CreateQuestionRequest{
			Text: "Ocupación",
			Type: models.FreeText,
			Options: []models.CreateOptionRequest{
				{Text: "Urbana"},
			},
		}

		err := checkComposition(primitive.NewObjectID(), req)
		require.Error(t, err)

		var vErr *models.ValidationError
		require.True(t, errors.As(err, &vErr))
		require.Len(t, vErr.Violations, 1)
		assert.Equal(t, models.ViolationInvalidComposition, vErr.Violations[0].Code)
	})

	t.Run("ChoiceWithoutOptionsOnlyWarns", func(t *testing.T) {
		req := &models.CreateQuestionRequest{Text: "Zona", Type: models.SingleChoice}
		assert.NoError(t, checkComposition(primitive.NewObjectID(), req))
	})

	t.Run("ValidChoice", func(t *testing.T) {
		req := &models.CreateQuestionRequest{
			Text: "Zona",
			Type: models.SingleChoice,
			Options: []models.CreateOptionRequest{
				{Text: "Urbana"},
				{Text: "Rural"},
			},
		}
		assert.NoError(t, checkComposition(primitive.NewObjectID(), req))
	})
}

func TestBuildOptions(t *testing.T) {
	questionID := primitive.NewObjectID()
	dest := primitive.NewObjectID()
	dicot := 1

	req := &models.CreateQuestionRequest{
		Text: "Zona",
		Type: models.SingleChoice,
		Options: []models.CreateOptionRequest{
			{Text: "Urbana", DichotomizedValue: &dicot, DestinationQuestionID: &dest},
			{Text: "Rural"},
		},
	}

	options, optionDest := buildOptions(questionID, req)

	require.Len(t, options, 2)
	assert.Equal(t, questionID, options[0].QuestionID)
	assert.Equal(t, "Urbana", options[0].Text)
	require.NotNil(t, options[0].DichotomizedValue)

	require.Len(t, optionDest, 1)
	assert.Equal(t, dest, *optionDest[options[0].ID])
}
