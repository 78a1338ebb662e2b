package exports

import (
	"errors"
	"testing"
	"time"

	"Backend-Encuestas/src/models"
	"Backend-Encuestas/src/services/surveys"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

func buildFixture() ([]models.Question, models.Registration, *models.Patient, *models.User) {
	zona := models.Question{ID: primitive.NewObjectID(), Text: "Zona", Type: models.SingleChoice}
	zona.Options = []models.Option{
		{ID: primitive.NewObjectID(), QuestionID: zona.ID, Text: "Urbana"},
		{ID: primitive.NewObjectID(), QuestionID: zona.ID, Text: "Rural"},
	}
	ocupacion := models.Question{ID: primitive.NewObjectID(), Text: "Ocupación actual", Type: models.FreeText}
	tabaco := models.Question{ID: primitive.NewObjectID(), Text: "Estado de tabaquismo", Type: models.SingleChoice}
	tabaco.Options = []models.Option{
		{ID: primitive.NewObjectID(), QuestionID: tabaco.ID, Text: "Nunca fumó"},
		{ID: primitive.NewObjectID(), QuestionID: tabaco.ID, Text: "Fumador actual"},
	}

	code := "P-9f8e7d6c"
	patient := &models.Patient{
		ID:              primitive.NewObjectID(),
		FirstName:       "Pedro",
		LastName:        "Rojas",
		ParticipantCode: &code,
	}
	user := &models.User{ID: primitive.NewObjectID(), Username: "enc.lopez", Role: models.RoleInvestigador}

	ocupacionText := "Agricultor"
	reg := models.Registration{
		ID:          primitive.NewObjectID(),
		PatientID:   patient.ID,
		UserID:      user.ID,
		PerformedAt: time.Date(2026, 3, 14, 10, 30, 0, 0, time.UTC),
		State:       models.StateCompleted,
		Answers: []models.Answer{
			{ID: primitive.NewObjectID(), QuestionID: zona.ID, SelectedOptionID: &zona.Options[0].ID},
			{ID: primitive.NewObjectID(), QuestionID: ocupacion.ID, FreeText: &ocupacionText},
			{ID: primitive.NewObjectID(), QuestionID: tabaco.ID, SelectedOptionID: &tabaco.Options[1].ID},
		},
	}

	return []models.Question{zona, ocupacion, tabaco}, reg, patient, user
}

func TestSurveyLookupError(t *testing.T) {
	t.Run("MissingDocumentMeansNotFound", func(t *testing.T) {
		assert.ErrorIs(t, surveyLookupError(mongo.ErrNoDocuments), surveys.ErrSurveyNotFound)
	})

	t.Run("InfrastructureFailurePropagates", func(t *testing.T) {
		cause := errors.New("server selection timeout")
		err := surveyLookupError(cause)
		assert.Equal(t, cause, err)
		assert.NotErrorIs(t, err, surveys.ErrSurveyNotFound)
	})
}

func TestBuildGrid(t *testing.T) {
	questions, reg, patient, user := buildFixture()
	patients := map[primitive.ObjectID]*models.Patient{patient.ID: patient}
	users := map[primitive.ObjectID]*models.User{user.ID: user}

	t.Run("HeaderLayout", func(t *testing.T) {
		grid := BuildGrid(questions, nil, patients, users, models.RoleAnalista)

		require.Len(t, grid, 1)
		assert.Equal(t, []string{"ID Registro", "Fecha", "Paciente", "Usuario", "Zona", "Ocupación actual", "Estado de tabaquismo"}, grid[0])
	})

	t.Run("AnalystSeesEncodedCells", func(t *testing.T) {
		grid := BuildGrid(questions, []models.Registration{reg}, patients, users, models.RoleAnalista)

		require.Len(t, grid, 2)
		row := grid[1]
		assert.Equal(t, reg.ID.Hex(), row[0])
		assert.Equal(t, "2026-03-14 10:30:00", row[1])
		assert.Equal(t, "P-9f8e7d6c", row[2])
		assert.Equal(t, "User-"+user.ID.Hex(), row[3])
		assert.Equal(t, "1", row[4])          // Urbana
		assert.Equal(t, "Agricultor", row[5]) // free text passes through
		assert.Equal(t, "2", row[6])          // Fumador actual
	})

	t.Run("AdminSeesRawCells", func(t *testing.T) {
		grid := BuildGrid(questions, []models.Registration{reg}, patients, users, models.RoleAdmin)

		require.Len(t, grid, 2)
		row := grid[1]
		assert.Equal(t, "Pedro Rojas", row[2])
		assert.Equal(t, "enc.lopez", row[3])
		assert.Equal(t, "Urbana", row[4])
		assert.Equal(t, "Fumador actual", row[6])
	})

	t.Run("UnansweredQuestionIsEmpty", func(t *testing.T) {
		partial := reg
		partial.Answers = reg.Answers[:1]

		grid := BuildGrid(questions, []models.Registration{partial}, patients, users, models.RoleAnalista)
		row := grid[1]
		assert.Equal(t, "1", row[4])
		assert.Equal(t, "", row[5])
		assert.Equal(t, "", row[6])
	})

	t.Run("MissingPatientAndUserLeaveBlankColumns", func(t *testing.T) {
		grid := BuildGrid(questions, []models.Registration{reg}, map[primitive.ObjectID]*models.Patient{}, map[primitive.ObjectID]*models.User{}, models.RoleAnalista)
		row := grid[1]
		assert.Equal(t, "", row[2])
		assert.Equal(t, "", row[3])
	})

	t.Run("RowsAlwaysRectangular", func(t *testing.T) {
		grid := BuildGrid(questions, []models.Registration{reg}, patients, users, models.RoleUser)
		for _, row := range grid {
			assert.Len(t, row, len(grid[0]))
		}
	})
}
