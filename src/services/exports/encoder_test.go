package exports

import (
	"testing"

	"Backend-Encuestas/src/models"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestEncodeAnswer(t *testing.T) {
	t.Run("AdminSeesRawValues", func(t *testing.T) {
		assert.Equal(t, "Fumador actual", EncodeAnswer("Estado de tabaquismo", "Fumador actual", models.RoleAdmin))
		assert.Equal(t, "María", EncodeAnswer("Nacionalidad", "María", models.RoleAdmin))
	})

	t.Run("BlankAnswer", func(t *testing.T) {
		assert.Equal(t, "", EncodeAnswer("Zona", "", models.RoleAnalista))
		assert.Equal(t, "", EncodeAnswer("Zona", "   ", models.RoleAnalista))
	})

	t.Run("DictionaryLookup", func(t *testing.T) {
		assert.Equal(t, "1", EncodeAnswer("Zona", "Urbana", models.RoleAnalista))
		assert.Equal(t, "0", EncodeAnswer("Zona", "Rural", models.RoleAnalista))
		assert.Equal(t, "1", EncodeAnswer("¿Vive usted en esta zona?", "Sí", models.RoleAnalista))
		assert.Equal(t, "2", EncodeAnswer("Estado de tabaquismo", "Fumador actual", models.RoleAnalista))
	})

	t.Run("CaseInsensitive", func(t *testing.T) {
		assert.Equal(t, "1", EncodeAnswer("Zona", "URBANA", models.RoleAnalista))
	})

	t.Run("DashNormalization", func(t *testing.T) {
		// En-dash and hyphen spellings of the same option encode alike.
		assert.Equal(t, EncodeAnswer("Tiempo total fumando", "10–20 años", models.RoleAnalista),
			EncodeAnswer("Tiempo total fumando", "10-20 años", models.RoleAnalista))
		assert.Equal(t, "1", EncodeAnswer("Cantidad promedio fumada", "10–19 cigarrillos/día", models.RoleAnalista))
		assert.Equal(t, "1", EncodeAnswer("Cantidad promedio fumada", "10-19 cigarrillos/día", models.RoleAnalista))
	})

	t.Run("PrefixFallback", func(t *testing.T) {
		// Trailing qualifiers missing from the dictionary still match.
		assert.Equal(t, "0", EncodeAnswer("Cantidad típica", "1-2 tragos (poco)", models.RoleAnalista))
		assert.Equal(t, "2", EncodeAnswer("Fuente principal de agua en el hogar", "Camión aljibe", models.RoleAnalista))
		// "No recuerda" must not collapse into plain "No".
		assert.Equal(t, "2", EncodeAnswer("¿Recibió tratamiento?", "No recuerda", models.RoleAnalista))
	})

	t.Run("PrevisionContext", func(t *testing.T) {
		assert.Equal(t, "4", EncodeAnswer("Previsión de salud actual", "Otra", models.RoleAnalista))
		assert.Equal(t, "2", EncodeAnswer("Previsión de salud actual", "Capredena / Dipreca", models.RoleAnalista))
		assert.Equal(t, "0", EncodeAnswer("Previsión de salud actual", "Fonasa", models.RoleAnalista))
	})

	t.Run("WaterContext", func(t *testing.T) {
		assert.Equal(t, "3", EncodeAnswer("Fuente principal de agua en el hogar", "Otra", models.RoleAnalista))
		assert.Equal(t, "3", EncodeAnswer("Tratamiento del agua en casa", "Otro", models.RoleAnalista))
	})

	t.Run("HistopathologyContext", func(t *testing.T) {
		// "Difuso" is 1 on the Lauren type and 3 as a tumor location.
		assert.Equal(t, "1", EncodeAnswer("Tipo histológico", "Difuso", models.RoleAnalista))
		assert.Equal(t, "3", EncodeAnswer("Localización tumoral", "Difuso", models.RoleAnalista))
		assert.Equal(t, "3", EncodeAnswer("Tipo histológico", "Otro", models.RoleAnalista))
		assert.Equal(t, "0", EncodeAnswer("Localización tumoral", "Cardias", models.RoleAnalista))
	})

	t.Run("HelicobacterInversion", func(t *testing.T) {
		assert.Equal(t, "0", EncodeAnswer("Resultado del examen para Helicobacter pylori", "Positivo", models.RoleAnalista))
		assert.Equal(t, "1", EncodeAnswer("Resultado del examen para Helicobacter pylori", "Negativo", models.RoleAnalista))
		assert.Equal(t, "2", EncodeAnswer("Resultado del examen para Helicobacter pylori", "Desconocido", models.RoleAnalista))
		// "Sí" to a past-positive question means Positive.
		assert.Equal(t, "0", EncodeAnswer("¿Ha tenido alguna vez un resultado POSITIVO para H. pylori en el pasado?", "Sí", models.RoleAnalista))
		assert.Equal(t, "1", EncodeAnswer("¿Ha tenido alguna vez un resultado POSITIVO para H. pylori en el pasado?", "No", models.RoleAnalista))
		assert.Equal(t, "2", EncodeAnswer("¿Ha tenido alguna vez un resultado POSITIVO para H. pylori en el pasado?", "No recuerda", models.RoleAnalista))
		// Outside the H. pylori scope the standard coding applies.
		assert.Equal(t, "1", EncodeAnswer("Resultado de biopsia", "Positivo", models.RoleAnalista))
	})

	t.Run("ExamTypeSubstrings", func(t *testing.T) {
		assert.Equal(t, "1", EncodeAnswer("Tipo de examen realizado", "Test de aliento", models.RoleAnalista))
		assert.Equal(t, "2", EncodeAnswer("Tipo de examen realizado", "Antígeno en deposiciones", models.RoleAnalista))
		assert.Equal(t, "3", EncodeAnswer("Tipo de examen realizado", "Serología", models.RoleAnalista))
		assert.Equal(t, "4", EncodeAnswer("Tipo de examen realizado", "Test rápido de ureasa", models.RoleAnalista))
		assert.Equal(t, "5", EncodeAnswer("Tipo de examen realizado", "Histología", models.RoleAnalista))
		assert.Equal(t, "5", EncodeAnswer("Tipo de examen realizado", "Biopsia gástrica", models.RoleAnalista))
		assert.Equal(t, "6", EncodeAnswer("Tipo de examen realizado", "Otro método", models.RoleAnalista))
	})

	t.Run("NationalityVisibility", func(t *testing.T) {
		assert.Equal(t, "REDACTED", EncodeAnswer("Nacionalidad", "Chilena", models.RoleAnalista))
		assert.Equal(t, "REDACTED", EncodeAnswer("Nacionalidad", "Chilena", models.RoleUser))
		assert.Equal(t, "Chilena", EncodeAnswer("Nacionalidad", "Chilena", models.RoleInvestigador))
		assert.Equal(t, "Chilena", EncodeAnswer("Nacionalidad", "Chilena", models.RoleAdmin))
	})

	t.Run("UnmatchedTextPassesThrough", func(t *testing.T) {
		assert.Equal(t, "45", EncodeAnswer("Edad", "45", models.RoleAnalista))
		assert.Equal(t, "gastritis crónica", EncodeAnswer("Otras enfermedades relevantes", "gastritis crónica", models.RoleAnalista))
	})
}

func TestAnonymizePatient(t *testing.T) {
	code := "P-1a2b3c4d"
	p := &models.Patient{
		ID:              primitive.NewObjectID(),
		FirstName:       "Juana",
		LastName:        "Pérez",
		ParticipantCode: &code,
	}

	assert.Equal(t, "Juana Pérez", AnonymizePatient(p, models.RoleAdmin))
	assert.Equal(t, code, AnonymizePatient(p, models.RoleAnalista))
	assert.Equal(t, code, AnonymizePatient(p, models.RoleInvestigador))

	p.ParticipantCode = nil
	assert.Equal(t, "ANON-"+p.ID.Hex(), AnonymizePatient(p, models.RoleAnalista))
}

func TestAnonymizeUser(t *testing.T) {
	u := &models.User{ID: primitive.NewObjectID(), Username: "dra.soto"}

	assert.Equal(t, "dra.soto", AnonymizeUser(u, models.RoleAdmin))
	assert.Equal(t, "User-"+u.ID.Hex(), AnonymizeUser(u, models.RoleAnalista))
}
