package seeder

import (
	"context"
	"log"

	DB "Backend-Encuestas/src/database"
	"Backend-Encuestas/src/models"
	"Backend-Encuestas/src/services/surveys"

	"go.mongodb.org/mongo-driver/bson"
)

const defaultSurveyTitle = "Estudio Cáncer Gástrico"

// SeedDefaultSurvey creates the gastric cancer study questionnaire on first
// start. Option labels are the ones the encoder dictionary knows, so a
// fresh database exports correctly out of the box.
func SeedDefaultSurvey(ctx context.Context) error {
	count, err := DB.SurveyCollection.CountDocuments(ctx, bson.M{"title": defaultSurveyTitle})
	if err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	req := &models.CreateSurveyRequest{
		Title:   defaultSurveyTitle,
		Version: "1.0",
		Questions: []models.CreateQuestionRequest{
			// Identificación del participante
			freeText("Código del participante", true),

			// Datos sociodemográficos
			freeText("Nacionalidad", true),
			choice("Zona", true, "Urbana", "Rural"),
			choice("¿Vive usted en esta zona desde hace más de 5 años?", true, "Sí", "No"),
			choice("Nivel educacional", true, "Básico", "Medio", "Superior"),
			freeText("Ocupación actual", true),
			choice("Previsión de salud actual", true, "Fonasa", "Isapre", "Capredena / Dipreca", "Sin previsión", "Otra"),
			freeText("Otra previsión (especificar)", false),

			// Antecedentes clínicos
			choice("Diagnóstico histológico de adenocarcinoma gástrico (solo casos)", false, "Sí", "No"),
			freeText("Fecha de diagnóstico (solo casos)", false),
			choice("Antecedentes familiares de cáncer gástrico", true, "Sí", "No"),
			choice("Antecedentes familiares de otros tipos de cáncer", true, "Sí", "No"),
			freeText("¿Cuál(es) otros tipos de cáncer?", false),
			freeText("Otras enfermedades relevantes (ej. gastritis crónica, úlcera péptica, anemia)", false),
			choice("Uso crónico de medicamentos gastrolesivos (AINES u otros)", true, "Sí", "No"),
			freeText("Especificar cuál medicamento", false),
			choice("Cirugía gástrica previa (gastrectomía parcial)", true, "Sí", "No"),

			// Tabaquismo
			choice("Estado de tabaquismo", true, "Nunca fumó", "Exfumador", "Fumador actual"),
			choice("Cantidad promedio fumada", false, "1–9 cigarrillos/día", "10–19 cigarrillos/día", "≥20 cigarrillos/día"),
			choice("Tiempo total fumando", false, "<10 años", "10–20 años", ">20 años"),
			choice("Si exfumador: tiempo desde que dejó de fumar", false, "<5 años", "5–10 años", ">10 años"),

			// Consumo de alcohol
			choice("Estado de consumo de alcohol", true, "Nunca", "Exconsumidor", "Consumidor actual"),
			choice("Frecuencia consumo alcohol", false, "Ocasional (<1 vez/sem)", "Regular (1–3 veces/sem)", "Frecuente (≥4 veces/sem)"),
			choice("Cantidad típica por ocasión", false, "1–2 tragos", "3–4 tragos", "≥5 tragos"),
			choice("Años de consumo habitual", false, "<10 años", "10–20 años", ">20 años"),
			choice("Si exconsumidor: tiempo desde que dejó de beber", false, "<5 años", "5–10 años", ">10 años"),

			// Factores dietarios y ambientales
			choice("Consumo de carnes procesadas/cecinas", true, "≤1/sem", "2/sem", "≥3/sem"),
			choice("Consumo de alimentos muy salados", true, "Sí", "No"),
			choice("Consumo de porciones de frutas y verduras frescas", true, "≥5 porciones/día", "3–4 porciones/día", "≤2 porciones/día"),
			choice("Consumo frecuente de frituras (≥3 veces por semana)", true, "Sí", "No"),
			choice("Consumo de alimentos muy condimentados", true, "Casi nunca", "1 a 2 veces por semana", "3 o más veces por semana"),
			choice("Consumo de infusiones o bebidas muy calientes", true, "Nunca/Rara vez", "1–2/sem", "≥3/sem"),
			choice("Exposición ocupacional a pesticidas", true, "Sí", "No"),
			choice("Exposición a otros compuestos químicos", true, "Sí", "No"),
			freeText("¿Cuál(es) compuestos químicos?", false),
			choice("Humo de leña en el hogar", true, "Nunca/Rara vez", "Estacional", "Diario"),
			choice("Fuente principal de agua en el hogar", true, "Red pública", "Pozo", "Camión aljibe", "Otra"),
			choice("Tratamiento del agua en casa", true, "Ninguno", "Hervir", "Filtro", "Cloro"),

			// Infección por Helicobacter pylori
			choice("Resultado del examen para Helicobacter pylori", true, "Positivo", "Negativo", "Desconocido"),
			choice("¿Ha tenido alguna vez un resultado POSITIVO para H. pylori en el pasado?", false, "Sí", "No", "No recuerda"),
			freeText("Si sí, año y tipo de examen", false),
			choice("¿Recibió tratamiento para erradicación de H. pylori?", false, "Sí", "No", "No recuerda"),
			freeText("Si sí, año y esquema", false),
			choice("Tipo de examen realizado", false, "Test de aliento", "Antígeno en deposiciones", "Serología", "Test rápido de ureasa", "Histología", "Otro"),
			choice("¿Hace cuánto tiempo se realizó el test?", false, "<1 año", "1–5 años", ">5 años"),
			choice("Uso de antibióticos o IBP en las 4 semanas previas", false, "Sí", "No", "No recuerda"),
			choice("¿Ha repetido el examen posteriormente?", false, "Sí", "No"),
			freeText("Si repitió, fecha y resultado más reciente", false),

			// Histopatología (solo casos)
			choice("Tipo histológico", false, "Intestinal", "Difuso", "Mixto", "Otro"),
			choice("Localización tumoral", false, "Cardias", "Cuerpo", "Antro", "Difuso"),
			freeText("Estadio clínico (TNM)", false),
		},
	}

	if _, err := surveys.CreateSurvey(ctx, req); err != nil {
		return err
	}
	log.Printf("✅ Survey %q seeded successfully", defaultSurveyTitle)
	return nil
}

func freeText(text string, mandatory bool) models.CreateQuestionRequest {
	return models.CreateQuestionRequest{
		Text:      text,
		Type:      models.FreeText,
		Mandatory: mandatory,
	}
}

func choice(text string, mandatory bool, options ...string) models.CreateQuestionRequest {
	opts := make([]models.CreateOptionRequest, 0, len(options))
	for _, o := range options {
		opts = append(opts, models.CreateOptionRequest{Text: o})
	}
	return models.CreateQuestionRequest{
		Text:      text,
		Type:      models.SingleChoice,
		Mandatory: mandatory,
		Options:   opts,
	}
}
