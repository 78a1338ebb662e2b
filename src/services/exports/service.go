package exports

import (
	"context"

	DB "Backend-Encuestas/src/database"
	"Backend-Encuestas/src/models"
	"Backend-Encuestas/src/services/registrations"
	"Backend-Encuestas/src/services/surveys"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// BuildGrid lays out registrations as a rectangular table: a header row of
// fixed columns plus one column per question in definition order, then one
// row per registration. Every answer cell runs through the encoder and the
// patient/user columns through the anonymizers, so the role decides what
// the caller actually sees. Pure: all data arrives as arguments.
func BuildGrid(questions []models.Question, regs []models.Registration,
	patients map[primitive.ObjectID]*models.Patient,
	users map[primitive.ObjectID]*models.User,
	role models.Role) [][]string {

	header := []string{"ID Registro", "Fecha", "Paciente", "Usuario"}
	for _, q := range questions {
		header = append(header, q.Text)
	}

	grid := [][]string{header}
	for _, reg := range regs {
		row := make([]string, 0, len(header))
		row = append(row, reg.ID.Hex())
		row = append(row, reg.PerformedAt.Format("2006-01-02 15:04:05"))

		if p, ok := patients[reg.PatientID]; ok {
			row = append(row, AnonymizePatient(p, role))
		} else {
			row = append(row, "")
		}
		if u, ok := users[reg.UserID]; ok {
			row = append(row, AnonymizeUser(u, role))
		} else {
			row = append(row, "")
		}

		// First answer per question wins, matching validation.
		answerByQuestion := make(map[primitive.ObjectID]string, len(reg.Answers))
		for i := range reg.Answers {
			a := &reg.Answers[i]
			if _, seen := answerByQuestion[a.QuestionID]; seen {
				continue
			}
			answerByQuestion[a.QuestionID] = answerText(questions, a)
		}

		for _, q := range questions {
			row = append(row, EncodeAnswer(q.Text, answerByQuestion[q.ID], role))
		}
		grid = append(grid, row)
	}
	return grid
}

// GridForSurvey loads everything BuildGrid needs and runs it. When
// patientID is set, only that patient's registrations are exported.
func GridForSurvey(ctx context.Context, surveyID primitive.ObjectID, patientID *primitive.ObjectID, role models.Role) ([][]string, error) {
	if err := DB.SurveyCollection.FindOne(ctx, bson.M{"_id": surveyID}).Err(); err != nil {
		return nil, surveyLookupError(err)
	}
	questions, err := surveys.QuestionsForSurvey(ctx, surveyID)
	if err != nil {
		return nil, err
	}

	var regs []models.Registration
	if patientID != nil {
		all, err := registrations.GetRegistrationsByPatient(ctx, *patientID)
		if err != nil {
			return nil, err
		}
		for _, r := range all {
			if r.SurveyID == surveyID {
				regs = append(regs, r)
			}
		}
	} else {
		regs, err = registrations.GetRegistrationsBySurvey(ctx, surveyID)
		if err != nil {
			return nil, err
		}
	}

	patients, err := loadPatients(ctx, regs)
	if err != nil {
		return nil, err
	}
	users, err := loadUsers(ctx, regs)
	if err != nil {
		return nil, err
	}

	return BuildGrid(questions, regs, patients, users, role), nil
}

// surveyLookupError keeps not-found distinct from infrastructure failures:
// only a missing document becomes ErrSurveyNotFound, anything else (outage,
// timeout) propagates unchanged.
func surveyLookupError(err error) error {
	if err == mongo.ErrNoDocuments {
		return surveys.ErrSurveyNotFound
	}
	return err
}

func answerText(questions []models.Question, a *models.Answer) string {
	switch a.Kind() {
	case models.AnswerOption:
		for i := range questions {
			if questions[i].ID != a.QuestionID {
				continue
			}
			if opt := questions[i].OptionByID(*a.SelectedOptionID); opt != nil {
				return opt.Text
			}
		}
		return ""
	case models.AnswerFreeText:
		return *a.FreeText
	default:
		return ""
	}
}

func loadPatients(ctx context.Context, regs []models.Registration) (map[primitive.ObjectID]*models.Patient, error) {
	ids := make([]primitive.ObjectID, 0, len(regs))
	seen := make(map[primitive.ObjectID]struct{}, len(regs))
	for _, r := range regs {
		if _, ok := seen[r.PatientID]; !ok {
			seen[r.PatientID] = struct{}{}
			ids = append(ids, r.PatientID)
		}
	}
	out := make(map[primitive.ObjectID]*models.Patient, len(ids))
	if len(ids) == 0 {
		return out, nil
	}

	cursor, err := DB.PatientCollection.Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var patients []models.Patient
	if err = cursor.All(ctx, &patients); err != nil {
		return nil, err
	}
	for i := range patients {
		out[patients[i].ID] = &patients[i]
	}
	return out, nil
}

func loadUsers(ctx context.Context, regs []models.Registration) (map[primitive.ObjectID]*models.User, error) {
	ids := make([]primitive.ObjectID, 0, len(regs))
	seen := make(map[primitive.ObjectID]struct{}, len(regs))
	for _, r := range regs {
		if _, ok := seen[r.UserID]; !ok {
			seen[r.UserID] = struct{}{}
			ids = append(ids, r.UserID)
		}
	}
	out := make(map[primitive.ObjectID]*models.User, len(ids))
	if len(ids) == 0 {
		return out, nil
	}

	cursor, err := DB.UserCollection.Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var users []models.User
	if err = cursor.All(ctx, &users); err != nil {
		return nil, err
	}
	for i := range users {
		out[users[i].ID] = &users[i]
	}
	return out, nil
}
