package registrations

import (
	"context"
	"errors"
	"fmt"
	"time"

	DB "Backend-Encuestas/src/database"
	"Backend-Encuestas/src/models"
	"Backend-Encuestas/src/services/surveys"
	"Backend-Encuestas/src/utils"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var (
	ErrPatientNotFound       = errors.New("patient not found")
	ErrRegistrationNotFound  = errors.New("registration not found")
	ErrAnswerNotFound        = errors.New("answer not found")
	ErrDuplicateRegistration = errors.New("patient already has a completed registration for this survey")
	ErrRegistrationCompleted = errors.New("registration is already completed")
)

// SubmitRegistration persists a respondent's answer set. A draft is stored
// as-is with no validation, so partial work survives a session. A completed
// submission must pass the validator and must be the patient's first
// completed registration for the survey. Answers are embedded in the
// registration document: one insert, all-or-nothing.
func SubmitRegistration(ctx context.Context, userID primitive.ObjectID, req *models.SubmitRegistrationRequest) (*models.Registration, error) {
	var patient models.Patient
	if err := DB.PatientCollection.FindOne(ctx, bson.M{"_id": req.PatientID}).Decode(&patient); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrPatientNotFound
		}
		return nil, err
	}
	if patient.ParticipantCode == nil {
		// Assigned on first contact so exports always have a pseudonym.
		code := utils.GenerateParticipantCode()
		if _, err := DB.PatientCollection.UpdateOne(ctx,
			bson.M{"_id": patient.ID},
			bson.M{"$set": bson.M{"participantCode": code}},
		); err != nil {
			return nil, err
		}
	}

	questions, err := surveys.QuestionsForSurvey(ctx, req.SurveyID)
	if err != nil {
		return nil, err
	}
	if err := DB.SurveyCollection.FindOne(ctx, bson.M{"_id": req.SurveyID}).Err(); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, surveys.ErrSurveyNotFound
		}
		return nil, err
	}

	state, violations := resolveSubmissionState(questions, req.Answers, req.IsDraft)
	if len(violations) > 0 {
		return nil, &models.ValidationError{Violations: violations}
	}
	if state == models.StateCompleted {
		// Read-then-insert guard. Two racing submissions can both pass;
		// the export layer tolerates the duplicate.
		count, err := DB.RegistrationCollection.CountDocuments(ctx, duplicateFilter(req.PatientID, userID, req.SurveyID))
		if err != nil {
			return nil, err
		}
		if count > 0 {
			return nil, ErrDuplicateRegistration
		}
	}

	registration := &models.Registration{
		ID:          primitive.NewObjectID(),
		PatientID:   req.PatientID,
		UserID:      userID,
		SurveyID:    req.SurveyID,
		PerformedAt: time.Now(),
		State:       state,
		Answers:     make([]models.Answer, 0, len(req.Answers)),
	}
	for _, a := range req.Answers {
		registration.Answers = append(registration.Answers, models.Answer{
			ID:               primitive.NewObjectID(),
			QuestionID:       a.QuestionID,
			SelectedOptionID: a.SelectedOptionID,
			FreeText:         a.FreeText,
		})
	}

	if _, err := DB.RegistrationCollection.InsertOne(ctx, registration); err != nil {
		return nil, err
	}
	return registration, nil
}

// CompleteDraft promotes a draft to COMPLETED after full validation,
// optionally replacing its answer set first.
func CompleteDraft(ctx context.Context, registrationID primitive.ObjectID, answers []models.AnswerInput) (*models.Registration, error) {
	registration, err := GetRegistration(ctx, registrationID)
	if err != nil {
		return nil, err
	}
	if registration.State == models.StateCompleted {
		return nil, ErrRegistrationCompleted
	}

	if answers != nil {
		registration.Answers = make([]models.Answer, 0, len(answers))
		for _, a := range answers {
			registration.Answers = append(registration.Answers, models.Answer{
				ID:               primitive.NewObjectID(),
				QuestionID:       a.QuestionID,
				SelectedOptionID: a.SelectedOptionID,
				FreeText:         a.FreeText,
			})
		}
	}

	questions, err := surveys.QuestionsForSurvey(ctx, registration.SurveyID)
	if err != nil {
		return nil, err
	}
	inputs := make([]models.AnswerInput, 0, len(registration.Answers))
	for _, a := range registration.Answers {
		inputs = append(inputs, models.AnswerInput{
			QuestionID:       a.QuestionID,
			SelectedOptionID: a.SelectedOptionID,
			FreeText:         a.FreeText,
		})
	}
	if violations := ValidateAnswers(questions, inputs); len(violations) > 0 {
		return nil, &models.ValidationError{Violations: violations}
	}

	count, err := DB.RegistrationCollection.CountDocuments(ctx, duplicateFilter(registration.PatientID, registration.UserID, registration.SurveyID))
	if err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, ErrDuplicateRegistration
	}

	update := bson.M{"$set": bson.M{
		"state":       models.StateCompleted,
		"performedAt": time.Now(),
		"answers":     registration.Answers,
	}}
	if _, err := DB.RegistrationCollection.UpdateOne(ctx, bson.M{"_id": registrationID}, update); err != nil {
		return nil, err
	}
	registration.State = models.StateCompleted
	return registration, nil
}

// GetRegistration loads one registration with its embedded answers.
func GetRegistration(ctx context.Context, registrationID primitive.ObjectID) (*models.Registration, error) {
	var registration models.Registration
	err := DB.RegistrationCollection.FindOne(ctx, bson.M{"_id": registrationID}).Decode(&registration)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrRegistrationNotFound
		}
		return nil, err
	}
	return &registration, nil
}

// GetDraftsByUser lists a user's own drafts, most recent first.
func GetDraftsByUser(ctx context.Context, userID primitive.ObjectID) ([]models.Registration, error) {
	return findRegistrations(ctx, bson.M{"userId": userID, "state": models.StateDraft})
}

// GetRegistrationsByPatient lists every registration for one patient.
func GetRegistrationsByPatient(ctx context.Context, patientID primitive.ObjectID) ([]models.Registration, error) {
	return findRegistrations(ctx, bson.M{"patientId": patientID})
}

// GetRegistrationsBySurvey lists every registration for one survey.
func GetRegistrationsBySurvey(ctx context.Context, surveyID primitive.ObjectID) ([]models.Registration, error) {
	return findRegistrations(ctx, bson.M{"surveyId": surveyID})
}

// resolveSubmissionState decides how an incoming answer set is stored. A
// draft is accepted verbatim, even empty; a completed submission must pass
// the full validator first.
func resolveSubmissionState(questions []models.Question, answers []models.AnswerInput, isDraft bool) (models.RegistrationState, []models.Violation) {
	if isDraft {
		return models.StateDraft, nil
	}
	return models.StateCompleted, ValidateAnswers(questions, answers)
}

// duplicateFilter matches an existing COMPLETED registration for either the
// same patient or the same interviewer on one survey.
func duplicateFilter(patientID, userID, surveyID primitive.ObjectID) bson.M {
	return bson.M{
		"surveyId": surveyID,
		"state":    models.StateCompleted,
		"$or": []bson.M{
			{"patientId": patientID},
			{"userId": userID},
		},
	}
}

func findRegistrations(ctx context.Context, filter bson.M) ([]models.Registration, error) {
	opts := options.Find().SetSort(bson.D{{Key: "performedAt", Value: -1}})
	cursor, err := DB.RegistrationCollection.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var registrations []models.Registration
	if err = cursor.All(ctx, &registrations); err != nil {
		return nil, err
	}
	return registrations, nil
}

// UpdateAnswer corrects one answer inside a registration. The replacement
// is validated against the question the answer belongs to before the
// positional update runs. Admin-only; the controller enforces the role.
func UpdateAnswer(ctx context.Context, registrationID, answerID primitive.ObjectID, req *models.UpdateAnswerRequest) (*models.Registration, error) {
	registration, err := GetRegistration(ctx, registrationID)
	if err != nil {
		return nil, err
	}

	var target *models.Answer
	for i := range registration.Answers {
		if registration.Answers[i].ID == answerID {
			target = &registration.Answers[i]
			break
		}
	}
	if target == nil {
		return nil, ErrAnswerNotFound
	}

	var question models.Question
	if err := DB.QuestionCollection.FindOne(ctx, bson.M{"_id": target.QuestionID}).Decode(&question); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, surveys.ErrQuestionNotFound
		}
		return nil, err
	}

	input := models.AnswerInput{
		QuestionID:       target.QuestionID,
		SelectedOptionID: req.SelectedOptionID,
		FreeText:         req.FreeText,
	}
	if violations := ValidateAnswers([]models.Question{question}, []models.AnswerInput{input}); hasShapeOrOptionViolation(violations) {
		return nil, &models.ValidationError{Violations: violations}
	}

	update := bson.M{"$set": bson.M{
		"answers.$.selectedOptionId": req.SelectedOptionID,
		"answers.$.freeText":         req.FreeText,
	}}
	filter := bson.M{"_id": registrationID, "answers._id": answerID}
	if _, err := DB.RegistrationCollection.UpdateOne(ctx, filter, update); err != nil {
		return nil, err
	}

	target.SelectedOptionID = req.SelectedOptionID
	target.FreeText = req.FreeText
	return registration, nil
}

// hasShapeOrOptionViolation filters out the mandatory sweep: a one-answer
// validation run against a one-question slice would otherwise flag every
// other mandatory question as missing.
func hasShapeOrOptionViolation(violations []models.Violation) bool {
	for _, v := range violations {
		if v.Code != models.ViolationMissingMandatoryAnswer {
			return true
		}
	}
	return false
}

// DeleteAnswer pulls one answer out of a registration. Admin-only.
func DeleteAnswer(ctx context.Context, registrationID, answerID primitive.ObjectID) error {
	result, err := DB.RegistrationCollection.UpdateOne(ctx,
		bson.M{"_id": registrationID},
		bson.M{"$pull": bson.M{"answers": bson.M{"_id": answerID}}},
	)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return ErrRegistrationNotFound
	}
	if result.ModifiedCount == 0 {
		return ErrAnswerNotFound
	}
	return nil
}

// DeleteRegistration removes a registration and its embedded answers.
func DeleteRegistration(ctx context.Context, registrationID primitive.ObjectID) error {
	result, err := DB.RegistrationCollection.DeleteOne(ctx, bson.M{"_id": registrationID})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return ErrRegistrationNotFound
	}
	return nil
}

// PurgeStaleDrafts deletes drafts older than the retention window. Used by
// the background job.
func PurgeStaleDrafts(ctx context.Context, olderThan time.Time) (int64, error) {
	result, err := DB.RegistrationCollection.DeleteMany(ctx, bson.M{
		"state":       models.StateDraft,
		"performedAt": bson.M{"$lt": olderThan},
	})
	if err != nil {
		return 0, fmt.Errorf("failed to purge stale drafts: %w", err)
	}
	return result.DeletedCount, nil
}
