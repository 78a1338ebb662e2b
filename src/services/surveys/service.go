package surveys

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	DB "Backend-Encuestas/src/database"
	"Backend-Encuestas/src/models"
	"Backend-Encuestas/src/services/skiplogic"
	"Backend-Encuestas/src/utils"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var (
	ErrSurveyNotFound   = errors.New("survey not found")
	ErrQuestionNotFound = errors.New("question not found")
	ErrEmptyTitle       = errors.New("survey title must not be empty")
)

// CreateSurvey persists a survey with its nested questions and options.
// Question order is the request order; options receive ids before any skip
// edge referencing them is built. A SINGLE_CHOICE question without options
// is unanswerable — tolerated as a data issue with a warning, never an
// error. Options on a FREE_TEXT question are a composition error.
func CreateSurvey(ctx context.Context, req *models.CreateSurveyRequest) (*models.SurveyView, error) {
	if req.Title == "" {
		return nil, ErrEmptyTitle
	}

	now := time.Now()
	survey := &models.Survey{
		ID:        primitive.NewObjectID(),
		Title:     req.Title,
		Version:   req.Version,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if _, err := DB.SurveyCollection.InsertOne(ctx, survey); err != nil {
		return nil, err
	}

	for i, qReq := range req.Questions {
		if _, err := insertQuestion(ctx, survey.ID, &qReq, i+1); err != nil {
			return nil, err
		}
	}

	return GetSurvey(ctx, survey.ID)
}

// GetSurvey returns the full survey view: questions in definition order,
// each option annotated with the destination of the skip edge it fires.
// Served from the Redis cache when possible.
func GetSurvey(ctx context.Context, surveyID primitive.ObjectID) (*models.SurveyView, error) {
	if payload, ok, err := utils.GetCachedSurvey(surveyID.Hex()); err != nil {
		log.Println("⚠️ Survey cache read failed:", err)
	} else if ok {
		var view models.SurveyView
		if err := json.Unmarshal(payload, &view); err == nil {
			return &view, nil
		}
	}

	var survey models.Survey
	if err := DB.SurveyCollection.FindOne(ctx, bson.M{"_id": surveyID}).Decode(&survey); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrSurveyNotFound
		}
		return nil, err
	}

	questions, err := QuestionsForSurvey(ctx, surveyID)
	if err != nil {
		return nil, err
	}
	edges, err := skiplogic.EdgesForSurvey(ctx, surveyID)
	if err != nil {
		return nil, err
	}

	view := buildSurveyView(&survey, questions, edges)

	if payload, err := json.Marshal(view); err == nil {
		if err := utils.CacheSurvey(surveyID.Hex(), payload); err != nil {
			log.Println("⚠️ Survey cache write failed:", err)
		}
	}
	return view, nil
}

// ListSurveys returns surveys without their questions, newest first.
func ListSurveys(ctx context.Context, params models.PaginationParams) (*models.PaginatedResponse, error) {
	total, err := DB.SurveyCollection.CountDocuments(ctx, bson.M{})
	if err != nil {
		return nil, err
	}

	opts := options.Find().
		SetSkip(params.GetSkip()).
		SetLimit(int64(params.Limit)).
		SetSort(bson.D{{Key: "createdAt", Value: -1}})

	cursor, err := DB.SurveyCollection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var surveys []models.Survey
	if err = cursor.All(ctx, &surveys); err != nil {
		return nil, err
	}

	return models.NewPaginatedResponse(surveys, total, params), nil
}

// UpdateSurvey renames or re-versions a survey. Nothing else is touched.
func UpdateSurvey(ctx context.Context, surveyID primitive.ObjectID, req *models.UpdateSurveyRequest) (*models.SurveyView, error) {
	if req.Title == "" {
		return nil, ErrEmptyTitle
	}

	result, err := DB.SurveyCollection.UpdateOne(ctx,
		bson.M{"_id": surveyID},
		bson.M{"$set": bson.M{"title": req.Title, "version": req.Version, "updatedAt": time.Now()}},
	)
	if err != nil {
		return nil, err
	}
	if result.MatchedCount == 0 {
		return nil, ErrSurveyNotFound
	}

	invalidateCache(surveyID)
	return GetSurvey(ctx, surveyID)
}

// AddQuestion appends a question (with options) to an existing survey.
func AddQuestion(ctx context.Context, surveyID primitive.ObjectID, req *models.CreateQuestionRequest) (*models.QuestionView, error) {
	if err := DB.SurveyCollection.FindOne(ctx, bson.M{"_id": surveyID}).Err(); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrSurveyNotFound
		}
		return nil, err
	}

	count, err := DB.QuestionCollection.CountDocuments(ctx, bson.M{"surveyId": surveyID})
	if err != nil {
		return nil, err
	}

	question, err := insertQuestion(ctx, surveyID, req, int(count)+1)
	if err != nil {
		return nil, err
	}

	invalidateCache(surveyID)
	return questionViewFor(ctx, question)
}

// UpdateQuestion replaces a question's text, type, flags and full option
// list. Options get fresh ids, so edges fired by the old options are
// dropped and rebuilt from the request's destinations.
func UpdateQuestion(ctx context.Context, questionID primitive.ObjectID, req *models.CreateQuestionRequest) (*models.QuestionView, error) {
	var existing models.Question
	if err := DB.QuestionCollection.FindOne(ctx, bson.M{"_id": questionID}).Decode(&existing); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrQuestionNotFound
		}
		return nil, err
	}

	if err := checkComposition(questionID, req); err != nil {
		return nil, err
	}

	opts, optionDest := buildOptions(questionID, req)
	update := bson.M{"$set": bson.M{
		"text":      req.Text,
		"type":      req.Type,
		"mandatory": req.Mandatory,
		"hidden":    req.Hidden,
		"options":   opts,
	}}
	if _, err := DB.QuestionCollection.UpdateOne(ctx, bson.M{"_id": questionID}, update); err != nil {
		return nil, err
	}

	updated := existing
	updated.Text = req.Text
	updated.Type = req.Type
	updated.Mandatory = req.Mandatory
	updated.Hidden = req.Hidden
	updated.Options = opts

	if err := skiplogic.RebuildEdgesFromOptions(ctx, &updated, optionDest); err != nil {
		return nil, err
	}

	invalidateCache(existing.SurveyID)
	return questionViewFor(ctx, &updated)
}

// DeleteQuestion removes a question. Its embedded options die with the
// document; skip edges referencing the question from either end are removed
// by the same cascade.
func DeleteQuestion(ctx context.Context, questionID primitive.ObjectID) error {
	var question models.Question
	if err := DB.QuestionCollection.FindOne(ctx, bson.M{"_id": questionID}).Decode(&question); err != nil {
		if err == mongo.ErrNoDocuments {
			return ErrQuestionNotFound
		}
		return err
	}

	if _, err := DB.QuestionCollection.DeleteOne(ctx, bson.M{"_id": questionID}); err != nil {
		return err
	}
	if err := skiplogic.DeleteEdgesForQuestion(ctx, questionID); err != nil {
		return err
	}

	invalidateCache(question.SurveyID)
	return nil
}

// DeleteSurvey cascades: questions (with their options), the skip-edge set
// and the survey's registrations all go with the survey document.
func DeleteSurvey(ctx context.Context, surveyID primitive.ObjectID) error {
	result, err := DB.SurveyCollection.DeleteOne(ctx, bson.M{"_id": surveyID})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return ErrSurveyNotFound
	}

	if _, err := DB.QuestionCollection.DeleteMany(ctx, bson.M{"surveyId": surveyID}); err != nil {
		return err
	}
	if err := skiplogic.DeleteEdgesForSurvey(ctx, surveyID); err != nil {
		return err
	}
	if _, err := DB.RegistrationCollection.DeleteMany(ctx, bson.M{"surveyId": surveyID}); err != nil {
		return err
	}

	invalidateCache(surveyID)
	return nil
}

// QuestionsForSurvey loads a survey's questions in definition order.
func QuestionsForSurvey(ctx context.Context, surveyID primitive.ObjectID) ([]models.Question, error) {
	opts := options.Find().SetSort(bson.D{{Key: "order", Value: 1}, {Key: "_id", Value: 1}})
	cursor, err := DB.QuestionCollection.Find(ctx, bson.M{"surveyId": surveyID}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var questions []models.Question
	if err = cursor.All(ctx, &questions); err != nil {
		return nil, err
	}
	return questions, nil
}

// --- helpers ---

func insertQuestion(ctx context.Context, surveyID primitive.ObjectID, req *models.CreateQuestionRequest, order int) (*models.Question, error) {
	questionID := primitive.NewObjectID()
	if err := checkComposition(questionID, req); err != nil {
		return nil, err
	}

	opts, optionDest := buildOptions(questionID, req)
	question := &models.Question{
		ID:        questionID,
		SurveyID:  surveyID,
		Text:      req.Text,
		Type:      req.Type,
		Mandatory: req.Mandatory,
		Hidden:    req.Hidden,
		Order:     order,
		Options:   opts,
	}

	if _, err := DB.QuestionCollection.InsertOne(ctx, question); err != nil {
		return nil, err
	}
	if err := skiplogic.RebuildEdgesFromOptions(ctx, question, optionDest); err != nil {
		return nil, err
	}
	return question, nil
}

// checkComposition enforces the structural invariants of a question:
// FREE_TEXT questions carry no options; a SINGLE_CHOICE question with zero
// options is only warned about, matching how authored data in the field
// actually looks.
func checkComposition(questionID primitive.ObjectID, req *models.CreateQuestionRequest) error {
	if req.Type == models.FreeText && len(req.Options) > 0 {
		return &models.ValidationError{Violations: []models.Violation{{
			Code:       models.ViolationInvalidComposition,
			QuestionID: questionID,
			Message:    fmt.Sprintf("free-text question %q cannot carry options", req.Text),
		}}}
	}
	if req.Type == models.SingleChoice && len(req.Options) == 0 {
		log.Printf("⚠️ Warning: single-choice question %q has no options and cannot be answered", req.Text)
	}
	return nil
}

func buildOptions(questionID primitive.ObjectID, req *models.CreateQuestionRequest) ([]models.Option, map[primitive.ObjectID]*primitive.ObjectID) {
	opts := make([]models.Option, 0, len(req.Options))
	optionDest := make(map[primitive.ObjectID]*primitive.ObjectID)
	for _, oReq := range req.Options {
		opt := models.Option{
			ID:                primitive.NewObjectID(),
			QuestionID:        questionID,
			Text:              oReq.Text,
			DichotomizedValue: oReq.DichotomizedValue,
		}
		opts = append(opts, opt)
		if oReq.DestinationQuestionID != nil {
			optionDest[opt.ID] = oReq.DestinationQuestionID
		}
	}
	return opts, optionDest
}

func buildSurveyView(survey *models.Survey, questions []models.Question, edges []models.SkipEdge) *models.SurveyView {
	// First edge per origin option wins, matching runtime resolution.
	destByOption := make(map[primitive.ObjectID]primitive.ObjectID)
	for _, e := range edges {
		if e.OriginOptionID == nil {
			continue
		}
		if _, ok := destByOption[*e.OriginOptionID]; !ok {
			destByOption[*e.OriginOptionID] = e.DestinationQuestionID
		}
	}

	view := &models.SurveyView{
		ID:        survey.ID,
		Title:     survey.Title,
		Version:   survey.Version,
		Questions: make([]models.QuestionView, 0, len(questions)),
	}
	for _, q := range questions {
		qv := models.QuestionView{
			ID:        q.ID,
			Text:      q.Text,
			Type:      q.Type,
			Mandatory: q.Mandatory,
			Hidden:    q.Hidden,
			Order:     q.Order,
			Options:   make([]models.OptionView, 0, len(q.Options)),
		}
		for _, o := range q.Options {
			ov := models.OptionView{
				ID:                o.ID,
				Text:              o.Text,
				DichotomizedValue: o.DichotomizedValue,
			}
			if dest, ok := destByOption[o.ID]; ok {
				d := dest
				ov.DestinationQuestionID = &d
			}
			qv.Options = append(qv.Options, ov)
		}
		view.Questions = append(view.Questions, qv)
	}
	return view
}

func questionViewFor(ctx context.Context, question *models.Question) (*models.QuestionView, error) {
	edges, err := skiplogic.EdgesForSurvey(ctx, question.SurveyID)
	if err != nil {
		return nil, err
	}
	survey := &models.Survey{ID: question.SurveyID}
	view := buildSurveyView(survey, []models.Question{*question}, edges)
	return &view.Questions[0], nil
}

func invalidateCache(surveyID primitive.ObjectID) {
	if err := utils.InvalidateSurvey(surveyID.Hex()); err != nil {
		log.Println("⚠️ Survey cache invalidation failed:", err)
	}
}
