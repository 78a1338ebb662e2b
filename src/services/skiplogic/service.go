package skiplogic

import (
	"context"
	"errors"

	DB "Backend-Encuestas/src/database"
	"Backend-Encuestas/src/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var (
	ErrQuestionNotFound = errors.New("question not found")
	ErrOptionNotFound   = errors.New("option not found")
	ErrCrossSurveyEdge  = errors.New("origin and destination belong to different surveys")
)

// AddEdge validates the endpoints and persists a new skip edge. Both
// questions must exist and belong to the same survey; a conditional edge's
// option must belong to the origin question.
func AddEdge(ctx context.Context, req *models.AddSkipEdgeRequest) (*models.SkipEdge, error) {
	var origin models.Question
	if err := DB.QuestionCollection.FindOne(ctx, bson.M{"_id": req.OriginQuestionID}).Decode(&origin); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrQuestionNotFound
		}
		return nil, err
	}

	var destination models.Question
	if err := DB.QuestionCollection.FindOne(ctx, bson.M{"_id": req.DestinationQuestionID}).Decode(&destination); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrQuestionNotFound
		}
		return nil, err
	}

	if origin.SurveyID != destination.SurveyID {
		return nil, ErrCrossSurveyEdge
	}
	if req.OriginOptionID != nil && origin.OptionByID(*req.OriginOptionID) == nil {
		return nil, ErrOptionNotFound
	}

	edge := &models.SkipEdge{
		ID:                    primitive.NewObjectID(),
		SurveyID:              origin.SurveyID,
		OriginQuestionID:      req.OriginQuestionID,
		OriginOptionID:        req.OriginOptionID,
		DestinationQuestionID: req.DestinationQuestionID,
	}
	if _, err := DB.SkipLogicCollection.InsertOne(ctx, edge); err != nil {
		return nil, err
	}
	return edge, nil
}

// EdgesForSurvey loads a survey's edge set in insertion (_id) order.
func EdgesForSurvey(ctx context.Context, surveyID primitive.ObjectID) ([]models.SkipEdge, error) {
	opts := options.Find().SetSort(bson.D{{Key: "_id", Value: 1}})
	cursor, err := DB.SkipLogicCollection.Find(ctx, bson.M{"surveyId": surveyID}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var edges []models.SkipEdge
	if err = cursor.All(ctx, &edges); err != nil {
		return nil, err
	}
	return edges, nil
}

// GraphForSurvey loads the edge set and wraps it in a Graph.
func GraphForSurvey(ctx context.Context, surveyID primitive.ObjectID) (*Graph, error) {
	edges, err := EdgesForSurvey(ctx, surveyID)
	if err != nil {
		return nil, err
	}
	return NewGraph(edges), nil
}

// DeleteEdgesForQuestion removes every edge whose origin or destination is
// the given question. Called by the surveys service when a question dies;
// edges are weak references and never outlive their endpoints.
func DeleteEdgesForQuestion(ctx context.Context, questionID primitive.ObjectID) error {
	_, err := DB.SkipLogicCollection.DeleteMany(ctx, bson.M{
		"$or": []bson.M{
			{"originQuestionId": questionID},
			{"destinationQuestionId": questionID},
		},
	})
	return err
}

// DeleteEdgesForSurvey removes the whole edge set, used by the survey
// cascade delete.
func DeleteEdgesForSurvey(ctx context.Context, surveyID primitive.ObjectID) error {
	_, err := DB.SkipLogicCollection.DeleteMany(ctx, bson.M{"surveyId": surveyID})
	return err
}

// RebuildEdgesFromOptions drops the edges originating at a question's
// options and recreates them from the options' destinations. Runs after
// options have received their ids during question creation or update.
func RebuildEdgesFromOptions(ctx context.Context, question *models.Question, optionDest map[primitive.ObjectID]*primitive.ObjectID) error {
	if _, err := DB.SkipLogicCollection.DeleteMany(ctx, bson.M{
		"originQuestionId": question.ID,
	}); err != nil {
		return err
	}

	var docs []interface{}
	for i := range question.Options {
		opt := &question.Options[i]
		dest, ok := optionDest[opt.ID]
		if !ok || dest == nil {
			continue
		}
		optID := opt.ID
		docs = append(docs, models.SkipEdge{
			ID:                    primitive.NewObjectID(),
			SurveyID:              question.SurveyID,
			OriginQuestionID:      question.ID,
			OriginOptionID:        &optID,
			DestinationQuestionID: *dest,
		})
	}
	if len(docs) == 0 {
		return nil
	}
	_, err := DB.SkipLogicCollection.InsertMany(ctx, docs)
	return err
}
