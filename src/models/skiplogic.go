package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// --- SkipEdge ---
// A branching rule: answering OriginQuestionID with OriginOptionID jumps the
// flow to DestinationQuestionID. When OriginOptionID is nil the edge fires on
// any answer to the origin question, free text included.
//
// Edges reference questions and options by id but do not own them; the
// surveys service removes dependent edges when a question is deleted or its
// options are replaced. Insertion order is the _id order.
type SkipEdge struct {
	ID                    primitive.ObjectID  `bson:"_id,omitempty" json:"id,omitempty"`
	SurveyID              primitive.ObjectID  `bson:"surveyId" json:"surveyId"`
	OriginQuestionID      primitive.ObjectID  `bson:"originQuestionId" json:"originQuestionId"`
	OriginOptionID        *primitive.ObjectID `bson:"originOptionId,omitempty" json:"originOptionId,omitempty"`
	DestinationQuestionID primitive.ObjectID  `bson:"destinationQuestionId" json:"destinationQuestionId"`
}
