package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// QuestionType is the answer shape a question expects.
type QuestionType string

const (
	FreeText     QuestionType = "FREE_TEXT"
	SingleChoice QuestionType = "SINGLE_CHOICE"
)

// --- Survey ---
type Survey struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	Title     string             `bson:"title" json:"title"`
	Version   string             `bson:"version" json:"version"`
	CreatedAt time.Time          `bson:"createdAt,omitempty" json:"createdAt"`
	UpdatedAt time.Time          `bson:"updatedAt,omitempty" json:"updatedAt"`
}

// --- Question ---
// Definition order is the `order` field, ties broken by _id.
type Question struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	SurveyID  primitive.ObjectID `bson:"surveyId" json:"surveyId"`
	Text      string             `bson:"text" json:"text"`
	Type      QuestionType       `bson:"type" json:"type"`
	Mandatory bool               `bson:"mandatory" json:"mandatory"`
	Hidden    bool               `bson:"hidden" json:"hidden"`
	Order     int                `bson:"order" json:"order"`

	Options []Option `bson:"options,omitempty" json:"options,omitempty"`
}

// --- Option ---
// DichotomizedValue is an author-supplied shortcut code. It is independent of
// the export encoder's own mapping.
type Option struct {
	ID                primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	QuestionID        primitive.ObjectID `bson:"questionId" json:"questionId"`
	Text              string             `bson:"text" json:"text"`
	DichotomizedValue *int               `bson:"dichotomizedValue,omitempty" json:"dichotomizedValue,omitempty"`
}

// OptionByID returns the embedded option with the given id, if any.
func (q *Question) OptionByID(id primitive.ObjectID) *Option {
	for i := range q.Options {
		if q.Options[i].ID == id {
			return &q.Options[i]
		}
	}
	return nil
}
