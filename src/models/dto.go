package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// --- Requests ---

type CreateSurveyRequest struct {
	Title     string                  `json:"title" validate:"required"`
	Version   string                  `json:"version"`
	Questions []CreateQuestionRequest `json:"questions" validate:"dive"`
}

type CreateQuestionRequest struct {
	Text      string                `json:"text" validate:"required"`
	Type      QuestionType          `json:"type" validate:"required,oneof=FREE_TEXT SINGLE_CHOICE"`
	Mandatory bool                  `json:"mandatory"`
	Hidden    bool                  `json:"hidden"`
	Options   []CreateOptionRequest `json:"options" validate:"dive"`
}

// DestinationQuestionID, when set, rebuilds the skip edge fired by this
// option once the option has received its id.
type CreateOptionRequest struct {
	Text                  string              `json:"text" validate:"required"`
	DichotomizedValue     *int                `json:"dichotomizedValue"`
	DestinationQuestionID *primitive.ObjectID `json:"destinationQuestionId"`
}

type UpdateSurveyRequest struct {
	Title   string `json:"title" validate:"required"`
	Version string `json:"version"`
}

type AddSkipEdgeRequest struct {
	OriginQuestionID      primitive.ObjectID  `json:"originQuestionId" validate:"required"`
	OriginOptionID        *primitive.ObjectID `json:"originOptionId"`
	DestinationQuestionID primitive.ObjectID  `json:"destinationQuestionId" validate:"required"`
}

type SubmitRegistrationRequest struct {
	PatientID primitive.ObjectID `json:"patientId" validate:"required"`
	SurveyID  primitive.ObjectID `json:"surveyId" validate:"required"`
	IsDraft   bool               `json:"isDraft"`
	Answers   []AnswerInput      `json:"answers" validate:"dive"`
}

// AnswerInput mirrors Answer without ids assigned yet.
type AnswerInput struct {
	QuestionID       primitive.ObjectID  `json:"questionId" validate:"required"`
	SelectedOptionID *primitive.ObjectID `json:"selectedOptionId"`
	FreeText         *string             `json:"freeText"`
}

// Kind reports which side of the union is populated, same rules as Answer.
func (a AnswerInput) Kind() AnswerKind {
	return Answer{SelectedOptionID: a.SelectedOptionID, FreeText: a.FreeText}.Kind()
}

type UpdateAnswerRequest struct {
	SelectedOptionID *primitive.ObjectID `json:"selectedOptionId"`
	FreeText         *string             `json:"freeText"`
}

// --- Views ---

// SurveyView is the full survey sent to clients: questions in definition
// order, each option annotated with the question its skip edge points to.
type SurveyView struct {
	ID        primitive.ObjectID `json:"id"`
	Title     string             `json:"title"`
	Version   string             `json:"version"`
	Questions []QuestionView     `json:"questions"`
}

type QuestionView struct {
	ID        primitive.ObjectID `json:"id"`
	Text      string             `json:"text"`
	Type      QuestionType       `json:"type"`
	Mandatory bool               `json:"mandatory"`
	Hidden    bool               `json:"hidden"`
	Order     int                `json:"order"`
	Options   []OptionView       `json:"options"`
}

type OptionView struct {
	ID                    primitive.ObjectID  `json:"id"`
	Text                  string              `json:"text"`
	DichotomizedValue     *int                `json:"dichotomizedValue,omitempty"`
	DestinationQuestionID *primitive.ObjectID `json:"destinationQuestionId,omitempty"`
}

type RegistrationView struct {
	ID          primitive.ObjectID `json:"id"`
	PatientID   primitive.ObjectID `json:"patientId"`
	SurveyID    primitive.ObjectID `json:"surveyId"`
	State       RegistrationState  `json:"state"`
	PerformedAt time.Time          `json:"performedAt"`
	Username    string             `json:"username,omitempty"`
}
