package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// RegistrationState lifecycle of a registration. Finalization is one-way:
// there is no COMPLETED -> DRAFT transition.
type RegistrationState string

const (
	StateDraft     RegistrationState = "DRAFT"
	StateCompleted RegistrationState = "COMPLETED"
)

// --- Registration ---
// One respondent's answer set for one survey instance. Answers are embedded
// so a submission persists atomically with a single insert.
type Registration struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	PatientID   primitive.ObjectID `bson:"patientId" json:"patientId"`
	UserID      primitive.ObjectID `bson:"userId" json:"userId"`
	SurveyID    primitive.ObjectID `bson:"surveyId" json:"surveyId"`
	PerformedAt time.Time          `bson:"performedAt" json:"performedAt"`
	State       RegistrationState  `bson:"state" json:"state"`

	Answers []Answer `bson:"answers,omitempty" json:"answers,omitempty"`
}

// AnswerKind discriminates the two valid answer shapes.
type AnswerKind int

const (
	AnswerInvalid AnswerKind = iota
	AnswerOption
	AnswerFreeText
)

// --- Answer ---
// Exactly one of SelectedOptionID / FreeText is set for a well-formed answer.
// The shape invariant is enforced by the response validator on every
// COMPLETED submission; drafts are persisted as supplied.
type Answer struct {
	ID               primitive.ObjectID  `bson:"_id,omitempty" json:"id,omitempty"`
	QuestionID       primitive.ObjectID  `bson:"questionId" json:"questionId"`
	SelectedOptionID *primitive.ObjectID `bson:"selectedOptionId,omitempty" json:"selectedOptionId,omitempty"`
	FreeText         *string             `bson:"freeText,omitempty" json:"freeText,omitempty"`
}

// Kind reports which side of the union is populated. Answers carrying both
// sides, or neither, are AnswerInvalid.
func (a Answer) Kind() AnswerKind {
	switch {
	case a.SelectedOptionID != nil && a.FreeText == nil:
		return AnswerOption
	case a.SelectedOptionID == nil && a.FreeText != nil:
		return AnswerFreeText
	default:
		return AnswerInvalid
	}
}
