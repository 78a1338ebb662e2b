package models

import (
	"fmt"
	"strings"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ViolationCode classifies why an answer set was rejected.
type ViolationCode string

const (
	ViolationUnknownQuestion        ViolationCode = "UNKNOWN_QUESTION"
	ViolationShapeMismatch          ViolationCode = "SHAPE_MISMATCH"
	ViolationOptionMismatch         ViolationCode = "OPTION_MISMATCH"
	ViolationMissingMandatoryAnswer ViolationCode = "MISSING_MANDATORY_ANSWER"
	ViolationInvalidComposition     ViolationCode = "INVALID_COMPOSITION"
)

// Violation is one structured validation failure. QuestionID names the
// offending question when one is known.
type Violation struct {
	Code       ViolationCode      `json:"code"`
	QuestionID primitive.ObjectID `json:"questionId,omitempty"`
	Message    string             `json:"message"`
}

// ValidationError carries every violation found in a submission so the
// caller can surface the full list, never just the first.
type ValidationError struct {
	Violations []Violation `json:"violations"`
}

func (e *ValidationError) Error() string {
	msgs := make([]string, 0, len(e.Violations))
	for _, v := range e.Violations {
		msgs = append(msgs, fmt.Sprintf("%s: %s", v.Code, v.Message))
	}
	return "validation failed: " + strings.Join(msgs, "; ")
}
