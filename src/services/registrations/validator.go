package registrations

import (
	"fmt"

	"Backend-Encuestas/src/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ValidateAnswers checks a submitted answer set against the survey's
// questions. It is pure: no database, no clock, no ordering surprises.
// Rules run in a fixed order per answer — unknown question, then answer
// shape, then option membership — and the mandatory sweep runs last over
// every mandatory question, whether or not branching (or the hidden flag)
// would have shown it to the respondent.
func ValidateAnswers(questions []models.Question, answers []models.AnswerInput) []models.Violation {
	byID := make(map[primitive.ObjectID]*models.Question, len(questions))
	for i := range questions {
		byID[questions[i].ID] = &questions[i]
	}

	var violations []models.Violation
	answered := make(map[primitive.ObjectID]struct{}, len(answers))

	for _, a := range answers {
		q, ok := byID[a.QuestionID]
		if !ok {
			violations = append(violations, models.Violation{
				Code:       models.ViolationUnknownQuestion,
				QuestionID: a.QuestionID,
				Message:    fmt.Sprintf("answer references unknown question %s", a.QuestionID.Hex()),
			})
			continue
		}
		answered[q.ID] = struct{}{}

		switch a.Kind() {
		case models.AnswerOption:
			if q.Type != models.SingleChoice {
				violations = append(violations, models.Violation{
					Code:       models.ViolationShapeMismatch,
					QuestionID: q.ID,
					Message:    fmt.Sprintf("question %q expects free text, got an option", q.Text),
				})
				continue
			}
			if q.OptionByID(*a.SelectedOptionID) == nil {
				violations = append(violations, models.Violation{
					Code:       models.ViolationOptionMismatch,
					QuestionID: q.ID,
					Message:    fmt.Sprintf("option %s does not belong to question %q", a.SelectedOptionID.Hex(), q.Text),
				})
			}
		case models.AnswerFreeText:
			if q.Type != models.FreeText {
				violations = append(violations, models.Violation{
					Code:       models.ViolationShapeMismatch,
					QuestionID: q.ID,
					Message:    fmt.Sprintf("question %q expects an option, got free text", q.Text),
				})
			}
		default:
			violations = append(violations, models.Violation{
				Code:       models.ViolationShapeMismatch,
				QuestionID: q.ID,
				Message:    fmt.Sprintf("answer for question %q carries neither an option nor free text", q.Text),
			})
		}
	}

	for i := range questions {
		q := &questions[i]
		if !q.Mandatory {
			continue
		}
		if _, ok := answered[q.ID]; !ok {
			violations = append(violations, models.Violation{
				Code:       models.ViolationMissingMandatoryAnswer,
				QuestionID: q.ID,
				Message:    fmt.Sprintf("mandatory question %q has no answer", q.Text),
			})
		}
	}

	return violations
}
