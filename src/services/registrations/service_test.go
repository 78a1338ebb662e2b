package registrations

import (
	"testing"

	"Backend-Encuestas/src/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveSubmissionState(t *testing.T) {
	questions := []models.Question{choiceQuestion(true, 2)}

	t.Run("EmptyDraftIsStoredAsDraft", func(t *testing.T) {
		state, violations := resolveSubmissionState(questions, nil, true)
		assert.Equal(t, models.StateDraft, state)
		assert.Empty(t, violations)
	})

	t.Run("DraftSkipsValidationEntirely", func(t *testing.T) {
		bogus := []models.AnswerInput{{QuestionID: questions[0].ID}}
		state, violations := resolveSubmissionState(questions, bogus, true)
		assert.Equal(t, models.StateDraft, state)
		assert.Empty(t, violations)
	})

	t.Run("EmptyCompletedSubmissionIsRejected", func(t *testing.T) {
		state, violations := resolveSubmissionState(questions, nil, false)
		assert.Equal(t, models.StateCompleted, state)
		require.Len(t, violations, 1)
		assert.Equal(t, models.ViolationMissingMandatoryAnswer, violations[0].Code)
	})

	t.Run("ValidCompletedSubmissionPasses", func(t *testing.T) {
		answers := []models.AnswerInput{{
			QuestionID:       questions[0].ID,
			SelectedOptionID: &questions[0].Options[0].ID,
		}}
		state, violations := resolveSubmissionState(questions, answers, false)
		assert.Equal(t, models.StateCompleted, state)
		assert.Empty(t, violations)
	})
}
