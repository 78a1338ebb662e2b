package skiplogic

import (
	"testing"

	"Backend-Encuestas/src/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func newQuestion(optionCount int) models.Question {
	q := models.Question{ID: primitive.NewObjectID(), Type: models.SingleChoice}
	for i := 0; i < optionCount; i++ {
		q.Options = append(q.Options, models.Option{ID: primitive.NewObjectID(), QuestionID: q.ID})
	}
	return q
}

func edge(origin primitive.ObjectID, option *primitive.ObjectID, dest primitive.ObjectID) models.SkipEdge {
	return models.SkipEdge{
		ID:                    primitive.NewObjectID(),
		OriginQuestionID:      origin,
		OriginOptionID:        option,
		DestinationQuestionID: dest,
	}
}

func TestDestinationFor(t *testing.T) {
	q1 := newQuestion(2)
	q2 := newQuestion(0)
	q3 := newQuestion(0)

	t.Run("ConditionalEdgeFiresOnlyOnItsOption", func(t *testing.T) {
		g := NewGraph([]models.SkipEdge{edge(q1.ID, &q1.Options[0].ID, q3.ID)})

		dest := g.DestinationFor(q1.ID, &q1.Options[0].ID)
		require.NotNil(t, dest)
		assert.Equal(t, q3.ID, *dest)

		assert.Nil(t, g.DestinationFor(q1.ID, &q1.Options[1].ID))
		assert.Nil(t, g.DestinationFor(q1.ID, nil))
	})

	t.Run("UnconditionalEdgeFiresOnAnyAnswer", func(t *testing.T) {
		g := NewGraph([]models.SkipEdge{edge(q1.ID, nil, q2.ID)})

		dest := g.DestinationFor(q1.ID, &q1.Options[1].ID)
		require.NotNil(t, dest)
		assert.Equal(t, q2.ID, *dest)

		// Free-text answers carry no option and still fire it.
		dest = g.DestinationFor(q1.ID, nil)
		require.NotNil(t, dest)
		assert.Equal(t, q2.ID, *dest)
	})

	t.Run("FirstEdgeInInsertionOrderWins", func(t *testing.T) {
		g := NewGraph([]models.SkipEdge{
			edge(q1.ID, &q1.Options[0].ID, q2.ID),
			edge(q1.ID, &q1.Options[0].ID, q3.ID),
		})

		dest := g.DestinationFor(q1.ID, &q1.Options[0].ID)
		require.NotNil(t, dest)
		assert.Equal(t, q2.ID, *dest)
	})

	t.Run("NoEdgeMeansNil", func(t *testing.T) {
		g := NewGraph(nil)
		assert.Nil(t, g.DestinationFor(q1.ID, &q1.Options[0].ID))
	})
}

func TestReachableQuestions(t *testing.T) {
	t.Run("FallsThroughInDefinitionOrder", func(t *testing.T) {
		q1, q2, q3 := newQuestion(0), newQuestion(0), newQuestion(0)
		g := NewGraph(nil)

		reachable := g.ReachableQuestions([]models.Question{q1, q2, q3}, AnswerSet{})
		assert.Len(t, reachable, 3)
	})

	t.Run("SkipEdgeJumpsOverQuestions", func(t *testing.T) {
		q1 := newQuestion(2)
		q2, q3 := newQuestion(0), newQuestion(0)
		g := NewGraph([]models.SkipEdge{edge(q1.ID, &q1.Options[0].ID, q3.ID)})

		answers := AnswerSet{q1.ID: &q1.Options[0].ID}
		reachable := g.ReachableQuestions([]models.Question{q1, q2, q3}, answers)

		assert.Contains(t, reachable, q1.ID)
		assert.Contains(t, reachable, q3.ID)
		assert.NotContains(t, reachable, q2.ID)
	})

	t.Run("UnansweredQuestionFallsThrough", func(t *testing.T) {
		q1 := newQuestion(2)
		q2, q3 := newQuestion(0), newQuestion(0)
		g := NewGraph([]models.SkipEdge{edge(q1.ID, &q1.Options[0].ID, q3.ID)})

		reachable := g.ReachableQuestions([]models.Question{q1, q2, q3}, AnswerSet{})
		assert.Len(t, reachable, 3)
	})

	t.Run("CyclicEdgesTerminate", func(t *testing.T) {
		q1 := newQuestion(1)
		q2 := newQuestion(1)
		g := NewGraph([]models.SkipEdge{
			edge(q1.ID, &q1.Options[0].ID, q2.ID),
			edge(q2.ID, &q2.Options[0].ID, q1.ID),
		})

		answers := AnswerSet{q1.ID: &q1.Options[0].ID, q2.ID: &q2.Options[0].ID}
		reachable := g.ReachableQuestions([]models.Question{q1, q2}, answers)
		assert.Len(t, reachable, 2)
	})

	t.Run("EmptySurvey", func(t *testing.T) {
		g := NewGraph(nil)
		assert.Empty(t, g.ReachableQuestions(nil, AnswerSet{}))
	})
}

func TestAnswerSetFrom(t *testing.T) {
	q := newQuestion(2)

	answers := []models.AnswerInput{
		{QuestionID: q.ID, SelectedOptionID: &q.Options[0].ID},
		{QuestionID: q.ID, SelectedOptionID: &q.Options[1].ID},
	}
	set := AnswerSetFrom(answers)

	require.Len(t, set, 1)
	assert.Equal(t, q.Options[0].ID, *set[q.ID])
}

func TestLint(t *testing.T) {
	t.Run("CleanGraphHasNoDiagnostics", func(t *testing.T) {
		q1 := newQuestion(1)
		q2 := newQuestion(0)
		g := NewGraph([]models.SkipEdge{edge(q1.ID, &q1.Options[0].ID, q2.ID)})

		assert.Empty(t, g.Lint([]models.Question{q1, q2}))
	})

	t.Run("DuplicateEdge", func(t *testing.T) {
		q1 := newQuestion(1)
		q2, q3 := newQuestion(0), newQuestion(0)
		g := NewGraph([]models.SkipEdge{
			edge(q1.ID, &q1.Options[0].ID, q2.ID),
			edge(q1.ID, &q1.Options[0].ID, q3.ID),
		})

		diags := g.Lint([]models.Question{q1, q2, q3})
		require.Len(t, diags, 1)
		assert.Equal(t, DiagDuplicateEdge, diags[0].Kind)
	})

	t.Run("DanglingEndpoints", func(t *testing.T) {
		q1 := newQuestion(1)
		ghost := primitive.NewObjectID()
		ghostOption := primitive.NewObjectID()
		g := NewGraph([]models.SkipEdge{
			edge(q1.ID, nil, ghost),
			edge(q1.ID, &ghostOption, q1.ID),
		})

		diags := g.Lint([]models.Question{q1})
		kinds := make([]string, 0, len(diags))
		for _, d := range diags {
			kinds = append(kinds, d.Kind)
		}
		assert.Contains(t, kinds, DiagDanglingEndpoint)
	})

	t.Run("CycleReported", func(t *testing.T) {
		q1 := newQuestion(1)
		q2 := newQuestion(1)
		g := NewGraph([]models.SkipEdge{
			edge(q1.ID, &q1.Options[0].ID, q2.ID),
			edge(q2.ID, &q2.Options[0].ID, q1.ID),
		})

		diags := g.Lint([]models.Question{q1, q2})
		found := false
		for _, d := range diags {
			if d.Kind == DiagCycle {
				found = true
			}
		}
		assert.True(t, found, "expected a cycle diagnostic")
	})
}
