package skiplogic

import (
	"Backend-Encuestas/src/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// AnswerSet maps answered question ids to the selected option id, nil for a
// free-text answer. Absence means the question was not answered.
type AnswerSet map[primitive.ObjectID]*primitive.ObjectID

// AnswerSetFrom builds an AnswerSet from submitted answers.
func AnswerSetFrom(answers []models.AnswerInput) AnswerSet {
	set := make(AnswerSet, len(answers))
	for _, a := range answers {
		if _, seen := set[a.QuestionID]; seen {
			continue // first answer per question wins
		}
		set[a.QuestionID] = a.SelectedOptionID
	}
	return set
}

// Graph is a survey's full skip-edge set in insertion order. It is a plain
// in-memory value; building one performs no I/O.
type Graph struct {
	edges []models.SkipEdge
}

func NewGraph(edges []models.SkipEdge) *Graph {
	return &Graph{edges: edges}
}

// DestinationFor resolves the edge fired by an answer to the given question.
// A conditional edge fires only on its exact option; an unconditional edge
// (no origin option) fires on any answer, free text included. When several
// edges match the first one in insertion order wins — Lint flags that as an
// authoring error. Returns nil when no edge fires.
func (g *Graph) DestinationFor(questionID primitive.ObjectID, selectedOptionID *primitive.ObjectID) *primitive.ObjectID {
	for i := range g.edges {
		e := &g.edges[i]
		if e.OriginQuestionID != questionID {
			continue
		}
		if e.OriginOptionID == nil {
			dest := e.DestinationQuestionID
			return &dest
		}
		if selectedOptionID != nil && *e.OriginOptionID == *selectedOptionID {
			dest := e.DestinationQuestionID
			return &dest
		}
	}
	return nil
}

// ReachableQuestions walks the survey from its first question, following the
// edge fired by each supplied answer and falling back to definition order
// whenever no edge fires. Every question is visited at most once, so the
// walk terminates even when the edge set contains a cycle. Questions must be
// in definition order.
func (g *Graph) ReachableQuestions(questions []models.Question, answers AnswerSet) map[primitive.ObjectID]struct{} {
	visited := make(map[primitive.ObjectID]struct{}, len(questions))
	if len(questions) == 0 {
		return visited
	}

	index := make(map[primitive.ObjectID]int, len(questions))
	for i, q := range questions {
		index[q.ID] = i
	}

	cur := 0
	for {
		q := questions[cur]
		visited[q.ID] = struct{}{}

		next := -1
		if sel, answered := answers[q.ID]; answered {
			if dest := g.DestinationFor(q.ID, sel); dest != nil {
				if di, ok := index[*dest]; ok {
					if _, seen := visited[questions[di].ID]; !seen {
						next = di
					}
				}
			}
		}

		if next == -1 {
			// Fall through to the next unvisited question in definition order.
			for i := cur + 1; i < len(questions); i++ {
				if _, seen := visited[questions[i].ID]; !seen {
					next = i
					break
				}
			}
		}

		if next == -1 {
			return visited
		}
		cur = next
	}
}
