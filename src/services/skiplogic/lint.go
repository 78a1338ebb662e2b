package skiplogic

import (
	"fmt"

	"Backend-Encuestas/src/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Diagnostic is a non-blocking authoring warning about the edge set. The
// runtime never refuses a survey over these; they exist so the survey author
// can fix the definition.
type Diagnostic struct {
	Kind    string             `json:"kind"`
	EdgeID  primitive.ObjectID `json:"edgeId,omitempty"`
	Message string             `json:"message"`
}

const (
	DiagDuplicateEdge    = "DUPLICATE_EDGE"
	DiagDanglingEndpoint = "DANGLING_ENDPOINT"
	DiagCycle            = "CYCLE"
)

// Lint checks the edge set against its survey's questions: duplicate edges
// for the same (origin, option) pair, endpoints that no longer resolve, and
// cycles. Traversal tolerates all three; authors should not rely on that.
func (g *Graph) Lint(questions []models.Question) []Diagnostic {
	var diags []Diagnostic

	byQuestion := make(map[primitive.ObjectID]*models.Question, len(questions))
	for i := range questions {
		byQuestion[questions[i].ID] = &questions[i]
	}

	type pairKey struct {
		origin primitive.ObjectID
		option primitive.ObjectID // zero value stands for "no option"
	}
	seen := make(map[pairKey]primitive.ObjectID)

	for i := range g.edges {
		e := &g.edges[i]

		key := pairKey{origin: e.OriginQuestionID}
		if e.OriginOptionID != nil {
			key.option = *e.OriginOptionID
		}
		if firstID, dup := seen[key]; dup {
			optionDesc := "any answer"
			if e.OriginOptionID != nil {
				optionDesc = "option " + e.OriginOptionID.Hex()
			}
			diags = append(diags, Diagnostic{
				Kind:   DiagDuplicateEdge,
				EdgeID: e.ID,
				Message: fmt.Sprintf("edge duplicates (question %s, %s); edge %s wins at runtime",
					e.OriginQuestionID.Hex(), optionDesc, firstID.Hex()),
			})
		} else {
			seen[key] = e.ID
		}

		origin, ok := byQuestion[e.OriginQuestionID]
		if !ok {
			diags = append(diags, Diagnostic{
				Kind:    DiagDanglingEndpoint,
				EdgeID:  e.ID,
				Message: fmt.Sprintf("origin question %s does not exist", e.OriginQuestionID.Hex()),
			})
		} else if e.OriginOptionID != nil && origin.OptionByID(*e.OriginOptionID) == nil {
			diags = append(diags, Diagnostic{
				Kind:    DiagDanglingEndpoint,
				EdgeID:  e.ID,
				Message: fmt.Sprintf("origin option %s does not belong to question %s", e.OriginOptionID.Hex(), e.OriginQuestionID.Hex()),
			})
		}
		if _, ok := byQuestion[e.DestinationQuestionID]; !ok {
			diags = append(diags, Diagnostic{
				Kind:    DiagDanglingEndpoint,
				EdgeID:  e.ID,
				Message: fmt.Sprintf("destination question %s does not exist", e.DestinationQuestionID.Hex()),
			})
		}
	}

	diags = append(diags, g.lintCycles(byQuestion)...)
	return diags
}

// lintCycles runs a coloured DFS over the edge adjacency. The definition-time
// model does not forbid cycles, so a cycle is reported, not rejected.
func (g *Graph) lintCycles(byQuestion map[primitive.ObjectID]*models.Question) []Diagnostic {
	adj := make(map[primitive.ObjectID][]primitive.ObjectID)
	for i := range g.edges {
		e := &g.edges[i]
		adj[e.OriginQuestionID] = append(adj[e.OriginQuestionID], e.DestinationQuestionID)
	}

	const (
		white = 0
		gray  = 1
		black = 2
	)
	color := make(map[primitive.ObjectID]int, len(adj))

	var diags []Diagnostic
	var visit func(id primitive.ObjectID)
	visit = func(id primitive.ObjectID) {
		color[id] = gray
		for _, next := range adj[id] {
			switch color[next] {
			case white:
				visit(next)
			case gray:
				diags = append(diags, Diagnostic{
					Kind:    DiagCycle,
					Message: fmt.Sprintf("skip edges form a cycle through question %s", next.Hex()),
				})
			}
		}
		color[id] = black
	}

	for id := range byQuestion {
		if color[id] == white {
			if _, hasEdges := adj[id]; hasEdges {
				visit(id)
			}
		}
	}
	return diags
}
