package analyze

import (
	"fmt"
	"sort"
	"strings"

	"github.com/proofmap/proofmap/internal/model"
)

// BuildGraph constructs the dependency graph over steps and
// assumptions. Every edge points from an earlier node to a later one
// in document order (assumption edges may tie with their introducing
// step), so the result is acyclic by construction. Warnings report
// forward references that were rejected rather than inserted.
func BuildGraph(steps []model.Step, assumptions []model.Assumption, reg *Registry) (model.Graph, []string) {
	nodes, order := graphNodes(steps, assumptions)
	var warnings []string

	byStepID := make(map[string]*model.Step, len(steps))
	for i := range steps {
		byStepID[steps[i].ID] = &steps[i]
	}

	edges := make(map[string]model.Edge)
	insert := func(e model.Edge) {
		key := e.Source + "\x00" + e.Target
		if prev, ok := edges[key]; ok && prev.Weight >= e.Weight {
			return
		}
		edges[key] = e
	}

	// Explicit back-references carry full weight; a reference to a
	// later step would create a cycle against document order and is
	// rejected as an anomaly.
	for _, step := range steps {
		for _, cited := range step.Citations {
			if cited < 1 || cited > len(steps) {
				warnings = append(warnings, fmt.Sprintf("reference to unknown step %d in %s ignored", cited, step.ID))
				continue
			}
			if cited >= step.Index {
				warnings = append(warnings, fmt.Sprintf("forward reference to step %d in %s rejected", cited, step.ID))
				continue
			}
			insert(model.Edge{
				Source: fmt.Sprintf("S%d", cited),
				Target: step.ID,
				Weight: 1.0,
				Kind:   model.EdgeReference,
			})
		}
	}

	// Assumption usage: token intersection gives a hard edge, mere
	// activity gives a weak influence edge scaled by lexical overlap.
	for _, step := range steps {
		for _, a := range assumptions {
			if !a.ActiveAt(step.ID) {
				continue
			}
			// A local block's range can reach back before the
			// assumption's own introduction; edges still only point
			// forward in document order.
			if intro, ok := byStepID[a.IntroducedAt]; ok && step.Index < intro.Index {
				continue
			}
			if tokensIntersect(a.Tokens, step.Tokens) {
				insert(model.Edge{Source: a.ID, Target: step.ID, Weight: 1.0, Kind: model.EdgeAssumption})
				continue
			}
			insert(model.Edge{
				Source: a.ID,
				Target: step.ID,
				Weight: influenceWeight(a.Text, step.Text),
				Kind:   model.EdgeInfluence,
			})
		}
	}

	// Sequential fallback keeps the narrative connected for traversal.
	for i := 0; i+1 < len(steps); i++ {
		key := steps[i].ID + "\x00" + steps[i+1].ID
		if _, ok := edges[key]; ok {
			continue
		}
		insert(model.Edge{
			Source: steps[i].ID,
			Target: steps[i+1].ID,
			Weight: 0.1,
			Kind:   model.EdgeSequential,
		})
	}

	out := make([]model.Edge, 0, len(edges))
	for _, e := range edges {
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool {
		if order[out[i].Source] != order[out[j].Source] {
			return order[out[i].Source] < order[out[j].Source]
		}
		if order[out[i].Target] != order[out[j].Target] {
			return order[out[i].Target] < order[out[j].Target]
		}
		return out[i].Kind < out[j].Kind
	})

	return model.Graph{Nodes: nodes, Edges: out}, warnings
}

// graphNodes lists node ids in document order: each assumption sits
// immediately before the step that introduces it.
func graphNodes(steps []model.Step, assumptions []model.Assumption) ([]string, map[string]int) {
	var nodes []string
	for _, step := range steps {
		for _, a := range assumptions {
			if a.IntroducedAt == step.ID {
				nodes = append(nodes, a.ID)
			}
		}
		nodes = append(nodes, step.ID)
	}
	order := make(map[string]int, len(nodes))
	for i, id := range nodes {
		order[id] = i
	}
	return nodes, order
}

func tokensIntersect(a, b []string) bool {
	for _, x := range a {
		for _, y := range b {
			if x == y {
				return true
			}
		}
	}
	return false
}

// influenceWeight maps the lexical overlap between an assumption and
// a step into the weak-edge range [0.3, 0.6].
func influenceWeight(assumptionText, stepText string) float64 {
	aw := contentWords(assumptionText)
	if len(aw) == 0 {
		return 0.3
	}
	sw := map[string]bool{}
	for _, w := range contentWords(stepText) {
		sw[w] = true
	}
	shared := 0
	for _, w := range aw {
		if sw[w] {
			shared++
		}
	}
	overlap := float64(shared) / float64(len(aw))
	return 0.3 + 0.3*overlap
}

var influenceStopwords = map[string]bool{
	"the": true, "and": true, "that": true, "with": true, "for": true,
	"is": true, "are": true, "be": true, "of": true, "a": true,
	"an": true, "in": true, "on": true, "to": true, "we": true,
	"have": true, "has": true, "let": true, "then": true,
}

func contentWords(text string) []string {
	var out []string
	for _, w := range strings.Fields(strings.ToLower(text)) {
		w = strings.Trim(w, ".,;:!?()[]{}")
		if len(w) < 2 || influenceStopwords[w] {
			continue
		}
		out = append(out, w)
	}
	return out
}
