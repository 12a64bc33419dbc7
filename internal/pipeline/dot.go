package pipeline

import (
	"fmt"
	"strings"

	"github.com/proofmap/proofmap/internal/model"
)

// GenerateDOT renders the dependency graph as Graphviz DOT text.
// Rendering the image itself is the consumer's job; the core only
// emits the textual graph description. Assumptions are filled boxes
// (light blue for global, light yellow for local), steps are plain
// boxes, and edge styling follows the edge kind.
func GenerateDOT(result *model.Result) string {
	var b strings.Builder

	b.WriteString("digraph proof {\n")
	b.WriteString("  rankdir=TB;\n")
	b.WriteString("  node [fontname=\"Helvetica\"];\n\n")

	scopes := make(map[string]model.ScopeKind, len(result.Assumptions))
	for _, a := range result.Assumptions {
		scopes[a.ID] = a.Scope
	}
	labels := nodeLabels(result)

	for _, id := range result.Graph.Nodes {
		if scope, ok := scopes[id]; ok {
			fill := "lightblue"
			if scope == model.ScopeLocal {
				fill = "lightyellow"
			}
			fmt.Fprintf(&b, "  %s [label=%q, shape=box, style=filled, fillcolor=%s];\n",
				id, labels[id], fill)
			continue
		}
		fmt.Fprintf(&b, "  %s [label=%q, shape=box];\n", id, labels[id])
	}

	b.WriteString("\n")
	for _, e := range result.Graph.Edges {
		fmt.Fprintf(&b, "  %s -> %s [%s];\n", e.Source, e.Target, edgeAttrs(e))
	}

	b.WriteString("}\n")
	return b.String()
}

func edgeAttrs(e model.Edge) string {
	switch e.Kind {
	case model.EdgeReference:
		return fmt.Sprintf("color=red, penwidth=2, label=\"%.1f\"", e.Weight)
	case model.EdgeAssumption:
		return fmt.Sprintf("color=blue, label=\"%.1f\"", e.Weight)
	case model.EdgeInfluence:
		return fmt.Sprintf("color=blue, style=dashed, label=\"%.2f\"", e.Weight)
	default:
		return "color=gray, style=dotted"
	}
}

// nodeLabels builds short display labels: the node id plus a text
// preview.
func nodeLabels(result *model.Result) map[string]string {
	labels := make(map[string]string)
	for _, s := range result.Steps {
		labels[s.ID] = s.ID + ": " + preview(s.Text)
	}
	for _, a := range result.Assumptions {
		labels[a.ID] = a.ID + ": " + preview(a.Text)
	}
	return labels
}

func preview(text string) string {
	if len(text) > 40 {
		return text[:40] + "..."
	}
	return text
}
