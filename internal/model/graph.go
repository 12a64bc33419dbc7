package model

// Edge represents a directed dependency between two proof nodes.
// The source always precedes (or ties with) the target in document
// order, which is what keeps the graph acyclic.
type Edge struct {
	Source string   `json:"source"`
	Target string   `json:"target"`
	Weight float64  `json:"weight"` // In (0,1]; duplicates collapse to the maximum
	Kind   EdgeKind `json:"kind"`
}

// EdgeKind classifies why the edge exists
type EdgeKind string

const (
	EdgeReference  EdgeKind = "reference"  // Explicit back-reference to an earlier step
	EdgeAssumption EdgeKind = "assumption" // Step uses a token of an active assumption
	EdgeInfluence  EdgeKind = "influence"  // Assumption active with no token overlap (weak)
	EdgeSequential EdgeKind = "sequential" // Narrative fallback between consecutive steps
)

// Graph is the dependency graph over steps and assumptions
type Graph struct {
	Nodes []string `json:"nodes"` // Node ids in document order
	Edges []Edge   `json:"edges"`
}
