package model

// Assumption represents a stated hypothesis and the steps it governs
type Assumption struct {
	ID           string    `json:"id"`                   // "A1", "A2", ... in order of introduction
	Text         string    `json:"text"`                 // Clause text after the introducing keyword
	Keyword      string    `json:"keyword"`              // Let, Define, Assume, Suppose, Fix, Given
	Scope        ScopeKind `json:"scope"`                // global or local
	IntroducedAt string    `json:"step_id"`              // Step where the assumption appears
	StepIDs      []string  `json:"scope_step_ids"`       // Steps over which the assumption is active
	Tokens       []string  `json:"tokens,omitempty"`     // Normalized symbols mentioned in the assumption
	Properties   []string  `json:"properties,omitempty"` // Property-vocabulary words in the assumption text
}

// ScopeKind classifies how far an assumption reaches
type ScopeKind string

const (
	ScopeGlobal ScopeKind = "global" // Active from introduction to the end of the proof
	ScopeLocal  ScopeKind = "local"  // Bounded by a block-open/close marker pair
)

// ActiveAt reports whether the assumption is in force at the given step index.
func (a *Assumption) ActiveAt(stepID string) bool {
	for _, id := range a.StepIDs {
		if id == stepID {
			return true
		}
	}
	return false
}
