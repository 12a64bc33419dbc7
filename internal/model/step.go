package model

// Step represents one segmented unit of proof reasoning
type Step struct {
	ID        string   `json:"id"`                  // "S1", "S2", ... in document order
	Index     int      `json:"index"`               // 1-based position in the proof
	Text      string   `json:"text"`                // Normalized step text
	Kind      StepKind `json:"kind"`                // Inferred from the leading discourse marker
	Tokens    []string `json:"tokens"`              // Normalized symbols, in order of first appearance
	Citations []int    `json:"citations,omitempty"` // Explicit back-references to earlier step indexes
}

// StepKind categorizes how a step advances the argument
type StepKind string

const (
	StepKindClaim       StepKind = "claim"       // Plain assertion
	StepKindDeduction   StepKind = "deduction"   // Then/Hence/Therefore/Thus openers
	StepKindCaseSplit   StepKind = "case_split"  // Case <n> / WLOG openers
	StepKindApplication StepKind = "application" // "By <result>" openers
)
