package model

// Flag represents a heuristic warning about a possible structural gap.
// Flags are advisory only: detection never rejects or mutates its inputs.
type Flag struct {
	ID         string       `json:"id"`                   // "F1", "F2", ...
	Kind       FlagKind     `json:"kind"`                 // Gap category
	Target     string       `json:"target"`               // Step or assumption id the flag points at
	Message    string       `json:"message"`              // Human-readable description
	Suggestion string       `json:"suggestion,omitempty"` // How the author might close the gap
	Severity   FlagSeverity `json:"severity"`
}

// FlagKind classifies the gap category
type FlagKind string

const (
	FlagUndefinedSymbol   FlagKind = "undefined_symbol"   // Symbol used repeatedly but never introduced
	FlagUncitedTheorem    FlagKind = "uncited_theorem"    // "By the lemma" with no reference
	FlagUnassumedProperty FlagKind = "unassumed_property" // Property used without a covering assumption
	FlagObviousLeap       FlagKind = "obvious_leap"       // Hedging phrase over complex content
)

// FlagSeverity indicates the confidence/importance of the flag
type FlagSeverity string

const (
	SeverityLow    FlagSeverity = "low"
	SeverityMedium FlagSeverity = "medium"
	SeverityHigh   FlagSeverity = "high"
)

// kindRank fixes the reporting order of flag kinds.
var kindRank = map[FlagKind]int{
	FlagUndefinedSymbol:   0,
	FlagUncitedTheorem:    1,
	FlagUnassumedProperty: 2,
	FlagObviousLeap:       3,
}

// KindRank returns the fixed ordering position of the flag's kind.
func (f Flag) KindRank() int {
	return kindRank[f.Kind]
}
