package model

// Occurrence records one appearance of a token inside a step
type Occurrence struct {
	StepID   string `json:"step_id"`
	Position int    `json:"position"` // Byte offset within the step text
}

// Token represents a normalized mathematical symbol tracked over one
// analysis run. Sub/superscripts are stripped for grouping; Display
// retains the first full form encountered.
type Token struct {
	Symbol      string       `json:"symbol"`        // Normalized form, e.g. "x" for "x_1"
	Display     string       `json:"display"`       // First full form seen, e.g. "x_1"
	Occurrences []Occurrence `json:"occurrences"`   // In document order
	Introduced  bool         `json:"introduced"`    // True once seen in an introduction context
	FirstStepID string       `json:"first_step_id"` // Step of the first occurrence
}
