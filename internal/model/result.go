package model

import "errors"

// ErrEmptyInput is returned when the proof text is empty or
// whitespace-only. It is the only fatal analysis error: every other
// structural anomaly degrades to a warning on the Result.
var ErrEmptyInput = errors.New("empty proof input")

// Result aggregates the complete structural analysis of one proof.
// All entities are owned exclusively by this run; nothing is shared
// across runs except read-only vocabulary tables.
type Result struct {
	Steps       []Step       `json:"steps"`
	Assumptions []Assumption `json:"assumptions"`
	Flags       []Flag       `json:"flags"`
	Graph       Graph        `json:"graph"`
	Tokens      []Token      `json:"tokens,omitempty"`   // Registry snapshot, sorted by symbol
	Warnings    []string     `json:"warnings,omitempty"` // Structural anomalies (non-fatal)

	LLM *LLMSummary `json:"llm,omitempty"` // Optional reading guide (never affects analysis)
}

// LLMSummary contains an optional LLM-generated reading guide.
// It is produced after the analysis completes and never feeds back
// into steps, assumptions, flags or the graph.
type LLMSummary struct {
	Enabled   bool     `json:"enabled"`
	Provider  string   `json:"provider,omitempty"`
	Model     string   `json:"model,omitempty"`
	SummaryMD string   `json:"summary_md,omitempty"`
	Warnings  []string `json:"warnings,omitempty"`
}

// ToMap converts the result into a plain nested mapping for
// presentation layers. The shape is stable: steps, assumptions,
// flags, graph{nodes,edges}, warnings.
func (r *Result) ToMap() map[string]any {
	steps := make([]map[string]any, 0, len(r.Steps))
	for _, s := range r.Steps {
		steps = append(steps, map[string]any{
			"id":     s.ID,
			"text":   s.Text,
			"kind":   string(s.Kind),
			"tokens": append([]string(nil), s.Tokens...),
		})
	}

	assumptions := make([]map[string]any, 0, len(r.Assumptions))
	for _, a := range r.Assumptions {
		assumptions = append(assumptions, map[string]any{
			"id":             a.ID,
			"text":           a.Text,
			"scope_kind":     string(a.Scope),
			"scope_step_ids": append([]string(nil), a.StepIDs...),
		})
	}

	flags := make([]map[string]any, 0, len(r.Flags))
	for _, f := range r.Flags {
		flags = append(flags, map[string]any{
			"id":       f.ID,
			"kind":     string(f.Kind),
			"target":   f.Target,
			"message":  f.Message,
			"severity": string(f.Severity),
		})
	}

	edges := make([]map[string]any, 0, len(r.Graph.Edges))
	for _, e := range r.Graph.Edges {
		edges = append(edges, map[string]any{
			"source": e.Source,
			"target": e.Target,
			"weight": e.Weight,
		})
	}

	return map[string]any{
		"steps":       steps,
		"assumptions": assumptions,
		"flags":       flags,
		"graph": map[string]any{
			"nodes": append([]string(nil), r.Graph.Nodes...),
			"edges": edges,
		},
		"warnings": append([]string(nil), r.Warnings...),
	}
}
