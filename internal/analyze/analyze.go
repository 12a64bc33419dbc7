// Package analyze implements the structural analysis of a single
// LaTeX proof: normalization, segmentation into steps, symbol
// extraction, assumption scoping, heuristic gap detection and
// dependency-graph construction. It inspects textual structure only
// and never judges mathematical correctness.
package analyze

import "github.com/proofmap/proofmap/internal/model"

// Run performs one complete analysis of raw proof text. It returns
// model.ErrEmptyInput for empty or whitespace-only input; every other
// structural anomaly is reported through Result.Warnings so callers
// always get a best-effort analysis for well-formed-enough input.
//
// Each call owns its entities exclusively; concurrent calls share
// nothing but the read-only vocabulary tables.
func Run(text string, cfg model.AnalysisConfig) (*model.Result, error) {
	pre, err := Preprocess(text)
	if err != nil {
		return nil, err
	}

	steps := Segment(pre, cfg.MinStepLength)

	reg := NewRegistry()
	for i := range steps {
		reg.ExtractStepTokens(&steps[i])
	}

	assumptions, scopeWarnings := ExtractAssumptions(steps, cfg.ExtraProperties)

	flags := DetectGaps(steps, assumptions, reg, cfg)
	graph, graphWarnings := BuildGraph(steps, assumptions, reg)

	warnings := append([]string(nil), pre.Warnings...)
	warnings = append(warnings, scopeWarnings...)
	warnings = append(warnings, graphWarnings...)

	return &model.Result{
		Steps:       steps,
		Assumptions: assumptions,
		Flags:       flags,
		Graph:       graph,
		Tokens:      reg.Snapshot(),
		Warnings:    warnings,
	}, nil
}
