package llm

import (
	"context"
	"fmt"
	"strings"

	"github.com/proofmap/proofmap/internal/model"
)

// Summarizer generates an optional reading guide for an analysis
// result. It runs strictly AFTER the analysis and its output never
// feeds back into steps, assumptions, flags or the graph.
type Summarizer struct {
	provider Provider
	config   Config
}

// NewSummarizer creates a summarizer for the configured provider.
// A nil provider (empty Provider name) disables summarization.
func NewSummarizer(config Config) (*Summarizer, error) {
	provider, err := NewProvider(config)
	if err != nil {
		return nil, fmt.Errorf("create provider: %w", err)
	}
	return &Summarizer{provider: provider, config: config}, nil
}

// IsEnabled reports whether a provider is configured.
func (s *Summarizer) IsEnabled() bool {
	return s != nil && s.provider != nil
}

// GenerateSummary produces the reading guide for a result.
func (s *Summarizer) GenerateSummary(ctx context.Context, result model.Result) (*model.LLMSummary, error) {
	if !s.IsEnabled() {
		return nil, nil
	}

	allowed := allowedNodeIDs(result)
	resp, err := s.provider.Summarize(ctx, SummarizeRequest{
		Result:     result,
		AllowedIDs: allowed,
		Model:      s.config.Model,
		MaxTokens:  s.config.MaxTokens,
	})
	if err != nil {
		return nil, fmt.Errorf("summarize: %w", err)
	}

	summary := &model.LLMSummary{
		Enabled:   true,
		Provider:  s.provider.Name(),
		Model:     resp.Model,
		SummaryMD: resp.Summary,
	}

	// When strict mode is off, leaks degrade to warnings.
	if !s.config.StrictCitations {
		for _, id := range resp.CitedIDs {
			if !contains(allowed, id) {
				summary.Warnings = append(summary.Warnings, fmt.Sprintf("summary references unknown node %s", id))
			}
		}
	}

	return summary, nil
}

// allowedNodeIDs collects every node id the summary may reference.
func allowedNodeIDs(result model.Result) []string {
	var ids []string
	for _, s := range result.Steps {
		ids = append(ids, s.ID)
	}
	for _, a := range result.Assumptions {
		ids = append(ids, a.ID)
	}
	for _, f := range result.Flags {
		ids = append(ids, f.ID)
	}
	return ids
}

// RenderSeparateMarkdown renders the summary for its own output file,
// clearly labeled as generated and advisory.
func RenderSeparateMarkdown(summary *model.LLMSummary) string {
	var b strings.Builder
	b.WriteString("# Reading Guide (LLM-generated)\n\n")
	fmt.Fprintf(&b, "> Generated by %s/%s. Advisory only; this text never affects the analysis.\n\n", summary.Provider, summary.Model)
	b.WriteString(summary.SummaryMD)
	b.WriteString("\n")
	if len(summary.Warnings) > 0 {
		b.WriteString("\n## Warnings\n\n")
		for _, w := range summary.Warnings {
			fmt.Fprintf(&b, "- %s\n", w)
		}
	}
	return b.String()
}
