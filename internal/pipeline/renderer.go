package pipeline

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/proofmap/proofmap/internal/model"
)

// Renderer writes analysis results as JSON and Markdown reports
type Renderer struct {
	includeFooter bool
}

// NewRenderer creates a new renderer
func NewRenderer(includeFooter bool) *Renderer {
	return &Renderer{includeFooter: includeFooter}
}

// RenderJSON writes the serialized result mapping to a file
func (r *Renderer) RenderJSON(result *model.Result, path string) error {
	data, err := json.MarshalIndent(result.ToMap(), "", "  ")
	if err != nil {
		return fmt.Errorf("marshal result: %w", err)
	}
	return os.WriteFile(path, append(data, '\n'), 0644)
}

// RenderMarkdown writes a human-readable report to a file
func (r *Renderer) RenderMarkdown(result *model.Result, path string) error {
	return os.WriteFile(path, []byte(r.Markdown(result)), 0644)
}

// Markdown renders the full report as a Markdown string
func (r *Renderer) Markdown(result *model.Result) string {
	var b strings.Builder

	b.WriteString("# Proof Structure Analysis\n\n")

	b.WriteString("## Steps\n\n")
	if len(result.Steps) == 0 {
		b.WriteString("No steps found.\n")
	} else {
		b.WriteString("| Step | Kind | Text | Tokens |\n")
		b.WriteString("|------|------|------|--------|\n")
		for _, s := range result.Steps {
			fmt.Fprintf(&b, "| %s | %s | %s | %s |\n",
				s.ID, s.Kind, cellText(s.Text, 100), cellList(s.Tokens, 5))
		}
	}

	b.WriteString("\n## Assumptions\n\n")
	if len(result.Assumptions) == 0 {
		b.WriteString("No assumptions detected.\n")
	}
	for _, a := range result.Assumptions {
		fmt.Fprintf(&b, "### %s (%s)\n\n> %s\n\n", a.ID, a.Scope, a.Text)
		if len(a.Properties) > 0 {
			fmt.Fprintf(&b, "**Properties:** %s\n\n", strings.Join(a.Properties, ", "))
		}
		fmt.Fprintf(&b, "*Introduced at %s, active over %s*\n\n", a.IntroducedAt, cellList(a.StepIDs, 8))
	}

	b.WriteString("## Gap Flags\n\n")
	if len(result.Flags) == 0 {
		b.WriteString("No issues detected.\n")
	}
	for _, f := range result.Flags {
		fmt.Fprintf(&b, "### %s %s (%s)\n\n", f.ID, strings.ReplaceAll(string(f.Kind), "_", " "), f.Severity)
		fmt.Fprintf(&b, "**Location:** %s\n\n**Issue:** %s\n\n", f.Target, f.Message)
		if f.Suggestion != "" {
			fmt.Fprintf(&b, "**Suggestion:** %s\n\n", f.Suggestion)
		}
	}

	if len(result.Warnings) > 0 {
		b.WriteString("## Warnings\n\n")
		for _, w := range result.Warnings {
			fmt.Fprintf(&b, "- %s\n", w)
		}
		b.WriteString("\n")
	}

	if r.includeFooter {
		b.WriteString("---\n\nGenerated by proofmap. Structural analysis only; not a verification of correctness.\n")
	}

	return b.String()
}

// RenderSummary prints a short summary to stdout
func (r *Renderer) RenderSummary(result *model.Result) {
	fmt.Printf("Steps: %d | Assumptions: %d | Flags: %d | Warnings: %d\n",
		len(result.Steps), len(result.Assumptions), len(result.Flags), len(result.Warnings))
}

// cellText makes a string safe for a Markdown table cell
func cellText(s string, max int) string {
	s = strings.ReplaceAll(s, "|", `\|`)
	s = strings.ReplaceAll(s, "\n", " ")
	if len(s) > max {
		return s[:max] + "..."
	}
	return s
}

// cellList joins up to n items, noting how many were elided
func cellList(items []string, n int) string {
	if len(items) <= n {
		return strings.Join(items, ", ")
	}
	return strings.Join(items[:n], ", ") + fmt.Sprintf(" (+%d)", len(items)-n)
}
