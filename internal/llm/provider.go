package llm

import (
	"context"
	"fmt"
	"strings"

	"github.com/proofmap/proofmap/internal/model"
)

// Provider defines the interface for LLM providers
type Provider interface {
	// Name returns the provider name
	Name() string

	// Summarize generates a reading guide for the analysis result
	Summarize(ctx context.Context, req SummarizeRequest) (*SummarizeResponse, error)

	// IsAvailable checks if the provider is properly configured and accessible
	IsAvailable(ctx context.Context) bool
}

// SummarizeRequest contains the input for LLM summarization
type SummarizeRequest struct {
	// Result is the proof analysis to summarize
	Result model.Result

	// AllowedIDs is the STRICT allowlist of node ids (steps,
	// assumptions, flags) the LLM may reference. It prevents the
	// summary from inventing steps or flags that do not exist.
	AllowedIDs []string

	// Prompt is an optional custom prompt (if empty, use default)
	Prompt string

	// Model is the specific model to use (provider-specific)
	Model string

	// MaxTokens limits the response length
	MaxTokens int
}

// SummarizeResponse contains the LLM's summary output
type SummarizeResponse struct {
	// Summary is the generated reading guide text
	Summary string

	// CitedIDs are the node ids the LLM actually referenced
	CitedIDs []string

	// Model is the model that generated the response
	Model string

	// TokensUsed tracks token consumption
	TokensUsed int
}

// Config holds LLM provider configuration
type Config struct {
	// Provider name: "openai" or "" (disabled)
	Provider string

	// Model name (provider-specific)
	Model string

	// APIKey for the provider
	APIKey string

	// BaseURL for custom endpoints
	BaseURL string

	// Timeout for API requests, in seconds
	Timeout int

	// StrictCitations enforces the node-id allowlist
	StrictCitations bool

	// MaxTokens for response generation
	MaxTokens int
}

// DefaultConfig returns sensible defaults
func DefaultConfig() Config {
	return Config{
		Provider:        "", // Disabled by default
		Timeout:         30,
		StrictCitations: true,
		MaxTokens:       1000,
	}
}

// ConfigFromModel converts model.LLMConfig to llm.Config
func ConfigFromModel(mc model.LLMConfig) Config {
	return Config{
		Provider:        mc.Provider,
		Model:           mc.Model,
		APIKey:          mc.APIKey,
		BaseURL:         mc.BaseURL,
		Timeout:         mc.Timeout,
		StrictCitations: mc.StrictCitations,
		MaxTokens:       mc.MaxTokens,
	}
}

// BuildPrompt constructs the default summarization prompt. The
// analysis is heuristic and advisory; the prompt forbids the model
// from asserting correctness and pins every reference to real node
// ids.
func BuildPrompt(result model.Result, allowedIDs []string) string {
	var b strings.Builder

	fmt.Fprintf(&b, `You are writing a short reading guide for a structural analysis of a
mathematical proof. The analysis is heuristic: it identifies steps,
assumptions and possible gaps, and it NEVER verifies correctness.

CRITICAL RULES:
1. You MUST ONLY reference node ids from this allowed list:
%s

2. DO NOT invent steps, assumptions or flags beyond this list.
3. Never claim the proof is correct or incorrect - describe structure only.
4. Keep the guide under 300 words of plain Markdown.

STEPS:
`, strings.Join(allowedIDs, ", "))

	for _, s := range result.Steps {
		fmt.Fprintf(&b, "- %s (%s): %s\n", s.ID, s.Kind, truncate(s.Text, 160))
	}

	b.WriteString("\nASSUMPTIONS:\n")
	for _, a := range result.Assumptions {
		fmt.Fprintf(&b, "- %s (%s, introduced at %s): %s\n", a.ID, a.Scope, a.IntroducedAt, truncate(a.Text, 120))
	}

	b.WriteString("\nGAP FLAGS:\n")
	if len(result.Flags) == 0 {
		b.WriteString("- none\n")
	}
	for _, f := range result.Flags {
		fmt.Fprintf(&b, "- %s (%s, %s, at %s): %s\n", f.ID, f.Kind, f.Severity, f.Target, f.Message)
	}

	b.WriteString("\nWrite the reading guide now.\n")
	return b.String()
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
