package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/proofmap/proofmap/internal/analyze"
	"github.com/proofmap/proofmap/internal/cache"
	"github.com/proofmap/proofmap/internal/llm"
	"github.com/proofmap/proofmap/internal/model"
)

// Pipeline orchestrates the complete proof analysis
type Pipeline struct {
	cache      cache.Cache
	renderer   *Renderer
	summarizer *llm.Summarizer // Optional reading guide (nil if disabled)
	config     *model.Config
}

// New creates a new pipeline with the given configuration
func New(cfg *model.Config) *Pipeline {
	var summarizer *llm.Summarizer
	if cfg.LLM.Provider != "" {
		s, err := llm.NewSummarizer(llm.ConfigFromModel(cfg.LLM))
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: failed to initialize LLM provider: %v\n", err)
		} else {
			summarizer = s
		}
	}

	var c cache.Cache
	if cfg.Cache.Enabled {
		c = cache.NewMemoryCache(cfg.Cache.TTL, 2*cfg.Cache.TTL)
	}

	return &Pipeline{
		cache:      c,
		renderer:   NewRenderer(cfg.Output.IncludeFooter),
		summarizer: summarizer,
		config:     cfg,
	}
}

// Analyze runs the full analysis for one proof text. Identical input
// is served from the cache when enabled; the optional LLM summary is
// generated after the analysis and never affects it.
func (p *Pipeline) Analyze(ctx context.Context, text string) (*model.Result, error) {
	if p.cache != nil {
		if data, ok := p.cache.Get(cache.Key(text)); ok {
			var cached model.Result
			if err := json.Unmarshal(data, &cached); err == nil {
				return &cached, nil
			}
			// A corrupt entry falls through to a fresh analysis.
			_ = p.cache.Delete(cache.Key(text))
		}
	}

	result, err := analyze.Run(text, p.config.Analysis)
	if err != nil {
		return nil, fmt.Errorf("analyze: %w", err)
	}

	if p.cache != nil {
		if data, err := json.Marshal(result); err == nil {
			_ = p.cache.Set(cache.Key(text), data, p.config.Cache.TTL)
		}
	}

	if p.summarizer.IsEnabled() {
		summary, err := p.summarizer.GenerateSummary(ctx, *result)
		if err != nil {
			// Don't fail the analysis, just warn
			fmt.Fprintf(os.Stderr, "Warning: LLM summary generation failed: %v\n", err)
		} else if summary != nil {
			result.LLM = summary
		}
	}

	return result, nil
}

// RenderResult renders the result to the requested outputs
func (p *Pipeline) RenderResult(result *model.Result, jsonPath, mdPath, dotPath string, verbose bool) error {
	if jsonPath != "" {
		if err := p.renderer.RenderJSON(result, jsonPath); err != nil {
			return fmt.Errorf("render JSON: %w", err)
		}
		if verbose {
			fmt.Printf("✓ Wrote JSON: %s\n", jsonPath)
		}
	}

	if mdPath != "" {
		if err := p.renderer.RenderMarkdown(result, mdPath); err != nil {
			return fmt.Errorf("render markdown: %w", err)
		}
		if verbose {
			fmt.Printf("✓ Wrote Markdown: %s\n", mdPath)
		}
	}

	if dotPath != "" {
		if err := os.WriteFile(dotPath, []byte(GenerateDOT(result)), 0644); err != nil {
			return fmt.Errorf("render DOT: %w", err)
		}
		if verbose {
			fmt.Printf("✓ Wrote DOT: %s\n", dotPath)
		}
	}

	if result.LLM != nil && result.LLM.Enabled && mdPath != "" {
		llmPath := mdPath + ".llm.md"
		md := llm.RenderSeparateMarkdown(result.LLM)
		if err := os.WriteFile(llmPath, []byte(md), 0644); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: failed to write LLM summary: %v\n", err)
		} else if verbose {
			fmt.Printf("✓ Wrote LLM summary: %s\n", llmPath)
		}
	}

	p.renderer.RenderSummary(result)
	return nil
}
