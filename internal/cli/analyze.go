package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/proofmap/proofmap/internal/model"
	"github.com/proofmap/proofmap/internal/pipeline"
	"github.com/spf13/cobra"
)

var (
	outJSON     string
	outMD       string
	outDOT      string
	minStepLen  int
	leapCutoff  int
	extraProps  []string
	noCache     bool
	noFooter    bool
	analyzeWait time.Duration
	llmEnabled  bool
	llmProvider string
	llmModel    string
)

// analyzeCmd represents the analyze command
var analyzeCmd = &cobra.Command{
	Use:   "analyze <file>",
	Short: "Analyze a single proof and report its structure",
	Long: `Analyze reads one LaTeX proof (from a file, or stdin with "-") and
reports:
- the ordered reasoning steps and their kinds
- assumptions with global/local scope resolution
- heuristic gap flags (undefined symbols, uncited theorems,
  unassumed properties, obvious leaps)
- a dependency graph over steps and assumptions

Example:
  proofmap analyze proof.tex
  proofmap analyze proof.tex --json report.json --md report.md --dot graph.dot
  cat proof.tex | proofmap analyze - --min-step-length 120`,
	Args: cobra.ExactArgs(1),
	RunE: runAnalyze,
}

func init() {
	rootCmd.AddCommand(analyzeCmd)

	// Output flags
	analyzeCmd.Flags().StringVar(&outJSON, "json", "", "output JSON path")
	analyzeCmd.Flags().StringVar(&outMD, "md", "", "output Markdown path")
	analyzeCmd.Flags().StringVar(&outDOT, "dot", "", "output Graphviz DOT path")

	// Analysis tuning flags
	analyzeCmd.Flags().IntVar(&minStepLen, "min-step-length", 0, "step-merge minimum length (0 = default)")
	analyzeCmd.Flags().IntVar(&leapCutoff, "leap-cutoff", 0, "obvious-leap complexity cutoff (0 = default)")
	analyzeCmd.Flags().StringSliceVar(&extraProps, "extra-properties", nil, "extend the property vocabulary")
	analyzeCmd.Flags().BoolVar(&noCache, "no-cache", false, "disable result cache")
	analyzeCmd.Flags().BoolVar(&noFooter, "no-footer", false, "disable footer in Markdown reports")
	analyzeCmd.Flags().DurationVar(&analyzeWait, "timeout", time.Minute, "overall timeout (matters only with --llm)")

	// LLM flags
	analyzeCmd.Flags().BoolVar(&llmEnabled, "llm", false, "enable LLM reading-guide generation")
	analyzeCmd.Flags().StringVar(&llmProvider, "llm-provider", "openai", "LLM provider")
	analyzeCmd.Flags().StringVar(&llmModel, "llm-model", "gpt-4o-mini", "LLM model name")
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	text, err := readProof(args[0])
	if err != nil {
		return err
	}

	cfg, err := buildConfig()
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), analyzeWait)
	defer cancel()

	p := pipeline.New(cfg)
	result, err := p.Analyze(ctx, text)
	if err != nil {
		return fmt.Errorf("analyze: %w", err)
	}

	return p.RenderResult(result, outJSON, outMD, outDOT, verbose)
}

// readProof reads the proof text from a file or stdin ("-")
func readProof(arg string) (string, error) {
	if arg == "-" {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return "", fmt.Errorf("read stdin: %w", err)
		}
		return string(data), nil
	}
	data, err := os.ReadFile(arg)
	if err != nil {
		return "", fmt.Errorf("read %s: %w", arg, err)
	}
	return string(data), nil
}

// buildConfig assembles the configuration from defaults and flags
func buildConfig() (*model.Config, error) {
	cfg := model.DefaultConfig()
	if minStepLen > 0 {
		cfg.Analysis.MinStepLength = minStepLen
	}
	if leapCutoff > 0 {
		cfg.Analysis.LeapComplexityCutoff = leapCutoff
	}
	cfg.Analysis.ExtraProperties = extraProps
	cfg.Cache.Enabled = !noCache
	cfg.Output.Verbose = verbose
	cfg.Output.IncludeFooter = !noFooter

	if llmEnabled {
		cfg.LLM.Provider = llmProvider
		cfg.LLM.Model = llmModel
		cfg.LLM.StrictCitations = true // Always enforce

		switch llmProvider {
		case "openai":
			cfg.LLM.APIKey = os.Getenv("OPENAI_API_KEY")
			if cfg.LLM.APIKey == "" {
				return nil, fmt.Errorf("OPENAI_API_KEY environment variable not set")
			}
		default:
			return nil, fmt.Errorf("unsupported LLM provider: %s", llmProvider)
		}
	}

	return cfg, nil
}
