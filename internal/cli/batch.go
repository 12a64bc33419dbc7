package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/proofmap/proofmap/internal/pipeline"
	"github.com/proofmap/proofmap/internal/worker"
	"github.com/spf13/cobra"
)

var (
	concurrency  int
	outputDir    string
	batchTimeout time.Duration
)

// batchCmd represents the batch command
var batchCmd = &cobra.Command{
	Use:   "batch <dir or files...>",
	Short: "Analyze multiple proof files in parallel",
	Long: `Batch analyzes several proofs concurrently:
- Pass a directory to analyze every .tex/.txt file in it, or list files
- Each proof is analyzed independently with configurable worker count
- Individual JSON and Markdown reports are written per proof

Example:
  proofmap batch proofs/
  proofmap batch a.tex b.tex --concurrency 4 --output-dir ./reports`,
	Args: cobra.MinimumNArgs(1),
	RunE: runBatch,
}

func init() {
	rootCmd.AddCommand(batchCmd)

	batchCmd.Flags().IntVar(&concurrency, "concurrency", runtime.NumCPU(), "number of concurrent workers")
	batchCmd.Flags().StringVar(&outputDir, "output-dir", "./proofmap-reports", "output directory for reports")
	batchCmd.Flags().DurationVar(&batchTimeout, "timeout", 10*time.Minute, "total timeout for batch processing")
	batchCmd.Flags().BoolVar(&noFooter, "no-footer", false, "disable footer in Markdown reports")
}

func runBatch(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithTimeout(context.Background(), batchTimeout)
	defer cancel()

	cfg, err := buildConfig()
	if err != nil {
		return err
	}
	cfg.Cache.Enabled = false // every input is distinct, no reuse

	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}

	p := pipeline.New(cfg)
	processor := worker.NewBatchProcessor(p, concurrency)

	var results []*worker.AnalyzeResult
	if len(args) == 1 {
		if info, err := os.Stat(args[0]); err == nil && info.IsDir() {
			results, err = processor.ProcessDir(ctx, args[0])
			if err != nil {
				return err
			}
		}
	}
	if results == nil {
		results = processor.ProcessFiles(ctx, args)
	}

	successCount := 0
	failureCount := 0
	for _, r := range results {
		if r.Error != nil {
			failureCount++
			fmt.Fprintf(os.Stderr, "✗ %s: %v\n", r.Path, r.Error)
			continue
		}
		successCount++

		slug := sanitizeFilename(r.Path)
		jsonPath := filepath.Join(outputDir, slug+".json")
		mdPath := filepath.Join(outputDir, slug+".md")
		if err := p.RenderResult(r.Result, jsonPath, mdPath, "", verbose); err != nil {
			fmt.Fprintf(os.Stderr, "✗ render %s: %v\n", r.Path, err)
		}
	}

	fmt.Fprintf(os.Stderr, "\nDone: %d analyzed, %d failed\n", successCount, failureCount)
	if failureCount > 0 && successCount == 0 {
		return fmt.Errorf("all %d analyses failed", failureCount)
	}
	return nil
}

// sanitizeFilename derives a report slug from a proof file path
func sanitizeFilename(path string) string {
	base := filepath.Base(path)
	base = strings.TrimSuffix(base, filepath.Ext(base))
	var b strings.Builder
	for _, r := range base {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
			b.WriteRune(r)
		default:
			b.WriteRune('-')
		}
	}
	if b.Len() == 0 {
		return "proof"
	}
	return b.String()
}
