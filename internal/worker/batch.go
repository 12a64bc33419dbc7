package worker

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/proofmap/proofmap/internal/model"
)

// Analyzer defines the interface for analyzing one proof text
type Analyzer interface {
	Analyze(ctx context.Context, text string) (*model.Result, error)
}

// AnalyzeJob analyzes a single proof file
type AnalyzeJob struct {
	Path     string
	Analyzer Analyzer
}

// Execute reads and analyzes the proof file
func (j *AnalyzeJob) Execute(ctx context.Context) Result {
	data, err := os.ReadFile(j.Path)
	if err != nil {
		return &AnalyzeResult{Path: j.Path, Error: fmt.Errorf("read %s: %w", j.Path, err)}
	}

	result, err := j.Analyzer.Analyze(ctx, string(data))
	if err != nil {
		return &AnalyzeResult{Path: j.Path, Error: err}
	}
	return &AnalyzeResult{Path: j.Path, Result: result}
}

// AnalyzeResult represents the outcome of one file analysis
type AnalyzeResult struct {
	Path   string
	Result *model.Result
	Error  error
}

// GetError returns the error from the analysis result
func (r *AnalyzeResult) GetError() error {
	return r.Error
}

// BatchProcessor analyzes multiple proof files concurrently. The core
// analysis is single-threaded per call and shares no mutable state,
// so files parallelize freely.
type BatchProcessor struct {
	analyzer    Analyzer
	concurrency int
}

// NewBatchProcessor creates a new batch processor
func NewBatchProcessor(analyzer Analyzer, concurrency int) *BatchProcessor {
	return &BatchProcessor{
		analyzer:    analyzer,
		concurrency: concurrency,
	}
}

// ProcessFiles analyzes the given proof files concurrently
func (b *BatchProcessor) ProcessFiles(ctx context.Context, paths []string) []*AnalyzeResult {
	if len(paths) == 0 {
		return []*AnalyzeResult{}
	}

	pool := NewPool(b.concurrency)
	pool.Start()

	for _, path := range paths {
		pool.Submit(&AnalyzeJob{Path: path, Analyzer: b.analyzer})
	}

	raw := pool.Wait()

	results := make([]*AnalyzeResult, 0, len(raw))
	for _, r := range raw {
		if ar, ok := r.(*AnalyzeResult); ok {
			results = append(results, ar)
		}
	}
	return results
}

// ProcessDir analyzes every .tex and .txt file in a directory
func (b *BatchProcessor) ProcessDir(ctx context.Context, dir string) ([]*AnalyzeResult, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read dir %s: %w", dir, err)
	}

	var paths []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		switch filepath.Ext(e.Name()) {
		case ".tex", ".txt":
			paths = append(paths, filepath.Join(dir, e.Name()))
		}
	}

	return b.ProcessFiles(ctx, paths), nil
}
