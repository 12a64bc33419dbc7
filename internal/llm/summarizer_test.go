package llm

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/proofmap/proofmap/internal/model"
)

// fakeProvider returns a canned summary without network access.
type fakeProvider struct {
	summary string
	err     error
}

func (f *fakeProvider) Name() string { return "fake" }

func (f *fakeProvider) IsAvailable(ctx context.Context) bool { return true }

func (f *fakeProvider) Summarize(ctx context.Context, req SummarizeRequest) (*SummarizeResponse, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &SummarizeResponse{
		Summary:  f.summary,
		CitedIDs: extractNodeIDs(f.summary),
		Model:    "fake-model",
	}, nil
}

func sampleResult() model.Result {
	return model.Result{
		Steps: []model.Step{
			{ID: "S1", Index: 1, Text: "Let $G$ be a finite group.", Kind: model.StepKindClaim},
			{ID: "S2", Index: 2, Text: "Then $G$ is nontrivial.", Kind: model.StepKindDeduction},
		},
		Assumptions: []model.Assumption{
			{ID: "A1", Text: "$G$ be a finite group", Scope: model.ScopeGlobal, IntroducedAt: "S1"},
		},
		Flags: []model.Flag{
			{ID: "F1", Kind: model.FlagObviousLeap, Target: "S2", Message: "leap", Severity: model.SeverityLow},
		},
	}
}

func TestSummarizer_NilIsDisabled(t *testing.T) {
	var s *Summarizer
	if s.IsEnabled() {
		t.Error("Expected nil summarizer to be disabled")
	}

	summary, err := s.GenerateSummary(context.Background(), sampleResult())
	if err != nil || summary != nil {
		t.Errorf("Expected no-op for nil summarizer, got %+v, %v", summary, err)
	}
}

func TestSummarizer_GenerateSummary(t *testing.T) {
	s := &Summarizer{
		provider: &fakeProvider{summary: "Start at S1, mind the flag F1."},
		config:   Config{StrictCitations: true},
	}

	summary, err := s.GenerateSummary(context.Background(), sampleResult())
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if !summary.Enabled {
		t.Error("Expected summary marked enabled")
	}
	if summary.Provider != "fake" {
		t.Errorf("Expected provider fake, got %s", summary.Provider)
	}
	if !strings.Contains(summary.SummaryMD, "S1") {
		t.Errorf("Expected summary text preserved, got %q", summary.SummaryMD)
	}
	if len(summary.Warnings) != 0 {
		t.Errorf("Expected no warnings, got %v", summary.Warnings)
	}
}

func TestSummarizer_NonStrictLeakBecomesWarning(t *testing.T) {
	s := &Summarizer{
		provider: &fakeProvider{summary: "See S1 and the invented step S9."},
		config:   Config{StrictCitations: false},
	}

	summary, err := s.GenerateSummary(context.Background(), sampleResult())
	if err != nil {
		t.Fatalf("Expected no error in non-strict mode, got %v", err)
	}
	if len(summary.Warnings) != 1 {
		t.Fatalf("Expected 1 warning, got %v", summary.Warnings)
	}
	if !strings.Contains(summary.Warnings[0], "S9") {
		t.Errorf("Expected warning to name the leaked node, got %q", summary.Warnings[0])
	}
}

func TestSummarizer_ProviderErrorPropagates(t *testing.T) {
	s := &Summarizer{
		provider: &fakeProvider{err: errors.New("backend down")},
		config:   Config{},
	}

	_, err := s.GenerateSummary(context.Background(), sampleResult())
	if err == nil {
		t.Fatal("Expected error from failing provider")
	}
}

func TestBuildPrompt(t *testing.T) {
	result := sampleResult()
	allowed := allowedNodeIDs(result)

	prompt := BuildPrompt(result, allowed)

	for _, id := range []string{"S1", "S2", "A1", "F1"} {
		if !strings.Contains(prompt, id) {
			t.Errorf("Expected prompt to list %s", id)
		}
	}
	if !strings.Contains(prompt, "NEVER verifies correctness") {
		t.Error("Expected prompt to state the non-verification contract")
	}
	if !strings.Contains(prompt, "DO NOT invent") {
		t.Error("Expected prompt to forbid inventing nodes")
	}
}

func TestAllowedNodeIDs(t *testing.T) {
	ids := allowedNodeIDs(sampleResult())
	want := []string{"S1", "S2", "A1", "F1"}
	if len(ids) != len(want) {
		t.Fatalf("Expected %d ids, got %v", len(want), ids)
	}
	for i, id := range want {
		if ids[i] != id {
			t.Errorf("Expected id %s at %d, got %s", id, i, ids[i])
		}
	}
}

func TestRenderSeparateMarkdown(t *testing.T) {
	summary := &model.LLMSummary{
		Enabled:   true,
		Provider:  "fake",
		Model:     "fake-model",
		SummaryMD: "Read S1 first.",
		Warnings:  []string{"summary references unknown node S9"},
	}

	md := RenderSeparateMarkdown(summary)
	if !strings.Contains(md, "# Reading Guide (LLM-generated)") {
		t.Error("Expected generated-content header")
	}
	if !strings.Contains(md, "Read S1 first.") {
		t.Error("Expected summary body included")
	}
	if !strings.Contains(md, "## Warnings") {
		t.Error("Expected warnings section")
	}
}
