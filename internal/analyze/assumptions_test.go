package analyze

import (
	"reflect"
	"strings"
	"testing"

	"github.com/proofmap/proofmap/internal/model"
)

func makeSteps(texts ...string) []model.Step {
	steps := make([]model.Step, len(texts))
	for i, text := range texts {
		steps[i] = model.Step{ID: "S" + string(rune('1'+i)), Index: i + 1, Text: text}
	}
	return steps
}

func TestExtractAssumptions_AllKeywordsRecognized(t *testing.T) {
	for _, kw := range assumptionKeywords {
		text := strings.ToUpper(kw[:1]) + kw[1:] + " $z$ be arbitrary."
		assumptions, warnings := ExtractAssumptions(makeSteps(text), nil)
		if len(warnings) != 0 {
			t.Errorf("Expected no warnings for %q, got %v", kw, warnings)
		}
		if len(assumptions) != 1 {
			t.Errorf("Expected 1 assumption for keyword %q, got %d", kw, len(assumptions))
			continue
		}
		if !strings.EqualFold(assumptions[0].Keyword, kw) {
			t.Errorf("Expected keyword %q recorded, got %q", kw, assumptions[0].Keyword)
		}
	}
}

func TestExtractAssumptions_GlobalScope(t *testing.T) {
	steps := makeSteps(
		"Let $G$ be a finite group.",
		"Assume $G$ is abelian.",
		"Then every normal subgroup of $G$ is abelian.",
	)

	assumptions, warnings := ExtractAssumptions(steps, nil)
	if len(warnings) != 0 {
		t.Fatalf("Expected no warnings, got %v", warnings)
	}
	if len(assumptions) != 2 {
		t.Fatalf("Expected 2 assumptions, got %d: %+v", len(assumptions), assumptions)
	}

	a1 := assumptions[0]
	if a1.ID != "A1" || a1.Keyword != "Let" || a1.Scope != model.ScopeGlobal {
		t.Errorf("Unexpected A1: %+v", a1)
	}
	if a1.IntroducedAt != "S1" {
		t.Errorf("Expected A1 introduced at S1, got %s", a1.IntroducedAt)
	}
	if !reflect.DeepEqual(a1.StepIDs, []string{"S1", "S2", "S3"}) {
		t.Errorf("Expected A1 active over all steps, got %v", a1.StepIDs)
	}
	if !reflect.DeepEqual(a1.Tokens, []string{"G"}) {
		t.Errorf("Expected A1 tokens [G], got %v", a1.Tokens)
	}
	if !reflect.DeepEqual(a1.Properties, []string{"finite"}) {
		t.Errorf("Expected A1 properties [finite], got %v", a1.Properties)
	}

	a2 := assumptions[1]
	if a2.Keyword != "Assume" || a2.Scope != model.ScopeGlobal {
		t.Errorf("Unexpected A2: %+v", a2)
	}
	if !reflect.DeepEqual(a2.StepIDs, []string{"S2", "S3"}) {
		t.Errorf("Expected A2 active from its introduction onward, got %v", a2.StepIDs)
	}
	if !reflect.DeepEqual(a2.Properties, []string{"abelian"}) {
		t.Errorf("Expected A2 properties [abelian], got %v", a2.Properties)
	}
}

func TestExtractAssumptions_StripsQualifiers(t *testing.T) {
	tests := []struct {
		clause string
		want   string
	}{
		{"Assume that $G$ is abelian.", "$G$ is abelian"},
		{"Suppose for contradiction that $x$ is rational.", "$x$ is rational"},
		{"Assume towards a contradiction that $S$ is finite.", "$S$ is finite"},
		{"Assume temporarily that $n$ is prime.", "$n$ is prime"},
	}

	for _, tt := range tests {
		steps := makeSteps(tt.clause, "Then we derive a contradiction, so the claim holds.")
		assumptions, _ := ExtractAssumptions(steps, nil)
		if len(assumptions) != 1 {
			t.Fatalf("%q: expected 1 assumption, got %d", tt.clause, len(assumptions))
		}
		if assumptions[0].Text != tt.want {
			t.Errorf("%q: expected text %q, got %q", tt.clause, tt.want, assumptions[0].Text)
		}
	}
}

func TestExtractAssumptions_LocalScopeViaContradictionBlock(t *testing.T) {
	steps := makeSteps(
		"Let $x$ be a real number.",
		"Suppose for contradiction that $x$ is rational.",
		"Then $x = p/q$ for integers $p, q$.",
		"This contradicts the choice of $x$, so $x$ is irrational.",
		"Hence the proof is complete.",
	)

	assumptions, warnings := ExtractAssumptions(steps, nil)
	if len(warnings) != 0 {
		t.Fatalf("Expected no warnings, got %v", warnings)
	}
	if len(assumptions) != 2 {
		t.Fatalf("Expected 2 assumptions, got %d", len(assumptions))
	}

	local := assumptions[1]
	if local.Scope != model.ScopeLocal {
		t.Fatalf("Expected local scope, got %s", local.Scope)
	}
	// The closing step is still part of the block.
	if !reflect.DeepEqual(local.StepIDs, []string{"S2", "S3", "S4"}) {
		t.Errorf("Expected block S2..S4, got %v", local.StepIDs)
	}
	if local.ActiveAt("S5") {
		t.Error("Expected local assumption inactive after block close")
	}

	global := assumptions[0]
	if global.Scope != model.ScopeGlobal || !global.ActiveAt("S5") {
		t.Errorf("Expected global assumption to survive the block, got %+v", global)
	}
}

func TestExtractAssumptions_NestedBlocks(t *testing.T) {
	steps := makeSteps(
		"Case 1: $n$ is even.",
		"Assume $n$ is minimal.",
		"Suppose for contradiction that $n = 2$.",
		"This contradicts the minimality of $n$, so $n > 2$.",
		"This completes case 1.",
		"Then the claim follows.",
	)

	assumptions, warnings := ExtractAssumptions(steps, nil)
	if len(warnings) != 0 {
		t.Fatalf("Expected no warnings, got %v", warnings)
	}
	if len(assumptions) != 2 {
		t.Fatalf("Expected 2 assumptions, got %d: %+v", len(assumptions), assumptions)
	}

	outer, inner := assumptions[0], assumptions[1]
	if outer.Scope != model.ScopeLocal || inner.Scope != model.ScopeLocal {
		t.Fatalf("Expected both local, got %s and %s", outer.Scope, inner.Scope)
	}
	// Inner block spans S3..S4, the enclosing case spans S1..S5.
	if !reflect.DeepEqual(inner.StepIDs, []string{"S3", "S4"}) {
		t.Errorf("Expected inner block S3..S4, got %v", inner.StepIDs)
	}
	if !reflect.DeepEqual(outer.StepIDs, []string{"S1", "S2", "S3", "S4", "S5"}) {
		t.Errorf("Expected outer block S1..S5, got %v", outer.StepIDs)
	}
}

func TestExtractAssumptions_UnmatchedCloseWarns(t *testing.T) {
	steps := makeSteps(
		"Let $x$ be positive.",
		"This completes case 1.",
	)

	_, warnings := ExtractAssumptions(steps, nil)
	if len(warnings) != 1 {
		t.Fatalf("Expected 1 warning, got %v", warnings)
	}
	if !strings.Contains(warnings[0], "unmatched block close") {
		t.Errorf("Expected unmatched-close warning, got %q", warnings[0])
	}
}

func TestExtractAssumptions_UnclosedBlockExtendsToEnd(t *testing.T) {
	steps := makeSteps(
		"Suppose for contradiction that $x > 0$.",
		"Then something follows.",
		"And the proof just stops.",
	)

	assumptions, warnings := ExtractAssumptions(steps, nil)
	if len(warnings) != 1 {
		t.Fatalf("Expected 1 warning, got %v", warnings)
	}
	if !strings.Contains(warnings[0], "never closed") {
		t.Errorf("Expected never-closed warning, got %q", warnings[0])
	}
	if len(assumptions) != 1 {
		t.Fatalf("Expected 1 assumption, got %d", len(assumptions))
	}
	if !reflect.DeepEqual(assumptions[0].StepIDs, []string{"S1", "S2", "S3"}) {
		t.Errorf("Expected scope extended to end, got %v", assumptions[0].StepIDs)
	}
}

func TestExtractAssumptions_ProseCaseDoesNotOpenBlock(t *testing.T) {
	steps := makeSteps(
		"In this case the bound is immediate.",
		"Let $c$ be the constant.",
	)

	assumptions, warnings := ExtractAssumptions(steps, nil)
	if len(warnings) != 0 {
		t.Fatalf("Expected no warnings, got %v", warnings)
	}
	if len(assumptions) != 1 {
		t.Fatalf("Expected 1 assumption, got %d", len(assumptions))
	}
	if assumptions[0].Scope != model.ScopeGlobal {
		t.Errorf("Expected global scope (no block open), got %s", assumptions[0].Scope)
	}
}

func TestExtractAssumptions_KeywordMustBeClauseInitial(t *testing.T) {
	steps := makeSteps("We let the reader verify the details.")

	assumptions, _ := ExtractAssumptions(steps, nil)
	if len(assumptions) != 0 {
		t.Errorf("Expected no assumption from mid-clause keyword, got %+v", assumptions)
	}
}

func TestExtractAssumptions_ExtraProperties(t *testing.T) {
	steps := makeSteps("Let $f$ be a tempered distribution.")

	assumptions, _ := ExtractAssumptions(steps, []string{"tempered"})
	if len(assumptions) != 1 {
		t.Fatalf("Expected 1 assumption, got %d", len(assumptions))
	}
	if !reflect.DeepEqual(assumptions[0].Properties, []string{"tempered"}) {
		t.Errorf("Expected extra property detected, got %v", assumptions[0].Properties)
	}
}

func TestActiveAssumptions(t *testing.T) {
	steps := makeSteps(
		"Let $a$ be fixed.",
		"Suppose for contradiction that $b = 0$.",
		"This contradicts the setup, so $b \\neq 0$.",
		"Hence done.",
	)

	assumptions, _ := ExtractAssumptions(steps, nil)

	active := ActiveAssumptions(assumptions, "S3")
	if len(active) != 2 {
		t.Fatalf("Expected 2 active at S3, got %d", len(active))
	}

	active = ActiveAssumptions(assumptions, "S4")
	if len(active) != 1 {
		t.Fatalf("Expected 1 active at S4, got %d", len(active))
	}
	if active[0].ID != "A1" {
		t.Errorf("Expected A1 active at S4, got %s", active[0].ID)
	}
}
