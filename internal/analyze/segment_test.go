package analyze

import (
	"strings"
	"testing"

	"github.com/proofmap/proofmap/internal/model"
)

func mustPreprocess(t *testing.T, raw string) *Preprocessed {
	t.Helper()
	pre, err := Preprocess(raw)
	if err != nil {
		t.Fatalf("Preprocess(%q): %v", raw, err)
	}
	return pre
}

func TestSegment_DiscourseMarkersStartSteps(t *testing.T) {
	pre := mustPreprocess(t, "Let $G$ be a finite group. Assume $G$ is abelian. Then every normal subgroup of $G$ is abelian.")

	steps := Segment(pre, 0)
	if len(steps) != 3 {
		t.Fatalf("Expected 3 steps, got %d: %+v", len(steps), steps)
	}

	wantIDs := []string{"S1", "S2", "S3"}
	for i, s := range steps {
		if s.ID != wantIDs[i] {
			t.Errorf("Expected step %d id %s, got %s", i, wantIDs[i], s.ID)
		}
		if s.Index != i+1 {
			t.Errorf("Expected step %d index %d, got %d", i, i+1, s.Index)
		}
	}
	if !strings.HasPrefix(steps[1].Text, "Assume") {
		t.Errorf("Expected S2 to open at the Assume marker, got %q", steps[1].Text)
	}
	if !strings.HasPrefix(steps[2].Text, "Then") {
		t.Errorf("Expected S3 to open at the Then marker, got %q", steps[2].Text)
	}
}

func TestSegment_ReconstructionInvariant(t *testing.T) {
	inputs := []string{
		"Let $G$ be a finite group. Assume $G$ is abelian. Then every normal subgroup of $G$ is abelian.",
		"Fix $n \\geq 1$. Consider the sum $\\sum_{k=1}^{n} k$. Hence the bound follows. Therefore we are done.",
		"This holds a.e. on $X$. Now take limits.",
	}

	for _, raw := range inputs {
		pre := mustPreprocess(t, raw)
		steps := Segment(pre, 0)

		texts := make([]string, 0, len(steps))
		for _, s := range steps {
			texts = append(texts, s.Text)
		}
		if got := strings.Join(texts, " "); got != pre.Text {
			t.Errorf("Reconstruction mismatch:\n got  %q\n want %q", got, pre.Text)
		}
	}
}

func TestSegment_NoBoundaryInsideMath(t *testing.T) {
	pre := mustPreprocess(t, "Let $f: X. Y \\to Z$ be a map. Then $f$ is continuous.")

	steps := Segment(pre, 0)
	if len(steps) != 2 {
		t.Fatalf("Expected 2 steps, got %d: %+v", len(steps), steps)
	}
	if !strings.Contains(steps[0].Text, "$f: X. Y \\to Z$") {
		t.Errorf("Expected math span intact inside S1, got %q", steps[0].Text)
	}
}

func TestSegment_NoBoundaryAfterAbbreviation(t *testing.T) {
	pre := mustPreprocess(t, "The function vanishes a.e. on the boundary. Hence the integral is zero.")

	steps := Segment(pre, 0)
	if len(steps) != 2 {
		t.Fatalf("Expected 2 steps, got %d: %+v", len(steps), steps)
	}
	if !strings.Contains(steps[0].Text, "a.e. on the boundary") {
		t.Errorf("Expected a.e. kept inside S1, got %q", steps[0].Text)
	}
}

func TestSegment_DecimalNumbersSurvive(t *testing.T) {
	pre := mustPreprocess(t, "By Lemma 3.2 the claim holds. Thus we conclude.")

	steps := Segment(pre, 0)
	if len(steps) != 2 {
		t.Fatalf("Expected 2 steps, got %d: %+v", len(steps), steps)
	}
	if !strings.Contains(steps[0].Text, "3.2") {
		t.Errorf("Expected decimal reference intact, got %q", steps[0].Text)
	}
}

func TestSegment_MinStepLengthGroupsSentences(t *testing.T) {
	raw := "We define the object. We check one property. We check another property."
	pre := mustPreprocess(t, raw)

	// Default length keeps the three short marker-free sentences together.
	steps := Segment(pre, 0)
	if len(steps) != 1 {
		t.Fatalf("Expected 1 grouped step at default length, got %d", len(steps))
	}

	// A tiny threshold splits every sentence into its own step.
	steps = Segment(pre, 1)
	if len(steps) != 3 {
		t.Fatalf("Expected 3 steps at threshold 1, got %d", len(steps))
	}
}

func TestSegment_MarkerNeedsWordBoundary(t *testing.T) {
	// "Nowhere" must not trigger the "now" marker.
	pre := mustPreprocess(t, "The set is small. Nowhere dense sets are meager.")
	steps := Segment(pre, 0)
	if len(steps) != 1 {
		t.Fatalf("Expected 1 step (no marker), got %d", len(steps))
	}

	pre = mustPreprocess(t, "The set is small. Now the set is dense.")
	steps = Segment(pre, 0)
	if len(steps) != 2 {
		t.Fatalf("Expected 2 steps (marker), got %d", len(steps))
	}
}

func TestSegment_InferKind(t *testing.T) {
	tests := []struct {
		text string
		want model.StepKind
	}{
		{"Case 1: $x$ is even.", model.StepKindCaseSplit},
		{"Without loss of generality $x \\leq y$.", model.StepKindCaseSplit},
		{"By Lemma 3.2 the claim holds.", model.StepKindApplication},
		{"Then the result follows.", model.StepKindDeduction},
		{"Therefore we conclude.", model.StepKindDeduction},
		{"We consider the quotient group.", model.StepKindClaim},
	}

	for _, tt := range tests {
		if got := inferKind(tt.text); got != tt.want {
			t.Errorf("inferKind(%q) = %s, want %s", tt.text, got, tt.want)
		}
	}
}

func TestFindCitations(t *testing.T) {
	tests := []struct {
		text string
		want []int
	}{
		{"By step 2 the bound holds.", []int{2}},
		{"Combining steps 1, 2 and 4 we conclude.", []int{1, 2, 4}},
		{"By Steps 3 or 5 this follows.", []int{3, 5}},
		{"By step 2 and step 2 again.", []int{2}},
		{"No references here.", nil},
	}

	for _, tt := range tests {
		got := findCitations(tt.text)
		if len(got) != len(tt.want) {
			t.Errorf("findCitations(%q) = %v, want %v", tt.text, got, tt.want)
			continue
		}
		for i := range got {
			if got[i] != tt.want[i] {
				t.Errorf("findCitations(%q) = %v, want %v", tt.text, got, tt.want)
				break
			}
		}
	}
}
