package analyze

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/proofmap/proofmap/internal/model"
)

// assumptionRe matches a clause-initial introducing keyword. Block
// qualifiers ("for contradiction", "temporarily") and a leading
// "that" are stripped so only the hypothesis itself remains.
var assumptionRe = regexp.MustCompile(`(?i)^(` + strings.Join(assumptionKeywords, "|") +
	`)\b[,\s]*(?:(?:for|towards?)\s+(?:a\s+)?contradiction\b[,\s]*)?(?:temporarily\b[,\s]*)?(?:that\b\s*)?(.*)$`)

// scopeBlock is one open local-assumption block on the stack.
type scopeBlock struct {
	openIdx     int   // step index (1-based) where the block opened
	assumptions []int // indexes into the assumptions slice
}

// ExtractAssumptions scans the steps in document order for
// assumption-introducing clauses and resolves their scopes via a
// block stack. Unmatched open/close markers are proof-structure
// anomalies, reported as warnings rather than errors.
func ExtractAssumptions(steps []model.Step, extraProperties []string) ([]model.Assumption, []string) {
	var assumptions []model.Assumption
	var warnings []string
	var stack []scopeBlock

	lastIdx := len(steps)
	props := append(append([]string(nil), propertyVocab...), extraProperties...)

	seal := func(block scopeBlock, closeIdx int) {
		for _, ai := range block.assumptions {
			assumptions[ai].StepIDs = stepRange(steps, block.openIdx, closeIdx)
		}
	}

	for _, step := range steps {
		lower := strings.ToLower(step.Text)

		if closesBlock(lower) {
			if len(stack) == 0 {
				warnings = append(warnings, fmt.Sprintf("unmatched block close at %s ignored", step.ID))
			} else {
				top := stack[len(stack)-1]
				stack = stack[:len(stack)-1]
				seal(top, step.Index) // closing step is part of the block
			}
		}

		if opensBlock(lower) {
			stack = append(stack, scopeBlock{openIdx: step.Index})
		}

		for _, clause := range clauses(step.Text) {
			m := assumptionRe.FindStringSubmatch(strings.TrimSpace(clause))
			if m == nil {
				continue
			}
			text := strings.TrimRight(strings.TrimSpace(m[2]), ".,;:")
			if text == "" {
				continue
			}

			a := model.Assumption{
				ID:           "A" + strconv.Itoa(len(assumptions)+1),
				Text:         text,
				Keyword:      title(m[1]),
				IntroducedAt: step.ID,
				Tokens:       ExtractSymbols(text),
				Properties:   propertiesIn(text, props),
			}

			if len(stack) > 0 {
				a.Scope = model.ScopeLocal
				assumptions = append(assumptions, a)
				top := len(stack) - 1
				stack[top].assumptions = append(stack[top].assumptions, len(assumptions)-1)
			} else {
				a.Scope = model.ScopeGlobal
				a.StepIDs = stepRange(steps, step.Index, lastIdx)
				assumptions = append(assumptions, a)
			}
		}
	}

	// Unclosed blocks extend to the end of the proof.
	for len(stack) > 0 {
		top := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		seal(top, lastIdx)
		warnings = append(warnings, fmt.Sprintf("block opened at S%d never closed; scope extended to end of proof", top.openIdx))
	}

	return assumptions, warnings
}

// ActiveAssumptions returns the assumptions whose scope contains the
// step, in introduction order.
func ActiveAssumptions(assumptions []model.Assumption, stepID string) []model.Assumption {
	var out []model.Assumption
	for _, a := range assumptions {
		if a.ActiveAt(stepID) {
			out = append(out, a)
		}
	}
	return out
}

func opensBlock(lower string) bool {
	for _, phrase := range blockOpeners {
		if phrase == "case" {
			// "Case 1:", "Case 2." etc. require a following number so
			// prose like "in this case" does not open a block.
			if caseHeaderRe.MatchString(lower) {
				return true
			}
			continue
		}
		if strings.Contains(lower, phrase) {
			return true
		}
	}
	return false
}

var caseHeaderRe = regexp.MustCompile(`(?i)^case\s+\d+`)

func closesBlock(lower string) bool {
	for _, phrase := range blockClosers {
		if strings.Contains(lower, phrase) {
			return true
		}
	}
	return false
}

// clauses splits a step's text into sentence-like clauses so that
// assumption keywords are only honored in clause-initial position.
func clauses(text string) []string {
	var out []string
	start := 0
	for i := 0; i < len(text); i++ {
		c := text[i]
		if c != '.' && c != ';' {
			continue
		}
		if i+1 < len(text) && text[i+1] != ' ' {
			continue
		}
		if c == '.' && endsWithAbbreviation(text, i) {
			continue
		}
		out = append(out, text[start:i+1])
		start = i + 1
	}
	if start < len(text) {
		out = append(out, text[start:])
	}
	return out
}

// stepRange returns the ids of steps from index from to index to,
// both 1-based inclusive.
func stepRange(steps []model.Step, from, to int) []string {
	var ids []string
	for _, s := range steps {
		if s.Index >= from && s.Index <= to {
			ids = append(ids, s.ID)
		}
	}
	return ids
}

// propertiesIn returns the property-vocabulary words present in text.
func propertiesIn(text string, vocab []string) []string {
	lower := strings.ToLower(text)
	var out []string
	for _, p := range vocab {
		if containsWord(lower, p) {
			out = append(out, p)
		}
	}
	return out
}

// containsWord reports whether lower contains phrase on word
// boundaries.
func containsWord(lower, phrase string) bool {
	idx := 0
	for {
		j := strings.Index(lower[idx:], phrase)
		if j < 0 {
			return false
		}
		start := idx + j
		end := start + len(phrase)
		beforeOK := start == 0 || !isWordByte(lower[start-1])
		afterOK := end == len(lower) || !isWordByte(lower[end])
		if beforeOK && afterOK {
			return true
		}
		idx = start + 1
	}
}

func title(keyword string) string {
	if keyword == "" {
		return keyword
	}
	return strings.ToUpper(keyword[:1]) + strings.ToLower(keyword[1:])
}
