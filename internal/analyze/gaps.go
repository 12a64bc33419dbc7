package analyze

import (
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/proofmap/proofmap/internal/model"
)

var (
	theoremRefRe = regexp.MustCompile(`(?i)\bby\s+(?:the\s+)?(theorem|lemma|corollary|proposition|claim|fact)\b`)
	citedRefRe   = regexp.MustCompile(`^[\s~]*(\d|\\ref\b|\\eqref\b|\[|[A-Z][a-z])`)
	hedgeRe      = regexp.MustCompile(`(?i)\b(?:` + strings.Join(hedgePhrases, "|") + `)\b`)
	mathTermRe   = regexp.MustCompile(`(?i)\b(` + strings.Join(mathTerms, "|") + `)s?\b`)
)

// DetectGaps runs the four independent gap checks and returns their
// flags grouped by kind, then by target document order. The function
// is pure and deterministic for identical input; it never mutates the
// steps, assumptions or registry.
func DetectGaps(steps []model.Step, assumptions []model.Assumption, reg *Registry, cfg model.AnalysisConfig) []model.Flag {
	cutoff := cfg.LeapComplexityCutoff
	if cutoff <= 0 {
		cutoff = model.DefaultConfig().Analysis.LeapComplexityCutoff
	}
	props := append(append([]string(nil), propertyVocab...), cfg.ExtraProperties...)

	var flags []model.Flag
	flags = append(flags, detectUndefinedSymbols(steps, reg)...)
	flags = append(flags, detectUncitedTheorems(steps)...)
	flags = append(flags, detectUnassumedProperties(steps, assumptions, props)...)
	flags = append(flags, detectObviousLeaps(steps, cutoff)...)

	order := stepOrder(steps)
	sort.SliceStable(flags, func(i, j int) bool {
		if flags[i].KindRank() != flags[j].KindRank() {
			return flags[i].KindRank() < flags[j].KindRank()
		}
		return order[flags[i].Target] < order[flags[j].Target]
	})
	for i := range flags {
		flags[i].ID = "F" + strconv.Itoa(i+1)
	}
	return flags
}

// detectUndefinedSymbols flags tokens used at least twice but never
// introduced, skipping standard symbols and named operators.
func detectUndefinedSymbols(steps []model.Step, reg *Registry) []model.Flag {
	exempt := map[string]bool{}
	for _, s := range standardSymbols {
		exempt[s] = true
	}
	for _, op := range operatorNames {
		exempt[op] = true
	}

	var flags []model.Flag
	for _, sym := range reg.Symbols() {
		tok, _ := reg.Get(sym)
		if tok.Introduced || exempt[sym] || len(tok.Occurrences) < 2 {
			continue
		}
		flags = append(flags, model.Flag{
			Kind:       model.FlagUndefinedSymbol,
			Target:     tok.FirstStepID,
			Message:    fmt.Sprintf("symbol %q is used %d times but never introduced", tok.Display, len(tok.Occurrences)),
			Suggestion: fmt.Sprintf("introduce %q with Let, Define or Fix before its first use", tok.Display),
			Severity:   model.SeverityMedium,
		})
	}
	return flags
}

// detectUncitedTheorems flags appeals to a named result class with no
// reference following it. Standard idioms like "by definition" never
// match the theorem-noun pattern and stay excluded.
func detectUncitedTheorems(steps []model.Step) []model.Flag {
	var flags []model.Flag
	for _, step := range steps {
		for _, m := range theoremRefRe.FindAllStringSubmatchIndex(step.Text, -1) {
			phrase := strings.ToLower(step.Text[m[0]:m[1]])
			if isStandardPhrase(phrase) {
				continue
			}
			rest := step.Text[m[1]:]
			if citedRefRe.MatchString(rest) {
				continue
			}
			noun := strings.ToLower(step.Text[m[2]:m[3]])
			flags = append(flags, model.Flag{
				Kind:       model.FlagUncitedTheorem,
				Target:     step.ID,
				Message:    fmt.Sprintf("appeal to a %s without a citation: %q", noun, strings.TrimSpace(step.Text[m[0]:m[1]])),
				Suggestion: fmt.Sprintf("name the %s explicitly, e.g. %q", noun, "by "+title(noun)+" 3.2"),
				Severity:   model.SeverityHigh,
			})
		}
	}
	return flags
}

func isStandardPhrase(phrase string) bool {
	for _, p := range standardPhrases {
		if strings.HasPrefix(phrase, p) {
			return true
		}
	}
	return false
}

// detectUnassumedProperties flags property words used in a step when
// no assumption active at that step mentions the property for the
// associated symbol. Hits inside the step's own introduction clauses
// are the assumption itself and stay silent.
func detectUnassumedProperties(steps []model.Step, assumptions []model.Assumption, props []string) []model.Flag {
	// Longest phrase first so "locally compact" claims its range
	// before "compact" can double-report it.
	sorted := append([]string(nil), props...)
	sort.SliceStable(sorted, func(i, j int) bool { return len(sorted[i]) > len(sorted[j]) })

	var flags []model.Flag
	for _, step := range steps {
		lower := strings.ToLower(step.Text)
		introSpans := introductionClauses(step.Text)
		active := ActiveAssumptions(assumptions, step.ID)
		symbols := scanSymbols(step.Text)

		var claimed []Span
		for _, prop := range sorted {
			pos := wordIndex(lower, prop)
			if pos < 0 {
				continue
			}
			if insideAny(claimed, pos) {
				continue
			}
			claimed = append(claimed, Span{pos, pos + len(prop)})
			if insideAny(introSpans, pos) {
				continue
			}
			symbol := nearestSymbolBefore(symbols, pos)
			if propertyAssumed(active, prop, symbol) {
				continue
			}
			msg := fmt.Sprintf("property %q is used without a covering assumption", prop)
			if symbol != "" {
				msg = fmt.Sprintf("property %q of %q is used without a covering assumption", prop, symbol)
			}
			flags = append(flags, model.Flag{
				Kind:       model.FlagUnassumedProperty,
				Target:     step.ID,
				Message:    msg,
				Suggestion: fmt.Sprintf("assume or prove %q before relying on it", prop),
				Severity:   model.SeverityMedium,
			})
		}
	}
	return flags
}

// propertyAssumed reports whether any active assumption mentions the
// property, and the symbol when one is associated.
func propertyAssumed(active []model.Assumption, prop, symbol string) bool {
	for _, a := range active {
		lower := strings.ToLower(a.Text)
		if !containsWord(lower, prop) {
			continue
		}
		if symbol == "" {
			return true
		}
		for _, t := range a.Tokens {
			if t == symbol {
				return true
			}
		}
	}
	return false
}

// nearestSymbolBefore returns the symbol occurring closest before the
// byte offset, or "" when none precedes it.
func nearestSymbolBefore(symbols []match, pos int) string {
	best := ""
	bestPos := -1
	for _, m := range symbols {
		if m.pos < pos && m.pos > bestPos {
			best = m.symbol
			bestPos = m.pos
		}
	}
	return best
}

// detectObviousLeaps flags hedging phrases attached to steps whose
// mathematical content exceeds the complexity cutoff.
func detectObviousLeaps(steps []model.Step, cutoff int) []model.Flag {
	var flags []model.Flag
	for _, step := range steps {
		hedge := hedgeRe.FindString(step.Text)
		if hedge == "" {
			continue
		}
		score := complexityScore(step)
		if score < cutoff {
			continue
		}
		flags = append(flags, model.Flag{
			Kind:       model.FlagObviousLeap,
			Target:     step.ID,
			Message:    fmt.Sprintf("%q glosses over a step with complexity %d", strings.ToLower(hedge), score),
			Suggestion: "spell out the intermediate reasoning or cite the result that makes it immediate",
			Severity:   model.SeverityLow,
		})
	}
	return flags
}

// complexityScore estimates the mathematical weight of a step:
// operator-term mentions weigh double, distinct tokens weigh one, and
// long math spans add one point per 20 bytes.
func complexityScore(step model.Step) int {
	terms := len(mathTermRe.FindAllString(step.Text, -1))
	spanLen := 0
	for _, s := range protectedOnly(step.Text) {
		spanLen += s.End - s.Start
	}
	return 2*terms + len(step.Tokens) + spanLen/20
}

// protectedOnly re-scans a step's text for math spans, ignoring any
// delimiter warnings (they were already reported during preprocessing).
func protectedOnly(text string) []Span {
	spans, _ := protectedSpans(text)
	return spans
}

func insideAny(spans []Span, pos int) bool {
	for _, s := range spans {
		if s.Contains(pos) {
			return true
		}
	}
	return false
}

// wordIndex returns the byte offset of the first word-bounded
// occurrence of phrase in lower, or -1.
func wordIndex(lower, phrase string) int {
	idx := 0
	for {
		j := strings.Index(lower[idx:], phrase)
		if j < 0 {
			return -1
		}
		start := idx + j
		end := start + len(phrase)
		beforeOK := start == 0 || !isWordByte(lower[start-1])
		afterOK := end == len(lower) || !isWordByte(lower[end])
		if beforeOK && afterOK {
			return start
		}
		idx = start + 1
	}
}

// stepOrder maps node ids to document order for flag sorting.
func stepOrder(steps []model.Step) map[string]int {
	order := make(map[string]int, len(steps))
	for i, s := range steps {
		order[s.ID] = i
	}
	return order
}
