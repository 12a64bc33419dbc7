package analyze

import (
	"regexp"
	"sort"
	"strings"

	"github.com/proofmap/proofmap/internal/model"
)

// The name and identifier patterns carry no trailing \b: a match is
// often followed by _, ^ or }, where \b can never hold. The scanner
// checks the following byte itself instead.
var (
	greekRe    = regexp.MustCompile(`\\(` + strings.Join(longestFirst(greekLetters), "|") + `)`)
	wrappedRe  = regexp.MustCompile(`\\math(?:bb|cal|frak|scr)\{([A-Za-z])\}`)
	operatorRe = regexp.MustCompile(`\\?\b(` + strings.Join(longestFirst(operatorNames), "|") + `)`)
	identRe    = regexp.MustCompile(`\b([A-Za-z])((?:_|\^)(?:\{[^{}]*\}|[A-Za-z0-9]))?`)
	introRe    = regexp.MustCompile(`(?i)\b(` + strings.Join(assumptionKeywords, "|") + `)\b`)
	clauseRe   = regexp.MustCompile(`[.;:]`)
)

// longestFirst orders alternation candidates so a name that prefixes
// a longer one (lim, limsup) cannot shadow it.
func longestFirst(names []string) []string {
	out := append([]string(nil), names...)
	sort.SliceStable(out, func(i, j int) bool { return len(out[i]) > len(out[j]) })
	return out
}

// atWordEnd reports whether the match ending at end is not glued to
// more word characters, e.g. rejects the sup in supremum.
func atWordEnd(text string, end int) bool {
	return end >= len(text) || !isWordByte(text[end])
}

// articleLetters are single letters that are almost always English
// words rather than identifiers when they appear outside math mode.
var articleLetters = map[string]bool{"a": true, "A": true, "I": true}

// match is one raw token hit inside a step's text.
type match struct {
	pos     int
	symbol  string
	display string
}

// Registry tracks every normalized symbol seen during one analysis
// run. It is owned by the run and never shared.
type Registry struct {
	order  []string
	tokens map[string]*model.Token
}

// NewRegistry creates an empty token registry.
func NewRegistry() *Registry {
	return &Registry{tokens: make(map[string]*model.Token)}
}

// ExtractStepTokens finds the mathematical symbols of one step,
// records their occurrences in the registry and fills step.Tokens in
// order of first appearance. Symbols occurring in an introduction
// clause (Let/Define/Assume/Suppose/Fix/Given) are marked introduced;
// the flag is monotonic for the rest of the run.
func (r *Registry) ExtractStepTokens(step *model.Step) {
	matches := scanSymbols(step.Text)

	introSpans := introductionClauses(step.Text)

	seen := map[string]bool{}
	for _, m := range matches {
		tok, ok := r.tokens[m.symbol]
		if !ok {
			tok = &model.Token{
				Symbol:      m.symbol,
				Display:     m.display,
				FirstStepID: step.ID,
			}
			r.tokens[m.symbol] = tok
			r.order = append(r.order, m.symbol)
		}
		tok.Occurrences = append(tok.Occurrences, model.Occurrence{
			StepID:   step.ID,
			Position: m.pos,
		})
		for _, span := range introSpans {
			if span.Contains(m.pos) {
				tok.Introduced = true
			}
		}
		if !seen[m.symbol] {
			seen[m.symbol] = true
			step.Tokens = append(step.Tokens, m.symbol)
		}
	}
}

// Get returns the registry entry for a normalized symbol.
func (r *Registry) Get(symbol string) (*model.Token, bool) {
	tok, ok := r.tokens[symbol]
	return tok, ok
}

// Symbols returns all normalized symbols in first-occurrence order.
func (r *Registry) Symbols() []string {
	return r.order
}

// Snapshot returns a sorted copy of the registry for the result.
func (r *Registry) Snapshot() []model.Token {
	out := make([]model.Token, 0, len(r.tokens))
	for _, sym := range r.order {
		out = append(out, *r.tokens[sym])
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Symbol < out[j].Symbol })
	return out
}

// ExtractSymbols is the stateless form used for assumption texts: it
// returns the normalized symbols of a text fragment without touching
// any registry.
func ExtractSymbols(text string) []string {
	var out []string
	seen := map[string]bool{}
	for _, m := range scanSymbols(text) {
		if !seen[m.symbol] {
			seen[m.symbol] = true
			out = append(out, m.symbol)
		}
	}
	return out
}

// scanSymbols runs all recognizers over the text and returns matches
// sorted by position. Overlapping hits collapse to the earliest,
// longest match.
func scanSymbols(text string) []match {
	var matches []match
	claimed := make([]bool, len(text))

	claim := func(start, end int, symbol, display string) {
		for i := start; i < end; i++ {
			if claimed[i] {
				return
			}
		}
		for i := start; i < end; i++ {
			claimed[i] = true
		}
		matches = append(matches, match{pos: start, symbol: symbol, display: display})
	}

	// Command-based forms first so their letters are not re-matched as
	// plain identifiers.
	for _, m := range greekRe.FindAllStringSubmatchIndex(text, -1) {
		if !atWordEnd(text, m[1]) {
			continue
		}
		claim(m[0], m[1], text[m[2]:m[3]], text[m[0]:m[1]])
	}
	for _, m := range wrappedRe.FindAllStringSubmatchIndex(text, -1) {
		claim(m[0], m[1], text[m[2]:m[3]], text[m[0]:m[1]])
	}
	for _, m := range operatorRe.FindAllStringSubmatchIndex(text, -1) {
		if !atWordEnd(text, m[1]) {
			continue
		}
		claim(m[0], m[1], text[m[2]:m[3]], text[m[0]:m[1]])
	}
	for _, m := range identRe.FindAllStringSubmatchIndex(text, -1) {
		if !atWordEnd(text, m[1]) {
			continue
		}
		full := text[m[0]:m[1]]
		base := text[m[2]:m[3]]
		if articleLetters[base] && full == base {
			continue
		}
		if m[0] > 0 && text[m[0]-1] == '\\' {
			continue // command fragment, e.g. the x in \xi
		}
		claim(m[0], m[1], base, full)
	}

	sort.Slice(matches, func(i, j int) bool { return matches[i].pos < matches[j].pos })
	return matches
}

// introductionClauses returns the byte spans of clauses that
// introduce notation within the text.
func introductionClauses(text string) []Span {
	var spans []Span
	start := 0
	bounds := clauseRe.FindAllStringIndex(text, -1)
	cut := make([]int, 0, len(bounds)+1)
	for _, b := range bounds {
		cut = append(cut, b[1])
	}
	cut = append(cut, len(text))
	for _, end := range cut {
		if end <= start {
			continue
		}
		if introRe.MatchString(text[start:end]) {
			spans = append(spans, Span{start, end})
		}
		start = end
	}
	return spans
}
