package analyze

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/proofmap/proofmap/internal/model"
)

var (
	citationRe = regexp.MustCompile(`(?i)\bsteps?\s+(\d+(?:\s*(?:,|and|or)\s*\d+)*)`)
	digitsRe   = regexp.MustCompile(`\d+`)
)

// sentence is an exact slice of the normalized text, so concatenating
// sentences in order reproduces the input byte for byte.
type sentence struct {
	Text  string
	Start int
	End   int
}

// Segment splits normalized text into ordered steps. Sentence
// boundaries never fall inside a protected span or after a recognized
// abbreviation; sentences are grouped into steps at discourse markers
// or once the accumulated step exceeds minStepLength.
func Segment(pre *Preprocessed, minStepLength int) []model.Step {
	if minStepLength <= 0 {
		minStepLength = model.DefaultConfig().Analysis.MinStepLength
	}

	sentences := splitSentences(pre)
	if len(sentences) == 0 {
		return nil
	}

	var steps []model.Step
	var buf strings.Builder

	flush := func() {
		text := strings.TrimSpace(buf.String())
		if text == "" {
			return
		}
		idx := len(steps) + 1
		steps = append(steps, model.Step{
			ID:        "S" + strconv.Itoa(idx),
			Index:     idx,
			Text:      text,
			Kind:      inferKind(text),
			Citations: findCitations(text),
		})
		buf.Reset()
	}

	for _, s := range sentences {
		trimmed := strings.TrimSpace(s.Text)
		if trimmed == "" {
			continue
		}
		if buf.Len() > 0 && (opensWithMarker(trimmed) || buf.Len() >= minStepLength) {
			flush()
		}
		if buf.Len() > 0 {
			buf.WriteByte(' ')
		}
		buf.WriteString(trimmed)
	}
	flush()

	return steps
}

// splitSentences cuts the normalized text at sentence-ending
// punctuation, rejecting candidates inside protected spans or right
// after an abbreviation. Every byte of input lands in exactly one
// sentence.
func splitSentences(pre *Preprocessed) []sentence {
	text := pre.Text
	var out []sentence
	start := 0

	for i := 0; i < len(text); i++ {
		c := text[i]
		if c != '.' && c != '!' && c != '?' {
			continue
		}
		if pre.InProtected(i) {
			continue
		}
		// Only split when followed by whitespace or end of text, which
		// also keeps decimals like "3.2" intact.
		if i+1 < len(text) && text[i+1] != ' ' {
			continue
		}
		if c == '.' && endsWithAbbreviation(text, i) {
			continue
		}
		out = append(out, sentence{Text: text[start : i+1], Start: start, End: i + 1})
		start = i + 1
	}

	if start < len(text) {
		out = append(out, sentence{Text: text[start:], Start: start, End: len(text)})
	}

	return out
}

// opensWithMarker reports whether the sentence begins with a
// discourse marker signaling a new reasoning step.
func opensWithMarker(s string) bool {
	lower := strings.ToLower(s)
	for _, marker := range discourseMarkers {
		if strings.HasPrefix(lower, marker) {
			rest := lower[len(marker):]
			if rest == "" || !isWordByte(rest[0]) {
				return true
			}
		}
	}
	return false
}

// inferKind classifies a step from its leading words.
func inferKind(text string) model.StepKind {
	lower := strings.ToLower(text)
	switch {
	case strings.HasPrefix(lower, "case ") || strings.HasPrefix(lower, "wlog") ||
		strings.HasPrefix(lower, "without loss of generality"):
		return model.StepKindCaseSplit
	case strings.HasPrefix(lower, "by "):
		return model.StepKindApplication
	case strings.HasPrefix(lower, "then") || strings.HasPrefix(lower, "hence") ||
		strings.HasPrefix(lower, "therefore") || strings.HasPrefix(lower, "thus"):
		return model.StepKindDeduction
	default:
		return model.StepKindClaim
	}
}

// findCitations extracts explicit back-references like "by Step 2" or
// "steps 1 and 3". The graph builder decides whether each reference
// is legal (earlier) or an anomaly (forward).
func findCitations(text string) []int {
	var cites []int
	seen := map[int]bool{}
	for _, m := range citationRe.FindAllStringSubmatch(text, -1) {
		for _, d := range digitsRe.FindAllString(m[1], -1) {
			n, err := strconv.Atoi(d)
			if err != nil || n <= 0 || seen[n] {
				continue
			}
			seen[n] = true
			cites = append(cites, n)
		}
	}
	return cites
}
