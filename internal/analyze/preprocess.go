package analyze

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/proofmap/proofmap/internal/model"
)

// Span marks a half-open [Start, End) byte range of the normalized
// text that segmentation must never split.
type Span struct {
	Start int
	End   int
}

// Contains reports whether the byte offset falls inside the span.
func (s Span) Contains(pos int) bool {
	return pos >= s.Start && pos < s.End
}

// Preprocessed is the normalized proof text together with its
// protected ranges and any structural warnings found on the way.
type Preprocessed struct {
	Text      string
	Protected []Span
	Warnings  []string
}

// InProtected reports whether the byte offset lies in any protected span.
func (p *Preprocessed) InProtected(pos int) bool {
	for _, s := range p.Protected {
		if s.Contains(pos) {
			return true
		}
	}
	return false
}

var (
	commentRe    = regexp.MustCompile(`(^|[^\\])%[^\n]*`)
	whitespaceRe = regexp.MustCompile(`\s+`)
	proofEnvRe   = regexp.MustCompile(`\\(?:begin|end)\{proof\}|\\qed\b|\\qedhere\b`)
	beginEnvRe   = regexp.MustCompile(`^\\begin\{([a-zA-Z*]+)\}`)

	macroRes = compileMacros()
)

func compileMacros() []struct {
	re   *regexp.Regexp
	repl string
} {
	out := make([]struct {
		re   *regexp.Regexp
		repl string
	}, 0, len(macroTable))
	for _, m := range macroTable {
		out = append(out, struct {
			re   *regexp.Regexp
			repl string
		}{regexp.MustCompile(m.pattern), m.repl})
	}
	return out
}

// Preprocess normalizes raw LaTeX text and locates protected spans.
// It fails only on empty or whitespace-only input; unbalanced math
// delimiters degrade to warnings with the remainder left unprotected.
func Preprocess(raw string) (*Preprocessed, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, model.ErrEmptyInput
	}

	text := commentRe.ReplaceAllString(raw, "$1")
	text = proofEnvRe.ReplaceAllString(text, " ")
	for _, m := range macroRes {
		text = m.re.ReplaceAllString(text, m.repl)
	}
	text = whitespaceRe.ReplaceAllString(text, " ")
	text = strings.TrimSpace(text)

	if text == "" {
		return nil, model.ErrEmptyInput
	}

	spans, warnings := protectedSpans(text)

	return &Preprocessed{
		Text:      text,
		Protected: spans,
		Warnings:  warnings,
	}, nil
}

// protectedSpans scans for inline/display math and math environments.
// An unmatched opener leaves the remainder unprotected and records a
// warning instead of aborting.
func protectedSpans(text string) ([]Span, []string) {
	var spans []Span
	var warnings []string

	i := 0
	for i < len(text) {
		switch {
		case strings.HasPrefix(text[i:], "$$"):
			end := strings.Index(text[i+2:], "$$")
			if end < 0 {
				warnings = append(warnings, fmt.Sprintf("unbalanced display math delimiter at offset %d", i))
				return spans, warnings
			}
			spans = append(spans, Span{i, i + 2 + end + 2})
			i += 2 + end + 2

		case text[i] == '$' && !escapedAt(text, i):
			end := indexUnescaped(text[i+1:], '$')
			if end < 0 {
				warnings = append(warnings, fmt.Sprintf("unbalanced inline math delimiter at offset %d", i))
				return spans, warnings
			}
			spans = append(spans, Span{i, i + 1 + end + 1})
			i += 1 + end + 1

		case strings.HasPrefix(text[i:], `\(`):
			end := strings.Index(text[i+2:], `\)`)
			if end < 0 {
				warnings = append(warnings, fmt.Sprintf("unbalanced \\( delimiter at offset %d", i))
				return spans, warnings
			}
			spans = append(spans, Span{i, i + 2 + end + 2})
			i += 2 + end + 2

		case strings.HasPrefix(text[i:], `\[`):
			end := strings.Index(text[i+2:], `\]`)
			if end < 0 {
				warnings = append(warnings, fmt.Sprintf("unbalanced \\[ delimiter at offset %d", i))
				return spans, warnings
			}
			spans = append(spans, Span{i, i + 2 + end + 2})
			i += 2 + end + 2

		case strings.HasPrefix(text[i:], `\begin{`):
			m := beginEnvRe.FindStringSubmatch(text[i:])
			if m == nil || !mathEnvironments[m[1]] {
				i++
				continue
			}
			closer := `\end{` + m[1] + `}`
			end := strings.Index(text[i+len(m[0]):], closer)
			if end < 0 {
				warnings = append(warnings, fmt.Sprintf("unbalanced environment %q at offset %d", m[1], i))
				return spans, warnings
			}
			total := len(m[0]) + end + len(closer)
			spans = append(spans, Span{i, i + total})
			i += total

		default:
			i++
		}
	}

	return spans, warnings
}

// escapedAt reports whether the character at pos is preceded by a
// backslash (e.g. \$ is a literal dollar sign).
func escapedAt(text string, pos int) bool {
	return pos > 0 && text[pos-1] == '\\'
}

// indexUnescaped returns the index of the first unescaped occurrence
// of c in s, or -1.
func indexUnescaped(s string, c byte) int {
	for j := 0; j < len(s); j++ {
		if s[j] == c && (j == 0 || s[j-1] != '\\') {
			return j
		}
	}
	return -1
}

// endsWithAbbreviation reports whether the text ending at (and
// including) the period at pos terminates with a recognized
// abbreviation, in which case the period is not a sentence boundary.
func endsWithAbbreviation(text string, pos int) bool {
	head := strings.ToLower(text[:pos+1])
	for _, abbr := range abbreviations {
		if strings.HasSuffix(head, abbr) {
			// Guard against a word merely ending in the abbreviation
			// letters, e.g. "...homog." vs "e.g.".
			prefix := head[:len(head)-len(abbr)]
			if prefix == "" || !isWordByte(prefix[len(prefix)-1]) {
				return true
			}
		}
	}
	return false
}

func isWordByte(b byte) bool {
	return b >= 'a' && b <= 'z' || b >= 'A' && b <= 'Z' || b >= '0' && b <= '9'
}
