package syllabus

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"
)

var (
	// NFKC folds NBSP, thin and figure spaces into U+0020; these are what is left
	exoticSpaceRe = regexp.MustCompile(`[\t\v\f\r\p{Zs}]`)
	zeroWidthRe   = regexp.MustCompile(`[\x{200B}\x{200C}\x{200D}\x{FEFF}]`)
	multiSpaceRe  = regexp.MustCompile(` {2,}`)
)

// sentenceTerminals end a line that must not absorb the next one
const sentenceTerminals = ".!?"

// splitRawLines splits page text into raw lines, tracking their indices
func splitRawLines(page string) []Line {
	page = strings.ReplaceAll(page, "\r\n", "\n")
	page = strings.ReplaceAll(page, "\r", "\n")
	parts := strings.Split(page, "\n")
	lines := make([]Line, len(parts))
	for i, p := range parts {
		lines[i] = Line{Text: p, Index: i}
	}
	return lines
}

// cleanWhitespace applies compatibility normalisation and collapses every run of
// whitespace into a single ordinary space.
func cleanWhitespace(s string) string {
	s = norm.NFKC.String(s)
	s = zeroWidthRe.ReplaceAllString(s, "")
	s = exoticSpaceRe.ReplaceAllString(s, " ")
	s = multiSpaceRe.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}

// NormalizeLines collapses irregular whitespace and merges soft-wrapped
// continuation fragments into the preceding line. Blank lines are dropped, so the
// result is never longer than the input.
func NormalizeLines(raw []Line) []Line {
	out := make([]Line, 0, len(raw))
	for _, l := range raw {
		text := cleanWhitespace(l.Text)
		if text == "" {
			continue
		}
		if n := len(out); n > 0 && isContinuation(out[n-1].Text, text) {
			out[n-1].Text += " " + text
			continue
		}
		out = append(out, Line{Text: text, Index: l.Index})
	}
	return out
}

// isContinuation reports whether next looks like the wrapped tail of prev
func isContinuation(prev, next string) bool {
	last, _ := utf8.DecodeLastRuneInString(prev)
	if strings.ContainsRune(sentenceTerminals, last) {
		return false
	}
	first, _ := utf8.DecodeRuneInString(next)
	return unicode.IsLower(first)
}
