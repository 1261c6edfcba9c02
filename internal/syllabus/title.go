package syllabus

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

var (
	weekPrefixRe  = regexp.MustCompile(`(?i)^\W*` + weekSpan + `\s*[:.\-–—|]?\s*`)
	weekdayLeadRe = regexp.MustCompile(`(?i)^` + weekdayName + `\b\.?,?\s*`)
	dateLeadRe    = regexp.MustCompile(`(?i)^(?:` + dateSpan + `)[\s:,.;\-–—|]*`)
	cueLabelRe    = regexp.MustCompile(`(?i)^(?:due|deadlines?|deliverables?)\s*[:\-–—]\s*`)

	dateSpanRe  = regexp.MustCompile(`(?i)` + dateSpan + `|\b` + weekdayFull + `\b`)
	emptyParaRe = regexp.MustCompile(`\(\s*\)|\[\s*\]`)

	danglingRe  = regexp.MustCompile(`(?i)(?:[\s,:;.\-–—@|]+|\s+(?:due|on|by|at|from|until|before|every|is|are)\b)+$`)
	leadPunctRe = regexp.MustCompile(`^[\s,:;\-–—|.]+`)
)

// Title derives the human summary of an event line: week labels, weekday names
// and the leading date are stripped along with a "Due:" label, any remaining
// date or time spans are removed, and the result is cut to MaxSummaryLength.
// An empty result becomes PlaceholderSummary.
func Title(s string) string {
	t := strings.TrimSpace(s)
	t = weekPrefixRe.ReplaceAllString(t, "")
	t = weekdayLeadRe.ReplaceAllString(t, "")
	t = dateLeadRe.ReplaceAllString(t, "")
	t = cueLabelRe.ReplaceAllString(t, "")

	t = stripTimeRanges(t)
	t = timeRe.ReplaceAllString(t, "")
	t = dateSpanRe.ReplaceAllString(t, "")
	t = emptyParaRe.ReplaceAllString(t, "")
	t = multiSpaceRe.ReplaceAllString(t, " ")

	t = leadPunctRe.ReplaceAllString(t, "")
	for {
		trimmed := danglingRe.ReplaceAllString(t, "")
		if trimmed == t {
			break
		}
		t = trimmed
	}
	t = strings.TrimSpace(t)

	if t == "" {
		return PlaceholderSummary
	}
	return truncateRunes(t, MaxSummaryLength)
}

func truncateRunes(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	r := []rune(s)
	return strings.TrimSpace(string(r[:n]))
}
