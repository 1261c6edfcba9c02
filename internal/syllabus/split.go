package syllabus

import (
	"strings"
	"unicode"
)

// SplitMultiDate splits a line that mentions two or more independent dates into
// one fragment per date. Lines with a single date come back unchanged.
//
// Boundaries normally sit at the start of each date after the first, so the text
// between two dates stays with the preceding fragment. When the line leads with a
// description ("Quiz 1 on Oct 3, Quiz 2 on Oct 10") the dates trail their
// descriptions instead, and the boundary moves to just after the previous date and
// its punctuation.
func SplitMultiDate(l Line) []Line {
	spans := dateAnchorRe.FindAllStringIndex(l.Text, -1)
	if len(spans) < 2 {
		return []Line{l}
	}

	trailing := leadsWithDescription(l.Text[:spans[0][0]])

	frags := make([]Line, 0, len(spans))
	start := 0
	for k := 1; k < len(spans); k++ {
		cut := spans[k][0]
		if trailing {
			cut = skipSeparators(l.Text, spans[k-1][1], spans[k][0])
		}
		if frag := strings.TrimSpace(l.Text[start:cut]); frag != "" {
			frags = append(frags, Line{Text: frag, Index: l.Index})
		}
		start = cut
	}
	if frag := strings.TrimSpace(l.Text[start:]); frag != "" {
		frags = append(frags, Line{Text: frag, Index: l.Index})
	}
	return frags
}

// CountDateAnchors returns how many independent dates s mentions
func CountDateAnchors(s string) int {
	return len(dateAnchorRe.FindAllStringIndex(s, -1))
}

// leadsWithDescription reports whether the text before a line's first date is a
// real description rather than a week label, weekday or bullet.
func leadsWithDescription(prefix string) bool {
	prefix = weekRe.ReplaceAllString(prefix, "")
	prefix = weekdayRe.ReplaceAllString(prefix, "")
	return strings.IndexFunc(prefix, unicode.IsLetter) >= 0
}

// skipSeparators advances from just past a date over punctuation and spaces,
// never beyond limit.
func skipSeparators(s string, from, limit int) int {
	i := from
	for i < limit {
		if !strings.ContainsRune(" ,.;|", rune(s[i])) {
			break
		}
		i++
	}
	return i
}
