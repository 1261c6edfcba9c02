package syllabus

import "strings"

const (
	// rowLookahead is how many following lines a dated row may absorb
	rowLookahead = 4

	// proseMinWords is the length at which an undated, keyword-free line counts
	// as narrative prose
	proseMinWords = 12
)

// ReconstructBlocks rebuilds logical rows or sentences from normalised lines
// using the strategy chosen for the page.
func ReconstructBlocks(lines []Line, layout Layout) []Line {
	if layout == LayoutUnstructured {
		if frags, ok := splitParagraphs(lines); ok {
			return frags
		}
	}
	return mergeRows(lines)
}

// splitParagraphs breaks paragraphs at date boundaries and keeps the dated,
// non-list fragments. The split is adopted only when it produced at least half
// as many fragments as there were lines.
func splitParagraphs(lines []Line) ([]Line, bool) {
	var frags []Line
	for _, l := range lines {
		for _, f := range SplitMultiDate(l) {
			if hasDateLike(f.Text) && !IsNumberedItem(f.Text) {
				frags = append(frags, f)
			}
		}
	}
	if len(frags) == 0 || 2*len(frags) < len(lines) {
		return nil, false
	}
	return frags, true
}

// mergeRows joins each dated line with the wrapped lines that follow it
func mergeRows(lines []Line) []Line {
	out := make([]Line, 0, len(lines))
	for i := 0; i < len(lines); i++ {
		cur := lines[i]
		if !StartsBlock(cur.Text) {
			out = append(out, cur)
			continue
		}

		parts := []string{cur.Text}
		j := i + 1
		for ; j < len(lines) && j <= i+rowLookahead; j++ {
			if EndsBlock(lines[j].Text) {
				break
			}
			parts = append(parts, lines[j].Text)
		}
		out = append(out, Line{Text: strings.Join(parts, " "), Index: cur.Index})
		i = j - 1
	}
	return out
}

// StartsBlock reports whether s carries a date or weekday token and so opens a row
func StartsBlock(s string) bool {
	return hasDateLike(s) || rowStartRe.MatchString(s)
}

// EndsBlock reports whether s must not be absorbed into the row above it: it
// opens a row of its own, carries a date token anywhere, or is a policy header
// or narrative prose.
func EndsBlock(s string) bool {
	return rowStartRe.MatchString(s) || dateAnchorRe.MatchString(s) || IsPolicyHeader(s) || IsNarrative(s)
}

// IsPolicyHeader matches section headers such as "Late Work Policy"
func IsPolicyHeader(s string) bool {
	return policyHeaderRe.MatchString(s)
}

// IsNarrative reports long prose with neither a date nor a keyword
func IsNarrative(s string) bool {
	return len(strings.Fields(s)) >= proseMinWords && !hasDateLike(s) && !hasKeyword(s)
}

// IsNumberedItem reports a leading list marker such as "3." or "b)"
func IsNumberedItem(s string) bool {
	return numberedListRe.MatchString(s)
}
