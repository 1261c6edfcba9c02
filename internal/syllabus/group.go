package syllabus

// DefaultProximityWindow is the lookahead used by the pipeline
const DefaultProximityWindow = 2

// GroupByProximity joins short, adjacent lines that only qualify as an event
// together, such as a bare date line followed by its description. Lines that
// already qualify on their own are never merged with a neighbour.
func GroupByProximity(lines []Line, window int) []Line {
	out := make([]Line, 0, len(lines))
	for i := 0; i < len(lines); i++ {
		cur := lines[i]
		if IsEventLine(cur.Text) {
			out = append(out, cur)
			continue
		}

		combined, consumed := cur.Text, i
		pending := cur.Text
		for j := i + 1; j < len(lines) && j <= i+window; j++ {
			next := lines[j].Text
			if IsEventLine(next) || BothDated(pending, next) {
				break
			}
			if AwaitsDate(pending, next) {
				combined, consumed = pending+" "+next, j
				break
			}
			pending += " " + next
			if IsEventLine(pending) {
				combined, consumed = pending, j
				break
			}
		}

		out = append(out, Line{Text: combined, Index: cur.Index})
		i = consumed
	}
	return out
}

// BothDated reports two lines that each carry their own date; they describe
// separate events and are never merged.
func BothDated(cur, next string) bool {
	return hasDateLike(cur) && hasDateLike(next)
}

// AwaitsDate reports a keyword line without a date followed by a dated line,
// e.g. "Project proposal due on" / "Oct 10".
func AwaitsDate(cur, next string) bool {
	return hasKeyword(cur) && !hasDateLike(cur) && hasDateLike(next)
}
