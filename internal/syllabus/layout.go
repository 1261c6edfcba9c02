package syllabus

import "strings"

const (
	shortLineLimit       = 120
	unstructuredShortMin = 0.8
	unstructuredTableMax = 0.3
)

// LayoutSignals are the per-page statistics the layout decision is based on
type LayoutSignals struct {
	ShortRatio     float64
	TableRatio     float64
	ScheduleHeader bool
}

// MeasureLayout computes layout signals over the raw (un-normalised) lines of a
// page; column gaps only survive before whitespace is collapsed.
func MeasureLayout(raw []Line) LayoutSignals {
	var total, short, tabular int
	var page strings.Builder
	for _, l := range raw {
		page.WriteString(l.Text)
		page.WriteByte('\n')

		if strings.TrimSpace(l.Text) == "" {
			continue
		}
		total++
		if len([]rune(l.Text)) < shortLineLimit {
			short++
		}
		if isTabularLine(l.Text) {
			tabular++
		}
	}

	signals := LayoutSignals{ScheduleHeader: scheduleHeaderRe.MatchString(page.String())}
	if total > 0 {
		signals.ShortRatio = float64(short) / float64(total)
		signals.TableRatio = float64(tabular) / float64(total)
	}
	if signals.ScheduleHeader {
		signals.TableRatio = 1.0
	}
	return signals
}

// Layout picks the reconstruction strategy for these signals
func (s LayoutSignals) Layout() Layout {
	if s.ShortRatio > unstructuredShortMin && s.TableRatio < unstructuredTableMax {
		return LayoutUnstructured
	}
	return LayoutTabular
}

// ClassifyLayout is MeasureLayout followed by the decision rule
func ClassifyLayout(raw []Line) Layout {
	return MeasureLayout(raw).Layout()
}

// isTabularLine reports a column gap: three spaces or a tab inside the line
func isTabularLine(s string) bool {
	s = strings.TrimSpace(s)
	return strings.Contains(s, "   ") || strings.Contains(s, "\t")
}
