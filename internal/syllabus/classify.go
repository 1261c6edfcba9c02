package syllabus

// IsEventLine decides whether a candidate line is worth a calendar entry.
// A line qualifies when it has a date-like span and one of: a "final exam"
// phrase, a deadline or session keyword, or a week label next to a real date.
func IsEventLine(s string) bool {
	if !hasDateLike(s) {
		return false
	}
	return IsFinalExam(s) || hasKeyword(s) || IsDatedWeek(s)
}

// IsFinalExam matches "Final Exam" / "final examination"
func IsFinalExam(s string) bool {
	return finalExamRe.MatchString(s)
}

// IsDatedWeek reports a "Week N" label alongside a calendar date or weekday
func IsDatedWeek(s string) bool {
	return weekRe.MatchString(s) && dateAnchorRe.MatchString(s)
}

// ClassifyEventType maps keyword hits onto an event category using the fixed
// priority of the type map. A due cue without any keyword is an assignment.
func ClassifyEventType(s string) EventType {
	for _, rule := range typeRules {
		if rule.pattern.MatchString(s) {
			return rule.eventType
		}
	}
	if hasDueCue(s) {
		return EventTypeAssignment
	}
	return EventTypeEvent
}
