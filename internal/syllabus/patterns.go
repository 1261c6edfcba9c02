package syllabus

import "regexp"

// Pattern library. Every matcher below is compiled once at package init and only
// read afterwards; *regexp.Regexp is safe for concurrent use.

const (
	monthName = `(?:jan(?:uary)?|feb(?:ruary)?|mar(?:ch)?|apr(?:il)?|may|june?|july?|aug(?:ust)?|` +
		`sept?(?:ember)?|oct(?:ober)?|nov(?:ember)?|dec(?:ember)?)`

	weekdayName = `(?:mon(?:day)?|tue(?:s(?:day)?)?|wed(?:nesday)?|thu(?:r(?:s(?:day)?)?)?|` +
		`fri(?:day)?|sat(?:urday)?|sun(?:day)?)`

	weekdayFull = `(?:monday|tuesday|wednesday|thursday|friday|saturday|sunday)`

	// "Oct 3", "October 3rd", "Oct. 3, 2025"
	monthDay = `\b` + monthName + `\.?\s+\d{1,2}(?:st|nd|rd|th)?\b(?:,?\s+\d{4}\b|,\d{4}\b)?`

	// "10/3", "10/3/25", "10/03/2025"
	slashDate = `\b\d{1,2}/\d{1,2}(?:/(?:\d{4}|\d{2}))?\b`

	calendarDate = `(?:` + monthDay + `|` + slashDate + `)`

	weekdayPrefix = `(?:\b` + weekdayName + `\b\.?,?\s*)?`

	rangeSep = `\s*(?:-|–|—|\bto\b|\bthrough\b|\bthru\b)\s*`

	// a bare day only closes a range when it is not the hour of a clock time
	rangeTail = `(?:` + monthDay + `|` + slashDate + `|\d{1,2}(?:st|nd|rd|th)?(?:[\s,.;)]|$))`

	dateSpan = weekdayPrefix + calendarDate + `(?:` + rangeSep + rangeTail + `)?`

	weekSpan = `\bweek\s*\d{1,2}(?:\s*(?:-|–|—|to)\s*\d{1,2})?\b`

	deadlineWords = `assignments?|hw|homeworks?|projects?|problem\s*sets?|psets?|quiz(?:zes)?|exams?|` +
		`midterms?|finals?|presentations?|papers?|essays?|labs?|due|deadlines?|deliverables?`

	sessionWords = `class(?:es)?|lectures?|reviews?|break|holidays?|office\s+hours`

	// optional item number: "HW3", "Lab 2", "Quiz #4"
	itemNumber = `(?:\s*#?\d+[a-z]?)?`
)

var (
	// dateLikeRe finds any date-like span: calendar dates (optionally weekday
	// prefixed and ranged), bare weekday names and "Week N" labels.
	dateLikeRe = regexp.MustCompile(`(?i)` + dateSpan + `|\b` + weekdayFull + `\b|` + weekSpan)

	// dateAnchorRe finds independent date tokens, the boundaries used when a
	// line mentions more than one event. Week labels are not anchors.
	dateAnchorRe = regexp.MustCompile(`(?i)` + dateSpan + `|\b` + weekdayFull + `\b`)

	// explicitDateRe finds concrete calendar dates only.
	explicitDateRe = regexp.MustCompile(`(?i)` + calendarDate)

	weekdayRe = regexp.MustCompile(`(?i)\b` + weekdayFull + `\b`)

	weekRe = regexp.MustCompile(`(?i)` + weekSpan)

	keywordRe = regexp.MustCompile(`(?i)\b(?:` + deadlineWords + `|` + sessionWords + `)` + itemNumber + `\b`)

	finalExamRe = regexp.MustCompile(`(?i)\bfinal\s+exam(?:ination)?s?\b`)

	dueCueRe = regexp.MustCompile(`(?i)\b(?:due|deadlines?|by|submit(?:s|ted)?|submission)\b`)

	// timeRe groups: 1 hour, 2 minute, 3 meridiem | 4 hour, 5 minute (24h) | 6 noon/midnight
	timeRe = regexp.MustCompile(`(?i)\b(\d{1,2})(?::([0-5]\d))?\s*([ap])\.?m\b\.?` +
		`|\b([01]?\d|2[0-3]):([0-5]\d)\b` +
		`|\b(noon|midnight)\b`)

	// timeRangeRe groups: 1 hour, 2 minute, 3 meridiem, 4 end hour, 5 end minute, 6 end meridiem
	timeRangeRe = regexp.MustCompile(`(?i)\b(\d{1,2})(?::([0-5]\d))?\s*(?:([ap])\.?m\.?)?` +
		`\s*(?:-|–|—|to)\s*(\d{1,2})(?::([0-5]\d))?\s*([ap])\.?m\b\.?`)

	// monthTailRe matches text ending in a month name, so a number right after
	// it is a day of month rather than an hour.
	monthTailRe = regexp.MustCompile(`(?i)\b` + monthName + `\.?\s*$`)

	courseRe = regexp.MustCompile(`\b[A-Z]{2,4}\s*\d{3,4}[A-Z]?\b`)

	rowStartRe = regexp.MustCompile(`(?i)^\W*(?:` + weekdayName + `\b|` + monthDay + `|` + slashDate + `|week\s*\d)`)

	policyHeaderRe = regexp.MustCompile(`^\s*(?:[A-Z][\w'&/-]*\s+){0,6}Polic(?:y|ies)\b`)

	numberedListRe = regexp.MustCompile(`^\s*(?:\d{1,3}|[a-zA-Z]|[ivxIVX]{1,4})[.)]\s+`)

	scheduleHeaderRe = regexp.MustCompile(`(?i)\b(?:course|class|weekly|tentative)\s+schedule\b` +
		`|\bschedule\s+of\s+(?:classes|topics)\b` +
		`|\bsession\s*\|\s*date\s*\|\s*topic\b` +
		`|\bcourse\s+calendar\b`)
)

// typeRule maps a keyword to an event category
type typeRule struct {
	keyword   string
	pattern   *regexp.Regexp
	eventType EventType
}

// typeRules is the type map in priority order: the first rule that matches wins,
// so exam keywords outrank assignment keywords, which outrank session words.
var typeRules = []typeRule{
	{"quiz", keywordPattern(`quiz(?:zes)?`), EventTypeExam},
	{"midterm", keywordPattern(`midterms?`), EventTypeExam},
	{"final", keywordPattern(`finals?`), EventTypeExam},
	{"exam", keywordPattern(`exams?|examinations?`), EventTypeExam},
	{"project", keywordPattern(`projects?`), EventTypeAssignment},
	{"lab", keywordPattern(`labs?`), EventTypeAssignment},
	{"paper", keywordPattern(`papers?`), EventTypeAssignment},
	{"essay", keywordPattern(`essays?`), EventTypeAssignment},
	{"homework", keywordPattern(`homeworks?|hw`), EventTypeAssignment},
	{"assignment", keywordPattern(`assignments?`), EventTypeAssignment},
	{"pset", keywordPattern(`psets?|problem\s*sets?`), EventTypeAssignment},
	{"class", keywordPattern(`class(?:es)?`), EventTypeEvent},
	{"lecture", keywordPattern(`lectures?`), EventTypeEvent},
	{"review", keywordPattern(`reviews?`), EventTypeEvent},
	{"break", keywordPattern(`break`), EventTypeEvent},
	{"holiday", keywordPattern(`holidays?`), EventTypeEvent},
	{"office hours", keywordPattern(`office\s+hours`), EventTypeEvent},
}

func keywordPattern(words string) *regexp.Regexp {
	return regexp.MustCompile(`(?i)\b(?:` + words + `)` + itemNumber + `\b`)
}

// hasDateLike reports whether s contains any date-like span
func hasDateLike(s string) bool {
	return dateLikeRe.MatchString(s)
}

// hasKeyword reports whether s contains an academic-deadline or session keyword
func hasKeyword(s string) bool {
	return keywordRe.MatchString(s)
}

// hasDueCue reports whether s implies an end-of-day deadline
func hasDueCue(s string) bool {
	return dueCueRe.MatchString(s)
}

// hasTimeOfDay reports whether s names an explicit clock time
func hasTimeOfDay(s string) bool {
	return timeRe.MatchString(s) || len(timeRanges(s)) > 0
}

// timeRanges returns the submatch indices of the clock ranges in s. A match
// whose start hour is the day of a date, as in "Dec 1 - 3 pm", is skipped.
func timeRanges(s string) [][]int {
	var out [][]int
	for _, m := range timeRangeRe.FindAllStringSubmatchIndex(s, -1) {
		if monthTailRe.MatchString(s[:m[0]]) {
			continue
		}
		out = append(out, m)
	}
	return out
}

// stripTimeRanges removes every clock range reported by timeRanges
func stripTimeRanges(s string) string {
	ranges := timeRanges(s)
	for i := len(ranges) - 1; i >= 0; i-- {
		s = s[:ranges[i][0]] + s[ranges[i][1]:]
	}
	return s
}

// submatches expands submatch indices into strings, "" for unmatched groups
func submatches(s string, idx []int) []string {
	out := make([]string, len(idx)/2)
	for i := range out {
		if idx[2*i] >= 0 {
			out[i] = s[idx[2*i]:idx[2*i+1]]
		}
	}
	return out
}

// courseCode returns the first course-code span in s
func courseCode(s string) (string, bool) {
	code := courseRe.FindString(s)
	return code, code != ""
}
