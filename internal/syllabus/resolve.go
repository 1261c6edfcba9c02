package syllabus

import (
	"fmt"
	"strconv"
	"strings"
	"time"
	_ "time/tzdata"

	dps "github.com/markusmobius/go-dateparser"
)

const (
	dueHour   = 23
	dueMinute = 59
)

// Resolver turns the natural-language date content of a line into an absolute,
// timezone-aware instant anchored to a reference date.
type Resolver struct {
	loc *time.Location
	cfg *dps.Configuration
}

// NewResolver creates a resolver that prefers dates on or after base and
// attaches loc to every result.
func NewResolver(base time.Time, loc *time.Location) *Resolver {
	return &Resolver{
		loc: loc,
		cfg: &dps.Configuration{
			CurrentTime:         base.In(loc),
			DefaultTimezone:     loc,
			Languages:           []string{"en"},
			DateOrder:           dps.MDY,
			PreferredDayOfMonth: dps.First,
			PreferredDateSource: dps.Future,
		},
	}
}

// Resolution is a resolved start instant
type Resolution struct {
	Start  time.Time
	AllDay bool
}

// Resolve parses the date in text. The whole line is tried first; when the
// surrounding prose confuses the parser, the explicit date tokens are pulled out
// and parsed on their own. ok is false when neither attempt finds a date.
func (r *Resolver) Resolve(text string) (Resolution, bool) {
	day, ok := r.parse(text)
	if !ok {
		tokens := DateTokens(text)
		if len(tokens) == 0 {
			return Resolution{}, false
		}
		if day, ok = r.parse(strings.Join(tokens, " ")); !ok {
			return Resolution{}, false
		}
	}

	hour, minute, explicit := ClockTime(text)
	due := hasDueCue(text)
	if !explicit && due {
		hour, minute = dueHour, dueMinute
	}

	start := time.Date(day.Year(), day.Month(), day.Day(), hour, minute, 0, 0, r.loc)
	return Resolution{Start: start, AllDay: !explicit && !due}, true
}

// parse runs the natural-language parser, treating panics on hostile input as
// a failed attempt.
func (r *Resolver) parse(text string) (t time.Time, ok bool) {
	defer func() {
		if recover() != nil {
			t, ok = time.Time{}, false
		}
	}()

	text = strings.TrimSpace(text)
	if text == "" {
		return time.Time{}, false
	}
	dt, err := dps.Parse(r.cfg, text)
	if err != nil || dt.Time.IsZero() {
		return time.Time{}, false
	}
	return dt.Time, true
}

// DateTokens extracts the explicit calendar dates of a line for the fallback
// parse. A range contributes its first date only. When the line has no calendar
// date, its first weekday name is used instead.
func DateTokens(s string) []string {
	var tokens []string
	for _, span := range dateAnchorRe.FindAllString(s, -1) {
		if tok := explicitDateRe.FindString(span); tok != "" {
			tokens = append(tokens, tok)
		}
	}
	if len(tokens) == 0 {
		if wd := weekdayRe.FindString(s); wd != "" {
			tokens = append(tokens, wd)
		}
	}
	return tokens
}

// ClockTime finds the explicit time of day in s. For a time range the start is
// returned; a start without am/pm borrows it from the end of the range.
func ClockTime(s string) (hour, minute int, ok bool) {
	if !hasTimeOfDay(s) {
		return 0, 0, false
	}

	if ranges := timeRanges(s); len(ranges) > 0 {
		m := submatches(s, ranges[0])
		startH, endH := atoi(m[1]), atoi(m[4])
		meridiem := strings.ToLower(m[3])
		if meridiem == "" {
			meridiem = strings.ToLower(m[6])
			// "11-1pm" starts in the morning
			if meridiem == "p" && startH%12 > endH%12 {
				meridiem = "a"
			}
		}
		if h, valid := to24Hour(startH, meridiem); valid {
			return h, atoi(m[2]), true
		}
	}

	m := timeRe.FindStringSubmatch(s)
	if m == nil {
		return 0, 0, false
	}
	switch {
	case m[1] != "":
		h, valid := to24Hour(atoi(m[1]), strings.ToLower(m[3]))
		if !valid {
			return 0, 0, false
		}
		return h, atoi(m[2]), true
	case m[4] != "":
		return atoi(m[4]), atoi(m[5]), true
	case strings.EqualFold(m[6], "noon"):
		return 12, 0, true
	default:
		// "midnight" on a syllabus means the end of that day
		return dueHour, dueMinute, true
	}
}

func to24Hour(h int, meridiem string) (int, bool) {
	if h < 1 || h > 12 {
		return 0, false
	}
	switch meridiem {
	case "a":
		return h % 12, true
	case "p":
		return h%12 + 12, true
	default:
		return h, true
	}
}

func atoi(s string) int {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0
	}
	return n
}

// anchor resolves the timezone and reference date of a Parse call
func (o Options) anchor() (*time.Location, time.Time, error) {
	name := o.Timezone
	if name == "" {
		name = DefaultTimezone
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return nil, time.Time{}, fmt.Errorf("%w: %q: %v", ErrInvalidTimezone, name, err)
	}

	if o.TermStart == "" {
		now := time.Now
		if o.Now != nil {
			now = o.Now
		}
		return loc, now().In(loc), nil
	}

	base, err := ParseTermStart(o.TermStart, loc)
	if err != nil {
		return nil, time.Time{}, err
	}
	return loc, base, nil
}

// ParseTermStart parses an ISO-8601 calendar date (or full RFC 3339 timestamp)
// in loc.
func ParseTermStart(s string, loc *time.Location) (time.Time, error) {
	s = strings.TrimSpace(s)
	if t, err := time.ParseInLocation("2006-01-02", s, loc); err == nil {
		return t, nil
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t.In(loc), nil
	}
	return time.Time{}, fmt.Errorf("%w: %q (want YYYY-MM-DD)", ErrInvalidTermStart, s)
}
