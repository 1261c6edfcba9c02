package syllabus

import (
	"errors"
	"time"
)

// EventType is the coarse category of an extracted event
type EventType string

const (
	EventTypeExam       EventType = "exam"
	EventTypeAssignment EventType = "assignment"
	EventTypeEvent      EventType = "event"
)

const (
	// DefaultTimezone is used when the caller does not name one
	DefaultTimezone = "America/Chicago"

	// PlaceholderSummary replaces titles that are empty after cleanup
	PlaceholderSummary = "Course Event"

	// MaxSummaryLength is the rune limit for EventDraft.Summary
	MaxSummaryLength = 140
)

// Caller-contract violations. Messy document content never produces these.
var (
	ErrInvalidTermStart = errors.New("invalid term start date")
	ErrInvalidTimezone  = errors.New("invalid timezone")
)

// EventDraft is an unconfirmed, pipeline-produced candidate event.
//
// Description, Location, ColorID, Recurrence and End are reserved for downstream
// enrichment and are always nil when produced by Parse.
type EventDraft struct {
	Summary     string     `json:"summary" yaml:"summary"`
	Description *string    `json:"description" yaml:"description"`
	Location    *string    `json:"location" yaml:"location"`
	ColorID     *string    `json:"colorId" yaml:"colorId"`
	Recurrence  *string    `json:"recurrence" yaml:"recurrence"`
	EventType   EventType  `json:"eventType" yaml:"eventType"`
	Start       time.Time  `json:"start" yaml:"start"`
	End         *time.Time `json:"end" yaml:"end"`
	AllDay      bool       `json:"allDay" yaml:"allDay"`
	CourseName  *string    `json:"courseName" yaml:"courseName"`
	SourcePage  int        `json:"sourcePage" yaml:"sourcePage"`
	SourceLine  int        `json:"sourceLine" yaml:"sourceLine"`
	RawText     string     `json:"rawText" yaml:"rawText"`
}

// Options controls date anchoring for a single Parse call
type Options struct {
	// TermStart is an optional ISO-8601 calendar date ("2025-08-26") used as the
	// relative-date anchor. Empty means "now".
	TermStart string

	// Timezone is an IANA zone name. Empty means DefaultTimezone.
	Timezone string

	// Now overrides the clock used when TermStart is empty.
	Now func() time.Time
}

// Layout is the reconstruction strategy chosen for a page
type Layout string

const (
	LayoutTabular      Layout = "tabular"
	LayoutUnstructured Layout = "unstructured"
)

// Line is a piece of page text together with the zero-based index of the first
// raw line it came from.
type Line struct {
	Text  string
	Index int
}
