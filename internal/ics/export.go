// Package ics renders event drafts as an iCalendar feed.
package ics

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	ical "github.com/arran4/golang-ical"
	"github.com/google/uuid"

	"github.com/a3tai/mcp-syllabus-reader/internal/syllabus"
)

const (
	DefaultProductID = "-//a3tai//mcp-syllabus-reader//EN"

	uidDomain = "mcp-syllabus-reader"

	// PropertyEventType carries EventDraft.EventType on each VEVENT
	PropertyEventType ical.ComponentProperty = "X-SYLLABUS-EVENT-TYPE"

	// PropertySource carries "page:line" of the text an event came from
	PropertySource ical.ComponentProperty = "X-SYLLABUS-SOURCE"
)

// ExportOptions controls calendar-level metadata
type ExportOptions struct {
	CalendarName string
	ProductID    string
	Timezone     string

	// Now stamps DTSTAMP; nil means time.Now
	Now func() time.Time
}

// Export renders drafts as a PUBLISH calendar. UIDs are derived from each
// draft's content and source position, so exporting the same document twice
// yields the same UIDs and calendar clients update events instead of
// duplicating them.
func Export(drafts []syllabus.EventDraft, opts ExportOptions) string {
	cal := ical.NewCalendar()
	cal.SetMethod(ical.MethodPublish)

	productID := opts.ProductID
	if productID == "" {
		productID = DefaultProductID
	}
	cal.SetProductId(productID)
	if opts.CalendarName != "" {
		cal.SetXWRCalName(opts.CalendarName)
	}
	if opts.Timezone != "" {
		cal.SetXWRTimezone(opts.Timezone)
	}

	now := time.Now
	if opts.Now != nil {
		now = opts.Now
	}
	stamp := now().UTC()

	for _, d := range drafts {
		event := cal.AddEvent(EventUID(d))
		event.SetDtStampTime(stamp)
		event.SetSummary(d.Summary)

		if d.AllDay {
			event.SetAllDayStartAt(d.Start)
		} else {
			event.SetStartAt(d.Start)
		}
		if d.End != nil {
			event.SetEndAt(*d.End)
		}

		description := d.RawText
		if d.Description != nil {
			description = *d.Description
		}
		event.SetDescription(description)
		if d.Location != nil {
			event.SetLocation(*d.Location)
		}
		if d.CourseName != nil {
			event.SetProperty(ical.ComponentPropertyCategories, *d.CourseName)
		}

		event.SetProperty(PropertyEventType, string(d.EventType))
		event.SetProperty(PropertySource, strconv.Itoa(d.SourcePage)+":"+strconv.Itoa(d.SourceLine))
	}

	return cal.Serialize()
}

// EventUID is the stable identifier of a draft within a feed
func EventUID(d syllabus.EventDraft) string {
	key := strings.Join([]string{
		d.Summary,
		d.Start.UTC().Format(time.RFC3339),
		string(d.EventType),
		strconv.Itoa(d.SourcePage),
		strconv.Itoa(d.SourceLine),
	}, "|")
	return fmt.Sprintf("%s@%s", uuid.NewSHA1(uuid.NameSpaceURL, []byte(key)).String(), uidDomain)
}
