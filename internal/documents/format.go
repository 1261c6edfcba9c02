package documents

import (
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/a3tai/mcp-syllabus-reader/internal/ics"
	"github.com/a3tai/mcp-syllabus-reader/internal/syllabus"
)

// OutputFormat selects how extracted events are rendered
type OutputFormat string

const (
	OutputText OutputFormat = "text"
	OutputJSON OutputFormat = "json"
	OutputYAML OutputFormat = "yaml"
	OutputICS  OutputFormat = "ics"
)

// OutputFormats lists every supported output format
func OutputFormats() []string {
	return []string{string(OutputText), string(OutputJSON), string(OutputYAML), string(OutputICS)}
}

// ParseOutputFormat validates a format name. Empty means text.
func ParseOutputFormat(s string) (OutputFormat, error) {
	switch f := OutputFormat(strings.ToLower(strings.TrimSpace(s))); f {
	case "":
		return OutputText, nil
	case OutputText, OutputJSON, OutputYAML, OutputICS:
		return f, nil
	case "yml":
		return OutputYAML, nil
	case "ical", "icalendar":
		return OutputICS, nil
	default:
		return "", fmt.Errorf("unsupported output format %q (want one of %s)", s, strings.Join(OutputFormats(), ", "))
	}
}

// Render serializes an extraction result. The now clock stamps iCalendar output.
func Render(result *ExtractEventsResult, format OutputFormat, now func() time.Time) (string, error) {
	switch format {
	case OutputJSON:
		data, err := json.MarshalIndent(result, "", "  ")
		if err != nil {
			return "", fmt.Errorf("failed to marshal JSON: %w", err)
		}
		return string(data), nil
	case OutputYAML:
		data, err := yaml.Marshal(result)
		if err != nil {
			return "", fmt.Errorf("failed to marshal YAML: %w", err)
		}
		return string(data), nil
	case OutputICS:
		return ics.Export(result.Events, ics.ExportOptions{
			CalendarName: calendarName(result),
			Timezone:     result.Timezone,
			Now:          now,
		}), nil
	case OutputText, "":
		return formatText(result), nil
	default:
		return "", fmt.Errorf("unsupported output format %q", format)
	}
}

func calendarName(result *ExtractEventsResult) string {
	for _, e := range result.Events {
		if e.CourseName != nil {
			return *e.CourseName
		}
	}
	return strings.TrimSuffix(filepath.Base(result.Path), filepath.Ext(result.Path))
}

func formatText(result *ExtractEventsResult) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Syllabus: %s\n", result.Path)
	fmt.Fprintf(&b, "Format: %s\n", result.Format)
	fmt.Fprintf(&b, "Timezone: %s\n", result.Timezone)
	if result.TermStart != "" {
		fmt.Fprintf(&b, "Term start: %s\n", result.TermStart)
	}
	fmt.Fprintf(&b, "Events found: %d\n", result.EventCount)

	if result.EventCount == 0 {
		b.WriteString("\nNo dated course events were recognized in this document.\n")
		return b.String()
	}
	if result.FirstEvent != nil && result.LastEvent != nil {
		fmt.Fprintf(&b, "Span: %s to %s\n", result.FirstEvent.Format("2006-01-02"), result.LastEvent.Format("2006-01-02"))
	}

	b.WriteString("\nEvents:\n")
	for i, e := range result.Events {
		fmt.Fprintf(&b, "%d. [%s] %s\n", i+1, e.EventType, e.Summary)
		fmt.Fprintf(&b, "   When: %s\n", formatStart(e))
		if e.CourseName != nil {
			fmt.Fprintf(&b, "   Course: %s\n", *e.CourseName)
		}
		fmt.Fprintf(&b, "   Source: page %d, line %d\n", e.SourcePage+1, e.SourceLine+1)
		fmt.Fprintf(&b, "   Text: %s\n", e.RawText)
	}
	return b.String()
}

func formatStart(e syllabus.EventDraft) string {
	if e.AllDay {
		return e.Start.Format("Mon Jan 2, 2006") + " (all day)"
	}
	return e.Start.Format("Mon Jan 2, 2006 3:04 PM MST")
}
