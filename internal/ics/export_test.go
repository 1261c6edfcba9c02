package ics

import (
	"strings"
	"testing"
	"time"

	ical "github.com/arran4/golang-ical"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/a3tai/mcp-syllabus-reader/internal/syllabus"
)

func testDrafts(t *testing.T) []syllabus.EventDraft {
	t.Helper()
	loc, err := time.LoadLocation("America/Chicago")
	require.NoError(t, err)

	course := "CS 2110"
	return []syllabus.EventDraft{
		{
			Summary:    "Quiz 1",
			EventType:  syllabus.EventTypeExam,
			Start:      time.Date(2025, 10, 3, 0, 0, 0, 0, loc),
			AllDay:     true,
			CourseName: &course,
			SourceLine: 4,
			RawText:    "Quiz 1 Oct 3",
		},
		{
			Summary:    "Final Exam",
			EventType:  syllabus.EventTypeExam,
			Start:      time.Date(2025, 12, 15, 14, 0, 0, 0, loc),
			SourcePage: 2,
			SourceLine: 10,
			RawText:    "Final Exam Dec 15 2pm",
		},
	}
}

func TestExport_RoundTrip(t *testing.T) {
	drafts := testDrafts(t)
	stamp := time.Date(2025, 8, 1, 12, 0, 0, 0, time.UTC)

	out := Export(drafts, ExportOptions{
		CalendarName: "CS 2110",
		Timezone:     "America/Chicago",
		Now:          func() time.Time { return stamp },
	})

	assert.Contains(t, out, "BEGIN:VCALENDAR")
	assert.Contains(t, out, "METHOD:PUBLISH")
	assert.Contains(t, out, "PRODID:"+DefaultProductID)

	cal, err := ical.ParseCalendar(strings.NewReader(out))
	require.NoError(t, err)

	events := cal.Events()
	require.Len(t, events, 2)

	quiz := events[0]
	assert.Equal(t, "Quiz 1", quiz.GetProperty(ical.ComponentPropertySummary).Value)
	assert.Equal(t, EventUID(drafts[0]), quiz.GetProperty(ical.ComponentPropertyUniqueId).Value)
	assert.Equal(t, "20251003", quiz.GetProperty(ical.ComponentPropertyDtStart).Value)
	assert.Equal(t, "exam", quiz.GetProperty(PropertyEventType).Value)
	assert.Equal(t, "0:4", quiz.GetProperty(PropertySource).Value)
	require.NotNil(t, quiz.GetProperty(ical.ComponentPropertyCategories))

	final := events[1]
	start, err := final.GetStartAt()
	require.NoError(t, err)
	assert.True(t, drafts[1].Start.Equal(start), "got %s", start)
	assert.Equal(t, "2:10", final.GetProperty(PropertySource).Value)
	assert.Nil(t, final.GetProperty(ical.ComponentPropertyCategories))
}

func TestExport_Empty(t *testing.T) {
	out := Export(nil, ExportOptions{})

	cal, err := ical.ParseCalendar(strings.NewReader(out))
	require.NoError(t, err)
	assert.Empty(t, cal.Events())
}

func TestEventUID(t *testing.T) {
	drafts := testDrafts(t)

	assert.Equal(t, EventUID(drafts[0]), EventUID(drafts[0]))
	assert.NotEqual(t, EventUID(drafts[0]), EventUID(drafts[1]))
	assert.True(t, strings.HasSuffix(EventUID(drafts[0]), "@"+uidDomain))

	moved := drafts[0]
	moved.SourceLine++
	assert.NotEqual(t, EventUID(drafts[0]), EventUID(moved))
}
