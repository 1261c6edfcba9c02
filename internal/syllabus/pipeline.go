package syllabus

import (
	"log"
	"sort"
	"time"

	"github.com/a3tai/mcp-syllabus-reader/internal/extract"
)

// Parse extracts event drafts from a document. The format is chosen from the
// filename extension. Unreadable content degrades to an empty result; only
// invalid options produce an error.
func Parse(data []byte, filename string, opts Options) ([]EventDraft, error) {
	loc, base, err := opts.anchor()
	if err != nil {
		return nil, err
	}

	pages, err := extract.Pages(data, filename)
	if err != nil {
		log.Printf("Text extraction failed for %s: %v", filename, err)
		pages = []string{""}
	}

	return parsePages(pages, NewResolver(base, loc)), nil
}

// ParsePages runs the pipeline over already extracted page texts
func ParsePages(pages []string, opts Options) ([]EventDraft, error) {
	loc, base, err := opts.anchor()
	if err != nil {
		return nil, err
	}
	return parsePages(pages, NewResolver(base, loc)), nil
}

func parsePages(pages []string, resolver *Resolver) []EventDraft {
	course := documentCourse(pages)

	drafts := make([]EventDraft, 0)
	for pageIdx, page := range pages {
		raw := splitRawLines(page)
		lines := NormalizeLines(raw)
		blocks := ReconstructBlocks(lines, ClassifyLayout(raw))

		for _, grouped := range GroupByProximity(blocks, DefaultProximityWindow) {
			for _, frag := range SplitMultiDate(grouped) {
				if !IsEventLine(frag.Text) {
					continue
				}
				if draft, ok := newDraft(frag, pageIdx, resolver, course); ok {
					drafts = append(drafts, draft)
				}
			}
		}
	}

	SortDrafts(drafts)
	return drafts
}

// newDraft resolves one qualifying fragment. Fragments whose date cannot be
// resolved are skipped.
func newDraft(frag Line, page int, resolver *Resolver, docCourse string) (EventDraft, bool) {
	res, ok := resolver.Resolve(frag.Text)
	if !ok {
		return EventDraft{}, false
	}

	draft := EventDraft{
		Summary:    Title(frag.Text),
		EventType:  ClassifyEventType(frag.Text),
		Start:      res.Start,
		AllDay:     res.AllDay,
		SourcePage: page,
		SourceLine: frag.Index,
		RawText:    frag.Text,
	}
	if code, ok := courseCode(frag.Text); ok {
		draft.CourseName = &code
	} else if docCourse != "" {
		code := docCourse
		draft.CourseName = &code
	}
	return draft, true
}

// documentCourse is the first course code appearing anywhere in the document
func documentCourse(pages []string) string {
	for _, page := range pages {
		if code, ok := courseCode(page); ok {
			return code
		}
	}
	return ""
}

// SortDrafts orders drafts by start instant, then summary. Equal keys keep
// their document order.
func SortDrafts(drafts []EventDraft) {
	sort.SliceStable(drafts, func(i, j int) bool {
		a, b := drafts[i], drafts[j]
		if !a.Start.Equal(b.Start) {
			return a.Start.Before(b.Start)
		}
		return a.Summary < b.Summary
	})
}

// Window returns the earliest and latest start among drafts
func Window(drafts []EventDraft) (first, last time.Time, ok bool) {
	if len(drafts) == 0 {
		return time.Time{}, time.Time{}, false
	}
	first, last = drafts[0].Start, drafts[0].Start
	for _, d := range drafts[1:] {
		if d.Start.Before(first) {
			first = d.Start
		}
		if d.Start.After(last) {
			last = d.Start
		}
	}
	return first, last, true
}
