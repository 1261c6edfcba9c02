package descriptions

import "sort"

// Tool names exposed over MCP
const (
	ToolExtractEvents   = "syllabus_extract_events"
	ToolSearchDirectory = "syllabus_search_directory"
	ToolServerInfo      = "syllabus_server_info"
)

const (
	ExtractEventsDescription = `Extract dated course events (exams, assignments, class sessions) from a syllabus document.

**When to use:** You have a course syllabus as PDF, DOCX, ODT or plain text and need its schedule as calendar-ready events.

**What you get:** One draft per recognized event with a title, a category (exam, assignment or event), a timezone-aware start, the course code when one is printed, and the page and line it came from. Deadlines without a time ("HW3 due Oct 10") are placed at 23:59 local time.

**Examples:**
• Build a semester calendar: "Extract events from cs2110-fall.pdf with term_start 2025-08-25 as ics"
• Review deadlines: "List the assignments in stats101.docx"
• Feed another system: "Extract events from bio200.txt as json"

**Parameters:**
• term_start anchors dates without a year ("Oct 3") to the semester; without it the current date is used.
• timezone is an IANA zone name such as America/New_York.
• format is text, json, yaml or ics.

**Best practices:** Always pass term_start for syllabi written before the term; check rawText of each event when a title looks wrong. Scanned PDFs without a text layer yield no events.`

	SearchDirectoryDescription = `Find syllabus documents (.pdf, .docx, .odt, .txt, .md) in the configured directory.

**When to use:** You do not know the exact file name, or want to see which syllabi are available before extracting events.

**Examples:**
• "Search for 'cs2110' in the syllabus directory"
• "List every syllabus under fall-2025/"

**Best practices:** Queries match any part of the file name; several words must each appear in the name. Use the returned path with syllabus_extract_events.`

	ServerInfoDescription = `Get server configuration, available tools, default timezone and term start, and the syllabus documents in the default directory.

**When to use:** At the start of a session, or when files are not found where you expect them.

**Best practices:** Run once per session; the directory listing is limited to the first 100 documents.`
)

// ToolDescriptions maps tool names to their descriptions
var ToolDescriptions = map[string]string{
	ToolExtractEvents:   ExtractEventsDescription,
	ToolSearchDirectory: SearchDirectoryDescription,
	ToolServerInfo:      ServerInfoDescription,
}

// GetToolDescription returns the description for a tool
func GetToolDescription(toolName string) string {
	if desc, exists := ToolDescriptions[toolName]; exists {
		return desc
	}
	return "Tool description not available"
}

// GetAllToolNames returns every tool name in sorted order
func GetAllToolNames() []string {
	names := make([]string, 0, len(ToolDescriptions))
	for name := range ToolDescriptions {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
