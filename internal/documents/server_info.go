package documents

import (
	"fmt"
	"sync"
	"time"

	"github.com/a3tai/mcp-syllabus-reader/internal/descriptions"
	"github.com/a3tai/mcp-syllabus-reader/internal/extract"
)

const (
	directoryCacheTTL  = 5 * time.Minute
	directoryListLimit = 100
)

// DirectoryCache keeps recent directory listings for a fixed TTL
type DirectoryCache struct {
	entries map[string]cacheEntry
	ttl     time.Duration
	now     func() time.Time
	mu      sync.RWMutex
}

type cacheEntry struct {
	files      []FileInfo
	lastUpdate time.Time
}

// NewDirectoryCache creates a new directory cache with specified TTL
func NewDirectoryCache(ttl time.Duration, now func() time.Time) *DirectoryCache {
	if now == nil {
		now = time.Now
	}
	return &DirectoryCache{
		entries: make(map[string]cacheEntry),
		ttl:     ttl,
		now:     now,
	}
}

// Get returns the cached listing for dir if it has not expired
func (c *DirectoryCache) Get(dir string) ([]FileInfo, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	entry, exists := c.entries[dir]
	if !exists || c.now().Sub(entry.lastUpdate) > c.ttl {
		return nil, false
	}
	return entry.files, true
}

// Set stores a listing for dir
func (c *DirectoryCache) Set(dir string, files []FileInfo) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries[dir] = cacheEntry{files: files, lastUpdate: c.now()}
}

// Clear removes expired entries from cache
func (c *DirectoryCache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	for dir, entry := range c.entries {
		if now.Sub(entry.lastUpdate) > c.ttl {
			delete(c.entries, dir)
		}
	}
}

// ServerInfo builds server_info responses, caching the directory listing
type ServerInfo struct {
	service *Service
	cache   *DirectoryCache
}

// NewServerInfo creates a server info handler for service
func NewServerInfo(service *Service) *ServerInfo {
	return &ServerInfo{
		service: service,
		cache:   NewDirectoryCache(directoryCacheTTL, func() time.Time { return service.now() }),
	}
}

// Get assembles the server description
func (p *ServerInfo) Get(serverName, version string) (*ServerInfoResult, error) {
	dir := p.service.sandbox.Root()

	files, ok := p.cache.Get(dir)
	if !ok {
		var err error
		files, err = p.service.search.FindDocuments("", directoryListLimit)
		if err != nil {
			// A missing or unreadable directory still yields server info
			files = []FileInfo{}
		} else {
			p.cache.Set(dir, files)
		}
	}

	return &ServerInfoResult{
		ServerName:        serverName,
		Version:           version,
		DefaultDirectory:  dir,
		MaxFileSize:       p.service.maxFileSize,
		DefaultTimezone:   p.service.defaultTimezone,
		DefaultTermStart:  p.service.defaultTermStart,
		AvailableTools:    availableTools(),
		DirectoryContents: files,
		SupportedFormats:  extract.SupportedExtensions(),
		OutputFormats:     OutputFormats(),
		UsageGuidance:     p.usageGuidance(),
	}, nil
}

func availableTools() []ToolInfo {
	return []ToolInfo{
		{
			Name:        descriptions.ToolExtractEvents,
			Description: descriptions.GetToolDescription(descriptions.ToolExtractEvents),
			Usage:       "Use this tool to turn a syllabus schedule into dated exam, assignment and class events.",
			Parameters: "path (required): syllabus file (absolute or relative to the syllabus directory), " +
				"term_start (optional): YYYY-MM-DD anchor for dates without a year, " +
				"timezone (optional): IANA zone name, " +
				"format (optional): text, json, yaml or ics",
		},
		{
			Name:        descriptions.ToolSearchDirectory,
			Description: descriptions.GetToolDescription(descriptions.ToolSearchDirectory),
			Usage:       "Use this tool to find syllabus documents by file name.",
			Parameters: "directory (optional): directory to search (defaults to the syllabus directory), " +
				"query (optional): fuzzy file name query",
		},
		{
			Name:        descriptions.ToolServerInfo,
			Description: descriptions.GetToolDescription(descriptions.ToolServerInfo),
			Usage:       "Use this tool to get server configuration and the documents available.",
			Parameters:  "No parameters required",
		},
	}
}

func (p *ServerInfo) usageGuidance() string {
	termStart := p.service.defaultTermStart
	if termStart == "" {
		termStart = "today's date"
	}

	return fmt.Sprintf(`Syllabus MCP Server Usage Guide:

1. FIND DOCUMENTS:
   - Use 'syllabus_search_directory' to locate syllabi by name
   - Files larger than %dMB are skipped

2. EXTRACT EVENTS:
   - Use 'syllabus_extract_events' with the document path
   - Pass term_start (YYYY-MM-DD) so "Oct 3" lands in the right semester
   - Dates without a year are anchored to %s by default
   - Times are interpreted in %s unless a timezone is given

3. CHOOSE AN OUTPUT:
   - text: readable event list with source page and line
   - json or yaml: structured drafts for further processing
   - ics: an iCalendar feed ready to import

IMPORTANT NOTES:
- Deadlines without a time are placed at 23:59
- Scanned PDFs without a text layer produce no events
- Results are drafts; review titles against rawText before importing`,
		p.service.maxFileSize/(1024*1024), termStart, p.service.defaultTimezone)
}
