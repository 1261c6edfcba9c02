package documents

import (
	"time"

	"github.com/a3tai/mcp-syllabus-reader/internal/syllabus"
)

// FileInfo represents basic information about a syllabus document
type FileInfo struct {
	Path         string `json:"path" yaml:"path"`
	Name         string `json:"name" yaml:"name"`
	Format       string `json:"format" yaml:"format"`
	Size         int64  `json:"size" yaml:"size"`
	ModifiedTime string `json:"modified_time" yaml:"modified_time"`
}

// Request Types

// ExtractEventsRequest asks for the events of one document. Empty TermStart,
// Timezone and Format fall back to the service defaults.
type ExtractEventsRequest struct {
	Path      string `json:"path"`
	TermStart string `json:"term_start,omitempty"`
	Timezone  string `json:"timezone,omitempty"`
	Format    string `json:"format,omitempty"`
}

// SearchDirectoryRequest represents a request to search for syllabus documents
type SearchDirectoryRequest struct {
	Directory string `json:"directory"`
	Query     string `json:"query"`
}

// ServerInfoRequest represents a request for server information
type ServerInfoRequest struct {
	// No parameters needed for server info
}

// Response Types

// ExtractEventsResult is the outcome of an extraction. Rendered holds the
// events in the requested output format.
type ExtractEventsResult struct {
	Path       string                `json:"path" yaml:"path"`
	Format     string                `json:"document_format" yaml:"document_format"`
	Size       int64                 `json:"size" yaml:"size"`
	Timezone   string                `json:"timezone" yaml:"timezone"`
	TermStart  string                `json:"term_start,omitempty" yaml:"term_start,omitempty"`
	EventCount int                   `json:"event_count" yaml:"event_count"`
	FirstEvent *time.Time            `json:"first_event,omitempty" yaml:"first_event,omitempty"`
	LastEvent  *time.Time            `json:"last_event,omitempty" yaml:"last_event,omitempty"`
	Events     []syllabus.EventDraft `json:"events" yaml:"events"`
	Output     OutputFormat          `json:"-" yaml:"-"`
	Rendered   string                `json:"-" yaml:"-"`
}

// SearchDirectoryResult represents the result of a directory search
type SearchDirectoryResult struct {
	Files       []FileInfo `json:"files"`
	TotalCount  int        `json:"total_count"`
	Directory   string     `json:"directory"`
	SearchQuery string     `json:"search_query,omitempty"`
}

// ServerInfoResult represents server information and usage guidance
type ServerInfoResult struct {
	ServerName        string     `json:"server_name"`
	Version           string     `json:"version"`
	DefaultDirectory  string     `json:"default_directory"`
	MaxFileSize       int64      `json:"max_file_size"`
	DefaultTimezone   string     `json:"default_timezone"`
	DefaultTermStart  string     `json:"default_term_start,omitempty"`
	AvailableTools    []ToolInfo `json:"available_tools"`
	DirectoryContents []FileInfo `json:"directory_contents"`
	SupportedFormats  []string   `json:"supported_formats"`
	OutputFormats     []string   `json:"output_formats"`
	UsageGuidance     string     `json:"usage_guidance"`
}

// ToolInfo represents information about an available tool
type ToolInfo struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Usage       string `json:"usage"`
	Parameters  string `json:"parameters"`
}
