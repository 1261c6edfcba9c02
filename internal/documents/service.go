package documents

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/a3tai/mcp-syllabus-reader/internal/documents/security"
	"github.com/a3tai/mcp-syllabus-reader/internal/extract"
	"github.com/a3tai/mcp-syllabus-reader/internal/syllabus"
)

// Service handles syllabus documents inside a sandboxed directory
type Service struct {
	maxFileSize      int64
	defaultTimezone  string
	defaultTermStart string
	sandbox          *security.Sandbox
	search           *Search
	info             *ServerInfo
	now              func() time.Time
}

// NewService creates a document service rooted at configuredDirectory. The
// timezone and term start apply to requests that leave them empty.
func NewService(maxFileSize int64, configuredDirectory, defaultTimezone, defaultTermStart string) (*Service, error) {
	sandbox, err := security.NewSandbox(configuredDirectory)
	if err != nil {
		return nil, fmt.Errorf("failed to create sandbox: %w", err)
	}
	if defaultTimezone == "" {
		defaultTimezone = syllabus.DefaultTimezone
	}

	s := &Service{
		maxFileSize:      maxFileSize,
		defaultTimezone:  defaultTimezone,
		defaultTermStart: defaultTermStart,
		sandbox:          sandbox,
		search:           NewSearch(maxFileSize, sandbox),
		now:              time.Now,
	}
	s.info = NewServerInfo(s)
	return s, nil
}

// ExtractEvents reads one syllabus and returns its event drafts rendered in
// the requested output format.
func (s *Service) ExtractEvents(req ExtractEventsRequest) (*ExtractEventsResult, error) {
	output, err := ParseOutputFormat(req.Format)
	if err != nil {
		return nil, err
	}

	path, err := s.sandbox.Resolve(req.Path)
	if err != nil {
		return nil, fmt.Errorf("security validation failed: %w", err)
	}

	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("file does not exist: %s", path)
		}
		return nil, fmt.Errorf("cannot access file: %w", err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("path is a directory, not a file: %s", path)
	}
	if info.Size() == 0 {
		return nil, fmt.Errorf("file is empty: %s", path)
	}
	if info.Size() > s.maxFileSize {
		return nil, fmt.Errorf("file too large: %d bytes (max: %d bytes)", info.Size(), s.maxFileSize)
	}
	if !IsSupportedDocument(path) {
		return nil, fmt.Errorf("unsupported document type %q (supported: %v)", filepath.Ext(path), extract.SupportedExtensions())
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}

	opts := syllabus.Options{
		TermStart: req.TermStart,
		Timezone:  req.Timezone,
		Now:       s.now,
	}
	if opts.TermStart == "" {
		opts.TermStart = s.defaultTermStart
	}
	if opts.Timezone == "" {
		opts.Timezone = s.defaultTimezone
	}

	events, err := syllabus.Parse(data, filepath.Base(path), opts)
	if err != nil {
		return nil, err
	}

	result := &ExtractEventsResult{
		Path:       path,
		Format:     string(extract.DetectFormat(path)),
		Size:       info.Size(),
		Timezone:   opts.Timezone,
		TermStart:  opts.TermStart,
		EventCount: len(events),
		Events:     events,
		Output:     output,
	}
	if first, last, ok := syllabus.Window(events); ok {
		result.FirstEvent = &first
		result.LastEvent = &last
	}

	result.Rendered, err = Render(result, output, s.now)
	if err != nil {
		return nil, err
	}
	return result, nil
}

// SearchDirectory searches for syllabus documents inside the sandbox
func (s *Service) SearchDirectory(req SearchDirectoryRequest) (*SearchDirectoryResult, error) {
	return s.search.SearchDirectory(req)
}

// ServerInfo describes the server, its tools and the default directory
func (s *Service) ServerInfo(serverName, version string) (*ServerInfoResult, error) {
	return s.info.Get(serverName, version)
}

// Directory returns the sandbox root
func (s *Service) Directory() string {
	return s.sandbox.Root()
}

// GetMaxFileSize returns the maximum file size limit
func (s *Service) GetMaxFileSize() int64 {
	return s.maxFileSize
}
