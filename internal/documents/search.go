package documents

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/a3tai/mcp-syllabus-reader/internal/documents/security"
	"github.com/a3tai/mcp-syllabus-reader/internal/extract"
)

// Search discovers syllabus documents beneath the sandbox root
type Search struct {
	maxFileSize int64
	sandbox     *security.Sandbox
}

// NewSearch creates a search handler with the specified constraints
func NewSearch(maxFileSize int64, sandbox *security.Sandbox) *Search {
	return &Search{
		maxFileSize: maxFileSize,
		sandbox:     sandbox,
	}
}

// SearchDirectory lists supported documents in a directory tree, optionally
// filtered by a fuzzy filename query.
func (s *Search) SearchDirectory(req SearchDirectoryRequest) (*SearchDirectoryResult, error) {
	files, dir, err := s.walk(req.Directory, strings.ToLower(strings.TrimSpace(req.Query)), 0)
	if err != nil {
		return nil, err
	}

	return &SearchDirectoryResult{
		Files:       files,
		TotalCount:  len(files),
		Directory:   dir,
		SearchQuery: req.Query,
	}, nil
}

// FindDocuments lists up to limit supported documents without filtering. A
// limit of zero means no limit.
func (s *Search) FindDocuments(directory string, limit int) ([]FileInfo, error) {
	files, _, err := s.walk(directory, "", limit)
	return files, err
}

func (s *Search) walk(directory, query string, limit int) ([]FileInfo, string, error) {
	dir, err := s.sandbox.ResolveDirectory(directory)
	if err != nil {
		return nil, "", fmt.Errorf("security validation failed: %w", err)
	}
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		return nil, "", fmt.Errorf("directory does not exist: %s", dir)
	}

	files := []FileInfo{}
	errLimit := fmt.Errorf("limit reached")

	err = filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			// Continue walking even if we encounter an error with a specific file
			return nil //nolint:nilerr // Intentionally continue on file errors
		}

		if d.IsDir() {
			if path != dir && strings.HasPrefix(d.Name(), ".") {
				return filepath.SkipDir
			}
			return nil
		}
		if d.Type()&fs.ModeSymlink != 0 || !s.sandbox.Contains(path) {
			return nil
		}
		if !IsSupportedDocument(d.Name()) {
			return nil
		}

		info, err := d.Info()
		if err != nil || info.Size() == 0 || info.Size() > s.maxFileSize {
			return nil //nolint:nilerr // Intentionally skip unreadable or oversized files
		}

		if query != "" && !matchesQuery(d.Name(), query) {
			return nil
		}

		files = append(files, FileInfo{
			Path:         path,
			Name:         d.Name(),
			Format:       string(extract.DetectFormat(d.Name())),
			Size:         info.Size(),
			ModifiedTime: info.ModTime().Format("2006-01-02 15:04:05"),
		})
		if limit > 0 && len(files) >= limit {
			return errLimit
		}
		return nil
	})
	if err != nil && err != errLimit {
		return nil, "", fmt.Errorf("error walking directory: %w", err)
	}

	sort.Slice(files, func(i, j int) bool { return files[i].Path < files[j].Path })
	return files, dir, nil
}

// IsSupportedDocument reports whether the filename has an extension the
// extractor handles.
func IsSupportedDocument(name string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	for _, supported := range extract.SupportedExtensions() {
		if ext == supported {
			return true
		}
	}
	return false
}

// matchesQuery performs fuzzy matching on the filename: a substring of the
// name, or every query word contained in some word of the name.
func matchesQuery(filename, query string) bool {
	if query == "" {
		return true
	}

	name := strings.ToLower(filename)
	if strings.Contains(name, query) {
		return true
	}

	stem := strings.TrimSuffix(name, filepath.Ext(name))
	words := splitIntoWords(stem)
	for _, queryWord := range splitIntoWords(query) {
		found := false
		for _, word := range words {
			if strings.Contains(word, queryWord) {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

func splitIntoWords(s string) []string {
	return strings.FieldsFunc(s, func(r rune) bool {
		switch r {
		case ' ', '-', '_', '.', ',':
			return true
		}
		return false
	})
}
