package documents

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/a3tai/mcp-syllabus-reader/internal/documents/security"
)

func newTestSearch(t *testing.T) (*Search, string) {
	t.Helper()
	tempDir := t.TempDir()

	testFiles := map[string][]byte{
		"cs2110-fall.pdf":          make([]byte, 1024),
		"stats_101_syllabus.docx":  make([]byte, 2048),
		"biology-lab.odt":          make([]byte, 512),
		"notes.md":                 []byte("# Week 1"),
		"grades.csv":               []byte("not a syllabus"),
		"empty.pdf":                {},
		"large.pdf":                make([]byte, 2*1024*1024),
		"spring/cs2110-spring.txt": []byte("HW1 due Jan 20"),
		".archive/old.pdf":         make([]byte, 100),
	}
	for name, content := range testFiles {
		path := filepath.Join(tempDir, name)
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatalf("failed to create dir for %s: %v", name, err)
		}
		if err := os.WriteFile(path, content, 0o644); err != nil {
			t.Fatalf("failed to create test file %s: %v", name, err)
		}
	}

	sandbox, err := security.NewSandbox(tempDir)
	if err != nil {
		t.Fatalf("NewSandbox() error = %v", err)
	}
	return NewSearch(1024*1024, sandbox), sandbox.Root()
}

func TestSearch_SearchDirectory(t *testing.T) {
	search, root := newTestSearch(t)

	tests := []struct {
		name          string
		req           SearchDirectoryRequest
		expectedCount int
		expectedError bool
		expectedFirst string
	}{
		{
			name:          "all documents",
			req:           SearchDirectoryRequest{},
			expectedCount: 5,
			expectedFirst: "biology-lab.odt",
		},
		{
			name:          "substring query",
			req:           SearchDirectoryRequest{Query: "cs2110"},
			expectedCount: 2,
			expectedFirst: "cs2110-fall.pdf",
		},
		{
			name:          "word query",
			req:           SearchDirectoryRequest{Query: "stats syllabus"},
			expectedCount: 1,
			expectedFirst: "stats_101_syllabus.docx",
		},
		{
			name:          "case insensitive",
			req:           SearchDirectoryRequest{Query: "BIOLOGY"},
			expectedCount: 1,
			expectedFirst: "biology-lab.odt",
		},
		{
			name:          "no matches",
			req:           SearchDirectoryRequest{Query: "chemistry"},
			expectedCount: 0,
		},
		{
			name:          "subdirectory",
			req:           SearchDirectoryRequest{Directory: "spring"},
			expectedCount: 1,
			expectedFirst: "cs2110-spring.txt",
		},
		{
			name:          "outside sandbox",
			req:           SearchDirectoryRequest{Directory: filepath.Join(root, "..")},
			expectedError: true,
		},
		{
			name:          "missing directory",
			req:           SearchDirectoryRequest{Directory: "summer"},
			expectedError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := search.SearchDirectory(tt.req)
			if tt.expectedError {
				if err == nil {
					t.Error("expected error but got none")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if result.TotalCount != tt.expectedCount || len(result.Files) != tt.expectedCount {
				t.Fatalf("expected %d files, got %d (%+v)", tt.expectedCount, result.TotalCount, result.Files)
			}
			if result.SearchQuery != tt.req.Query {
				t.Errorf("expected search query %q, got %q", tt.req.Query, result.SearchQuery)
			}
			if tt.expectedFirst != "" && result.Files[0].Name != tt.expectedFirst {
				t.Errorf("expected first file %s, got %s", tt.expectedFirst, result.Files[0].Name)
			}
		})
	}
}

func TestSearch_FileInfo(t *testing.T) {
	search, root := newTestSearch(t)

	result, err := search.SearchDirectory(SearchDirectoryRequest{Query: "stats"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(result.Files) != 1 {
		t.Fatalf("expected 1 file, got %d", len(result.Files))
	}

	file := result.Files[0]
	if file.Path != filepath.Join(root, "stats_101_syllabus.docx") {
		t.Errorf("unexpected path %s", file.Path)
	}
	if file.Format != "docx" {
		t.Errorf("expected format docx, got %s", file.Format)
	}
	if file.Size != 2048 {
		t.Errorf("expected size 2048, got %d", file.Size)
	}
	if file.ModifiedTime == "" {
		t.Error("expected modified time to be set")
	}
	if result.Directory != root {
		t.Errorf("expected directory %s, got %s", root, result.Directory)
	}
}

func TestSearch_FindDocuments(t *testing.T) {
	search, _ := newTestSearch(t)

	all, err := search.FindDocuments("", 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(all) != 5 {
		t.Errorf("expected 5 documents, got %d", len(all))
	}

	limited, err := search.FindDocuments("", 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(limited) != 2 {
		t.Errorf("expected 2 documents, got %d", len(limited))
	}
}

func TestIsSupportedDocument(t *testing.T) {
	tests := map[string]bool{
		"syllabus.pdf":  true,
		"SYLLABUS.PDF":  true,
		"schedule.docx": true,
		"schedule.odt":  true,
		"notes.txt":     true,
		"README.md":     true,
		"grades.csv":    false,
		"slides.pptx":   false,
		"noextension":   false,
	}
	for name, want := range tests {
		if got := IsSupportedDocument(name); got != want {
			t.Errorf("IsSupportedDocument(%q) = %v, want %v", name, got, want)
		}
	}
}

func TestMatchesQuery(t *testing.T) {
	tests := []struct {
		filename string
		query    string
		want     bool
	}{
		{"cs2110-fall.pdf", "", true},
		{"cs2110-fall.pdf", "cs2110", true},
		{"cs2110-fall.pdf", "fall cs", true},
		{"cs2110-fall.pdf", "spring", false},
		{"stats_101_syllabus.docx", "101 syll", true},
		{"stats_101_syllabus.docx", "stats 102", false},
	}
	for _, tt := range tests {
		if got := matchesQuery(tt.filename, tt.query); got != tt.want {
			t.Errorf("matchesQuery(%q, %q) = %v, want %v", tt.filename, tt.query, got, tt.want)
		}
	}
}
