// Package security confines document access to a configured root directory.
package security

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

var (
	ErrEmptyPath   = errors.New("path cannot be empty")
	ErrOutsideRoot = errors.New("path is outside the syllabus directory")
	ErrNotDir      = errors.New("path is not a directory")
)

// Sandbox resolves caller-supplied paths against a root directory and rejects
// anything that escapes it, including through symlinks.
type Sandbox struct {
	root string
}

// NewSandbox creates a sandbox rooted at dir. The directory does not have to
// exist yet.
func NewSandbox(dir string) (*Sandbox, error) {
	if strings.TrimSpace(dir) == "" {
		return nil, fmt.Errorf("syllabus directory: %w", ErrEmptyPath)
	}
	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve syllabus directory: %w", err)
	}
	return &Sandbox{root: filepath.Clean(abs)}, nil
}

// Root returns the absolute root directory
func (s *Sandbox) Root() string {
	return s.root
}

// Resolve returns the absolute form of path. Relative paths are taken relative
// to the root. Null bytes are stripped before resolution.
func (s *Sandbox) Resolve(path string) (string, error) {
	path = strings.ReplaceAll(path, "\x00", "")
	if strings.TrimSpace(path) == "" {
		return "", ErrEmptyPath
	}
	if !filepath.IsAbs(path) {
		path = filepath.Join(s.root, path)
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("failed to resolve path: %w", err)
	}
	abs = filepath.Clean(abs)

	if !s.Contains(abs) {
		return "", fmt.Errorf("%w: %s", ErrOutsideRoot, path)
	}
	return abs, nil
}

// ResolveDirectory resolves dir like Resolve and additionally requires it to be
// a directory when it exists. An empty dir means the root.
func (s *Sandbox) ResolveDirectory(dir string) (string, error) {
	if strings.TrimSpace(dir) == "" {
		dir = s.root
	}
	abs, err := s.Resolve(dir)
	if err != nil {
		return "", err
	}

	info, err := os.Stat(abs)
	if err != nil {
		if os.IsNotExist(err) {
			return abs, nil
		}
		return "", fmt.Errorf("cannot access directory: %w", err)
	}
	if !info.IsDir() {
		return "", fmt.Errorf("%w: %s", ErrNotDir, dir)
	}
	return abs, nil
}

// Contains reports whether the absolute path lies inside the root, comparing
// both the literal and the symlink-resolved forms of each.
func (s *Sandbox) Contains(abs string) bool {
	rootReal := evalOrSelf(s.root)
	pathReal := evalOrSelf(abs)

	literalOK := within(abs, s.root) || within(abs, rootReal)
	realOK := within(pathReal, s.root) || within(pathReal, rootReal)
	return literalOK && realOK
}

func evalOrSelf(path string) string {
	if resolved, err := filepath.EvalSymlinks(path); err == nil {
		return filepath.Clean(resolved)
	}
	return path
}

func within(path, dir string) bool {
	rel, err := filepath.Rel(dir, path)
	if err != nil {
		return false
	}
	return rel == "." || (rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator)))
}
