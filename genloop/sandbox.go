package genloop

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Sandbox validates paths and commands against a single root directory.
// The root is the sole trust boundary: no operation may touch a path that
// resolves outside it, and no command may request privilege escalation.
type Sandbox struct {
	root string
}

// NewSandbox creates a Sandbox rooted at dir. The root is resolved to an
// absolute path once; candidate paths are re-resolved against it per call.
func NewSandbox(dir string) (*Sandbox, error) {
	if dir == "" {
		var err error
		dir, err = os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("sandbox: cannot determine working directory: %w", err)
		}
	}
	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("sandbox: cannot resolve root %q: %w", dir, err)
	}
	return &Sandbox{root: abs}, nil
}

// Root returns the absolute sandbox root.
func (s *Sandbox) Root() string {
	return s.root
}

// Resolve returns the absolute form of path evaluated against the root.
// Relative paths are joined to the root; absolute paths are cleaned as-is.
func (s *Sandbox) Resolve(path string) string {
	if filepath.IsAbs(path) {
		return filepath.Clean(path)
	}
	return filepath.Join(s.root, path)
}

// IsPathSafe reports whether path resolves to the root itself or a
// descendant of it. Containment is checked component-wise, so a sibling
// directory sharing the root's name as a prefix is rejected.
func (s *Sandbox) IsPathSafe(path string) bool {
	resolved := s.Resolve(path)
	rel, err := filepath.Rel(s.root, resolved)
	if err != nil {
		return false
	}
	if rel == ".." || strings.HasPrefix(rel, ".."+string(os.PathSeparator)) {
		return false
	}
	return true
}

// IsCommandSafe reports whether a shell command is allowed to run. A command
// is rejected iff any whitespace-delimited token equals "sudo",
// case-insensitively. The match is token-exact: "echo sudoku" is allowed.
func (s *Sandbox) IsCommandSafe(command string) bool {
	for _, token := range strings.Fields(command) {
		if strings.EqualFold(token, "sudo") {
			return false
		}
	}
	return true
}
