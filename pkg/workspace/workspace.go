// Package workspace provides the per-invocation scratch directory that holds
// the generated Typst source and the compiled SVG.
package workspace

import (
	"fmt"
	"os"
	"path/filepath"
)

// Workspace is a private temporary directory owned by one generate call.
type Workspace struct {
	dir  string
	keep bool
}

// Acquire creates a new scratch directory. The pattern follows os.MkdirTemp.
// Callers must Close the workspace, usually with defer, on every path.
func Acquire(pattern string) (*Workspace, error) {
	if pattern == "" {
		pattern = "typst-formula-*"
	}

	dir, err := os.MkdirTemp("", pattern)
	if err != nil {
		return nil, fmt.Errorf("workspace: create temp dir: %w", err)
	}
	return &Workspace{dir: dir}, nil
}

// Dir returns the directory path.
func (w *Workspace) Dir() string {
	return w.dir
}

// Path returns the path of name inside the workspace.
func (w *Workspace) Path(name string) string {
	return filepath.Join(w.dir, name)
}

// Keep makes Close leave the directory on disk, for debugging.
func (w *Workspace) Keep() {
	w.keep = true
}

// Close removes the directory and everything in it. It is safe to call more
// than once.
func (w *Workspace) Close() error {
	if w.keep || w.dir == "" {
		return nil
	}

	dir := w.dir
	w.dir = ""
	if err := os.RemoveAll(dir); err != nil {
		return fmt.Errorf("workspace: remove %q: %w", dir, err)
	}
	return nil
}
