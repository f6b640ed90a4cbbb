package typst

import (
	"fmt"
	"io"
	"os"
	"sort"
)

// Defaults mirror the values Inkscape shows for a fresh extension dialog.
const (
	DefaultCode     = `$ sum_(k=0)^n k = 1 + ... + n = (n(n+1)) / 2 $`
	DefaultFontSize = 10
	DefaultPage     = "basic"
)

// pagePresets maps a page-style selector to the page directive written at the
// top of the generated source.
var pagePresets = map[string]string{
	"basic": "#set page(margin: (x: 0pt, y: 0pt))",
}

// Request describes a single formula to compile. It is built once from the
// user's input and never modified afterwards.
type Request struct {
	Code     string // Typst markup, passed through verbatim
	FontSize int    // in pt
	Page     string // page preset, see Pages
}

// NewRequest returns a Request with markup and size kept as given. Only an
// empty page selector falls back to DefaultPage.
func NewRequest(code string, fontSize int, page string) Request {
	if page == "" {
		page = DefaultPage
	}
	return Request{Code: code, FontSize: fontSize, Page: page}
}

// Pages returns the known page presets in sorted order.
func Pages() []string {
	names := make([]string, 0, len(pagePresets))
	for name := range pagePresets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Validate reports whether the request names a known page preset.
// The markup itself is never validated; that is the compiler's job.
func (r Request) Validate() error {
	if _, ok := pagePresets[r.Page]; !ok {
		return fmt.Errorf("typst: unknown page preset %q (must be one of %v)", r.Page, Pages())
	}
	return nil
}

// WriteSource writes the Typst source for req: the page directive, the text
// size directive and then the markup exactly as given.
func WriteSource(w io.Writer, req Request) error {
	if err := req.Validate(); err != nil {
		return err
	}

	_, err := fmt.Fprintf(w, "%s\n#set text(%dpt)\n%s", pagePresets[req.Page], req.FontSize, req.Code)
	if err != nil {
		return fmt.Errorf("typst: write source: %w", err)
	}
	return nil
}

// WriteSourceFile creates (or truncates) path and writes the source for req into it.
func WriteSourceFile(path string, req Request) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("typst: create source file %q: %w", path, err)
	}

	if err := WriteSource(f, req); err != nil {
		f.Close()
		return err
	}

	if err := f.Close(); err != nil {
		return fmt.Errorf("typst: close source file %q: %w", path, err)
	}
	return nil
}
