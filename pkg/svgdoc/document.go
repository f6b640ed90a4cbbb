// Package svgdoc loads the SVG produced by the compiler and turns it into a
// self-contained element tree: references to shared definitions are expanded
// into owned copies, and shapes can be measured and transformed.
package svgdoc

import (
	"errors"
	"fmt"
	"io"

	"github.com/beevik/etree"
	"github.com/tdewolff/canvas"
)

// ErrEmptyDocument is returned when a document has no top-level element.
var ErrEmptyDocument = errors.New("svgdoc: document has no top-level element")

// nonShapes lists the tags that may appear at the top level of an SVG
// document without being drawn.
var nonShapes = map[string]bool{
	"defs":      true,
	"metadata":  true,
	"style":     true,
	"title":     true,
	"desc":      true,
	"script":    true,
	"symbol":    true,
	"namedview": true,
	"clipPath":  true,
	"mask":      true,
	"marker":    true,
	"pattern":   true,
	"filter":    true,

	"linearGradient": true,
	"radialGradient": true,
}

// Document is a parsed SVG file.
type Document struct {
	doc *etree.Document
}

// Load parses an SVG document from r.
func Load(r io.Reader) (*Document, error) {
	doc := etree.NewDocument()
	if _, err := doc.ReadFrom(r); err != nil {
		return nil, fmt.Errorf("svgdoc: parse: %w", err)
	}
	return newDocument(doc)
}

// LoadFile parses the SVG document stored at path.
func LoadFile(path string) (*Document, error) {
	doc := etree.NewDocument()
	if err := doc.ReadFromFile(path); err != nil {
		return nil, fmt.Errorf("svgdoc: parse %q: %w", path, err)
	}
	return newDocument(doc)
}

func newDocument(doc *etree.Document) (*Document, error) {
	root := doc.Root()
	if root == nil || len(root.ChildElements()) == 0 {
		return nil, ErrEmptyDocument
	}
	return &Document{doc: doc}, nil
}

// Root returns the root svg element.
func (d *Document) Root() *etree.Element {
	return d.doc.Root()
}

// Expand replaces every reference in the document with a copy of its target.
// See ExpandReferences.
func (d *Document) Expand() error {
	return ExpandReferences(d.Root())
}

// Shapes returns the top-level elements that draw something, in document order.
func (d *Document) Shapes() []*etree.Element {
	var shapes []*etree.Element
	for _, child := range d.Root().ChildElements() {
		if IsShape(child) {
			shapes = append(shapes, child)
		}
	}
	return shapes
}

// WriteTo serializes the document.
func (d *Document) WriteTo(w io.Writer) (int64, error) {
	return d.doc.WriteTo(w)
}

// IsShape reports whether el is a graphical element or container rather than
// a definition, metadata or styling element.
func IsShape(el *etree.Element) bool {
	return !nonShapes[el.Tag]
}

// Transform returns the parsed transform attribute of el.
func Transform(el *etree.Element) (canvas.Matrix, error) {
	return ParseTransform(el.SelectAttrValue("transform", ""))
}

// SetTransform replaces the transform attribute of el. The identity removes
// the attribute.
func SetTransform(el *etree.Element, m canvas.Matrix) {
	if s := FormatTransform(m); s != "" {
		el.CreateAttr("transform", s)
		return
	}
	el.RemoveAttr("transform")
}
