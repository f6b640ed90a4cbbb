// Package inkscape adapts an Inkscape drawing as the host for generated
// shapes: it reads the view settings the extension needs, inserts the result
// as a new group in the current layer and describes the extension to
// Inkscape through an .inx file.
package inkscape

import (
	"fmt"
	"io"
	"strings"

	"github.com/beevik/etree"
	"github.com/tdewolff/canvas"

	"github.com/hellenic-development/typst-formula/pkg/svgdoc"
)

// Namespace of the inkscape: attributes.
const Namespace = "http://www.inkscape.org/namespaces/inkscape"

// Document is the drawing currently open in Inkscape.
type Document struct {
	doc *etree.Document
}

// Open reads the drawing stored at path.
func Open(path string) (*Document, error) {
	doc := etree.NewDocument()
	if err := doc.ReadFromFile(path); err != nil {
		return nil, fmt.Errorf("inkscape: read document %q: %w", path, err)
	}
	return newDocument(doc)
}

// Read reads a drawing from r.
func Read(r io.Reader) (*Document, error) {
	doc := etree.NewDocument()
	if _, err := doc.ReadFrom(r); err != nil {
		return nil, fmt.Errorf("inkscape: read document: %w", err)
	}
	return newDocument(doc)
}

func newDocument(doc *etree.Document) (*Document, error) {
	root := doc.Root()
	if root == nil || root.Tag != "svg" {
		return nil, fmt.Errorf("inkscape: document root is not an svg element")
	}
	return &Document{doc: doc}, nil
}

// Root returns the root svg element.
func (d *Document) Root() *etree.Element {
	return d.doc.Root()
}

// viewBox returns the x, y, width and height of the viewBox attribute.
func (d *Document) viewBox() (vb [4]float64, ok bool) {
	raw := d.Root().SelectAttrValue("viewBox", "")
	fields := strings.FieldsFunc(raw, func(r rune) bool { return r == ',' || r == ' ' || r == '\t' || r == '\n' })
	if len(fields) != 4 {
		return vb, false
	}
	for i, f := range fields {
		v, err := svgdoc.ParseLength(f)
		if err != nil {
			return vb, false
		}
		vb[i] = v
	}
	return vb, vb[2] > 0 && vb[3] > 0
}

// Scale returns the number of px per user unit, i.e. the ratio between the
// document width and its viewBox width. Without a usable width or viewBox
// the scale is 1.
func (d *Document) Scale() float64 {
	vb, ok := d.viewBox()
	if !ok {
		return 1
	}
	width, err := svgdoc.ParseLength(d.Root().SelectAttrValue("width", ""))
	if err != nil || width <= 0 {
		return 1
	}
	return width / vb[2]
}

// namedView returns the sodipodi:namedview element, if any.
func (d *Document) namedView() *etree.Element {
	for _, child := range d.Root().ChildElements() {
		if child.Tag == "namedview" {
			return child
		}
	}
	return nil
}

// Center returns the centre of the current view in user units. It comes from
// the inkscape:cx and inkscape:cy attributes of the named view, which are in
// viewport px and are divided by Scale, and falls back to the centre of the
// viewBox (or the origin without one).
func (d *Document) Center() canvas.Point {
	if nv := d.namedView(); nv != nil {
		cx, errX := svgdoc.ParseLength(nv.SelectAttrValue("inkscape:cx", ""))
		cy, errY := svgdoc.ParseLength(nv.SelectAttrValue("inkscape:cy", ""))
		if errX == nil && errY == nil {
			scale := d.Scale()
			return canvas.Point{X: cx / scale, Y: cy / scale}
		}
	}
	if vb, ok := d.viewBox(); ok {
		return canvas.Point{X: vb[0] + vb[2]/2, Y: vb[1] + vb[3]/2}
	}
	return canvas.Origin
}

// CurrentLayer returns the layer named by inkscape:current-layer, or the
// root when it is not set or cannot be found.
func (d *Document) CurrentLayer() *etree.Element {
	nv := d.namedView()
	if nv == nil {
		return d.Root()
	}
	id := nv.SelectAttrValue("inkscape:current-layer", "")
	if id == "" {
		return d.Root()
	}
	if layer := findByID(d.Root(), id); layer != nil {
		return layer
	}
	return d.Root()
}

func findByID(el *etree.Element, id string) *etree.Element {
	if el.SelectAttrValue("id", "") == id {
		return el
	}
	for _, child := range el.ChildElements() {
		if found := findByID(child, id); found != nil {
			return found
		}
	}
	return nil
}

// composedTransform multiplies the transforms from the root down to el.
func composedTransform(el *etree.Element) (canvas.Matrix, error) {
	var chain []*etree.Element
	for e := el; e != nil; e = e.Parent() {
		chain = append(chain, e)
	}

	m := canvas.Identity
	for i := len(chain) - 1; i >= 0; i-- {
		t, err := svgdoc.Transform(chain[i])
		if err != nil {
			return canvas.Identity, fmt.Errorf("inkscape: transform of %s: %w", chain[i].Tag, err)
		}
		m = m.Mul(t)
	}
	return m, nil
}

// InsertGroup appends a new group holding shapes to the current layer and
// returns it. The group is positioned on the view centre regardless of the
// layer's own transform. Shapes are moved out of their previous parent.
func (d *Document) InsertGroup(label string, shapes []*etree.Element) (*etree.Element, error) {
	layer := d.CurrentLayer()

	layerTransform, err := composedTransform(layer)
	if err != nil {
		return nil, err
	}
	if canvas.Equal(layerTransform.Det(), 0) {
		return nil, fmt.Errorf("inkscape: current layer has a singular transform")
	}

	center := d.Center()
	transform := layerTransform.Inv().Mul(canvas.Identity.Translate(center.X, center.Y))

	group := etree.NewElement("g")
	if label != "" {
		d.ensureNamespace()
		group.CreateAttr("inkscape:label", label)
	}
	svgdoc.SetTransform(group, transform)
	for _, shape := range shapes {
		group.AddChild(shape)
	}

	layer.AddChild(group)
	return group, nil
}

// ensureNamespace declares the inkscape prefix on the root when missing.
func (d *Document) ensureNamespace() {
	if d.Root().SelectAttr("xmlns:inkscape") == nil {
		d.Root().CreateAttr("xmlns:inkscape", Namespace)
	}
}

// WriteTo serializes the drawing.
func (d *Document) WriteTo(w io.Writer) (int64, error) {
	return d.doc.WriteTo(w)
}
