// Package placer normalizes compiled shapes for insertion: each shape is
// centred on the origin and scaled from the compiler's pt to the host's user
// units.
package placer

import (
	"fmt"

	"github.com/beevik/etree"
	"github.com/tdewolff/canvas"

	"github.com/hellenic-development/typst-formula/pkg/svgdoc"
)

// ScaleFactor converts one pt of compiler output into host user units, given
// the host document's view scale (px per user unit).
func ScaleFactor(viewScale float64) (float64, error) {
	if viewScale <= 0 {
		return 0, fmt.Errorf("placer: view scale must be positive, got %g", viewScale)
	}
	ptInPx, err := svgdoc.ConvertUnit(1, "pt", "px")
	if err != nil {
		return 0, err
	}
	return ptInPx / viewScale, nil
}

// Matrix returns scale(s) · translate(-center) · original.
func Matrix(original canvas.Matrix, center canvas.Point, scale float64) canvas.Matrix {
	return canvas.Identity.Scale(scale, scale).Translate(-center.X, -center.Y).Mul(original)
}

// Place rewrites the transform of el so that its bounding box centre lands on
// the origin and its size is multiplied by scale. A shape without measurable
// geometry is only scaled.
func Place(el *etree.Element, scale float64) error {
	original, err := svgdoc.Transform(el)
	if err != nil {
		return fmt.Errorf("placer: %s: %w", el.Tag, err)
	}

	box, ok, err := svgdoc.BoundingBox(el)
	if err != nil {
		return fmt.Errorf("placer: %s: %w", el.Tag, err)
	}

	var center canvas.Point
	if ok {
		center = box.Center()
	}

	svgdoc.SetTransform(el, Matrix(original, center, scale))
	return nil
}

// PlaceAll places every top-level shape of doc and returns them in document
// order.
func PlaceAll(doc *svgdoc.Document, scale float64) ([]*etree.Element, error) {
	shapes := doc.Shapes()
	for _, shape := range shapes {
		if err := Place(shape, scale); err != nil {
			return nil, err
		}
	}
	return shapes, nil
}
