package svgdoc

import (
	"fmt"
	"strings"

	"github.com/beevik/etree"
	"github.com/tdewolff/canvas"
)

// BoundingBox returns the axis-aligned bounding box of el in the coordinate
// system of its parent, i.e. with el's own transform applied. ok is false
// when el and its descendants have no measurable geometry.
func BoundingBox(el *etree.Element) (box canvas.Rect, ok bool, err error) {
	return bounds(el, canvas.Identity)
}

// bounds measures el with the accumulated parent transform m.
func bounds(el *etree.Element, m canvas.Matrix) (canvas.Rect, bool, error) {
	own, err := Transform(el)
	if err != nil {
		return canvas.Rect{}, false, err
	}
	m = m.Mul(own)

	switch el.Tag {
	case "path":
		p, err := canvas.ParseSVGPath(strings.TrimSpace(el.SelectAttrValue("d", "")))
		if err != nil {
			return canvas.Rect{}, false, fmt.Errorf("svgdoc: path data: %w", err)
		}
		return pathBounds(p, m)
	case "rect", "image":
		x, y, w, h, err := lengths4(el, "x", "y", "width", "height")
		if err != nil {
			return canvas.Rect{}, false, err
		}
		if w <= 0 || h <= 0 {
			return canvas.Rect{}, false, nil
		}
		return canvas.RectFromSize(x, y, w, h).Transform(m), true, nil
	case "circle":
		cx, cy, r, _, err := lengths4(el, "cx", "cy", "r", "")
		if err != nil {
			return canvas.Rect{}, false, err
		}
		return pathBounds(canvas.Circle(r).Translate(cx, cy), m)
	case "ellipse":
		cx, cy, rx, ry, err := lengths4(el, "cx", "cy", "rx", "ry")
		if err != nil {
			return canvas.Rect{}, false, err
		}
		return pathBounds(canvas.Ellipse(rx, ry).Translate(cx, cy), m)
	case "line":
		x1, y1, x2, y2, err := lengths4(el, "x1", "y1", "x2", "y2")
		if err != nil {
			return canvas.Rect{}, false, err
		}
		return canvas.RectFromPoints(m.Dot(canvas.Point{X: x1, Y: y1}), m.Dot(canvas.Point{X: x2, Y: y2})), true, nil
	case "polyline", "polygon":
		nums, err := parseNumbers(el.SelectAttrValue("points", ""))
		if err != nil {
			return canvas.Rect{}, false, fmt.Errorf("svgdoc: points: %w", err)
		}
		if len(nums) < 2 {
			return canvas.Rect{}, false, nil
		}
		points := make([]canvas.Point, 0, len(nums)/2)
		for i := 0; i+1 < len(nums); i += 2 {
			points = append(points, m.Dot(canvas.Point{X: nums[i], Y: nums[i+1]}))
		}
		return canvas.RectFromPoints(points...), true, nil
	case "g", "a", "switch", "svg":
		var box canvas.Rect
		found := false
		for _, child := range el.ChildElements() {
			if !IsShape(child) {
				continue
			}
			childBox, ok, err := bounds(child, m)
			if err != nil {
				return canvas.Rect{}, false, err
			}
			if !ok {
				continue
			}
			if !found {
				box, found = childBox, true
			} else {
				box = box.Add(childBox)
			}
		}
		return box, found, nil
	}

	return canvas.Rect{}, false, nil
}

func pathBounds(p *canvas.Path, m canvas.Matrix) (canvas.Rect, bool, error) {
	if p.Empty() {
		return canvas.Rect{}, false, nil
	}
	return p.Transform(m).Bounds(), true, nil
}

// lengths4 reads up to four length attributes, missing ones being 0.
// An empty key is skipped.
func lengths4(el *etree.Element, k1, k2, k3, k4 string) (v1, v2, v3, v4 float64, err error) {
	out := [4]float64{}
	for i, key := range [4]string{k1, k2, k3, k4} {
		if key == "" {
			continue
		}
		raw := el.SelectAttrValue(key, "")
		if raw == "" {
			continue
		}
		if out[i], err = ParseLength(raw); err != nil {
			return 0, 0, 0, 0, fmt.Errorf("svgdoc: %s attribute of %s: %w", key, el.Tag, err)
		}
	}
	return out[0], out[1], out[2], out[3], nil
}
