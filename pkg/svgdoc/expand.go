package svgdoc

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/beevik/etree"
	"github.com/tdewolff/canvas"
)

// ErrReferenceCycle is returned when a reference, directly or through nested
// references, points back at a definition that is being expanded.
var ErrReferenceCycle = errors.New("svgdoc: reference cycle")

// ReferenceError reports a use element whose target cannot be resolved.
type ReferenceError struct {
	Href string
}

func (e *ReferenceError) Error() string {
	if e.Href == "" {
		return "svgdoc: use element without href"
	}
	return fmt.Sprintf("svgdoc: unresolved reference %q", e.Href)
}

// useAttrs are consumed by the expansion and not carried over to the group.
var useAttrs = map[string]bool{
	"href":      true,
	"x":         true,
	"y":         true,
	"width":     true,
	"height":    true,
	"transform": true,
}

// ExpandReferences walks the tree under root depth-first, parent before
// children, and replaces every use element with a g element at the same
// position. The group holds deep copies of the referenced definition's
// children (or of the referenced element itself when it is not a container)
// and is translated by the use element's x and y, which default to 0.
// The walk continues into the new group so nested references are expanded
// too. Every reference gets its own copy.
func ExpandReferences(root *etree.Element) error {
	ids := make(map[string]*etree.Element)
	indexIDs(root, ids)
	return expand(root, ids, nil)
}

func indexIDs(el *etree.Element, ids map[string]*etree.Element) {
	if id := el.SelectAttrValue("id", ""); id != "" {
		if _, seen := ids[id]; !seen {
			ids[id] = el
		}
	}
	for _, child := range el.ChildElements() {
		indexIDs(child, ids)
	}
}

// expand processes the children of el. chain holds the ids of the
// definitions whose copies are currently being walked.
func expand(el *etree.Element, ids map[string]*etree.Element, chain []string) error {
	for i := 0; i < len(el.Child); i++ {
		child, ok := el.Child[i].(*etree.Element)
		if !ok {
			continue
		}

		next := chain
		if child.Tag == "use" {
			id, err := targetID(child)
			if err != nil {
				return err
			}
			for _, active := range chain {
				if active == id {
					return fmt.Errorf("%w: %s", ErrReferenceCycle, strings.Join(append(chain, id), " -> "))
				}
			}
			target, ok := ids[id]
			if !ok {
				return &ReferenceError{Href: "#" + id}
			}

			group, err := groupFor(child, target)
			if err != nil {
				return err
			}

			el.RemoveChildAt(i)
			el.InsertChildAt(i, group)
			if childID := child.SelectAttrValue("id", ""); childID != "" && ids[childID] == child {
				ids[childID] = group
			}

			child = group
			next = append(chain[:len(chain):len(chain)], id)
		}

		if err := expand(child, ids, next); err != nil {
			return err
		}
	}
	return nil
}

// targetID returns the fragment id a use element points at.
func targetID(use *etree.Element) (string, error) {
	href := use.SelectAttrValue("xlink:href", "")
	if href == "" {
		href = use.SelectAttrValue("href", "")
	}
	if !strings.HasPrefix(href, "#") || len(href) == 1 {
		return "", &ReferenceError{Href: href}
	}
	return href[1:], nil
}

// groupFor builds the g element replacing use.
func groupFor(use, target *etree.Element) (*etree.Element, error) {
	x, err := offset(use, "x")
	if err != nil {
		return nil, err
	}
	y, err := offset(use, "y")
	if err != nil {
		return nil, err
	}

	useTransform, err := Transform(use)
	if err != nil {
		return nil, err
	}

	group := etree.NewElement("g")
	if use.Space != "" {
		group.Space = use.Space
	}
	for _, attr := range use.Attr {
		if useAttrs[attr.Key] {
			continue
		}
		group.CreateAttr(attr.FullKey(), attr.Value)
	}
	SetTransform(group, useTransform.Mul(canvas.Identity.Translate(x, y)))

	switch target.Tag {
	case "symbol", "g", "defs", "svg":
		for _, el := range target.ChildElements() {
			group.AddChild(el.Copy())
		}
	default:
		cp := target.Copy()
		cp.RemoveAttr("id")
		group.AddChild(cp)
	}

	return group, nil
}

func offset(use *etree.Element, key string) (float64, error) {
	v := use.SelectAttrValue(key, "")
	if v == "" {
		return 0, nil
	}
	f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
	if err != nil {
		return 0, fmt.Errorf("svgdoc: invalid %s offset %q on use element: %w", key, v, err)
	}
	return f, nil
}
