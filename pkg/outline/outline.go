// Package outline walks a design and produces the cut outline of every
// panel using a geometry kernel. One outline is produced per panel.
package outline

import (
	"fmt"

	"github.com/chazu/lasercut/pkg/design"
	"github.com/chazu/lasercut/pkg/joint"
	"github.com/chazu/lasercut/pkg/kernel"
	"github.com/jbeda/geom"
)

// Outline is the generated geometry of one panel.
type Outline struct {
	PanelID    design.PanelID    `json:"panel_id"`
	PanelName  string            `json:"panel_name"`
	Primitives []joint.Primitive `json:"primitives"`
	Extent     geom.Rect         `json:"extent"`

	// Region is the merged area of all primitives. Nil when built without
	// a kernel.
	Region kernel.Region `json:"-"`
}

// Build generates every panel of d in definition order. k may be nil, in
// which case extents come from the primitives' own bounds. Build is
// read-only and never mutates the design.
func Build(d *design.Design, k kernel.Kernel) ([]*Outline, error) {
	if d == nil {
		return nil, nil
	}

	outlines := make([]*Outline, 0, len(d.Panels))
	for _, p := range d.Panels {
		if p == nil {
			continue
		}
		o, err := buildPanel(k, p)
		if err != nil {
			return nil, fmt.Errorf("outline: panel %q (%s): %w", p.Name, p.ID.Short(), err)
		}
		outlines = append(outlines, o)
	}
	return outlines, nil
}

func buildPanel(k kernel.Kernel, p *design.Panel) (*Outline, error) {
	prims, err := joint.Generate(p.Params, p.Origin)
	if err != nil {
		return nil, err
	}

	o := &Outline{
		PanelID:    p.ID,
		PanelName:  p.Name,
		Primitives: prims,
		Extent:     Bounds(prims),
	}
	if o.PanelName == "" {
		o.PanelName = p.ID.Short()
	}

	if k != nil {
		r, err := kernel.Outline(k, prims)
		if err != nil {
			return nil, err
		}
		o.Region = r
		o.Extent = r.Bounds()
	}
	return o, nil
}

// Bounds returns the union of the bounding boxes of prims, or the zero
// rect when prims is empty.
func Bounds(prims []joint.Primitive) geom.Rect {
	if len(prims) == 0 {
		return geom.Rect{}
	}
	b := prims[0].Bounds()
	for _, p := range prims[1:] {
		b.ExpandToContainRect(p.Bounds())
	}
	return b
}

// Flatten concatenates the primitives of all outlines into one drawing
// list, preserving panel order.
func Flatten(outlines []*Outline) []joint.Primitive {
	var n int
	for _, o := range outlines {
		n += len(o.Primitives)
	}
	prims := make([]joint.Primitive, 0, n)
	for _, o := range outlines {
		prims = append(prims, o.Primitives...)
	}
	return prims
}

// Overlap names two panels whose extents intersect on the sheet.
type Overlap struct {
	A, B string
}

// Overlaps reports every pair of outlines whose extents intersect with
// positive area. Touching edges do not count.
func Overlaps(outlines []*Outline) []Overlap {
	var out []Overlap
	for i := 0; i < len(outlines); i++ {
		for j := i + 1; j < len(outlines); j++ {
			if intersects(outlines[i].Extent, outlines[j].Extent) {
				out = append(out, Overlap{A: outlines[i].PanelName, B: outlines[j].PanelName})
			}
		}
	}
	return out
}

func intersects(a, b geom.Rect) bool {
	return a.Min.X < b.Max.X && b.Min.X < a.Max.X &&
		a.Min.Y < b.Max.Y && b.Min.Y < a.Max.Y
}
