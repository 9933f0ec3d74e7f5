// Package kernel defines the abstract 2D outline kernel. A backend turns
// drawing primitives into regions that can be combined and queried. The
// sdfx package is the only backend.
package kernel

import (
	"fmt"

	"github.com/chazu/lasercut/pkg/joint"
	"github.com/jbeda/geom"
)

// Region is an opaque handle to a closed 2D area.
type Region interface {
	// Bounds returns the axis-aligned bounding box.
	Bounds() geom.Rect
	// Contains reports whether p lies inside or on the boundary.
	Contains(p joint.Point) bool
}

// Kernel builds and combines regions.
type Kernel interface {
	// Primitives; x,y is the top-left corner of the bounding box.
	Rect(x, y, w, h float64) Region
	Ellipse(x, y, w, h float64) Region

	// Union returns the union of rs. The union of nothing is Empty.
	Union(rs ...Region) Region

	Translate(r Region, dx, dy float64) Region
}

// Empty is the region containing no points.
var Empty Region = emptyRegion{}

type emptyRegion struct{}

func (emptyRegion) Bounds() geom.Rect         { return geom.Rect{} }
func (emptyRegion) Contains(joint.Point) bool { return false }

// Outline returns the union of every primitive in prims: the area a laser
// leaves standing once all outlines are cut and merged.
func Outline(k Kernel, prims []joint.Primitive) (Region, error) {
	rs := make([]Region, 0, len(prims))
	for i, p := range prims {
		switch v := p.(type) {
		case joint.Rect:
			rs = append(rs, k.Rect(v.X, v.Y, v.W, v.H))
		case joint.Ellipse:
			rs = append(rs, k.Ellipse(v.X, v.Y, v.W, v.H))
		default:
			return nil, fmt.Errorf("kernel: primitive %d has unsupported type %T", i, p)
		}
	}
	return k.Union(rs...), nil
}
