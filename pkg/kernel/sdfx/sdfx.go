// Package sdfx implements kernel.Kernel with the signed distance
// functions of github.com/deadsy/sdfx.
package sdfx

import (
	"fmt"

	"github.com/chazu/lasercut/pkg/joint"
	"github.com/chazu/lasercut/pkg/kernel"
	"github.com/deadsy/sdfx/sdf"
	v2 "github.com/deadsy/sdfx/vec/v2"
	"github.com/jbeda/geom"
)

// Compile-time interface check.
var _ kernel.Kernel = (*SdfxKernel)(nil)

// sdfxRegion wraps an sdf.SDF2. Negative distance is inside.
type sdfxRegion struct {
	s sdf.SDF2
}

func (r *sdfxRegion) Bounds() geom.Rect {
	bb := r.s.BoundingBox()
	return geom.Rect{
		Min: geom.Coord{X: bb.Min.X, Y: bb.Min.Y},
		Max: geom.Coord{X: bb.Max.X, Y: bb.Max.Y},
	}
}

func (r *sdfxRegion) Contains(p joint.Point) bool {
	return r.s.Evaluate(v2.Vec{X: p.X, Y: p.Y}) <= 0
}

// SdfxKernel implements kernel.Kernel using sdfx.
type SdfxKernel struct{}

// New returns a new SdfxKernel.
func New() *SdfxKernel {
	return &SdfxKernel{}
}

func unwrap(r kernel.Region) sdf.SDF2 {
	return r.(*sdfxRegion).s
}

func wrap(s sdf.SDF2) kernel.Region {
	return &sdfxRegion{s: s}
}

// Rect creates a rectangle with its top-left corner at x,y. sdf.Box2D is
// centered on the origin, so it is shifted by half its size.
func (k *SdfxKernel) Rect(x, y, w, h float64) kernel.Region {
	s := sdf.Box2D(v2.Vec{X: w, Y: h}, 0)
	m := sdf.Translate2d(v2.Vec{X: x + w/2, Y: y + h/2})
	return wrap(sdf.Transform2D(s, m))
}

// Ellipse creates the ellipse inscribed in x,y,w,h by scaling a unit
// circle. A zero radius would make the transform singular, so degenerate
// ellipses fall back to their (degenerate) bounding box.
func (k *SdfxKernel) Ellipse(x, y, w, h float64) kernel.Region {
	if w <= 0 || h <= 0 {
		return k.Rect(x, y, w, h)
	}
	c, err := sdf.Circle2D(1)
	if err != nil {
		panic(fmt.Sprintf("sdfx.Circle2D: %v", err))
	}
	m := sdf.Translate2d(v2.Vec{X: x + w/2, Y: y + h/2}).Mul(sdf.Scale2d(v2.Vec{X: w / 2, Y: h / 2}))
	return wrap(sdf.Transform2D(c, m))
}

// Union returns the union of rs.
func (k *SdfxKernel) Union(rs ...kernel.Region) kernel.Region {
	switch len(rs) {
	case 0:
		return kernel.Empty
	case 1:
		return rs[0]
	}
	ss := make([]sdf.SDF2, 0, len(rs))
	for _, r := range rs {
		if r == kernel.Empty {
			continue
		}
		ss = append(ss, unwrap(r))
	}
	if len(ss) == 0 {
		return kernel.Empty
	}
	return wrap(sdf.Union2D(ss...))
}

// Translate moves a region by dx, dy.
func (k *SdfxKernel) Translate(r kernel.Region, dx, dy float64) kernel.Region {
	if r == kernel.Empty {
		return r
	}
	return wrap(sdf.Transform2D(unwrap(r), sdf.Translate2d(v2.Vec{X: dx, Y: dy})))
}
