package joint

import (
	"fmt"
	"strings"

	"github.com/jbeda/geom"
)

// Point is a 2D coordinate in drawing units (mm).
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// PrimitiveKind distinguishes the drawable primitives.
type PrimitiveKind int

const (
	PrimRect PrimitiveKind = iota
	PrimEllipse
)

func (k PrimitiveKind) String() string {
	switch k {
	case PrimRect:
		return "rect"
	case PrimEllipse:
		return "ellipse"
	default:
		return "unknown"
	}
}

// Primitive is a single drawable shape in an output list.
type Primitive interface {
	Kind() PrimitiveKind
	Bounds() geom.Rect
}

// Rect is an axis-aligned rectangle with its top-left corner at X,Y.
type Rect struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	W float64 `json:"w"`
	H float64 `json:"h"`
}

func (Rect) Kind() PrimitiveKind { return PrimRect }

// Bounds returns the rectangle as a geom.Rect.
func (r Rect) Bounds() geom.Rect {
	return geom.Rect{
		Min: geom.Coord{X: r.X, Y: r.Y},
		Max: geom.Coord{X: r.X + r.W, Y: r.Y + r.H},
	}
}

// Ellipse is an axis-aligned ellipse inscribed in the box X,Y,W,H.
type Ellipse struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	W float64 `json:"w"`
	H float64 `json:"h"`
}

func (Ellipse) Kind() PrimitiveKind { return PrimEllipse }

// Bounds returns the bounding box of the ellipse.
func (e Ellipse) Bounds() geom.Rect {
	return geom.Rect{
		Min: geom.Coord{X: e.X, Y: e.Y},
		Max: geom.Coord{X: e.X + e.W, Y: e.Y + e.H},
	}
}

// Center returns the center of the ellipse and its two radii.
func (e Ellipse) Center() (c Point, rx, ry float64) {
	return Point{X: e.X + e.W/2, Y: e.Y + e.H/2}, e.W / 2, e.H / 2
}

// Orientation says which axis tabs run along.
type Orientation int

const (
	Horizontal Orientation = iota // tabs advance along x
	Vertical                      // tabs advance along y
)

func (o Orientation) String() string {
	if o == Vertical {
		return "vertical"
	}
	return "horizontal"
}

// Edge describes one side of a base rectangle.
//
// Flip selects the side the material thickness protrudes toward: false
// draws tabs on the positive side of Start (below / right of it), true on
// the negative side (above / left of it).
type Edge struct {
	Start       Point
	Length      float64
	Orientation Orientation
	Flip        bool
}

// ShapeKind is the outline of a panel.
type ShapeKind int

const (
	ShapeRect ShapeKind = iota
	ShapeEllipse
)

func (k ShapeKind) String() string {
	switch k {
	case ShapeRect:
		return "rect"
	case ShapeEllipse:
		return "ellipse"
	default:
		return "unknown"
	}
}

// ParseShapeKind maps a user-facing name to a ShapeKind.
func ParseShapeKind(s string) (ShapeKind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "rect", "rectangle", "square":
		return ShapeRect, nil
	case "ellipse":
		return ShapeEllipse, nil
	}
	return 0, fmt.Errorf("invalid shape %q, expected rect or ellipse", s)
}

// JointKind is the edge-connection style of a rectangular panel.
type JointKind int

const (
	JointNone  JointKind = iota // plain edge
	JointSlot                   // alternating tabs on the top edge only
	JointTeeth                  // centered finger-joint tabs on all four edges
)

func (k JointKind) String() string {
	switch k {
	case JointNone:
		return "none"
	case JointSlot:
		return "slot"
	case JointTeeth:
		return "teeth"
	default:
		return "unknown"
	}
}

// ParseJointKind maps a user-facing name to a JointKind.
func ParseJointKind(s string) (JointKind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "none", "":
		return JointNone, nil
	case "slot", "slots":
		return JointSlot, nil
	case "teeth":
		return JointTeeth, nil
	}
	return 0, fmt.Errorf("invalid joint %q, expected none, slot, or teeth", s)
}
