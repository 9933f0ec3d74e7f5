package joint

import (
	"fmt"
	"math"
)

// BuildJointRect returns the primitives of a rectangular panel at x,y with
// the given joint style. The base rectangle always comes first.
func BuildJointRect(x, y, w, h float64, joint JointKind, thickness, jointLength float64) ([]Primitive, error) {
	if err := checkNonNegative("width", w); err != nil {
		return nil, err
	}
	if err := checkNonNegative("height", h); err != nil {
		return nil, err
	}
	base := Rect{X: x, Y: y, W: w, H: h}

	switch joint {
	case JointNone:
		return []Primitive{base}, nil
	case JointSlot:
		return buildSlotRect(base, thickness, jointLength)
	case JointTeeth:
		return buildTeethRect(base, thickness, jointLength)
	default:
		return nil, fmt.Errorf("unknown joint kind %d", int(joint))
	}
}

// buildSlotRect perforates the top edge only: every even position of
// floor(width/jointLength) gets a tab sitting above the edge. There is no
// centering and no forced minimum, so an edge shorter than one joint gets
// no tabs at all.
func buildSlotRect(base Rect, thickness, jointLength float64) ([]Primitive, error) {
	if err := checkJointLength(jointLength); err != nil {
		return nil, err
	}
	if err := checkNonNegative("thickness", thickness); err != nil {
		return nil, err
	}
	if err := checkTabCount("width", base.W, jointLength); err != nil {
		return nil, err
	}

	n := int(math.Floor(base.W / jointLength))
	prims := make([]Primitive, 0, 1+(n+1)/2)
	prims = append(prims, base)
	for i := 0; i < n; i += 2 {
		prims = append(prims, Rect{
			X: base.X + float64(i)*jointLength,
			Y: base.Y - thickness,
			W: jointLength,
			H: thickness,
		})
	}
	return prims, nil
}

// teethEdges returns the four edges of r in top, bottom, left, right order.
func teethEdges(r Rect) [4]Edge {
	return [4]Edge{
		{Start: Point{X: r.X, Y: r.Y}, Length: r.W, Orientation: Horizontal, Flip: false},
		{Start: Point{X: r.X, Y: r.Y + r.H}, Length: r.W, Orientation: Horizontal, Flip: true},
		{Start: Point{X: r.X, Y: r.Y}, Length: r.H, Orientation: Vertical, Flip: false},
		{Start: Point{X: r.X + r.W, Y: r.Y}, Length: r.H, Orientation: Vertical, Flip: true},
	}
}

func buildTeethRect(base Rect, thickness, jointLength float64) ([]Primitive, error) {
	if err := checkJointLength(jointLength); err != nil {
		return nil, err
	}

	prims := []Primitive{base}
	for _, e := range teethEdges(base) {
		tabs, err := LayoutEdge(e, jointLength, thickness)
		if err != nil {
			return nil, err
		}
		for _, t := range tabs {
			prims = append(prims, t)
		}
	}
	return prims, nil
}
