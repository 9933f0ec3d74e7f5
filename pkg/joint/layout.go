package joint

import "math"

// TabCount returns the number of tabs laid along an edge of the given
// length. It is never less than one, even when the edge is shorter than a
// single joint. jointLength must be positive. Counts above MaxTabs are
// capped; LayoutEdge rejects such edges instead.
func TabCount(length, jointLength float64) int {
	q := math.Floor(length / jointLength)
	if q > MaxTabs {
		return MaxTabs
	}
	count := int(q)
	if count < 1 {
		count = 1
	}
	return count
}

// Padding returns the gap left before the first and after the last tab.
// It is negative when a too-short edge was forced to hold one tab; the tab
// then overhangs both ends equally.
func Padding(length, jointLength float64) float64 {
	return (length - float64(TabCount(length, jointLength))*jointLength) / 2
}

// LayoutEdge lays out the finger-joint tabs of one edge. Tabs are
// jointLength long, thickness deep, butted together and centered on the
// edge. Each tab's inner side is flush with the edge line.
func LayoutEdge(e Edge, jointLength, thickness float64) ([]Rect, error) {
	if err := checkJointLength(jointLength); err != nil {
		return nil, err
	}
	if err := checkNonNegative("thickness", thickness); err != nil {
		return nil, err
	}
	if err := checkNonNegative("edge length", e.Length); err != nil {
		return nil, err
	}
	if err := checkTabCount("edge length", e.Length, jointLength); err != nil {
		return nil, err
	}

	count := TabCount(e.Length, jointLength)
	padding := Padding(e.Length, jointLength)

	tabs := make([]Rect, 0, count)
	for i := 0; i < count; i++ {
		offset := padding + float64(i)*jointLength
		switch e.Orientation {
		case Horizontal:
			y := e.Start.Y
			if e.Flip {
				y -= thickness
			}
			tabs = append(tabs, Rect{X: e.Start.X + offset, Y: y, W: jointLength, H: thickness})
		case Vertical:
			x := e.Start.X
			if e.Flip {
				x -= thickness
			}
			tabs = append(tabs, Rect{X: x, Y: e.Start.Y + offset, W: thickness, H: jointLength})
		}
	}
	return tabs, nil
}
