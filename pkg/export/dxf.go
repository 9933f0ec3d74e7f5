package export

import (
	"fmt"
	"math"

	"github.com/chazu/lasercut/pkg/joint"
	"github.com/yofu/dxf"
)

// CutLayer is the DXF layer every outline is drawn on.
const CutLayer = "CUT"

// EllipseSegments is the number of line segments approximating an ellipse.
const EllipseSegments = 72

type segment struct {
	x1, y1, x2, y2 float64
}

// segments returns the closed outline of p as line segments, in sheet
// coordinates (y down).
func segments(p joint.Primitive) ([]segment, error) {
	switch v := p.(type) {
	case joint.Rect:
		x0, y0, x1, y1 := v.X, v.Y, v.X+v.W, v.Y+v.H
		return []segment{
			{x0, y0, x1, y0},
			{x1, y0, x1, y1},
			{x1, y1, x0, y1},
			{x0, y1, x0, y0},
		}, nil
	case joint.Ellipse:
		c, rx, ry := v.Center()
		segs := make([]segment, EllipseSegments)
		px, py := c.X+rx, c.Y
		for i := 1; i <= EllipseSegments; i++ {
			a := 2 * math.Pi * float64(i) / EllipseSegments
			nx, ny := c.X+rx*math.Cos(a), c.Y+ry*math.Sin(a)
			if i == EllipseSegments {
				nx, ny = c.X+rx, c.Y
			}
			segs[i-1] = segment{px, py, nx, ny}
			px, py = nx, ny
		}
		return segs, nil
	default:
		return nil, fmt.Errorf("unsupported primitive type %T", p)
	}
}

// WriteDXF saves prims as LINE entities on the CUT layer. DXF is y-up, so
// y is negated; the drawing keeps its size and sits below the x axis.
func WriteDXF(path string, prims []joint.Primitive) error {
	d := dxf.NewDrawing()
	if _, err := d.AddLayer(CutLayer, dxf.DefaultColor, dxf.DefaultLineType, true); err != nil {
		return fmt.Errorf("export: dxf layer: %w", err)
	}
	for i, p := range prims {
		segs, err := segments(p)
		if err != nil {
			return fmt.Errorf("export: primitive %d: %w", i, err)
		}
		for _, s := range segs {
			if _, err := d.Line(s.x1, -s.y1, 0, s.x2, -s.y2, 0); err != nil {
				return fmt.Errorf("export: dxf line: %w", err)
			}
		}
	}
	if err := d.SaveAs(path); err != nil {
		return fmt.Errorf("export: save dxf %s: %w", path, err)
	}
	return nil
}
