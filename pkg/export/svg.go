package export

import (
	"fmt"
	"io"

	svg "github.com/ajstarks/svgo/float"
	"github.com/chazu/lasercut/pkg/joint"
	"github.com/chazu/lasercut/pkg/outline"
	"github.com/jbeda/geom"
)

const (
	svgTitle = "Laser Shape"
	svgDesc  = "SVG for laser cutting"
)

// Bounds returns the extent of prims grown by margin on every side.
func Bounds(prims []joint.Primitive, margin float64) geom.Rect {
	b := outline.Bounds(prims)
	b.Min.X -= margin
	b.Min.Y -= margin
	b.Max.X += margin
	b.Max.Y += margin
	return b
}

// errWriter remembers the first write error, since svgo discards them.
type errWriter struct {
	w   io.Writer
	err error
}

func (e *errWriter) Write(p []byte) (int, error) {
	if e.err != nil {
		return 0, e.err
	}
	n, err := e.w.Write(p)
	e.err = err
	return n, err
}

// WriteSVG serializes prims as an SVG document in millimetres. Shapes are
// written in order inside a single stroked, unfilled group.
func WriteSVG(w io.Writer, prims []joint.Primitive, opts Options) error {
	opts = opts.withDefaults()
	ew := &errWriter{w: w}
	canvas := svg.New(ew)
	canvas.Decimals = opts.Decimals

	b := Bounds(prims, opts.Margin)
	canvas.StartviewUnit(b.Width(), b.Height(), "mm", b.Min.X, b.Min.Y, b.Width(), b.Height())
	canvas.Title(svgTitle)
	canvas.Desc(svgDesc)
	canvas.Gstyle(fmt.Sprintf("fill:none;stroke:%s;stroke-width:%g", opts.Stroke, opts.StrokeWidth))
	for i, p := range prims {
		switch v := p.(type) {
		case joint.Rect:
			canvas.Rect(v.X, v.Y, v.W, v.H)
		case joint.Ellipse:
			c, rx, ry := v.Center()
			canvas.Ellipse(c.X, c.Y, rx, ry)
		default:
			return fmt.Errorf("export: primitive %d has unsupported type %T", i, p)
		}
	}
	canvas.Gend()
	canvas.End()

	if ew.err != nil {
		return fmt.Errorf("export: write svg: %w", ew.err)
	}
	return nil
}
