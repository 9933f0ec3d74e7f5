// Package preview rasterizes a primitive list the way the interactive
// canvas shows it: every shape stroked with the same pen, nothing filled.
package preview

import (
	"fmt"
	"io"
	"math"

	"github.com/chazu/lasercut/pkg/joint"
	"github.com/chazu/lasercut/pkg/outline"
	"github.com/gogpu/gg"
)

// MaxPixels caps either side of the canvas.
const MaxPixels = 8192

// Options controls rasterization. A zero Scale or StrokeWidth takes the
// default; a zero Margin means none.
type Options struct {
	Scale       float64 // pixels per millimetre
	Margin      float64 // millimetres around the drawing
	StrokeWidth float64 // pixels
}

// DefaultOptions returns a 2px/mm canvas with a 10mm margin and a 1px pen.
func DefaultOptions() Options {
	return Options{Scale: 2, Margin: 10, StrokeWidth: 1}
}

func (o Options) withDefaults() Options {
	d := DefaultOptions()
	if o.Scale <= 0 {
		o.Scale = d.Scale
	}
	if o.Margin < 0 {
		o.Margin = 0
	}
	if o.StrokeWidth <= 0 {
		o.StrokeWidth = d.StrokeWidth
	}
	return o
}

// Render draws prims in order onto a white canvas sized to their bounds
// plus the margin. The caller owns the returned context and must Close it.
func Render(prims []joint.Primitive, opts Options) (*gg.Context, error) {
	opts = opts.withDefaults()
	b := outline.Bounds(prims)

	w := int(math.Ceil((b.Width() + 2*opts.Margin) * opts.Scale))
	h := int(math.Ceil((b.Height() + 2*opts.Margin) * opts.Scale))
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}
	if w > MaxPixels || h > MaxPixels {
		return nil, fmt.Errorf("preview: canvas %dx%d exceeds %d pixels", w, h, MaxPixels)
	}

	// Maps sheet millimetres to canvas pixels.
	px := func(x float64) float64 { return (x - b.Min.X + opts.Margin) * opts.Scale }
	py := func(y float64) float64 { return (y - b.Min.Y + opts.Margin) * opts.Scale }

	dc := gg.NewContext(w, h)
	dc.ClearWithColor(gg.White)
	dc.SetRGB(0, 0, 0)
	dc.SetLineWidth(opts.StrokeWidth)

	for i, p := range prims {
		switch v := p.(type) {
		case joint.Rect:
			dc.DrawRectangle(px(v.X), py(v.Y), v.W*opts.Scale, v.H*opts.Scale)
		case joint.Ellipse:
			c, rx, ry := v.Center()
			dc.DrawEllipse(px(c.X), py(c.Y), rx*opts.Scale, ry*opts.Scale)
		default:
			dc.Close()
			return nil, fmt.Errorf("preview: primitive %d has unsupported type %T", i, p)
		}
		if err := dc.Stroke(); err != nil {
			dc.Close()
			return nil, fmt.Errorf("preview: stroke primitive %d: %w", i, err)
		}
	}
	return dc, nil
}

// WritePNG renders prims and encodes the result as PNG.
func WritePNG(w io.Writer, prims []joint.Primitive, opts Options) error {
	dc, err := Render(prims, opts)
	if err != nil {
		return err
	}
	defer dc.Close()
	if err := dc.EncodePNG(w); err != nil {
		return fmt.Errorf("preview: encode png: %w", err)
	}
	return nil
}
