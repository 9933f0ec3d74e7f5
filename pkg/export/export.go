// Package export serializes primitive lists to files a laser cutter's
// software can load.
package export

import (
	"fmt"
	"os"

	"github.com/chazu/lasercut/pkg/joint"
	"github.com/chazu/lasercut/pkg/preview"
)

// Options controls vector and raster output. Zero fields other than
// Margin take the defaults.
type Options struct {
	Margin      float64 // mm around the drawing
	Stroke      string  // SVG stroke color
	StrokeWidth float64 // mm for SVG, pixels for PNG
	Decimals    int     // SVG coordinate precision
	Scale       float64 // PNG pixels per mm
}

// DefaultOptions returns hairline black output with a 10mm margin.
func DefaultOptions() Options {
	return Options{Margin: 10, Stroke: "black", StrokeWidth: 0.1, Decimals: 3, Scale: 2}
}

func (o Options) withDefaults() Options {
	d := DefaultOptions()
	if o.Margin < 0 {
		o.Margin = 0
	}
	if o.Stroke == "" {
		o.Stroke = d.Stroke
	}
	if o.StrokeWidth <= 0 {
		o.StrokeWidth = d.StrokeWidth
	}
	if o.Decimals <= 0 {
		o.Decimals = d.Decimals
	}
	if o.Scale <= 0 {
		o.Scale = d.Scale
	}
	return o
}

func (o Options) preview() preview.Options {
	return preview.Options{Scale: o.Scale, Margin: o.Margin, StrokeWidth: o.StrokeWidth}
}

// WriteFile writes prims to path in format f.
func WriteFile(path string, f Format, prims []joint.Primitive, opts Options) (err error) {
	opts = opts.withDefaults()
	switch f {
	case FormatDXF:
		return WriteDXF(path, prims)
	case FormatSVG, FormatPNG:
	default:
		return fmt.Errorf("export: %w: %v", ErrUnknownFormat, f)
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("export: %w", err)
	}
	defer func() {
		if cerr := file.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("export: close %s: %w", path, cerr)
		}
	}()

	if f == FormatPNG {
		// A PNG stroke is in pixels; a hairline would vanish.
		po := opts.preview()
		if po.StrokeWidth < 1 {
			po.StrokeWidth = 1
		}
		return preview.WritePNG(file, prims, po)
	}
	return WriteSVG(file, prims, opts)
}
