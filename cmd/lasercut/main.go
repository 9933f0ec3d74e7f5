// Command lasercut generates laser-cut panel outlines, either a single
// shape described by flags or every panel of a design script.
package main

import (
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/chazu/lasercut/pkg/app"
	"github.com/chazu/lasercut/pkg/export"
	"github.com/chazu/lasercut/pkg/joint"
)

// errUsage marks errors caused by bad flags rather than bad geometry.
var errUsage = errors.New("usage")

type options struct {
	params  joint.Params
	at      joint.Point
	script  string
	out     string
	format  export.Format
	export  export.Options
	json    bool
	verbose bool
}

func main() {
	opts, err := parseFlags(os.Args[1:], os.Stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			os.Exit(0)
		}
		fmt.Fprintf(os.Stderr, "lasercut: %v\n", err)
		os.Exit(2)
	}

	level := slog.LevelInfo
	if opts.verbose {
		level = slog.LevelDebug
	}
	app.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	if err := run(opts, os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "lasercut: %v\n", err)
		os.Exit(1)
	}
}

// numberFlag parses a numeric text field: empty keeps def, anything else
// must parse as a finite number.
func numberFlag(name, s string, def float64) (float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return def, nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: -%s: %q is not a number", errUsage, name, s)
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("%w: -%s: %q is not a finite number", errUsage, name, s)
	}
	return v, nil
}

func parseFlags(args []string, stderr io.Writer) (options, error) {
	var opts options
	fs := flag.NewFlagSet("lasercut", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() {
		fmt.Fprintf(fs.Output(), "Usage: lasercut [flags]\n       lasercut -script box.lasercut -o box.svg\n")
		fs.PrintDefaults()
	}

	shape := fs.String("shape", "rect", "Shape: rect or ellipse")
	jointName := fs.String("joint", "none", "Joint style for rectangles: none, slot or teeth")
	width := fs.String("width", "", "Width in mm (default 100)")
	height := fs.String("height", "", "Height in mm (default 100)")
	thickness := fs.String("thickness", "", "Material thickness in mm (default 5)")
	jointLength := fs.String("joint-length", "", "Tooth/slot length in mm (default 10)")
	x := fs.String("x", "", "Left edge in mm (default 50)")
	y := fs.String("y", "", "Top edge in mm (default 50)")
	script := fs.String("script", "", "Design script; exports every panel")
	out := fs.String("o", "-", "Output file, or - for SVG on stdout")
	format := fs.String("format", "", "Output format: svg, dxf or png (default from -o)")
	scale := fs.Float64("scale", 2, "PNG pixels per mm")
	stroke := fs.Float64("stroke", 0, "Stroke width: mm for SVG, pixels for PNG")
	jsonOut := fs.Bool("json", false, "Print panels, errors and warnings as JSON instead of exporting")
	verbose := fs.Bool("v", false, "Debug logging")

	if err := fs.Parse(args); err != nil {
		return options{}, err
	}
	if fs.NArg() > 0 {
		fs.Usage()
		return options{}, fmt.Errorf("%w: unexpected argument %q", errUsage, fs.Arg(0))
	}

	var err error
	p := joint.DefaultParams()
	if p.Shape, err = joint.ParseShapeKind(*shape); err != nil {
		return options{}, fmt.Errorf("%w: -shape: %v", errUsage, err)
	}
	if p.Joint, err = joint.ParseJointKind(*jointName); err != nil {
		return options{}, fmt.Errorf("%w: -joint: %v", errUsage, err)
	}
	numbers := []struct {
		name string
		val  string
		dst  *float64
		def  float64
	}{
		{"width", *width, &p.Width, joint.DefaultWidth},
		{"height", *height, &p.Height, joint.DefaultHeight},
		{"thickness", *thickness, &p.Thickness, joint.DefaultThickness},
		{"joint-length", *jointLength, &p.JointLength, joint.DefaultJointLength},
		{"x", *x, &opts.at.X, joint.DefaultOrigin.X},
		{"y", *y, &opts.at.Y, joint.DefaultOrigin.Y},
	}
	for _, n := range numbers {
		if *n.dst, err = numberFlag(n.name, n.val, n.def); err != nil {
			return options{}, err
		}
	}
	opts.params = p

	opts.out = *out
	switch {
	case *format != "":
		opts.format, err = export.ParseFormat(*format)
	case opts.out == "-":
		opts.format = export.FormatSVG
	default:
		opts.format, err = export.FormatFromPath(opts.out)
	}
	if err != nil {
		return options{}, fmt.Errorf("%w: %v", errUsage, err)
	}
	if opts.out == "-" && opts.format != export.FormatSVG && !*jsonOut {
		return options{}, fmt.Errorf("%w: only svg can be written to stdout", errUsage)
	}

	opts.script = *script
	opts.export = export.DefaultOptions()
	opts.export.Scale = *scale
	if *stroke > 0 {
		opts.export.StrokeWidth = *stroke
	}
	opts.json = *jsonOut
	opts.verbose = *verbose
	return opts, nil
}

func run(opts options, stdout io.Writer) error {
	a := app.NewApp()

	if opts.script != "" {
		source, err := os.ReadFile(opts.script)
		if err != nil {
			return fmt.Errorf("read script: %w", err)
		}
		result := a.Evaluate(string(source))
		for _, w := range result.Warnings {
			app.Logger().Warn(w.Message)
		}
		if opts.json {
			return emit(stdout, result)
		}
		if len(result.Errors) > 0 {
			for _, e := range result.Errors {
				app.Logger().Error(e.Message, "line", e.Line)
			}
			return fmt.Errorf("%s: %d error(s), first: %s", opts.script, len(result.Errors), result.Errors[0].Message)
		}
	} else {
		result := a.Generate(opts.params, opts.at)
		if opts.json {
			return emit(stdout, result)
		}
		if result.Error != "" {
			return errors.New(result.Error)
		}
	}

	if opts.out == "-" {
		return export.WriteSVG(stdout, a.Primitives(), opts.export)
	}
	if err := a.Export(opts.out, opts.format, opts.export); err != nil {
		return err
	}
	app.Logger().Info("wrote", "path", opts.out, "format", opts.format)
	return nil
}

func emit(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
