package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/chazu/lasercut/pkg/app"
	"github.com/chazu/lasercut/pkg/export"
	"github.com/chazu/lasercut/pkg/joint"
)

func TestParseFlagsDefaults(t *testing.T) {
	opts, err := parseFlags(nil, io.Discard)
	if err != nil {
		t.Fatal(err)
	}
	if opts.params != joint.DefaultParams() {
		t.Errorf("params = %+v", opts.params)
	}
	if opts.at != joint.DefaultOrigin {
		t.Errorf("at = %+v", opts.at)
	}
	if opts.out != "-" || opts.format != export.FormatSVG {
		t.Errorf("out = %q format = %v", opts.out, opts.format)
	}
}

func TestParseFlags(t *testing.T) {
	tests := []struct {
		name      string
		args      []string
		wantUsage bool
		check     func(t *testing.T, o options)
	}{
		{
			name: "teeth panel",
			args: []string{"-joint", "teeth", "-width", "40", "-height", "30", "-thickness", "3", "-joint-length", "8"},
			check: func(t *testing.T, o options) {
				want := joint.Params{Shape: joint.ShapeRect, Joint: joint.JointTeeth, Width: 40, Height: 30, Thickness: 3, JointLength: 8}
				if o.params != want {
					t.Errorf("params = %+v", o.params)
				}
			},
		},
		{
			name: "blank numbers keep defaults",
			args: []string{"-width", "", "-x", "  "},
			check: func(t *testing.T, o options) {
				if o.params.Width != joint.DefaultWidth || o.at.X != joint.DefaultOrigin.X {
					t.Errorf("params = %+v at = %+v", o.params, o.at)
				}
			},
		},
		{
			name: "format from extension",
			args: []string{"-o", "panel.dxf"},
			check: func(t *testing.T, o options) {
				if o.format != export.FormatDXF {
					t.Errorf("format = %v", o.format)
				}
			},
		},
		{
			name: "explicit format wins",
			args: []string{"-o", "panel.out", "-format", "png"},
			check: func(t *testing.T, o options) {
				if o.format != export.FormatPNG {
					t.Errorf("format = %v", o.format)
				}
			},
		},
		{name: "non-numeric width", args: []string{"-width", "wide"}, wantUsage: true},
		{name: "NaN origin", args: []string{"-x", "NaN"}, wantUsage: true},
		{name: "infinite origin", args: []string{"-y", "Inf"}, wantUsage: true},
		{name: "negative infinite width", args: []string{"-width", "-Inf"}, wantUsage: true},
		{name: "huge joint count", args: []string{"-joint", "teeth", "-width", "1e12", "-joint-length", "1e-3"}, check: func(t *testing.T, o options) {
			if err := run(o, io.Discard); err == nil || !strings.Contains(err.Error(), "tabs") {
				t.Errorf("run: expected tab limit error, got %v", err)
			}
		}},
		{name: "unknown shape", args: []string{"-shape", "hexagon"}, wantUsage: true},
		{name: "unknown joint", args: []string{"-joint", "dovetail"}, wantUsage: true},
		{name: "unknown extension", args: []string{"-o", "panel.pdf"}, wantUsage: true},
		{name: "png to stdout", args: []string{"-format", "png"}, wantUsage: true},
		{name: "stray argument", args: []string{"box.svg"}, wantUsage: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts, err := parseFlags(tt.args, io.Discard)
			if tt.wantUsage {
				if !errors.Is(err, errUsage) {
					t.Fatalf("expected usage error, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatal(err)
			}
			tt.check(t, opts)
		})
	}
}

func TestRunStdoutSVG(t *testing.T) {
	opts, err := parseFlags([]string{"-joint", "teeth", "-width", "40", "-height", "40"}, io.Discard)
	if err != nil {
		t.Fatal(err)
	}
	var buf bytes.Buffer
	if err := run(opts, &buf); err != nil {
		t.Fatal(err)
	}
	if n := strings.Count(buf.String(), "<rect "); n != 17 {
		t.Errorf("rect count = %d, want 17", n)
	}
}

func TestRunInvalidGeometry(t *testing.T) {
	opts, err := parseFlags([]string{"-joint", "slot", "-joint-length", "0"}, io.Discard)
	if err != nil {
		t.Fatal(err)
	}
	if err := run(opts, io.Discard); err == nil {
		t.Fatal("expected error for zero joint length")
	}
}

func TestRunScript(t *testing.T) {
	dir := t.TempDir()
	out := filepath.Join(dir, "box.dxf")
	opts, err := parseFlags([]string{"-script", "../../examples/box.lasercut", "-o", out}, io.Discard)
	if err != nil {
		t.Fatal(err)
	}
	if err := run(opts, io.Discard); err != nil {
		t.Fatal(err)
	}
	if info, err := os.Stat(out); err != nil || info.Size() == 0 {
		t.Fatalf("expected non-empty %s: %v", out, err)
	}
}

func TestRunScriptJSON(t *testing.T) {
	script := filepath.Join(t.TempDir(), "bad.lasercut")
	if err := os.WriteFile(script, []byte(`(panel "a" :joint :teeth :joint-length 0)`), 0o644); err != nil {
		t.Fatal(err)
	}
	opts, err := parseFlags([]string{"-script", script, "-json"}, io.Discard)
	if err != nil {
		t.Fatal(err)
	}
	var buf bytes.Buffer
	if err := run(opts, &buf); err != nil {
		t.Fatal(err)
	}
	var result app.EvalResult
	if err := json.Unmarshal(buf.Bytes(), &result); err != nil {
		t.Fatalf("invalid json: %v\n%s", err, buf.String())
	}
	if len(result.Errors) != 1 || len(result.Panels) != 0 {
		t.Errorf("result = %+v", result)
	}
}

func TestRunMissingScript(t *testing.T) {
	opts, err := parseFlags([]string{"-script", filepath.Join(t.TempDir(), "nope.lasercut")}, io.Discard)
	if err != nil {
		t.Fatal(err)
	}
	if err := run(opts, io.Discard); err == nil {
		t.Fatal("expected error for missing script")
	}
}
