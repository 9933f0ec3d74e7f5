// Package app is the caller-facing boundary of the panel generator. It
// ties the script engine, the outline kernel and the exporters together
// and converts their results into JSON-friendly values.
package app

import (
	"errors"
	"fmt"
	"sync"

	"github.com/chazu/lasercut/pkg/design"
	"github.com/chazu/lasercut/pkg/engine"
	"github.com/chazu/lasercut/pkg/export"
	"github.com/chazu/lasercut/pkg/joint"
	"github.com/chazu/lasercut/pkg/kernel"
	"github.com/chazu/lasercut/pkg/kernel/sdfx"
	"github.com/chazu/lasercut/pkg/outline"
	"github.com/jbeda/geom"
)

// ErrNothingToExport is returned by Export before anything was generated.
var ErrNothingToExport = errors.New("nothing to export")

// App holds the engine, the kernel and the most recent drawing.
type App struct {
	engine *engine.Engine
	kernel kernel.Kernel

	mu       sync.Mutex
	outlines []*outline.Outline // last successful Generate or Evaluate
}

// PrimitiveData is the JSON form of one drawing primitive.
type PrimitiveData struct {
	Kind string  `json:"kind"` // "rect" or "ellipse"
	X    float64 `json:"x"`
	Y    float64 `json:"y"`
	W    float64 `json:"w"`
	H    float64 `json:"h"`
}

// ExtentData is a bounding box.
type ExtentData struct {
	MinX float64 `json:"minX"`
	MinY float64 `json:"minY"`
	MaxX float64 `json:"maxX"`
	MaxY float64 `json:"maxY"`
}

// PanelData is the generated outline of one panel.
type PanelData struct {
	Name       string          `json:"name"`
	Primitives []PrimitiveData `json:"primitives"`
	Extent     ExtentData      `json:"extent"`
}

// EvalErrorData is a script error or validation finding.
type EvalErrorData struct {
	Line    int    `json:"line"`
	Col     int    `json:"col"`
	Message string `json:"message"`
}

// EvalResult is the result of evaluating a design script.
type EvalResult struct {
	Panels   []PanelData     `json:"panels"`
	Errors   []EvalErrorData `json:"errors"`
	Warnings []EvalErrorData `json:"warnings"`
}

// GenerateResult is the result of generating a single shape.
type GenerateResult struct {
	Primitives []PrimitiveData `json:"primitives"`
	Error      string          `json:"error,omitempty"`
}

// NewApp creates a new App with an engine and the sdfx kernel.
func NewApp() *App {
	return &App{
		engine: engine.NewEngine(),
		kernel: sdfx.New(),
	}
}

// Generate builds one shape from params with its top-left corner at at.
// Nothing is drawn until this is called; a failed call leaves the previous
// drawing in place.
func (a *App) Generate(p joint.Params, at joint.Point) GenerateResult {
	result := GenerateResult{Primitives: []PrimitiveData{}}

	prims, err := joint.Generate(p, at)
	if err != nil {
		result.Error = err.Error()
		return result
	}
	Logger().Debug("generated shape", "shape", p.Shape, "joint", p.Joint, "primitives", len(prims))

	a.setOutlines([]*outline.Outline{a.shapeOutline(p.Shape.String(), prims)})

	result.Primitives = primitiveData(prims)
	return result
}

// shapeOutline wraps prims as one outline. When the kernel cannot merge
// them the outline keeps only its extent, which PanelAt then hit-tests.
func (a *App) shapeOutline(name string, prims []joint.Primitive) *outline.Outline {
	o := &outline.Outline{PanelName: name, Primitives: prims, Extent: outline.Bounds(prims)}
	r, err := kernel.Outline(a.kernel, prims)
	if err != nil {
		Logger().Debug("outline region unavailable", "shape", name, "err", err)
		return o
	}
	o.Region = r
	return o
}

// Evaluate runs a design script and returns the outline of every panel
// along with script errors and validation findings.
func (a *App) Evaluate(source string) EvalResult {
	result := EvalResult{
		Panels:   []PanelData{},
		Errors:   []EvalErrorData{},
		Warnings: []EvalErrorData{},
	}

	// Step 1: Evaluate the script into a design.
	Logger().Debug("evaluate start", "bytes", len(source))
	d, evalErrs, err := a.engine.Evaluate(source)
	if err != nil {
		// Fatal error (panic, timeout, superseded).
		Logger().Warn("evaluate failed", "err", err)
		result.Errors = append(result.Errors, EvalErrorData{Message: err.Error()})
		return result
	}
	if len(evalErrs) > 0 {
		for _, e := range evalErrs {
			result.Errors = append(result.Errors, EvalErrorData{Line: e.Line, Col: e.Col, Message: e.Message})
		}
		return result
	}

	// Step 2: Validate.
	vr := design.ValidateAll(d)
	for _, w := range vr.Warnings {
		result.Warnings = append(result.Warnings, EvalErrorData{Message: w.Message})
	}
	if !vr.OK() {
		for _, e := range vr.Errors {
			result.Errors = append(result.Errors, EvalErrorData{Message: e.Message})
		}
		return result
	}

	// Step 3: Build outlines.
	outlines, err := outline.Build(d, a.kernel)
	if err != nil {
		result.Errors = append(result.Errors, EvalErrorData{Message: "outline failed: " + err.Error()})
		return result
	}
	for _, ov := range outline.Overlaps(outlines) {
		result.Warnings = append(result.Warnings, EvalErrorData{
			Message: fmt.Sprintf("panels %q and %q overlap on the sheet", ov.A, ov.B),
		})
	}

	// Step 4: Convert to the JSON form.
	for _, o := range outlines {
		Logger().Debug("panel", "name", o.PanelName, "primitives", len(o.Primitives))
		result.Panels = append(result.Panels, PanelData{
			Name:       o.PanelName,
			Primitives: primitiveData(o.Primitives),
			Extent:     extentData(o.Extent),
		})
	}
	a.setOutlines(outlines)
	Logger().Debug("evaluate done", "panels", len(outlines), "warnings", len(result.Warnings))

	return result
}

// PanelAt returns the name of the topmost panel of the current drawing
// whose outline contains x,y. Later panels are drawn over earlier ones.
func (a *App) PanelAt(x, y float64) (string, bool) {
	a.mu.Lock()
	defer a.mu.Unlock()

	pt := joint.Point{X: x, Y: y}
	for i := len(a.outlines) - 1; i >= 0; i-- {
		o := a.outlines[i]
		if o.Region != nil {
			if o.Region.Contains(pt) {
				return o.PanelName, true
			}
			continue
		}
		if e := o.Extent; x >= e.Min.X && x <= e.Max.X && y >= e.Min.Y && y <= e.Max.Y {
			return o.PanelName, true
		}
	}
	return "", false
}

// Primitives returns the current drawing as one flat list in draw order.
func (a *App) Primitives() []joint.Primitive {
	a.mu.Lock()
	defer a.mu.Unlock()
	return outline.Flatten(a.outlines)
}

// Export writes the current drawing to path.
func (a *App) Export(path string, f export.Format, opts export.Options) error {
	prims := a.Primitives()
	if len(prims) == 0 {
		return ErrNothingToExport
	}
	Logger().Debug("export", "path", path, "format", f, "primitives", len(prims))
	return export.WriteFile(path, f, prims, opts)
}

func (a *App) setOutlines(outlines []*outline.Outline) {
	a.mu.Lock()
	a.outlines = outlines
	a.mu.Unlock()
}

func primitiveData(prims []joint.Primitive) []PrimitiveData {
	out := make([]PrimitiveData, 0, len(prims))
	for _, p := range prims {
		switch v := p.(type) {
		case joint.Rect:
			out = append(out, PrimitiveData{Kind: p.Kind().String(), X: v.X, Y: v.Y, W: v.W, H: v.H})
		case joint.Ellipse:
			out = append(out, PrimitiveData{Kind: p.Kind().String(), X: v.X, Y: v.Y, W: v.W, H: v.H})
		}
	}
	return out
}

func extentData(r geom.Rect) ExtentData {
	return ExtentData{MinX: r.Min.X, MinY: r.Min.Y, MaxX: r.Max.X, MaxY: r.Max.Y}
}
