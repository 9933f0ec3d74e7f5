package engine

import (
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/chazu/lasercut/pkg/joint"
)

const lidScript = `
(panel "lid" :joint :teeth :width 40 :height 30 :thickness 5 :joint-length 10
       :at (vec2 10 20))
`

func TestEvaluatePanelScript(t *testing.T) {
	eng := NewEngine()

	d, evalErrs, err := eng.Evaluate(lidScript)
	if err != nil {
		t.Fatalf("unexpected fatal error: %v", err)
	}
	if len(evalErrs) > 0 {
		t.Fatalf("unexpected eval errors: %v", evalErrs)
	}
	if d.PanelCount() != 1 {
		t.Fatalf("expected 1 panel, got %d", d.PanelCount())
	}
	lid := d.MustLookup("lid")
	want := joint.Params{Shape: joint.ShapeRect, Joint: joint.JointTeeth, Width: 40, Height: 30, Thickness: 5, JointLength: 10}
	if lid.Params != want {
		t.Errorf("params = %+v, want %+v", lid.Params, want)
	}
	if lid.Origin != (joint.Point{X: 10, Y: 20}) {
		t.Errorf("origin = %+v", lid.Origin)
	}
	if d.Version != 1 {
		t.Errorf("version = %d, want 1", d.Version)
	}
}

func TestEvaluateVersionTracksGeneration(t *testing.T) {
	eng := NewEngine()

	for want := uint64(1); want <= 3; want++ {
		d, evalErrs, err := eng.Evaluate(lidScript)
		if err != nil || len(evalErrs) > 0 {
			t.Fatalf("evaluation %d: err=%v evalErrs=%v", want, err, evalErrs)
		}
		if d.Version != want {
			t.Errorf("evaluation %d: version = %d", want, d.Version)
		}
		if d.PanelCount() != 1 {
			t.Errorf("evaluation %d: %d panels, want a fresh design with 1", want, d.PanelCount())
		}
	}
}

func TestEvaluateDuplicatePanelDiscardsDesign(t *testing.T) {
	eng := NewEngine()

	d, evalErrs, err := eng.Evaluate(`
(panel "side" :width 40)
(panel "side" :width 50)
`)
	if err != nil {
		t.Fatalf("expected non-fatal eval error, got fatal: %v", err)
	}
	if d != nil {
		t.Fatalf("expected nil design, got %d panels", d.PanelCount())
	}
	if len(evalErrs) == 0 {
		t.Fatal("expected an eval error for the duplicate name")
	}
	if !strings.Contains(evalErrs[0].Error(), `"side" already defined`) {
		t.Errorf("error = %q", evalErrs[0].Error())
	}
}

func TestEvaluateSyntaxErrorHasLineInfo(t *testing.T) {
	eng := NewEngine()

	d, evalErrs, err := eng.Evaluate("(panel \"a\")\n(panel \"b\"")
	if err != nil {
		t.Fatalf("expected non-fatal eval error, got fatal: %v", err)
	}
	if d != nil {
		t.Fatal("expected nil design on syntax error")
	}
	if len(evalErrs) == 0 || evalErrs[0].Message == "" {
		t.Fatalf("expected a populated eval error, got %v", evalErrs)
	}
	if evalErrs[0].Line > 0 && !strings.HasPrefix(evalErrs[0].Error(), "line ") {
		t.Errorf("error with line %d should lead with it: %q", evalErrs[0].Line, evalErrs[0].Error())
	}
}

func TestEvaluateSupersededResultDiscarded(t *testing.T) {
	eng := NewEngine()
	for i := 0; i < 2; i++ {
		if _, _, err := eng.Evaluate(lidScript); err != nil {
			t.Fatal(err)
		}
	}

	// A result computed for generation 1 arrives after generation 2 started.
	stale, _, err := evaluate(lidScript, 1)
	if err != nil {
		t.Fatal(err)
	}
	ch := make(chan evalResult, 1)
	ch <- evalResult{design: stale}

	d, _, err := waitWithTimeout(ch, 1, &eng.mu, &eng.generation)
	if !errors.Is(err, ErrSuperseded) {
		t.Fatalf("expected ErrSuperseded, got: %v", err)
	}
	if d != nil {
		t.Error("superseded evaluation should not deliver a design")
	}

	current, _, err := evaluate(lidScript, 2)
	if err != nil {
		t.Fatal(err)
	}
	ch <- evalResult{design: current}
	d, _, err = waitWithTimeout(ch, 2, &eng.mu, &eng.generation)
	if err != nil {
		t.Fatalf("current generation: %v", err)
	}
	if d == nil || d.Version != 2 {
		t.Errorf("current generation design = %+v", d)
	}
}

func TestEvaluateTimeout(t *testing.T) {
	// A channel that never sends stands in for a runaway script.
	var mu sync.Mutex
	var gen uint64 = 1
	ch := make(chan evalResult)

	start := time.Now()
	_, _, err := waitFor(ch, 1, &mu, &gen, 50*time.Millisecond)
	if err == nil || !strings.Contains(err.Error(), "timed out") {
		t.Fatalf("expected timeout error, got: %v", err)
	}
	if elapsed := time.Since(start); elapsed > 2*time.Second {
		t.Errorf("timeout took %s", elapsed)
	}
}

func TestEvalErrorString(t *testing.T) {
	tests := []struct {
		err  EvalError
		want string
	}{
		{EvalError{Line: 5, Message: "part: no panel named \"lid\""}, "line 5: part: no panel named \"lid\""},
		{EvalError{Message: "no location"}, "no location"},
	}
	for _, tt := range tests {
		if got := tt.err.Error(); got != tt.want {
			t.Errorf("Error() = %q, want %q", got, tt.want)
		}
	}
}

func TestParseZygomysError(t *testing.T) {
	tests := []struct {
		name     string
		msg      string
		wantLine int
		wantMsg  string
	}{
		{"error on line", "Error on line 5: unexpected token\n", 5, "unexpected token"},
		{"lowercase", "error on line 12: missing paren", 12, "missing paren"},
		{"short form", "line 3: panel: \"a\" already defined", 3, "already defined"},
		{"no line info", "some generic error", 0, "some generic error"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			errs := parseZygomysError(errors.New(tt.msg))
			if len(errs) != 1 {
				t.Fatalf("expected one error, got %v", errs)
			}
			if errs[0].Line != tt.wantLine {
				t.Errorf("line = %d, want %d", errs[0].Line, tt.wantLine)
			}
			if !strings.Contains(errs[0].Message, tt.wantMsg) {
				t.Errorf("message = %q, want containing %q", errs[0].Message, tt.wantMsg)
			}
		})
	}
}
