package joint

import (
	"errors"
	"math"
	"testing"
)

const eps = 1e-9

func approx(a, b float64) bool {
	return math.Abs(a-b) < eps
}

func TestTabCount(t *testing.T) {
	tests := []struct {
		name        string
		length      float64
		jointLength float64
		want        int
	}{
		{"exact multiple", 40, 10, 4},
		{"remainder dropped", 45, 10, 4},
		{"shorter than one joint", 5, 10, 1},
		{"zero length", 0, 10, 1},
		{"fractional joint", 10, 2.5, 4},
		{"default panel", 100, 10, 10},
		{"capped at limit", 1e19, 1, MaxTabs},
		{"infinite quotient capped", 1e300, 1e-300, MaxTabs},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := TabCount(tt.length, tt.jointLength); got != tt.want {
				t.Errorf("TabCount(%g, %g) = %d, want %d", tt.length, tt.jointLength, got, tt.want)
			}
		})
	}
}

func TestPadding(t *testing.T) {
	tests := []struct {
		length, jointLength, want float64
	}{
		{40, 10, 0},
		{45, 10, 2.5},
		{5, 10, -2.5},
		{0, 10, -5},
	}
	for _, tt := range tests {
		if got := Padding(tt.length, tt.jointLength); !approx(got, tt.want) {
			t.Errorf("Padding(%g, %g) = %g, want %g", tt.length, tt.jointLength, got, tt.want)
		}
	}
}

func TestLayoutEdgeCountAndSize(t *testing.T) {
	for _, length := range []float64{1, 9.99, 10, 25, 37.5, 100, 333} {
		for _, jl := range []float64{0.5, 3, 10, 12.5} {
			e := Edge{Start: Point{X: 7, Y: 11}, Length: length, Orientation: Horizontal}
			tabs, err := LayoutEdge(e, jl, 4)
			if err != nil {
				t.Fatalf("LayoutEdge(len=%g, jl=%g): %v", length, jl, err)
			}
			want := int(math.Max(1, math.Floor(length/jl)))
			if len(tabs) != want {
				t.Errorf("len=%g jl=%g: got %d tabs, want %d", length, jl, len(tabs), want)
			}
			for i, r := range tabs {
				if !approx(r.W, jl) || !approx(r.H, 4) {
					t.Errorf("len=%g jl=%g: tab %d is %gx%g, want %gx4", length, jl, i, r.W, r.H, jl)
				}
			}
		}
	}
}

func TestLayoutEdgeCentered(t *testing.T) {
	for _, length := range []float64{5, 40, 45, 99.5} {
		e := Edge{Start: Point{X: 0, Y: 0}, Length: length, Orientation: Horizontal}
		tabs, err := LayoutEdge(e, 10, 2)
		if err != nil {
			t.Fatal(err)
		}
		first := tabs[0].X
		last := tabs[len(tabs)-1].X
		if trailing := length - (last + 10); !approx(first, trailing) {
			t.Errorf("length %g: leading gap %g != trailing gap %g", length, first, trailing)
		}
		for i := 1; i < len(tabs); i++ {
			if !approx(tabs[i].X-tabs[i-1].X, 10) {
				t.Errorf("length %g: tabs %d and %d are not adjacent", length, i-1, i)
			}
		}
	}
}

func TestLayoutEdgeFlip(t *testing.T) {
	start := Point{X: 10, Y: 20}

	tests := []struct {
		name   string
		edge   Edge
		checkX bool
		want   float64
	}{
		{"horizontal", Edge{Start: start, Length: 50, Orientation: Horizontal}, false, 20},
		{"horizontal flipped", Edge{Start: start, Length: 50, Orientation: Horizontal, Flip: true}, false, 17},
		{"vertical", Edge{Start: start, Length: 50, Orientation: Vertical}, true, 10},
		{"vertical flipped", Edge{Start: start, Length: 50, Orientation: Vertical, Flip: true}, true, 7},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tabs, err := LayoutEdge(tt.edge, 10, 3)
			if err != nil {
				t.Fatal(err)
			}
			for i, r := range tabs {
				got := r.Y
				if tt.checkX {
					got = r.X
				}
				if !approx(got, tt.want) {
					t.Errorf("tab %d: fixed coordinate %g, want %g", i, got, tt.want)
				}
			}
		})
	}
}

func TestLayoutEdgeVerticalAdvancesAlongY(t *testing.T) {
	e := Edge{Start: Point{X: 0, Y: 100}, Length: 30, Orientation: Vertical}
	tabs, err := LayoutEdge(e, 10, 5)
	if err != nil {
		t.Fatal(err)
	}
	want := []Rect{
		{X: 0, Y: 100, W: 5, H: 10},
		{X: 0, Y: 110, W: 5, H: 10},
		{X: 0, Y: 120, W: 5, H: 10},
	}
	if len(tabs) != len(want) {
		t.Fatalf("got %d tabs, want %d", len(tabs), len(want))
	}
	for i := range want {
		if tabs[i] != want[i] {
			t.Errorf("tab %d = %+v, want %+v", i, tabs[i], want[i])
		}
	}
}

func TestLayoutEdgeRejectsBadJointLength(t *testing.T) {
	e := Edge{Length: 40}
	for _, jl := range []float64{0, -1, math.NaN(), math.Inf(1)} {
		tabs, err := LayoutEdge(e, jl, 5)
		if !errors.Is(err, ErrInvalidParameter) {
			t.Errorf("jointLength %g: expected ErrInvalidParameter, got %v", jl, err)
		}
		if tabs != nil {
			t.Errorf("jointLength %g: expected no tabs, got %d", jl, len(tabs))
		}
	}
}

func TestLayoutEdgeRejectsNegativeInputs(t *testing.T) {
	if _, err := LayoutEdge(Edge{Length: -10}, 5, 1); !errors.Is(err, ErrInvalidParameter) {
		t.Errorf("negative length: expected ErrInvalidParameter, got %v", err)
	}
	if _, err := LayoutEdge(Edge{Length: 10}, 5, -1); !errors.Is(err, ErrInvalidParameter) {
		t.Errorf("negative thickness: expected ErrInvalidParameter, got %v", err)
	}
}

func TestLayoutEdgeRejectsTooManyTabs(t *testing.T) {
	tests := []struct {
		name       string
		length, jl float64
	}{
		{"beyond int range", 1e19, 1},
		{"tiny joint length", 1e12, 1e-3},
		{"one over the limit", MaxTabs + 1, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tabs, err := LayoutEdge(Edge{Length: tt.length}, tt.jl, 1)
			if !errors.Is(err, ErrInvalidParameter) {
				t.Fatalf("expected ErrInvalidParameter, got %v", err)
			}
			if tabs != nil {
				t.Errorf("expected no tabs, got %d", len(tabs))
			}
		})
	}
}

func TestLayoutEdgeAtTabLimit(t *testing.T) {
	tabs, err := LayoutEdge(Edge{Length: MaxTabs}, 1, 1)
	if err != nil {
		t.Fatal(err)
	}
	if len(tabs) != MaxTabs {
		t.Errorf("got %d tabs, want %d", len(tabs), MaxTabs)
	}
}

func TestParamErrorMessage(t *testing.T) {
	_, err := LayoutEdge(Edge{Length: 10}, 0, 1)
	var pe *ParamError
	if !errors.As(err, &pe) {
		t.Fatalf("expected *ParamError, got %T", err)
	}
	if pe.Field != "joint length" {
		t.Errorf("Field = %q, want %q", pe.Field, "joint length")
	}
	if got := err.Error(); got != "invalid parameter: joint length is 0, must be positive" {
		t.Errorf("unexpected message %q", got)
	}
}
