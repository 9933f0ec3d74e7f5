package engine

import (
	"fmt"
	"strings"

	"github.com/chazu/lasercut/pkg/design"
	"github.com/chazu/lasercut/pkg/joint"
	zygo "github.com/glycerine/zygomys/zygo"
)

// ---------------------------------------------------------------------------
// Sexp wrappers for Go values passed between builtins
// ---------------------------------------------------------------------------

type sexpMaterial struct {
	spec design.MaterialSpec
}

func (m *sexpMaterial) SexpString(ps *zygo.PrintState) string {
	return fmt.Sprintf("(material :name %q :thickness %g)", m.spec.Name, m.spec.Thickness)
}
func (m *sexpMaterial) Type() *zygo.RegisteredType { return nil }

type sexpVec2 struct {
	p joint.Point
}

func (v *sexpVec2) SexpString(ps *zygo.PrintState) string {
	return fmt.Sprintf("(vec2 %.1f %.1f)", v.p.X, v.p.Y)
}
func (v *sexpVec2) Type() *zygo.RegisteredType { return nil }

// sexpPanelRef is what (panel ...) and (part ...) return.
type sexpPanelRef struct {
	id   design.PanelID
	name string
}

func (r *sexpPanelRef) SexpString(ps *zygo.PrintState) string {
	return fmt.Sprintf("(panelref %q)", r.name)
}
func (r *sexpPanelRef) Type() *zygo.RegisteredType { return nil }

// ---------------------------------------------------------------------------
// Argument parsing
// ---------------------------------------------------------------------------

// isKW returns the keyword name if s is a preprocessed keyword.
func isKW(s zygo.Sexp) (string, bool) {
	str, ok := s.(*zygo.SexpStr)
	if !ok || !strings.HasPrefix(str.S, kwPrefix) {
		return "", false
	}
	return str.S[len(kwPrefix):], true
}

type kwArgs struct {
	kw         map[string]zygo.Sexp
	positional []zygo.Sexp
}

// parseArgs splits args into keyword and positional arguments.
func parseArgs(args []zygo.Sexp) kwArgs {
	result := kwArgs{kw: make(map[string]zygo.Sexp)}
	for i := 0; i < len(args); i++ {
		name, ok := isKW(args[i])
		if !ok {
			result.positional = append(result.positional, args[i])
			continue
		}
		if i+1 < len(args) {
			result.kw[name] = args[i+1]
			i++
		} else {
			result.kw[name] = zygo.SexpNull
		}
	}
	return result
}

// float reads keyword name into *dst when present.
func (a kwArgs) float(name string, dst *float64) error {
	v, ok := a.kw[name]
	if !ok {
		return nil
	}
	f, err := toFloat64(v)
	if err != nil {
		return fmt.Errorf("%s: %w", name, err)
	}
	*dst = f
	return nil
}

// kinds reads :shape and :joint into p when present.
func (a kwArgs) kinds(p *joint.Params) error {
	if v, ok := a.kw["shape"]; ok {
		s, err := toKeywordString(v)
		if err != nil {
			return fmt.Errorf("shape: %w", err)
		}
		if p.Shape, err = joint.ParseShapeKind(s); err != nil {
			return err
		}
	}
	if v, ok := a.kw["joint"]; ok {
		s, err := toKeywordString(v)
		if err != nil {
			return fmt.Errorf("joint: %w", err)
		}
		if p.Joint, err = joint.ParseJointKind(s); err != nil {
			return err
		}
	}
	return nil
}

// dims reads the numeric panel fields into p when present.
func (a kwArgs) dims(p *joint.Params) error {
	for _, f := range []struct {
		name string
		dst  *float64
	}{
		{"width", &p.Width},
		{"height", &p.Height},
		{"thickness", &p.Thickness},
		{"joint-length", &p.JointLength},
	} {
		if err := a.float(f.name, f.dst); err != nil {
			return err
		}
	}
	return nil
}

func toFloat64(s zygo.Sexp) (float64, error) {
	switch v := s.(type) {
	case *zygo.SexpInt:
		return float64(v.Val), nil
	case *zygo.SexpFloat:
		return v.Val, nil
	}
	return 0, fmt.Errorf("expected number, got %T (%s)", s, s.SexpString(nil))
}

func toString(s zygo.Sexp) (string, error) {
	if str, ok := s.(*zygo.SexpStr); ok {
		return str.S, nil
	}
	return "", fmt.Errorf("expected string, got %T (%s)", s, s.SexpString(nil))
}

// toKeywordString accepts a keyword (:teeth) or a plain string ("teeth").
func toKeywordString(s zygo.Sexp) (string, error) {
	str, ok := s.(*zygo.SexpStr)
	if !ok {
		return "", fmt.Errorf("expected keyword or string, got %T (%s)", s, s.SexpString(nil))
	}
	return strings.TrimPrefix(str.S, kwPrefix), nil
}

func toVec2(s zygo.Sexp) (joint.Point, error) {
	if v, ok := s.(*sexpVec2); ok {
		return v.p, nil
	}
	return joint.Point{}, fmt.Errorf("expected vec2, got %T (%s)", s, s.SexpString(nil))
}

func toMaterial(s zygo.Sexp) (design.MaterialSpec, error) {
	if m, ok := s.(*sexpMaterial); ok {
		return m.spec, nil
	}
	return design.MaterialSpec{}, fmt.Errorf("expected material, got %T (%s)", s, s.SexpString(nil))
}

// ---------------------------------------------------------------------------
// Builtin registration
// ---------------------------------------------------------------------------

// registerBuiltins installs the panel DSL into env. Builtins append to d
// as the script runs. Source must go through preprocessSource first.
func registerBuiltins(env *zygo.Zlisp, d *design.Design) {
	// Script-wide defaults, changed by (defaults ...).
	base := joint.DefaultParams()

	// (material :name "birch-ply" :thickness 3 :notes "...")
	env.AddFunction("material", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		pa := parseArgs(args)
		spec := design.MaterialSpec{}

		if v, ok := pa.kw["name"]; ok {
			s, err := toString(v)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("material: name: %w", err)
			}
			spec.Name = s
		}
		if err := pa.float("thickness", &spec.Thickness); err != nil {
			return zygo.SexpNull, fmt.Errorf("material: %w", err)
		}
		if v, ok := pa.kw["notes"]; ok {
			s, err := toString(v)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("material: notes: %w", err)
			}
			spec.Notes = s
		}

		d.AddMaterial(spec)
		return &sexpMaterial{spec: spec}, nil
	})

	// (vec2 50 50)
	env.AddFunction("vec2", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) != 2 {
			return zygo.SexpNull, fmt.Errorf("vec2 requires exactly 2 arguments, got %d", len(args))
		}
		x, err := toFloat64(args[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("vec2: x: %w", err)
		}
		y, err := toFloat64(args[1])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("vec2: y: %w", err)
		}
		return &sexpVec2{p: joint.Point{X: x, Y: y}}, nil
	})

	// (defaults :thickness 3 :joint-length 8 :joint :teeth)
	env.AddFunction("defaults", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		pa := parseArgs(args)
		next := base
		if err := pa.kinds(&next); err != nil {
			return zygo.SexpNull, fmt.Errorf("defaults: %w", err)
		}
		if err := pa.dims(&next); err != nil {
			return zygo.SexpNull, fmt.Errorf("defaults: %w", err)
		}
		base = next
		return zygo.SexpNull, nil
	})

	// (panel "front" :shape :rect :joint :teeth :width 100 :height 60
	//        :thickness 3 :joint-length 10 :at (vec2 0 0) :material ply)
	//
	// Unset fields come from the material (thickness only), then from
	// (defaults ...), then from the package defaults.
	env.AddFunction("panel", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		pa := parseArgs(args)
		if len(pa.positional) < 1 {
			return zygo.SexpNull, fmt.Errorf("panel requires a name as first argument")
		}
		panelName, err := toString(pa.positional[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("panel: name: %w", err)
		}
		if d.Lookup(panelName) != nil {
			return zygo.SexpNull, fmt.Errorf("panel: %q already defined", panelName)
		}

		p := &design.Panel{Name: panelName, Params: base, Origin: joint.DefaultOrigin}

		if v, ok := pa.kw["material"]; ok {
			m, err := toMaterial(v)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("panel %q: material: %w", panelName, err)
			}
			p.Material = m
			if m.Thickness > 0 {
				p.Params.Thickness = m.Thickness
			}
		}
		if err := pa.kinds(&p.Params); err != nil {
			return zygo.SexpNull, fmt.Errorf("panel %q: %w", panelName, err)
		}
		if err := pa.dims(&p.Params); err != nil {
			return zygo.SexpNull, fmt.Errorf("panel %q: %w", panelName, err)
		}
		if v, ok := pa.kw["at"]; ok {
			at, err := toVec2(v)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("panel %q: at: %w", panelName, err)
			}
			p.Origin = at
		}

		d.AddPanel(p)
		return &sexpPanelRef{id: p.ID, name: panelName}, nil
	})

	// (part "front")
	env.AddFunction("part", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) < 1 {
			return zygo.SexpNull, fmt.Errorf("part requires a name argument")
		}
		panelName, err := toString(args[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("part: name: %w", err)
		}
		p := d.Lookup(panelName)
		if p == nil {
			return zygo.SexpNull, fmt.Errorf("part: no panel named %q", panelName)
		}
		return &sexpPanelRef{id: p.ID, name: panelName}, nil
	})
}
