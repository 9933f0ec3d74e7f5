package joint

import "fmt"

// Default panel parameters, used for any field left unset.
const (
	DefaultWidth       = 100.0
	DefaultHeight      = 100.0
	DefaultThickness   = 5.0
	DefaultJointLength = 10.0
)

// DefaultOrigin is where a single panel is placed when the caller gives
// no position.
var DefaultOrigin = Point{X: 50, Y: 50}

// Params is the full description of one panel outline.
type Params struct {
	Shape       ShapeKind `json:"shape"`
	Joint       JointKind `json:"joint"`
	Width       float64   `json:"width"`
	Height      float64   `json:"height"`
	Thickness   float64   `json:"thickness"`   // material thickness, mm
	JointLength float64   `json:"jointLength"` // tab length along the edge, mm
}

// DefaultParams returns a 100x100 plain rectangle in 5mm stock with 10mm
// joints.
func DefaultParams() Params {
	return Params{
		Shape:       ShapeRect,
		Joint:       JointNone,
		Width:       DefaultWidth,
		Height:      DefaultHeight,
		Thickness:   DefaultThickness,
		JointLength: DefaultJointLength,
	}
}

// WithDefaults returns a copy of p with zero numeric fields replaced by the
// package defaults. Zero means "unset"; use Validate to reject bad values.
func (p Params) WithDefaults() Params {
	d := DefaultParams()
	if p.Width == 0 {
		p.Width = d.Width
	}
	if p.Height == 0 {
		p.Height = d.Height
	}
	if p.Thickness == 0 {
		p.Thickness = d.Thickness
	}
	if p.JointLength == 0 {
		p.JointLength = d.JointLength
	}
	return p
}

// Validate checks p without generating anything. It applies the same
// guards Generate does.
func (p Params) Validate() error {
	if err := checkNonNegative("width", p.Width); err != nil {
		return err
	}
	if err := checkNonNegative("height", p.Height); err != nil {
		return err
	}
	if p.Shape == ShapeEllipse {
		return nil
	}
	if err := checkNonNegative("thickness", p.Thickness); err != nil {
		return err
	}
	switch p.Joint {
	case JointSlot:
		if err := checkJointLength(p.JointLength); err != nil {
			return err
		}
		return checkTabCount("width", p.Width, p.JointLength)
	case JointTeeth:
		if err := checkJointLength(p.JointLength); err != nil {
			return err
		}
		if err := checkTabCount("width", p.Width, p.JointLength); err != nil {
			return err
		}
		return checkTabCount("height", p.Height, p.JointLength)
	}
	return nil
}

// checkOrigin rejects a placement that is not a finite point.
func checkOrigin(at Point) error {
	if err := checkFinite("x", at.X); err != nil {
		return err
	}
	return checkFinite("y", at.Y)
}

// Generate produces the primitive list of one panel placed at the given
// top-left corner. Ellipses never carry joints; their joint style is
// ignored. The origin must be finite.
func Generate(p Params, at Point) ([]Primitive, error) {
	if err := checkOrigin(at); err != nil {
		return nil, err
	}
	switch p.Shape {
	case ShapeEllipse:
		if err := checkNonNegative("width", p.Width); err != nil {
			return nil, err
		}
		if err := checkNonNegative("height", p.Height); err != nil {
			return nil, err
		}
		return []Primitive{Ellipse{X: at.X, Y: at.Y, W: p.Width, H: p.Height}}, nil
	case ShapeRect:
		if err := checkNonNegative("thickness", p.Thickness); err != nil {
			return nil, err
		}
		return BuildJointRect(at.X, at.Y, p.Width, p.Height, p.Joint, p.Thickness, p.JointLength)
	default:
		return nil, fmt.Errorf("unknown shape kind %d", int(p.Shape))
	}
}
