package design

import (
	"fmt"
	"math"

	"github.com/chazu/lasercut/pkg/joint"
)

// ValidationSeverity indicates whether a finding blocks export or is
// merely informational.
type ValidationSeverity int

const (
	SeverityError   ValidationSeverity = iota // blocks export
	SeverityWarning                           // informational
)

func (s ValidationSeverity) String() string {
	switch s {
	case SeverityError:
		return "error"
	case SeverityWarning:
		return "warning"
	default:
		return fmt.Sprintf("ValidationSeverity(%d)", int(s))
	}
}

// ValidationError describes a single validation finding.
type ValidationError struct {
	PanelID  PanelID            // zero if design-level
	Message  string             // human-readable description
	Severity ValidationSeverity // error or warning
}

func (e ValidationError) Error() string {
	if e.PanelID.IsZero() {
		return fmt.Sprintf("[%s] %s", e.Severity, e.Message)
	}
	return fmt.Sprintf("[%s] panel %s: %s", e.Severity, e.PanelID.Short(), e.Message)
}

// ValidationWarning describes a non-blocking advisory finding.
type ValidationWarning struct {
	PanelID PanelID
	Message string
}

// ValidationResult bundles errors (blocking) and warnings (advisory)
// from all validation tiers.
type ValidationResult struct {
	Errors   []ValidationError
	Warnings []ValidationWarning
}

// OK reports whether the result has no blocking errors.
func (r ValidationResult) OK() bool { return len(r.Errors) == 0 }

// Validate runs the Tier 1 structural checks. An empty slice means the
// design is structurally valid. It never mutates the design.
func Validate(d *Design) []ValidationError {
	var errs []ValidationError
	errs = append(errs, validatePanelsPresent(d)...)
	errs = append(errs, validateNames(d)...)
	return errs
}

// ValidateAll runs every tier (structural, geometric, material) and
// returns errors and warnings separately.
func ValidateAll(d *Design) ValidationResult {
	var result ValidationResult

	for _, e := range Validate(d) {
		if e.Severity == SeverityWarning {
			result.Warnings = append(result.Warnings, ValidationWarning{PanelID: e.PanelID, Message: e.Message})
		} else {
			result.Errors = append(result.Errors, e)
		}
	}

	result.Errors = append(result.Errors, validateGeometry(d)...)
	result.Warnings = append(result.Warnings, validateMaterial(d)...)
	result.Warnings = append(result.Warnings, validateEllipseJoints(d)...)

	return result
}

// ---------------------------------------------------------------------------
// Tier 1: structure
// ---------------------------------------------------------------------------

func validatePanelsPresent(d *Design) []ValidationError {
	var errs []ValidationError
	for i, p := range d.Panels {
		if p == nil {
			errs = append(errs, ValidationError{
				Message:  fmt.Sprintf("panel slot %d is nil", i),
				Severity: SeverityError,
			})
		}
	}
	return errs
}

// validateNames checks that every panel is named and names are unique.
func validateNames(d *Design) []ValidationError {
	var errs []ValidationError
	seen := make(map[string]bool)

	for _, p := range d.Panels {
		if p == nil {
			continue
		}
		if p.Name == "" {
			errs = append(errs, ValidationError{
				PanelID:  p.ID,
				Message:  "panel has no name",
				Severity: SeverityError,
			})
			continue
		}
		if seen[p.Name] {
			errs = append(errs, ValidationError{
				PanelID:  p.ID,
				Message:  fmt.Sprintf("duplicate panel name %q", p.Name),
				Severity: SeverityError,
			})
		}
		seen[p.Name] = true
	}
	return errs
}

// ---------------------------------------------------------------------------
// Tier 2: geometry
// ---------------------------------------------------------------------------

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

func validateGeometry(d *Design) []ValidationError {
	var errs []ValidationError
	for _, p := range d.Panels {
		if p == nil {
			continue
		}
		if err := p.Params.Validate(); err != nil {
			errs = append(errs, ValidationError{
				PanelID:  p.ID,
				Message:  fmt.Sprintf("%q: %v", p.Name, err),
				Severity: SeverityError,
			})
		}
		if !finite(p.Origin.X) || !finite(p.Origin.Y) {
			errs = append(errs, ValidationError{
				PanelID:  p.ID,
				Message:  fmt.Sprintf("%q: origin is not finite", p.Name),
				Severity: SeverityError,
			})
		}
	}
	return errs
}

// ---------------------------------------------------------------------------
// Tier 3: advisory
// ---------------------------------------------------------------------------

// validateMaterial warns when a panel's joint depth differs from the
// nominal thickness of the stock it names.
func validateMaterial(d *Design) []ValidationWarning {
	var warnings []ValidationWarning
	for _, p := range d.Panels {
		if p == nil || p.Params.Shape != joint.ShapeRect || p.Params.Joint == joint.JointNone {
			continue
		}
		if p.Material.Thickness > 0 && p.Material.Thickness != p.Params.Thickness {
			warnings = append(warnings, ValidationWarning{
				PanelID: p.ID,
				Message: fmt.Sprintf("%q: joint thickness %.2fmm differs from material %q thickness %.2fmm",
					p.Name, p.Params.Thickness, p.Material.Name, p.Material.Thickness),
			})
		}
	}
	return warnings
}

// validateEllipseJoints flags joint styles set on ellipses, which never
// carry joints.
func validateEllipseJoints(d *Design) []ValidationWarning {
	var warnings []ValidationWarning
	for _, p := range d.Panels {
		if p == nil {
			continue
		}
		if p.Params.Shape == joint.ShapeEllipse && p.Params.Joint != joint.JointNone {
			warnings = append(warnings, ValidationWarning{
				PanelID: p.ID,
				Message: fmt.Sprintf("%q: %s joint is ignored on an ellipse", p.Name, p.Params.Joint),
			})
		}
	}
	return warnings
}
