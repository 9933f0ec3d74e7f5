package joint

import (
	"errors"
	"fmt"
	"math"
)

// ErrInvalidParameter is wrapped by every parameter rejection.
var ErrInvalidParameter = errors.New("invalid parameter")

// ParamError reports which parameter was rejected and why.
type ParamError struct {
	Field  string
	Value  float64
	Reason string
}

func (e *ParamError) Error() string {
	return fmt.Sprintf("%s: %s is %g, %s", ErrInvalidParameter, e.Field, e.Value, e.Reason)
}

func (e *ParamError) Unwrap() error { return ErrInvalidParameter }

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// checkJointLength must run before any division by jointLength.
func checkJointLength(jointLength float64) error {
	if !finite(jointLength) {
		return &ParamError{Field: "joint length", Value: jointLength, Reason: "must be finite"}
	}
	if jointLength <= 0 {
		return &ParamError{Field: "joint length", Value: jointLength, Reason: "must be positive"}
	}
	return nil
}

// MaxTabs is the most tabs a single edge may carry.
const MaxTabs = 1 << 16

// checkTabCount rejects an edge that would need more than MaxTabs tabs.
// It runs before any float-to-int conversion of the count.
func checkTabCount(field string, length, jointLength float64) error {
	if math.Floor(length/jointLength) > MaxTabs {
		return &ParamError{Field: field, Value: length, Reason: fmt.Sprintf("needs more than %d tabs of length %g", MaxTabs, jointLength)}
	}
	return nil
}

// checkFinite rejects NaN and ±Inf.
func checkFinite(field string, v float64) error {
	if !finite(v) {
		return &ParamError{Field: field, Value: v, Reason: "must be finite"}
	}
	return nil
}

func checkNonNegative(field string, v float64) error {
	if !finite(v) {
		return &ParamError{Field: field, Value: v, Reason: "must be finite"}
	}
	if v < 0 {
		return &ParamError{Field: field, Value: v, Reason: "must not be negative"}
	}
	return nil
}
