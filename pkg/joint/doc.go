// Package joint generates the outline primitives of a laser-cut panel.
// A panel is a rectangle with finger-joint tabs ("teeth"), a perforated
// top edge ("slot"), or a plain edge, or else an ellipse. Generation is a
// pure function of its parameters: no state, no I/O.
package joint
