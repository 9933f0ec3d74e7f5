// Package design defines the panel set produced by evaluating a design
// script. A Design is never mutated after evaluation; each evaluation
// produces a new one.
package design
