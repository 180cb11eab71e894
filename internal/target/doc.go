// Package target decides whether an expression can be the binding target of
// assign_to/2 and explains why when it cannot.
//
// Validate is a pure predicate: it accepts a bare identifier and hands back
// anything else untouched. Classify assigns a rejected node exactly one
// Classification through a fixed decision order, and Render turns that into
// a Diagnostic from a single central template table. Scope and StrategyFor
// answer whether a valid target introduces a new binding or rebinds an
// existing one.
//
// Nothing here keeps state; all functions are safe for concurrent use.
package target
