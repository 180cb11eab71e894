// Package ast defines the syntax tree for the Elixir-style host language
// checked by pipebind.
//
// Node is a closed sum type. Consumers switch on the concrete pointer types
// (*Ident, *Literal, *Call, *OpApp, ...) and must keep a default arm, since a
// Bad node may appear anywhere the parser recovered from an error.
//
// Render prints a node back as canonical source text; diagnostics quote it.
package ast
