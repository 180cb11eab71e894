package target

import (
	"slices"

	"golang.org/x/text/unicode/norm"
)

// Scope is an immutable set of variable names bound at a program point.
// Names are compared after NFC normalization.
type Scope struct {
	names map[string]struct{}
}

// NewScope returns a scope holding names.
func NewScope(names ...string) Scope {
	return Scope{}.With(names...)
}

// With returns a new scope extended by names; s itself is not modified.
func (s Scope) With(names ...string) Scope {
	out := make(map[string]struct{}, len(s.names)+len(names))
	for n := range s.names {
		out[n] = struct{}{}
	}
	for _, n := range names {
		out[norm.NFC.String(n)] = struct{}{}
	}
	return Scope{names: out}
}

// Has reports whether name is bound in s.
func (s Scope) Has(name string) bool {
	_, ok := s.names[norm.NFC.String(name)]
	return ok
}

func (s Scope) Len() int { return len(s.names) }

// Names returns the bound names in sorted order.
func (s Scope) Names() []string {
	out := make([]string, 0, len(s.names))
	for n := range s.names {
		out = append(out, n)
	}
	slices.Sort(out)
	return out
}

// AlreadyBound is a pure membership test of id's name in scope.
func AlreadyBound(id Identifier, scope Scope) bool {
	return scope.Has(id.Name)
}

// Strategy is how a valid target is bound.
type Strategy uint8

const (
	// DeclareNew introduces a fresh variable.
	DeclareNew Strategy = iota
	// Rebind reuses a name already bound in the enclosing scope.
	Rebind
)

func (s Strategy) String() string {
	switch s {
	case DeclareNew:
		return "declare"
	case Rebind:
		return "rebind"
	default:
		return "Strategy(?)"
	}
}

// StrategyFor picks DeclareNew or Rebind for id in scope.
func StrategyFor(id Identifier, scope Scope) Strategy {
	if AlreadyBound(id, scope) {
		return Rebind
	}
	return DeclareNew
}
