// Package evaluator implements the recursive gate interpreter described by
// the reference Evaluator<B>: a Scope mapping wire identifiers to
// backend.Wire values, FIFO instance/witness pools, and a dispatcher over
// every primitive and composite ir.Gate. Each subcircuit invocation (Call,
// AnonCall, For body, Switch branch) runs against its own child Scope, with
// explicit copy-in/copy-out of the wires named by the invocation's Outs/Ins
// lists.
package evaluator

import (
	"fmt"

	"github.com/sieveir/backend"
	"github.com/sieveir/ir"
)

// Scope holds the live wire bindings for one subcircuit invocation.
type Scope struct {
	vars map[ir.WireID]backend.Wire
}

// NewScope returns an empty Scope.
func NewScope() *Scope {
	return &Scope{vars: make(map[ir.WireID]backend.Wire)}
}

// Set binds id to w. Rebinding an already-bound id is a scope error: every
// wire is defined exactly once within the scope that owns it.
func (s *Scope) Set(id ir.WireID, w backend.Wire) error {
	if _, ok := s.vars[id]; ok {
		return fmt.Errorf("wire_%d already has a value in this scope", id)
	}
	s.vars[id] = w
	return nil
}

// Get returns the value bound to id, or an error if id is unbound.
func (s *Scope) Get(id ir.WireID) (backend.Wire, error) {
	w, ok := s.vars[id]
	if !ok {
		return nil, fmt.Errorf("no value for wire_%d", id)
	}
	return w, nil
}

// Remove deletes id's binding, as the Free gate requires. Freeing an unbound
// id is a scope error.
func (s *Scope) Remove(id ir.WireID) error {
	if _, ok := s.vars[id]; !ok {
		return fmt.Errorf("wire_%d does not have a value, can't free it", id)
	}
	delete(s.vars, id)
	return nil
}

// child returns a fresh, empty Scope for a subcircuit invocation.
func (s *Scope) child() *Scope {
	return NewScope()
}
