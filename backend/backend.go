// Package backend declares the pluggable field/gate operation surface that
// drives a SIEVE IR evaluator, mirroring the trait gnark's own frontend
// splits between a Builder/API and whatever constraint system actually
// backs it (R1CS, SparseR1CS, plaintext, ...). A Backend owns no scope or
// pool bookkeeping of its own; the evaluator holds those and only ever
// calls through this interface for the handful of operations that are
// field/representation-specific.
package backend

import "github.com/sieveir/ir"

// Wire is an opaque backend-side handle for a value: a plaintext backend's
// Wire is a *big.Int, a flattening backend's Wire is an ir.WireID referring
// to a freshly emitted primitive gate. Kept as interface{} (gnark's own
// frontend.Variable convention, predating generics in this corpus) so the
// evaluator can carry it through scope/pool plumbing without caring what it
// actually is.
type Wire = interface{}

// Backend is implemented once per evaluation strategy: plaintext execution
// (backend/plaintext), or re-emission through only primitive gates
// (backend/flatten). The evaluator calls SetField exactly once, before any
// other method, once a stream's Header has been ingested.
type Backend interface {
	// SetField configures the backend for the field described by f. It is
	// called once, before any other Backend method.
	SetField(f ir.Field) error

	// Field returns the field passed to SetField.
	Field() ir.Field

	// FromBytesLE decodes a little-endian encoded field element.
	FromBytesLE(v ir.Value) (Wire, error)

	// Zero, One, and MinusOne return the backend's representation of the
	// corresponding field elements.
	Zero() Wire
	One() Wire
	MinusOne() (Wire, error)

	// Constant returns a Wire bound to the literal value v.
	Constant(v ir.Value) (Wire, error)

	// Copy returns a Wire with the same value as w.
	Copy(w Wire) Wire

	// AssertZero reports an error if w is not the field's zero element.
	AssertZero(w Wire) error

	// Add, Multiply, And, and Xor combine two wires. The helpers in
	// arith.go call And/Xor in place of Multiply/Add when the relation's
	// gate_mask selects boolean semantics; explicit And/Xor gates call
	// them under either gate_mask.
	Add(a, b Wire) Wire
	Multiply(a, b Wire) Wire
	And(a, b Wire) Wire
	Xor(a, b Wire) Wire

	// AddConstant and MulConstant combine a wire with a literal value.
	AddConstant(a Wire, v ir.Value) (Wire, error)
	MulConstant(a Wire, v ir.Value) (Wire, error)

	// Not returns the boolean negation of w. AddOne calls it under boolean
	// gate_mask; explicit Not gates call it under either gate_mask.
	Not(w Wire) (Wire, error)

	// Instance binds v, the value the evaluator popped from the instance
	// pool, to a Wire. Witness does the same for a value popped from the
	// witness pool; in verifier mode v is nil and the backend returns a
	// placeholder of its choice or an error.
	Instance(v ir.Value) (Wire, error)
	Witness(v ir.Value, asProver bool) (Wire, error)
}
