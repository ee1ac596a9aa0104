// Package flatten implements backend.Backend by re-emitting every operation
// as one or more primitive ir.Gate values instead of computing a value, the
// Go counterpart of the reference IRFlattener. Running an Evaluator against
// a flatten.Backend turns any Relation — including one built from Call,
// AnonCall, For, and Switch gates — into an equivalent Relation using only
// primitive gates, which the evaluator's own Switch handling does by
// construction (branch outputs are always combined via Add/Multiply, never
// a native conditional).
package flatten

import (
	"fmt"
	"math/big"

	"github.com/sieveir/backend"
	"github.com/sieveir/ir"
)

var (
	zeroInt = big.NewInt(0)
	oneInt  = big.NewInt(1)
)

// Backend collects primitive gates into Gates as each Backend method is
// called, allocating fresh wire identifiers from a private counter so the
// flattened output never collides with wires already in use by the
// evaluator's own scope bookkeeping.
type Backend struct {
	field ir.Field
	next  ir.WireID
	Gates []ir.Gate
}

var _ backend.Backend = (*Backend)(nil)

// New returns a Backend whose fresh wire identifiers start at firstFree,
// i.e. one past the highest wire identifier the caller's input Relation
// ever uses.
func New(firstFree ir.WireID) *Backend {
	return &Backend{next: firstFree}
}

func (b *Backend) alloc() ir.WireID {
	id := b.next
	b.next++
	return id
}

func (b *Backend) SetField(f ir.Field) error {
	b.field = f
	return nil
}

func (b *Backend) Field() ir.Field { return b.field }

func (b *Backend) FromBytesLE(v ir.Value) (backend.Wire, error) {
	return b.Constant(v)
}

func (b *Backend) Zero() backend.Wire {
	zero := ir.ValueFromBigInt(zeroInt, b.field.Bytelen)
	w, _ := b.Constant(zero)
	return w
}

func (b *Backend) One() backend.Wire {
	w, _ := b.Constant(ir.ValueFromBigInt(oneInt, b.field.Bytelen))
	return w
}

func (b *Backend) MinusOne() (backend.Wire, error) {
	if b.field.Characteristic == nil {
		return nil, fmt.Errorf("flatten: field not set")
	}
	m := new(big.Int).Sub(b.field.Characteristic, oneInt)
	return b.Constant(ir.ValueFromBigInt(m, b.field.Bytelen))
}

func (b *Backend) Constant(v ir.Value) (backend.Wire, error) {
	out := b.alloc()
	b.Gates = append(b.Gates, ir.ConstantGate{Out: out, Value: v})
	return out, nil
}

func (b *Backend) Copy(w backend.Wire) backend.Wire {
	out := b.alloc()
	b.Gates = append(b.Gates, ir.CopyGate{Out: out, In: w.(ir.WireID)})
	return out
}

func (b *Backend) AssertZero(w backend.Wire) error {
	b.Gates = append(b.Gates, ir.AssertZeroGate{In: w.(ir.WireID)})
	return nil
}

func (b *Backend) Add(a, c backend.Wire) backend.Wire {
	out := b.alloc()
	b.Gates = append(b.Gates, ir.AddGate{Out: out, Left: a.(ir.WireID), Right: c.(ir.WireID)})
	return out
}

func (b *Backend) Multiply(a, c backend.Wire) backend.Wire {
	out := b.alloc()
	b.Gates = append(b.Gates, ir.MulGate{Out: out, Left: a.(ir.WireID), Right: c.(ir.WireID)})
	return out
}

func (b *Backend) And(a, c backend.Wire) backend.Wire {
	out := b.alloc()
	b.Gates = append(b.Gates, ir.AndGate{Out: out, Left: a.(ir.WireID), Right: c.(ir.WireID)})
	return out
}

func (b *Backend) Xor(a, c backend.Wire) backend.Wire {
	out := b.alloc()
	b.Gates = append(b.Gates, ir.XorGate{Out: out, Left: a.(ir.WireID), Right: c.(ir.WireID)})
	return out
}

func (b *Backend) AddConstant(a backend.Wire, v ir.Value) (backend.Wire, error) {
	out := b.alloc()
	b.Gates = append(b.Gates, ir.AddConstantGate{Out: out, In: a.(ir.WireID), Constant: v})
	return out, nil
}

func (b *Backend) MulConstant(a backend.Wire, v ir.Value) (backend.Wire, error) {
	out := b.alloc()
	b.Gates = append(b.Gates, ir.MulConstantGate{Out: out, In: a.(ir.WireID), Constant: v})
	return out, nil
}

func (b *Backend) Not(w backend.Wire) (backend.Wire, error) {
	out := b.alloc()
	b.Gates = append(b.Gates, ir.NotGate{Out: out, In: w.(ir.WireID)})
	return out, nil
}

func (b *Backend) Instance(ir.Value) (backend.Wire, error) {
	out := b.alloc()
	b.Gates = append(b.Gates, ir.InstanceGate{Out: out})
	return out, nil
}

func (b *Backend) Witness(v ir.Value, asProver bool) (backend.Wire, error) {
	out := b.alloc()
	b.Gates = append(b.Gates, ir.WitnessGate{Out: out})
	return out, nil
}
