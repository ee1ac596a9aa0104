// Package plaintext implements backend.Backend by evaluating gates directly
// over math/big integers reduced modulo the relation's field
// characteristic. It is the Go counterpart of the reference evaluator's
// PlaintextBackend: the backend the evaluator runs by default, suitable for
// running a relation against concrete instance/witness values without any
// proving system underneath.
package plaintext

import (
	"fmt"
	"math/big"

	"github.com/sieveir/backend"
	"github.com/sieveir/ir"
)

// Backend is a backend.Backend that represents every Wire as *big.Int,
// reduced modulo the configured field's characteristic.
type Backend struct {
	field ir.Field
	mod   *big.Int
}

var _ backend.Backend = (*Backend)(nil)

// New returns a Backend with no field configured; callers must call
// SetField before any other method.
func New() *Backend {
	return &Backend{}
}

func (b *Backend) SetField(f ir.Field) error {
	if f.Degree != 1 {
		return fmt.Errorf("plaintext: unsupported field degree %d", f.Degree)
	}
	if f.Characteristic == nil || f.Characteristic.Sign() <= 0 {
		return fmt.Errorf("plaintext: invalid field characteristic")
	}
	b.field = f
	b.mod = new(big.Int).Set(f.Characteristic)
	return nil
}

func (b *Backend) Field() ir.Field { return b.field }

func (b *Backend) reduce(n *big.Int) *big.Int {
	return new(big.Int).Mod(n, b.mod)
}

func (b *Backend) FromBytesLE(v ir.Value) (backend.Wire, error) {
	return b.Constant(v)
}

func (b *Backend) Zero() backend.Wire {
	return big.NewInt(0)
}

func (b *Backend) One() backend.Wire {
	return big.NewInt(1)
}

func (b *Backend) MinusOne() (backend.Wire, error) {
	if b.mod == nil {
		return nil, fmt.Errorf("plaintext: field not set")
	}
	return b.reduce(big.NewInt(-1)), nil
}

func (b *Backend) Constant(v ir.Value) (backend.Wire, error) {
	if b.mod == nil {
		return nil, fmt.Errorf("plaintext: field not set")
	}
	n := v.BigInt()
	if n.Cmp(b.mod) >= 0 {
		return nil, fmt.Errorf("plaintext: value %s is not in field (characteristic %s)", n, b.mod)
	}
	return n, nil
}

func (b *Backend) Copy(w backend.Wire) backend.Wire {
	return new(big.Int).Set(w.(*big.Int))
}

func (b *Backend) AssertZero(w backend.Wire) error {
	if w.(*big.Int).Sign() != 0 {
		return fmt.Errorf("value is not zero")
	}
	return nil
}

func (b *Backend) Add(a, c backend.Wire) backend.Wire {
	return b.reduce(new(big.Int).Add(a.(*big.Int), c.(*big.Int)))
}

func (b *Backend) Multiply(a, c backend.Wire) backend.Wire {
	return b.reduce(new(big.Int).Mul(a.(*big.Int), c.(*big.Int)))
}

func (b *Backend) And(a, c backend.Wire) backend.Wire {
	return b.reduce(new(big.Int).And(a.(*big.Int), c.(*big.Int)))
}

func (b *Backend) Xor(a, c backend.Wire) backend.Wire {
	return b.reduce(new(big.Int).Xor(a.(*big.Int), c.(*big.Int)))
}

func (b *Backend) AddConstant(a backend.Wire, v ir.Value) (backend.Wire, error) {
	return b.reduce(new(big.Int).Add(a.(*big.Int), v.BigInt())), nil
}

func (b *Backend) MulConstant(a backend.Wire, v ir.Value) (backend.Wire, error) {
	return b.reduce(new(big.Int).Mul(a.(*big.Int), v.BigInt())), nil
}

func (b *Backend) Not(w backend.Wire) (backend.Wire, error) {
	n := w.(*big.Int)
	if n.Sign() != 0 && n.Cmp(bigOne) != 0 {
		return nil, fmt.Errorf("plaintext: NOT of non-boolean value %s", n)
	}
	return b.reduce(new(big.Int).Sub(bigOne, n)), nil
}

func (b *Backend) Instance(v ir.Value) (backend.Wire, error) {
	return b.Constant(v)
}

// Witness requires a real value: the plaintext backend has no placeholder
// representation for a missing witness, so running it in verifier mode (or
// feeding it a nil Value) is a backend mode error. Verifier-role callers
// use a backend that can represent a missing witness instead (see
// evaluator's own verifier-mode tests).
func (b *Backend) Witness(v ir.Value, asProver bool) (backend.Wire, error) {
	if !asProver || v == nil {
		return nil, fmt.Errorf("plaintext: witness(None) is unsupported by the plaintext backend")
	}
	return b.Constant(v)
}

var bigOne = big.NewInt(1)
