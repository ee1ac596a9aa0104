package backend

import (
	"math/big"

	"github.com/sieveir/ir"
)

var bigOne = big.NewInt(1)

// The helpers below pick the arithmetic or boolean incarnation of an
// operation depending on the relation's gate_mask, so the evaluator's gate
// interpreter never has to branch on field.Boolean itself. They mirror
// as_negate/as_add_one/as_mul/as_add in the reference evaluator.

// Negate returns -w under arithmetic semantics, or w unchanged under
// boolean semantics (negation is the identity over GF(2)).
func Negate(b Backend, w Wire, boolean bool) (Wire, error) {
	if boolean {
		return b.Copy(w), nil
	}
	minusOne, err := b.MinusOne()
	if err != nil {
		return nil, err
	}
	return b.Multiply(w, minusOne), nil
}

// AddOne returns w+1 under arithmetic semantics, or NOT(w) under boolean
// semantics.
func AddOne(b Backend, w Wire, boolean bool) (Wire, error) {
	if boolean {
		return b.Not(w)
	}
	return b.AddConstant(w, ir.ValueFromBigInt(bigOne, b.Field().Bytelen))
}

// Multiply returns a*b under arithmetic semantics, or a AND b under
// boolean semantics.
func Multiply(bk Backend, a, b Wire, boolean bool) Wire {
	if boolean {
		return bk.And(a, b)
	}
	return bk.Multiply(a, b)
}

// Add returns a+b under arithmetic semantics, or a XOR b under boolean
// semantics.
func Add(bk Backend, a, b Wire, boolean bool) Wire {
	if boolean {
		return bk.Xor(a, b)
	}
	return bk.Add(a, b)
}
