package evaluator

import (
	"math/big"

	"github.com/sieveir/backend"
)

// Exp raises base to exponent using repeated squaring, expressed in terms of
// the gate_mask-aware backend.Multiply so it works identically under a
// plaintext or a flattening backend, and folds to AND under a boolean
// relation the same way the plain MulGate dispatch does.
func Exp(b backend.Backend, base backend.Wire, exponent *big.Int, boolean bool) backend.Wire {
	result := b.One()
	cur := base
	e := new(big.Int).Set(exponent)
	zero := big.NewInt(0)
	for e.Cmp(zero) > 0 {
		if e.Bit(0) == 1 {
			result = backend.Multiply(b, result, cur, boolean)
		}
		cur = backend.Multiply(b, cur, cur, boolean)
		e.Rsh(e, 1)
	}
	return result
}

// ComputeWeight implements the Switch branch-weight algebra: given the
// Switch's runtime condition value and one branch's case value, it returns
// w = 1 - (case - condition)^(p-1), where p is the field's characteristic.
// By Fermat's little theorem w is 1 when case == condition and 0 otherwise,
// so every non-taken branch's AssertZero/output contributions are
// multiplicatively masked to zero without a true conditional. boolean
// selects xor/and over add/multiply throughout, matching the gate_mask the
// enclosing relation was ingested under.
func ComputeWeight(b backend.Backend, condition, caseValue backend.Wire, boolean bool) (backend.Wire, error) {
	neg, err := backend.Negate(b, condition, boolean)
	if err != nil {
		return nil, err
	}
	diff := backend.Add(b, caseValue, neg, boolean)
	pMinusOne := new(big.Int).Sub(b.Field().Characteristic, big.NewInt(1))
	powered := Exp(b, diff, pMinusOne, boolean)
	negPowered, err := backend.Negate(b, powered, boolean)
	if err != nil {
		return nil, err
	}
	return backend.Add(b, b.One(), negPowered, boolean), nil
}
