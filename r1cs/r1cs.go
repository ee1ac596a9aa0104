// Package r1cs bridges a flattened relation (primitive gates only) into a
// rank-1 constraint system: a list of (A, B, C) linear-combination triples
// such that A·B = C for every constraint, the representation gnark's own
// R1CS builder (frontend/r1cs) consumes. This bridge is intentionally
// light: every primitive gate except Instance, Witness and Free becomes
// exactly one constraint of its own. Mul, And and Xor multiply two wires;
// every other gate is a linear identity whose B side is the constant-one
// wire. Instance, Witness and Free emit no constraint.
package r1cs

import (
	"fmt"
	"math/big"

	"github.com/sieveir/ir"
)

// Term is one (coefficient, wire) pair in a linear combination. wireOne is
// reserved for the constant-one wire, matching gnark-style R1CS builders
// that dedicate a wire to the constant.
type Term struct {
	Coeff *big.Int
	Wire  ir.WireID
}

// LinearCombination is a sum of Terms.
type LinearCombination []Term

// Constraint is one A·B = C rank-1 constraint.
type Constraint struct {
	A, B, C LinearCombination
}

// System is the R1CS bridge's output: a flat constraint list plus the field
// the constraints are reduced modulo.
type System struct {
	Field       ir.Field
	Constraints []Constraint
}

// Options configures Convert. ModularReduce is an auxiliary compatibility
// mode from the original R1CS emitter; it is accepted here for interface
// parity but left unexercised, per the open question that it is not part
// of core semantics.
type Options struct {
	ModularReduce bool
}

const wireOne ir.WireID = 1<<63 - 1

// Convert lowers gates (expected to contain only primitive gates, i.e. the
// output of backend/flatten) into a System. It fails on any composite gate,
// since R1CS has no notion of Call/AnonCall/For/Switch.
func Convert(field ir.Field, gates []ir.Gate, opts Options) (*System, error) {
	sys := &System{Field: field}
	one := big.NewInt(1)
	for _, g := range gates {
		switch gate := g.(type) {
		case ir.ConstantGate:
			sys.Constraints = append(sys.Constraints, Constraint{
				A: LinearCombination{{Coeff: new(big.Int).Set(gate.Value.BigInt()), Wire: wireOne}},
				B: LinearCombination{{Coeff: one, Wire: wireOne}},
				C: LinearCombination{{Coeff: one, Wire: gate.Out}},
			})
		case ir.CopyGate:
			sys.Constraints = append(sys.Constraints, Constraint{
				A: LinearCombination{{Coeff: one, Wire: gate.In}},
				B: LinearCombination{{Coeff: one, Wire: wireOne}},
				C: LinearCombination{{Coeff: one, Wire: gate.Out}},
			})
		case ir.AddGate:
			sys.Constraints = append(sys.Constraints, Constraint{
				A: LinearCombination{{Coeff: one, Wire: gate.Left}, {Coeff: one, Wire: gate.Right}},
				B: LinearCombination{{Coeff: one, Wire: wireOne}},
				C: LinearCombination{{Coeff: one, Wire: gate.Out}},
			})
		case ir.MulGate:
			sys.Constraints = append(sys.Constraints, Constraint{
				A: LinearCombination{{Coeff: one, Wire: gate.Left}},
				B: LinearCombination{{Coeff: one, Wire: gate.Right}},
				C: LinearCombination{{Coeff: one, Wire: gate.Out}},
			})
		case ir.AndGate:
			sys.Constraints = append(sys.Constraints, Constraint{
				A: LinearCombination{{Coeff: one, Wire: gate.Left}},
				B: LinearCombination{{Coeff: one, Wire: gate.Right}},
				C: LinearCombination{{Coeff: one, Wire: gate.Out}},
			})
		case ir.XorGate:
			// xor = l + r - 2*l*r; expressed as one multiplication
			// constraint plus a linear correction folded into C.
			two := big.NewInt(2)
			sys.Constraints = append(sys.Constraints, Constraint{
				A: LinearCombination{{Coeff: two, Wire: gate.Left}},
				B: LinearCombination{{Coeff: one, Wire: gate.Right}},
				C: LinearCombination{
					{Coeff: one, Wire: gate.Left},
					{Coeff: one, Wire: gate.Right},
					{Coeff: new(big.Int).Neg(one), Wire: gate.Out},
				},
			})
		case ir.AddConstantGate:
			sys.Constraints = append(sys.Constraints, Constraint{
				A: LinearCombination{{Coeff: one, Wire: gate.In}, {Coeff: new(big.Int).Set(gate.Constant.BigInt()), Wire: wireOne}},
				B: LinearCombination{{Coeff: one, Wire: wireOne}},
				C: LinearCombination{{Coeff: one, Wire: gate.Out}},
			})
		case ir.MulConstantGate:
			sys.Constraints = append(sys.Constraints, Constraint{
				A: LinearCombination{{Coeff: new(big.Int).Set(gate.Constant.BigInt()), Wire: gate.In}},
				B: LinearCombination{{Coeff: one, Wire: wireOne}},
				C: LinearCombination{{Coeff: one, Wire: gate.Out}},
			})
		case ir.NotGate:
			sys.Constraints = append(sys.Constraints, Constraint{
				A: LinearCombination{{Coeff: new(big.Int).Neg(one), Wire: gate.In}, {Coeff: one, Wire: wireOne}},
				B: LinearCombination{{Coeff: one, Wire: wireOne}},
				C: LinearCombination{{Coeff: one, Wire: gate.Out}},
			})
		case ir.AssertZeroGate:
			sys.Constraints = append(sys.Constraints, Constraint{
				A: LinearCombination{{Coeff: one, Wire: gate.In}},
				B: LinearCombination{{Coeff: one, Wire: wireOne}},
				C: LinearCombination{},
			})
		case ir.InstanceGate, ir.WitnessGate, ir.FreeGate:
			// Input intake and wire lifetime carry no constraint of
			// their own; the values they bind participate in whatever
			// constraint reads them next.
		default:
			return nil, fmt.Errorf("r1cs: gate %T is not representable; flatten first", g)
		}
	}
	return sys, nil
}
