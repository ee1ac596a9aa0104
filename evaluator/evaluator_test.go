package evaluator_test

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/sieveir/backend"
	"github.com/sieveir/backend/flatten"
	"github.com/sieveir/backend/plaintext"
	"github.com/sieveir/evaluator"
	"github.com/sieveir/examples"
	"github.com/sieveir/internal/logger"
	"github.com/sieveir/ir"
)

// verifierBackend wraps plaintext.Backend but never rejects a failing
// AssertZero and returns a zero placeholder for any missing witness,
// matching Scenario C's verifier-role contract.
type verifierBackend struct {
	*plaintext.Backend
}

func (v *verifierBackend) AssertZero(backend.Wire) error { return nil }

func (v *verifierBackend) Witness(val ir.Value, asProver bool) (backend.Wire, error) {
	return v.Backend.Zero(), nil
}

func newPlaintextEvaluator(asProver bool) *evaluator.Evaluator {
	return evaluator.New(plaintext.New(), asProver, logger.Nop())
}

func TestScenarioA_CorrectWitness(t *testing.T) {
	e := newPlaintextEvaluator(true)
	require.NoError(t, e.Ingest(examples.Instance()))
	require.NoError(t, e.Ingest(examples.Witness()))
	require.NoError(t, e.Ingest(examples.Relation()))
	require.NoError(t, e.Err())
}

func TestScenarioB_IncorrectWitness(t *testing.T) {
	e := newPlaintextEvaluator(true)
	require.NoError(t, e.Ingest(examples.Instance()))
	require.NoError(t, e.Ingest(examples.WitnessIncorrect()))
	err := e.Ingest(examples.Relation())
	require.Error(t, err)
	require.Equal(t, "Wire_9 (may be weighted) should be 0, while it is not", err.Error())
}

func TestScenarioC_VerifierMode(t *testing.T) {
	e := evaluator.New(&verifierBackend{Backend: plaintext.New()}, false, logger.Nop())
	require.NoError(t, e.Ingest(examples.Instance()))
	require.NoError(t, e.Ingest(examples.Relation()))
	require.NoError(t, e.Err())
}

func TestScenarioE_Exponentiation(t *testing.T) {
	b := plaintext.New()
	require.NoError(t, b.SetField(bigField(t, "16249742125730185677094195492597105093")))
	base := big.NewInt(2)
	exponent, ok := new(big.Int).SetString("2206000150907221872269901214599500635", 10)
	require.True(t, ok)
	baseWire, err := b.Constant(ir.ValueFromBigInt(base, fieldBytelen(t, "16249742125730185677094195492597105093")))
	require.NoError(t, err)
	got := evaluator.Exp(b, baseWire, exponent, false)
	want, ok := new(big.Int).SetString("5834907326474057072663503101785122138", 10)
	require.True(t, ok)
	require.Equal(t, 0, got.(*big.Int).Cmp(want))

	// p = 101, base = 42, exponent = 100 -> 1 (Fermat's little theorem).
	b2 := plaintext.New()
	require.NoError(t, b2.SetField(ir.NewField(leBytes(101), 1, false)))
	base2, err := b2.Constant(ir.ValueFromBigInt(big.NewInt(42), 1))
	require.NoError(t, err)
	got2 := evaluator.Exp(b2, base2, big.NewInt(100), false)
	require.Equal(t, int64(1), got2.(*big.Int).Int64())
}

// TestSwitchUnderBooleanGateMask covers a Switch nested under a boolean
// gate_mask: the branch-weight algebra (ComputeWeight/Exp) and the output
// combination must use And/Xor throughout, never the arithmetic Multiply/
// Add a plain GateMaskArithmetic relation would use.
func TestSwitchUnderBooleanGateMask(t *testing.T) {
	field := ir.NewField(leBytes(2), 1, true)
	header := ir.Header{Field: field}
	bit := func(n int64) ir.Value { return ir.ValueFromBigInt(big.NewInt(n), 1) }

	rel := ir.NewRelationMessage(header, ir.GateMaskBoolean, nil, []ir.Gate{
		ir.WitnessGate{Out: 0}, // condition
		ir.WitnessGate{Out: 1}, // value
		ir.SwitchGate{
			Condition: 0,
			Outs:      ir.WireIDs(2),
			Branches: []ir.SwitchBranch{
				{Case: bit(0), Anon: &ir.AnonCallGate{
					Outs: ir.WireIDs(0), Ins: ir.WireIDs(1),
					Body: []ir.Gate{ir.CopyGate{Out: 0, In: 1}},
				}},
				{Case: bit(1), Anon: &ir.AnonCallGate{
					Outs: ir.WireIDs(0), Ins: ir.WireIDs(1),
					Body: []ir.Gate{ir.NotGate{Out: 0, In: 1}},
				}},
			},
		},
		ir.AssertZeroGate{In: 2},
	})

	flat := flatten.New(100)
	fe := evaluator.New(flat, true, logger.Nop())
	require.NoError(t, fe.Ingest(ir.NewWitnessMessage(header, []ir.Value{bit(0), bit(1)})))
	require.NoError(t, fe.Ingest(rel))
	require.NoError(t, fe.Err())

	var sawAnd, sawXor bool
	for _, g := range flat.Gates {
		switch g.(type) {
		case ir.MulGate:
			t.Fatalf("boolean switch emitted an arithmetic MulGate: %#v", g)
		case ir.AddGate:
			t.Fatalf("boolean switch emitted an arithmetic AddGate: %#v", g)
		case ir.AndGate:
			sawAnd = true
		case ir.XorGate:
			sawXor = true
		}
	}
	require.True(t, sawAnd, "expected the weight algebra to emit at least one AndGate")
	require.True(t, sawXor, "expected the weight algebra to emit at least one XorGate")
}

func TestScenarioF_ArityError(t *testing.T) {
	e := newPlaintextEvaluator(true)
	field := ir.NewField(leBytes(101), 1, false)
	rel := ir.NewRelationMessage(ir.Header{Field: field}, ir.GateMaskArithmetic,
		[]ir.Function{{Name: "mul", OutputCount: 1, InputCount: 2, Body: []ir.Gate{ir.MulGate{Out: 0, Left: 1, Right: 2}}}},
		[]ir.Gate{
			ir.ConstantGate{Out: 100, Value: ir.ValueFromBigInt(big.NewInt(3), 1)},
			ir.ConstantGate{Out: 101, Value: ir.ValueFromBigInt(big.NewInt(4), 1)},
			ir.CallGate{Name: "mul", Outs: ir.WireIDs(200, 201), Ins: ir.WireIDs(100, 101)},
		},
	)
	err := e.Ingest(rel)
	require.Error(t, err)
	require.Equal(t, "Wrong number of output variables in call to function mul (Expected 1 / Got 2).", err.Error())
}

func bigField(t *testing.T, decimal string) ir.Field {
	t.Helper()
	n, ok := new(big.Int).SetString(decimal, 10)
	require.True(t, ok)
	be := n.Bytes()
	return ir.NewField(reverse(be), 1, false)
}

func fieldBytelen(t *testing.T, decimal string) int {
	t.Helper()
	n, ok := new(big.Int).SetString(decimal, 10)
	require.True(t, ok)
	return len(n.Bytes())
}

func leBytes(n int64) []byte {
	return reverse(big.NewInt(n).Bytes())
}

func reverse(b []byte) []byte {
	out := make([]byte, len(b))
	for i, c := range b {
		out[len(b)-1-i] = c
	}
	return out
}
