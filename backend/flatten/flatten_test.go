package flatten_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/sieveir/backend/flatten"
	"github.com/sieveir/backend/plaintext"
	"github.com/sieveir/evaluator"
	"github.com/sieveir/examples"
	"github.com/sieveir/internal/logger"
	"github.com/sieveir/ir"
	"github.com/sieveir/validator"
)

// TestFlattenThenValidateAndReevaluate covers the flattening round trip: a
// Relation built from Call, AnonCall, For, and Switch gates is flattened to
// primitive gates only, the flattened output passes structural validation,
// and re-evaluating it against the original instance/witness streams
// reaches the same zero-violations verdict as evaluating the original
// Relation directly.
func TestFlattenThenValidateAndReevaluate(t *testing.T) {
	flat := flatten.New(0)
	fe := evaluator.New(flat, true, logger.Nop())
	require.NoError(t, fe.Ingest(examples.Instance()))
	require.NoError(t, fe.Ingest(examples.Witness()))
	require.NoError(t, fe.Ingest(examples.Relation()))
	require.NoError(t, fe.Err())
	require.NotEmpty(t, flat.Gates)

	for _, g := range flat.Gates {
		switch g.(type) {
		case ir.CallGate, ir.AnonCallGate, ir.ForGate, ir.SwitchGate:
			t.Fatalf("flattened output still contains a composite gate: %T", g)
		}
	}

	flatRelation := ir.NewRelationMessage(examples.Header(), ir.GateMaskArithmetic, nil, flat.Gates)

	v := validator.New(true)
	v.Ingest(examples.Instance())
	v.Ingest(examples.Witness())
	v.Ingest(flatRelation)
	v.Finalize()
	require.Empty(t, v.Violations())

	re := evaluator.New(plaintext.New(), true, logger.Nop())
	require.NoError(t, re.Ingest(examples.Instance()))
	require.NoError(t, re.Ingest(examples.Witness()))
	require.NoError(t, re.Ingest(flatRelation))
	require.NoError(t, re.Err())
}
