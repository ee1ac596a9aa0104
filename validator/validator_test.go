package validator_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/sieveir/examples"
	"github.com/sieveir/validator"
)

func TestValidator_ExampleRelationIsWellFormed(t *testing.T) {
	v := validator.New(true)
	v.Ingest(examples.Instance())
	v.Ingest(examples.Witness())
	v.Ingest(examples.Relation())
	v.Finalize()
	require.Empty(t, v.Violations())
}

func TestValidator_EmptyRelationViolation(t *testing.T) {
	v := validator.New(true)
	v.Ingest(examples.Instance())

	rel := examples.Relation()
	rel.Gates = nil
	v.Ingest(rel)
	v.Finalize()
	require.Contains(t, v.Violations(), "Did not receive any gate to verify.")
}

func TestValidator_UnboundRead(t *testing.T) {
	v := validator.New(true)
	v.Ingest(examples.Instance())

	rel := examples.Relation()
	// Drop the leading Witness(0) gate so wire 0 ("a", read by both switch
	// branches) is used before anything defines it.
	rel.Gates = rel.Gates[1:]
	v.Ingest(rel)
	v.Finalize()
	require.NotEmpty(t, v.Violations())
}
