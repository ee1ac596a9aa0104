package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sieveir/backend/flatten"
	"github.com/sieveir/evaluator"
	"github.com/sieveir/ir"
)

func newFlattenCmd() *cobra.Command {
	var out string
	var tmpWireStart uint64

	cmd := &cobra.Command{
		Use:   "flatten [files...]",
		Short: "Flatten a relation to primitive gates only",
		Long: `Flatten re-emits a Relation's Call/AnonCall/For/Switch gates as an
equivalent sequence of primitive gates only, driving the evaluator's own
Switch branch-masking algebra to eliminate the conditional instead of
evaluating it. The output is suitable input to "to-r1cs".`,
		RunE: func(c *cobra.Command, args []string) error {
			msgs, err := loadMessages(args)
			if err != nil {
				return err
			}

			var header ir.Header
			var instance []ir.InstanceMessage
			var witness []ir.WitnessMessage
			for _, m := range msgs {
				header = m.MessageHeader()
				switch msg := m.(type) {
				case ir.InstanceMessage:
					instance = append(instance, msg)
				case ir.WitnessMessage:
					witness = append(witness, msg)
				}
			}

			flat := flatten.New(ir.WireID(tmpWireStart))
			e := evaluator.New(flat, true, newLogger())
			for _, m := range msgs {
				if err := e.Ingest(m); err != nil {
					return fmt.Errorf("flatten: %w", err)
				}
			}
			if err := e.Err(); err != nil {
				return fmt.Errorf("flatten: %w", err)
			}

			flatRelation := ir.NewRelationMessage(header, ir.GateMaskArithmetic, nil, flat.Gates)
			outMsgs := make([]ir.Message, 0, len(instance)+len(witness)+1)
			for _, m := range instance {
				outMsgs = append(outMsgs, m)
			}
			for _, m := range witness {
				outMsgs = append(outMsgs, m)
			}
			outMsgs = append(outMsgs, flatRelation)
			return writeMessages(out, outMsgs)
		},
	}

	cmd.Flags().StringVarP(&out, "out", "o", "-", "output file, or - for stdout")
	cmd.Flags().Uint64Var(&tmpWireStart, "tmp-wire-start", 1<<32, "first fresh wire id to allocate while flattening (below the original's 2^63 default, leaving headroom under Go's uint64 wire space for real circuits)")
	return cmd
}
