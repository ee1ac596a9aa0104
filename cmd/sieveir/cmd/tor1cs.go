package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sieveir/ir"
	"github.com/sieveir/r1cs"
)

func newToR1CSCmd() *cobra.Command {
	var modularReduce bool

	cmd := &cobra.Command{
		Use:   "to-r1cs [files...]",
		Short: "Convert a flattened relation into a rank-1 constraint system",
		Long: `Convert a flattened relation (primitive gates only — run "flatten" first
if the input still has Call/AnonCall/For/Switch gates) into a rank-1
constraint system, printing its constraint count. This is a reduced stand-in
for the original's zkinterface R1CS bridge ("ir-to-zkif"); no flatbuffers
file is produced.`,
		RunE: func(c *cobra.Command, args []string) error {
			msgs, err := loadMessages(args)
			if err != nil {
				return err
			}

			var field ir.Field
			var gates []ir.Gate
			for _, m := range msgs {
				if rel, ok := m.(ir.RelationMessage); ok {
					field = rel.MessageHeader().Field
					gates = append(gates, rel.Gates...)
				}
			}

			sys, err := r1cs.Convert(field, gates, r1cs.Options{ModularReduce: modularReduce})
			if err != nil {
				return fmt.Errorf("to-r1cs: %w", err)
			}
			fmt.Fprintf(c.OutOrStdout(), "to-r1cs: %d constraint(s) over field characteristic %s\n",
				len(sys.Constraints), sys.Field.Characteristic.String())
			return nil
		},
	}

	cmd.Flags().BoolVar(&modularReduce, "modular-reduce", false, "bake in modular reduction for R1CS consumers that don't respect field size")
	return cmd
}
