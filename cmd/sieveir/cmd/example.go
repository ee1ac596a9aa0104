package cmd

import (
	"fmt"

	"github.com/consensys/gnark-crypto/ecc"
	"github.com/spf13/cobra"

	"github.com/sieveir/examples"
	"github.com/sieveir/ir"
)

func newExampleCmd() *cobra.Command {
	var incorrect bool
	var curve string

	cmd := &cobra.Command{
		Use:   "example [output-file]",
		Short: "Produce an example statement",
		Long: `Produce an example statement: an Instance, a Witness, and a Relation
message, JSON-encoded to the given file ("-" or omitted for stdout).

By default this is the toy modulus-101 Pythagorean-triple relation also used
by the evaluator's own tests. --curve sizes the same shape of statement to a
real curve's scalar field instead.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(c *cobra.Command, args []string) error {
			out := "-"
			if len(args) == 1 {
				out = args[0]
			}

			if curve != "" {
				id, err := parseCurve(curve)
				if err != nil {
					return err
				}
				_, instance, witness, relation := examples.CurveRelation(id)
				return writeMessages(out, []ir.Message{instance, witness, relation})
			}

			witness := examples.Witness()
			if incorrect {
				witness = examples.WitnessIncorrect()
			}
			return writeMessages(out, []ir.Message{examples.Instance(), witness, examples.Relation()})
		},
	}

	cmd.Flags().BoolVar(&incorrect, "incorrect", false, "generate an incorrect witness, useful for negative tests")
	cmd.Flags().StringVar(&curve, "curve", "", "size the example statement to a real curve's scalar field (bn254, bls12-377, bls12-381, bw6-761)")
	return cmd
}

func parseCurve(name string) (ecc.ID, error) {
	switch name {
	case "bn254":
		return ecc.BN254, nil
	case "bls12-377":
		return ecc.BLS12_377, nil
	case "bls12-381":
		return ecc.BLS12_381, nil
	case "bw6-761":
		return ecc.BW6_761, nil
	default:
		return 0, fmt.Errorf("unknown curve %q", name)
	}
}
