package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sieveir/backend/plaintext"
	"github.com/sieveir/evaluator"
	"github.com/sieveir/ir"
)

func newEvaluateCmd() *cobra.Command {
	var asProver bool

	cmd := &cobra.Command{
		Use:   "evaluate [files...]",
		Short: "Evaluate a circuit to check that the witness satisfies it",
		Args:  cobra.ArbitraryArgs,
		RunE: func(c *cobra.Command, args []string) error {
			msgs, err := loadMessages(args)
			if err != nil {
				return err
			}
			if err := runEvaluator(msgs, asProver); err != nil {
				return err
			}
			fmt.Fprintln(c.OutOrStdout(), "evaluate: no violations found")
			return nil
		},
	}

	cmd.Flags().BoolVar(&asProver, "prover", true, "evaluate as a prover (pops real witness values)")
	return cmd
}

func runEvaluator(msgs []ir.Message, asProver bool) error {
	e := evaluator.New(plaintext.New(), asProver, newLogger())
	for _, m := range msgs {
		if err := e.Ingest(m); err != nil {
			return err
		}
	}
	return e.Err()
}
