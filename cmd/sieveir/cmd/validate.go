package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sieveir/ir"
	"github.com/sieveir/validator"
)

func newValidateCmd() *cobra.Command {
	var asProver bool

	cmd := &cobra.Command{
		Use:   "validate [files...]",
		Short: "Validate the format and semantics of a statement",
		Long: `Validate the format and semantics of a statement, as seen by a verifier
by default (pass --prover to additionally accept Witness messages).`,
		RunE: func(c *cobra.Command, args []string) error {
			msgs, err := loadMessages(args)
			if err != nil {
				return err
			}
			v := runValidator(msgs, asProver)
			violations := v.Violations()
			if len(violations) == 0 {
				fmt.Fprintln(c.OutOrStdout(), "validate: no violations found")
				return nil
			}
			for _, msg := range violations {
				fmt.Fprintln(c.OutOrStdout(), "violation:", msg)
			}
			return fmt.Errorf("validate: %d violation(s) found", len(violations))
		},
	}

	cmd.Flags().BoolVar(&asProver, "prover", false, "also validate witness messages, as a prover would see them")
	return cmd
}

func runValidator(msgs []ir.Message, asProver bool) *validator.Validator {
	v := validator.New(asProver)
	for _, m := range msgs {
		v.Ingest(m)
	}
	v.Finalize()
	return v
}
