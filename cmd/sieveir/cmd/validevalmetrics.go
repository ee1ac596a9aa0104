package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newValidEvalMetricsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "valid-eval-metrics [files...]",
		Short: "Combined validate, evaluate, and metrics",
		RunE: func(c *cobra.Command, args []string) error {
			msgs, err := loadMessages(args)
			if err != nil {
				return err
			}

			v := runValidator(msgs, true)
			if violations := v.Violations(); len(violations) > 0 {
				for _, msg := range violations {
					fmt.Fprintln(c.OutOrStdout(), "violation:", msg)
				}
				return fmt.Errorf("valid-eval-metrics: %d violation(s) found", len(violations))
			}
			fmt.Fprintln(c.OutOrStdout(), "validate: no violations found")

			if err := runEvaluator(msgs, true); err != nil {
				return fmt.Errorf("valid-eval-metrics: %w", err)
			}
			fmt.Fprintln(c.OutOrStdout(), "evaluate: no violations found")

			printStats(c, collectStats(msgs))
			return nil
		},
	}
	return cmd
}
