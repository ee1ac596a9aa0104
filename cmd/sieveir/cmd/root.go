// Package cmd implements the sieveir command-line surface: a thin driver
// over the ir/evaluator/validator/backend packages, mirroring the original
// zki_sieve tool's "example / to-json / validate / evaluate / metrics /
// valid-eval-metrics / ir-to-zkif" dispatch (see original_source/rust's
// cli.rs) with spf13/cobra instead of structopt.
package cmd

import (
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/sieveir/internal/logger"
)

var verbose bool

// NewRootCmd builds the sieveir root command and wires every subcommand.
func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "sieveir",
		Short: "Tools for working with zero-knowledge statements encoded in SIEVE IR",
		Long: `sieveir is a collection of tools to work with zero-knowledge statements
encoded in SIEVE IR messages (Instance / Witness / Relation).

Produce an example statement:
    sieveir example statement.json

Validate or evaluate a statement:
    sieveir validate statement.json
    sieveir evaluate statement.json

Flatten a relation to primitive gates and inspect it:
    sieveir flatten statement.json -o flat.json
    sieveir metrics flat.json
`,
		SilenceUsage: true,
	}

	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log at debug level instead of info")

	root.AddCommand(
		newExampleCmd(),
		newValidateCmd(),
		newEvaluateCmd(),
		newFlattenCmd(),
		newMetricsCmd(),
		newValidEvalMetricsCmd(),
		newToR1CSCmd(),
	)
	return root
}

func newLogger() logger.Logger {
	level := zerolog.InfoLevel
	if verbose {
		level = zerolog.DebugLevel
	}
	return logger.New(os.Stderr, level)
}
