// Command sieveir is the CLI front end for the SIEVE IR toolchain: produce
// example statements, validate or evaluate them, flatten composite gates to
// primitive ones, and report circuit statistics.
package main

import (
	"fmt"
	"os"

	"github.com/sieveir/cmd/sieveir/cmd"
)

func main() {
	if err := cmd.NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "sieveir:", err)
		os.Exit(1)
	}
}
