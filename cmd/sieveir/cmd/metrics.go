package cmd

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/sieveir/ir"
	"github.com/sieveir/stats"
)

func newMetricsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "metrics [files...]",
		Short: "Calculate statistics about a relation's gates",
		RunE: func(c *cobra.Command, args []string) error {
			msgs, err := loadMessages(args)
			if err != nil {
				return err
			}
			counts := collectStats(msgs)
			printStats(c, counts)
			return nil
		},
	}
	return cmd
}

func collectStats(msgs []ir.Message) stats.Counts {
	fns := make(map[string]ir.Function)
	var gates []ir.Gate
	for _, m := range msgs {
		rel, ok := m.(ir.RelationMessage)
		if !ok {
			continue
		}
		for _, fn := range rel.Functions {
			fns[fn.Name] = fn
		}
		gates = append(gates, rel.Gates...)
	}
	return stats.Collect(gates, fns)
}

func printStats(c *cobra.Command, counts stats.Counts) {
	kinds := make([]string, 0, len(counts.ByKind))
	total := 0
	for k, n := range counts.ByKind {
		kinds = append(kinds, k)
		total += n
	}
	sort.Strings(kinds)
	for _, k := range kinds {
		fmt.Fprintf(c.OutOrStdout(), "%-14s %d\n", k, counts.ByKind[k])
	}
	fmt.Fprintf(c.OutOrStdout(), "%-14s %d\n", "total", total)
	fmt.Fprintf(c.OutOrStdout(), "%-14s %d\n", "max_depth", counts.MaxDepth)
}
