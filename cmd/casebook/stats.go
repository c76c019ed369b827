// Stats command prints aggregated status totals.
package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/casebook/internal/aggregate"
)

var statsNoFilter bool

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Aggregate test-case statistics for the instance",
	Long: `Stats walks the testcases tree, applies the active-profile filter
derived from the checklist, and prints per-module and overall totals of
passed, failed, skipped and open cases plus a progress percentage.

Example:
  casebook stats
  casebook stats --no-filter --json`,
	RunE: runStats,
}

func init() {
	statsCmd.Flags().BoolVar(&statsNoFilter, "no-filter", false, "include every test case regardless of profiles")
}

func runStats(cmd *cobra.Command, args []string) error {
	var filter *aggregate.ProfileFilter
	if !statsNoFilter {
		f, err := activeFilter(instanceDir)
		if err != nil {
			return err
		}
		filter = f
	}

	tree, err := collector(instanceDir).CollectDetailed(filter)
	if err != nil {
		return err
	}

	if flagJSON {
		return printJSON(tree)
	}

	for _, m := range tree.Modules {
		fmt.Printf("%-20s passed %3d  failed %3d  skipped %3d  open %3d  (%d%%)\n",
			m.Name, m.Totals.Passed, m.Totals.Failed, m.Totals.Skipped, m.Totals.Open, m.Totals.Progress)
	}
	t := tree.Totals
	fmt.Printf("%-20s passed %3d  failed %3d  skipped %3d  open %3d  (%d%%)\n",
		"total", t.Passed, t.Failed, t.Skipped, t.Open, t.Progress)
	return nil
}
