// Report command emits the grouped entry sequence renderers consume.
package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/casebook/internal/aggregate"
	"github.com/mesh-intelligence/casebook/internal/grouping"
)

var reportNoFilter bool

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Produce the grouped report sequence",
	Long: `Report collects the filtered test cases, reconstructs base/variant
groups from their identifiers, and emits the ordered entry sequence with
group markers and gap callouts. PDF and DOCX renderers consume this
sequence as-is.`,
	RunE: runReport,
}

func init() {
	reportCmd.Flags().BoolVar(&reportNoFilter, "no-filter", false, "include every test case regardless of profiles")
}

func runReport(cmd *cobra.Command, args []string) error {
	var filter *aggregate.ProfileFilter
	if !reportNoFilter {
		f, err := activeFilter(instanceDir)
		if err != nil {
			return err
		}
		filter = f
	}

	tree, err := collector(instanceDir).Collect(filter)
	if err != nil {
		return err
	}

	entries := grouping.Build(treeSummaries(tree))
	if flagJSON {
		return printJSON(entries)
	}

	for _, e := range entries {
		switch e.Kind {
		case grouping.KindTestcase:
			fmt.Printf("%-16s %-8s %s\n", e.Testcase.ID, e.Testcase.Status, e.Testcase.Title)
		case grouping.KindGroupStart:
			fmt.Printf("group %s (%d cases)\n", e.GroupID, e.GroupSize)
		case grouping.KindGroupEnd:
			// group boundary carries no text of its own
		case grouping.KindBaseGap:
			fmt.Printf("  !! missing %d case(s) between %s and %s\n", e.MissingCount, e.FromID, e.ToID)
		case grouping.KindVariantGap:
			fmt.Printf("  !! missing %d variant(s) between %s and %s\n", e.MissingCount, e.FromVariant, e.ToVariant)
		}
	}
	return nil
}

// treeSummaries flattens the collected tree into report summaries, keeping
// the deterministic module/category/identifier order.
func treeSummaries(tree *aggregate.Tree) []grouping.Summary {
	var out []grouping.Summary
	for _, m := range tree.Modules {
		for _, c := range m.Categories {
			for _, tc := range c.TestCases {
				out = append(out, grouping.Summary{
					ID:       tc.ID,
					Title:    tc.Title,
					Status:   tc.Status,
					Profiles: tc.Profiles,
					Module:   m.Name,
					Category: c.Name,
				})
			}
		}
	}
	return out
}
