// Search command queries the SQLite index built from the collected tree.
package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/casebook/internal/index"
)

var searchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Search test cases by identifier, title or purpose",
	Long: `Search collects the instance tree, loads it into an in-memory
index, and matches the query case-insensitively against identifier,
title and purpose.

Example:
  casebook search export
  casebook search II_EXF --json`,
	Args: cobra.ExactArgs(1),
	RunE: runSearch,
}

func runSearch(cmd *cobra.Command, args []string) error {
	tree, err := collector(instanceDir).Collect(nil)
	if err != nil {
		return err
	}

	ix, err := index.Open()
	if err != nil {
		return err
	}
	defer ix.Close()

	if err := ix.Ingest(tree); err != nil {
		return err
	}
	rows, err := ix.Search(args[0])
	if err != nil {
		return err
	}

	if flagJSON {
		return printJSON(rows)
	}
	if len(rows) == 0 {
		fmt.Println("No matches")
		return nil
	}
	for _, r := range rows {
		fmt.Printf("%s/%s  %-16s %-8s %s", r.Module, r.Category, r.ID, r.Status, r.Title)
		if len(r.Profiles) > 0 {
			fmt.Printf("  [%s]", strings.Join(r.Profiles, " "))
		}
		fmt.Println()
	}
	return nil
}
