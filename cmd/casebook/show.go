// Show command prints one parsed document.
package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/casebook/internal/paths"
	"github.com/mesh-intelligence/casebook/internal/xmlcodec"
)

var showCmd = &cobra.Command{
	Use:   "show <module> <category> <id>",
	Short: "Show one test case",
	Args:  cobra.ExactArgs(3),
	RunE:  runShow,
}

func runShow(cmd *cobra.Command, args []string) error {
	path := paths.TestcaseFile(instanceDir, args[0], args[1], args[2])
	tc, err := xmlcodec.LoadTestCase(path)
	if err != nil {
		return err
	}

	if flagJSON {
		return printJSON(tc)
	}

	status := tc.Status
	if status == "" {
		status = "open"
	}
	fmt.Printf("%s  [%s]  %s\n", tc.ID, status, tc.Title)
	if tc.Purpose != "" {
		fmt.Printf("  purpose: %s\n", tc.Purpose)
	}
	if len(tc.Profiles) > 0 {
		fmt.Printf("  profiles: %v\n", tc.Profiles)
	}
	for i, step := range tc.Steps {
		fmt.Printf("  step %d: %s\n", i+1, step.Command)
		for j, er := range step.ExpectedResults {
			fmt.Printf("    %s: %s\n", xmlcodec.ExpectedResultID(i+1, j+1), er.Text)
		}
	}
	for _, n := range tc.Notes {
		fmt.Printf("  note (%s): %s\n", n.Author, n.Text)
	}
	for _, a := range tc.Attachments {
		fmt.Printf("  attachment: %s (%d bytes)\n", a.OriginalFilename, a.Size)
	}
	return nil
}
