// Profiles command prints the derived active-profile set.
package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/casebook/internal/paths"
	"github.com/mesh-intelligence/casebook/internal/profiles"
	"github.com/mesh-intelligence/casebook/internal/xmlcodec"
)

var profilesCmd = &cobra.Command{
	Use:   "profiles",
	Short: "Derive the active profiles from the checklist",
	Long: `Profiles parses the instance checklist (profiles.xml, falling back
to profiles-template.xml) and prints the active profiles its answered
questions derive. Unanswered questions contribute nothing.`,
	RunE: runProfiles,
}

func runProfiles(cmd *cobra.Command, args []string) error {
	path, ok := paths.ProfilesFile(instanceDir)
	if !ok {
		return fmt.Errorf("no checklist found in %s", paths.TestcasesDir(instanceDir))
	}

	cfg, err := xmlcodec.LoadProfileConfiguration(path)
	if err != nil {
		return err
	}
	active := profiles.DeriveActive(cfg)

	if flagJSON {
		return printJSON(struct {
			Completed bool     `json:"completed"`
			Mode      string   `json:"filterMode"`
			Active    []string `json:"activeProfiles"`
		}{cfg.Completed, cfg.Template.ProfileFilterMode, active})
	}

	if len(active) == 0 {
		fmt.Println("No active profiles")
		return nil
	}
	for _, p := range active {
		fmt.Println(p)
	}
	return nil
}
