// Init command scaffolds a new instance directory.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/casebook/internal/config"
	"github.com/mesh-intelligence/casebook/internal/paths"
	"github.com/mesh-intelligence/casebook/internal/xmlcodec"
	"github.com/mesh-intelligence/casebook/pkg/types"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize an empty casebook instance",
	Long: `Init creates the instance layout in the instance directory: the
testcases tree, the attachment area, a casebook.yaml with a fresh
instance id, and an unfilled profiles-template.xml.

Existing files are left untouched, so init is safe to re-run.`,
	RunE: runInit,
}

func runInit(cmd *cobra.Command, args []string) error {
	for _, dir := range []string{
		paths.TestcasesDir(instanceDir),
		paths.AttachmentsDir(instanceDir),
	} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create %s: %w", dir, err)
		}
	}

	configPath := paths.ConfigFile(instanceDir)
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		content := fmt.Sprintf("# Casebook instance configuration\n%s: %s\n%s: %s\n",
			config.KeyInstanceID, uuid.NewString(), config.KeyFilterMode, types.FilterModeOR)
		if err := os.WriteFile(configPath, []byte(content), 0o644); err != nil {
			return fmt.Errorf("write config: %w", err)
		}
	}

	templatePath := filepath.Join(paths.TestcasesDir(instanceDir), paths.ProfilesTemplateName)
	if _, err := os.Stat(templatePath); os.IsNotExist(err) {
		template := &types.ProfileConfiguration{Version: "1.0"}
		if err := xmlcodec.SaveProfileConfiguration(templatePath, template); err != nil {
			return fmt.Errorf("write profiles template: %w", err)
		}
	}

	fmt.Printf("Initialized casebook instance in %s\n", instanceDir)
	return nil
}
