// Root command: global flags, instance resolution and logging setup.
package main

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/casebook/internal/paths"
)

// Global flag values shared by all subcommands.
var (
	flagInstanceDir string
	flagJSON        bool
	flagVerbose     bool
)

// instanceDir is resolved once by PersistentPreRunE.
var instanceDir string

var rootCmd = &cobra.Command{
	Use:   "casebook",
	Short: "Casebook manages compliance test-case documentation",
	Long: `Casebook manages structured compliance test cases stored as XML
documents, derives applicability profiles from a checklist, and produces
the filtered statistics and grouped sequences reports are built from.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		dir, err := paths.ResolveInstanceDir(flagInstanceDir)
		if err != nil {
			return err
		}
		instanceDir = dir
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagInstanceDir, "instance-dir", "", "instance directory (default: $CASEBOOK_INSTANCE_DIR or CWD)")
	rootCmd.PersistentFlags().BoolVar(&flagJSON, "json", false, "output as JSON")
	rootCmd.PersistentFlags().BoolVar(&flagVerbose, "verbose", false, "log skipped documents and other details")

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(profilesCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(reportCmd)
	rootCmd.AddCommand(searchCmd)
	rootCmd.AddCommand(showCmd)
	rootCmd.AddCommand(noteCmd)
	rootCmd.AddCommand(attachCmd)
}

// newLogger builds the CLI logger. Warnings about skipped documents are
// always visible; --verbose adds info-level detail.
func newLogger() *slog.Logger {
	level := slog.LevelWarn
	if flagVerbose {
		level = slog.LevelInfo
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}
