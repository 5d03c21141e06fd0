// Package cmd provides Cobra CLI commands for glyphs.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/bnema/glyphs/internal/cli"
	"github.com/bnema/glyphs/internal/domain/build"
)

// interactive marks commands that draw a TUI; their logs stay off the terminal.
const interactive = "interactive"

var (
	app       *cli.App
	buildInfo build.Info
	rootCmd   = &cobra.Command{
		Use:   "glyphs",
		Short: "Browse, search and export icons from several icon sets",
		Long: `glyphs - one catalog over heterogeneous icon sets.

Every icon set (components, SVG path data, icon-font classes, unicode glyphs
and remote icons fetched on demand) is normalized into one descriptor model,
so the same search, sort, pagination and export work everywhere.

Run 'glyphs' or 'glyphs browse' for the interactive browser, or use the
subcommands for scripting.`,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			// These never touch the catalog.
			switch cmd.Name() {
			case "help", "completion", "version", "schema":
				return nil
			}

			var err error
			app, err = cli.NewApp(cli.Options{Interactive: cmd.Annotations[interactive] == "true"})
			if err != nil {
				return fmt.Errorf("initialize app: %w", err)
			}
			return nil
		},
		PersistentPostRun: func(_ *cobra.Command, _ []string) {
			if app != nil {
				_ = app.Close()
			}
		},
		SilenceUsage: true,
		RunE:         runBrowse,
		Annotations:  map[string]string{interactive: "true"},
	}
)

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// SetBuildInfo sets the build information (called from main.go before Execute).
func SetBuildInfo(info build.Info) {
	buildInfo = info
}

// requireApp returns the app or an error when initialization was skipped.
func requireApp() (*cli.App, error) {
	if app == nil {
		return nil, fmt.Errorf("app not initialized")
	}
	return app, nil
}
