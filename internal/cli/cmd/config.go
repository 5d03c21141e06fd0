package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/bnema/glyphs/internal/cli/styles"
	"github.com/bnema/glyphs/internal/infrastructure/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage configuration",
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Show the config, schema and database locations",
	RunE:  runConfigPath,
}

var configSchemaCmd = &cobra.Command{
	Use:   "schema",
	Short: "Print the JSON schema of config.toml",
	Long: `Print the JSON schema of config.toml. Editors with TOML schema support
(taplo, Even Better TOML) use it for completion and validation.`,
	RunE: runConfigSchema,
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configPathCmd)
	configCmd.AddCommand(configSchemaCmd)
}

func runConfigPath(_ *cobra.Command, _ []string) error {
	app, err := requireApp()
	if err != nil {
		return err
	}

	renderer := styles.NewConfigRenderer(app.Theme)
	if app.ConfigManager == nil {
		fmt.Println(renderer.RenderError(fmt.Errorf("config directory unavailable, using defaults")))
		return nil
	}

	db := app.DatabasePath()
	if db == "" {
		db = "(asset cache disabled)"
	}
	fmt.Println(renderer.RenderConfigInfo(app.ConfigManager.ConfigFile(), app.ConfigManager.SchemaFile(), db))
	return nil
}

func runConfigSchema(_ *cobra.Command, _ []string) error {
	data, err := config.SchemaJSON()
	if err != nil {
		return err
	}
	_, err = os.Stdout.Write(append(data, '\n'))
	return err
}
