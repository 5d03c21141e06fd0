package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/bnema/glyphs/internal/application/usecase"
)

var (
	snippetProvider string
	snippetName     string
	snippetSize     int
	snippetColor    string
	snippetCopy     bool
)

var snippetCmd = &cobra.Command{
	Use:   "snippet",
	Short: "Print the export snippet of one icon",
	Long: `Print the code snippet that embeds an icon, using the template of its kind.

Templates can be overridden per kind under [export.templates] in config.toml.`,
	RunE: runSnippet,
}

func init() {
	rootCmd.AddCommand(snippetCmd)
	addProviderFlag(snippetCmd, &snippetProvider)
	addIconFlags(snippetCmd, &snippetName, &snippetSize, &snippetColor)
	snippetCmd.Flags().BoolVarP(&snippetCopy, "copy", "c", false, "also copy to the clipboard")
}

func runSnippet(_ *cobra.Command, _ []string) error {
	app, err := requireApp()
	if err != nil {
		return err
	}

	d, err := findIcon(app, snippetProvider, snippetName)
	if err != nil {
		return err
	}
	app.Selection.Select(d)

	req := renderRequest(app, snippetSize, snippetColor)
	text := app.Selection.ExportSnippet(d, usecase.ExportOptions{Size: req.Size, Color: req.Color})
	fmt.Println(text)

	if snippetCopy {
		if err := app.Clipboard.WriteText(app.Ctx(), text); err != nil {
			return fmt.Errorf("copy snippet: %w", err)
		}
	}
	return nil
}
