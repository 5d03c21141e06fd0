package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/charmbracelet/bubbles/table"
	"github.com/spf13/cobra"

	"github.com/bnema/glyphs/internal/cli/styles"
)

var providersJSON bool

var providersCmd = &cobra.Command{
	Use:   "providers",
	Short: "List icon providers",
	RunE:  runProviders,
}

func init() {
	rootCmd.AddCommand(providersCmd)
	providersCmd.Flags().BoolVar(&providersJSON, "json", false, "output as JSON")
}

func runProviders(_ *cobra.Command, _ []string) error {
	app, err := requireApp()
	if err != nil {
		return err
	}

	infos := app.Catalog.Providers()
	if providersJSON {
		type providerJSON struct {
			Key         string `json:"key"`
			Title       string `json:"title"`
			Description string `json:"description"`
			Kind        string `json:"kind"`
			Async       bool   `json:"async"`
		}
		out := make([]providerJSON, 0, len(infos))
		for _, p := range infos {
			out = append(out, providerJSON{p.Key, p.Title, p.Description, p.Kind.String(), p.Async})
		}
		return writeJSON(out)
	}

	rows := make([]table.Row, 0, len(infos))
	for _, p := range infos {
		rows = append(rows, styles.ProviderRow(p))
	}
	t := styles.NewStyledTable(app.Theme, styles.ProviderTableColumns(), rows, 110, len(rows)+1)
	fmt.Println(t.View())
	return nil
}

// writeJSON prints v as indented JSON on stdout.
func writeJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
