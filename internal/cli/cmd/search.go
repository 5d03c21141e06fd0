package cmd

import (
	"fmt"

	"github.com/charmbracelet/bubbles/table"
	"github.com/spf13/cobra"

	"github.com/bnema/glyphs/internal/application/usecase"
	"github.com/bnema/glyphs/internal/cli"
	"github.com/bnema/glyphs/internal/cli/styles"
)

var (
	searchProvider string
	searchQuery    string
	searchPage     int
	searchDesc     bool
	searchJSON     bool
)

var searchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Filter, sort and paginate a provider's icons",
	Long: `Print one page of a provider's catalog.

The query is a case-insensitive substring of the icon name.

Examples:
  glyphs search --provider feather arrow
  glyphs search --provider iconify-mdi --page 2 --desc --json`,
	Args: cobra.MaximumNArgs(1),
	RunE: runSearch,
}

func init() {
	rootCmd.AddCommand(searchCmd)
	addProviderFlag(searchCmd, &searchProvider)
	searchCmd.Flags().StringVarP(&searchQuery, "query", "q", "", "name filter")
	searchCmd.Flags().IntVar(&searchPage, "page", 1, "page number (1-based)")
	searchCmd.Flags().BoolVar(&searchDesc, "desc", false, "sort names descending")
	searchCmd.Flags().BoolVar(&searchJSON, "json", false, "output as JSON")
}

func addProviderFlag(cmd *cobra.Command, target *string) {
	cmd.Flags().StringVarP(target, "provider", "p", "", "provider key (see 'glyphs providers')")
	_ = cmd.MarkFlagRequired("provider")
}

// openPage opens provider without prefetching and returns the requested
// catalog page.
func openPage(app *cli.App, provider, query string, page int, ascending bool) (usecase.IndexOutput, error) {
	if err := app.Catalog.Open(app.Ctx(), provider); err != nil {
		return usecase.IndexOutput{}, err
	}
	app.Catalog.Search(query)
	app.Catalog.SetSortAscending(ascending)
	app.Catalog.SetPage(page)
	return app.Catalog.View(), nil
}

func runSearch(_ *cobra.Command, args []string) error {
	app, err := requireApp()
	if err != nil {
		return err
	}
	query := searchQuery
	if len(args) == 1 {
		query = args[0]
	}

	view, err := openPage(app, searchProvider, query, searchPage, !searchDesc)
	if err != nil {
		return err
	}

	if searchJSON {
		type iconJSON struct {
			Name string `json:"name"`
			Kind string `json:"kind"`
		}
		type pageJSON struct {
			Provider   string     `json:"provider"`
			Query      string     `json:"query"`
			Total      int        `json:"total"`
			Page       int        `json:"page"`
			TotalPages int        `json:"total_pages"`
			Icons      []iconJSON `json:"icons"`
		}
		out := pageJSON{
			Provider:   searchProvider,
			Query:      query,
			Total:      len(view.Filtered),
			Page:       view.Page,
			TotalPages: view.TotalPages,
			Icons:      make([]iconJSON, 0, len(view.Paginated)),
		}
		for _, d := range view.Paginated {
			out.Icons = append(out.Icons, iconJSON{Name: d.Name(), Kind: d.Kind().String()})
		}
		return writeJSON(out)
	}

	offset := (view.Page - 1) * view.PageSize
	rows := make([]table.Row, 0, len(view.Paginated))
	for i, d := range view.Paginated {
		rows = append(rows, styles.IconRow(offset+i+1, d))
	}
	t := styles.NewStyledTable(app.Theme, styles.IconTableColumns(), rows, 56, len(rows)+1)
	fmt.Println(t.View())
	fmt.Printf("%s %s\n", app.Theme.CountBadge(len(view.Filtered)), app.Theme.PageBadge(view.Page, view.TotalPages))
	return nil
}
