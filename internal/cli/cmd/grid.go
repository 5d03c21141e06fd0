package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/bnema/glyphs/internal/logging"
	"github.com/bnema/glyphs/internal/render"
)

var (
	gridProvider string
	gridQuery    string
	gridPage     int
	gridDesc     bool
	gridSize     int
	gridColor    string
	gridTimeout  time.Duration
	gridOutput   string
)

var gridCmd = &cobra.Command{
	Use:   "grid",
	Short: "Write one catalog page as a standalone HTML grid",
	Long: `Render one page of a provider's catalog to HTML.

Remote icons are awaited up to --timeout; icons still loading are written as
placeholders and failed ones as empty cells.

Examples:
  glyphs grid --provider brands > brands.html
  glyphs grid --provider iconify-mdi --query account -o account.html`,
	RunE: runGrid,
}

func init() {
	rootCmd.AddCommand(gridCmd)
	addProviderFlag(gridCmd, &gridProvider)
	gridCmd.Flags().StringVarP(&gridQuery, "query", "q", "", "name filter")
	gridCmd.Flags().IntVar(&gridPage, "page", 1, "page number (1-based)")
	gridCmd.Flags().BoolVar(&gridDesc, "desc", false, "sort names descending")
	gridCmd.Flags().IntVar(&gridSize, "size", 0, "size in pixels (default from config)")
	gridCmd.Flags().StringVar(&gridColor, "color", "", "render color (default from the configured palette)")
	gridCmd.Flags().DurationVar(&gridTimeout, "timeout", defaultWait, "how long to wait for remote icons")
	gridCmd.Flags().StringVarP(&gridOutput, "output", "o", "", "write to file instead of stdout")
}

func runGrid(_ *cobra.Command, _ []string) error {
	app, err := requireApp()
	if err != nil {
		return err
	}
	log := logging.FromContext(app.Ctx())

	view, err := openPage(app, gridProvider, gridQuery, gridPage, !gridDesc)
	if err != nil {
		return err
	}

	if session := app.Catalog.Assets(); session != nil {
		for _, d := range view.Paginated {
			session.Ensure(d)
		}
		ctx, cancel := context.WithTimeout(app.Ctx(), gridTimeout)
		err := session.Wait(ctx)
		cancel()
		if errors.Is(err, context.DeadlineExceeded) {
			log.Warn().Int("pending", session.Pending()).Msg("writing grid before every asset settled")
		}
	}

	summary := fmt.Sprintf("%d icons, page %d of %d", len(view.Filtered), view.Page, view.TotalPages)
	if gridQuery != "" {
		summary = fmt.Sprintf("%q: %s", gridQuery, summary)
	}
	page := app.Renderer.BuildPage(gridProvider, summary, view.Paginated, renderRequest(app, gridSize, gridColor))

	var w io.Writer = os.Stdout
	if gridOutput != "" {
		f, err := os.Create(gridOutput)
		if err != nil {
			return fmt.Errorf("create %s: %w", gridOutput, err)
		}
		defer f.Close()
		w = f
	}
	if err := render.WriteHTML(w, page); err != nil {
		return err
	}
	if gridOutput != "" {
		fmt.Fprintln(os.Stderr, app.Theme.SuccessStyle.Render("wrote "+gridOutput))
	}
	return nil
}
