package cmd

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/bnema/glyphs/internal/cli/model"
	"github.com/bnema/glyphs/internal/infrastructure/config"
	"github.com/bnema/glyphs/internal/logging"
)

var browseProvider string

var browseCmd = &cobra.Command{
	Use:   "browse",
	Short: "Browse icons interactively",
	Long: `Interactive icon browser with provider tabs, live search, palettes and
snippet export.

Keys: / search, s sort, p palette, [ ] subcolor, tab next letter,
{ } switch provider, enter select, c copy snippet, ? help.`,
	Annotations: map[string]string{interactive: "true"},
	RunE:        runBrowse,
}

func init() {
	rootCmd.AddCommand(browseCmd)
	browseCmd.Flags().StringVarP(&browseProvider, "provider", "p", "", "provider to open first")
}

func runBrowse(_ *cobra.Command, _ []string) error {
	app, err := requireApp()
	if err != nil {
		return err
	}

	provider := browseProvider
	if provider == "" {
		provider = app.Config.Catalog.DefaultProvider
	}

	bc := model.BrowserConfig{
		Catalog:   app.Catalog,
		Selection: app.Selection,
		Renderer:  app.Renderer,
		Clipboard: app.Clipboard,
		Config:    app.Config,
		Provider:  provider,
	}
	if app.ConfigManager != nil {
		bc.SaveColor = app.ConfigManager.SaveRenderSelection
	}

	m := model.NewBrowserModel(app.Ctx(), app.Theme, bc)
	p := tea.NewProgram(m, tea.WithAltScreen())

	if mgr := app.ConfigManager; mgr != nil {
		mgr.OnConfigChange(func(cfg *config.Config) {
			p.Send(model.ConfigReloadedMsg{Config: cfg})
		})
		mgr.Watch(app.Ctx())
	}

	logging.FromContext(app.Ctx()).Debug().Str("provider", provider).Msg("starting browser")
	_, err = p.Run()
	return err
}
