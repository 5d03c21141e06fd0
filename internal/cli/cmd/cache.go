package cmd

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/bnema/glyphs/internal/cli"
	"github.com/bnema/glyphs/internal/cli/styles"
)

var (
	cacheProvider  string
	cacheOlderThan time.Duration
)

var cacheCmd = &cobra.Command{
	Use:   "cache",
	Short: "Inspect and clean the remote icon cache",
}

var cacheStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show how many remote icons are cached",
	RunE:  runCacheStats,
}

var cachePruneCmd = &cobra.Command{
	Use:   "prune",
	Short: "Delete cached icons fetched before --older-than",
	RunE:  runCachePrune,
}

var cachePurgeCmd = &cobra.Command{
	Use:   "purge",
	Short: "Delete every cached icon, or those of --provider",
	RunE:  runCachePurge,
}

func init() {
	rootCmd.AddCommand(cacheCmd)
	cacheCmd.AddCommand(cacheStatsCmd, cachePruneCmd, cachePurgeCmd)

	cacheStatsCmd.Flags().StringVarP(&cacheProvider, "provider", "p", "", "limit to one provider")
	cachePurgeCmd.Flags().StringVarP(&cacheProvider, "provider", "p", "", "limit to one provider")
	cachePruneCmd.Flags().DurationVar(&cacheOlderThan, "older-than", 30*24*time.Hour, "age of the icons to delete")
}

var errCacheDisabled = errors.New("asset cache is disabled (assets.cache_enabled = false)")

func cacheApp() (*cli.App, error) {
	app, err := requireApp()
	if err != nil {
		return nil, err
	}
	if app.Store == nil {
		return nil, errCacheDisabled
	}
	return app, nil
}

func runCacheStats(_ *cobra.Command, _ []string) error {
	app, err := cacheApp()
	if err != nil {
		return err
	}
	n, err := app.Store.Count(app.Ctx(), cacheProvider)
	if err != nil {
		return err
	}
	fmt.Printf("%s %s %s\n",
		app.Theme.Highlight.Render(styles.IconDatabase),
		app.Theme.CountBadge(n),
		app.Theme.Subtle.Render(app.DatabasePath()),
	)
	return nil
}

func runCachePrune(_ *cobra.Command, _ []string) error {
	app, err := cacheApp()
	if err != nil {
		return err
	}
	n, err := app.Store.Prune(app.Ctx(), time.Now().Add(-cacheOlderThan))
	if err != nil {
		return err
	}
	fmt.Print(styles.NewConfigRenderer(app.Theme).RenderSuccess(fmt.Sprintf("pruned %d cached icons", n)))
	return nil
}

func runCachePurge(_ *cobra.Command, _ []string) error {
	app, err := cacheApp()
	if err != nil {
		return err
	}
	n, err := app.Store.Purge(app.Ctx(), cacheProvider)
	if err != nil {
		return err
	}
	fmt.Print(styles.NewConfigRenderer(app.Theme).RenderSuccess(fmt.Sprintf("purged %d cached icons", n)))
	return nil
}
