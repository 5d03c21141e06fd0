package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/bnema/glyphs/internal/application/usecase"
	"github.com/bnema/glyphs/internal/cli"
	"github.com/bnema/glyphs/internal/domain/entity"
	"github.com/bnema/glyphs/internal/render"
)

const defaultWait = 10 * time.Second

var (
	renderProvider string
	renderName     string
	renderSize     int
	renderColor    string
	renderWait     time.Duration
)

var renderCmd = &cobra.Command{
	Use:   "render",
	Short: "Print the markup of one icon",
	Long: `Render one icon with the configured palette and print its markup.

Remote icons are fetched first; --wait bounds how long that may take.

Examples:
  glyphs render --provider feather --name arrow-right --size 32
  glyphs render --provider iconify-mdi --name account --color "#ff0000"`,
	RunE: runRender,
}

func init() {
	rootCmd.AddCommand(renderCmd)
	addProviderFlag(renderCmd, &renderProvider)
	addIconFlags(renderCmd, &renderName, &renderSize, &renderColor)
	renderCmd.Flags().DurationVar(&renderWait, "wait", defaultWait, "how long to wait for remote icons")
}

func addIconFlags(cmd *cobra.Command, name *string, size *int, color *string) {
	cmd.Flags().StringVarP(name, "name", "n", "", "icon name")
	_ = cmd.MarkFlagRequired("name")
	cmd.Flags().IntVar(size, "size", 0, "size in pixels (default from config)")
	cmd.Flags().StringVar(color, "color", "", "render color (default from the configured palette)")
}

// renderRequest fills unset flags from the config.
func renderRequest(app *cli.App, size int, color string) render.Request {
	if size <= 0 {
		size = app.Config.Render.Size
	}
	if color == "" {
		color = app.ColorSelection().Color()
	}
	return render.Request{Size: size, Color: color}
}

// findIcon opens provider and returns the named descriptor.
func findIcon(app *cli.App, provider, name string) (entity.Descriptor, error) {
	if err := app.Catalog.Open(app.Ctx(), provider); err != nil {
		return entity.Descriptor{}, err
	}
	d, ok := app.Catalog.Find(name)
	if !ok {
		return entity.Descriptor{}, fmt.Errorf("no icon %q in provider %s", name, provider)
	}
	return d, nil
}

// waitForAsset blocks until the asset of d settles or timeout elapses.
func waitForAsset(ctx context.Context, session *usecase.AssetSession, d entity.Descriptor, timeout time.Duration) {
	if session == nil || d.Kind() != entity.KindAsyncRef {
		return
	}
	session.Ensure(d)

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	for !session.Lookup(d.Key()).State.Settled() {
		select {
		case <-session.Events():
		case <-session.Closed():
			return
		case <-ctx.Done():
			return
		case <-time.After(50 * time.Millisecond):
		}
	}
}

func runRender(_ *cobra.Command, _ []string) error {
	app, err := requireApp()
	if err != nil {
		return err
	}

	d, err := findIcon(app, renderProvider, renderName)
	if err != nil {
		return err
	}
	waitForAsset(app.Ctx(), app.Catalog.Assets(), d, renderWait)

	res := app.Renderer.Render(d, renderRequest(app, renderSize, renderColor))
	switch res.Outcome {
	case render.NoDrawable:
		if entry := app.Catalog.Lookup(d.Key()); entry.Err != nil {
			return fmt.Errorf("%s cannot be drawn: %w", d.Key(), entry.Err)
		}
		return fmt.Errorf("%s cannot be drawn", d.Key())
	case render.Placeholder:
		return fmt.Errorf("%s is still loading after %s", d.Key(), renderWait)
	}
	fmt.Println(res.Element.Markup())
	return nil
}
