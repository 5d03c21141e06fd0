package config

import (
	"fmt"
	"net/url"
	"regexp"
	"slices"
	"strings"
	"text/template"

	colorful "github.com/lucasb-eyer/go-colorful"

	"github.com/bnema/glyphs/internal/domain/entity"
	"github.com/bnema/glyphs/internal/logging"
)

var cssColorName = regexp.MustCompile(`^[a-zA-Z]+$`)

// validateConfig collects every problem so one run reports them all.
func validateConfig(cfg *Config) error {
	var problems []string
	problems = append(problems, validateCatalog(cfg)...)
	problems = append(problems, validateRender(cfg)...)
	problems = append(problems, validatePalettes(cfg)...)
	problems = append(problems, validateAssets(cfg)...)
	problems = append(problems, validateExport(cfg)...)
	problems = append(problems, validateLogging(cfg)...)

	if len(problems) > 0 {
		return fmt.Errorf("config validation failed:\n  - %s", strings.Join(problems, "\n  - "))
	}
	return nil
}

func validateCatalog(cfg *Config) []string {
	if cfg.Catalog.PageSize < 1 || cfg.Catalog.PageSize > 2000 {
		return []string{"catalog.page_size must be between 1 and 2000"}
	}
	return nil
}

func validateRender(cfg *Config) []string {
	var problems []string
	if cfg.Render.Size < 8 || cfg.Render.Size > 512 {
		problems = append(problems, "render.size must be between 8 and 512")
	}
	if cfg.Render.Subcolor < 0 {
		problems = append(problems, "render.subcolor must be non-negative")
	}
	if cfg.Render.Palette != "" {
		if _, ok := cfg.Palettes[cfg.Render.Palette]; !ok {
			problems = append(problems, fmt.Sprintf("render.palette %q is not defined under [palettes]", cfg.Render.Palette))
		}
	}
	return problems
}

func validatePalettes(cfg *Config) []string {
	var problems []string
	for name, colors := range cfg.Palettes {
		if len(colors) == 0 {
			problems = append(problems, fmt.Sprintf("palettes.%s must list at least one color", name))
		}
		for _, c := range colors {
			if !validColor(c) {
				problems = append(problems, fmt.Sprintf("palettes.%s: invalid color %q", name, c))
			}
		}
	}
	return problems
}

func validColor(c string) bool {
	if strings.HasPrefix(c, "#") {
		_, err := colorful.Hex(c)
		return err == nil
	}
	return cssColorName.MatchString(c)
}

func validateAssets(cfg *Config) []string {
	var problems []string
	if cfg.Assets.Concurrency < 0 {
		problems = append(problems, "assets.concurrency must be non-negative (0 = unbounded)")
	}
	if cfg.Assets.Timeout < 0 {
		problems = append(problems, "assets.timeout must be non-negative")
	}
	if cfg.Assets.MemoryEntries < 1 {
		problems = append(problems, "assets.memory_entries must be at least 1")
	}
	if u, err := url.Parse(cfg.Assets.BaseURL); err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		problems = append(problems, fmt.Sprintf("assets.base_url %q must be an http(s) URL", cfg.Assets.BaseURL))
	}
	return problems
}

func validateExport(cfg *Config) []string {
	var problems []string
	for kind, src := range cfg.Export.Templates {
		if _, ok := entity.ParseKind(kind); !ok {
			problems = append(problems, fmt.Sprintf("export.templates.%s: unknown icon kind", kind))
			continue
		}
		if _, err := template.New(kind).Parse(src); err != nil {
			problems = append(problems, fmt.Sprintf("export.templates.%s: %v", kind, err))
		}
	}
	return problems
}

func validateLogging(cfg *Config) []string {
	var problems []string
	if cfg.Logging.Level != "" && !logging.ValidLevel(cfg.Logging.Level) {
		problems = append(problems, fmt.Sprintf("logging.level %q is not a known level", cfg.Logging.Level))
	}
	switch cfg.Logging.Format {
	case "console", "json":
	default:
		problems = append(problems, fmt.Sprintf("logging.format %q must be console or json", cfg.Logging.Format))
	}
	return problems
}

// SnippetTemplates converts export.templates to kind-keyed overrides.
func (c *Config) SnippetTemplates() map[entity.Kind]string {
	out := make(map[entity.Kind]string, len(c.Export.Templates))
	for name, src := range c.Export.Templates {
		if kind, ok := entity.ParseKind(name); ok {
			out[kind] = src
		}
	}
	return out
}

// Palette returns the named palette, falling back to currentColor only.
func (c *Config) Palette(name string) entity.Palette {
	colors, ok := c.Palettes[name]
	if !ok || len(colors) == 0 {
		return entity.Palette{Name: "mono", Colors: []string{entity.CurrentColor}}
	}
	return entity.Palette{Name: name, Colors: colors}
}

// PaletteNames returns the palette names in sorted order.
func (c *Config) PaletteNames() []string {
	names := make([]string, 0, len(c.Palettes))
	for name := range c.Palettes {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}
