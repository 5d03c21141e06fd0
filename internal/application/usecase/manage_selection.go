package usecase

import (
	"fmt"
	"strings"
	"sync"
	"text/template"

	"github.com/bnema/glyphs/internal/domain/entity"
)

// DefaultSnippetTemplates are the per-kind export templates.
var DefaultSnippetTemplates = map[entity.Kind]string{
	entity.KindComponentRef:  `<Icon provider="{{.Provider}}" name="{{.Name}}" size="{{.Size}}" color="{{.Color}}" />`,
	entity.KindPathData:      `<svg xmlns="http://www.w3.org/2000/svg" width="{{.Size}}" height="{{.Size}}" viewBox="{{.ViewBox}}" {{if .Stroke}}fill="none" stroke{{else}}fill{{end}}="{{.Color}}"><path d="{{.Path}}"/></svg>`,
	entity.KindCSSClassGlyph: `<i class="{{.Class}}" style="font-size: {{.Size}}px; color: {{.Color}}"></i>`,
	entity.KindUnicodeGlyph:  `<span style="font-size: {{.Size}}px; color: {{.Color}}">{{.Glyph}}</span>`,
	entity.KindAsyncRef:      `<iconify-icon icon="{{.Handle}}" width="{{.Size}}" height="{{.Size}}" style="color: {{.Color}}"></iconify-icon>`,
}

const defaultSnippetSize = 24

// ExportOptions are the render parameters baked into a snippet.
type ExportOptions struct {
	Size  int
	Color string
}

// snippetData is the template context.
type snippetData struct {
	Provider string
	Name     string
	Kind     string
	Size     int
	Color    string
	Class    string
	Glyph    string
	Handle   string
	Path     string
	ViewBox  string
	Stroke   bool
}

// ManageSelectionUseCase tracks the selected icon and produces export snippets.
// Selecting never touches the catalog or the asset cache.
type ManageSelectionUseCase struct {
	templates map[entity.Kind]*template.Template

	mu      sync.RWMutex
	current *entity.Descriptor
}

// NewManageSelectionUseCase parses the snippet templates. overrides replaces
// the default template of the kinds it names.
func NewManageSelectionUseCase(overrides map[entity.Kind]string) (*ManageSelectionUseCase, error) {
	sources := make(map[entity.Kind]string, len(DefaultSnippetTemplates))
	for k, src := range DefaultSnippetTemplates {
		sources[k] = src
	}
	for k, src := range overrides {
		if strings.TrimSpace(src) != "" {
			sources[k] = src
		}
	}

	templates := make(map[entity.Kind]*template.Template, len(sources))
	for k, src := range sources {
		tmpl, err := template.New(k.String()).Option("missingkey=zero").Parse(src)
		if err != nil {
			return nil, fmt.Errorf("failed to parse %s snippet template: %w", k, err)
		}
		templates[k] = tmpl
	}
	return &ManageSelectionUseCase{templates: templates}, nil
}

// Select makes d the current selection.
func (uc *ManageSelectionUseCase) Select(d entity.Descriptor) {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	uc.current = &d
}

// Current returns the selection, ok=false when nothing is selected.
func (uc *ManageSelectionUseCase) Current() (entity.Descriptor, bool) {
	uc.mu.RLock()
	defer uc.mu.RUnlock()
	if uc.current == nil {
		return entity.Descriptor{}, false
	}
	return *uc.current, true
}

// Clear drops the selection.
func (uc *ManageSelectionUseCase) Clear() {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	uc.current = nil
}

// ExportSnippet returns a short usage example for d. It has no side effects.
func (uc *ManageSelectionUseCase) ExportSnippet(d entity.Descriptor, opts ExportOptions) string {
	data := snippetFor(d, opts)
	tmpl, ok := uc.templates[d.Kind()]
	if !ok {
		return fallbackSnippet(data)
	}
	var b strings.Builder
	if err := tmpl.Execute(&b, data); err != nil {
		return fallbackSnippet(data)
	}
	return b.String()
}

func snippetFor(d entity.Descriptor, opts ExportOptions) snippetData {
	size := opts.Size
	if size <= 0 {
		size = defaultSnippetSize
	}
	color := opts.Color
	if color == "" {
		color = entity.CurrentColor
	}
	data := snippetData{
		Provider: d.Provider(),
		Name:     d.Name(),
		Kind:     d.Kind().String(),
		Size:     size,
		Color:    color,
	}

	switch p := d.Payload().(type) {
	case entity.ClassPayload:
		data.Class = p.ClassAttr()
	case entity.GlyphPayload:
		data.Glyph = p.Glyph
	case entity.AsyncPayload:
		data.Handle = p.Handle
	case entity.PathPayload:
		data.Path = strings.Join(p.Paths, " ")
		data.ViewBox = p.ViewBox.String()
		data.Stroke = p.Stroke
		if p.FixedColor != "" {
			data.Color = p.FixedColor
		}
	}
	return data
}

func fallbackSnippet(data snippetData) string {
	return fmt.Sprintf("%s:%s size=%d color=%s", data.Provider, data.Name, data.Size, data.Color)
}
