package render

import (
	"encoding/base64"
	"fmt"
	"strconv"

	"github.com/bnema/glyphs/internal/application/port"
	"github.com/bnema/glyphs/internal/domain/entity"
)

// DefaultSize is the icon footprint in pixels when a request leaves it unset.
const DefaultSize = 24

// Outcome says what a render produced.
type Outcome int

const (
	// NoDrawable means the cell stays empty. It is a value, not an error.
	NoDrawable Outcome = iota
	// Drawn means Element holds the icon.
	Drawn
	// Placeholder means Element is a loading skeleton of the icon's footprint.
	Placeholder
)

func (o Outcome) String() string {
	switch o {
	case Drawn:
		return "drawn"
	case Placeholder:
		return "placeholder"
	default:
		return "none"
	}
}

// Request carries the render parameters.
type Request struct {
	Size  int
	Color string
}

func (r Request) normalized() Request {
	if r.Size <= 0 {
		r.Size = DefaultSize
	}
	r.Color = NormalizeColor(r.Color)
	return r
}

// Result is the outcome of one render.
type Result struct {
	Outcome Outcome
	Element Element
}

// Drawable reports whether the result has something to show.
func (r Result) Drawable() bool {
	return r.Outcome != NoDrawable
}

var noDrawable = Result{Outcome: NoDrawable}

// Dispatcher selects a drawing strategy by descriptor kind.
type Dispatcher struct {
	assets port.AssetLookup
}

// NewDispatcher creates a dispatcher. assets may be nil when no provider has
// async descriptors; AsyncRef descriptors then render as placeholders.
func NewDispatcher(assets port.AssetLookup) *Dispatcher {
	return &Dispatcher{assets: assets}
}

// Render draws d. It never panics: malformed payloads yield NoDrawable.
func (r *Dispatcher) Render(d entity.Descriptor, req Request) (res Result) {
	defer func() {
		if recover() != nil {
			res = noDrawable
		}
	}()

	if d.Validate() != nil {
		return noDrawable
	}
	req = req.normalized()

	switch p := d.Payload().(type) {
	case entity.ComponentPayload:
		return renderComponent(p, req)
	case entity.PathPayload:
		return drawn(renderPaths(p, req))
	case entity.ClassPayload:
		return drawn(renderClass(p, req))
	case entity.GlyphPayload:
		return drawn(renderGlyph(p, req))
	case entity.AsyncPayload:
		return r.renderAsync(d, req)
	default:
		return noDrawable
	}
}

// RenderPlaceholder returns the skeleton used for loading cells.
func RenderPlaceholder(size int) Element {
	if size <= 0 {
		size = DefaultSize
	}
	px := strconv.Itoa(size) + "px"
	return Element{
		Tag: "span",
		Attrs: []Attr{
			{"class", "icon-skeleton"},
			{"aria-busy", "true"},
			{"style", "display:inline-block;width:" + px + ";height:" + px},
		},
	}
}

func drawn(e Element) Result {
	return Result{Outcome: Drawn, Element: e}
}

func renderComponent(p entity.ComponentPayload, req Request) Result {
	markup, err := p.Component.Instantiate(req.Size, req.Color)
	if err != nil || markup == "" {
		return noDrawable
	}
	return drawn(Element{Raw: markup})
}

func renderPaths(p entity.PathPayload, req Request) Element {
	color := req.Color
	if p.FixedColor != "" {
		color = NormalizeColor(p.FixedColor)
	}
	size := strconv.Itoa(req.Size)

	attrs := []Attr{
		{"xmlns", "http://www.w3.org/2000/svg"},
		{"width", size},
		{"height", size},
		{"viewBox", p.ViewBox.String()},
	}
	if p.Stroke {
		attrs = append(attrs,
			Attr{"fill", "none"},
			Attr{"stroke", color},
			Attr{"stroke-width", "2"},
			Attr{"stroke-linecap", "round"},
			Attr{"stroke-linejoin", "round"},
		)
	} else {
		attrs = append(attrs, Attr{"fill", color})
	}

	children := make([]Element, 0, len(p.Paths))
	for _, d := range p.Paths {
		path := Element{Tag: "path", Attrs: []Attr{{"d", d}}}
		if p.FillRule != "" {
			path.Attrs = append(path.Attrs, Attr{"fill-rule", p.FillRule})
		}
		children = append(children, path)
	}
	return Element{Tag: "svg", Attrs: attrs, Children: children}
}

func renderClass(p entity.ClassPayload, req Request) Element {
	return Element{
		Tag: "i",
		Attrs: []Attr{
			{"class", p.ClassAttr()},
			{"style", fmt.Sprintf("font-size:%dpx;color:%s", req.Size, req.Color)},
			{"aria-hidden", "true"},
		},
	}
}

func renderGlyph(p entity.GlyphPayload, req Request) Element {
	return Element{
		Tag: "span",
		Attrs: []Attr{
			{"class", "icon-glyph"},
			{"style", fmt.Sprintf("font-size:%dpx;line-height:1;color:%s", req.Size, req.Color)},
		},
		Text: p.Glyph,
	}
}

func (r *Dispatcher) renderAsync(d entity.Descriptor, req Request) Result {
	if r.assets == nil {
		return Result{Outcome: Placeholder, Element: RenderPlaceholder(req.Size)}
	}

	entry := r.assets.Lookup(d.Key())
	switch entry.State {
	case entity.AssetResolved:
		if entry.Asset.Empty() {
			return noDrawable
		}
		return drawn(renderAsset(d, entry.Asset, req))
	case entity.AssetFailed:
		return noDrawable
	default:
		return Result{Outcome: Placeholder, Element: RenderPlaceholder(req.Size)}
	}
}

func renderAsset(d entity.Descriptor, a entity.Asset, req Request) Element {
	src := a.URL
	if len(a.Data) > 0 {
		mediaType := a.MediaType
		if mediaType == "" {
			mediaType = "application/octet-stream"
		}
		src = "data:" + mediaType + ";base64," + base64.StdEncoding.EncodeToString(a.Data)
	}
	size := strconv.Itoa(req.Size)
	return Element{
		Tag: "img",
		Attrs: []Attr{
			{"src", src},
			{"alt", d.Name()},
			{"width", size},
			{"height", size},
		},
	}
}
