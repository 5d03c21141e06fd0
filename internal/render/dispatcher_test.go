package render

import (
	"bytes"
	"errors"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bnema/glyphs/internal/domain/entity"
)

type fakeComponent struct {
	markup string
	err    error
	panics bool
}

func (c fakeComponent) Instantiate(size int, color string) (string, error) {
	if c.panics {
		panic("boom")
	}
	if c.err != nil {
		return "", c.err
	}
	return strings.NewReplacer("SIZE", strconv.Itoa(size), "COLOR", color).Replace(c.markup), nil
}

type mapLookup map[entity.IconKey]entity.AssetEntry

func (m mapLookup) Lookup(key entity.IconKey) entity.AssetEntry {
	return m[key]
}

func mustDescriptor(t *testing.T, name string, p entity.Payload) entity.Descriptor {
	t.Helper()
	d, err := entity.NewDescriptor("test", name, p)
	require.NoError(t, err)
	return d
}

func TestDispatcher_RenderByKind(t *testing.T) {
	r := NewDispatcher(nil)
	req := Request{Size: 32, Color: "#FF0000"}

	comp := mustDescriptor(t, "Circle", entity.ComponentPayload{Component: fakeComponent{markup: `<svg width="SIZE" fill="COLOR"/>`}})
	res := r.Render(comp, req)
	assert.Equal(t, Drawn, res.Outcome)
	assert.Equal(t, `<svg width="32" fill="#ff0000"/>`, res.Element.Markup())

	path := mustDescriptor(t, "home", entity.PathPayload{Paths: []string{"M0 0h24v24H0z"}, ViewBox: entity.DefaultViewBox, FillRule: entity.FillRuleEvenOdd})
	res = r.Render(path, req)
	require.Equal(t, Drawn, res.Outcome)
	markup := res.Element.Markup()
	assert.Contains(t, markup, `viewBox="0 0 24 24"`)
	assert.Contains(t, markup, `fill="#ff0000"`)
	assert.Contains(t, markup, `<path d="M0 0h24v24H0z" fill-rule="evenodd"/>`)

	class := mustDescriptor(t, "alarm", entity.ClassPayload{Classes: []string{"bi", "bi-alarm"}})
	res = r.Render(class, req)
	require.Equal(t, Drawn, res.Outcome)
	assert.Equal(t, `<i class="bi bi-alarm" style="font-size:32px;color:#ff0000" aria-hidden="true"></i>`, res.Element.Markup())

	glyph := mustDescriptor(t, "star", entity.GlyphPayload{Glyph: "★"})
	res = r.Render(glyph, req)
	require.Equal(t, Drawn, res.Outcome)
	assert.Equal(t, "★", res.Element.Text)
	assert.Contains(t, res.Element.Markup(), "font-size:32px")
}

func TestDispatcher_FixedBrandColorWins(t *testing.T) {
	r := NewDispatcher(nil)
	d := mustDescriptor(t, "github", entity.PathPayload{
		Paths:      []string{"M12 .3a12 12 0 0 0-3.8 23.4"},
		ViewBox:    entity.DefaultViewBox,
		FixedColor: "#181717",
	})

	res := r.Render(d, Request{Color: "#00ff00"})
	require.Equal(t, Drawn, res.Outcome)
	fill, ok := res.Element.Attr("fill")
	require.True(t, ok)
	assert.Equal(t, "#181717", fill)
}

func TestDispatcher_StrokePaths(t *testing.T) {
	r := NewDispatcher(nil)
	d := mustDescriptor(t, "activity", entity.PathPayload{Paths: []string{"M22 12h-4l-3 9L9 3l-3 9H2"}, ViewBox: entity.DefaultViewBox, Stroke: true})

	res := r.Render(d, Request{Color: "tomato"})
	fill, _ := res.Element.Attr("fill")
	stroke, _ := res.Element.Attr("stroke")
	assert.Equal(t, "none", fill)
	assert.Equal(t, "tomato", stroke)
}

func TestDispatcher_AsyncStates(t *testing.T) {
	resolved := mustDescriptor(t, "ok", entity.AsyncPayload{Handle: "mdi:ok"})
	pending := mustDescriptor(t, "wait", entity.AsyncPayload{Handle: "mdi:wait"})
	failed := mustDescriptor(t, "bad", entity.AsyncPayload{Handle: "mdi:bad"})
	unknown := mustDescriptor(t, "unknown", entity.AsyncPayload{Handle: "mdi:unknown"})
	linked := mustDescriptor(t, "linked", entity.AsyncPayload{Handle: "mdi:linked"})

	r := NewDispatcher(mapLookup{
		resolved.Key(): {State: entity.AssetResolved, Asset: entity.Asset{MediaType: "image/svg+xml", Data: []byte("<svg/>")}},
		pending.Key():  {State: entity.AssetPending},
		failed.Key():   {State: entity.AssetFailed, Err: errors.New("404")},
		linked.Key():   {State: entity.AssetResolved, Asset: entity.Asset{URL: "https://example.com/linked.png"}},
	})

	res := r.Render(resolved, Request{Size: 16})
	require.Equal(t, Drawn, res.Outcome)
	src, _ := res.Element.Attr("src")
	assert.Equal(t, "data:image/svg+xml;base64,PHN2Zy8+", src)

	res = r.Render(linked, Request{})
	src, _ = res.Element.Attr("src")
	assert.Equal(t, "https://example.com/linked.png", src)

	res = r.Render(pending, Request{Size: 16})
	assert.Equal(t, Placeholder, res.Outcome)
	assert.Contains(t, res.Element.Markup(), "width:16px;height:16px")

	assert.Equal(t, Placeholder, r.Render(unknown, Request{}).Outcome)
	assert.Equal(t, NoDrawable, r.Render(failed, Request{}).Outcome)
}

func TestDispatcher_MalformedNeverPanics(t *testing.T) {
	r := NewDispatcher(mapLookup{})

	tests := []struct {
		name string
		d    entity.Descriptor
	}{
		{"zero descriptor", entity.Descriptor{}},
		{"component error", mustDescriptor(t, "err", entity.ComponentPayload{Component: fakeComponent{err: errors.New("nope")}})},
		{"component panic", mustDescriptor(t, "panic", entity.ComponentPayload{Component: fakeComponent{panics: true}})},
		{"component empty markup", mustDescriptor(t, "empty", entity.ComponentPayload{Component: fakeComponent{}})},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var res Result
			require.NotPanics(t, func() { res = r.Render(tt.d, Request{}) })
			assert.Equal(t, NoDrawable, res.Outcome)
			assert.False(t, res.Drawable())
		})
	}
}

func TestNormalizeColor(t *testing.T) {
	assert.Equal(t, "#ff0000", NormalizeColor("#F00"))
	assert.Equal(t, "rebeccapurple", NormalizeColor("rebeccapurple"))
	assert.Equal(t, "rgb(0, 0, 0)", NormalizeColor("rgb(0, 0, 0)"))
	assert.Equal(t, entity.CurrentColor, NormalizeColor(""))
	assert.Equal(t, entity.CurrentColor, NormalizeColor("#zzz"))
	assert.Equal(t, entity.CurrentColor, NormalizeColor(`red" onload="x`))
}

func TestBuildPage_KeepsCellPositions(t *testing.T) {
	ok := mustDescriptor(t, "a", entity.GlyphPayload{Glyph: "A"})
	bad := mustDescriptor(t, "b", entity.AsyncPayload{Handle: "x:b"})
	later := mustDescriptor(t, "c", entity.GlyphPayload{Glyph: "C"})

	r := NewDispatcher(mapLookup{bad.Key(): {State: entity.AssetFailed}})
	page := r.BuildPage("test", "3 icons", []entity.Descriptor{ok, bad, later}, Request{})

	require.Len(t, page.Cells, 3)
	assert.Equal(t, []string{"a", "b", "c"}, []string{page.Cells[0].Name, page.Cells[1].Name, page.Cells[2].Name})
	assert.Equal(t, "none", page.Cells[1].Outcome)
	assert.Empty(t, page.Cells[1].Markup)

	var buf bytes.Buffer
	require.NoError(t, WriteHTML(&buf, page))
	assert.Contains(t, buf.String(), `data-outcome="drawn"`)
	assert.Contains(t, buf.String(), "<title>test</title>")
}
