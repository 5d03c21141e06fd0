package entity

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubComponent struct{}

func (stubComponent) Instantiate(int, string) (string, error) { return "<svg/>", nil }

func TestNewDescriptor_ValidPayloads(t *testing.T) {
	tests := []struct {
		name    string
		payload Payload
		kind    Kind
	}{
		{"component", ComponentPayload{Component: stubComponent{}}, KindComponentRef},
		{"path", PathPayload{Paths: []string{"M0 0L24 24Z"}, ViewBox: DefaultViewBox}, KindPathData},
		{"path with brand color", PathPayload{Paths: []string{"M1 1h2v2z"}, ViewBox: DefaultViewBox, FixedColor: "#181717"}, KindPathData},
		{"css class", ClassPayload{Classes: []string{"bi", "bi-alarm"}}, KindCSSClassGlyph},
		{"unicode", GlyphPayload{Glyph: "★"}, KindUnicodeGlyph},
		{"emoji zwj sequence", GlyphPayload{Glyph: "👨‍👩‍👧"}, KindUnicodeGlyph},
		{"async", AsyncPayload{Handle: "mdi:home"}, KindAsyncRef},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, err := NewDescriptor("p", "icon", tt.payload)
			require.NoError(t, err)
			assert.Equal(t, tt.kind, d.Kind())
			assert.Equal(t, IconKey{Provider: "p", Name: "icon"}, d.Key())
			assert.NoError(t, d.Validate())
		})
	}
}

func TestNewDescriptor_RejectsMalformedPayloads(t *testing.T) {
	tests := []struct {
		name    string
		payload Payload
	}{
		{"nil payload", nil},
		{"nil component", ComponentPayload{}},
		{"no paths", PathPayload{ViewBox: DefaultViewBox}},
		{"blank path", PathPayload{Paths: []string{"  "}, ViewBox: DefaultViewBox}},
		{"script in path", PathPayload{Paths: []string{"M0 0<script>"}, ViewBox: DefaultViewBox}},
		{"zero viewbox", PathPayload{Paths: []string{"M0 0"}}},
		{"bad fill rule", PathPayload{Paths: []string{"M0 0"}, ViewBox: DefaultViewBox, FillRule: "winding"}},
		{"bad brand color", PathPayload{Paths: []string{"M0 0"}, ViewBox: DefaultViewBox, FixedColor: "blue-ish"}},
		{"no class", ClassPayload{}},
		{"class with space", ClassPayload{Classes: []string{"bi bi-alarm"}}},
		{"empty glyph", GlyphPayload{}},
		{"control glyph", GlyphPayload{Glyph: "\x07"}},
		{"sentence glyph", GlyphPayload{Glyph: "not a single glyph"}},
		{"empty handle", AsyncPayload{Handle: " "}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewDescriptor("p", "icon", tt.payload)
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrInvalidDescriptor))
		})
	}
}

func TestNewDescriptor_RequiresProviderAndName(t *testing.T) {
	_, err := NewDescriptor("", "icon", GlyphPayload{Glyph: "a"})
	assert.ErrorIs(t, err, ErrInvalidDescriptor)

	_, err = NewDescriptor("p", "", GlyphPayload{Glyph: "a"})
	assert.ErrorIs(t, err, ErrInvalidDescriptor)
}

func TestDescriptor_ZeroValue(t *testing.T) {
	var d Descriptor
	assert.True(t, d.IsZero())
	assert.Equal(t, KindInvalid, d.Kind())
	assert.Error(t, d.Validate())
}

func TestParseKind_RoundTrip(t *testing.T) {
	for _, k := range Kinds() {
		parsed, ok := ParseKind(k.String())
		require.True(t, ok, k.String())
		assert.Equal(t, k, parsed)
	}
	_, ok := ParseKind("invalid")
	assert.False(t, ok)
}

func TestParseViewBox(t *testing.T) {
	vb, err := ParseViewBox("0 0 24 24")
	require.NoError(t, err)
	assert.Equal(t, DefaultViewBox, vb)
	assert.Equal(t, "0 0 24 24", vb.String())

	vb, err = ParseViewBox("-1,-1,26,26")
	require.NoError(t, err)
	assert.Equal(t, ViewBox{MinX: -1, MinY: -1, Width: 26, Height: 26}, vb)

	_, err = ParseViewBox("0 0 24")
	assert.Error(t, err)
	_, err = ParseViewBox("0 0 0 24")
	assert.Error(t, err)
}

func TestParseCodePoint(t *testing.T) {
	g, err := ParseCodePoint("U+2605")
	require.NoError(t, err)
	assert.Equal(t, "★", g)

	g, err = ParseCodePoint("0x1F600")
	require.NoError(t, err)
	assert.Equal(t, "😀", g)

	g, err = ParseCodePoint("♥")
	require.NoError(t, err)
	assert.Equal(t, "♥", g)

	_, err = ParseCodePoint("U+ZZZZ")
	assert.Error(t, err)
	_, err = ParseCodePoint("U+D800")
	assert.Error(t, err)
}

func TestPalette_ColorWraps(t *testing.T) {
	p := Palette{Name: "rgb", Colors: []string{"#f00", "#0f0", "#00f"}}
	assert.Equal(t, "#f00", p.Color(0))
	assert.Equal(t, "#f00", p.Color(3))
	assert.Equal(t, "#00f", p.Color(-1))
	assert.Equal(t, CurrentColor, Palette{}.Color(2))

	sel := ColorSelection{Palette: p}
	assert.Equal(t, "#0f0", sel.Next().Color())
	assert.Equal(t, "#00f", sel.Prev().Color())
}

func TestAssetState_Settled(t *testing.T) {
	assert.False(t, AssetUnloaded.Settled())
	assert.False(t, AssetPending.Settled())
	assert.True(t, AssetResolved.Settled())
	assert.True(t, AssetFailed.Settled())
}

func TestGlyphPayload_RuneLimit(t *testing.T) {
	// woman, tone, ZWJ, heart, VS16, ZWJ, kiss, ZWJ, man, tone
	kiss := "\U0001F469\U0001F3FB\u200d\u2764\ufe0f\u200d\U0001F48B\u200d\U0001F468\U0001F3FC"
	require.Equal(t, maxGlyphRunes, len([]rune(kiss)))
	assert.NoError(t, GlyphPayload{Glyph: kiss}.Validate())

	assert.Error(t, GlyphPayload{Glyph: kiss + "★"}.Validate())
}
