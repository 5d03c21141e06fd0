package entity

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// Payload is the strategy-specific data of a descriptor. The concrete type
// decides the kind, so a descriptor can never carry a payload of another kind.
type Payload interface {
	Kind() Kind
	Validate() error
}

// Component is a drawable unit that accepts size and color parameters.
// Instantiate returns complete SVG markup.
type Component interface {
	Instantiate(size int, color string) (string, error)
}

// ComponentPayload references a ready-made drawable.
type ComponentPayload struct {
	Component Component
}

func (ComponentPayload) Kind() Kind { return KindComponentRef }

func (p ComponentPayload) Validate() error {
	if p.Component == nil {
		return errors.New("component reference is nil")
	}
	return nil
}

// ViewBox is an SVG viewBox.
type ViewBox struct {
	MinX, MinY, Width, Height float64
}

// DefaultViewBox is the 24x24 box most path-based icon sets are drawn on.
var DefaultViewBox = ViewBox{Width: 24, Height: 24}

// ParseViewBox parses "minx miny width height", comma or space separated.
func ParseViewBox(s string) (ViewBox, error) {
	fields := strings.FieldsFunc(s, func(r rune) bool { return r == ' ' || r == ',' || r == '\t' })
	if len(fields) != 4 {
		return ViewBox{}, fmt.Errorf("viewBox %q: want 4 numbers, got %d", s, len(fields))
	}
	var vals [4]float64
	for i, f := range fields {
		v, err := strconv.ParseFloat(f, 64)
		if err != nil {
			return ViewBox{}, fmt.Errorf("viewBox %q: %w", s, err)
		}
		vals[i] = v
	}
	vb := ViewBox{MinX: vals[0], MinY: vals[1], Width: vals[2], Height: vals[3]}
	if vb.Width <= 0 || vb.Height <= 0 {
		return ViewBox{}, fmt.Errorf("viewBox %q: non-positive size", s)
	}
	return vb, nil
}

// String formats the viewBox attribute value.
func (v ViewBox) String() string {
	return strings.Join([]string{fmtFloat(v.MinX), fmtFloat(v.MinY), fmtFloat(v.Width), fmtFloat(v.Height)}, " ")
}

func fmtFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// Fill rules accepted by PathPayload.
const (
	FillRuleNonZero = "nonzero"
	FillRuleEvenOdd = "evenodd"
)

// PathPayload holds vector path data.
// FixedColor, when set, is a brand color that overrides the requested color.
// Stroke switches from filled shapes to outlined strokes.
type PathPayload struct {
	Paths      []string
	ViewBox    ViewBox
	FillRule   string
	FixedColor string
	Stroke     bool
}

func (PathPayload) Kind() Kind { return KindPathData }

func (p PathPayload) Validate() error {
	if len(p.Paths) == 0 {
		return errors.New("no path data")
	}
	for i, d := range p.Paths {
		if strings.TrimSpace(d) == "" {
			return fmt.Errorf("path %d is empty", i)
		}
		if i := strings.IndexFunc(d, notPathRune); i >= 0 {
			return fmt.Errorf("path contains invalid character %q", d[i])
		}
	}
	if p.ViewBox.Width <= 0 || p.ViewBox.Height <= 0 {
		return fmt.Errorf("invalid viewBox %q", p.ViewBox.String())
	}
	switch p.FillRule {
	case "", FillRuleNonZero, FillRuleEvenOdd:
	default:
		return fmt.Errorf("unknown fill rule %q", p.FillRule)
	}
	if p.FixedColor != "" {
		if _, err := colorful.Hex(p.FixedColor); err != nil {
			return fmt.Errorf("fixed color %q: %w", p.FixedColor, err)
		}
	}
	return nil
}

func notPathRune(r rune) bool {
	switch {
	case r >= '0' && r <= '9':
		return false
	case strings.ContainsRune("MmLlHhVvCcSsQqTtAaZzEe.,-+ \t\n\r", r):
		return false
	}
	return true
}

var cssIdentPattern = regexp.MustCompile(`^-?[_a-zA-Z][_a-zA-Z0-9-]*$`)

// ClassPayload is the icon-as-font or icon-as-background-image convention.
type ClassPayload struct {
	Classes []string
}

func (ClassPayload) Kind() Kind { return KindCSSClassGlyph }

func (p ClassPayload) Validate() error {
	if len(p.Classes) == 0 {
		return errors.New("no css class")
	}
	for _, c := range p.Classes {
		if !cssIdentPattern.MatchString(c) {
			return fmt.Errorf("invalid css class %q", c)
		}
	}
	return nil
}

// ClassAttr returns the value of the class attribute.
func (p ClassPayload) ClassAttr() string {
	return strings.Join(p.Classes, " ")
}

// maxGlyphRunes bounds a grapheme cluster; the longest emoji ZWJ sequences fit within it.
const maxGlyphRunes = 10

// GlyphPayload is a single code point or grapheme cluster.
type GlyphPayload struct {
	Glyph string
}

func (GlyphPayload) Kind() Kind { return KindUnicodeGlyph }

func (p GlyphPayload) Validate() error {
	if p.Glyph == "" {
		return errors.New("empty glyph")
	}
	if !utf8.ValidString(p.Glyph) {
		return errors.New("glyph is not valid UTF-8")
	}
	if n := utf8.RuneCountInString(p.Glyph); n > maxGlyphRunes {
		return fmt.Errorf("glyph has %d runes, not a single cluster", n)
	}
	for _, r := range p.Glyph {
		if unicode.IsControl(r) || unicode.IsSpace(r) {
			return fmt.Errorf("glyph contains control or space rune %U", r)
		}
	}
	return nil
}

// ParseCodePoint accepts "U+2605", "0x2605" or a literal glyph.
func ParseCodePoint(s string) (string, error) {
	s = strings.TrimSpace(s)
	upper := strings.ToUpper(s)
	var hex string
	switch {
	case strings.HasPrefix(upper, "U+"):
		hex = s[2:]
	case strings.HasPrefix(upper, "0X"):
		hex = s[2:]
	default:
		return s, nil
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return "", fmt.Errorf("code point %q: %w", s, err)
	}
	r := rune(v)
	if !utf8.ValidRune(r) {
		return "", fmt.Errorf("code point %q is not a valid rune", s)
	}
	return string(r), nil
}

// AsyncPayload is an opaque handle resolved through the asset loader.
type AsyncPayload struct {
	Handle string
}

func (AsyncPayload) Kind() Kind { return KindAsyncRef }

func (p AsyncPayload) Validate() error {
	if strings.TrimSpace(p.Handle) == "" {
		return errors.New("empty async handle")
	}
	return nil
}
