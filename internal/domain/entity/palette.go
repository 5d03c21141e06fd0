package entity

// CurrentColor inherits the surrounding text color; used when no palette is set.
const CurrentColor = "currentColor"

// Palette is a named list of color values. The core treats colors as opaque strings.
type Palette struct {
	Name   string
	Colors []string
}

// Color returns the subcolor at index, wrapping around the palette length.
// An empty palette yields CurrentColor.
func (p Palette) Color(index int) string {
	if len(p.Colors) == 0 {
		return CurrentColor
	}
	i := index % len(p.Colors)
	if i < 0 {
		i += len(p.Colors)
	}
	return p.Colors[i]
}

// Len returns the number of subcolors.
func (p Palette) Len() int {
	return len(p.Colors)
}

// ColorSelection is a palette plus the active subcolor index.
type ColorSelection struct {
	Palette  Palette
	Subcolor int
}

// Color returns the active render color.
func (c ColorSelection) Color() string {
	return c.Palette.Color(c.Subcolor)
}

// Next advances the subcolor index, wrapping.
func (c ColorSelection) Next() ColorSelection {
	if c.Palette.Len() == 0 {
		return c
	}
	c.Subcolor = (c.Subcolor + 1) % c.Palette.Len()
	return c
}

// Prev moves the subcolor index back, wrapping.
func (c ColorSelection) Prev() ColorSelection {
	if c.Palette.Len() == 0 {
		return c
	}
	c.Subcolor = (c.Subcolor - 1 + c.Palette.Len()) % c.Palette.Len()
	return c
}
