package service

import (
	"fmt"
	"strings"
)

// Color is a task display color tag. The zero value means no color.
type Color string

// Palette colors.
const (
	ColorRed    Color = "red"
	ColorOrange Color = "orange"
	ColorYellow Color = "yellow"
	ColorGreen  Color = "green"
	ColorBlue   Color = "blue"
	ColorIndigo Color = "indigo"
	ColorPurple Color = "purple"
	ColorPink   Color = "pink"
	ColorGray   Color = "gray"
)

// DefaultColor is preselected for new tasks.
const DefaultColor = ColorBlue

// Palette lists the colors in display order.
var Palette = []Color{
	ColorRed,
	ColorOrange,
	ColorYellow,
	ColorGreen,
	ColorBlue,
	ColorIndigo,
	ColorPurple,
	ColorPink,
	ColorGray,
}

// Valid reports whether c is one of the palette colors.
func (c Color) Valid() bool {
	for _, p := range Palette {
		if c == p {
			return true
		}
	}
	return false
}

// OrGray returns c if it is a palette color, gray otherwise.
// Unknown and absent colors are displayed as gray.
func (c Color) OrGray() Color {
	if c.Valid() {
		return c
	}
	return ColorGray
}

// Next returns the palette color after c, wrapping around.
// Colors outside the palette advance to the first color.
func (c Color) Next() Color {
	for i, p := range Palette {
		if c == p {
			return Palette[(i+1)%len(Palette)]
		}
	}
	return Palette[0]
}

// ParseColor parses a color name (case-insensitive, trimmed).
func ParseColor(s string) (Color, error) {
	c := Color(strings.ToLower(strings.TrimSpace(s)))
	if !c.Valid() {
		return "", fmt.Errorf("invalid color: %s", s)
	}
	return c, nil
}
