// Package shade models terminal colors in their four wire representations
// and darkens them for depth cueing.
package shade

import (
	"fmt"

	"github.com/gdamore/tcell/v2"
)

// Color is one of Indexed, Cube, Greyscale or True.
type Color interface {
	isColor()
}

// Indexed is an entry of the 16-color terminal palette, or Default for the
// terminal's own foreground.
type Indexed uint8

const (
	Black Indexed = iota
	Red
	Green
	Yellow
	Blue
	Magenta
	Cyan
	White
	BrightBlack
	BrightRed
	BrightGreen
	BrightYellow
	BrightBlue
	BrightMagenta
	BrightCyan
	BrightWhite
	Default
)

// Cube is a color of the 6x6x6 cube; each channel is in [0,5].
type Cube struct {
	R, G, B uint8
}

// Greyscale is a step of the 24-step grey ramp, [0,23].
type Greyscale uint8

// True is a 24-bit RGB color.
type True struct {
	R, G, B uint8
}

func (Indexed) isColor()   {}
func (Cube) isColor()      {}
func (Greyscale) isColor() {}
func (True) isColor()      {}

const (
	CubeMax = 5
	GreyMax = 23
)

var indexedNames = [...]string{
	"black", "red", "green", "yellow", "blue", "magenta", "cyan", "white",
	"bright-black", "bright-red", "bright-green", "bright-yellow",
	"bright-blue", "bright-magenta", "bright-cyan", "bright-white",
	"default",
}

func (c Indexed) String() string {
	if int(c) < len(indexedNames) {
		return indexedNames[c]
	}
	return fmt.Sprintf("indexed(%d)", uint8(c))
}

// Tcell converts c to the tcell color that encodes it on the wire.
func Tcell(c Color) tcell.Color {
	switch c := c.(type) {
	case Indexed:
		if c >= Default {
			return tcell.ColorDefault
		}
		return tcell.PaletteColor(int(c))
	case Cube:
		return tcell.PaletteColor(16 + 36*int(min(c.R, CubeMax)) + 6*int(min(c.G, CubeMax)) + int(min(c.B, CubeMax)))
	case Greyscale:
		return tcell.PaletteColor(232 + int(min(c, GreyMax)))
	case True:
		return tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B))
	}
	panic(fmt.Sprintf("shade: unknown color %T", c))
}
