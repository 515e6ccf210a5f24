package shade

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/KazDragon/textray/internal/grid"
	"github.com/lucasb-eyer/go-colorful"
)

var ErrBadColor = errors.New("shade: unrecognised color")

// Palette maps a wall identifier to the wall's base color.
type Palette map[grid.WallID]Color

// Lookup returns the color for id, or White when the palette has none.
func (p Palette) Lookup(id grid.WallID) Color {
	if c, ok := p[id]; ok {
		return c
	}
	return White
}

// DefaultPalette colors the nine wall identifiers of the reference level.
func DefaultPalette() Palette {
	return Palette{
		1: Red,
		2: Green,
		3: Yellow,
		4: Blue,
		5: Magenta,
		6: Cyan,
		7: White,
		8: Cube{5, 2, 0},
		9: True{0xB8, 0x86, 0x0B},
	}
}

// Parse reads a color written as an indexed name ("red"), a grey step
// ("grey:12"), a cube triple ("cube:5,2,0") or a hex triple ("#b8860b").
func Parse(s string) (Color, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for i, name := range indexedNames {
		if s == name {
			return Indexed(i), nil
		}
	}
	switch {
	case strings.HasPrefix(s, "#"):
		c, err := colorful.Hex(s)
		if err != nil {
			return nil, fmt.Errorf("%w %q: %v", ErrBadColor, s, err)
		}
		r, g, b := c.RGB255()
		return True{r, g, b}, nil
	case strings.HasPrefix(s, "grey:"), strings.HasPrefix(s, "gray:"):
		v, err := strconv.ParseUint(s[5:], 10, 8)
		if err != nil || v > GreyMax {
			return nil, fmt.Errorf("%w %q: grey step must be 0-%d", ErrBadColor, s, GreyMax)
		}
		return Greyscale(v), nil
	case strings.HasPrefix(s, "cube:"):
		parts := strings.Split(s[5:], ",")
		if len(parts) != 3 {
			return nil, fmt.Errorf("%w %q: cube needs three channels", ErrBadColor, s)
		}
		var ch [3]uint8
		for i, p := range parts {
			v, err := strconv.ParseUint(strings.TrimSpace(p), 10, 8)
			if err != nil || v > CubeMax {
				return nil, fmt.Errorf("%w %q: cube channel must be 0-%d", ErrBadColor, s, CubeMax)
			}
			ch[i] = uint8(v)
		}
		return Cube{ch[0], ch[1], ch[2]}, nil
	}
	return nil, fmt.Errorf("%w %q", ErrBadColor, s)
}
