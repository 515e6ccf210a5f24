package shade

import (
	"fmt"
	"math"
)

// approxTrue is the true-color stand-in for an indexed entry when darkening.
// White and BrightWhite are absent: they darken along the grey ramp instead.
var approxTrue = map[Indexed]True{
	Black:   {0x00, 0x00, 0x00},
	Red:     {0xB8, 0x25, 0x0F},
	Green:   {0x00, 0xFF, 0x00},
	Yellow:  {0xFF, 0xFF, 0x00},
	Blue:    {0x00, 0x00, 0xFF},
	Magenta: {0xFF, 0x00, 0xFF},
	Cyan:    {0x00, 0xFF, 0xFF},

	BrightBlack:   {0x7F, 0x7F, 0x7F},
	BrightRed:     {0xFF, 0x55, 0x55},
	BrightGreen:   {0x55, 0xFF, 0x55},
	BrightYellow:  {0xFF, 0xFF, 0x55},
	BrightBlue:    {0x55, 0x55, 0xFF},
	BrightMagenta: {0xFF, 0x55, 0xFF},
	BrightCyan:    {0x55, 0xFF, 0xFF},

	Default: {0x00, 0x00, 0x00},
}

// Darken scales every channel of c by (100-pct)/100, flooring to the
// channel's integer domain. pct is clamped to [0,100]. The result has the
// same representation as c, except that indexed colors come back as True,
// or as Greyscale for White and BrightWhite. Darken(c, 0) is c.
func Darken(c Color, pct float64) Color {
	pct = math.Max(0, math.Min(100, pct))
	if pct == 0 {
		return c
	}
	k := (100 - pct) / 100

	switch c := c.(type) {
	case Indexed:
		if c == White || c == BrightWhite {
			return Darken(Greyscale(GreyMax), pct)
		}
		t, ok := approxTrue[c]
		if !ok {
			t = approxTrue[Default]
		}
		return Darken(t, pct)
	case Cube:
		return Cube{scale(c.R, k), scale(c.G, k), scale(c.B, k)}
	case Greyscale:
		return Greyscale(scale(uint8(c), k))
	case True:
		return True{scale(c.R, k), scale(c.G, k), scale(c.B, k)}
	}
	panic(fmt.Sprintf("shade: unknown color %T", c))
}

func scale(v uint8, k float64) uint8 {
	return uint8(math.Floor(float64(v) * k))
}
