// Package raycast renders a first-person view of a grid onto a raster of
// styled character cells, one DDA ray per column.
package raycast

import (
	"fmt"
	"math"

	"github.com/KazDragon/textray/internal/camera"
	"github.com/KazDragon/textray/internal/grid"
	"github.com/KazDragon/textray/internal/shade"
)

const (
	WallHeight = 1.0
	// TextelAspect is the height of a terminal cell over its width.
	TextelAspect = 2.0
	// DarkCap is the distance beyond which walls get no darker.
	DarkCap = 7.0
	// MaxDarken is the darkening percentage applied at DarkCap and at the
	// far end of the ceiling and floor gradients.
	MaxDarken = 90.0

	BoldWithin  = 1.0
	FaintBeyond = 2.5

	// MinPerp skips columns whose wall is at or behind the camera plane.
	MinPerp = 0.001
)

// Renderer holds the colors a view is drawn in.
type Renderer struct {
	Palette shade.Palette
	Ceiling shade.Color
	Floor   shade.Color
}

// New returns a renderer with a warm ceiling and a cool floor.
func New(p shade.Palette) *Renderer {
	return &Renderer{
		Palette: p,
		Ceiling: shade.Cube{R: 5, G: 3, B: 1},
		Floor:   shade.Cube{R: 1, G: 2, B: 4},
	}
}

// Render draws g as seen from p into a fresh w x h raster. An empty extent
// yields an empty raster.
func (r *Renderer) Render(g *grid.Grid, p camera.Pose, w, h int) Raster {
	if w <= 0 || h <= 0 {
		return Raster{}
	}
	if !(p.FOV > camera.FOVEpsilon && p.FOV < math.Pi-camera.FOVEpsilon) {
		panic(fmt.Sprintf("raycast: field of view %g outside (0, pi)", p.FOV))
	}

	ras := newRaster(w, h)
	r.backdrop(ras)

	fovScaleY := math.Tan(p.FOV/2) / float64(w) * float64(h) * TextelAspect
	for x := range w {
		hit := Cast(g, p, x, w)
		if hit.Perp <= MinPerp {
			continue
		}
		lineHeight := float64(h) * WallHeight / hit.Perp / fovScaleY / TextelAspect
		r.slice(ras, x, hit, lineHeight)
	}
	return ras
}

// backdrop fills the top half with the ceiling and the bottom half with the
// floor, each brightest at the horizon and darkening linearly away from it.
func (r *Renderer) backdrop(ras Raster) {
	horizon := ras.Height / 2
	for y := range ras.Height {
		var c shade.Color
		if y < horizon {
			c = shade.Darken(r.Ceiling, gradient(horizon-1-y, horizon))
		} else {
			c = shade.Darken(r.Floor, gradient(y-horizon, ras.Height-horizon))
		}
		cell := Cell{Glyph: fullBlock, Fg: c}
		for x := range ras.Width {
			ras.set(x, y, cell)
		}
	}
}

// gradient is the darkening for the i'th of n rows away from the horizon.
func gradient(i, n int) float64 {
	if n <= 1 {
		return 0
	}
	return MaxDarken * float64(i) / float64(n-1)
}

func (r *Renderer) slice(ras Raster, x int, hit Hit, lineHeight float64) {
	mid := float64(ras.Height) / 2
	top := clamp(mid-lineHeight/2, 0, float64(ras.Height))
	bottom := clamp(mid+lineHeight/2, 0, float64(ras.Height))

	fg := shade.Darken(r.Palette.Lookup(hit.Wall), MaxDarken*math.Min(hit.Distance, DarkCap)/DarkCap)
	intensity := Normal
	switch {
	case hit.Perp < BoldWithin:
		intensity = Bold
	case hit.Perp > FaintBeyond:
		intensity = Faint
	}

	first := int(math.Floor(top))
	last := min(int(math.Ceil(bottom)), ras.Height)
	for y := first; y < last; y++ {
		eg, ok := rowGlyph(y, top, bottom)
		if !ok {
			continue
		}
		ras.set(x, y, Cell{Glyph: eg.glyph, Fg: fg, Intensity: intensity, Polarity: eg.polarity})
	}
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}
