package render

import (
	"github.com/KazDragon/textray/internal/camera"
	"github.com/KazDragon/textray/internal/grid"
	"github.com/KazDragon/textray/internal/raycast"
	"github.com/KazDragon/textray/internal/shade"

	"github.com/gdamore/tcell/v2"
)

// PoseSource supplies the pose a view is drawn from. *camera.Controller
// satisfies it.
type PoseSource interface {
	Pose() camera.Pose
}

// CameraView draws the first-person view of a grid.
type CameraView struct {
	renderer *raycast.Renderer
	grid     *grid.Grid
	source   PoseSource
	w, h     int
}

// NewCameraView creates a view of g as seen from source.
func NewCameraView(r *raycast.Renderer, g *grid.Grid, source PoseSource) *CameraView {
	return &CameraView{renderer: r, grid: g, source: source}
}

// PreferredSize is zero: the camera takes whatever room the frame leaves.
func (v *CameraView) PreferredSize() (int, int) { return 0, 0 }

// Resize sets the viewport extent used by the next Draw.
func (v *CameraView) Resize(w, h int) { v.w, v.h = w, h }

// Size returns the current viewport extent.
func (v *CameraView) Size() (int, int) { return v.w, v.h }

// Draw renders a fresh raster and copies it into region.
func (v *CameraView) Draw(screen tcell.Screen, region Rect) {
	w, h := min(v.w, region.W), min(v.h, region.H)
	ras := v.renderer.Render(v.grid, v.source.Pose(), w, h)
	for y := range ras.Height {
		for x := range ras.Width {
			c := ras.At(x, y)
			screen.SetContent(region.X+x, region.Y+y, c.Glyph, nil, CellStyle(c))
		}
	}
}

// CellStyle converts a raster cell's attributes to a tcell style. Cells carry
// no background, so every cell is drawn on black: in a wall slice's top and
// bottom rows the part of the glyph the wall leaves uncovered shows black,
// not the ceiling or floor shade.
func CellStyle(c raycast.Cell) tcell.Style {
	st := tcell.StyleDefault.Background(tcell.ColorBlack)
	if c.Fg != nil {
		st = st.Foreground(shade.Tcell(c.Fg))
	}
	switch c.Intensity {
	case raycast.Bold:
		st = st.Bold(true)
	case raycast.Faint:
		st = st.Dim(true)
	}
	if c.Polarity == raycast.Negative {
		st = st.Reverse(true)
	}
	return st
}
