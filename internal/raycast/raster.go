package raycast

import "github.com/KazDragon/textray/internal/shade"

type Intensity uint8

const (
	Normal Intensity = iota
	Bold
	Faint
)

type Polarity uint8

const (
	Positive Polarity = iota
	Negative
)

// Cell is one styled character of the output raster.
type Cell struct {
	Glyph     rune
	Fg        shade.Color
	Intensity Intensity
	Polarity  Polarity
}

// Raster is a Width x Height block of cells, row-major, top to bottom.
type Raster struct {
	Width, Height int
	Cells         []Cell
}

func newRaster(w, h int) Raster {
	return Raster{Width: w, Height: h, Cells: make([]Cell, w*h)}
}

// At returns the cell at column x, row y.
func (r Raster) At(x, y int) Cell { return r.Cells[y*r.Width+x] }

func (r Raster) set(x, y int, c Cell) { r.Cells[y*r.Width+x] = c }
