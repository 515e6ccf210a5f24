// Package grid holds the immutable tile world the camera looks into.
package grid

import (
	"errors"
	"fmt"
)

var (
	ErrEmpty      = errors.New("grid: level has no cells")
	ErrRagged     = errors.New("grid: level rows differ in length")
	ErrUnenclosed = errors.New("grid: border is not entirely wall")
)

// Grid is a rows x cols, row-major array of tiles. It is never mutated after
// New returns, so one Grid may be shared by every session.
type Grid struct {
	Width, Height int
	tiles         []Tile
}

// New builds a Grid from a level description: level[row][col] is the WallID
// of that cell. Every border cell must be a wall so that no ray cast from
// inside can leave the grid.
func New(level [][]WallID) (*Grid, error) {
	if len(level) == 0 || len(level[0]) == 0 {
		return nil, ErrEmpty
	}
	h, w := len(level), len(level[0])
	g := &Grid{Width: w, Height: h, tiles: make([]Tile, 0, w*h)}
	for y, row := range level {
		if len(row) != w {
			return nil, fmt.Errorf("%w: row %d has %d cells, want %d", ErrRagged, y, len(row), w)
		}
		for _, id := range row {
			g.tiles = append(g.tiles, Tile{Fill: id})
		}
	}
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			border := x == 0 || y == 0 || x == w-1 || y == h-1
			if border && !g.At(x, y).IsWall() {
				return nil, fmt.Errorf("%w: open cell at col %d row %d", ErrUnenclosed, x, y)
			}
		}
	}
	return g, nil
}

// MustNew is New for levels known to be valid at compile time.
func MustNew(level [][]WallID) *Grid {
	g, err := New(level)
	if err != nil {
		panic(err)
	}
	return g
}

// InBounds reports whether column x, row y is within the grid.
func (g *Grid) InBounds(x, y int) bool {
	return x >= 0 && x < g.Width && y >= 0 && y < g.Height
}

// At returns the tile at column x, row y. Panics if out of bounds.
func (g *Grid) At(x, y int) Tile {
	if !g.InBounds(x, y) {
		panic(fmt.Sprintf("grid: At(%d, %d) outside %dx%d", x, y, g.Width, g.Height))
	}
	return g.tiles[y*g.Width+x]
}

// IsOpen returns true when (x, y) is in bounds and not a wall.
func (g *Grid) IsOpen(x, y int) bool {
	if !g.InBounds(x, y) {
		return false
	}
	return !g.tiles[y*g.Width+x].IsWall()
}
