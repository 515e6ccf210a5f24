package grid

import (
	"errors"
	"testing"
)

func box(w, h int) [][]WallID {
	level := make([][]WallID, h)
	for y := range level {
		level[y] = make([]WallID, w)
		for x := range level[y] {
			if x == 0 || y == 0 || x == w-1 || y == h-1 {
				level[y][x] = 1
			}
		}
	}
	return level
}

func TestNewValidLevels(t *testing.T) {
	for _, size := range [][2]int{{3, 3}, {5, 5}, {8, 9}} {
		g, err := New(box(size[0], size[1]))
		if err != nil {
			t.Fatalf("New(%dx%d): %v", size[0], size[1], err)
		}
		if g.Width != size[0] || g.Height != size[1] {
			t.Errorf("size = %dx%d, want %dx%d", g.Width, g.Height, size[0], size[1])
		}
	}
}

func TestNewRejects(t *testing.T) {
	ragged := box(5, 5)
	ragged[2] = ragged[2][:4]

	hole := box(5, 5)
	hole[0][2] = 0

	sideHole := box(5, 5)
	sideHole[3][4] = 0

	cases := []struct {
		name  string
		level [][]WallID
		want  error
	}{
		{"nil level", nil, ErrEmpty},
		{"empty row", [][]WallID{{}}, ErrEmpty},
		{"ragged rows", ragged, ErrRagged},
		{"hole in top border", hole, ErrUnenclosed},
		{"hole in right border", sideHole, ErrUnenclosed},
		{"single open cell", [][]WallID{{0}}, ErrUnenclosed},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := New(tc.level)
			if !errors.Is(err, tc.want) {
				t.Errorf("New() error = %v, want %v", err, tc.want)
			}
		})
	}
}

func TestMustNewPanicsOnBadLevel(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("MustNew should panic on an unenclosed level")
		}
	}()
	MustNew([][]WallID{{1, 0, 1}})
}

func TestAtAndIsOpen(t *testing.T) {
	level := box(5, 4)
	level[2][3] = 7
	g := MustNew(level)

	if got := g.At(3, 2).Fill; got != 7 {
		t.Errorf("At(3,2).Fill = %d, want 7", got)
	}
	if !g.At(0, 0).IsWall() {
		t.Error("corner should be a wall")
	}
	cases := []struct {
		x, y int
		want bool
	}{
		{1, 1, true},
		{3, 2, false},
		{0, 1, false},
		{-1, 1, false},
		{5, 1, false},
		{1, 4, false},
	}
	for _, c := range cases {
		if got := g.IsOpen(c.x, c.y); got != c.want {
			t.Errorf("IsOpen(%d,%d) = %v, want %v", c.x, c.y, got, c.want)
		}
	}
}

func TestAtOutOfBoundsPanics(t *testing.T) {
	g := MustNew(box(3, 3))
	defer func() {
		if recover() == nil {
			t.Error("At outside the grid should panic")
		}
	}()
	g.At(3, 0)
}

func TestInBounds(t *testing.T) {
	g := MustNew(box(10, 8))
	cases := []struct {
		x, y int
		want bool
	}{
		{0, 0, true},
		{9, 7, true},
		{-1, 0, false},
		{10, 0, false},
		{0, 8, false},
	}
	for _, c := range cases {
		if got := g.InBounds(c.x, c.y); got != c.want {
			t.Errorf("InBounds(%d,%d)=%v, want %v", c.x, c.y, got, c.want)
		}
	}
}
