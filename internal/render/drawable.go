// Package render puts textray views onto a tcell screen: the raycast camera,
// the help bar beneath it, and the frame that lays them out.
package render

import "github.com/gdamore/tcell/v2"

// Rect is a screen region in cells.
type Rect struct {
	X, Y, W, H int
}

// Empty reports whether r covers no cells.
func (r Rect) Empty() bool { return r.W <= 0 || r.H <= 0 }

// Drawable is anything that can be sized and drawn into part of a screen.
// A preferred extent of 0 in either dimension means "whatever is left".
type Drawable interface {
	PreferredSize() (w, h int)
	Resize(w, h int)
	Draw(screen tcell.Screen, region Rect)
}

// putText writes s from (x, y), advancing by each rune's display width and
// stopping at the region's right edge.
func putText(scr tcell.Screen, region Rect, x, y int, s string, st tcell.Style) {
	right := region.X + region.W
	for _, r := range s {
		w := runeWidth(r)
		if x+w > right {
			break
		}
		scr.SetContent(x, y, r, nil, st)
		x += w
	}
}
