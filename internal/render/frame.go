package render

import "github.com/gdamore/tcell/v2"

// Frame stacks a south panel at its preferred height under a centre panel
// that takes the remaining rows.
type Frame struct {
	Centre, South Drawable

	centre, south Rect
}

// NewFrame lays out centre above south.
func NewFrame(centre, south Drawable) *Frame {
	return &Frame{Centre: centre, South: south}
}

func (f *Frame) PreferredSize() (int, int) {
	cw, ch := f.Centre.PreferredSize()
	sw, sh := f.South.PreferredSize()
	return max(cw, sw), ch + sh
}

// Resize splits a w x h area between the panels. The south panel is cut
// short when the area is too small to hold it.
func (f *Frame) Resize(w, h int) {
	w, h = max(w, 0), max(h, 0)
	_, sh := f.South.PreferredSize()
	sh = min(sh, h)
	f.centre = Rect{X: 0, Y: 0, W: w, H: h - sh}
	f.south = Rect{X: 0, Y: h - sh, W: w, H: sh}
	f.Centre.Resize(f.centre.W, f.centre.H)
	f.South.Resize(f.south.W, f.south.H)
}

// CentreRect is the centre panel's region relative to the frame.
func (f *Frame) CentreRect() Rect { return f.centre }

// SouthRect is the south panel's region relative to the frame.
func (f *Frame) SouthRect() Rect { return f.south }

func (f *Frame) Draw(screen tcell.Screen, region Rect) {
	draw := func(d Drawable, r Rect) {
		r.X += region.X
		r.Y += region.Y
		if !r.Empty() {
			d.Draw(screen, r)
		}
	}
	draw(f.Centre, f.centre)
	draw(f.South, f.south)
}
