package render

import (
	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"
)

// Default help text shown beneath the camera.
var (
	HelpLeft  = []string{"Movement: asdw.  Rotation: qe", "Zoom: zx. Reset zoom: c"}
	HelpRight = []string{"Quit: Q", "Shutdown: P"}
)

var barStyle = tcell.StyleDefault.Background(tcell.ColorNavy).Foreground(tcell.ColorWhite)

// StatusBar is a filled bar with left- and right-aligned lines of text.
type StatusBar struct {
	Left, Right []string
	w, h        int
}

// NewStatusBar returns a bar carrying the key help.
func NewStatusBar() *StatusBar {
	return &StatusBar{Left: HelpLeft, Right: HelpRight}
}

// PreferredSize asks for one row per line of text and any width.
func (b *StatusBar) PreferredSize() (int, int) {
	return 0, max(len(b.Left), len(b.Right))
}

func (b *StatusBar) Resize(w, h int) { b.w, b.h = w, h }

// Draw fills region and writes the text. Right-hand lines win where the two
// sides overlap on a narrow screen.
func (b *StatusBar) Draw(screen tcell.Screen, region Rect) {
	for y := region.Y; y < region.Y+region.H; y++ {
		for x := region.X; x < region.X+region.W; x++ {
			screen.SetContent(x, y, ' ', nil, barStyle)
		}
	}
	for i, line := range b.Left {
		if i >= region.H {
			break
		}
		putText(screen, region, region.X, region.Y+i, line, barStyle)
	}
	for i, line := range b.Right {
		if i >= region.H {
			break
		}
		x := region.X + region.W - runewidth.StringWidth(line)
		putText(screen, region, max(x, region.X), region.Y+i, line, barStyle)
	}
}

func runeWidth(r rune) int {
	if w := runewidth.RuneWidth(r); w > 0 {
		return w
	}
	return 1
}
