package server

import (
	"github.com/KazDragon/textray/internal/camera"
	"github.com/KazDragon/textray/internal/grid"
	"github.com/KazDragon/textray/internal/raycast"
	"github.com/KazDragon/textray/internal/render"

	"github.com/gdamore/tcell/v2"
)

// Session holds the per-terminal state of one connection.
type Session struct {
	ID   int
	Name string

	Screen     tcell.Screen
	Controller *camera.Controller

	view  *render.CameraView
	frame *render.Frame

	Stats Stats
}

func newSession(id int, name string, screen tcell.Screen, ctrl *camera.Controller, r *raycast.Renderer, g *grid.Grid) *Session {
	view := render.NewCameraView(r, g, ctrl)
	return &Session{
		ID:         id,
		Name:       name,
		Screen:     screen,
		Controller: ctrl,
		view:       view,
		frame:      render.NewFrame(view, render.NewStatusBar()),
	}
}

// Viewport returns the camera extent of the last layout.
func (s *Session) Viewport() (int, int) { return s.view.Size() }

// draw lays the frame out at the screen's current size and draws it.
func (s *Session) draw() (w, h int) {
	sw, sh := s.Screen.Size()
	s.frame.Resize(sw, sh)
	s.Screen.Clear()
	s.frame.Draw(s.Screen, render.Rect{W: sw, H: sh})
	s.Screen.Show()
	return s.view.Size()
}
