package camera

import (
	"math"

	"github.com/KazDragon/textray/internal/geom"
	"github.com/KazDragon/textray/internal/grid"
)

const (
	Velocity   = 0.25
	TurnDeg    = 15.0
	ZoomDeg    = 5.0
	MinFOVDeg  = 5.0
	MaxFOVDeg  = 175.0
	DefaultFOV = 90.0
)

// Command is an abstract movement command decoded from input.
type Command uint8

const (
	CmdNone Command = iota
	CmdForward
	CmdBackward
	CmdLeft
	CmdRight
	CmdRotateLeft
	CmdRotateRight
	CmdZoomIn
	CmdZoomOut
	CmdZoomReset
)

// Controller owns one observer's pose. It is not safe for concurrent use;
// each session drives its own controller from a single goroutine.
type Controller struct {
	grid   *grid.Grid
	pose   Pose
	fovDeg float64

	dirty  bool
	redraw chan struct{}
}

// NewController validates start against g and returns a controller at it.
// The first render is requested immediately.
func NewController(g *grid.Grid, start Pose) (*Controller, error) {
	if err := start.Validate(g); err != nil {
		return nil, err
	}
	c := &Controller{
		grid:   g,
		pose:   start,
		fovDeg: math.Round(geom.Degrees(start.FOV)*1e9) / 1e9,
		redraw: make(chan struct{}, 1),
	}
	c.touch()
	return c, nil
}

// Pose returns the current pose.
func (c *Controller) Pose() Pose { return c.pose }

// FOVDegrees returns the field of view in degrees.
func (c *Controller) FOVDegrees() float64 { return c.fovDeg }

// Redraw delivers at most one pending signal however many changes were
// accepted since it was last drained.
func (c *Controller) Redraw() <-chan struct{} { return c.redraw }

// TakeDirty reports whether the pose changed since the last call and clears
// the flag.
func (c *Controller) TakeDirty() bool {
	d := c.dirty
	c.dirty = false
	return d
}

// Invalidate requests a redraw without changing the pose, e.g. after a resize.
func (c *Controller) Invalidate() { c.touch() }

func (c *Controller) touch() {
	c.dirty = true
	select {
	case c.redraw <- struct{}{}:
	default:
	}
}

// Apply runs cmd and reports whether it changed the pose.
func (c *Controller) Apply(cmd Command) bool {
	switch cmd {
	case CmdForward:
		return c.MoveForward()
	case CmdBackward:
		return c.MoveBackward()
	case CmdLeft:
		return c.MoveLeft()
	case CmdRight:
		return c.MoveRight()
	case CmdRotateLeft:
		return c.RotateLeft()
	case CmdRotateRight:
		return c.RotateRight()
	case CmdZoomIn:
		return c.ZoomIn()
	case CmdZoomOut:
		return c.ZoomOut()
	case CmdZoomReset:
		return c.ZoomReset()
	}
	return false
}

func (c *Controller) MoveForward() bool  { return c.move(0) }
func (c *Controller) MoveBackward() bool { return c.move(math.Pi) }
func (c *Controller) MoveLeft() bool     { return c.move(math.Pi / 2) }
func (c *Controller) MoveRight() bool    { return c.move(-math.Pi / 2) }

// move steps Velocity along heading+delta. A target outside the grid or in
// a wall leaves the pose untouched.
func (c *Controller) move(delta float64) bool {
	next := c.pose.Position.Add(geom.FromAngle(c.pose.Heading + delta).Scale(Velocity))
	if !standable(c.grid, next) {
		return false
	}
	c.pose.Position = next
	c.touch()
	return true
}

func (c *Controller) RotateLeft() bool  { return c.rotate(TurnDeg) }
func (c *Controller) RotateRight() bool { return c.rotate(-TurnDeg) }

func (c *Controller) rotate(deg float64) bool {
	c.pose.Heading += geom.Radians(deg)
	c.touch()
	return true
}

func (c *Controller) ZoomIn() bool    { return c.setFOV(math.Max(MinFOVDeg, c.fovDeg-ZoomDeg)) }
func (c *Controller) ZoomOut() bool   { return c.setFOV(math.Min(MaxFOVDeg, c.fovDeg+ZoomDeg)) }
func (c *Controller) ZoomReset() bool { return c.setFOV(DefaultFOV) }

// setFOV commits an already clamped field of view. Clamping to the current
// value is not a change and raises no redraw.
func (c *Controller) setFOV(deg float64) bool {
	if deg == c.fovDeg {
		return false
	}
	c.fovDeg = deg
	c.pose.FOV = geom.Radians(deg)
	c.touch()
	return true
}
