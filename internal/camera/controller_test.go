package camera

import (
	"errors"
	"math"
	"testing"

	"github.com/KazDragon/textray/internal/geom"
	"github.com/KazDragon/textray/internal/grid"
)

// corridor is a 5x5 box with a wall block in the middle.
func corridor() *grid.Grid {
	return grid.MustNew([][]grid.WallID{
		{1, 1, 1, 1, 1},
		{1, 0, 0, 0, 1},
		{1, 0, 2, 0, 1},
		{1, 0, 0, 0, 1},
		{1, 1, 1, 1, 1},
	})
}

func start(x, y, headingDeg float64) Pose {
	return Pose{Position: geom.Vec{X: x, Y: y}, Heading: geom.Radians(headingDeg), FOV: geom.Radians(DefaultFOV)}
}

func newController(t *testing.T, p Pose) *Controller {
	t.Helper()
	c, err := NewController(corridor(), p)
	if err != nil {
		t.Fatalf("NewController: %v", err)
	}
	c.TakeDirty()
	<-c.Redraw()
	return c
}

func near(a, b float64) bool { return math.Abs(a-b) < 1e-9 }

func TestNewControllerValidates(t *testing.T) {
	cases := []struct {
		name string
		pose Pose
		want error
	}{
		{"in wall", start(2.5, 2.5, 0), ErrBlocked},
		{"on border", start(0.5, 0.5, 0), ErrBlocked},
		{"outside grid", start(-1, 1.5, 0), ErrBlocked},
		{"zero fov", Pose{Position: geom.Vec{X: 1.5, Y: 1.5}}, ErrFOV},
		{"fov of pi", Pose{Position: geom.Vec{X: 1.5, Y: 1.5}, FOV: math.Pi}, ErrFOV},
		{"fov NaN", Pose{Position: geom.Vec{X: 1.5, Y: 1.5}, FOV: math.NaN()}, ErrFOV},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := NewController(corridor(), tc.pose)
			if !errors.Is(err, tc.want) {
				t.Errorf("NewController() error = %v, want %v", err, tc.want)
			}
		})
	}
}

func TestNewControllerRequestsFirstDraw(t *testing.T) {
	c, err := NewController(corridor(), start(1.5, 1.5, 0))
	if err != nil {
		t.Fatal(err)
	}
	if !c.TakeDirty() {
		t.Error("new controller should be dirty")
	}
	select {
	case <-c.Redraw():
	default:
		t.Error("new controller should have a pending redraw")
	}
}

func TestMoveForwardThenBackward(t *testing.T) {
	c := newController(t, start(1.5, 1.5, 0))
	before := c.Pose()

	if !c.MoveForward() {
		t.Fatal("forward into open cell should be accepted")
	}
	if !near(c.Pose().Position.X, 1.75) || !near(c.Pose().Position.Y, 1.5) {
		t.Fatalf("after forward got %+v", c.Pose().Position)
	}
	if !c.MoveBackward() {
		t.Fatal("backward into open cell should be accepted")
	}
	after := c.Pose()
	if !near(after.Position.X, before.Position.X) || !near(after.Position.Y, before.Position.Y) || after.Heading != before.Heading {
		t.Errorf("round trip moved pose: %+v -> %+v", before, after)
	}
}

func TestStrafe(t *testing.T) {
	// Heading 0 looks along +x; left is heading+90 degrees, i.e. +y.
	c := newController(t, start(1.5, 1.5, 0))
	if !c.MoveLeft() {
		t.Fatal("left should be accepted")
	}
	if p := c.Pose().Position; !near(p.X, 1.5) || !near(p.Y, 1.75) {
		t.Errorf("after left got %+v, want (1.5, 1.75)", p)
	}
	if !c.MoveRight() || !c.MoveRight() {
		t.Fatal("right should be accepted")
	}
	if p := c.Pose().Position; !near(p.X, 1.5) || !near(p.Y, 1.25) {
		t.Errorf("after right x2 got %+v, want (1.5, 1.25)", p)
	}
}

func TestMoveIntoWallIsRejected(t *testing.T) {
	cases := []struct {
		name string
		pose Pose
		move func(*Controller) bool
	}{
		{"forward into border", start(1.1, 1.5, 180), (*Controller).MoveForward},
		{"backward into border", start(1.1, 1.5, 0), (*Controller).MoveBackward},
		{"forward into centre block", start(1.9, 2.5, 0), (*Controller).MoveForward},
		{"right into border", start(1.5, 1.1, 0), (*Controller).MoveRight},
		{"left into border", start(1.5, 1.1, 180), (*Controller).MoveLeft},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c := newController(t, tc.pose)
			before := c.Pose()
			if tc.move(c) {
				t.Fatalf("move should be rejected, pose now %+v", c.Pose())
			}
			if c.Pose() != before {
				t.Errorf("rejected move changed pose: %+v -> %+v", before, c.Pose())
			}
			if c.TakeDirty() {
				t.Error("rejected move should not mark dirty")
			}
			select {
			case <-c.Redraw():
				t.Error("rejected move should not signal a redraw")
			default:
			}
		})
	}
}

func TestRotate(t *testing.T) {
	c := newController(t, start(1.5, 1.5, 210))
	c.RotateLeft()
	if !near(c.Pose().Heading, geom.Radians(225)) {
		t.Errorf("heading after left = %v deg", geom.Degrees(c.Pose().Heading))
	}
	c.RotateRight()
	c.RotateRight()
	if !near(c.Pose().Heading, geom.Radians(195)) {
		t.Errorf("heading after right x2 = %v deg", geom.Degrees(c.Pose().Heading))
	}
	if !c.TakeDirty() {
		t.Error("rotation should mark dirty")
	}
}

func TestZoomBounds(t *testing.T) {
	c := newController(t, start(1.5, 1.5, 0))
	for range 100 {
		c.ZoomIn()
		if c.FOVDegrees() < MinFOVDeg {
			t.Fatalf("fov fell to %v", c.FOVDegrees())
		}
	}
	if c.FOVDegrees() != MinFOVDeg {
		t.Errorf("fov = %v after zooming in, want %v", c.FOVDegrees(), MinFOVDeg)
	}
	if c.ZoomIn() {
		t.Error("zoom in at the limit should not be a change")
	}

	for range 100 {
		c.ZoomOut()
		if c.FOVDegrees() > MaxFOVDeg {
			t.Fatalf("fov rose to %v", c.FOVDegrees())
		}
	}
	if c.FOVDegrees() != MaxFOVDeg {
		t.Errorf("fov = %v after zooming out, want %v", c.FOVDegrees(), MaxFOVDeg)
	}
	if err := c.Pose().Validate(corridor()); err != nil {
		t.Errorf("zoomed pose invalid: %v", err)
	}

	c.ZoomReset()
	if c.FOVDegrees() != DefaultFOV || c.Pose().FOV != geom.Radians(DefaultFOV) {
		t.Errorf("reset fov = %v deg", c.FOVDegrees())
	}
}

func TestRedrawCollapses(t *testing.T) {
	c := newController(t, start(1.5, 1.5, 0))
	c.RotateLeft()
	c.RotateLeft()
	c.ZoomIn()

	<-c.Redraw()
	select {
	case <-c.Redraw():
		t.Error("several changes should collapse into one redraw signal")
	default:
	}
	if !c.TakeDirty() || c.TakeDirty() {
		t.Error("TakeDirty should report once then clear")
	}
}

func TestApply(t *testing.T) {
	c := newController(t, start(1.5, 1.5, 0))
	if c.Apply(CmdNone) {
		t.Error("CmdNone should not change anything")
	}
	if !c.Apply(CmdForward) {
		t.Error("CmdForward should be accepted")
	}
	if !c.Apply(CmdZoomOut) || c.FOVDegrees() != 95 {
		t.Errorf("CmdZoomOut: fov = %v", c.FOVDegrees())
	}
	if !c.Apply(CmdZoomReset) || c.FOVDegrees() != DefaultFOV {
		t.Errorf("CmdZoomReset: fov = %v", c.FOVDegrees())
	}
	if c.Apply(CmdZoomReset) {
		t.Error("resetting an already reset fov is not a change")
	}
}
