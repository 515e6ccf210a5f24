// Package camera holds the observer's pose and the controller that moves it
// through a grid in response to discrete commands.
package camera

import (
	"errors"
	"fmt"
	"math"

	"github.com/KazDragon/textray/internal/geom"
	"github.com/KazDragon/textray/internal/grid"
)

// FOVEpsilon keeps the field of view strictly inside (0, pi) so that
// tan(fov/2) stays finite and positive.
const FOVEpsilon = 1e-4

var (
	ErrBlocked = errors.New("camera: position is not in an open cell")
	ErrFOV     = errors.New("camera: field of view outside (0, pi)")
)

// Pose is where the observer stands and looks. Heading and FOV are radians.
type Pose struct {
	Position geom.Vec
	Heading  float64
	FOV      float64
}

// Dir is the unit vector along the heading.
func (p Pose) Dir() geom.Vec { return geom.FromAngle(p.Heading) }

// Right is the unit vector pointing to the right-hand edge of the view.
func (p Pose) Right() geom.Vec { return geom.FromAngle(p.Heading - math.Pi/2) }

// Validate checks p against g.
func (p Pose) Validate(g *grid.Grid) error {
	if !(p.FOV > FOVEpsilon && p.FOV < math.Pi-FOVEpsilon) {
		return fmt.Errorf("%w: %g", ErrFOV, p.FOV)
	}
	if !standable(g, p.Position) {
		return fmt.Errorf("%w: (%g, %g)", ErrBlocked, p.Position.X, p.Position.Y)
	}
	return nil
}

func standable(g *grid.Grid, v geom.Vec) bool {
	if v.X < 0 || v.Y < 0 || v.X >= float64(g.Width) || v.Y >= float64(g.Height) {
		return false
	}
	return g.IsOpen(v.Cell())
}
