package raycast

import (
	"fmt"
	"math"

	"github.com/KazDragon/textray/internal/camera"
	"github.com/KazDragon/textray/internal/geom"
	"github.com/KazDragon/textray/internal/grid"
)

// Axis records which grid line a ray crossed to enter the wall it hit.
type Axis uint8

const (
	AxisX Axis = iota // crossed a vertical line (stepped a column)
	AxisY             // crossed a horizontal line (stepped a row)
)

// Hit describes where one column's ray met a wall.
type Hit struct {
	Col, Row int
	Wall     grid.WallID
	Side     Axis
	// Distance is the Euclidean length of the ray to the wall.
	Distance float64
	// Perp is Distance projected onto the heading, free of fisheye.
	Perp float64
}

// RayDir returns the unit direction of the ray through the centre of
// column x of a w-column view.
func RayDir(p camera.Pose, x, w int) geom.Vec {
	cameraX := 2*(float64(x)+0.5)/float64(w) - 1
	return p.Dir().Div(math.Tan(p.FOV / 2)).Add(p.Right().Scale(cameraX)).Norm()
}

// Cast traces column x of a w-column view through g.
func Cast(g *grid.Grid, p camera.Pose, x, w int) Hit {
	return castRay(g, p.Position, RayDir(p, x, w), p.Dir())
}

// castRay walks the cells crossed by the unit ray from pos until it enters
// a wall. The grid border guarantees that happens before leaving the grid.
func castRay(g *grid.Grid, pos, ray, dir geom.Vec) Hit {
	mapX, mapY := pos.Cell()
	deltaX := math.Abs(1 / ray.X)
	deltaY := math.Abs(1 / ray.Y)

	var stepX, stepY int
	var sideX, sideY float64
	if ray.X < 0 {
		stepX, sideX = -1, (pos.X-float64(mapX))*deltaX
	} else {
		stepX, sideX = 1, (float64(mapX)+1-pos.X)*deltaX
	}
	if ray.Y < 0 {
		stepY, sideY = -1, (pos.Y-float64(mapY))*deltaY
	} else {
		stepY, sideY = 1, (float64(mapY)+1-pos.Y)*deltaY
	}

	var side Axis
	for {
		if sideX < sideY {
			sideX += deltaX
			mapX += stepX
			side = AxisX
		} else {
			sideY += deltaY
			mapY += stepY
			side = AxisY
		}
		if !g.InBounds(mapX, mapY) {
			panic(fmt.Sprintf("raycast: ray from (%g, %g) left the grid; level is not enclosed", pos.X, pos.Y))
		}
		if g.At(mapX, mapY).IsWall() {
			break
		}
	}

	dist := sideY - deltaY
	if side == AxisX {
		dist = sideX - deltaX
	}
	return Hit{
		Col:      mapX,
		Row:      mapY,
		Wall:     g.At(mapX, mapY).Fill,
		Side:     side,
		Distance: dist,
		Perp:     ray.Scale(dist).Dot(dir),
	}
}
