// Package geom holds the continuous 2-D math shared by the camera and the
// raycaster. Cell (c, r) of a grid occupies [c, c+1) x [r, r+1).
package geom

import "math"

// Vec is a point or direction in grid space. X runs along columns, Y along rows.
type Vec struct {
	X, Y float64
}

// FromAngle returns the unit vector (cos a, sin a).
func FromAngle(a float64) Vec {
	return Vec{X: math.Cos(a), Y: math.Sin(a)}
}

func (v Vec) Add(o Vec) Vec { return Vec{v.X + o.X, v.Y + o.Y} }

func (v Vec) Sub(o Vec) Vec { return Vec{v.X - o.X, v.Y - o.Y} }

func (v Vec) Scale(k float64) Vec { return Vec{v.X * k, v.Y * k} }

func (v Vec) Div(k float64) Vec { return Vec{v.X / k, v.Y / k} }

func (v Vec) Dot(o Vec) float64 { return v.X*o.X + v.Y*o.Y }

func (v Vec) Len() float64 { return math.Hypot(v.X, v.Y) }

// Norm returns v scaled to unit length. The zero vector is returned unchanged.
func (v Vec) Norm() Vec {
	l := v.Len()
	if l == 0 {
		return v
	}
	return v.Div(l)
}

// Cell returns the grid cell (col, row) containing v.
func (v Vec) Cell() (col, row int) {
	return int(math.Floor(v.X)), int(math.Floor(v.Y))
}

// Radians converts degrees to radians.
func Radians(deg float64) float64 { return deg * math.Pi / 180 }

// Degrees converts radians to degrees.
func Degrees(rad float64) float64 { return rad * 180 / math.Pi }
