package core

import "github.com/go-gl/mathgl/mgl64"

// squareRoute returns the corners of a square of the given side length on
// the ground plane, starting at (x, 0, 0).
func squareRoute(x, side float64) []mgl64.Vec3 {
	return []mgl64.Vec3{
		{x + side, 0, 0},
		{x + side, 0, side},
		{x, 0, side},
		{x, 0, 0},
	}
}
