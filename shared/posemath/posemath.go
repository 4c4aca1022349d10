// Package posemath holds the vector and quaternion helpers shared by the
// authority and observer sides. It depends only on mgl64 so the headless
// server binary stays free of any rendering library.
package posemath

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

const (
	approxEpsilon  = 1e-5
	quatDotEpsilon = 1e-6
)

// SqrDistance returns the squared Euclidean distance between a and b.
func SqrDistance(a, b mgl64.Vec3) float64 {
	d := a.Sub(b)
	return d.Dot(d)
}

// Distance returns the Euclidean distance between a and b.
func Distance(a, b mgl64.Vec3) float64 {
	return a.Sub(b).Len()
}

// Angle returns the angle in degrees between two orientations.
// Identical inputs always yield exactly zero.
func Angle(a, b mgl64.Quat) float64 {
	if a == b {
		return 0
	}
	dot := math.Abs(a.Dot(b))
	if dot >= 1 {
		return 0
	}
	return mgl64.RadToDeg(2 * math.Acos(dot))
}

// SameVec3 reports whether a and b are equal within engine tolerance.
func SameVec3(a, b mgl64.Vec3) bool {
	return a.ApproxEqualThreshold(b, approxEpsilon)
}

// SameQuat reports whether a and b describe the same orientation within
// engine tolerance. q and -q are the same rotation.
func SameQuat(a, b mgl64.Quat) bool {
	return math.Abs(a.Dot(b)) > 1-quatDotEpsilon
}

// Clamp01 clamps t into [0, 1].
func Clamp01(t float64) float64 {
	if t < 0 {
		return 0
	}
	if t > 1 {
		return 1
	}
	return t
}

// MoveTowards moves current toward target by at most maxDelta and never
// overshoots. A non-positive maxDelta leaves current unchanged.
func MoveTowards(current, target mgl64.Vec3, maxDelta float64) mgl64.Vec3 {
	if maxDelta <= 0 {
		return current
	}
	delta := target.Sub(current)
	dist := delta.Len()
	if dist <= maxDelta || dist == 0 {
		return target
	}
	return current.Add(delta.Mul(maxDelta / dist))
}

// Lerp blends a toward b with t clamped to [0, 1].
func Lerp(a, b mgl64.Vec3, t float64) mgl64.Vec3 {
	t = Clamp01(t)
	return a.Add(b.Sub(a).Mul(t))
}

// Slerp spherically interpolates from a to b along the shortest arc with t
// clamped to [0, 1].
func Slerp(a, b mgl64.Quat, t float64) mgl64.Quat {
	t = Clamp01(t)
	if a.Dot(b) < 0 {
		b = b.Scale(-1)
	}
	return mgl64.QuatSlerp(a, b, t).Normalize()
}
