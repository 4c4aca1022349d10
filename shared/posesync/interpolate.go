package posesync

import (
	"math"

	"github.com/automoto/posesync/shared/posemath"
	"github.com/tanema/gween/ease"
)

// InterpolationFactor returns how far rotation and scale should have blended
// from start to goal at now. Elapsed time is measured from when the goal
// arrived, so the factor runs from 0 at arrival to 1 one span later and keeps
// growing after that. A zero span or missing start yields 1.
func InterpolationFactor(start, goal PoseSample, now float64) float64 {
	if !start.IsValid() {
		return 1
	}
	difference := goal.Timestamp - start.Timestamp
	if difference <= 0 {
		return 1
	}
	elapsed := now - goal.Timestamp
	return elapsed / difference
}

// Interpolate returns the pose to render this tick.
//
// Position approaches the goal at max(start.Speed, goal.Speed) units per
// second without overshooting. It does not blend by time fraction because
// network timing jitter then shows up as stutter. Orientation and scale
// blend by InterpolationFactor, shaped by curve when one is given. A channel
// whose start and goal agree holds its current value.
func Interpolate(start, goal PoseSample, current Pose, dt, now float64, curve ease.TweenFunc) Pose {
	out := current

	if start.Speed != 0 {
		step := math.Max(start.Speed, goal.Speed) * dt
		out.Position = posemath.MoveTowards(current.Position, goal.Position, step)
	}

	sameOrientation := posemath.SameQuat(start.Orientation, goal.Orientation)
	sameScale := posemath.SameVec3(start.Scale, goal.Scale)
	if sameOrientation && sameScale {
		return out
	}

	t := shape(posemath.Clamp01(InterpolationFactor(start, goal, now)), curve)
	if !sameOrientation {
		out.Orientation = posemath.Slerp(start.Orientation, goal.Orientation, t)
	}
	if !sameScale {
		out.Scale = posemath.Lerp(start.Scale, goal.Scale, t)
	}
	return out
}

// shape maps a clamped factor through an easing curve. A nil curve is
// linear and skips the float32 round trip gween works in.
func shape(t float64, curve ease.TweenFunc) float64 {
	if curve == nil || t == 0 || t == 1 {
		return t
	}
	return posemath.Clamp01(float64(curve(float32(t), 0, 1, 1)))
}
