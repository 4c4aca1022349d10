package posesync

import "github.com/automoto/posesync/shared/posemath"

// Thresholds bound how far a pose may drift from the last sent one before a
// new update is worth sending. Position and Scale compare against squared
// distance, Rotation against the angle in degrees.
type Thresholds struct {
	Position float64
	Rotation float64
	Scale    float64
}

// HasChanged reports whether current differs from lastSent by more than any
// threshold. Callers advance their baseline to current only when this
// returns true, so slow sub-threshold drift keeps accumulating against the
// same baseline.
func HasChanged(current, lastSent Pose, th Thresholds) bool {
	if posemath.SqrDistance(current.Position, lastSent.Position) > th.Position {
		return true
	}
	if posemath.Angle(current.Orientation, lastSent.Orientation) > th.Rotation {
		return true
	}
	return posemath.SqrDistance(current.Scale, lastSent.Scale) > th.Scale
}
