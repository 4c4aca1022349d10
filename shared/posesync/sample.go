package posesync

import "github.com/go-gl/mathgl/mgl64"

// Pose is a local-space position, orientation and scale.
type Pose struct {
	Position    mgl64.Vec3
	Orientation mgl64.Quat
	Scale       mgl64.Vec3
}

// IdentityPose is the pose at the origin with no rotation and unit scale.
func IdentityPose() Pose {
	return Pose{
		Orientation: mgl64.QuatIdent(),
		Scale:       mgl64.Vec3{1, 1, 1},
	}
}

// PoseSample is a pose received (or synthesized) at a local timestamp,
// together with the speed estimated for reaching it. The zero value is the
// "no data yet" sentinel.
type PoseSample struct {
	Timestamp float64 // seconds on the local monotonic clock
	Pose
	Speed float64 // units per second, never negative
	valid bool
}

// NewPoseSample returns a valid sample.
func NewPoseSample(timestamp float64, pose Pose, speed float64) PoseSample {
	return PoseSample{
		Timestamp: timestamp,
		Pose:      pose,
		Speed:     speed,
		valid:     true,
	}
}

// IsValid reports whether the sample carries data.
func (s PoseSample) IsValid() bool {
	return s.valid
}
