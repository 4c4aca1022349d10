package netcomponents

import (
	"github.com/automoto/posesync/shared/posesync"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/yohamta/donburi"
)

// NetPoseData is the pose an entity is rendered at on this process. On the
// authority it is the ground truth.
type NetPoseData struct {
	Position    mgl64.Vec3
	Orientation mgl64.Quat
	Scale       mgl64.Vec3
}

var NetPose = donburi.NewComponentType[NetPoseData]()

// NewNetPose copies a pose into component data.
func NewNetPose(p posesync.Pose) *NetPoseData {
	return &NetPoseData{
		Position:    p.Position,
		Orientation: p.Orientation,
		Scale:       p.Scale,
	}
}

// Pose returns the component data as a pose.
func (d *NetPoseData) Pose() posesync.Pose {
	return posesync.Pose{
		Position:    d.Position,
		Orientation: d.Orientation,
		Scale:       d.Scale,
	}
}

// Accessor exposes an entry's NetPose as a posesync.PoseAccessor.
func Accessor(entry *donburi.Entry) posesync.PoseAccessor {
	return poseAccessor{entry: entry}
}

type poseAccessor struct {
	entry *donburi.Entry
}

func (a poseAccessor) ReadPose() posesync.Pose {
	return NetPose.Get(a.entry).Pose()
}

func (a poseAccessor) WritePose(p posesync.Pose) {
	NetPose.Set(a.entry, NewNetPose(p))
}
