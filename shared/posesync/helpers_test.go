package posesync

import "github.com/go-gl/mathgl/mgl64"

type fakeTransform struct {
	pose   Pose
	writes int
}

func (f *fakeTransform) ReadPose() Pose { return f.pose }

func (f *fakeTransform) WritePose(p Pose) {
	f.pose = p
	f.writes++
}

type recordingSender struct {
	broadcasts []Pose
	upstream   []Pose
}

func (r *recordingSender) Broadcast(p Pose)    { r.broadcasts = append(r.broadcasts, p) }
func (r *recordingSender) SendUpstream(p Pose) { r.upstream = append(r.upstream, p) }

func poseAt(x, y, z float64) Pose {
	p := IdentityPose()
	p.Position = mgl64.Vec3{x, y, z}
	return p
}
