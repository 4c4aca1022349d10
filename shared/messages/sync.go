package messages

import (
	"github.com/automoto/posesync/shared/posesync"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/leap-fish/necs/esync"
)

// UpstreamSync carries an owning client's pose to the authority. The
// authority drops it unless client authority is enabled for the entity and
// the sender owns it.
type UpstreamSync struct {
	EntityID    esync.NetworkId
	Position    mgl64.Vec3
	Orientation mgl64.Quat
	Scale       mgl64.Vec3
}

// DownstreamMove is broadcast by the authority to every observer after each
// accepted local change or accepted UpstreamSync.
type DownstreamMove struct {
	EntityID    esync.NetworkId
	Position    mgl64.Vec3
	Orientation mgl64.Quat
	Scale       mgl64.Vec3
}

func NewUpstreamSync(id esync.NetworkId, p posesync.Pose) UpstreamSync {
	return UpstreamSync{EntityID: id, Position: p.Position, Orientation: p.Orientation, Scale: p.Scale}
}

func NewDownstreamMove(id esync.NetworkId, p posesync.Pose) DownstreamMove {
	return DownstreamMove{EntityID: id, Position: p.Position, Orientation: p.Orientation, Scale: p.Scale}
}

func (m UpstreamSync) Pose() posesync.Pose {
	return posesync.Pose{Position: m.Position, Orientation: m.Orientation, Scale: m.Scale}
}

func (m DownstreamMove) Pose() posesync.Pose {
	return posesync.Pose{Position: m.Position, Orientation: m.Orientation, Scale: m.Scale}
}
