package messages

import (
	"github.com/automoto/posesync/shared/posesync"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/leap-fish/necs/esync"
)

// EntitySpawned is broadcast when a synchronized entity becomes active on
// the authority, and sent to late joiners for every live entity.
type EntitySpawned struct {
	EntityID      esync.NetworkId
	OwnerClientID string // empty for server owned entities
	Position      mgl64.Vec3
	Orientation   mgl64.Quat
	Scale         mgl64.Vec3
}

func (e EntitySpawned) Pose() posesync.Pose {
	return posesync.Pose{Position: e.Position, Orientation: e.Orientation, Scale: e.Scale}
}

// EntityDespawned is broadcast when an entity is deactivated on the authority.
type EntityDespawned struct {
	EntityID esync.NetworkId
}

// OwnershipGranted is sent to the client that now owns EntityID.
type OwnershipGranted struct {
	EntityID esync.NetworkId
}

// OwnershipRevoked is sent to the client that no longer owns EntityID.
type OwnershipRevoked struct {
	EntityID esync.NetworkId
}
