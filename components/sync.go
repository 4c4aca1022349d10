package components

import (
	"github.com/automoto/posesync/shared/posesync"
	"github.com/yohamta/donburi"
)

// SyncData is the per-entity protocol record: state, settings and the two
// authority facts supplied by the session.
type SyncData struct {
	State    posesync.SyncState
	Settings posesync.Settings

	IsAuthoritySide bool
	IsOwningClient  bool
}

var Sync = donburi.NewComponentType[SyncData]()

// Roles resolves this entity's send and apply roles.
func (d *SyncData) Roles() posesync.Roles {
	return posesync.ResolveRoles(
		d.IsAuthoritySide,
		d.IsOwningClient,
		d.Settings.ClientAuthority,
		d.Settings.ExcludeOwnerEcho,
	)
}
