package netcomponents

import "github.com/yohamta/donburi"

// NetOwnerData records which client, if any, owns an entity. Only the
// authority attaches it; entities without it are server owned.
type NetOwnerData struct {
	ClientID string
}

var NetOwner = donburi.NewComponentType[NetOwnerData]()

// IsOwnedBy reports whether entry is owned by clientID.
func IsOwnedBy(entry *donburi.Entry, clientID string) bool {
	if clientID == "" || !entry.HasComponent(NetOwner) {
		return false
	}
	return NetOwner.Get(entry).ClientID == clientID
}
