package posesync

import "github.com/automoto/posesync/shared/netconfig"

// Roles is what this process does with an entity: whether it originates
// updates and whether it applies the ones it receives.
type Roles struct {
	Send  netconfig.SendRole
	Apply netconfig.ApplyRole
}

// ResolveRoles maps the authority facts for an entity to its roles. At most
// one side of a session can end up as sender because only the authority
// side sees isAuthoritySide and only one client owns an entity.
func ResolveRoles(isAuthoritySide, isOwningClient, clientAuthorityEnabled, excludeOwnerEcho bool) Roles {
	roles := Roles{Send: netconfig.SendNone, Apply: netconfig.ApplyInterpolate}

	switch {
	case isAuthoritySide:
		roles.Send = netconfig.SendAuthority
	case isOwningClient && clientAuthorityEnabled:
		roles.Send = netconfig.SendOwner
	}

	// An owner in server-authority mode would otherwise correct its own motion
	// from a round-tripped copy of data it caused.
	if !isAuthoritySide && isOwningClient && !clientAuthorityEnabled && excludeOwnerEcho {
		roles.Apply = netconfig.ApplyIgnore
	}
	return roles
}

// AcceptUpstream is the authority-side check for an UpstreamSync: only the
// owning client may originate one, and only while client authority is on.
func AcceptUpstream(clientAuthorityEnabled, senderIsOwner bool) bool {
	return clientAuthorityEnabled && senderIsOwner
}
