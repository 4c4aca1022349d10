package posesync

// EntityID identifies a synchronized entity across the session.
type EntityID uint

// Hooks are lifecycle extension points invoked by the entity management
// layer. The core does nothing on any of them.
type Hooks interface {
	OnStartAuthority(id EntityID)
	OnStopAuthority(id EntityID)
	OnStartObserver(id EntityID)
	OnStopObserver(id EntityID)
	OnOwnershipGranted(id EntityID)
	OnOwnershipRevoked(id EntityID)
}

// NopHooks implements Hooks with no-ops. Embed it to override a subset.
type NopHooks struct{}

func (NopHooks) OnStartAuthority(EntityID)   {}
func (NopHooks) OnStopAuthority(EntityID)    {}
func (NopHooks) OnStartObserver(EntityID)    {}
func (NopHooks) OnStopObserver(EntityID)     {}
func (NopHooks) OnOwnershipGranted(EntityID) {}
func (NopHooks) OnOwnershipRevoked(EntityID) {}
