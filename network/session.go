package network

import (
	"log/slog"
	"time"

	"github.com/automoto/posesync/components"
	"github.com/automoto/posesync/shared/messages"
	"github.com/automoto/posesync/shared/netcomponents"
	"github.com/automoto/posesync/shared/posesync"
	"github.com/automoto/posesync/systems"
	"github.com/leap-fish/necs/esync"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
)

// Inbox is the queued inbound traffic a session consumes each tick.
type Inbox interface {
	DrainSpawned() []messages.EntitySpawned
	DrainDespawned() []messages.EntityDespawned
	DrainGranted() []messages.OwnershipGranted
	DrainRevoked() []messages.OwnershipRevoked
	DrainMoves() []messages.DownstreamMove
}

// Uplink carries messages to the authority.
type Uplink interface {
	SendMessage(msg any) error
}

// SessionConfig configures an observer session.
type SessionConfig struct {
	ClientID string
	Settings posesync.Settings

	// Orbit, when set, drives an owned entity in a circle around where it
	// was granted. Only used while client authority is enabled.
	Orbit *components.OrbitData

	Hooks  posesync.Hooks
	Logger *slog.Logger
	Clock  systems.Clock
}

// Session mirrors the authority's entities into a local world and runs the
// observer and owner side of pose synchronization. Every method must be
// called from the goroutine that runs Tick.
type Session struct {
	cfg    SessionConfig
	inbox  Inbox
	uplink Uplink
	world  donburi.World
	ecs    *ecs.ECS
	hooks  posesync.Hooks
	logger *slog.Logger
	clock  systems.Clock
}

func NewSession(inbox Inbox, uplink Uplink, cfg SessionConfig) *Session {
	s := &Session{
		cfg:    cfg,
		inbox:  inbox,
		uplink: uplink,
		world:  donburi.NewWorld(),
		hooks:  cfg.Hooks,
		logger: cfg.Logger,
		clock:  cfg.Clock,
	}
	if s.hooks == nil {
		s.hooks = posesync.NopHooks{}
	}
	if s.logger == nil {
		s.logger = slog.Default()
	}
	s.logger = s.logger.With("component", "session")
	if s.clock == nil {
		start := time.Now()
		s.clock = func() float64 { return time.Since(start).Seconds() }
	}

	s.ecs = ecs.NewECS(s.world)
	s.ecs.AddSystem(systems.NewDriveSystem(s.clock))
	s.ecs.AddSystem(systems.NewPoseSyncSystem(s.clock, s, s.logger))
	return s
}

// Tick applies every queued event and move, then advances the world.
func (s *Session) Tick() {
	now := s.clock()

	for _, evt := range s.inbox.DrainSpawned() {
		s.spawn(evt)
	}
	for _, evt := range s.inbox.DrainGranted() {
		s.setOwnership(evt.EntityID, true)
	}
	for _, evt := range s.inbox.DrainRevoked() {
		s.setOwnership(evt.EntityID, false)
	}
	for _, msg := range s.inbox.DrainMoves() {
		systems.ApplyDownstream(s.world, msg, now)
	}
	for _, evt := range s.inbox.DrainDespawned() {
		s.despawn(evt.EntityID)
	}

	s.ecs.Update()
}

func (s *Session) spawn(evt messages.EntitySpawned) {
	if _, exists := systems.FindSynced(s.world, evt.EntityID); exists {
		return
	}
	systems.SpawnSynced(s.world, evt.EntityID, evt.Pose(), components.SyncData{Settings: s.cfg.Settings})
	s.hooks.OnStartObserver(posesync.EntityID(evt.EntityID))
	s.logger.Debug("entity spawned", "entity", evt.EntityID, "owner", evt.OwnerClientID)

	// The spawn already names the owner, so a lost grant does not leave our
	// own entity stuck as a plain observer.
	if s.cfg.ClientID != "" && evt.OwnerClientID == s.cfg.ClientID {
		s.setOwnership(evt.EntityID, true)
	}
}

func (s *Session) despawn(id esync.NetworkId) {
	entry, ok := systems.FindSynced(s.world, id)
	if !ok {
		return
	}
	if components.Sync.Get(entry).IsOwningClient {
		s.hooks.OnOwnershipRevoked(posesync.EntityID(id))
	}
	s.hooks.OnStopObserver(posesync.EntityID(id))
	s.world.Remove(entry.Entity())
	s.logger.Debug("entity despawned", "entity", id)
}

func (s *Session) setOwnership(id esync.NetworkId, owned bool) {
	entry, ok := systems.FindSynced(s.world, id)
	if !ok {
		s.logger.Warn("ownership event for unknown entity", "entity", id)
		return
	}
	data := components.Sync.Get(entry)
	if data.IsOwningClient == owned {
		return
	}
	data.IsOwningClient = owned
	// Samples buffered under the old role are meaningless under the new one.
	data.State.Buffer.Reset()

	if owned {
		s.hooks.OnOwnershipGranted(posesync.EntityID(id))
		if s.cfg.Orbit != nil && data.Settings.ClientAuthority && !entry.HasComponent(components.Orbit) {
			orbit := *s.cfg.Orbit
			orbit.Center = netcomponents.NetPose.Get(entry).Position.Sub(orbitStart(orbit))
			entry.AddComponent(components.Orbit)
			components.Orbit.Set(entry, &orbit)
		}
	} else {
		s.hooks.OnOwnershipRevoked(posesync.EntityID(id))
		if entry.HasComponent(components.Orbit) {
			entry.RemoveComponent(components.Orbit)
		}
	}
	s.logger.Info("ownership changed", "entity", id, "owned", owned, "roles", data.Roles().Send.String())
}

// BroadcastMove is a no-op: observers never broadcast.
func (s *Session) BroadcastMove(messages.DownstreamMove) {}

// SendUpstream forwards an owner's pose to the authority.
func (s *Session) SendUpstream(msg messages.UpstreamSync) {
	if s.uplink == nil {
		return
	}
	if err := s.uplink.SendMessage(msg); err != nil {
		s.logger.Debug("upstream send failed", "entity", msg.EntityID, "err", err)
	}
}

// World returns the local mirror world.
func (s *Session) World() donburi.World {
	return s.world
}

// EntityCount returns the number of mirrored entities.
func (s *Session) EntityCount() int {
	n := 0
	components.Sync.Each(s.world, func(*donburi.Entry) { n++ })
	return n
}

// Pose returns the pose entity id is currently rendered at.
func (s *Session) Pose(id esync.NetworkId) (posesync.Pose, bool) {
	entry, ok := systems.FindSynced(s.world, id)
	if !ok {
		return posesync.Pose{}, false
	}
	return netcomponents.NetPose.Get(entry).Pose(), true
}
