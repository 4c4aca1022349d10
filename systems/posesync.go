package systems

import (
	"log/slog"

	"github.com/automoto/posesync/components"
	"github.com/automoto/posesync/shared/messages"
	"github.com/automoto/posesync/shared/netcomponents"
	"github.com/automoto/posesync/shared/posesync"
	"github.com/leap-fish/necs/esync"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
)

// Clock returns the current local time in seconds.
type Clock func() float64

// Outbox hands outbound messages to the transport. Implementations must not
// block the tick.
type Outbox interface {
	BroadcastMove(messages.DownstreamMove)
	SendUpstream(messages.UpstreamSync)
}

// entitySender binds an Outbox to one entity so the core can stay unaware
// of network ids.
type entitySender struct {
	id  esync.NetworkId
	out Outbox
}

func (s entitySender) Broadcast(p posesync.Pose) {
	s.out.BroadcastMove(messages.NewDownstreamMove(s.id, p))
}

func (s entitySender) SendUpstream(p posesync.Pose) {
	s.out.SendUpstream(messages.NewUpstreamSync(s.id, p))
}

// tickTimer turns clock readings into per-tick deltas. The first tick has a
// zero delta.
type tickTimer struct {
	last    float64
	started bool
}

func (t *tickTimer) advance(now float64) float64 {
	dt := 0.0
	if t.started {
		dt = now - t.last
	}
	t.last, t.started = now, true
	return dt
}

// NewPoseSyncSystem returns the ECS system that drives pose synchronization
// for every entity carrying Sync, NetPose and a network id.
func NewPoseSyncSystem(clock Clock, out Outbox, logger *slog.Logger) func(*ecs.ECS) {
	timer := &tickTimer{}
	return func(e *ecs.ECS) {
		now := clock()
		StepAll(e.World, out, now, timer.advance(now), logger)
	}
}

// StepAll runs one scheduler tick over the world.
func StepAll(world donburi.World, out Outbox, now, dt float64, logger *slog.Logger) {
	components.Sync.Each(world, func(entry *donburi.Entry) {
		nid := esync.GetNetworkId(entry)
		if nid == nil || !entry.HasComponent(netcomponents.NetPose) {
			return
		}
		data := components.Sync.Get(entry)
		res := posesync.Step(&data.State, data.Settings, data.Roles(),
			netcomponents.Accessor(entry), entitySender{id: *nid, out: out}, now, dt)
		if res.Teleported && logger != nil {
			logger.Debug("teleported to goal", "entity", *nid)
		}
	})
}

// ApplyDownstream folds a DownstreamMove into the matching entity. It
// reports false for unknown entities and for entities that do not apply
// inbound updates on this process.
func ApplyDownstream(world donburi.World, msg messages.DownstreamMove, now float64) bool {
	entry, ok := FindSynced(world, msg.EntityID)
	if !ok {
		return false
	}
	data := components.Sync.Get(entry)
	return posesync.Receive(&data.State, data.Settings, data.Roles(), netcomponents.Accessor(entry), msg.Pose(), now)
}

// ApplyUpstream validates and applies an UpstreamSync from senderID on the
// authority, rebroadcasting it through out when accepted.
func ApplyUpstream(world donburi.World, msg messages.UpstreamSync, senderID string, out Outbox, now float64) bool {
	entry, ok := FindSynced(world, msg.EntityID)
	if !ok {
		return false
	}
	data := components.Sync.Get(entry)
	return posesync.ApplyUpstream(&data.State, data.Settings, netcomponents.Accessor(entry),
		entitySender{id: msg.EntityID, out: out}, msg.Pose(), netcomponents.IsOwnedBy(entry, senderID), now)
}

// FindSynced looks up a synchronized entity by network id.
func FindSynced(world donburi.World, id esync.NetworkId) (*donburi.Entry, bool) {
	entity := esync.FindByNetworkId(world, id)
	if !world.Valid(entity) {
		return nil, false
	}
	entry := world.Entry(entity)
	if !entry.HasComponent(components.Sync) || !entry.HasComponent(netcomponents.NetPose) {
		return nil, false
	}
	return entry, true
}

// SpawnSynced creates a synchronized entity with the given network id, pose
// and protocol record.
func SpawnSynced(world donburi.World, id esync.NetworkId, pose posesync.Pose, data components.SyncData) *donburi.Entry {
	entity := world.Create(esync.NetworkIdComponent, netcomponents.NetPose, components.Sync)
	entry := world.Entry(entity)
	esync.NetworkIdComponent.SetValue(entry, id)
	netcomponents.NetPose.Set(entry, netcomponents.NewNetPose(pose))
	components.Sync.Set(entry, &data)
	return entry
}
