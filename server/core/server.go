package core

import (
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/automoto/posesync/components"
	"github.com/automoto/posesync/shared/messages"
	"github.com/automoto/posesync/shared/netcomponents"
	"github.com/automoto/posesync/shared/posesync"
	"github.com/automoto/posesync/systems"
	"github.com/leap-fish/necs/esync"
	"github.com/leap-fish/necs/router"
	"github.com/leap-fish/necs/transports"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
)

// Peer is the part of a connected client the server talks to.
// *router.NetworkClient satisfies it.
type Peer interface {
	Id() string
	SendMessage(msg any) error
}

// Config holds what the server needs at construction time.
type Config struct {
	Name         string
	TickRate     int
	Version      string // required client version, empty accepts any
	Settings     posesync.Settings
	DemoEntities int

	Hooks  posesync.Hooks
	Logger *slog.Logger
	Clock  systems.Clock // defaults to seconds since NewServer
}

type clientInfo struct {
	peer Peer
	name string
}

// Server owns the authoritative world and every client connection. Router
// callbacks only enqueue work; the world is touched on the loop goroutine.
type Server struct {
	cfg       Config
	world     donburi.World
	ecs       *ecs.ECS
	loop      *GameLoop
	transport *transports.WsServerTransport
	logger    *slog.Logger
	hooks     posesync.Hooks
	clock     systems.Clock

	commands chan func()

	// clients is written on the loop goroutine and read by PlayerCount.
	clients map[string]*clientInfo
	mu      sync.RWMutex

	nextID esync.NetworkId
}

// NewServer builds a server. cfg.Settings must already be validated.
func NewServer(cfg Config) *Server {
	if cfg.TickRate <= 0 {
		cfg.TickRate = 30
	}
	s := &Server{
		cfg:      cfg,
		world:    donburi.NewWorld(),
		logger:   cfg.Logger,
		hooks:    cfg.Hooks,
		clock:    cfg.Clock,
		commands: make(chan func(), 256),
		clients:  make(map[string]*clientInfo),
		nextID:   1,
	}
	if s.logger == nil {
		s.logger = slog.Default()
	}
	s.logger = s.logger.With("component", "server")
	if s.hooks == nil {
		s.hooks = posesync.NopHooks{}
	}
	if s.clock == nil {
		start := time.Now()
		s.clock = func() float64 { return time.Since(start).Seconds() }
	}

	s.ecs = ecs.NewECS(s.world)
	s.ecs.AddSystem(systems.NewDriveSystem(s.clock))
	s.ecs.AddSystem(systems.NewPoseSyncSystem(s.clock, s, s.logger))

	s.loop = NewGameLoop(s, cfg.TickRate, s.logger)
	s.spawnDemoEntities(cfg.DemoEntities)
	return s
}

// Start runs the game loop and serves websocket connections on port. It
// blocks until the transport stops.
func (s *Server) Start(port uint) error {
	s.setupRouterCallbacks()
	go s.loop.Run()

	s.transport = transports.NewWsServerTransport(port, "", nil)
	if err := s.transport.Start(); err != nil {
		return fmt.Errorf("websocket transport: %w", err)
	}
	return nil
}

// Stop halts the game loop.
func (s *Server) Stop() {
	s.loop.Stop()
}

func (s *Server) setupRouterCallbacks() {
	router.OnConnect(func(client *router.NetworkClient) {
		s.logger.Info("client connected", "client", client.Id())
	})

	router.OnDisconnect(func(client *router.NetworkClient, err error) {
		id := client.Id()
		if err != nil {
			s.logger.Info("client disconnected", "client", id, "err", err)
		} else {
			s.logger.Info("client disconnected", "client", id)
		}
		s.enqueue(func() { s.handleDisconnect(id) })
	})

	router.On(func(client *router.NetworkClient, req messages.JoinRequest) {
		s.enqueue(func() { s.handleJoin(client, req) })
	})

	router.On(func(client *router.NetworkClient, msg messages.UpstreamSync) {
		id := client.Id()
		s.enqueue(func() { s.handleUpstream(id, msg) })
	})

	router.OnError(func(client *router.NetworkClient, err error) {
		s.logger.Warn("client error", "client", client.Id(), "err", err)
	})
}

func (s *Server) enqueue(cmd func()) {
	s.commands <- cmd
}

// ProcessCommands runs every queued command. Called once per tick before
// the world is updated.
func (s *Server) ProcessCommands() {
	for {
		select {
		case cmd := <-s.commands:
			cmd()
		default:
			return
		}
	}
}

// Tick processes queued commands and advances the world once.
func (s *Server) Tick() {
	s.ProcessCommands()
	s.ecs.Update()
}

func (s *Server) handleJoin(peer Peer, req messages.JoinRequest) {
	id := peer.Id()
	if s.cfg.Version != "" && req.Version != s.cfg.Version {
		reason := fmt.Sprintf("version mismatch: server %s, client %s", s.cfg.Version, req.Version)
		s.logger.Info("join rejected", "client", id, "reason", reason)
		s.send(peer, messages.JoinRejected{Reason: reason})
		return
	}

	s.mu.RLock()
	_, joined := s.clients[id]
	s.mu.RUnlock()
	if joined {
		s.logger.Debug("duplicate join ignored", "client", id)
		return
	}

	s.send(peer, messages.JoinAccepted{
		ClientID:   id,
		ServerName: s.cfg.Name,
		TickRate:   s.cfg.TickRate,
		Settings:   messages.NewSyncSettings(s.cfg.Settings),
	})

	// Late joiners learn about everything already live.
	components.Sync.Each(s.world, func(entry *donburi.Entry) {
		if spawned, ok := spawnedMessage(entry); ok {
			s.send(peer, spawned)
		}
	})

	entry := s.spawn(posesync.IdentityPose())
	entry.AddComponent(netcomponents.NetOwner)
	netcomponents.NetOwner.Set(entry, &netcomponents.NetOwnerData{ClientID: id})
	netID := *esync.GetNetworkId(entry)

	s.mu.Lock()
	s.clients[id] = &clientInfo{peer: peer, name: req.ClientName}
	s.mu.Unlock()

	if spawned, ok := spawnedMessage(entry); ok {
		s.broadcast(spawned)
	}
	s.send(peer, messages.OwnershipGranted{EntityID: netID})
	s.hooks.OnOwnershipGranted(posesync.EntityID(netID))

	s.logger.Info("client joined", "client", id, "name", req.ClientName, "entity", netID)
}

func (s *Server) handleDisconnect(id string) {
	s.mu.Lock()
	_, ok := s.clients[id]
	delete(s.clients, id)
	s.mu.Unlock()
	if !ok {
		return
	}

	// Whatever the client owns right now goes with it, which after a
	// transfer is not necessarily the entity it was given at join.
	for _, netID := range s.ownedBy(id) {
		s.hooks.OnOwnershipRevoked(posesync.EntityID(netID))
		s.despawn(netID)
	}
}

func (s *Server) ownedBy(clientID string) []esync.NetworkId {
	var ids []esync.NetworkId
	netcomponents.NetOwner.Each(s.world, func(entry *donburi.Entry) {
		if !netcomponents.IsOwnedBy(entry, clientID) {
			return
		}
		if nid := esync.GetNetworkId(entry); nid != nil {
			ids = append(ids, *nid)
		}
	})
	return ids
}

func (s *Server) handleUpstream(senderID string, msg messages.UpstreamSync) {
	if !systems.ApplyUpstream(s.world, msg, senderID, s, s.clock()) {
		s.logger.Debug("upstream dropped", "client", senderID, "entity", msg.EntityID)
	}
}

// TransferOwnership hands entity id to clientID, or to the server when
// clientID is empty. It is queued and applied on the next tick.
func (s *Server) TransferOwnership(id esync.NetworkId, clientID string) {
	s.enqueue(func() { s.transferOwnership(id, clientID) })
}

func (s *Server) transferOwnership(id esync.NetworkId, clientID string) {
	entry, ok := systems.FindSynced(s.world, id)
	if !ok {
		return
	}

	if entry.HasComponent(netcomponents.NetOwner) {
		prev := netcomponents.NetOwner.Get(entry).ClientID
		if prev == clientID {
			return
		}
		if peer, ok := s.peer(prev); ok {
			s.send(peer, messages.OwnershipRevoked{EntityID: id})
		}
		s.hooks.OnOwnershipRevoked(posesync.EntityID(id))
		entry.RemoveComponent(netcomponents.NetOwner)
	}

	if clientID == "" {
		return
	}
	peer, ok := s.peer(clientID)
	if !ok {
		return
	}
	entry.AddComponent(netcomponents.NetOwner)
	netcomponents.NetOwner.Set(entry, &netcomponents.NetOwnerData{ClientID: clientID})
	s.send(peer, messages.OwnershipGranted{EntityID: id})
	s.hooks.OnOwnershipGranted(posesync.EntityID(id))
}

// spawn creates an authoritative entity and announces its activation to
// the hooks. Callers broadcast the spawn themselves.
func (s *Server) spawn(pose posesync.Pose) *donburi.Entry {
	id := s.nextID
	s.nextID++
	entry := systems.SpawnSynced(s.world, id, pose, components.SyncData{
		Settings:        s.cfg.Settings,
		IsAuthoritySide: true,
	})
	s.hooks.OnStartAuthority(posesync.EntityID(id))
	return entry
}

func (s *Server) despawn(id esync.NetworkId) {
	entry, ok := systems.FindSynced(s.world, id)
	if !ok {
		return
	}
	s.hooks.OnStopAuthority(posesync.EntityID(id))
	s.world.Remove(entry.Entity())
	s.broadcast(messages.EntityDespawned{EntityID: id})
	s.logger.Debug("entity despawned", "entity", id)
}

func (s *Server) spawnDemoEntities(n int) {
	for i := 0; i < n; i++ {
		offset := float64(i) * 4
		pose := posesync.IdentityPose()
		pose.Position[0] = offset
		entry := s.spawn(pose)
		entry.AddComponent(components.Patrol)
		components.Patrol.Set(entry, &components.PatrolData{
			Waypoints: squareRoute(offset, 3),
			Speed:     1.5 + 0.5*float64(i%3),
		})
	}
	if n > 0 {
		s.logger.Info("demo entities spawned", "count", n)
	}
}

func spawnedMessage(entry *donburi.Entry) (messages.EntitySpawned, bool) {
	nid := esync.GetNetworkId(entry)
	if nid == nil || !entry.HasComponent(netcomponents.NetPose) {
		return messages.EntitySpawned{}, false
	}
	pose := netcomponents.NetPose.Get(entry).Pose()
	msg := messages.EntitySpawned{
		EntityID:    *nid,
		Position:    pose.Position,
		Orientation: pose.Orientation,
		Scale:       pose.Scale,
	}
	if entry.HasComponent(netcomponents.NetOwner) {
		msg.OwnerClientID = netcomponents.NetOwner.Get(entry).ClientID
	}
	return msg, true
}

func (s *Server) peer(id string) (Peer, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	info, ok := s.clients[id]
	if !ok {
		return nil, false
	}
	return info.peer, true
}

func (s *Server) send(peer Peer, msg any) {
	if err := peer.SendMessage(msg); err != nil {
		s.logger.Debug("send failed", "client", peer.Id(), "err", err)
	}
}

func (s *Server) broadcast(msg any) {
	s.mu.RLock()
	peers := make([]Peer, 0, len(s.clients))
	for _, info := range s.clients {
		peers = append(peers, info.peer)
	}
	s.mu.RUnlock()

	for _, p := range peers {
		s.send(p, msg)
	}
}

// BroadcastMove sends an accepted pose change to every joined client.
func (s *Server) BroadcastMove(msg messages.DownstreamMove) {
	s.broadcast(msg)
}

// SendUpstream is a no-op: the server never acts as an owning client.
func (s *Server) SendUpstream(messages.UpstreamSync) {}

// World returns the ECS world. Only safe to use from the loop goroutine.
func (s *Server) World() donburi.World {
	return s.world
}

// PlayerCount returns the number of joined clients.
func (s *Server) PlayerCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.clients)
}
