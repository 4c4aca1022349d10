package network

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/automoto/posesync/shared/messages"
	"github.com/automoto/posesync/shared/netconfig"
	"github.com/coder/websocket"
	"github.com/leap-fish/necs/router"
	"github.com/leap-fish/necs/transports"
)

type ClientState int

const (
	StateDisconnected ClientState = iota
	StateConnecting
	StateConnected
	StateJoined
	StateError
)

func (s ClientState) String() string {
	switch s {
	case StateDisconnected:
		return "disconnected"
	case StateConnecting:
		return "connecting"
	case StateConnected:
		return "connected"
	case StateJoined:
		return "joined"
	case StateError:
		return "error"
	default:
		return "unknown"
	}
}

var ErrNotConnected = errors.New("not connected")

// Client manages a WebSocket connection to the authority.
// All shared fields are protected by mu (router callbacks run on necs goroutines).
type Client struct {
	mu sync.RWMutex

	state      ClientState
	lastError  error
	clientID   string
	serverName string
	tickRate   int
	settings   messages.SyncSettings
	conn       *websocket.Conn

	logger *slog.Logger

	spawnCh     chan messages.EntitySpawned
	despawnCh   chan messages.EntityDespawned
	grantedCh   chan messages.OwnershipGranted
	revokedCh   chan messages.OwnershipRevoked
	moveCh      chan messages.DownstreamMove
	disconnects chan struct{}
}

func NewClient(logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{
		state:       StateDisconnected,
		logger:      logger.With("component", "client"),
		spawnCh:     make(chan messages.EntitySpawned, 64),
		despawnCh:   make(chan messages.EntityDespawned, 64),
		grantedCh:   make(chan messages.OwnershipGranted, 8),
		revokedCh:   make(chan messages.OwnershipRevoked, 8),
		moveCh:      make(chan messages.DownstreamMove, 1024),
		disconnects: make(chan struct{}, 1),
	}
}

// Connect dials the server in a background goroutine and initiates the join handshake.
func (c *Client) Connect(address, clientName string) {
	c.mu.Lock()
	c.state = StateConnecting
	c.lastError = nil
	c.mu.Unlock()

	router.OnConnect(func(_ *router.NetworkClient) {
		c.logger.Info("connected to server", "address", address)
		c.mu.Lock()
		c.state = StateConnected
		c.mu.Unlock()

		err := c.SendMessage(messages.JoinRequest{
			Version:    netconfig.ProtocolVersion,
			ClientName: clientName,
		})
		if err != nil {
			c.setError(fmt.Errorf("failed to send join request: %w", err))
		}
	})

	router.On(func(_ *router.NetworkClient, msg messages.JoinAccepted) {
		c.logger.Info("join accepted", "clientID", msg.ClientID, "server", msg.ServerName, "tickRate", msg.TickRate)
		c.mu.Lock()
		c.clientID = msg.ClientID
		c.serverName = msg.ServerName
		c.tickRate = msg.TickRate
		c.settings = msg.Settings
		c.state = StateJoined
		c.mu.Unlock()
	})

	router.On(func(_ *router.NetworkClient, msg messages.JoinRejected) {
		c.logger.Warn("join rejected", "reason", msg.Reason)
		c.setError(fmt.Errorf("join rejected: %s", msg.Reason))
	})

	router.On(func(_ *router.NetworkClient, evt messages.EntitySpawned) { c.HandleSpawned(evt) })
	router.On(func(_ *router.NetworkClient, evt messages.EntityDespawned) { c.HandleDespawned(evt) })
	router.On(func(_ *router.NetworkClient, evt messages.OwnershipGranted) { c.HandleGranted(evt) })
	router.On(func(_ *router.NetworkClient, evt messages.OwnershipRevoked) { c.HandleRevoked(evt) })
	router.On(func(_ *router.NetworkClient, msg messages.DownstreamMove) { c.HandleMove(msg) })

	router.OnDisconnect(func(_ *router.NetworkClient, err error) {
		c.logger.Info("disconnected", "err", err)
		c.mu.Lock()
		if c.state != StateError {
			c.state = StateDisconnected
		}
		c.conn = nil
		c.mu.Unlock()
		select {
		case c.disconnects <- struct{}{}:
		default:
		}
	})

	router.OnError(func(_ *router.NetworkClient, err error) {
		c.logger.Warn("router error", "err", err)
	})

	go func() {
		transport := transports.NewWsClientTransport("ws://" + address)
		err := transport.Start(func(conn *websocket.Conn) {
			c.mu.Lock()
			c.conn = conn
			c.mu.Unlock()
		})
		if err != nil {
			c.setError(fmt.Errorf("connection failed: %w", err))
		}
	}()
}

func (c *Client) Disconnect() {
	c.mu.Lock()
	conn := c.conn
	c.state = StateDisconnected
	c.conn = nil
	c.mu.Unlock()

	if conn != nil {
		_ = conn.CloseNow()
	}

	router.ResetRouter()
}

func (c *Client) State() ClientState {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.state
}

func (c *Client) LastError() error {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.lastError
}

func (c *Client) ClientID() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.clientID
}

func (c *Client) ServerName() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.serverName
}

func (c *Client) TickRate() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.tickRate
}

// Settings returns the protocol settings announced by the server.
func (c *Client) Settings() messages.SyncSettings {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.settings
}

// Disconnects signals once per lost connection.
func (c *Client) Disconnects() <-chan struct{} {
	return c.disconnects
}

func (c *Client) SendMessage(msg any) error {
	c.mu.RLock()
	conn := c.conn
	c.mu.RUnlock()

	if conn == nil {
		return ErrNotConnected
	}

	payload, err := router.Serialize(msg)
	if err != nil {
		return fmt.Errorf("serialize: %w", err)
	}

	return conn.Write(context.Background(), websocket.MessageBinary, payload)
}

func (c *Client) setError(err error) {
	c.mu.Lock()
	c.state = StateError
	c.lastError = err
	c.mu.Unlock()
}

// HandleSpawned queues a spawn event for the next tick.
func (c *Client) HandleSpawned(evt messages.EntitySpawned) { c.queue(tryPush(c.spawnCh, evt), "spawn") }

// HandleDespawned queues a despawn event for the next tick.
func (c *Client) HandleDespawned(evt messages.EntityDespawned) {
	c.queue(tryPush(c.despawnCh, evt), "despawn")
}

// HandleGranted queues an ownership grant for the next tick.
func (c *Client) HandleGranted(evt messages.OwnershipGranted) { c.queue(tryPush(c.grantedCh, evt), "granted") }

// HandleRevoked queues an ownership revocation for the next tick.
func (c *Client) HandleRevoked(evt messages.OwnershipRevoked) { c.queue(tryPush(c.revokedCh, evt), "revoked") }

// HandleMove queues a DownstreamMove for the next tick. A full queue drops
// the move; the next one for the same entity supersedes it anyway.
func (c *Client) HandleMove(msg messages.DownstreamMove) { c.queue(tryPush(c.moveCh, msg), "move") }

func (c *Client) queue(ok bool, kind string) {
	if !ok {
		c.logger.Warn("inbound queue full, dropping", "kind", kind)
	}
}

func tryPush[T any](ch chan T, v T) bool {
	select {
	case ch <- v:
		return true
	default:
		return false
	}
}

// DrainSpawned returns all pending spawn events, non-blocking.
func (c *Client) DrainSpawned() []messages.EntitySpawned {
	return drainChan(c.spawnCh)
}

// DrainDespawned returns all pending despawn events, non-blocking.
func (c *Client) DrainDespawned() []messages.EntityDespawned {
	return drainChan(c.despawnCh)
}

// DrainGranted returns all pending ownership grants, non-blocking.
func (c *Client) DrainGranted() []messages.OwnershipGranted {
	return drainChan(c.grantedCh)
}

// DrainRevoked returns all pending ownership revocations, non-blocking.
func (c *Client) DrainRevoked() []messages.OwnershipRevoked {
	return drainChan(c.revokedCh)
}

// DrainMoves returns all pending DownstreamMove messages in arrival order, non-blocking.
func (c *Client) DrainMoves() []messages.DownstreamMove {
	return drainChan(c.moveCh)
}

func drainChan[T any](ch chan T) []T {
	var out []T
	for {
		select {
		case v := <-ch:
			out = append(out, v)
		default:
			return out
		}
	}
}
