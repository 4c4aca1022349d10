package core

import (
	"log/slog"
	"sync"
	"time"
)

type GameLoop struct {
	server   *Server
	tickRate int
	logger   *slog.Logger
	stopChan chan struct{}
	stopOnce sync.Once
}

func NewGameLoop(server *Server, tickRate int, logger *slog.Logger) *GameLoop {
	return &GameLoop{
		server:   server,
		tickRate: tickRate,
		logger:   logger,
		stopChan: make(chan struct{}),
	}
}

func (g *GameLoop) Run() {
	ticker := time.NewTicker(time.Second / time.Duration(g.tickRate))
	defer ticker.Stop()

	g.logger.Info("game loop started", "tickRate", g.tickRate)

	for {
		select {
		case <-g.stopChan:
			g.logger.Info("game loop stopped")
			return
		case <-ticker.C:
			g.server.Tick()
		}
	}
}

func (g *GameLoop) Stop() {
	g.stopOnce.Do(func() { close(g.stopChan) })
}
