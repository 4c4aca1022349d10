package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/automoto/posesync/config"
	"github.com/automoto/posesync/server/core"
	"github.com/spf13/cobra"
)

// ServeOptions holds flags for the serve command. Zero values defer to the
// loaded config.
type ServeOptions struct {
	*RootOptions
	Port         uint
	TickRate     int
	DemoEntities int
}

// NewServeCommand creates the serve command.
func NewServeCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ServeOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the authoritative server",
		Long: `Run the authority. Every joined client gets one owned entity, and
--demo spawns server owned entities that patrol so observers have
something to watch.

Example:
  posesync serve --port 7373 --demo 4
  posesync serve --config ./posesync.yaml`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(opts, cmd)
		},
	}

	cmd.Flags().UintVar(&opts.Port, "port", 0, "listen port (default from config)")
	cmd.Flags().IntVar(&opts.TickRate, "tick-rate", 0, "ticks per second (default from config)")
	cmd.Flags().IntVar(&opts.DemoEntities, "demo", -1, "number of patrolling demo entities (default from config)")

	return cmd
}

func runServe(opts *ServeOptions, cmd *cobra.Command) error {
	logger, closeLog, err := newLogger(cmd.OutOrStdout())
	if err != nil {
		return err
	}
	defer closeLog()

	srvCfg := config.Server()
	if opts.Port != 0 {
		srvCfg.Port = opts.Port
	}
	if opts.TickRate > 0 {
		srvCfg.TickRate = opts.TickRate
	}
	if opts.DemoEntities >= 0 {
		srvCfg.DemoEntities = opts.DemoEntities
	}

	settings, err := config.Sync()
	if err != nil {
		return err
	}

	srv := core.NewServer(core.Config{
		Name:         srvCfg.Name,
		TickRate:     srvCfg.TickRate,
		Version:      srvCfg.Version,
		Settings:     settings,
		DemoEntities: srvCfg.DemoEntities,
		Logger:       logger,
	})

	parent := cmd.Context()
	if parent == nil {
		parent = context.Background()
	}
	ctx, stop := signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Info("starting server",
		"name", srvCfg.Name, "port", srvCfg.Port, "tickRate", srvCfg.TickRate,
		"clientAuthority", settings.ClientAuthority, "sendInterval", settings.SendInterval)

	errCh := make(chan error, 1)
	go func() { errCh <- srv.Start(srvCfg.Port) }()

	select {
	case <-ctx.Done():
		logger.Info("shutting down server")
		srv.Stop()
		return nil
	case err := <-errCh:
		srv.Stop()
		if err != nil {
			return fmt.Errorf("server: %w", err)
		}
		return nil
	}
}
