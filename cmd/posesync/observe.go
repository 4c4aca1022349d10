package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/automoto/posesync/components"
	"github.com/automoto/posesync/config"
	"github.com/automoto/posesync/network"
	"github.com/spf13/cobra"
)

const profileApp = "posesync"

// ObserveOptions holds flags for the observe command.
type ObserveOptions struct {
	*RootOptions
	Address     string
	Name        string
	JoinTimeout time.Duration
	Report      time.Duration
	NoProfile   bool
}

// NewObserveCommand creates the observe command.
func NewObserveCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ObserveOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "observe",
		Short: "Join a server and mirror its entities",
		Long: `Join a server as an observer. Received poses are interpolated locally.
When the server runs with client authority the owned entity orbits
around its spawn point and its pose is sent upstream.

The last address and name used are remembered between runs.

Example:
  posesync observe --address localhost:7373 --name alice`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runObserve(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Address, "address", "", "server address host:port")
	cmd.Flags().StringVar(&opts.Name, "name", "", "client name shown to the server")
	cmd.Flags().DurationVar(&opts.JoinTimeout, "join-timeout", 5*time.Second, "how long to wait for the join handshake")
	cmd.Flags().DurationVar(&opts.Report, "report", 2*time.Second, "interval between mirror status logs")
	cmd.Flags().BoolVar(&opts.NoProfile, "no-profile", false, "do not read or write the saved profile")

	return cmd
}

// resolveIdentity picks the address and name: flag, then saved profile,
// then config.
func resolveIdentity(opts *ObserveOptions, cmd *cobra.Command, profile *config.Profile, cfg config.ClientConfig) (string, string) {
	address, name := cfg.Address, cfg.Name
	if profile != nil {
		if profile.Address != "" {
			address = profile.Address
		}
		if profile.ClientName != "" {
			name = profile.ClientName
		}
	}
	if cmd.Flags().Changed("address") {
		address = opts.Address
	}
	if cmd.Flags().Changed("name") {
		name = opts.Name
	}
	return address, name
}

func runObserve(opts *ObserveOptions, cmd *cobra.Command) error {
	logger, closeLog, err := newLogger(cmd.OutOrStdout())
	if err != nil {
		return err
	}
	defer closeLog()

	var store config.ItemStore
	var profile *config.Profile
	if !opts.NoProfile {
		if m, err := config.OpenProfileStore(profileApp); err != nil {
			logger.Warn("profile disabled", "err", err)
		} else {
			store = m
			if profile, err = config.LoadProfile(store); err != nil {
				logger.Warn("could not load profile", "err", err)
			}
		}
	}

	cliCfg := config.Client()
	address, name := resolveIdentity(opts, cmd, profile, cliCfg)

	parent := cmd.Context()
	if parent == nil {
		parent = context.Background()
	}
	ctx, stop := signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
	defer stop()

	client := network.NewClient(logger)
	client.Connect(address, name)
	defer client.Disconnect()

	if err := waitForJoin(ctx, client, opts.JoinTimeout); err != nil {
		return err
	}

	if store != nil {
		if err := config.SaveProfile(store, config.Profile{ClientName: name, Address: address}); err != nil {
			logger.Warn("could not save profile", "err", err)
		}
	}

	settings := client.Settings().Settings()
	if err := settings.Validate(); err != nil {
		return fmt.Errorf("server sent unusable settings: %w", err)
	}

	session := network.NewSession(client, client, network.SessionConfig{
		ClientID: client.ClientID(),
		Settings: settings,
		Orbit: &components.OrbitData{
			Radius:      cliCfg.OrbitRadius,
			AngularRate: cliCfg.OrbitRate,
		},
		Logger: logger,
	})

	logger.Info("observing", "server", client.ServerName(), "clientID", client.ClientID(),
		"clientAuthority", settings.ClientAuthority)
	return observeLoop(ctx, client, session, client.TickRate(), opts.Report, logger)
}

// waitForJoin polls the client until the handshake completes or fails.
func waitForJoin(ctx context.Context, client *network.Client, timeout time.Duration) error {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	poll := time.NewTicker(20 * time.Millisecond)
	defer poll.Stop()

	for {
		switch client.State() {
		case network.StateJoined:
			return nil
		case network.StateError:
			return client.LastError()
		}
		select {
		case <-ctx.Done():
			if errors.Is(ctx.Err(), context.DeadlineExceeded) {
				return fmt.Errorf("join timed out after %s", timeout)
			}
			return ctx.Err()
		case <-poll.C:
		}
	}
}

func observeLoop(ctx context.Context, client *network.Client, session *network.Session, tickRate int, report time.Duration, logger *slog.Logger) error {
	if tickRate <= 0 {
		tickRate = 30
	}
	ticker := time.NewTicker(time.Second / time.Duration(tickRate))
	defer ticker.Stop()
	if report <= 0 {
		report = time.Hour
	}
	status := time.NewTicker(report)
	defer status.Stop()

	for {
		select {
		case <-ctx.Done():
			logger.Info("observer stopped")
			return nil
		case <-client.Disconnects():
			return errors.New("connection to server lost")
		case <-ticker.C:
			session.Tick()
		case <-status.C:
			logger.Info("mirror status", "entities", session.EntityCount())
		}
	}
}
