package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/automoto/posesync/config"
	"github.com/automoto/posesync/logging"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	ConfigFile string
	LogLevel   string
}

// NewRootCommand creates the root command for the posesync CLI.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "posesync",
		Short: "Entity pose synchronization over websockets",
		Long: `posesync runs an authoritative server that streams entity poses to
observers, and an observer that mirrors them with smooth interpolation.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := config.Load(opts.ConfigFile); err != nil {
				return err
			}
			if cmd.Flags().Changed("log-level") {
				viper.Set("logLevel", opts.LogLevel)
			}
			return nil
		},
		SilenceUsage: true,
	}

	cmd.PersistentFlags().StringVar(&opts.ConfigFile, "config", "", "path to a config file (json, yaml or toml)")
	cmd.PersistentFlags().StringVar(&opts.LogLevel, "log-level", "info", "log level (debug|info|warn|error)")

	cmd.AddCommand(NewServeCommand(opts))
	cmd.AddCommand(NewObserveCommand(opts))

	return cmd
}

// newLogger builds the process logger from the loaded config. The returned
// closer releases the optional log file.
func newLogger(stdout io.Writer) (*slog.Logger, func(), error) {
	var file *os.File
	if path := config.LogFile(); path != "" {
		f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, nil, fmt.Errorf("open log file: %w", err)
		}
		file = f
	}

	writers := []io.Writer{stdout}
	if file != nil {
		writers = append(writers, file)
	}
	logger := logging.New(config.LogLevel(), writers...)
	slog.SetDefault(logger)

	return logger, func() {
		if file != nil {
			_ = file.Close()
		}
	}, nil
}
