// Package config loads runtime configuration through viper. Every key has a
// default so a config file is optional; POSESYNC_ prefixed environment
// variables override both.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/automoto/posesync/shared/netconfig"
	"github.com/automoto/posesync/shared/posesync"
	"github.com/spf13/viper"
)

const envPrefix = "POSESYNC"

// ServerConfig holds authority settings.
type ServerConfig struct {
	Port         uint   `json:"port" mapstructure:"port"`
	TickRate     int    `json:"tickRate" mapstructure:"tickRate"`
	Name         string `json:"name" mapstructure:"name"`
	Version      string `json:"version" mapstructure:"version"`
	DemoEntities int    `json:"demoEntities" mapstructure:"demoEntities"`
}

// ClientConfig holds observer settings.
type ClientConfig struct {
	Address     string  `json:"address" mapstructure:"address"`
	Name        string  `json:"name" mapstructure:"name"`
	OrbitRadius float64 `json:"orbitRadius" mapstructure:"orbitRadius"`
	OrbitRate   float64 `json:"orbitRate" mapstructure:"orbitRate"`
}

func setDefaults() {
	viper.SetDefault("logLevel", "info")
	viper.SetDefault("logFile", "")

	viper.SetDefault("server.port", 7373)
	viper.SetDefault("server.tickRate", 30)
	viper.SetDefault("server.name", "posesync")
	viper.SetDefault("server.version", netconfig.ProtocolVersion)
	viper.SetDefault("server.demoEntities", 0)

	viper.SetDefault("sync.positionThreshold", netconfig.DefaultThreshold)
	viper.SetDefault("sync.rotationThreshold", netconfig.DefaultThreshold)
	viper.SetDefault("sync.scaleThreshold", netconfig.DefaultThreshold)
	viper.SetDefault("sync.sendInterval", netconfig.DefaultSendInterval)
	viper.SetDefault("sync.clientAuthority", false)
	viper.SetDefault("sync.excludeOwnerEcho", true)
	viper.SetDefault("sync.easing", posesync.EasingLinear)

	viper.SetDefault("client.address", "localhost:7373")
	viper.SetDefault("client.name", "observer")
	viper.SetDefault("client.orbitRadius", 2.0)
	viper.SetDefault("client.orbitRate", 1.0)
}

// Load sets defaults, binds the environment and reads configFile when it is
// not empty. Without a file it looks for posesync.{json,yaml,toml} in the
// working directory and carries on if there is none.
func Load(configFile string) error {
	setDefaults()

	viper.SetEnvPrefix(envPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if configFile != "" {
		viper.SetConfigFile(configFile)
		if err := viper.ReadInConfig(); err != nil {
			return fmt.Errorf("error reading config file: %w", err)
		}
		return nil
	}

	viper.SetConfigName("posesync")
	viper.AddConfigPath(".")
	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return fmt.Errorf("error reading config file: %w", err)
		}
	}
	return nil
}

// Server returns the authority settings.
func Server() ServerConfig {
	return ServerConfig{
		Port:         viper.GetUint("server.port"),
		TickRate:     viper.GetInt("server.tickRate"),
		Name:         viper.GetString("server.name"),
		Version:      viper.GetString("server.version"),
		DemoEntities: viper.GetInt("server.demoEntities"),
	}
}

// Client returns the observer settings.
func Client() ClientConfig {
	return ClientConfig{
		Address:     viper.GetString("client.address"),
		Name:        viper.GetString("client.name"),
		OrbitRadius: viper.GetFloat64("client.orbitRadius"),
		OrbitRate:   viper.GetFloat64("client.orbitRate"),
	}
}

// Sync returns validated protocol settings.
func Sync() (posesync.Settings, error) {
	s := posesync.Settings{
		PositionThreshold: viper.GetFloat64("sync.positionThreshold"),
		RotationThreshold: viper.GetFloat64("sync.rotationThreshold"),
		ScaleThreshold:    viper.GetFloat64("sync.scaleThreshold"),
		SendInterval:      viper.GetFloat64("sync.sendInterval"),
		ClientAuthority:   viper.GetBool("sync.clientAuthority"),
		ExcludeOwnerEcho:  viper.GetBool("sync.excludeOwnerEcho"),
		Easing:            viper.GetString("sync.easing"),
	}
	if err := s.Validate(); err != nil {
		return posesync.Settings{}, err
	}
	return s, nil
}

// LogLevel returns the configured log level name.
func LogLevel() string {
	return viper.GetString("logLevel")
}

// LogFile returns the optional log file path.
func LogFile() string {
	return viper.GetString("logFile")
}
