// Package config loads start-up settings for the game and its servers.
package config

import (
	"errors"
	"fmt"
	"math"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"gopkg.in/yaml.v3"
)

const (
	DefaultGravity     = 9.81
	DefaultFPS         = 60
	DefaultClimbHoldMS = 600
	DefaultTheme       = "classic"
	DefaultLogLevel    = "info"

	DefaultRelayAddr  = ":3000"
	DefaultRelayPath  = "/socket"
	DefaultRelayEvent = "updatePlayer"

	DefaultSSHHost    = "::"
	DefaultSSHPort    = "2222"
	DefaultSSHHostKey = ".ssh/ropeclimb_ed25519"

	maxGravity = 20.0
	maxFPS     = 240
)

var ErrInvalidConfig = errors.New("invalid config")

type Config struct {
	Gravity     float64     `yaml:"gravity"`
	FPS         int         `yaml:"fps"`
	ClimbHoldMS int         `yaml:"climb_hold_ms"`
	Theme       string      `yaml:"theme"`
	LogLevel    string      `yaml:"log_level"`
	Relay       RelayConfig `yaml:"relay"`
	SSH         SSHConfig   `yaml:"ssh"`
}

type RelayConfig struct {
	Addr  string `yaml:"addr"`
	Path  string `yaml:"path"`
	Event string `yaml:"event"`
}

type SSHConfig struct {
	Host    string `yaml:"host"`
	Port    string `yaml:"port"`
	HostKey string `yaml:"host_key"`
}

func DefaultConfig() *Config {
	return &Config{
		Gravity:     DefaultGravity,
		FPS:         DefaultFPS,
		ClimbHoldMS: DefaultClimbHoldMS,
		Theme:       DefaultTheme,
		LogLevel:    DefaultLogLevel,
		Relay: RelayConfig{
			Addr:  DefaultRelayAddr,
			Path:  DefaultRelayPath,
			Event: DefaultRelayEvent,
		},
		SSH: SSHConfig{
			Host:    DefaultSSHHost,
			Port:    DefaultSSHPort,
			HostKey: DefaultSSHHostKey,
		},
	}
}

// Load reads a YAML file on top of the defaults, so missing keys keep
// their default values.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Validate reports the first out-of-range setting, wrapped in
// ErrInvalidConfig.
func (c *Config) Validate() error {
	if math.IsNaN(c.Gravity) || c.Gravity < 0 || c.Gravity > maxGravity {
		return fmt.Errorf("%w: gravity %v outside [0, %v]", ErrInvalidConfig, c.Gravity, maxGravity)
	}
	if c.FPS <= 0 || c.FPS > maxFPS {
		return fmt.Errorf("%w: fps %d outside [1, %d]", ErrInvalidConfig, c.FPS, maxFPS)
	}
	if c.ClimbHoldMS <= 0 {
		return fmt.Errorf("%w: climb_hold_ms must be positive, got %d", ErrInvalidConfig, c.ClimbHoldMS)
	}
	if c.Theme == "" {
		return fmt.Errorf("%w: theme is empty", ErrInvalidConfig)
	}
	if _, err := log.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("%w: log_level: %v", ErrInvalidConfig, err)
	}
	if !strings.HasPrefix(c.Relay.Path, "/") {
		return fmt.Errorf("%w: relay path %q must start with /", ErrInvalidConfig, c.Relay.Path)
	}
	if c.Relay.Event == "" {
		return fmt.Errorf("%w: relay event is empty", ErrInvalidConfig)
	}
	if c.SSH.Port == "" {
		return fmt.Errorf("%w: ssh port is empty", ErrInvalidConfig)
	}
	return nil
}

// HoldWindow is how long one climb key repeat keeps the climb going.
func (c *Config) HoldWindow() time.Duration {
	return time.Duration(c.ClimbHoldMS) * time.Millisecond
}

// Level returns the parsed log level, falling back to info.
func (c *Config) Level() log.Level {
	lvl, err := log.ParseLevel(c.LogLevel)
	if err != nil {
		return log.InfoLevel
	}
	return lvl
}
