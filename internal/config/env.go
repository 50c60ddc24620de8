package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// EnvPrefix prefixes every environment override.
const EnvPrefix = "ROPECLIMB_"

// GetEnv returns the value of the environment variable named by the key,
// or fallback if the variable is not set.
func GetEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

// LoadDotenv loads the given env files, or .env when none are given. A
// missing file is not an error. Variables already set in the process
// environment win.
func LoadDotenv(files ...string) error {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("load %s: %w", f, err)
		}
	}
	return nil
}

// ApplyEnv overrides cfg with ROPECLIMB_* variables.
func ApplyEnv(cfg *Config) error {
	var err error

	if cfg.Gravity, err = envFloat("GRAVITY", cfg.Gravity); err != nil {
		return err
	}
	if cfg.FPS, err = envInt("FPS", cfg.FPS); err != nil {
		return err
	}
	if cfg.ClimbHoldMS, err = envInt("CLIMB_HOLD_MS", cfg.ClimbHoldMS); err != nil {
		return err
	}

	cfg.Theme = GetEnv(EnvPrefix+"THEME", cfg.Theme)
	cfg.LogLevel = GetEnv(EnvPrefix+"LOG_LEVEL", cfg.LogLevel)
	cfg.Relay.Addr = GetEnv(EnvPrefix+"RELAY_ADDR", cfg.Relay.Addr)
	cfg.Relay.Path = GetEnv(EnvPrefix+"RELAY_PATH", cfg.Relay.Path)
	cfg.Relay.Event = GetEnv(EnvPrefix+"RELAY_EVENT", cfg.Relay.Event)
	cfg.SSH.Host = GetEnv(EnvPrefix+"SSH_HOST", cfg.SSH.Host)
	cfg.SSH.Port = GetEnv(EnvPrefix+"SSH_PORT", cfg.SSH.Port)
	cfg.SSH.HostKey = GetEnv(EnvPrefix+"SSH_HOST_KEY", cfg.SSH.HostKey)

	return nil
}

func envFloat(name string, fallback float64) (float64, error) {
	raw, ok := os.LookupEnv(EnvPrefix + name)
	if !ok {
		return fallback, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return fallback, fmt.Errorf("%w: %s%s=%q", ErrInvalidConfig, EnvPrefix, name, raw)
	}
	return v, nil
}

func envInt(name string, fallback int) (int, error) {
	raw, ok := os.LookupEnv(EnvPrefix + name)
	if !ok {
		return fallback, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return fallback, fmt.Errorf("%w: %s%s=%q", ErrInvalidConfig, EnvPrefix, name, raw)
	}
	return v, nil
}
