package config

import (
	"errors"
	"math"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Gravity != 9.81 {
		t.Errorf("expected gravity 9.81, got %f", cfg.Gravity)
	}
	if cfg.Relay.Addr != ":3000" || cfg.Relay.Path != "/socket" || cfg.Relay.Event != "updatePlayer" {
		t.Errorf("unexpected relay defaults %+v", cfg.Relay)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("expected defaults to validate, got %v", err)
	}
	if cfg.HoldWindow() != 600*time.Millisecond {
		t.Errorf("expected 600ms hold window, got %s", cfg.HoldWindow())
	}
}

func TestLoadKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("gravity: 1.62\nrelay:\n  addr: \":4000\"\n"), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}

	if cfg.Gravity != 1.62 {
		t.Errorf("expected gravity 1.62, got %f", cfg.Gravity)
	}
	if cfg.Relay.Addr != ":4000" {
		t.Errorf("expected relay addr :4000, got %s", cfg.Relay.Addr)
	}
	if cfg.Relay.Path != DefaultRelayPath || cfg.FPS != DefaultFPS {
		t.Errorf("expected unset keys to keep defaults, got %+v", cfg)
	}
}

func TestLoadErrors(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("expected not-exist error, got %v", err)
	}

	path := filepath.Join(t.TempDir(), "bad.yaml")
	os.WriteFile(path, []byte("gravity: [\n"), 0644)
	if _, err := Load(path); err == nil {
		t.Error("expected parse error, got nil")
	}
}

func TestSaveLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")

	cfg := DefaultConfig()
	cfg.Theme = "neon"
	cfg.SSH.Port = "2323"
	if err := Save(path, cfg); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if *loaded != *cfg {
		t.Errorf("expected %+v, got %+v", cfg, loaded)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Config)
	}{
		{"negative gravity", func(c *Config) { c.Gravity = -1 }},
		{"huge gravity", func(c *Config) { c.Gravity = 25 }},
		{"nan gravity", func(c *Config) { c.Gravity = math.NaN() }},
		{"zero fps", func(c *Config) { c.FPS = 0 }},
		{"too many fps", func(c *Config) { c.FPS = 1000 }},
		{"zero hold", func(c *Config) { c.ClimbHoldMS = 0 }},
		{"empty theme", func(c *Config) { c.Theme = "" }},
		{"bad log level", func(c *Config) { c.LogLevel = "loud" }},
		{"relative relay path", func(c *Config) { c.Relay.Path = "socket" }},
		{"empty relay event", func(c *Config) { c.Relay.Event = "" }},
		{"empty ssh port", func(c *Config) { c.SSH.Port = "" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.modify(cfg)
			if err := cfg.Validate(); !errors.Is(err, ErrInvalidConfig) {
				t.Errorf("expected ErrInvalidConfig, got %v", err)
			}
		})
	}
}

func TestGetPreset(t *testing.T) {
	p := GetPreset("moon")
	if p == nil {
		t.Fatal("expected preset, got nil")
	}
	if p.Gravity != 1.62 {
		t.Errorf("expected gravity 1.62, got %f", p.Gravity)
	}

	cfg := DefaultConfig()
	p.Apply(cfg)
	if cfg.Gravity != 1.62 {
		t.Errorf("expected preset to set gravity, got %f", cfg.Gravity)
	}
}

func TestGetPreset_NotFound(t *testing.T) {
	if GetPreset("pluto") != nil {
		t.Error("expected nil for unknown preset")
	}
}

func TestListPresets(t *testing.T) {
	want := []string{"earth", "jupiter", "mars", "moon", "zero-g"}
	got := ListPresets()

	if len(got) != len(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("expected %v, got %v", want, got)
			break
		}
	}

	for _, name := range got {
		cfg := DefaultConfig()
		GetPreset(name).Apply(cfg)
		if err := cfg.Validate(); err != nil {
			t.Errorf("preset %s: %v", name, err)
		}
	}
}
