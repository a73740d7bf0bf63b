package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/adrg/xdg"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

const appName = "glimpse"

type Config struct {
	Source   SourceConfig   `koanf:"source"`
	Playback PlaybackConfig `koanf:"playback"`
	Log      LogConfig      `koanf:"log"`
	UI       UIConfig       `koanf:"ui"`
}

// SourceConfig selects what to play when no argument is given.
type SourceConfig struct {
	URL         string `koanf:"url"`          // any URI playbin understands
	Live        bool   `koanf:"live"`         // network stream without duration
	CaptureNode uint32 `koanf:"capture_node"` // PipeWire node id, used when url is empty
}

// PlaybackConfig tunes the playback controller.
type PlaybackConfig struct {
	TickInterval time.Duration `koanf:"tick_interval"` // refresh period (default: 50ms)
	EventBuffer  int           `koanf:"event_buffer"`  // frame notification buffer (default: 64)
	Volume       *float64      `koanf:"volume"`        // initial volume 0.0-1.0 (default: 1.0)
	SeekStep     time.Duration `koanf:"seek_step"`     // left/right seek distance (default: 8s)
}

// LogConfig controls the log file. The terminal belongs to the UI.
type LogConfig struct {
	Level string `koanf:"level"` // debug, info, warn, error (default: info)
	File  string `koanf:"file"`  // empty means the xdg state directory
}

// UIConfig holds presentation settings.
type UIConfig struct {
	Icons string `koanf:"icons"` // "nerd", "unicode", or "none"
	MPRIS *bool  `koanf:"mpris"` // expose MPRIS on D-Bus (default: true)
}

// Load reads the config files in priority order. An explicit path is
// loaded last and must exist.
func Load(explicit string) (*Config, error) {
	k := koanf.New(".")

	for _, path := range getConfigPaths() {
		if _, err := os.Stat(path); err == nil {
			if err := k.Load(file.Provider(path), toml.Parser()); err != nil {
				return nil, fmt.Errorf("load %s: %w", path, err)
			}
		}
	}
	if explicit != "" {
		if err := k.Load(file.Provider(expandPath(explicit)), toml.Parser()); err != nil {
			return nil, fmt.Errorf("load %s: %w", explicit, err)
		}
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, err
	}

	cfg.Source.URL = strings.TrimSpace(cfg.Source.URL)
	if cfg.Log.File != "" {
		cfg.Log.File = expandPath(cfg.Log.File)
	}

	return cfg, nil
}

func getConfigPaths() []string {
	return []string{
		// 1. $XDG_CONFIG_HOME/glimpse/config.toml
		filepath.Join(xdg.ConfigHome, appName, "config.toml"),
		// 2. ./config.toml (pwd, highest priority)
		"config.toml",
	}
}

func expandPath(path string) string {
	if path != "" && path[0] == '~' {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, path[1:])
		}
	}
	return path
}

// HasSource returns true if the config names something to play.
func (c *Config) HasSource() bool {
	return c.Source.URL != "" || c.Source.CaptureNode != 0
}

// MPRISEnabled returns whether the MPRIS adapter should run.
func (c *Config) MPRISEnabled() bool {
	return c.UI.MPRIS == nil || *c.UI.MPRIS
}

// GetPlaybackConfig returns the playback configuration with defaults applied.
func (c *Config) GetPlaybackConfig() PlaybackConfig {
	cfg := c.Playback

	if cfg.TickInterval <= 0 {
		cfg.TickInterval = 50 * time.Millisecond
	}
	if cfg.EventBuffer <= 0 {
		cfg.EventBuffer = 64
	}
	if cfg.Volume == nil || *cfg.Volume < 0 || *cfg.Volume > 1 {
		v := 1.0
		cfg.Volume = &v
	}
	if cfg.SeekStep <= 0 {
		cfg.SeekStep = 8 * time.Second
	}

	return cfg
}

// GetLogConfig returns the log configuration with defaults applied.
func (c *Config) GetLogConfig() LogConfig {
	cfg := c.Log

	switch strings.ToLower(cfg.Level) {
	case "debug", "info", "warn", "error":
		cfg.Level = strings.ToLower(cfg.Level)
	default:
		cfg.Level = "info"
	}

	return cfg
}
