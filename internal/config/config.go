package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"
)

// Config holds all raglog configuration.
type Config struct {
	// Marker is the substring that identifies a history snapshot line.
	Marker string `toml:"marker"`

	// NoResponse is the sentinel text used when a user turn has no
	// assistant reply in its snapshot. Display text, never conflated with
	// an empty response.
	NoResponse string `toml:"no_response"`

	Overview OverviewConfig `toml:"overview"`
	Watch    WatchConfig    `toml:"watch"`
}

type OverviewConfig struct {
	// FirstMessageWidth truncates the first-message preview in the
	// conversation overview.
	FirstMessageWidth int  `toml:"first_message_width"`
	Color             bool `toml:"color"`
}

type WatchConfig struct {
	DebounceMillis int `toml:"debounce_millis"`
}

// DefaultConfig returns config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Marker:     "[HISTORY][",
		NoResponse: "[no response found]",
		Overview: OverviewConfig{
			FirstMessageWidth: 80,
			Color:             true,
		},
		Watch: WatchConfig{
			DebounceMillis: 500,
		},
	}
}

// Load reads config from the standard path, falling back to defaults.
func Load() (Config, error) {
	cfg := DefaultConfig()

	for _, p := range configPaths() {
		if _, err := os.Stat(p); err == nil {
			if _, err := toml.DecodeFile(p, &cfg); err != nil {
				return cfg, fmt.Errorf("parse config %s: %w", p, err)
			}
			break
		}
	}

	if cfg.Marker == "" {
		cfg.Marker = "[HISTORY]["
	}
	if cfg.NoResponse == "" {
		cfg.NoResponse = "[no response found]"
	}
	if cfg.Overview.FirstMessageWidth <= 0 {
		cfg.Overview.FirstMessageWidth = 80
	}
	if cfg.Watch.DebounceMillis <= 0 {
		cfg.Watch.DebounceMillis = 500
	}

	return cfg, nil
}

func configPaths() []string {
	var paths []string

	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		paths = append(paths, filepath.Join(xdg, "raglog", "config.toml"))
	}

	home, _ := os.UserHomeDir()
	if home != "" {
		paths = append(paths, filepath.Join(home, ".config", "raglog", "config.toml"))
	}

	return paths
}

// Debounce returns the watch debounce interval as a duration.
func (c Config) Debounce() time.Duration {
	return time.Duration(c.Watch.DebounceMillis) * time.Millisecond
}
