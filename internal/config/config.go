// Package config loads the TOML configuration that describes the default
// shell and the set of panes to start with.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// Layout selects the viewport strategy. Fixed is accepted but currently
// has no assigned behavior; the renderer always scrolls.
type Layout string

const (
	LayoutScroll Layout = "Scroll"
	LayoutFixed  Layout = "Fixed"
)

// PaneConfig describes one configured pane.
type PaneConfig struct {
	Name    string            `toml:"name"`
	Command string            `toml:"command"`
	Cwd     string            `toml:"cwd"`
	Env     map[string]string `toml:"env"`
}

// Config is the root configuration document.
type Config struct {
	DefaultShell string       `toml:"default_shell"`
	Layout       Layout       `toml:"layout"`
	Panes        []PaneConfig `toml:"panes"`
}

// Default returns the configuration used when no config file is found:
// a single pane named "Shell" running the default shell.
func Default() *Config {
	return &Config{
		DefaultShell: defaultShell(),
		Layout:       LayoutScroll,
		Panes: []PaneConfig{
			{Name: "Shell"},
		},
	}
}

func defaultShell() string {
	if sh := os.Getenv("SHELL"); sh != "" {
		return sh
	}
	return "/bin/sh"
}

// Load resolves and parses the configuration. If path is non-empty it is
// used as-is; otherwise the search order is: ./.bamboo.toml,
// $HOME/.config/bamboo/config.toml, then the platform config directory.
// A missing file at every candidate location yields Default().
func Load(path string) (*Config, error) {
	resolved := path
	if resolved == "" {
		var err error
		resolved, err = findConfigPath()
		if err != nil {
			return nil, err
		}
	}

	if resolved == "" {
		return Default(), nil
	}

	if _, err := os.Stat(resolved); err != nil {
		if path != "" {
			return nil, fmt.Errorf("read config from %s: %w", resolved, err)
		}
		return Default(), nil
	}

	cfg := &Config{}
	if _, err := toml.DecodeFile(resolved, cfg); err != nil {
		return nil, fmt.Errorf("parse config TOML at %s: %w", resolved, err)
	}

	if cfg.DefaultShell == "" {
		cfg.DefaultShell = defaultShell()
	}
	if cfg.Layout == "" {
		cfg.Layout = LayoutScroll
	}
	if len(cfg.Panes) == 0 {
		cfg.Panes = []PaneConfig{{Name: "Shell"}}
	}

	return cfg, nil
}

func findConfigPath() (string, error) {
	if _, err := os.Stat(".bamboo.toml"); err == nil {
		return ".bamboo.toml", nil
	}

	if home, err := os.UserHomeDir(); err == nil {
		p := filepath.Join(home, ".config", "bamboo", "config.toml")
		if _, err := os.Stat(p); err == nil {
			return p, nil
		}
	}

	if dir, err := os.UserConfigDir(); err == nil {
		p := filepath.Join(dir, "bamboo", "config.toml")
		if _, err := os.Stat(p); err == nil {
			return p, nil
		}
	}

	return "", nil
}

// ResolveCwd expands a leading "~/" against the user's home directory.
// A missing home directory leaves the literal path unchanged.
func ResolveCwd(cwd string) string {
	if cwd == "" {
		return ""
	}
	if cwd == "~" || (len(cwd) >= 2 && cwd[:2] == "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return cwd
		}
		if cwd == "~" {
			return home
		}
		return filepath.Join(home, cwd[2:])
	}
	return cwd
}
