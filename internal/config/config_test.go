package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefault(t *testing.T) {
	os.Unsetenv("SHELL")
	cfg := Default()

	if cfg.DefaultShell != "/bin/sh" {
		t.Errorf("DefaultShell = %q, want /bin/sh", cfg.DefaultShell)
	}
	if cfg.Layout != LayoutScroll {
		t.Errorf("Layout = %q, want Scroll", cfg.Layout)
	}
	if len(cfg.Panes) != 1 || cfg.Panes[0].Name != "Shell" {
		t.Errorf("Panes = %+v, want single Shell pane", cfg.Panes)
	}
}

func TestLoadMissingFileReturnsDefault(t *testing.T) {
	dir := t.TempDir()
	orig, _ := os.Getwd()
	defer os.Chdir(orig)
	os.Chdir(dir)

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if len(cfg.Panes) != 1 || cfg.Panes[0].Name != "Shell" {
		t.Errorf("Panes = %+v, want default Shell pane", cfg.Panes)
	}
}

func TestLoadExplicitPath(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "custom.toml")
	contents := `
default_shell = "/bin/zsh"
layout = "Fixed"

[[panes]]
name = "editor"
command = "vim"
cwd = "~/code"
`
	if err := os.WriteFile(path, []byte(contents), 0o600); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	if cfg.DefaultShell != "/bin/zsh" {
		t.Errorf("DefaultShell = %q, want /bin/zsh", cfg.DefaultShell)
	}
	if cfg.Layout != LayoutFixed {
		t.Errorf("Layout = %q, want Fixed", cfg.Layout)
	}
	if len(cfg.Panes) != 1 || cfg.Panes[0].Command != "vim" {
		t.Errorf("Panes = %+v, want one vim pane", cfg.Panes)
	}
}

func TestLoadExplicitPathMissingIsError(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.toml"))
	if err == nil {
		t.Fatal("Load() with missing explicit path should error")
	}
}

func TestLoadEmptyPanesInjectsDefault(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "empty.toml")
	if err := os.WriteFile(path, []byte("default_shell = \"/bin/bash\"\n"), 0o600); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if len(cfg.Panes) != 1 || cfg.Panes[0].Name != "Shell" {
		t.Errorf("Panes = %+v, want injected Shell pane", cfg.Panes)
	}
}

func TestResolveCwd(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("no home directory available")
	}

	if got := ResolveCwd(""); got != "" {
		t.Errorf("ResolveCwd(\"\") = %q, want empty", got)
	}
	if got := ResolveCwd("/abs/path"); got != "/abs/path" {
		t.Errorf("ResolveCwd(/abs/path) = %q, want unchanged", got)
	}
	want := filepath.Join(home, "code")
	if got := ResolveCwd("~/code"); got != want {
		t.Errorf("ResolveCwd(~/code) = %q, want %q", got, want)
	}
}
