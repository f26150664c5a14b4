package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/dshills/findstorm/internal/search/scan"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("writing %s: %v", name, err)
	}
	return path
}

func TestDefaultConfig(t *testing.T) {
	cfg := Default()

	if cfg.MaxMatches != scan.DefaultMaxMatches {
		t.Errorf("expected default max matches, got %d", cfg.MaxMatches)
	}

	if cfg.Defaults.CaseSensitive || cfg.Defaults.Regex {
		t.Error("defaults should start zero-valued")
	}
}

func TestLoadMissingFileIsDefault(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.toml"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.MaxMatches != scan.DefaultMaxMatches {
		t.Errorf("expected defaults, got %+v", cfg)
	}
}

func TestLoadTOML(t *testing.T) {
	path := writeFile(t, t.TempDir(), "findstorm.toml", `
max_matches = 500

[defaults]
case_sensitive = true
whole_word = true
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}

	if cfg.MaxMatches != 500 {
		t.Errorf("expected 500, got %d", cfg.MaxMatches)
	}

	if !cfg.Defaults.CaseSensitive || !cfg.Defaults.WholeWord {
		t.Errorf("unexpected defaults: %+v", cfg.Defaults)
	}

	if cfg.Defaults.Regex {
		t.Error("regex should stay false")
	}
}

func TestLoadYAML(t *testing.T) {
	path := writeFile(t, t.TempDir(), "findstorm.yaml", `
max_matches: 250
defaults:
  regex: true
  dot_all: true
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}

	if cfg.MaxMatches != 250 {
		t.Errorf("expected 250, got %d", cfg.MaxMatches)
	}

	if !cfg.Defaults.Regex || !cfg.Defaults.DotAll {
		t.Errorf("unexpected defaults: %+v", cfg.Defaults)
	}
}

func TestLoadInvalidTOML(t *testing.T) {
	path := writeFile(t, t.TempDir(), "broken.toml", "max_matches = [not valid")

	_, err := Load(path)

	var perr *ParseError
	if !errors.As(err, &perr) {
		t.Fatalf("expected *ParseError, got %v", err)
	}

	if perr.Path != path {
		t.Errorf("expected path in error, got %q", perr.Path)
	}
}

func TestLoadNormalizesMaxMatches(t *testing.T) {
	path := writeFile(t, t.TempDir(), "findstorm.toml", "max_matches = -5")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}

	if cfg.MaxMatches != scan.DefaultMaxMatches {
		t.Errorf("expected clamp to default, got %d", cfg.MaxMatches)
	}
}

func TestDefaultsOptions(t *testing.T) {
	d := Defaults{CaseSensitive: true, Multiline: true}
	opts := d.Options()

	if !opts.CaseSensitive || !opts.Multiline {
		t.Errorf("unexpected options: %+v", opts)
	}

	if opts.Regex || opts.WholeWord || opts.DotAll {
		t.Errorf("unset defaults should stay false: %+v", opts)
	}
}

func TestWatcherReloadsOnWrite(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "findstorm.toml", "max_matches = 100")

	reloaded := make(chan *Config, 4)
	w, err := NewWatcher(path, func(cfg *Config) { reloaded <- cfg }, nil)
	if err != nil {
		t.Fatalf("watcher failed: %v", err)
	}
	defer w.Close()

	writeFile(t, dir, "findstorm.toml", "max_matches = 777")

	select {
	case cfg := <-reloaded:
		if cfg.MaxMatches != 777 {
			t.Errorf("expected 777 after reload, got %d", cfg.MaxMatches)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for reload")
	}
}

func TestWatcherIgnoresOtherFiles(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "findstorm.toml", "max_matches = 100")

	reloaded := make(chan *Config, 4)
	w, err := NewWatcher(path, func(cfg *Config) { reloaded <- cfg }, nil)
	if err != nil {
		t.Fatalf("watcher failed: %v", err)
	}
	defer w.Close()

	writeFile(t, dir, "unrelated.txt", "noise")

	select {
	case <-reloaded:
		t.Error("unrelated file should not trigger a reload")
	case <-time.After(200 * time.Millisecond):
	}
}

func TestWatcherCloseTwice(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "findstorm.toml", "max_matches = 100")

	w, err := NewWatcher(path, nil, nil)
	if err != nil {
		t.Fatalf("watcher failed: %v", err)
	}

	if err := w.Close(); err != nil {
		t.Errorf("first close failed: %v", err)
	}

	if err := w.Close(); !errors.Is(err, ErrWatcherClosed) {
		t.Errorf("expected ErrWatcherClosed, got %v", err)
	}
}
