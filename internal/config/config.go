// Package config provides engine configuration for Findstorm.
//
// Configuration is loaded from a TOML or YAML file chosen by extension.
// A missing file is not an error; defaults apply. The Watcher reloads the
// file on change for live reconfiguration.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/dshills/findstorm/internal/search/pattern"
	"github.com/dshills/findstorm/internal/search/scan"
)

// ParseError indicates a configuration file could not be parsed.
type ParseError struct {
	Path    string
	Message string
	Err     error
}

// Error returns the diagnostic message.
func (e *ParseError) Error() string {
	return fmt.Sprintf("parsing config %s: %s", e.Path, e.Message)
}

// Unwrap returns the underlying decode error.
func (e *ParseError) Unwrap() error {
	return e.Err
}

// Defaults holds the search option defaults applied when the caller does
// not specify options.
type Defaults struct {
	CaseSensitive bool `toml:"case_sensitive" yaml:"case_sensitive"`
	Regex         bool `toml:"regex" yaml:"regex"`
	WholeWord     bool `toml:"whole_word" yaml:"whole_word"`
	Multiline     bool `toml:"multiline" yaml:"multiline"`
	DotAll        bool `toml:"dot_all" yaml:"dot_all"`
}

// Options converts the defaults to search options.
func (d Defaults) Options() pattern.Options {
	return pattern.Options{
		CaseSensitive: d.CaseSensitive,
		Regex:         d.Regex,
		WholeWord:     d.WholeWord,
		Multiline:     d.Multiline,
		DotAll:        d.DotAll,
	}
}

// Config is the engine configuration.
type Config struct {
	// MaxMatches caps the number of matches collected per scan.
	MaxMatches int `toml:"max_matches" yaml:"max_matches"`

	// Defaults are the search option defaults.
	Defaults Defaults `toml:"defaults" yaml:"defaults"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		MaxMatches: scan.DefaultMaxMatches,
	}
}

// Load reads configuration from path, dispatching on the file extension
// (.toml, .yaml, .yml). A missing file yields the defaults, not an error.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Default(), nil
		}
		return nil, fmt.Errorf("reading config file %s: %w", path, err)
	}

	cfg := Default()
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, &ParseError{Path: path, Message: err.Error(), Err: err}
		}
	default:
		if err := toml.Unmarshal(data, cfg); err != nil {
			return nil, &ParseError{Path: path, Message: err.Error(), Err: err}
		}
	}

	cfg.normalize()
	return cfg, nil
}

// normalize clamps out-of-range values back to defaults.
func (c *Config) normalize() {
	if c.MaxMatches <= 0 {
		c.MaxMatches = scan.DefaultMaxMatches
	}
}
